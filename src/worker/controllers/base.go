package controllers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"fittrack/src/repositories"
	"fittrack/src/utils"
)

// Clock and id source shared by the tracking controllers; tests swap them.
var (
	now   = time.Now
	newID = uuid.NewString
)

// storeError maps local store errors onto HTTP errors.
func storeError(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrNotFound):
		return utils.NotFound(entity + " not found")
	case strings.Contains(err.Error(), "UNIQUE constraint failed"):
		return utils.WithDetails(utils.Conflict(entity+" already exists"), err.Error())
	case strings.Contains(err.Error(), "FOREIGN KEY constraint failed"):
		return utils.WithDetails(utils.NotFound("user not found"), err.Error())
	}
	return err
}

// requireUser fails with 404 when userID does not exist.
func requireUser(ctx context.Context, users repositories.UserRepository, userID string) error {
	if userID == "" {
		return utils.BadRequest("user id is required")
	}
	_, err := users.GetByID(ctx, userID)
	return storeError(err, "user")
}

// dateParam validates an optional YYYY-MM-DD value, defaulting to today.
func dateParam(name, value string) (string, error) {
	date, err := utils.DateOrToday(utils.SanitizeString(value), now())
	if err != nil {
		return "", utils.WithDetails(utils.BadRequest("invalid "+name), err.Error())
	}
	return date, nil
}
