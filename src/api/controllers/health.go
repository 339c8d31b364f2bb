package controllers

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"fittrack/src/config"
	"fittrack/src/schemas"
	"fittrack/src/utils"
)

// Pinger is anything the health check can ping, e.g. a pgx pool or the
// Redis handler.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthControllerI interface {
	Ping(ctx context.Context) *schemas.PingResponse
	GetHealth(ctx context.Context) *schemas.HealthResponse
}

type HealthController struct {
	Config    *config.Config
	DB        Pinger
	Redis     Pinger
	StartedAt time.Time
	now       func() time.Time
}

func NewHealthController(cfg *config.Config, db, redis Pinger) *HealthController {
	return &HealthController{
		Config:    cfg,
		DB:        db,
		Redis:     redis,
		StartedAt: time.Now(),
		now:       time.Now,
	}
}

func (c *HealthController) Ping(_ context.Context) *schemas.PingResponse {
	return &schemas.PingResponse{
		Status:    "ok",
		Message:   "pong",
		Timestamp: c.now().UTC().Format(time.RFC3339),
	}
}

// GetHealth reports which external APIs are configured and pings the
// stores concurrently. The overall status is "degraded" when a ping fails.
func (c *HealthController) GetHealth(ctx context.Context) *schemas.HealthResponse {
	clients := c.Config.ExternalClients
	services := map[string]string{
		"kroger": configured(clients.Kroger.Configured()),
		"edamam": configured(clients.Edamam.Configured()),
		"aiml":   configured(clients.AIML.Configured()),
	}

	var dbStatus, redisStatus string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		dbStatus = ping(gctx, c.DB)
		return nil
	})
	g.Go(func() error {
		redisStatus = ping(gctx, c.Redis)
		return nil
	})
	_ = g.Wait()
	services["database"] = dbStatus
	services["redis"] = redisStatus

	status := "ok"
	for _, s := range services {
		if s == utils.StatusError {
			status = "degraded"
		}
	}

	now := c.now()
	return &schemas.HealthResponse{
		Status:    status,
		Timestamp: now.UTC().Format(time.RFC3339),
		Uptime:    now.Sub(c.StartedAt).Truncate(time.Second).String(),
		Services:  services,
	}
}

func configured(ok bool) string {
	if ok {
		return utils.StatusConfigured
	}
	return utils.StatusNotConfigured
}

func ping(ctx context.Context, p Pinger) string {
	if p == nil {
		return utils.StatusNotConfigured
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := p.Ping(ctx); err != nil {
		return utils.StatusError
	}
	return utils.StatusConnected
}
