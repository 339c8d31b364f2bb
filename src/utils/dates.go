package utils

import (
	"fmt"
	"time"
)

// FormatToYYYYMMDD formats a date as YYYY-MM-DD in the date's own location.
func FormatToYYYYMMDD(date time.Time) string {
	return date.Format(ShortDashDateLayout)
}

// ParseDate parses a YYYY-MM-DD string into a UTC midnight time.
func ParseDate(value string) (time.Time, error) {
	date, err := time.Parse(ShortDashDateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return date, nil
}

// DateOrToday parses value, falling back to today's date when value is empty.
func DateOrToday(value string, now time.Time) (string, error) {
	if value == "" {
		return FormatToYYYYMMDD(now), nil
	}
	date, err := ParseDate(value)
	if err != nil {
		return "", err
	}
	return FormatToYYYYMMDD(date), nil
}

func GenerateDates(startDate, endDate time.Time, interval time.Duration) ([]time.Time, error) {
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("endDate must be after startDate")
	}

	var dates []time.Time
	for currentDate := startDate; currentDate.Before(endDate) || currentDate.Equal(endDate); currentDate = currentDate.Add(interval) {
		dates = append(dates, currentDate)
	}

	return dates, nil
}
