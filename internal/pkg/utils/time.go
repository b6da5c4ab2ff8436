package utils

import (
	"clinic-ledger-service/internal/pkg/constvars"
	"time"
)

func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(constvars.AppDateFormat, value, time.Local)
}

// ParseOptionalDate returns fallback truncated to the day when value is nil.
func ParseOptionalDate(value *string, fallback time.Time) (time.Time, error) {
	if value == nil || *value == "" {
		return StartOfDay(fallback), nil
	}
	return ParseDate(*value)
}

func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func StartOfMonth(t time.Time) time.Time {
	year, month, _ := t.Date()
	return time.Date(year, month, 1, 0, 0, 0, 0, t.Location())
}

func StartOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
}

// EndOfDayExclusive is the first instant of the day after t.
func EndOfDayExclusive(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1)
}
