package utils

import (
	"net/url"
	"time"

	apperrors "bus-admin/pkg/errors"
)

const DateLayout = "2006-01-02"

// ParsePeriod читает параметры from/to. Если границ нет, берутся последние
// defaultDays дней по сегодня; перепутанные границы меняются местами.
func ParsePeriod(values url.Values, now time.Time, defaultDays int) (time.Time, time.Time, error) {
	to := truncateDay(now)
	from := to.AddDate(0, 0, -(defaultDays - 1))

	if raw := values.Get("from"); raw != "" {
		t, err := time.Parse(DateLayout, raw)
		if err != nil {
			return time.Time{}, time.Time{}, apperrors.NewInvalidInputError("invalid 'from' date %q", raw)
		}
		from = t
	}
	if raw := values.Get("to"); raw != "" {
		t, err := time.Parse(DateLayout, raw)
		if err != nil {
			return time.Time{}, time.Time{}, apperrors.NewInvalidInputError("invalid 'to' date %q", raw)
		}
		to = t
	}
	if from.After(to) {
		from, to = to, from
	}
	return from, to, nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
