package engine

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type AggregationPeriod string

const (
	PeriodDay   AggregationPeriod = "day"
	PeriodWeek  AggregationPeriod = "week"
	PeriodMonth AggregationPeriod = "month"
)

var ErrUnknownPeriod = errors.New("unknown aggregation period")

func (p AggregationPeriod) IsValid() bool {
	switch p {
	case PeriodDay, PeriodWeek, PeriodMonth:
		return true
	default:
		return false
	}
}

func ParsePeriod(input string) (AggregationPeriod, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "daily", "d":
		s = string(PeriodDay)
	case "weekly", "w":
		s = string(PeriodWeek)
	case "monthly", "m":
		s = string(PeriodMonth)
	}
	p := AggregationPeriod(s)
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownPeriod, input)
	}
	return p, nil
}

// PeriodStart truncates t to the start of its period in t's location.
// Weeks start on Monday.
func PeriodStart(t time.Time, p AggregationPeriod) time.Time {
	y, m, d := t.Date()
	loc := t.Location()
	switch p {
	case PeriodWeek:
		offset := (int(t.Weekday()) + 6) % 7
		return time.Date(y, m, d-offset, 0, 0, 0, 0, loc)
	case PeriodMonth:
		return time.Date(y, m, 1, 0, 0, 0, 0, loc)
	default:
		return time.Date(y, m, d, 0, 0, 0, 0, loc)
	}
}

// NextPeriodStart returns the start of the period following the one that begins at start.
// Calendar arithmetic keeps DST days at their real length.
func NextPeriodStart(start time.Time, p AggregationPeriod) time.Time {
	switch p {
	case PeriodWeek:
		return start.AddDate(0, 0, 7)
	case PeriodMonth:
		return start.AddDate(0, 1, 0)
	default:
		return start.AddDate(0, 0, 1)
	}
}
