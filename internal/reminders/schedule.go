package reminders

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// Errors returned when scheduling a reminder.
var (
	ErrInvalidTime   = errors.New("invalid time, expected HH:MM")
	ErrPastTime      = errors.New("reminder time is in the past")
	ErrInvalidPeriod = errors.New("unknown reminder period")
)

// Period is a day offset relative to today.
type Period string

// Supported periods.
const (
	Today    Period = "today"
	Tomorrow Period = "tomorrow"
	NextWeek Period = "next_week"
)

// Days returns the day offset of p.
func (p Period) Days() (int, error) {
	switch p {
	case Today:
		return 0, nil
	case Tomorrow:
		return 1, nil
	case NextWeek:
		return 7, nil
	default:
		return 0, ErrInvalidPeriod
	}
}

// Clock is a wall-clock time of day.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses "HH:MM" or "H:MM" in 24-hour format.
func ParseClock(s string) (Clock, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(h) == 0 || len(h) > 2 || len(m) != 2 || strings.ContainsAny(h+m, "+-") {
		return Clock{}, ErrInvalidTime
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return Clock{}, ErrInvalidTime
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return Clock{}, ErrInvalidTime
	}
	return Clock{Hour: hour, Minute: minute}, nil
}

// DueAt resolves period and clock against now in now's location.
// Times earlier than now are rejected with ErrPastTime.
func DueAt(period Period, clock Clock, now time.Time) (time.Time, error) {
	days, err := period.Days()
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := now.Date()
	due := time.Date(y, m, d+days, clock.Hour, clock.Minute, 0, 0, now.Location())
	if due.Before(now) {
		return time.Time{}, ErrPastTime
	}
	return due, nil
}
