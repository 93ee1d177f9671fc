package task

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidClock is returned for time-of-day strings that are not HH:mm or
// HH:mm:ss.
var ErrInvalidClock = errors.New("task: invalid time of day")

// Clock is a wall-clock time of day on a single logical day.
type Clock struct {
	Hour   int
	Minute int
	Second int
}

// ParseClock parses "HH:mm" or "HH:mm:ss". Hour 24 is accepted only as 24:00
// so a task can end at midnight.
func ParseClock(s string) (Clock, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	vals := make([]int, 3)
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || len(p) == 0 || len(p) > 2 {
			return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
		}
		vals[i] = v
	}
	c := Clock{Hour: vals[0], Minute: vals[1], Second: vals[2]}
	if c.Hour < 0 || c.Hour > 24 || c.Minute < 0 || c.Minute > 59 || c.Second < 0 || c.Second > 59 {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	if c.Hour == 24 && (c.Minute != 0 || c.Second != 0) {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return c, nil
}

// At builds a clock for the whole hour h, wrapping into 0..23.
func At(h int) Clock {
	return Clock{Hour: ((h % 24) + 24) % 24}
}

// Minutes returns the minutes since midnight.
func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

// Before reports whether c is strictly earlier than o.
func (c Clock) Before(o Clock) bool {
	if c.Minutes() != o.Minutes() {
		return c.Minutes() < o.Minutes()
	}
	return c.Second < o.Second
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}
