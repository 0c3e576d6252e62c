package filter

import (
	"fmt"
	"strings"
	"time"
)

// Window is a trailing time range ending at a caller-supplied now.
type Window string

// Window values.
const (
	WindowNone  Window = "none"
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
	WindowYear  Window = "year"
)

// ParseWindow accepts none, week, month and year in any case. The empty
// string and "all" are treated as none.
func ParseWindow(s string) (Window, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch Window(s) {
	case "", WindowNone, Window(All):
		return WindowNone, nil
	case WindowWeek, WindowMonth, WindowYear:
		return Window(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownWindow, s)
}

// Start returns the inclusive lower bound of the window, and false when the
// window is unrestricted.
func (w Window) Start(now time.Time) (time.Time, bool) {
	switch w {
	case WindowWeek:
		return now.AddDate(0, 0, -7), true
	case WindowMonth:
		return now.AddDate(0, -1, 0), true
	case WindowYear:
		return now.AddDate(-1, 0, 0), true
	}
	return time.Time{}, false
}

// Within matches records whose timestamp lies in [now-window, now]. Records
// without a timestamp are dropped by any restricted window.
func Within[T any](w Window, now time.Time, ts func(T) *time.Time) Predicate[T] {
	start, restricted := w.Start(now)
	if !restricted {
		return nil
	}
	return func(r T) bool {
		t := ts(r)
		if t == nil {
			return false
		}
		return !t.Before(start) && !t.After(now)
	}
}
