package logic

import "time"

// Window is a one-shot timer: a start instant plus a duration.
// Comparisons go through time.Time's monotonic reading, so clock
// adjustments can't shorten or extend a running window.
type Window struct {
	Start    time.Time
	Duration time.Duration
}

// startWindow begins a window at now.
func startWindow(now time.Time, d time.Duration) Window {
	return Window{Start: now, Duration: d}
}

// HasElapsed reports whether the window has run its full duration.
func (w Window) HasElapsed(now time.Time) bool {
	return now.Sub(w.Start) >= w.Duration
}

// Remaining returns the time left in the window, never negative.
func (w Window) Remaining(now time.Time) time.Duration {
	r := w.Duration - now.Sub(w.Start)
	if r < 0 {
		return 0
	}
	return r
}

// Elapsed returns how long the window has been running.
func (w Window) Elapsed(now time.Time) time.Duration {
	return now.Sub(w.Start)
}
