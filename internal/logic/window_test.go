package logic

import (
	"testing"
	"time"
)

func TestWindowHasElapsed(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	w := startWindow(start, 5*time.Second)

	if w.HasElapsed(start) {
		t.Error("window should not be elapsed at its start")
	}
	if w.HasElapsed(start.Add(4999 * time.Millisecond)) {
		t.Error("window should not be elapsed just before the deadline")
	}
	if !w.HasElapsed(start.Add(5 * time.Second)) {
		t.Error("window should be elapsed exactly at the deadline")
	}
	if !w.HasElapsed(start.Add(time.Hour)) {
		t.Error("window should stay elapsed afterwards")
	}
}

func TestWindowRemaining(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	w := startWindow(start, 10*time.Second)

	if got := w.Remaining(start); got != 10*time.Second {
		t.Errorf("remaining at start: got %v, want 10s", got)
	}
	if got := w.Remaining(start.Add(3 * time.Second)); got != 7*time.Second {
		t.Errorf("remaining at 3s: got %v, want 7s", got)
	}
	if got := w.Remaining(start.Add(15 * time.Second)); got != 0 {
		t.Errorf("remaining past deadline: got %v, want 0", got)
	}
}

func TestWindowElapsed(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	w := startWindow(start, 10*time.Second)

	if got := w.Elapsed(start.Add(4 * time.Second)); got != 4*time.Second {
		t.Errorf("elapsed: got %v, want 4s", got)
	}
}
