package hud

import (
	"time"
)

// FrameStats keeps a rolling window of frame durations and a per-second FPS count.
type FrameStats struct {
	history []time.Duration
	size    int
	next    int

	frames       int
	lastFPSCheck time.Time
	fps          int
}

// NewFrameStats keeps the last size frame durations.
func NewFrameStats(size int) *FrameStats {
	return &FrameStats{size: max(size, 1)}
}

// Record adds one frame's duration, finishing at now.
func (f *FrameStats) Record(d time.Duration, now time.Time) {
	if len(f.history) < f.size {
		f.history = append(f.history, d)
	} else {
		f.history[f.next] = d
	}
	f.next = (f.next + 1) % f.size

	if f.lastFPSCheck.IsZero() {
		f.lastFPSCheck = now
	}
	f.frames++
	if elapsed := now.Sub(f.lastFPSCheck); elapsed >= time.Second {
		f.fps = int(float64(f.frames) / elapsed.Seconds())
		f.frames = 0
		f.lastFPSCheck = now
	}
}

// FPS returns the frame rate over the last full second.
func (f *FrameStats) FPS() int {
	return f.fps
}

// Summary returns the average, minimum and maximum of the window.
func (f *FrameStats) Summary() (avg, lo, hi time.Duration) {
	if len(f.history) == 0 {
		return 0, 0, 0
	}
	var total time.Duration
	lo, hi = f.history[0], f.history[0]
	for _, d := range f.history {
		total += d
		lo = min(lo, d)
		hi = max(hi, d)
	}
	return total / time.Duration(len(f.history)), lo, hi
}
