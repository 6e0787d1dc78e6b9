package debugui

import "time"

// FrameHistory is a fixed-size ring of frame times in milliseconds.
type FrameHistory struct {
	samples []float32
	index   int
	count   int
	last    time.Time
}

// NewFrameHistory keeps the last size samples. size is at least one.
func NewFrameHistory(size int) *FrameHistory {
	return &FrameHistory{samples: make([]float32, max(size, 1))}
}

// Mark records the wall time since the previous Mark as one frame. The first
// call only starts the clock.
func (h *FrameHistory) Mark(now time.Time) {
	if !h.last.IsZero() {
		h.Push(float32(now.Sub(h.last).Seconds() * 1000))
	}
	h.last = now
}

// Push records a sample, overwriting the oldest when full.
func (h *FrameHistory) Push(ms float32) {
	h.samples[h.index] = ms
	h.index = (h.index + 1) % len(h.samples)
	h.count = min(h.count+1, len(h.samples))
}

// Samples returns the recorded samples, oldest first.
func (h *FrameHistory) Samples() []float32 {
	out := make([]float32, 0, h.count)
	start := (h.index - h.count + len(h.samples)) % len(h.samples)
	for i := range h.count {
		out = append(out, h.samples[(start+i)%len(h.samples)])
	}
	return out
}

// Average is the mean of the recorded samples, or zero when empty.
func (h *FrameHistory) Average() float32 {
	if h.count == 0 {
		return 0
	}
	var total float32
	for i := range h.count {
		total += h.samples[i]
	}
	return total / float32(h.count)
}
