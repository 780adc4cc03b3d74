package core

import "time"

// FixedStep paces simulation steps at a steady rate, independent of the frame
// rate of the caller.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewFixedStep constructs a FixedStep controller targeting rate steps per second.
func NewFixedStep(rate float64) *FixedStep {
	fs := &FixedStep{now: time.Now}
	fs.SetRate(rate)
	return fs
}

// SetRate changes the step rate. Non-positive rates fall back to one step per
// second. It is safe to call from the main loop.
func (f *FixedStep) SetRate(rate float64) {
	if rate <= 0 {
		rate = 1
	}
	f.step = time.Duration(float64(time.Second) / rate)
	if f.step <= 0 {
		f.step = time.Nanosecond
	}
}

// Rate returns the configured steps per second.
func (f *FixedStep) Rate() float64 {
	return float64(time.Second) / float64(f.step)
}

// Reset drops any accumulated time, e.g. when playback resumes after a pause.
func (f *FixedStep) Reset() {
	f.accumulator = 0
	f.last = time.Time{}
}

// ShouldStep reports whether the simulation should advance by one step. At
// most one step is granted per call; surplus time carries over.
func (f *FixedStep) ShouldStep() bool {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	f.accumulator += delta
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		if f.accumulator > f.step {
			f.accumulator = f.step
		}
		return true
	}
	return false
}
