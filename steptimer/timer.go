// Package steptimer drives per-tick elapsed time for a frame loop, in either
// variable or fixed timestep mode.
package steptimer

import "time"

// DefaultMaxDelta bounds the time a single tick can account for, so that a
// debugger pause or a stalled window does not produce a huge catch-up burst.
const DefaultMaxDelta = 100 * time.Millisecond

// fixedSnap is how close a measured delta must be to the target to be treated
// as exactly one target step in fixed mode.
const fixedSnap = time.Second / 4000

// Clock returns the current time.
type Clock func() time.Time

// Timer tracks elapsed and total time and counts update frames.
type Timer struct {
	clock Clock

	last     time.Time
	maxDelta time.Duration

	elapsed  time.Duration
	total    time.Duration
	leftOver time.Duration

	frameCount       uint64
	framesPerSecond  uint32
	framesThisSecond uint32
	secondCounter    time.Duration

	fixedTimeStep bool
	target        time.Duration
}

// Option configures a Timer.
type Option func(*Timer)

// WithClock replaces the wall clock, typically with a simulated one.
func WithClock(clock Clock) Option {
	return func(t *Timer) {
		t.clock = clock
	}
}

// WithMaxDelta overrides DefaultMaxDelta.
func WithMaxDelta(d time.Duration) Option {
	return func(t *Timer) {
		t.maxDelta = d
	}
}

// New creates a variable timestep timer targeting 60 updates per second
// when switched to fixed mode.
func New(opts ...Option) *Timer {
	t := &Timer{
		clock:    time.Now,
		maxDelta: DefaultMaxDelta,
		target:   time.Second / 60,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.last = t.clock()
	return t
}

// ElapsedSeconds is the time covered by the most recent update.
func (t *Timer) ElapsedSeconds() float64 { return t.elapsed.Seconds() }

// Elapsed is ElapsedSeconds as a duration.
func (t *Timer) Elapsed() time.Duration { return t.elapsed }

// TotalSeconds is the time accumulated across all updates.
func (t *Timer) TotalSeconds() float64 { return t.total.Seconds() }

// FrameCount is the number of updates run since the timer was created.
func (t *Timer) FrameCount() uint64 { return t.frameCount }

// FramesPerSecond is the update rate measured over the last full second.
func (t *Timer) FramesPerSecond() uint32 { return t.framesPerSecond }

// FixedTimeStep reports whether the timer runs in fixed mode.
func (t *Timer) FixedTimeStep() bool { return t.fixedTimeStep }

// SetFixedTimeStep switches between fixed and variable timestep mode.
func (t *Timer) SetFixedTimeStep(fixed bool) { t.fixedTimeStep = fixed }

// TargetElapsedSeconds is the step length used in fixed mode.
func (t *Timer) TargetElapsedSeconds() float64 { return t.target.Seconds() }

// SetTargetElapsedSeconds sets the fixed mode step length. Non-positive
// values are ignored.
func (t *Timer) SetTargetElapsedSeconds(seconds float64) {
	d := time.Duration(seconds * float64(time.Second))
	if d <= 0 {
		return
	}
	t.target = d
}

// ResetElapsedTime discards the time since the last tick. Call it after an
// intentional pause, such as resuming from suspension, to avoid a catch-up.
func (t *Timer) ResetElapsedTime() {
	t.last = t.clock()
	t.leftOver = 0
	t.framesPerSecond = 0
	t.framesThisSecond = 0
	t.secondCounter = 0
}

// Tick advances the timer and calls update the appropriate number of times:
// exactly once in variable mode, zero or more times in fixed mode.
func (t *Timer) Tick(update func()) {
	now := t.clock()
	delta := now.Sub(t.last)
	t.last = now

	if delta < 0 {
		delta = 0
	}
	t.secondCounter += delta

	if delta > t.maxDelta {
		delta = t.maxDelta
	}

	lastFrameCount := t.frameCount

	if t.fixedTimeStep {
		if diff := delta - t.target; diff < fixedSnap && diff > -fixedSnap {
			delta = t.target
		}

		t.leftOver += delta
		for t.leftOver >= t.target {
			t.elapsed = t.target
			t.total += t.target
			t.leftOver -= t.target
			t.frameCount++

			if update != nil {
				update()
			}
		}
	} else {
		t.elapsed = delta
		t.total += delta
		t.leftOver = 0
		t.frameCount++

		if update != nil {
			update()
		}
	}

	if t.frameCount != lastFrameCount {
		t.framesThisSecond++
	}

	if t.secondCounter >= time.Second {
		t.framesPerSecond = t.framesThisSecond
		t.framesThisSecond = 0
		t.secondCounter %= time.Second
	}
}
