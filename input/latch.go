package input

// Latch sits between a sampler running more often than the game polls and
// the game. It counts every press seen between two polls, so a tap shorter
// than a poll, or a release and re-press of a held button, still reaches the
// Tracker. It implements Poller.
type Latch struct {
	level   State
	pending State
}

// Sample records the current button levels.
func (l *Latch) Sample(s State) {
	if s.Key && !l.level.Key {
		l.pending.KeyPresses++
	}
	if s.Mouse && !l.level.Mouse {
		l.pending.MousePresses++
	}
	l.level.Key, l.level.Mouse = s.Key, s.Mouse
}

// Poll returns the current levels with the presses counted since the last
// poll, then resets the counts.
func (l *Latch) Poll() State {
	s := State{
		Key:          l.level.Key,
		Mouse:        l.level.Mouse,
		KeyPresses:   l.pending.KeyPresses,
		MousePresses: l.pending.MousePresses,
	}
	l.pending = State{}
	return s
}
