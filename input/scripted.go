package input

// ScriptedPoller replays a fixed pattern: the key is held for Hold polls
// every Every polls. A zero Every never presses.
type ScriptedPoller struct {
	Every int
	Hold  int

	polls int
}

// Poll implements Poller.
func (p *ScriptedPoller) Poll() State {
	n := p.polls
	p.polls++
	if p.Every <= 0 {
		return State{}
	}
	hold := max(p.Hold, 1)
	return State{Key: n%p.Every < hold}
}

// Polls returns how many times Poll was called.
func (p *ScriptedPoller) Polls() int {
	return p.polls
}
