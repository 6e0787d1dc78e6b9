// Package input turns polled button levels into edge-triggered actions.
package input

// State is one polled sample of the buttons the game reacts to. Key and
// Mouse are levels. The press counts are rising transitions a poller saw
// since its previous poll; pollers that only see levels leave them zero.
type State struct {
	Key   bool
	Mouse bool

	KeyPresses   int
	MousePresses int
}

// Poller returns the current button levels.
type Poller interface {
	Poll() State
}

// Edges are the presses detected between two samples.
type Edges struct {
	KeyPressed   bool
	MousePressed bool
}

// Any reports whether any button went down.
func (e Edges) Any() bool {
	return e.KeyPressed || e.MousePressed
}

// Tracker detects button-down edges across successive samples.
type Tracker struct {
	last State
}

// Update records s and returns the buttons that went down since the previous sample.
func (t *Tracker) Update(s State) Edges {
	edges := Edges{
		KeyPressed:   s.KeyPresses > 0 || (s.Key && !t.last.Key),
		MousePressed: s.MousePresses > 0 || (s.Mouse && !t.last.Mouse),
	}
	t.last = s
	return edges
}

// Reset forgets the previous sample, so held buttons report an edge again.
func (t *Tracker) Reset() {
	t.last = State{}
}
