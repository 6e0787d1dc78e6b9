package platform

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/catjump/input"
)

// Poller samples the space bar and the left mouse button. Sample runs in
// ebiten's Update; the game polls from Draw.
type Poller struct {
	latch input.Latch
}

// Sample reads the current button levels.
func (p *Poller) Sample() {
	p.latch.Sample(input.State{
		Key:   ebiten.IsKeyPressed(ebiten.KeySpace),
		Mouse: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
	})
}

// Poll implements input.Poller.
func (p *Poller) Poll() input.State {
	return p.latch.Poll()
}
