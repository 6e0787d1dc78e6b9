package platform

import (
	"context"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/catjump/game"
)

// Overlay is drawn on top of the game, such as the debug UI.
type Overlay interface {
	BeginFrame()
	EndFrame()
	Render(snapshot game.Snapshot)
	Draw(screen *ebiten.Image)
	Layout(width, height int)
	Toggle()
}

// Runner adapts a game.Game to ebiten.Game. Draw drives Game.Tick, so each
// ebiten frame is one update-then-render pass.
type Runner struct {
	game    *game.Game
	backend *Backend
	poller  *Poller
	overlay Overlay

	focused bool
	winX    int
	winY    int
	err     error
}

// NewRunner wires g to ebiten. overlay may be nil.
func NewRunner(g *game.Game, backend *Backend, poller *Poller, overlay Overlay) *Runner {
	return &Runner{
		game:    g,
		backend: backend,
		poller:  poller,
		overlay: overlay,
		focused: true,
	}
}

func (r *Runner) Update() error {
	if r.err != nil {
		return r.err
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	r.forwardWindowMessages()

	// F5 simulates the host reporting a lost device.
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		if err := r.game.Resources().HandleDeviceLost(context.Background()); err != nil {
			return fmt.Errorf("platform: %w", err)
		}
	}

	if r.overlay != nil {
		if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
			r.overlay.Toggle()
		}
		r.overlay.BeginFrame()
		r.overlay.Render(r.game.Snapshot())
		r.overlay.EndFrame()
	}

	r.poller.Sample()
	return nil
}

func (r *Runner) forwardWindowMessages() {
	if focused := ebiten.IsFocused(); focused != r.focused {
		r.focused = focused
		if focused {
			r.game.OnActivated()
		} else {
			r.game.OnDeactivated()
		}
	}

	if x, y := ebiten.WindowPosition(); x != r.winX || y != r.winY {
		r.winX, r.winY = x, y
		r.game.OnWindowMoved()
	}
}

func (r *Runner) Draw(screen *ebiten.Image) {
	r.backend.Bind(screen)
	if err := r.game.Tick(); err != nil && r.err == nil {
		r.err = err
	}

	if r.overlay != nil {
		r.overlay.Draw(screen)
	}
}

func (r *Runner) Layout(outsideWidth, outsideHeight int) (int, int) {
	r.game.OnWindowSizeChanged(outsideWidth, outsideHeight)
	if r.overlay != nil {
		r.overlay.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Run opens the window (unless the overlay already did) and blocks until
// the game ends. The game is closed before returning.
func (r *Runner) Run(title string) error {
	defer r.game.Close()

	if r.overlay == nil {
		width, height := r.game.Resources().OutputSize()
		ebiten.SetWindowSize(width, height)
		ebiten.SetWindowTitle(title)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(r); err != nil {
		return err
	}
	log.Println("catjump: window closed")
	return nil
}
