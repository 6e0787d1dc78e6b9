// Package game is the application lifecycle: it sequences device creation,
// per-frame update and render, and recovery after device loss.
package game

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"
	"math"

	"github.com/mokiat/gomath/sprec"
	"github.com/plus3/catjump/config"
	"github.com/plus3/catjump/device"
	"github.com/plus3/catjump/ecs"
	"github.com/plus3/catjump/input"
	"github.com/plus3/catjump/steptimer"
)

// Descriptor heap slots.
const (
	DescriptorCat uint32 = iota
	DescriptorCount
)

// ClearColor is cornflower blue.
var ClearColor = color.RGBA{R: 100, G: 149, B: 237, A: 255}

// TextureSource provides the sprite image. It is called on every device
// creation, including after a loss.
type TextureSource interface {
	CatImage() (image.Image, error)
}

// Game owns the device resources, the frame timer and the frame state.
type Game struct {
	resources *device.Resources
	textures  TextureSource
	timer     *steptimer.Timer
	logger    *log.Logger

	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	character *ecs.Singleton[Character]

	heap    *device.DescriptorHeap
	texture device.Texture

	fixedFPS float64
	extra    []ecs.System

	// restoreErr is set when recreating resources after a loss fails; the
	// next Tick reports it.
	restoreErr error
}

// Option configures a Game.
type Option func(*Game)

// WithLogger replaces log.Default.
func WithLogger(logger *log.Logger) Option {
	return func(g *Game) {
		g.logger = logger
	}
}

// WithTimer replaces the default wall-clock timer.
func WithTimer(timer *steptimer.Timer) Option {
	return func(g *Game) {
		g.timer = timer
	}
}

// WithPhysics replaces DefaultPhysics.
func WithPhysics(physics Physics) Option {
	return func(g *Game) {
		g.storage.AddSingleton(physics)
	}
}

// WithFixedTimeStep switches the timer to fixed steps of 1/fps seconds.
func WithFixedTimeStep(fps float64) Option {
	return func(g *Game) {
		g.fixedFPS = fps
	}
}

// WithSystems registers systems to run after input and physics on every
// update. Their Singleton fields are bound to the game's storage.
func WithSystems(systems ...ecs.System) Option {
	return func(g *Game) {
		g.extra = append(g.extra, systems...)
	}
}

// OptionsFromConfig maps the physics and timer settings of cfg to options.
func OptionsFromConfig(cfg config.Config) []Option {
	opts := []Option{WithPhysics(PhysicsFromConfig(cfg.Physics))}
	if cfg.Timer.FixedTimeStep {
		opts = append(opts, WithFixedTimeStep(cfg.Timer.TargetFPS))
	}
	return opts
}

// New creates a game and registers it for device notifications. Nothing is
// created on the device until Initialize.
func New(resources *device.Resources, textures TextureSource, poller input.Poller, opts ...Option) *Game {
	storage := ecs.NewStorage()
	ecs.NewSingleton(storage, DefaultPhysics())
	ecs.NewSingleton(storage, InputState{})

	g := &Game{
		resources: resources,
		textures:  textures,
		timer:     steptimer.New(),
		logger:    log.Default(),
		storage:   storage,
		character: ecs.NewSingleton(storage, Character{}),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.fixedFPS > 0 {
		g.timer.SetFixedTimeStep(true)
		g.timer.SetTargetElapsedSeconds(1 / g.fixedFPS)
	}

	g.scheduler = ecs.NewScheduler(storage)
	g.scheduler.Register(&InputSystem{Poller: poller})
	g.scheduler.Register(&PhysicsSystem{})
	for _, system := range g.extra {
		g.scheduler.Register(system)
	}

	resources.RegisterDeviceNotify(g)
	return g
}

// DefaultSize is the preferred window size.
func (g *Game) DefaultSize() (width, height int) {
	return 800, 600
}

// Initialize binds the output size and creates all device resources.
// An error wrapping device.ErrShaderUnsupported is unrecoverable.
func (g *Game) Initialize(width, height int) error {
	g.resources.SetWindow(width, height)

	if err := g.resources.CreateDeviceResources(); err != nil {
		return fmt.Errorf("game: %w", err)
	}
	if err := g.createDeviceDependentResources(); err != nil {
		return err
	}

	if err := g.resources.CreateWindowSizeDependentResources(); err != nil {
		return fmt.Errorf("game: %w", err)
	}
	g.createWindowSizeDependentResources()

	g.logger.Printf("catjump: initialized %dx%d", width, height)
	return nil
}

// Tick runs the timer, updating zero or more times, then renders.
func (g *Game) Tick() error {
	if g.restoreErr != nil {
		return g.restoreErr
	}

	g.timer.Tick(g.update)
	return g.render()
}

func (g *Game) update() {
	g.scheduler.Once(g.timer.ElapsedSeconds())
}

func (g *Game) render() error {
	// Nothing to draw before the first update.
	if g.timer.FrameCount() == 0 {
		return nil
	}

	surface, err := g.resources.Prepare()
	if errors.Is(err, device.ErrDeviceLost) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("game: prepare: %w", err)
	}

	surface.Clear(ClearColor)

	if tex, ok := g.spriteTexture(); ok {
		c := g.character.Get()
		surface.DrawSprite(tex, device.Sprite{
			Position: c.Position,
			Origin:   c.Origin,
			Rotation: float32(math.Cos(g.timer.TotalSeconds())) * 4,
			Tint:     color.White,
		})
	}

	if err := g.resources.Present(); err != nil {
		return fmt.Errorf("game: %w", err)
	}
	return nil
}

func (g *Game) spriteTexture() (device.Texture, bool) {
	if g.heap == nil {
		return nil, false
	}
	return g.heap.Get(DescriptorCat)
}

func (g *Game) createDeviceDependentResources() error {
	backend := g.resources.Backend()

	if err := backend.CheckShaderSupport(); err != nil {
		return fmt.Errorf("game: %w", err)
	}

	g.heap = device.NewDescriptorHeap(DescriptorCount)

	img, err := g.textures.CatImage()
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}
	tex, err := backend.NewTexture(img)
	if err != nil {
		return fmt.Errorf("game: upload texture: %w", err)
	}
	if err := g.heap.Put(DescriptorCat, tex); err != nil {
		return fmt.Errorf("game: %w", err)
	}
	g.texture = tex

	g.character.Get().Origin = sprec.Vec2Prod(device.TextureSize(tex), 0.5)
	return nil
}

func (g *Game) createWindowSizeDependentResources() {
	w, h := g.resources.OutputSize()
	c := g.character.Get()
	c.Position = sprec.NewVec2(float32(w)/2, float32(h)/2)
	c.Ground = c.Position.Y
}

// OnDeviceLost implements device.Notify.
func (g *Game) OnDeviceLost() {
	g.logger.Println("catjump: device lost, releasing resources")
	g.texture = nil
	if g.heap != nil {
		g.heap.Release()
		g.heap = nil
	}
}

// OnDeviceRestored implements device.Notify. A failed restore is reported
// by the following Ticks until a later restore succeeds.
func (g *Game) OnDeviceRestored() {
	g.restoreErr = nil
	if err := g.createDeviceDependentResources(); err != nil {
		g.restoreErr = err
		return
	}
	g.createWindowSizeDependentResources()
	g.logger.Println("catjump: device restored")
}

// OnActivated is called when the window gains focus.
func (g *Game) OnActivated() {}

// OnDeactivated is called when the window loses focus.
func (g *Game) OnDeactivated() {}

// OnSuspending is called before the process is suspended or minimized.
func (g *Game) OnSuspending() {}

// OnResuming discards the time spent suspended.
func (g *Game) OnResuming() {
	g.timer.ResetElapsedTime()
}

// OnWindowMoved is called after the window moves.
func (g *Game) OnWindowMoved() {}

// OnWindowSizeChanged resizes the output and recenters the character.
func (g *Game) OnWindowSizeChanged(width, height int) {
	if !g.resources.WindowSizeChanged(width, height) {
		return
	}
	g.createWindowSizeDependentResources()
}

// Close waits for outstanding GPU work and releases device resources.
func (g *Game) Close() {
	g.resources.WaitForGPU()
	g.texture = nil
	if g.heap != nil {
		g.heap.Release()
		g.heap = nil
	}
}

// Character returns a copy of the character state.
func (g *Game) Character() Character {
	return *g.character.Get()
}

// Timer returns the frame timer.
func (g *Game) Timer() *steptimer.Timer {
	return g.timer
}

// Resources returns the device resources manager.
func (g *Game) Resources() *device.Resources {
	return g.resources
}
