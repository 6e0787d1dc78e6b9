package main

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"io"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/plus3/catjump/assets"
	"github.com/plus3/catjump/config"
	"github.com/plus3/catjump/device"
	"github.com/plus3/catjump/ecs"
	"github.com/plus3/catjump/game"
	"github.com/plus3/catjump/input"
	"github.com/plus3/catjump/steptimer"
)

type soakConfig struct {
	Frames         int
	Hz             int
	JumpEvery      int
	LoseEvery      int
	Fixed          bool
	ConfigPath     string
	AssetRoot      string
	GCPauseMetrics bool
}

type syntheticTexture struct{}

func (syntheticTexture) CatImage() (image.Image, error) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	img.Set(32, 32, color.White)
	return img, nil
}

// lossInjector loses the device every N updates. The loss is deferred to
// the end of the update so physics never sees a half-restored character.
type lossInjector struct {
	every     int
	resources *device.Resources

	updates int
	losses  int
	err     error
}

func (s *lossInjector) Execute(frame *ecs.UpdateFrame) {
	s.updates++
	if s.every <= 0 || s.updates%s.every != 0 {
		return
	}

	update := s.updates
	frame.Commands.Defer(func() {
		if err := s.resources.HandleDeviceLost(context.Background()); err != nil {
			if s.err == nil {
				s.err = fmt.Errorf("update %d: %w", update, err)
			}
			return
		}
		s.losses++
	})
}

func run(cfg soakConfig) (*Report, error) {
	if cfg.Hz <= 0 {
		return nil, fmt.Errorf("invalid hz: %d", cfg.Hz)
	}

	gameCfg := config.Default()
	if cfg.ConfigPath != "" {
		var err error
		if gameCfg, err = config.Load(cfg.ConfigPath); err != nil {
			return nil, err
		}
	}
	gameCfg.Timer.FixedTimeStep = cfg.Fixed
	gameCfg.Timer.TargetFPS = float64(cfg.Hz)

	var textures game.TextureSource = syntheticTexture{}
	if cfg.AssetRoot != "" {
		textures = assets.NewLibrary(os.DirFS(cfg.AssetRoot), nil)
	}

	backend := device.NewHeadlessBackend()
	clock := steptimer.NewManualClock(time.Now())
	step := time.Second / time.Duration(cfg.Hz)

	resources := device.NewResources(backend)
	injector := &lossInjector{every: cfg.LoseEvery, resources: resources}

	opts := append(game.OptionsFromConfig(gameCfg),
		game.WithTimer(steptimer.New(steptimer.WithClock(clock.Now))),
		game.WithLogger(log.New(io.Discard, "", 0)),
		game.WithSystems(injector),
	)
	g := game.New(resources, textures, &input.ScriptedPoller{Every: cfg.JumpEvery}, opts...)
	if err := g.Initialize(gameCfg.Window.Width, gameCfg.Window.Height); err != nil {
		return nil, err
	}
	defer g.Close()

	report := &Report{
		Frames:         cfg.Frames,
		Hz:             cfg.Hz,
		Fixed:          cfg.Fixed,
		JumpEvery:      cfg.JumpEvery,
		LoseEvery:      cfg.LoseEvery,
		GCPauseMetrics: cfg.GCPauseMetrics,
		TickTime: Stats{
			Samples: make([]time.Duration, 0, cfg.Frames),
		},
		Highest: g.Character().Ground,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	startTime := time.Now()
	wasGrounded := true
	for frame := 1; frame <= cfg.Frames; frame++ {
		clock.Advance(step)

		tickStart := time.Now()
		if err := g.Tick(); err != nil {
			return nil, fmt.Errorf("tick %d: %w", frame, err)
		}
		if injector.err != nil {
			return nil, injector.err
		}
		report.TickTime.Samples = append(report.TickTime.Samples, time.Since(tickStart))

		c := g.Character()
		report.Highest = min(report.Highest, c.Position.Y)
		if c.Grounded && !wasGrounded {
			report.Landings++
		}
		wasGrounded = c.Grounded
	}

	report.TotalTime = time.Since(startTime)
	report.TickTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	report.Draws = len(backend.Draws)
	report.Presents = backend.Presents
	report.DeviceLosses = injector.losses
	report.Snapshot = g.Snapshot()
	return report, nil
}
