// Command catjump opens a window with a cat sprite that jumps on space or a
// left click. F1 toggles the debug overlay, F5 simulates a lost device.
package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/plus3/catjump/assets"
	"github.com/plus3/catjump/config"
	"github.com/plus3/catjump/debugui"
	"github.com/plus3/catjump/device"
	"github.com/plus3/catjump/game"
	"github.com/plus3/catjump/platform"
)

func main() {
	var (
		configPath = flag.String("config", "", "Optional JSON config file.")
		width      = flag.Int("width", 0, "Window width (overrides config).")
		height     = flag.Int("height", 0, "Window height (overrides config).")
		assetRoot  = flag.String("assets", "", "Directory containing cat.png (overrides config).")
		fixed      = flag.Bool("fixed", false, "Use a fixed timestep.")
		fps        = flag.Float64("fps", 0, "Target updates per second for the fixed timestep.")
		debug      = flag.Bool("debug", false, "Show the debug overlay.")
	)
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if *width > 0 {
		cfg.Window.Width = *width
	}
	if *height > 0 {
		cfg.Window.Height = *height
	}
	if *assetRoot != "" {
		cfg.AssetRoot = *assetRoot
	}
	if *fixed {
		cfg.Timer.FixedTimeStep = true
	}
	if *fps > 0 {
		cfg.Timer.TargetFPS = *fps
	}
	if *debug {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// The overlay creates the window itself, so it must exist before any
	// device resources.
	var overlay platform.Overlay
	if cfg.Debug {
		overlay = debugui.New(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)
	}

	backend := platform.NewBackend()
	poller := &platform.Poller{}
	library := assets.NewLibrary(os.DirFS(cfg.AssetRoot), nil)

	g := game.New(device.NewResources(backend), library, poller, game.OptionsFromConfig(cfg)...)
	if err := g.Initialize(cfg.Window.Width, cfg.Window.Height); err != nil {
		if errors.Is(err, device.ErrShaderUnsupported) {
			log.Fatalf("This GPU cannot run the sprite shader: %v", err)
		}
		log.Fatalf("Failed to initialize: %v", err)
	}

	if err := platform.NewRunner(g, backend, poller, overlay).Run(cfg.Window.Title); err != nil {
		log.Fatalf("Game exited with error: %v", err)
	}
}
