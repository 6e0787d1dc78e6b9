// Package config holds the settings the game binaries start from.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Config is the full set of runtime settings.
type Config struct {
	Window  WindowConfig  `json:"window"`
	Timer   TimerConfig   `json:"timer"`
	Physics PhysicsConfig `json:"physics"`

	// AssetRoot is the directory cat.png is read from.
	AssetRoot string `json:"asset_root"`
	// Debug enables the debug overlay.
	Debug bool `json:"debug"`
}

// WindowConfig sizes the window. The minimum is 320x200.
type WindowConfig struct {
	Title  string `json:"title"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// TimerConfig selects the frame timer mode.
type TimerConfig struct {
	FixedTimeStep bool    `json:"fixed_time_step"`
	TargetFPS     float64 `json:"target_fps"`
}

// PhysicsConfig tunes the jump. Units are pixels and seconds, +Y is down.
type PhysicsConfig struct {
	Gravity   float32 `json:"gravity"`
	JumpSpeed float32 `json:"jump_speed"`
}

// Default returns the settings used when nothing else is specified.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "catjump",
			Width:  800,
			Height: 600,
		},
		Timer: TimerConfig{
			FixedTimeStep: false,
			TargetFPS:     60,
		},
		Physics: PhysicsConfig{
			Gravity:   1200,
			JumpSpeed: 600,
		},
		AssetRoot: ".",
	}
}

// Load overlays the JSON file at path onto Default.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width < 320 || c.Window.Height < 200 {
		errs = append(errs, fmt.Errorf("window size %dx%d is below 320x200", c.Window.Width, c.Window.Height))
	}
	if c.Timer.TargetFPS <= 0 {
		errs = append(errs, fmt.Errorf("target fps must be positive, got %v", c.Timer.TargetFPS))
	}
	if c.Physics.Gravity <= 0 {
		errs = append(errs, fmt.Errorf("gravity must be positive, got %v", c.Physics.Gravity))
	}
	if c.Physics.JumpSpeed <= 0 {
		errs = append(errs, fmt.Errorf("jump speed must be positive, got %v", c.Physics.JumpSpeed))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
