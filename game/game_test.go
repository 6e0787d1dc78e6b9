package game_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"io"
	"log"
	"testing"
	"time"

	"github.com/mokiat/gomath/sprec"
	"github.com/plus3/catjump/config"
	"github.com/plus3/catjump/device"
	"github.com/plus3/catjump/ecs"
	"github.com/plus3/catjump/game"
	"github.com/plus3/catjump/steptimer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type imageSource struct {
	width, height int
	calls         int
	err           error
}

func (s *imageSource) CatImage() (image.Image, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return image.NewRGBA(image.Rect(0, 0, s.width, s.height)), nil
}

type fixture struct {
	game    *game.Game
	backend *device.HeadlessBackend
	source  *imageSource
	clock   *steptimer.ManualClock
	poller  *levelPoller
}

func newFixture(t *testing.T, opts ...game.Option) *fixture {
	t.Helper()
	f := &fixture{
		backend: device.NewHeadlessBackend(),
		source:  &imageSource{width: 64, height: 48},
		clock:   steptimer.NewManualClock(time.Unix(0, 0)),
		poller:  &levelPoller{},
	}
	timer := steptimer.New(steptimer.WithClock(f.clock.Now))
	opts = append([]game.Option{
		game.WithTimer(timer),
		game.WithLogger(log.New(io.Discard, "", 0)),
	}, opts...)

	f.game = game.New(device.NewResources(f.backend), f.source, f.poller, opts...)
	return f
}

func (f *fixture) init(t *testing.T) {
	t.Helper()
	w, h := f.game.DefaultSize()
	require.NoError(t, f.game.Initialize(w, h))
}

type characterWatcher struct {
	Character ecs.Singleton[game.Character]
	seen      []game.Character
}

func (w *characterWatcher) Execute(frame *ecs.UpdateFrame) {
	w.seen = append(w.seen, *w.Character.Get())
}

func TestInitialize(t *testing.T) {
	t.Run("creates texture and centers the character", func(t *testing.T) {
		f := newFixture(t)
		f.init(t)

		c := f.game.Character()
		assert.Equal(t, sprec.NewVec2(32, 24), c.Origin)
		assert.Equal(t, sprec.NewVec2(400, 300), c.Position)
		assert.Equal(t, float32(300), c.Ground)
		assert.Len(t, f.backend.LiveTextures(), 1)
		assert.Equal(t, device.StateActive, f.game.Resources().State())
		assert.True(t, f.game.Snapshot().TextureLoaded)
	})

	t.Run("unsupported shaders are fatal", func(t *testing.T) {
		var logs bytes.Buffer
		f := newFixture(t, game.WithLogger(log.New(&logs, "", 0)))
		f.backend.ShaderUnsupported = true

		err := f.game.Initialize(800, 600)
		require.Error(t, err)
		assert.ErrorIs(t, err, device.ErrShaderUnsupported)
		assert.Zero(t, f.source.calls)
		assert.Empty(t, f.backend.LiveTextures())
		assert.Empty(t, logs.String(), "the caller reports the error")
	})

	t.Run("texture failure is reported", func(t *testing.T) {
		f := newFixture(t)
		f.source.err = errors.New("cat.png: no such file")

		err := f.game.Initialize(800, 600)
		assert.ErrorIs(t, err, f.source.err)
	})
}

func TestTick(t *testing.T) {
	t.Run("render waits for the first update", func(t *testing.T) {
		f := newFixture(t, game.WithFixedTimeStep(60))
		f.init(t)

		require.NoError(t, f.game.Tick())
		assert.Zero(t, f.game.Timer().FrameCount())
		assert.Empty(t, f.backend.Clears)
		assert.Empty(t, f.backend.Draws)
		assert.Zero(t, f.backend.Presents)

		f.clock.Advance(time.Second / 60)
		require.NoError(t, f.game.Tick())
		assert.Equal(t, uint64(1), f.game.Timer().FrameCount())
		assert.Equal(t, 1, f.backend.Presents)
	})

	t.Run("clears draws and presents", func(t *testing.T) {
		f := newFixture(t)
		f.init(t)

		f.clock.Advance(10 * time.Millisecond)
		require.NoError(t, f.game.Tick())

		require.Equal(t, []color.Color{game.ClearColor}, f.backend.Clears)
		require.Len(t, f.backend.Draws, 1)
		draw := f.backend.Draws[0]
		c := f.game.Character()
		assert.Equal(t, c.Position, draw.Sprite.Position)
		assert.Equal(t, c.Origin, draw.Sprite.Origin)
		assert.Same(t, f.backend.LiveTextures()[0], draw.Texture)
		assert.Equal(t, 1, f.backend.Presents)
	})

	t.Run("one update per tick in variable mode", func(t *testing.T) {
		f := newFixture(t)
		f.init(t)

		for range 5 {
			f.clock.Advance(16 * time.Millisecond)
			require.NoError(t, f.game.Tick())
		}
		snap := f.game.Snapshot()
		assert.Equal(t, uint64(5), snap.FrameCount)
		require.Len(t, snap.Scheduler.Systems, 2)
		assert.Equal(t, int64(5), snap.Scheduler.Systems[1].ExecutionCount)
	})

	t.Run("space jumps", func(t *testing.T) {
		f := newFixture(t)
		f.init(t)

		f.poller.state.Key = true
		f.clock.Advance(10 * time.Millisecond)
		require.NoError(t, f.game.Tick())

		c := f.game.Character()
		assert.Equal(t, game.DefaultPhysics().JumpImpulse, c.Velocity)
		assert.Less(t, c.Position.Y, float32(300))
	})

	t.Run("extra systems run after physics", func(t *testing.T) {
		watcher := &characterWatcher{}
		f := newFixture(t, game.WithSystems(watcher))
		f.init(t)

		f.poller.state.Key = true
		f.clock.Advance(10 * time.Millisecond)
		require.NoError(t, f.game.Tick())

		require.Len(t, watcher.seen, 1)
		assert.Equal(t, f.game.Character(), watcher.seen[0])
		snap := f.game.Snapshot()
		require.Len(t, snap.Scheduler.Systems, 3)
		assert.Equal(t, "characterWatcher", snap.Scheduler.Systems[2].Name)
	})

	t.Run("snapshot reports physics", func(t *testing.T) {
		physics := game.Physics{Gravity: sprec.NewVec2(0, 10), JumpImpulse: sprec.NewVec2(0, -5)}
		f := newFixture(t, game.WithPhysics(physics))
		f.init(t)
		assert.Equal(t, physics, f.game.Snapshot().Physics)
	})

	t.Run("config physics", func(t *testing.T) {
		cfg := config.Default()
		cfg.Physics.JumpSpeed = 250
		f := newFixture(t, game.OptionsFromConfig(cfg)...)
		f.init(t)

		f.poller.state.Mouse = true
		f.clock.Advance(10 * time.Millisecond)
		require.NoError(t, f.game.Tick())
		assert.Equal(t, sprec.NewVec2(0, -250), f.game.Character().Velocity)
	})
}

func TestDeviceLoss(t *testing.T) {
	t.Run("restored state matches initial state", func(t *testing.T) {
		f := newFixture(t)
		f.init(t)
		initial := f.game.Character()
		firstTexture := f.backend.LiveTextures()[0]

		require.NoError(t, f.game.Resources().HandleDeviceLost(context.Background()))

		restored := f.game.Character()
		assert.Equal(t, initial.Origin, restored.Origin)
		assert.Equal(t, initial.Position, restored.Position)
		assert.True(t, firstTexture.Disposed)

		live := f.backend.LiveTextures()
		require.Len(t, live, 1)
		assert.Equal(t, 2, live[0].Generation)
		assert.True(t, f.game.Snapshot().TextureLoaded)
		assert.Equal(t, 2, f.source.calls)

		f.clock.Advance(10 * time.Millisecond)
		require.NoError(t, f.game.Tick())
		require.Len(t, f.backend.Draws, 1)
		assert.Same(t, live[0], f.backend.Draws[0].Texture)
	})

	t.Run("frames are skipped while lost", func(t *testing.T) {
		f := newFixture(t)
		f.init(t)
		f.backend.CreateErr = errors.New("adapter removed")

		require.Error(t, f.game.Resources().HandleDeviceLost(context.Background()))
		assert.False(t, f.game.Snapshot().TextureLoaded)

		f.clock.Advance(10 * time.Millisecond)
		require.NoError(t, f.game.Tick())
		assert.Empty(t, f.backend.Draws)
		assert.Equal(t, uint64(1), f.game.Timer().FrameCount())
	})

	t.Run("restore failure surfaces on the next tick", func(t *testing.T) {
		f := newFixture(t)
		f.init(t)
		f.source.err = errors.New("cat.png vanished")

		require.NoError(t, f.game.Resources().HandleDeviceLost(context.Background()))

		err := f.game.Tick()
		assert.ErrorIs(t, err, f.source.err)
	})

	t.Run("successful restore clears an earlier failure", func(t *testing.T) {
		f := newFixture(t)
		f.init(t)
		f.source.err = errors.New("cat.png vanished")
		require.NoError(t, f.game.Resources().HandleDeviceLost(context.Background()))
		require.Error(t, f.game.Tick())

		f.source.err = nil
		require.NoError(t, f.game.Resources().HandleDeviceLost(context.Background()))
		assert.Equal(t, device.StateActive, f.game.Resources().State())
		assert.True(t, f.game.Snapshot().TextureLoaded)

		f.clock.Advance(10 * time.Millisecond)
		require.NoError(t, f.game.Tick())
		require.Len(t, f.backend.Draws, 1)
		assert.Equal(t, 1, f.backend.Presents)
	})
}

func TestMessages(t *testing.T) {
	t.Run("window size change recenters", func(t *testing.T) {
		f := newFixture(t)
		f.init(t)

		f.game.OnWindowSizeChanged(1000, 500)
		c := f.game.Character()
		assert.Equal(t, sprec.NewVec2(500, 250), c.Position)
		assert.Equal(t, float32(250), c.Ground)
	})

	t.Run("unchanged size keeps state", func(t *testing.T) {
		f := newFixture(t)
		f.init(t)

		f.poller.state.Key = true
		f.clock.Advance(10 * time.Millisecond)
		require.NoError(t, f.game.Tick())
		before := f.game.Character()

		f.game.OnWindowSizeChanged(800, 600)
		f.game.OnWindowMoved()
		assert.Equal(t, before, f.game.Character())
	})

	t.Run("resuming discards suspended time", func(t *testing.T) {
		f := newFixture(t)
		f.init(t)

		f.game.OnSuspending()
		f.clock.Advance(time.Hour)
		f.game.OnResuming()

		f.clock.Advance(5 * time.Millisecond)
		require.NoError(t, f.game.Tick())
		assert.InDelta(t, 0.005, f.game.Timer().ElapsedSeconds(), 1e-9)
	})

	t.Run("close waits and releases", func(t *testing.T) {
		f := newFixture(t)
		f.init(t)

		f.game.Close()
		assert.Equal(t, 1, f.backend.GPUWaits)
		assert.Empty(t, f.backend.LiveTextures())
		assert.False(t, f.game.Snapshot().TextureLoaded)
	})
}
