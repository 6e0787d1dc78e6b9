package input_test

import (
	"testing"

	"github.com/plus3/catjump/input"
	"github.com/stretchr/testify/assert"
)

func TestTracker(t *testing.T) {
	t.Run("counted presses are edges even while held", func(t *testing.T) {
		var tracker input.Tracker
		tracker.Update(input.State{Key: true})
		assert.True(t, tracker.Update(input.State{Key: true, KeyPresses: 1}).KeyPressed)
		assert.True(t, tracker.Update(input.State{MousePresses: 2}).MousePressed)
	})

	t.Run("press edges only", func(t *testing.T) {
		var tracker input.Tracker

		assert.False(t, tracker.Update(input.State{}).Any())

		edges := tracker.Update(input.State{Key: true})
		assert.True(t, edges.KeyPressed)
		assert.False(t, edges.MousePressed)

		assert.False(t, tracker.Update(input.State{Key: true}).Any(), "held key is not a new press")
		assert.False(t, tracker.Update(input.State{}).Any(), "release is not a press")
		assert.True(t, tracker.Update(input.State{Key: true}).KeyPressed)
	})

	t.Run("mouse and key are independent", func(t *testing.T) {
		var tracker input.Tracker
		tracker.Update(input.State{Key: true})

		edges := tracker.Update(input.State{Key: true, Mouse: true})
		assert.False(t, edges.KeyPressed)
		assert.True(t, edges.MousePressed)
	})

	t.Run("reset re-arms held buttons", func(t *testing.T) {
		var tracker input.Tracker
		tracker.Update(input.State{Mouse: true})
		tracker.Reset()
		assert.True(t, tracker.Update(input.State{Mouse: true}).MousePressed)
	})
}

func TestScriptedPoller(t *testing.T) {
	poller := &input.ScriptedPoller{Every: 3, Hold: 2}

	var keys []bool
	for range 6 {
		keys = append(keys, poller.Poll().Key)
	}
	assert.Equal(t, []bool{true, true, false, true, true, false}, keys)
	assert.Equal(t, 6, poller.Polls())

	idle := &input.ScriptedPoller{}
	assert.Equal(t, input.State{}, idle.Poll())
}

func TestLatch(t *testing.T) {
	t.Run("short tap survives until polled", func(t *testing.T) {
		var latch input.Latch
		latch.Sample(input.State{Key: true})
		latch.Sample(input.State{})

		s := latch.Poll()
		assert.False(t, s.Key)
		assert.Equal(t, 1, s.KeyPresses)
		assert.Zero(t, latch.Poll().KeyPresses)
	})

	t.Run("held button stays down across polls without samples", func(t *testing.T) {
		var latch input.Latch
		latch.Sample(input.State{Mouse: true})
		assert.Equal(t, 1, latch.Poll().MousePresses)

		s := latch.Poll()
		assert.True(t, s.Mouse)
		assert.Zero(t, s.MousePresses)
	})

	t.Run("tap through the tracker is one jump", func(t *testing.T) {
		var latch input.Latch
		var tracker input.Tracker
		latch.Sample(input.State{Key: true})
		latch.Sample(input.State{})
		assert.True(t, tracker.Update(latch.Poll()).KeyPressed)
		assert.False(t, tracker.Update(latch.Poll()).Any())
	})

	t.Run("re-press of a held button between polls is a new jump", func(t *testing.T) {
		var latch input.Latch
		var tracker input.Tracker
		latch.Sample(input.State{Key: true})
		assert.True(t, tracker.Update(latch.Poll()).KeyPressed)

		latch.Sample(input.State{Key: true})
		assert.False(t, tracker.Update(latch.Poll()).Any(), "still held")

		latch.Sample(input.State{})
		latch.Sample(input.State{Key: true})
		assert.True(t, tracker.Update(latch.Poll()).KeyPressed)
	})

	t.Run("held samples do not count as presses", func(t *testing.T) {
		var latch input.Latch
		for range 4 {
			latch.Sample(input.State{Key: true, Mouse: true})
		}
		s := latch.Poll()
		assert.Equal(t, 1, s.KeyPresses)
		assert.Equal(t, 1, s.MousePresses)
	})
}
