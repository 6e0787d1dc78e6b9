package ecs_test

import (
	"testing"

	"github.com/plus3/catjump/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage(t *testing.T) {
	t.Run("add singleton replaces in place", func(t *testing.T) {
		storage := ecs.NewStorage()
		score := ecs.NewSingleton(storage, Score{Points: 5})
		ptr := score.Get()

		storage.AddSingleton(Score{Points: 9})
		assert.Same(t, ptr, score.Get())
		assert.Equal(t, 9, score.Get().Points)
	})

	t.Run("pointer singletons are rejected", func(t *testing.T) {
		storage := ecs.NewStorage()
		assert.Panics(t, func() { storage.AddSingleton(&Score{}) })
		assert.Panics(t, func() { storage.AddSingleton(nil) })
	})

	t.Run("read singleton expects pointer to pointer", func(t *testing.T) {
		storage := ecs.NewStorage()
		var score Score
		assert.Panics(t, func() { storage.ReadSingleton(&score) })
	})

	t.Run("stats", func(t *testing.T) {
		storage := ecs.NewStorage()
		stats := storage.CollectStats()
		assert.Zero(t, stats.SingletonCount)

		ecs.NewSingleton(storage, Score{})
		ecs.NewSingleton(storage, Body{})

		stats = storage.CollectStats()
		require.Equal(t, 2, stats.SingletonCount)
		assert.Equal(t, []string{"ecs_test.Body", "ecs_test.Score"}, stats.SingletonTypes)
	})

	t.Run("singleton bound before creation", func(t *testing.T) {
		storage := ecs.NewStorage()
		var gravity ecs.Singleton[Gravity]
		gravity.Init(storage)
		assert.Nil(t, gravity.Get())

		storage.AddSingleton(Gravity{Accel: 3})
		require.NotNil(t, gravity.Get())
		assert.Equal(t, float32(3), gravity.Get().Accel)
	})
}
