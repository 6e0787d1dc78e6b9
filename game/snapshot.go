package game

import "github.com/plus3/catjump/ecs"

// Snapshot is a read-only view of the game for overlays and reports.
type Snapshot struct {
	Character       Character
	Physics         Physics
	FrameCount      uint64
	TotalSeconds    float64
	ElapsedSeconds  float64
	FramesPerSecond uint32
	DeviceState     string
	TextureLoaded   bool
	Scheduler       *ecs.SchedulerStats
	Storage         ecs.StorageStats
}

// Snapshot captures the current state.
func (g *Game) Snapshot() Snapshot {
	var physics *Physics
	if !g.storage.ReadSingleton(&physics) {
		physics = &Physics{}
	}

	return Snapshot{
		Character:       g.Character(),
		Physics:         *physics,
		FrameCount:      g.timer.FrameCount(),
		TotalSeconds:    g.timer.TotalSeconds(),
		ElapsedSeconds:  g.timer.ElapsedSeconds(),
		FramesPerSecond: g.timer.FramesPerSecond(),
		DeviceState:     g.resources.State(),
		TextureLoaded:   g.texture != nil,
		Scheduler:       g.scheduler.GetStats(),
		Storage:         g.storage.CollectStats(),
	}
}
