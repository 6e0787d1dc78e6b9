package main

import (
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/catjump/game"
)

type Report struct {
	// Configuration
	Frames    int
	Hz        int
	Fixed     bool
	JumpEvery int
	LoseEvery int

	// Results
	TotalTime      time.Duration
	TickTime       Stats
	Draws          int
	Presents       int
	DeviceLosses   int
	Landings       int
	Highest        float32
	Snapshot       game.Snapshot
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# catjump Soak Report

## Run Configuration
- **Ticks:** {{.Frames}} at {{.Hz}} Hz ({{if .Fixed}}fixed{{else}}variable{{end}} timestep)
- **Jump Every:** {{.JumpEvery}} ticks
- **Lose Device Every:** {{.LoseEvery}} updates

## Frame Results
- **Updates:** {{.Snapshot.FrameCount}}
- **Simulated Time:** {{printf "%.2f" .Snapshot.TotalSeconds}} s
- **Draws:** {{.Draws}}
- **Presents:** {{.Presents}}
- **Device Losses:** {{.DeviceLosses}}
- **Final Device State:** {{.Snapshot.DeviceState}}
- **Texture Loaded:** {{.Snapshot.TextureLoaded}}

## Character
- **Final Position:** ({{printf "%.1f" .Snapshot.Character.Position.X}}, {{printf "%.1f" .Snapshot.Character.Position.Y}})
- **Ground Line:** {{printf "%.1f" .Snapshot.Character.Ground}}
- **Highest Point:** {{printf "%.1f" .Highest}}
- **Landings:** {{.Landings}}

## Tick Time
- **Total Wall Time:** {{.TotalTime}}
- **Avg:** {{.TickTime.Avg}}
- **Min:** {{.TickTime.Min}}
- **Max:** {{.TickTime.Max}}

## Systems
{{range .Snapshot.Scheduler.Systems}}- {{.Name}}: {{.ExecutionCount}} runs, avg {{.AvgDuration}}, max {{.MaxDuration}}
{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
