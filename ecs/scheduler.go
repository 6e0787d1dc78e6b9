package ecs

import (
	"math"
	"reflect"
	"strings"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type registeredSystem struct {
	system System
	name   string

	runs  int64
	min   time.Duration
	max   time.Duration
	last  time.Duration
	total time.Duration
}

func (r *registeredSystem) record(d time.Duration) {
	r.runs++
	r.last = d
	r.total += d
	r.min = min(r.min, d)
	r.max = max(r.max, d)
}

func (r *registeredSystem) stats() SystemStats {
	stats := SystemStats{
		Name:           r.name,
		ExecutionCount: r.runs,
		MinDuration:    r.min,
		MaxDuration:    r.max,
		LastDuration:   r.last,
		TotalDuration:  r.total,
	}
	if r.runs > 0 {
		stats.AvgDuration = r.total / time.Duration(r.runs)
	}
	return stats
}

// Scheduler runs its systems in registration order against one Storage.
type Scheduler struct {
	storage *Storage
	systems []*registeredSystem
	frame   UpdateFrame
}

// NewScheduler creates a new scheduler for the given storage.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{
		storage: storage,
		frame: UpdateFrame{
			Commands: newCommands(),
			Storage:  storage,
		},
	}
}

// Register binds the Singleton fields of system and appends it to the run
// order. system should be a pointer so the bound fields persist.
func (s *Scheduler) Register(system System) {
	bindSingletons(system, s.storage)

	typ := reflect.TypeOf(system)
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	s.systems = append(s.systems, &registeredSystem{
		system: system,
		name:   typ.Name(),
		min:    time.Duration(math.MaxInt64),
	})
}

func bindSingletons(system System, storage *Storage) {
	value := reflect.ValueOf(system)
	if value.Kind() == reflect.Ptr {
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return
	}

	for i := range value.NumField() {
		field := value.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}
		if !strings.HasPrefix(field.Type().Name(), "Singleton[") {
			continue
		}

		init := field.Addr().MethodByName("Init")
		if !init.IsValid() {
			panic("ecs: Singleton field " + value.Type().Field(i).Name + " has no Init method")
		}
		init.Call([]reflect.Value{reflect.ValueOf(storage)})
	}
}

// Once runs every system with the given delta time in seconds, then applies
// the commands they queued.
func (s *Scheduler) Once(dt float64) {
	s.frame.DeltaTime = dt

	for _, entry := range s.systems {
		start := time.Now()
		entry.system.Execute(&s.frame)
		entry.record(time.Since(start))
	}

	s.frame.Commands.Flush()
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Systems:     make([]SystemStats, len(s.systems)),
	}
	for i, entry := range s.systems {
		stats.Systems[i] = entry.stats()
		stats.TotalExecutions += entry.runs
	}
	return stats
}
