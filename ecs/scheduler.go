package ecs

import (
	"context"
	"fmt"
	"reflect"
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

// record folds one execution into the running totals.
func (st *SystemStats) record(d time.Duration) {
	if st.ExecutionCount == 0 || d < st.MinDuration {
		st.MinDuration = d
	}
	st.MaxDuration = max(st.MaxDuration, d)
	st.ExecutionCount++
	st.LastDuration = d
	st.TotalDuration += d
	st.AvgDuration = st.TotalDuration / time.Duration(st.ExecutionCount)
}

// sceneBinder is implemented by the system fields the Scheduler wires to its
// scene: Query and Singleton.
type sceneBinder interface {
	Init(scene *Scene)
}

type scheduledSystem struct {
	system  System
	queries []frameQuery
	stats   SystemStats
}

// Scheduler runs its systems in registration order against one Scene.
type Scheduler struct {
	scene   *Scene
	systems []*scheduledSystem
}

// NewScheduler creates a new scheduler for the given scene.
func NewScheduler(scene *Scene) *Scheduler {
	return &Scheduler{scene: scene}
}

// Scene returns the scene the scheduler runs systems against.
func (s *Scheduler) Scene() *Scene {
	return s.scene
}

// Register appends system to the run order. Every exported Query and
// Singleton field of a struct system is bound to the scheduler's scene.
func (s *Scheduler) Register(system System) {
	s.systems = append(s.systems, &scheduledSystem{
		system:  system,
		queries: s.bindFields(system),
		stats:   SystemStats{Name: systemName(system)},
	})
}

func systemName(system System) string {
	t := reflect.TypeOf(system)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// bindFields initialises the system's Query and Singleton fields and returns
// the queries that need a snapshot before each execution.
func (s *Scheduler) bindFields(system System) []frameQuery {
	v := reflect.ValueOf(system)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	var queries []frameQuery
	for i := range v.NumField() {
		field := v.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}
		binder, ok := field.Addr().Interface().(sceneBinder)
		if !ok {
			continue
		}
		binder.Init(s.scene)
		if q, ok := binder.(frameQuery); ok {
			queries = append(queries, q)
		}
	}
	return queries
}

// Once executes all registered systems once with the given delta time, then
// flushes the commands they queued. Each system's queries are snapshotted
// right before it runs, so it sees entities spawned by earlier frames only.
func (s *Scheduler) Once(dt float64) error {
	frame := newUpdateFrame(dt, s.scene)

	for _, sys := range s.systems {
		for _, q := range sys.queries {
			q.Execute()
		}
		start := time.Now()
		sys.system.Execute(frame)
		sys.stats.record(time.Since(start))
	}

	if err := frame.Commands.Flush(s.scene); err != nil {
		return fmt.Errorf("flush frame commands: %w", err)
	}
	return nil
}

// Run executes all systems repeatedly at the given interval until the context
// is cancelled or a frame fails.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if err := s.Once(dt); err != nil {
				return err
			}
		}
	}
}

// GetStats returns a copy of the per-system execution statistics.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Systems:     make([]SystemStats, len(s.systems)),
	}
	for i, sys := range s.systems {
		stats.Systems[i] = sys.stats
		stats.TotalExecutions += sys.stats.ExecutionCount
	}
	return stats
}
