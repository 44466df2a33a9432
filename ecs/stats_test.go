package ecs

import (
	"testing"
	"time"
)

func TestSceneStats(t *testing.T) {
	registry := NewComponentRegistry()
	RegisterComponent[int](registry)
	RegisterComponent[string](registry)
	RegisterComponent[float64](registry)

	scene := NewScene(WithRegistry(registry), WithComponentStorage[string](Sparse))

	stats := scene.CollectStats()
	if stats.StorageCount != 0 {
		t.Errorf("expected 0 storages, got %d", stats.StorageCount)
	}
	if stats.EntityCount != 0 {
		t.Errorf("expected 0 entities, got %d", stats.EntityCount)
	}
	if stats.SingletonCount != 0 {
		t.Errorf("expected 0 singletons, got %d", stats.SingletonCount)
	}
	if stats.ComponentTypes != 3 {
		t.Errorf("expected 3 component types, got %d", stats.ComponentTypes)
	}

	for _, components := range [][]any{{42, "hello"}, {100, "world"}, {200.0, "test"}} {
		e, err := scene.CreateEntity()
		if err != nil {
			t.Fatal(err)
		}
		for _, c := range components {
			if err := scene.AddComponentValue(e, c); err != nil {
				t.Fatal(err)
			}
		}
	}
	if err := RemoveComponent[int](scene, 0); err != nil {
		t.Fatal(err)
	}

	NewSingleton[float64](scene, 3.14)
	NewSingleton[Entity](scene, 7)

	stats = scene.CollectStats()

	if stats.EntityCount != 3 {
		t.Errorf("expected 3 entities, got %d", stats.EntityCount)
	}
	if stats.StorageCount != 3 {
		t.Errorf("expected 3 storages, got %d", stats.StorageCount)
	}
	if stats.SingletonCount != 2 {
		t.Errorf("expected 2 singletons, got %d", stats.SingletonCount)
	}
	if len(stats.SingletonTypes) != 2 {
		t.Errorf("expected 2 singleton types, got %d", len(stats.SingletonTypes))
	}
	if stats.ComponentTypes != 4 {
		t.Errorf("expected 4 component types after singleton registration, got %d", stats.ComponentTypes)
	}

	var total uintptr
	for _, st := range stats.Storages {
		total += st.Bytes
		switch st.Name {
		case "int":
			if st.Kind != Dense || st.Slots != 2 || st.Live != 1 || st.Tombstones() != 1 {
				t.Errorf("unexpected int storage stats: %+v", st)
			}
		case "string":
			if st.Kind != Sparse || st.Slots != 3 || st.Live != 3 {
				t.Errorf("unexpected string storage stats: %+v", st)
			}
		case "float64":
			if st.Kind != Dense || st.Slots != 3 || st.Live != 1 || st.ElementSize != 8 {
				t.Errorf("unexpected float64 storage stats: %+v", st)
			}
		default:
			t.Errorf("unexpected storage %q", st.Name)
		}
	}
	if total != stats.TotalBytes {
		t.Errorf("expected total bytes %d, got %d", total, stats.TotalBytes)
	}
}

func TestSceneStatsAfterCompact(t *testing.T) {
	scene := NewScene(WithRegistry(NewComponentRegistry()), WithStorageKind(Sparse))
	for i := range 10 {
		e, _ := scene.CreateEntity()
		if _, err := SetComponent(scene, e, i); err != nil {
			t.Fatal(err)
		}
	}
	for e := Entity(0); e < 8; e++ {
		if err := RemoveComponent[int](scene, e); err != nil {
			t.Fatal(err)
		}
	}

	before := scene.CollectStats().Storages[0]
	if before.Tombstones() != 8 {
		t.Errorf("expected 8 tombstones, got %d", before.Tombstones())
	}

	scene.Compact()

	after := scene.CollectStats().Storages[0]
	if after.Slots != 2 || after.Tombstones() != 0 {
		t.Errorf("unexpected stats after compact: %+v", after)
	}
	if after.Bytes >= before.Bytes {
		t.Errorf("expected footprint to shrink, %d >= %d", after.Bytes, before.Bytes)
	}
}

type TestSystem struct {
	executeCount int
	sleepDur     time.Duration
}

func (s *TestSystem) Execute(frame *UpdateFrame) {
	s.executeCount++
	if s.sleepDur > 0 {
		time.Sleep(s.sleepDur)
	}
}

func TestSchedulerStats(t *testing.T) {
	scene := NewScene(WithRegistry(NewComponentRegistry()))
	scheduler := NewScheduler(scene)

	stats := scheduler.GetStats()
	if stats.SystemCount != 0 {
		t.Errorf("expected 0 systems, got %d", stats.SystemCount)
	}
	if stats.TotalExecutions != 0 {
		t.Errorf("expected 0 total executions, got %d", stats.TotalExecutions)
	}

	sys1 := &TestSystem{sleepDur: 1 * time.Millisecond}
	sys2 := &TestSystem{sleepDur: 2 * time.Millisecond}
	scheduler.Register(sys1)
	scheduler.Register(sys2)

	stats = scheduler.GetStats()
	if stats.SystemCount != 2 {
		t.Errorf("expected 2 systems, got %d", stats.SystemCount)
	}

	for range 3 {
		if err := scheduler.Once(0.016); err != nil {
			t.Fatal(err)
		}
	}

	stats = scheduler.GetStats()

	if stats.TotalExecutions != 6 {
		t.Errorf("expected 6 total executions (2 systems * 3 runs), got %d", stats.TotalExecutions)
	}

	if len(stats.Systems) != 2 {
		t.Errorf("expected 2 system stats, got %d", len(stats.Systems))
	}

	for _, sysStats := range stats.Systems {
		if sysStats.Name != "TestSystem" {
			t.Errorf("expected system name 'TestSystem', got '%s'", sysStats.Name)
		}

		if sysStats.ExecutionCount != 3 {
			t.Errorf("expected 3 executions, got %d", sysStats.ExecutionCount)
		}

		if sysStats.MinDuration == 0 {
			t.Errorf("expected non-zero min duration")
		}

		if sysStats.MaxDuration == 0 {
			t.Errorf("expected non-zero max duration")
		}

		if sysStats.AvgDuration == 0 {
			t.Errorf("expected non-zero avg duration")
		}

		if sysStats.LastDuration == 0 {
			t.Errorf("expected non-zero last duration")
		}

		if sysStats.TotalDuration == 0 {
			t.Errorf("expected non-zero total duration")
		}

		if sysStats.MinDuration > sysStats.AvgDuration {
			t.Errorf("min duration (%v) should be <= avg duration (%v)", sysStats.MinDuration, sysStats.AvgDuration)
		}

		if sysStats.AvgDuration > sysStats.MaxDuration {
			t.Errorf("avg duration (%v) should be <= max duration (%v)", sysStats.AvgDuration, sysStats.MaxDuration)
		}
	}

	if sys1.executeCount != 3 {
		t.Errorf("expected sys1 to execute 3 times, got %d", sys1.executeCount)
	}

	if sys2.executeCount != 3 {
		t.Errorf("expected sys2 to execute 3 times, got %d", sys2.executeCount)
	}
}
