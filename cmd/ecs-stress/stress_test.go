package main

import (
	"bytes"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/plus3/turfwars/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStressScene(t *testing.T, kind ecs.StorageKind, entities int) (*ecs.Scene, *ecs.Scheduler, *rand.Rand) {
	t.Helper()
	registry := ecs.NewComponentRegistry()
	RegisterAllGeneratedComponents(registry)
	scene := ecs.NewScene(ecs.WithRegistry(registry), ecs.WithStorageKind(kind))
	scheduler := ecs.NewScheduler(scene)
	RegisterAllGeneratedSystems(scheduler)

	rng := rand.New(rand.NewPCG(7, 7))
	for range entities {
		_, err := SpawnRandomEntity(scene, rng, rng.IntN(5)+1)
		require.NoError(t, err)
	}
	return scene, scheduler, rng
}

func TestStressLoop(t *testing.T) {
	for _, kind := range []ecs.StorageKind{ecs.Dense, ecs.Sparse} {
		t.Run(kind.String(), func(t *testing.T) {
			scene, scheduler, rng := newStressScene(t, kind, 500)
			assert.Equal(t, 500, scene.EntityCount())
			assert.Equal(t, componentCount, scene.Registry().Len())

			var counts ChurnCounts
			var totals CompactionTotals
			for frame := range 20 {
				require.NoError(t, scheduler.Once(1.0/60.0))
				require.NoError(t, churnComponents(scene, rng, 50, &counts))
				if frame%5 == 4 {
					totals.Add(scene.Compact())
				}
			}

			assert.Equal(t, int64(20*50), counts.Added+counts.Removed)
			assert.Equal(t, 4, totals.Passes)
			for _, st := range scene.CollectStats().Storages {
				assert.LessOrEqual(t, st.Live, st.Slots, st.Name)
			}
		})
	}
}

func TestChurnEmptyScene(t *testing.T) {
	scene := ecs.NewScene()
	var counts ChurnCounts
	require.NoError(t, churnComponents(scene, rand.New(rand.NewPCG(1, 1)), 10, &counts))
	assert.Zero(t, counts.Added+counts.Removed)
}

func TestStatsFinalize(t *testing.T) {
	s := Stats{}
	for i := 1; i <= 100; i++ {
		s.Samples = append(s.Samples, time.Duration(i)*time.Millisecond)
	}
	s.Finalize()
	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 100*time.Millisecond, s.Max)
	assert.Equal(t, 50500*time.Microsecond, s.Avg)
	assert.Equal(t, 100*time.Millisecond, s.P99)
}

func TestReportGenerate(t *testing.T) {
	scene, scheduler, _ := newStressScene(t, ecs.Sparse, 100)
	require.NoError(t, scheduler.Once(0.016))

	report := &Report{
		Duration:    time.Second,
		Entities:    100,
		Components:  componentCount,
		Systems:     systemCount,
		StorageKind: ecs.Sparse.String(),
		Scene:       scene.CollectStats(),
		UpdateTime:  Stats{Samples: []time.Duration{time.Millisecond}},
	}
	report.UpdateTime.Finalize()
	report.Compaction.Add(ecs.CompactStats{Storages: 2, SlotsFreed: 3, BytesBefore: 96, BytesAfter: 48})

	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf))
	out := buf.String()
	assert.Contains(t, out, "**Storage Kind:** sparse")
	assert.Contains(t, out, "**Compact Every:** never")
	assert.Contains(t, out, "1 passes, 3 slots freed, 48 bytes reclaimed")
	assert.Len(t, report.LargestStorages(5), 5)
}
