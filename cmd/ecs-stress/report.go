package main

import (
	"cmp"
	"fmt"
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/plus3/turfwars/ecs"
)

type Report struct {
	// Configuration
	Duration     time.Duration
	Entities     int
	Components   int
	Systems      int
	StorageKind  string
	Churn        int
	CompactEvery int

	// Results
	TotalUpdates   int64
	TotalTime      time.Duration
	UpdateTime     Stats
	Churned        ChurnCounts
	Compaction     CompactionTotals
	Scene          ecs.SceneStats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	P99     time.Duration
	Samples []time.Duration
}

type ChurnCounts struct {
	Added   int64
	Removed int64
}

// CompactionTotals accumulates every Scene.Compact pass of a run.
type CompactionTotals struct {
	Passes         int
	SlotsFreed     int
	BytesReclaimed uint64
}

func (c *CompactionTotals) Add(stats ecs.CompactStats) {
	c.Passes++
	c.SlotsFreed += stats.SlotsFreed
	if stats.BytesBefore > stats.BytesAfter {
		c.BytesReclaimed += uint64(stats.BytesBefore - stats.BytesAfter)
	}
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

	sorted := slices.Clone(s.Samples)
	slices.Sort(sorted)
	s.P99 = sorted[len(sorted)*99/100]
}

// LargestStorages returns up to n storages ordered by footprint.
func (r *Report) LargestStorages(n int) []ecs.StorageStats {
	storages := slices.Clone(r.Scene.Storages)
	slices.SortFunc(storages, func(a, b ecs.StorageStats) int {
		return cmp.Compare(b.Bytes, a.Bytes)
	})
	return storages[:min(n, len(storages))]
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# ECS Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Initial Entities:** {{.Entities}}
- **Generated Components:** {{.Components}}
- **Generated Systems:** {{.Systems}}
- **Storage Kind:** {{.StorageKind}}
- **Churn Per Frame:** {{.Churn}}
- **Compact Every:** {{if .CompactEvery}}{{.CompactEvery}} frames{{else}}never{{end}}

## Performance Results
- **Total Updates:** {{.TotalUpdates}}
- **Total Test Time:** {{.TotalTime}}
- **Update Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}
  - **P99:** {{.UpdateTime.P99}}
- **Components Added/Removed:** {{.Churned.Added}} / {{.Churned.Removed}}

## Storage
- **Entities:** {{.Scene.EntityCount}}
- **Storages:** {{.Scene.StorageCount}}
- **Total Footprint:** {{.Scene.TotalBytes}} bytes ({{mb .Scene.TotalBytes}} MB)
- **Compaction:** {{.Compaction.Passes}} passes, {{.Compaction.SlotsFreed}} slots freed, {{.Compaction.BytesReclaimed}} bytes reclaimed
{{range .LargestStorages 5}}
  - {{.Name}} ({{.Kind}}, {{.ElementSize}} B): {{.Live}} live / {{.Slots}} slots, {{.Tombstones}} tombstones, {{.Bytes}} bytes
{{- end}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Sys Memory:     {{.MemStatsStart.Sys}} (start) -> {{.MemStatsEnd.Sys}} (end) -> delta: {{bsub .MemStatsEnd.Sys .MemStatsStart.Sys}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

	fm := template.FuncMap{
		"mb": func(v any) string {
			switch val := v.(type) {
			case uint64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			case uintptr:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			case int64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			default:
				return "N/A"
			}
		},
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
