// Command ecs-stress runs a generated component and system set against a
// Scene and reports frame times, storage footprint and GC figures.
package main

//go:generate go run ../ecs-stress-gen -components 16 -systems 8 -out generated.go

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"reflect"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/plus3/turfwars/ecs"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 10000, "The initial number of entities to create.")
	storageKind := flag.String("storage", "dense", "Component storage kind: dense or sparse.")
	profileMode := flag.String("profile", "none", "Profile to record in the working directory: none, cpu or mem.")
	churn := flag.Int("churn", 100, "Components removed or re-added per frame.")
	compactEvery := flag.Int("compact-every", 0, "Compact storages every N frames (0 disables).")
	seed := flag.Uint64("seed", 1, "Seed for entity population and churn.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	kind, err := ecs.ParseStorageKind(*storageKind)
	if err != nil {
		log.Fatalf("Invalid -storage: %v", err)
	}

	switch *profileMode {
	case "none":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		log.Fatalf("Invalid -profile %q: want none, cpu or mem", *profileMode)
	}

	log.Println("Starting ECS stress test...")

	// 1. Setup Registry, Scene, and Scheduler
	registry := ecs.NewComponentRegistry()
	RegisterAllGeneratedComponents(registry)
	scene := ecs.NewScene(ecs.WithRegistry(registry), ecs.WithStorageKind(kind))
	scheduler := ecs.NewScheduler(scene)
	RegisterAllGeneratedSystems(scheduler)
	rng := rand.New(rand.NewPCG(*seed, *seed))

	// 2. Populate the scene with initial entities
	log.Printf("Populating %s scene with %d entities...\n", kind, *entityCount)
	for i := 0; i < *entityCount; i++ {
		// Spawn an entity with 1 to 5 random components
		numComponents := rng.IntN(5) + 1
		if _, err := SpawnRandomEntity(scene, rng, numComponents); err != nil {
			log.Fatalf("Failed to spawn entity %d: %v", i, err)
		}
	}
	log.Println("Population complete.")

	// 3. Run the simulation loop
	report := &Report{
		Duration:       *duration,
		Entities:       *entityCount,
		Components:     componentCount,
		Systems:        systemCount,
		StorageKind:    kind.String(),
		Churn:          *churn,
		CompactEvery:   *compactEvery,
		GCPauseMetrics: *gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running simulation for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	var totalUpdates int64
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			if err := scheduler.Once(deltaTime.Seconds()); err != nil {
				log.Fatalf("Update %d failed: %v", totalUpdates, err)
			}
			updateDuration := time.Since(updateStart)

			report.UpdateTime.Samples = append(report.UpdateTime.Samples, updateDuration)
			totalUpdates++

			if err := churnComponents(scene, rng, *churn, &report.Churned); err != nil {
				log.Fatalf("Churn failed: %v", err)
			}
			if *compactEvery > 0 && totalUpdates%int64(*compactEvery) == 0 {
				report.Compaction.Add(scene.Compact())
			}
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.UpdateTime.Finalize()
	report.Scene = scene.CollectStats()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	// 4. Generate Report to Console
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
}

// churnComponents toggles n random components on random entities: a held
// component is removed, a missing one is added back.
func churnComponents(scene *ecs.Scene, rng *rand.Rand, n int, counts *ChurnCounts) error {
	entities := scene.EntityCount()
	if entities == 0 {
		return nil
	}
	for range n {
		e := ecs.Entity(rng.IntN(entities))
		t := componentTypes[rng.IntN(len(componentTypes))]
		id, ok := scene.Registry().Lookup(t)
		if !ok {
			return fmt.Errorf("component %s not registered", t.Name())
		}

		if scene.HasComponentID(e, id) {
			if err := scene.RemoveComponentID(e, id); err != nil {
				return err
			}
			counts.Removed++
			continue
		}
		if err := scene.AddComponentValue(e, reflect.New(t).Interface()); err != nil {
			return err
		}
		counts.Added++
	}
	return nil
}
