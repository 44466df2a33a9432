// Command ecs-stress-gen writes the component and system set used by
// cmd/ecs-stress.
package main

import (
	"flag"
	"log"
	"os"
)

func main() {
	components := flag.Int("components", 16, "Number of component types to generate.")
	systems := flag.Int("systems", 8, "Number of systems to generate.")
	out := flag.String("out", "generated.go", "Output file.")
	pkg := flag.String("package", "main", "Package name of the generated file.")
	flag.Parse()

	cfg := Config{Package: *pkg, Components: *components, Systems: *systems}
	src, err := Generate(cfg, *out)
	if err != nil {
		log.Fatalf("Failed to generate: %v", err)
	}
	if err := os.WriteFile(*out, src, 0o644); err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
	}
	log.Printf("Wrote %s: %d components, %d systems", *out, cfg.Components, cfg.Systems)
}
