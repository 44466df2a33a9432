package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/turfwars/audio"
	"github.com/plus3/turfwars/ecs"
	"github.com/plus3/turfwars/ecs/debugui"
	debugui_ebiten "github.com/plus3/turfwars/ecs/debugui/ebiten"
	"github.com/plus3/turfwars/sim"
)

func main() {
	width := flag.Int("width", 800, "Window width in pixels.")
	height := flag.Int("height", 600, "Window height in pixels.")
	storage := flag.String("storage", "dense", "Component storage kind: dense or sparse.")
	volume := flag.Float64("volume", 0.7, "Master volume between 0 and 1.")
	mute := flag.Bool("mute", false, "Disable audio.")
	inspector := flag.Bool("inspector", false, "Show the ECS inspector on start (toggle with F1).")
	flag.Parse()

	kind, err := ecs.ParseStorageKind(*storage)
	if err != nil {
		log.Fatalf("Invalid -storage: %v", err)
	}

	world, err := sim.NewWorld(ecs.WithStorageKind(kind))
	if err != nil {
		log.Fatalf("Failed to build world: %v", err)
	}

	player := audio.NewPlayer(*volume)
	if !*mute {
		if err := player.Init(); err != nil {
			log.Printf("Audio disabled: %v", err)
		}
	}
	defer player.Close()
	world.Register(&audio.System{Sounds: player})

	// The inspector windows live in their own scene so they never show up
	// among the vehicles they inspect.
	uiRegistry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[debugui_ebiten.ImguiBackend](uiRegistry)
	debugui.RegisterDebugUIComponents(uiRegistry)
	ui := ecs.NewScene(ecs.WithRegistry(uiRegistry))

	backend := ecs.NewSingleton[debugui_ebiten.ImguiBackend](ui,
		debugui_ebiten.NewImguiBackend("Turf Wars", *width, *height))
	ecs.NewSingleton[debugui.ImguiInputState](ui)
	if err := debugui.SpawnDebugUI(ui); err != nil {
		log.Fatalf("Failed to spawn inspector: %v", err)
	}

	uiScheduler := ecs.NewScheduler(ui)
	uiScheduler.Register(&debugui.ImguiSystem{})
	inspectorSystem := &debugui.InspectorSystem{Target: world.Scene, Hidden: !*inspector}
	uiScheduler.Register(inspectorSystem)

	ebiten.SetWindowSize(*width, *height)
	ebiten.SetWindowTitle("Turf Wars")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	game := &Game{
		world:        world,
		ui:           ui,
		uiScheduler:  uiScheduler,
		inspector:    inspectorSystem,
		imguiBackend: backend,
		renderer:     newRenderer(),
	}

	if err := ebiten.RunGame(game); err != nil {
		log.Fatalf("Game exited: %v", err)
	}
}
