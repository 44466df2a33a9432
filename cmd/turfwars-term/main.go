// Command turfwars-term drives the vehicle simulation in a terminal.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/turfwars/audio"
	"github.com/plus3/turfwars/ecs"
	"github.com/plus3/turfwars/sim"
)

var bindings = map[rune]sim.Action{
	'w': sim.Accelerate,
	's': sim.Brake,
	'a': sim.TurnLeft,
	'd': sim.TurnRight,
}

type Game struct {
	screen tcell.Screen
	world  *sim.World
	tick   time.Duration
}

func (g *Game) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyTab:
			g.world.Apply(sim.SelectNext)
		case tcell.KeyRune:
			if action, ok := bindings[ev.Rune()]; ok {
				g.world.Apply(action)
			}
		}
	case *tcell.EventResize:
		g.screen.Sync()
	}
	return true
}

func (g *Game) run() error {
	ticker := time.NewTicker(g.tick)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !g.handleInput(ev) {
				return nil
			}
		case <-ticker.C:
			if err := g.world.Step(g.tick.Seconds()); err != nil {
				return err
			}
			draw(g.screen, g.world)
		}
	}
}

func main() {
	storage := flag.String("storage", "dense", "Component storage kind: dense or sparse.")
	fps := flag.Int("fps", 30, "Simulation steps per second.")
	volume := flag.Float64("volume", 0.7, "Master volume between 0 and 1.")
	mute := flag.Bool("mute", false, "Disable audio.")
	flag.Parse()

	kind, err := ecs.ParseStorageKind(*storage)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid -storage: %v\n", err)
		os.Exit(2)
	}
	if *fps <= 0 {
		fmt.Fprintln(os.Stderr, "-fps must be positive")
		os.Exit(2)
	}

	world, err := sim.NewWorld(ecs.WithStorageKind(kind))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build world: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	// Audio failures are non-fatal; the round plays silently.
	player := audio.NewPlayer(*volume)
	var audioErr error
	if !*mute {
		audioErr = player.Init()
	}
	world.Register(&audio.System{Sounds: player})

	game := &Game{screen: screen, world: world, tick: time.Second / time.Duration(*fps)}
	runErr := game.run()

	player.Close()
	screen.Fini()

	if audioErr != nil {
		fmt.Fprintf(os.Stderr, "Audio disabled: %v\n", audioErr)
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Simulation failed: %v\n", runErr)
		os.Exit(1)
	}
	state := world.State()
	fmt.Printf("Time on Grass (sec): %.3f after %.1fs\n", world.TimeOnGrass(), state.Elapsed)
}
