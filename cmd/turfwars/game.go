package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/turfwars/ecs"
	"github.com/plus3/turfwars/ecs/debugui"
	debugui_ebiten "github.com/plus3/turfwars/ecs/debugui/ebiten"
	"github.com/plus3/turfwars/sim"
)

var bindings = map[ebiten.Key]sim.Action{
	ebiten.KeyTab: sim.SelectNext,
	ebiten.KeyW:   sim.Accelerate,
	ebiten.KeyS:   sim.Brake,
	ebiten.KeyA:   sim.TurnLeft,
	ebiten.KeyD:   sim.TurnRight,
}

// Game implements ebiten.Game: the simulation steps in Update, the inspector
// is built between the imgui frame markers, and Draw paints both.
type Game struct {
	world        *sim.World
	ui           *ecs.Scene
	uiScheduler  *ecs.Scheduler
	inspector    *debugui.InspectorSystem
	imguiBackend *ecs.Singleton[debugui_ebiten.ImguiBackend]
	renderer     *renderer
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.inspector.Hidden = !g.inspector.Hidden
	}

	if input, ok := ecs.ReadSingleton[debugui.ImguiInputState](g.ui); !ok || !input.WantCaptureKeyboard {
		for key, action := range bindings {
			if inpututil.IsKeyJustPressed(key) {
				g.world.Apply(action)
			}
		}
	}

	dt := 1.0 / float64(ebiten.TPS())
	if err := g.world.Step(dt); err != nil {
		return err
	}

	backend := g.imguiBackend.Get()
	backend.BeginFrame()
	err := g.uiScheduler.Once(dt)
	backend.EndFrame()
	return err
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.world.Running() {
		g.renderer.drawField(screen, g.world)
	} else {
		g.renderer.drawGameOver(screen, g.world)
	}
	g.imguiBackend.Get().Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.imguiBackend.Get().Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
