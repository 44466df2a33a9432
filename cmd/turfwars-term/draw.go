package main

import (
	"fmt"
	"math"
	"slices"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/turfwars/sim"
)

var (
	grassStyle    = tcell.StyleDefault.Background(tcell.NewRGBColor(54, 124, 58))
	hudStyle      = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	gameOverStyle = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)

	modelColors = map[sim.Model]tcell.Color{
		sim.Sedan:    tcell.ColorBlue,
		sim.Taxi:     tcell.ColorYellow,
		sim.RaceCar:  tcell.ColorRed,
		sim.Delivery: tcell.ColorSilver,
		sim.SUV:      tcell.ColorBlack,
		sim.Rocket:   tcell.ColorWhite,
	}

	// Indexed by heading octant, counter-clockwise from +X.
	headingRunes = [8]rune{'→', '↗', '↑', '↖', '←', '↙', '↓', '↘'}
)

const hudRows = 2

// grid maps field coordinates onto terminal cells. Cells are roughly twice as
// tall as they are wide, so the field uses twice as many columns as rows.
type grid struct {
	cols, rows int
}

func newGrid(width, height int) grid {
	rows := max(height-hudRows, 1)
	cols := min(width, rows*2)
	return grid{cols: cols, rows: cols / 2}
}

func (g grid) cell(p mgl32.Vec3) (int, int) {
	span := float32(2 * sim.FieldHalfExtent)
	x := int((p.X() + sim.FieldHalfExtent) / span * float32(g.cols))
	y := int((p.Z() + sim.FieldHalfExtent) / span * float32(g.rows))
	return x, y
}

func draw(screen tcell.Screen, world *sim.World) {
	screen.Clear()
	width, height := screen.Size()

	if !world.Running() {
		drawText(screen, 0, height/2-1, gameOverStyle,
			fmt.Sprintf("Game Over! Time on Grass (sec): %.3f", world.TimeOnGrass()))
		drawText(screen, 0, height/2, hudStyle, "Press ESC to Exit")
		screen.Show()
		return
	}

	g := newGrid(width, height)
	for y := range g.rows {
		for x := range g.cols {
			screen.SetContent(x, y, ' ', nil, grassStyle)
		}
	}

	// Footprints first so no outline covers a vehicle's heading marker.
	vehicles := slices.Collect(world.Vehicles())
	for _, v := range vehicles {
		for _, c := range sim.Footprint(*v.Transform, *v.Render) {
			if x, y := g.cell(c); inside(g, x, y) {
				screen.SetContent(x, y, '·', nil, vehicleStyle(v))
			}
		}
	}
	for _, v := range vehicles {
		if x, y := g.cell(v.Position); inside(g, x, y) {
			screen.SetContent(x, y, headingRune(v.Heading), nil, vehicleStyle(v))
		}
	}

	drawText(screen, 0, g.rows, hudStyle, fmt.Sprintf("Time on Grass: %7.3f", world.TimeOnGrass()))
	drawText(screen, 0, g.rows+1, hudStyle, "Tab select  w/s speed  a/d steer  Esc quit")
	screen.Show()
}

func vehicleStyle(v sim.Vehicle) tcell.Style {
	style := grassStyle.Foreground(modelColors[v.Model])
	if v.ShowBoundingBox {
		style = style.Reverse(true)
	}
	return style
}

func inside(g grid, x, y int) bool {
	return x >= 0 && x < g.cols && y >= 0 && y < g.rows
}

func headingRune(degrees float32) rune {
	octant := int(math.Round(float64(degrees)/45)) % 8
	if octant < 0 {
		octant += 8
	}
	return headingRunes[octant]
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
