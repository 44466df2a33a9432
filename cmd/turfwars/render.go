package main

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/turfwars/sim"
)

var (
	backgroundColor = color.RGBA{40, 40, 48, 255}
	grassColor      = color.RGBA{54, 124, 58, 255}
	boundingColor   = color.RGBA{255, 220, 0, 255}
	headingColor    = color.RGBA{255, 255, 255, 255}

	modelColors = map[sim.Model]color.RGBA{
		sim.Sedan:    {70, 130, 220, 255},
		sim.Taxi:     {250, 200, 30, 255},
		sim.RaceCar:  {220, 40, 40, 255},
		sim.Delivery: {200, 200, 200, 255},
		sim.SUV:      {40, 40, 40, 255},
		sim.Rocket:   {230, 230, 250, 255},
	}
)

// renderer draws the field top-down: world X to the right, world Z downwards.
type renderer struct {
	scale   float32
	originX float32
	originY float32
}

func newRenderer() *renderer {
	return &renderer{}
}

func (r *renderer) fit(screen *ebiten.Image) {
	w, h := float32(screen.Bounds().Dx()), float32(screen.Bounds().Dy())
	r.scale = min(w, h) * 0.9 / (2 * sim.FieldHalfExtent)
	r.originX = w / 2
	r.originY = h / 2
}

func (r *renderer) project(p mgl32.Vec3) (float32, float32) {
	return r.originX + p.X()*r.scale, r.originY + p.Z()*r.scale
}

func (r *renderer) drawField(screen *ebiten.Image, world *sim.World) {
	r.fit(screen)
	screen.Fill(backgroundColor)

	x, y := r.project(mgl32.Vec3{-sim.FieldHalfExtent, 0, -sim.FieldHalfExtent})
	size := 2 * sim.FieldHalfExtent * r.scale
	vector.DrawFilledRect(screen, x, y, size, size, grassColor, false)

	for v := range world.Vehicles() {
		r.drawVehicle(screen, v)
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %0.1f", ebiten.ActualFPS()), 8, 8)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Time on Grass: %7.3f", world.TimeOnGrass()), 8, 24)
	ebitenutil.DebugPrintAt(screen, "Tab select  W/S speed  A/D steer  F1 inspector  Esc quit", 8, screen.Bounds().Dy()-20)
}

func (r *renderer) drawVehicle(screen *ebiten.Image, v sim.Vehicle) {
	corners := sim.Footprint(*v.Transform, *v.Render)
	clr, ok := modelColors[v.Model]
	if !ok {
		clr = headingColor
	}

	for i := range corners {
		x0, y0 := r.project(corners[i])
		x1, y1 := r.project(corners[(i+1)%len(corners)])
		vector.StrokeLine(screen, x0, y0, x1, y1, 2, clr, true)
	}

	cx, cy := r.project(v.Position)
	nose := mgl32.TransformCoordinate(mgl32.Vec3{0, 0, sim.ModelScale}, sim.ModelMatrix(*v.Transform, *v.Render))
	nx, ny := r.project(nose)
	vector.StrokeLine(screen, cx, cy, nx, ny, 1, headingColor, true)
	vector.DrawFilledCircle(screen, cx, cy, 2, clr, true)

	if v.ShowBoundingBox {
		minX, minY := cx, cy
		maxX, maxY := cx, cy
		for _, c := range corners {
			x, y := r.project(c)
			minX, minY = min(minX, x), min(minY, y)
			maxX, maxY = max(maxX, x), max(maxY, y)
		}
		vector.StrokeRect(screen, minX-3, minY-3, maxX-minX+6, maxY-minY+6, 1, boundingColor, false)
	}
}

func (r *renderer) drawGameOver(screen *ebiten.Image, world *sim.World) {
	screen.Fill(color.Black)
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	msg := fmt.Sprintf("Game Over! Time on Grass (sec): %.3f", world.TimeOnGrass())
	ebitenutil.DebugPrintAt(screen, msg, w/2-len(msg)*3, h/2-12)
	ebitenutil.DebugPrintAt(screen, "Press ESC to Exit", w/2-17*3, h/2+8)
}
