// Package ebitenrender draws the world top-down into an ebiten image.
package ebitenrender

import (
	"fmt"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/lilypad/ecs"
	"github.com/plus3/lilypad/game"
	"github.com/plus3/lilypad/render"
)

// TopDown renders every mesh as a filled shape on the ground plane, far bank at the top.
type TopDown struct {
	game.EffectFlags

	Level      game.LevelConfig
	ClearColor mgl32.Vec4
	// CellSize is the number of pixels per world unit.
	CellSize float32
	Ceiling  float32
	// ShowStatus draws a plain text status line; the HUD overlay replaces it.
	ShowStatus bool

	world   *ecs.World
	status  render.Status
	message string
}

func NewTopDown(level game.LevelConfig, clear mgl32.Vec4, cellSize float32) *TopDown {
	if cellSize <= 0 {
		cellSize = 32
	}
	return &TopDown{
		Level:      level,
		ClearColor: clear,
		CellSize:   cellSize,
		Ceiling:    6,
	}
}

// Size returns the image size the level needs.
func (r *TopDown) Size() (int, int) {
	w := 2 * r.Level.LaneHalfWidth * r.CellSize
	h := (r.Level.StartDepth - r.Level.EndDepth + 1) * r.CellSize
	return int(math.Ceil(float64(w))), int(math.Ceil(float64(h)))
}

// SetLevel switches the layout after a scene reload.
func (r *TopDown) SetLevel(level game.LevelConfig) {
	r.Level = level
}

// Render remembers the world to show on the next Present. Ebiten draws after
// Update returns, so nothing is drawn here.
func (r *TopDown) Render(world *ecs.World, status render.Status) {
	r.world, r.status, r.message = world, status, ""
}

// Message replaces the world with a centered line of text until the next Render.
func (r *TopDown) Message(text string) {
	r.world, r.message = nil, text
}

// Present draws whatever was last passed to Render or Message.
func (r *TopDown) Present(dst *ebiten.Image) {
	if r.world != nil {
		r.Draw(dst, r.world, r.status)
		return
	}
	dst.Fill(rgba(r.ClearColor))
	if r.message != "" {
		// The debug font is 6x16 pixels.
		w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
		ebitenutil.DebugPrintAt(dst, r.message, (w-6*len(r.message))/2, h/2-8)
	}
}

// Project maps a ground-plane point to pixel coordinates.
func (r *TopDown) Project(x, z float32) (float32, float32) {
	return (x + r.Level.LaneHalfWidth) * r.CellSize, (z - r.Level.EndDepth + 0.5) * r.CellSize
}

// Draw renders the world into dst.
func (r *TopDown) Draw(dst *ebiten.Image, world *ecs.World, status render.Status) {
	dst.Fill(rgba(r.ClearColor))
	tint := render.Tint(world)

	for _, s := range render.Collect(world, r.Ceiling) {
		c := rgba(render.Shade(s.Color, tint))
		if s.Area() {
			x0, y0 := r.Project(s.Min.X(), s.Min.Y())
			x1, y1 := r.Project(s.Max.X(), s.Max.Y())
			vector.DrawFilledRect(dst, x0, y0, x1-x0, y1-y0, c, false)
			continue
		}
		cx, cy := r.Project(s.Center.X(), s.Center.Y())
		vector.DrawFilledCircle(dst, cx, cy, r.CellSize*0.4, c, true)
	}

	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	switch {
	case r.Effect(game.EffectDamage):
		vector.DrawFilledRect(dst, 0, 0, float32(w), float32(h), color.RGBA{0x80, 0, 0, 0x80}, false)
	case r.Effect(game.EffectFlash):
		vector.DrawFilledRect(dst, 0, 0, float32(w), float32(h), color.RGBA{0x80, 0x80, 0x80, 0x80}, false)
	}

	if r.ShowStatus {
		ebitenutil.DebugPrintAt(dst, fmt.Sprintf("Lives %d  Checkpoint %d/3  Time %.0f",
			status.Lives, status.Checkpoints, math.Max(status.TimeLeft, 0)), 8, 8)
	}
}

func rgba(c mgl32.Vec4) color.RGBA {
	// color.RGBA is alpha premultiplied.
	a := mgl32.Clamp(c.W(), 0, 1)
	ch := func(v float32) uint8 {
		return uint8(mgl32.Clamp(v, 0, 1) * a * 255)
	}
	return color.RGBA{ch(c.X()), ch(c.Y()), ch(c.Z()), uint8(a * 255)}
}
