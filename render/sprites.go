// Package render draws a world top-down, looking at the ground plane from above.
package render

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/plus3/lilypad/ecs"
	"github.com/plus3/lilypad/game"
)

// Sprite is one drawable entity projected onto the ground plane.
type Sprite struct {
	Entity ecs.EntityId
	// Min and Max bound the footprint in world x (X) and z (Y).
	Min, Max mgl32.Vec2
	Center   mgl32.Vec2
	Height   float32
	Color    mgl32.Vec4
	Glyph    rune
}

// Area reports whether the sprite covers more than one unit on either axis.
func (s Sprite) Area() bool {
	size := s.Max.Sub(s.Min)
	return size.X() > 1 || size.Y() > 1
}

type drawable struct {
	Id   ecs.EntityId
	Mesh *game.MeshRenderer
}

// Collect projects every entity with a MeshRenderer below the ceiling height.
// Area sprites come first, then single-cell ones, each group lowest first, so that
// lanes and logs are drawn under the frog.
func Collect(world *ecs.World, ceiling float32) []Sprite {
	var sprites []Sprite
	for d := range ecs.NewView[drawable](world).Values() {
		m := world.LocalToWorld(d.Id)
		pos := m.Col(3).Vec3()
		if pos.Y() > ceiling {
			continue
		}
		scale := world.Transform(d.Id).Scale
		half := mgl32.Vec2{abs(scale.X()) / 2, abs(scale.Z()) / 2}
		center := mgl32.Vec2{pos.X(), pos.Z()}

		glyph := '?'
		for _, r := range d.Mesh.Glyph {
			glyph = r
			break
		}
		sprites = append(sprites, Sprite{
			Entity: d.Id,
			Min:    center.Sub(half),
			Max:    center.Add(half),
			Center: center,
			Height: pos.Y(),
			Color:  d.Mesh.Color,
			Glyph:  glyph,
		})
	}
	sort.SliceStable(sprites, func(i, j int) bool {
		a, b := sprites[i], sprites[j]
		if a.Area() != b.Area() {
			return a.Area()
		}
		return a.Height < b.Height
	})
	return sprites
}

// Tint returns the diffuse colour of the first light in the world, white without lights.
func Tint(world *ecs.World) mgl32.Vec3 {
	for light := range ecs.NewView[struct{ *game.Light }](world).Values() {
		return light.Diffuse
	}
	return mgl32.Vec3{1, 1, 1}
}

// Shade multiplies a colour by the light tint, keeping alpha.
func Shade(c mgl32.Vec4, tint mgl32.Vec3) mgl32.Vec4 {
	return mgl32.Vec4{c.X() * tint.X(), c.Y() * tint.Y(), c.Z() * tint.Z(), c.W()}
}

// Status is the play session information shown next to the world.
type Status struct {
	Lives       int
	Checkpoints int
	TimeLeft    float64
	State       game.GameState
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
