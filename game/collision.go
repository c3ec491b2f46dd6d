package game

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/plus3/lilypad/ecs"
)

// Overlap tests work on the ground plane: cp's X is world x and cp's Y is world z.

func groundPoint(t *ecs.Transform) cp.Vector {
	return cp.Vector{X: float64(t.Position.X()), Y: float64(t.Position.Z())}
}

// footprint is the box covered by an entity, half its scale on each side.
func footprint(t *ecs.Transform) cp.BB {
	return cp.NewBBForExtents(groundPoint(t),
		math.Abs(float64(t.Scale.X()))/2,
		math.Abs(float64(t.Scale.Z()))/2)
}

// carBox is longer in front of the car than behind it.
func carBox(t *ecs.Transform, lane Lane, hb CarHitbox) cp.BB {
	c := groundPoint(t)
	front, back := float64(hb.Front), float64(hb.Back)
	if lane == LaneReverse {
		front, back = back, front
	}
	return cp.BB{
		L: c.X - back,
		R: c.X + front,
		B: c.Y - float64(hb.HalfDepth),
		T: c.Y + float64(hb.HalfDepth),
	}
}

// toleranceBox is the square of half size tol around an entity.
func toleranceBox(t *ecs.Transform, tol float32) cp.BB {
	return cp.NewBBForExtents(groundPoint(t), float64(tol), float64(tol))
}

// inside is a strict containment test; a point on the edge is outside.
func inside(bb cp.BB, p cp.Vector) bool {
	return p.X > bb.L && p.X < bb.R && p.Y > bb.B && p.Y < bb.T
}

// sameCell matches two entities whose rounded x and z coordinates are equal.
func sameCell(a, b *ecs.Transform) bool {
	return math.Round(float64(a.Position.X())) == math.Round(float64(b.Position.X())) &&
		math.Round(float64(a.Position.Z())) == math.Round(float64(b.Position.Z()))
}
