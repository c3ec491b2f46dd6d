package game

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/plus3/lilypad/ecs"
)

type mover struct {
	Transform *ecs.Transform
	Movement  *Movement
}

// MovementSystem advances every entity carrying a Movement once per frame.
type MovementSystem struct {
	// Bound is the |x| at which lane entities wrap around.
	Bound float32

	Movers ecs.Query[mover]
}

func NewMovementSystem(bound float32) *MovementSystem {
	return &MovementSystem{Bound: bound}
}

// Update applies the movement rules to every entity of the world in slot order.
func (s *MovementSystem) Update(world *ecs.World, dt float32) {
	for m := range ecs.NewView[mover](world).Values() {
		s.move(m, dt)
	}
}

// Execute runs the system from a Scheduler using its cached query.
func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	dt := float32(frame.DeltaTime)
	for m := range s.Movers.Values() {
		s.move(m, dt)
	}
}

func (s *MovementSystem) move(m mover, dt float32) {
	if m.Movement.Spins() {
		m.Transform.Rotation = m.Transform.Rotation.Add(m.Movement.AngularVelocity.Mul(dt))
		return
	}
	Advance(&m.Transform.Position, m.Movement.LinearVelocity.Mul(dt), m.Movement.Lane(), s.Bound)
}

// Advance moves pos by step along the lane, wrapping x to the opposite bound once it
// reaches the lane edge. A forward lane moves by +step and wraps at +bound; a reverse
// lane moves by -step and wraps at -bound. The edge itself counts as past it, so an
// entity sitting exactly on x = ±bound snaps across instead of taking one more step.
func Advance(pos *mgl32.Vec3, step mgl32.Vec3, lane Lane, bound float32) {
	switch lane {
	case LaneForward:
		if pos.X() < bound {
			*pos = pos.Add(step)
		} else {
			pos[0] = -bound
		}
	case LaneReverse:
		if pos.X() > -bound {
			*pos = pos.Sub(step)
		} else {
			pos[0] = bound
		}
	}
}
