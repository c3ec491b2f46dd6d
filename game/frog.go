package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/plus3/lilypad/ecs"
)

// hopStep returns the world-space displacement and facing for a hop.
func hopStep(hop Hop, sens mgl32.Vec3, dt float32) (mgl32.Vec3, float32) {
	switch hop {
	case HopUp:
		return mgl32.Vec3{0, 0, -dt * sens.Z()}, math.Pi
	case HopDown:
		return mgl32.Vec3{0, 0, dt * sens.Z()}, 0
	case HopRight:
		return mgl32.Vec3{dt * sens.X(), 0, 0}, math.Pi / 2
	case HopLeft:
		return mgl32.Vec3{-dt * sens.X(), 0, 0}, -math.Pi / 2
	}
	return mgl32.Vec3{}, 0
}

// hop bobs the frog and moves it one step, with the camera following.
// Steps that would leave the playable area are dropped.
func (s *ControlSystem) hop(f *frame) {
	if f.intent.Hop == HopNone || s.hazard {
		return
	}
	lv := &s.Level
	bob := lv.JumpAmplitude*float32(math.Sin(float64(lv.JumpFrequency)*f.now)) + lv.JumpAmplitude
	f.frog.Position[1] = lv.FrogBaseHeight + bob

	delta, facing := hopStep(f.intent.Hop, sensitivity(f.controller, f.intent), f.dt)
	target := f.frog.Position.Add(delta)
	if !lv.InLane(target.X(), target.Z()) {
		return
	}
	f.frog.Position = target
	f.frog.Rotation[1] = facing
	f.camera.Position = f.camera.Position.Add(delta)
	s.events.AddMove(EventHop, f.frogId, delta)
}

// detect runs the overlap queries against the frog and records what it touched.
// Logs carry the frog immediately so later queries see where it ended up.
func (s *ControlSystem) detect(f *frame) {
	lv := &s.Level
	at := groundPoint(f.frog)

	onLog := false
	for id := range s.registry.Group(TagLog) {
		t := f.world.Transform(id)
		if !inside(footprint(t), at) {
			continue
		}
		onLog = true
		movement, ok := ecs.Get[Movement](f.world, id)
		if !ok || movement.Lane() == LaneNone {
			continue
		}
		before := f.frog.Position
		Advance(&f.frog.Position, movement.LinearVelocity.Mul(f.dt), movement.Lane(), lv.WrapBound)
		f.frog.Position[0] = mgl32.Clamp(f.frog.Position.X(), -lv.LaneHalfWidth, lv.LaneHalfWidth)
		delta := f.frog.Position.Sub(before)
		f.camera.Position = f.camera.Position.Add(delta)
		s.events.AddMove(EventCarried, id, delta)
	}
	at = groundPoint(f.frog)

	safe := false
	for id := range s.registry.Group(TagGrass) {
		if inside(footprint(f.world.Transform(id)), at) {
			safe = true
			s.events.Add(EventSafe, id)
			break
		}
	}

	if !onLog && !safe {
		for id := range s.registry.Group(TagWater) {
			if inside(footprint(f.world.Transform(id)), at) {
				s.events.Add(EventSplash, id)
				break
			}
		}
	}

	if !s.hazard {
		for id := range s.registry.Group(TagCar) {
			lane := LaneForward
			if movement, ok := ecs.Get[Movement](f.world, id); ok && movement.Lane() == LaneReverse {
				lane = LaneReverse
			}
			if inside(carBox(f.world.Transform(id), lane, lv.CarHitbox), at) {
				s.events.Add(EventHitHazard, id)
				break
			}
		}
	}

	if s.app.TimeLeft() <= 0 {
		s.events.Add(EventTimerExpired, 0)
	}

	for id := range s.registry.Group(TagStar) {
		if f.world.IsMarked(id) {
			continue
		}
		if sameCell(f.frog, f.world.Transform(id)) {
			s.events.Add(EventCollectedStar, id)
		}
	}
}
