package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/plus3/lilypad/ecs"
)

const (
	maxPitch = 0.99 * math.Pi / 2
	minFov   = 0.01 * math.Pi
	maxFov   = 0.99 * math.Pi
	fullTurn = 2 * math.Pi
)

// ClampPitch keeps the pitch inside ±0.99·π/2 so the camera never flips over.
func ClampPitch(pitch float32) float32 {
	return mgl32.Clamp(pitch, -maxPitch, maxPitch)
}

// WrapYaw maps any angle into [0, 2π).
func WrapYaw(yaw float32) float32 {
	w := math.Mod(float64(yaw), fullTurn)
	if w < 0 {
		w += fullTurn
	}
	out := float32(w)
	if out >= fullTurn {
		out = 0
	}
	return out
}

// ClampFov keeps the vertical field of view inside [0.01π, 0.99π].
func ClampFov(fov float32) float32 {
	return mgl32.Clamp(fov, minFov, maxFov)
}

// sensitivity scales the controller's per-axis position sensitivity by the speed-up factor.
func sensitivity(ctl *FreeCameraController, intent Intent) mgl32.Vec3 {
	if intent.Speedup {
		return ctl.PositionSensitivity.Mul(ctl.SpeedupFactor)
	}
	return ctl.PositionSensitivity
}

// applyLook turns the camera from the pointer delta and zooms it from the scroll delta.
func applyLook(t *ecs.Transform, cam *Camera, ctl *FreeCameraController, intent Intent) {
	if intent.Looking {
		t.Rotation[0] -= intent.Look.Y() * ctl.RotationSensitivity
		t.Rotation[1] -= intent.Look.X() * ctl.RotationSensitivity
	}
	t.Rotation[0] = ClampPitch(t.Rotation[0])
	t.Rotation[1] = WrapYaw(t.Rotation[1])

	cam.FovY = ClampFov(cam.FovY + intent.Zoom*ctl.FovSensitivity)
}

// applyFly moves the camera along its own local axes.
func applyFly(t *ecs.Transform, ctl *FreeCameraController, intent Intent, dt float32) {
	if intent.Fly == (mgl32.Vec3{}) {
		return
	}
	sens := sensitivity(ctl, intent)
	front, up, right := t.Front(), t.Up(), t.Right()

	t.Position = t.Position.
		Add(front.Mul(intent.Fly.Z() * dt * sens.Z())).
		Add(up.Mul(intent.Fly.Y() * dt * sens.Y())).
		Add(right.Mul(intent.Fly.X() * dt * sens.X()))
}
