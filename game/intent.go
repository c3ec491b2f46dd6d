package game

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/plus3/lilypad/input"
)

// Hop is a one-step frog move requested with the arrow keys.
type Hop uint8

const (
	HopNone Hop = iota
	HopUp
	HopDown
	HopRight
	HopLeft
)

// Intent is what the player asked for this frame, decoupled from the input device.
type Intent struct {
	// Looking is set while the look button is held; Look is the pointer delta.
	Looking bool
	Look    mgl32.Vec2
	Zoom    float32

	// Fly holds camera translation requests along right (x), up (y) and forward (z), each -1, 0 or 1.
	Fly     mgl32.Vec3
	Speedup bool

	Hop Hop
}

// IntentFromInput reads the frame's input snapshot.
func IntentFromInput(in input.State) Intent {
	intent := Intent{
		Looking: in.MouseButton(input.ButtonLeft),
		Zoom:    in.Scroll.Y(),
		Speedup: in.Pressed(input.KeyLeftShift),
	}
	if intent.Looking {
		intent.Look = in.MouseDelta
	}

	intent.Fly = mgl32.Vec3{
		axis(in, input.KeyD, input.KeyA),
		axis(in, input.KeyQ, input.KeyE),
		axis(in, input.KeyW, input.KeyS),
	}

	// First arrow wins when several are held.
	switch {
	case in.Pressed(input.KeyUp):
		intent.Hop = HopUp
	case in.Pressed(input.KeyDown):
		intent.Hop = HopDown
	case in.Pressed(input.KeyRight):
		intent.Hop = HopRight
	case in.Pressed(input.KeyLeft):
		intent.Hop = HopLeft
	}
	return intent
}

func axis(in input.State, positive, negative input.Key) float32 {
	var v float32
	if in.Pressed(positive) {
		v++
	}
	if in.Pressed(negative) {
		v--
	}
	return v
}
