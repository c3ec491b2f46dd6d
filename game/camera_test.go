package game_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/lilypad/ecs"
	"github.com/plus3/lilypad/game"
	"github.com/plus3/lilypad/input"
)

func TestWrapYaw(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{0, 0},
		{1, 1},
		{-0.5, 2*math.Pi - 0.5},
		{2 * math.Pi, 0},
		{2*math.Pi + 1, 1},
		{-4 * math.Pi, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, game.WrapYaw(tt.in), 1e-5, "WrapYaw(%v)", tt.in)
	}
}

func TestClampPitchAndFov(t *testing.T) {
	assert.InDelta(t, 0.99*math.Pi/2, game.ClampPitch(3), 1e-6)
	assert.InDelta(t, -0.99*math.Pi/2, game.ClampPitch(-3), 1e-6)
	assert.Equal(t, float32(0.25), game.ClampPitch(0.25))

	assert.InDelta(t, 0.01*math.Pi, game.ClampFov(-1), 1e-6)
	assert.InDelta(t, 0.99*math.Pi, game.ClampFov(10), 1e-6)
	assert.Equal(t, float32(1), game.ClampFov(1))
}

func TestLook(t *testing.T) {
	h := newHarness()
	in := input.State{MouseDelta: mgl32.Vec2{10, 20}}
	h.app.in = in.WithButton(input.ButtonLeft)

	require.NoError(t, h.update(0.1))

	rot := h.world.Transform(h.camera).Rotation
	assert.InDelta(t, -0.2, rot.X(), 1e-6)
	assert.InDelta(t, 2*math.Pi-0.1, rot.Y(), 1e-5)
}

func TestLookNeedsButton(t *testing.T) {
	h := newHarness()
	h.app.in = input.State{MouseDelta: mgl32.Vec2{10, 20}}

	require.NoError(t, h.update(0.1))

	assert.Equal(t, mgl32.Vec3{}, h.world.Transform(h.camera).Rotation)
	assert.Zero(t, h.app.pointer.locks)
}

func TestZoom(t *testing.T) {
	h := newHarness()
	h.app.in = input.State{Scroll: mgl32.Vec2{0, 1}}

	require.NoError(t, h.update(0.1))

	camera, ok := ecs.Get[game.Camera](h.world, h.camera)
	require.True(t, ok)
	assert.InDelta(t, math.Pi/2+0.3, camera.FovY, 1e-5)
}

func TestCameraStaysInRange(t *testing.T) {
	h := newHarness()
	rng := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 500; i++ {
		in := input.State{
			MouseDelta: mgl32.Vec2{rng.Float32()*1000 - 500, rng.Float32()*1000 - 500},
			Scroll:     mgl32.Vec2{0, rng.Float32()*40 - 20},
		}
		if rng.IntN(4) > 0 {
			in = in.WithButton(input.ButtonLeft)
		}
		h.app.in = in
		require.NoError(t, h.update(1.0/60))

		rot := h.world.Transform(h.camera).Rotation
		require.LessOrEqual(t, math.Abs(float64(rot.X())), 0.99*math.Pi/2+1e-6)
		require.GreaterOrEqual(t, rot.Y(), float32(0))
		require.Less(t, rot.Y(), float32(2*math.Pi))

		camera, _ := ecs.Get[game.Camera](h.world, h.camera)
		require.GreaterOrEqual(t, float64(camera.FovY), 0.01*math.Pi-1e-6)
		require.LessOrEqual(t, float64(camera.FovY), 0.99*math.Pi+1e-6)
	}
}

func TestFly(t *testing.T) {
	tests := []struct {
		name string
		keys []input.Key
		want mgl32.Vec3
	}{
		{"forward", []input.Key{input.KeyW}, mgl32.Vec3{0, 8, 11}},
		{"back", []input.Key{input.KeyS}, mgl32.Vec3{0, 8, 17}},
		{"right", []input.Key{input.KeyD}, mgl32.Vec3{3, 8, 14}},
		{"left", []input.Key{input.KeyA}, mgl32.Vec3{-3, 8, 14}},
		{"up", []input.Key{input.KeyQ}, mgl32.Vec3{0, 11, 14}},
		{"down", []input.Key{input.KeyE}, mgl32.Vec3{0, 5, 14}},
		{"opposite keys cancel", []input.Key{input.KeyW, input.KeyS}, mgl32.Vec3{0, 8, 14}},
		{"speed up", []input.Key{input.KeyW, input.KeyLeftShift}, mgl32.Vec3{0, 8, -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness()
			h.app.in = press(tt.keys...)

			require.NoError(t, h.update(1))

			got := h.pos(h.camera)
			for i := range 3 {
				assert.InDelta(t, tt.want[i], got[i], 1e-4)
			}
			assert.Equal(t, mgl32.Vec3{0, 0, 10}, h.pos(h.frog), "flying does not move the frog")
		})
	}
}

func TestFlyFollowsCameraYaw(t *testing.T) {
	h := newHarness()
	h.world.Transform(h.camera).Rotation[1] = math.Pi / 2
	h.app.in = press(input.KeyW)

	require.NoError(t, h.update(1))

	got := h.pos(h.camera)
	assert.InDelta(t, -3, got.X(), 1e-4)
	assert.InDelta(t, 14, got.Z(), 1e-4)
}

func TestPointerLock(t *testing.T) {
	h := newHarness()
	h.app.in = input.State{}.WithButton(input.ButtonLeft)

	require.NoError(t, h.update(0.1))
	require.NoError(t, h.update(0.1))
	assert.Equal(t, 1, h.app.pointer.locks)
	assert.Zero(t, h.app.pointer.unlocks)

	h.app.in = input.State{}
	require.NoError(t, h.update(0.1))
	assert.Equal(t, 1, h.app.pointer.unlocks)

	h.sys.Exit()
	assert.Equal(t, 1, h.app.pointer.unlocks, "exit does not unlock twice")
}

func TestExitUnlocksPointer(t *testing.T) {
	h := newHarness()
	h.app.in = input.State{}.WithButton(input.ButtonLeft)
	require.NoError(t, h.update(0.1))

	h.sys.Exit()

	assert.Equal(t, 1, h.app.pointer.unlocks)
}

func TestCameraMatrices(t *testing.T) {
	h := newHarness()
	camera, ok := ecs.Get[game.Camera](h.world, h.camera)
	require.True(t, ok)

	view := camera.ViewMatrix(h.world, h.camera)
	eye := view.Mul4x1(mgl32.Vec4{0, 8, 14, 1})
	assert.InDelta(t, 0, eye.Vec3().Len(), 1e-4, "the camera sits at the view origin")

	ahead := view.Mul4x1(mgl32.Vec4{0, 8, 4, 1})
	assert.InDelta(t, -10, ahead.Z(), 1e-4, "the camera looks down -z")

	proj := camera.ProjectionMatrix(16.0 / 9)
	assert.NotEqual(t, mgl32.Mat4{}, proj)
}
