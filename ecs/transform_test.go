package ecs_test

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/plus3/lilypad/ecs"
)

func assertVec3(t *testing.T, expected, actual mgl32.Vec3) {
	t.Helper()
	for i := range expected {
		assert.InDelta(t, expected[i], actual[i], 1e-5, "component %d of %v", i, actual)
	}
}

func TestTransformIdentity(t *testing.T) {
	assert.True(t, ecs.NewTransform().ToMat4().ApproxEqual(mgl32.Ident4()))
}

func TestTransformOrder(t *testing.T) {
	tr := ecs.NewTransform()
	tr.Position = mgl32.Vec3{5, 0, 0}
	tr.Rotation = mgl32.Vec3{0, math.Pi / 2, 0}
	tr.Scale = mgl32.Vec3{2, 1, 1}

	// scale first: (1,0,0) -> (2,0,0); yaw 90 degrees: -> (0,0,-2); translate: -> (5,0,-2)
	p := tr.ToMat4().Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	assertVec3(t, mgl32.Vec3{5, 0, -2}, p)
}

func TestTransformDeterministic(t *testing.T) {
	tr := ecs.Transform{
		Position: mgl32.Vec3{1, 2, 3},
		Rotation: mgl32.Vec3{0.3, 1.2, -0.4},
		Scale:    mgl32.Vec3{1, 2, 3},
	}
	assert.Equal(t, tr.ToMat4(), tr.ToMat4())
}

func TestTransformAxes(t *testing.T) {
	tr := ecs.NewTransform()
	assertVec3(t, mgl32.Vec3{0, 0, -1}, tr.Front())
	assertVec3(t, mgl32.Vec3{0, 1, 0}, tr.Up())
	assertVec3(t, mgl32.Vec3{1, 0, 0}, tr.Right())

	tr.Rotation = mgl32.Vec3{0, math.Pi / 2, 0}
	assertVec3(t, mgl32.Vec3{-1, 0, 0}, tr.Front())
	assertVec3(t, mgl32.Vec3{0, 0, -1}, tr.Right())

	tr.Position = mgl32.Vec3{100, 100, 100}
	assertVec3(t, mgl32.Vec3{-1, 0, 0}, tr.Front())
}
