package ecs

import "github.com/go-gl/mathgl/mgl32"

// Transform is an entity's position, rotation and scale relative to its parent.
// Rotation holds Euler angles in radians: X is pitch, Y is yaw, Z is roll.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
}

// NewTransform returns an identity transform.
func NewTransform() Transform {
	return Transform{Scale: mgl32.Vec3{1, 1, 1}}
}

// ToMat4 composes translation, rotation and scale. Scale is applied first and
// translation last; rotation is yaw, then pitch, then roll.
func (t Transform) ToMat4() mgl32.Mat4 {
	rotation := mgl32.HomogRotate3DY(t.Rotation.Y()).
		Mul4(mgl32.HomogRotate3DX(t.Rotation.X())).
		Mul4(mgl32.HomogRotate3DZ(t.Rotation.Z()))

	return mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z()).
		Mul4(rotation).
		Mul4(mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z()))
}

// Front returns the local -Z axis of the transform's matrix.
func (t Transform) Front() mgl32.Vec3 {
	return t.ToMat4().Mul4x1(mgl32.Vec4{0, 0, -1, 0}).Vec3()
}

// Up returns the local +Y axis of the transform's matrix.
func (t Transform) Up() mgl32.Vec3 {
	return t.ToMat4().Mul4x1(mgl32.Vec4{0, 1, 0, 0}).Vec3()
}

// Right returns the local +X axis of the transform's matrix.
func (t Transform) Right() mgl32.Vec3 {
	return t.ToMat4().Mul4x1(mgl32.Vec4{1, 0, 0, 0}).Vec3()
}
