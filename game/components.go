package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/plus3/lilypad/ecs"
)

// Category selects the movement rule applied to an entity.
type Category string

const (
	CategoryStar       Category = "star"
	CategoryMoon       Category = "moon"
	CategoryLog        Category = "log"
	CategoryReverseLog Category = "reverseLog"
	CategoryCar        Category = "car"
)

// Direction is the facing sub-tag of a movement, used by cars.
type Direction string

const (
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

// Lane is the wrap rule an entity follows along the x axis.
type Lane int8

const (
	LaneNone    Lane = 0
	LaneForward Lane = 1
	LaneReverse Lane = -1
)

// Movement drives an entity every frame according to its category.
type Movement struct {
	LinearVelocity  mgl32.Vec3 `yaml:"linearVelocity"`
	AngularVelocity mgl32.Vec3 `yaml:"angularVelocity"`
	Category        Category   `yaml:"category"`
	Direction       Direction  `yaml:"direction"`
}

// Lane returns the wrap rule for the movement's category and direction.
func (m Movement) Lane() Lane {
	switch m.Category {
	case CategoryLog:
		return LaneForward
	case CategoryReverseLog:
		return LaneReverse
	case CategoryCar:
		switch m.Direction {
		case DirectionRight:
			return LaneForward
		case DirectionLeft:
			return LaneReverse
		}
	}
	return LaneNone
}

// Spins reports whether the movement is a continuous rotation.
func (m Movement) Spins() bool {
	return m.Category == CategoryStar || m.Category == CategoryMoon
}

// Camera marks an entity as a perspective camera.
type Camera struct {
	FovY float32 `yaml:"fovY"`
	Near float32 `yaml:"near"`
	Far  float32 `yaml:"far"`
}

func NewCamera() Camera {
	return Camera{FovY: math.Pi / 2, Near: 0.01, Far: 100}
}

// ViewMatrix looks from the camera entity's world position along its forward axis.
func (c Camera) ViewMatrix(world *ecs.World, id ecs.EntityId) mgl32.Mat4 {
	m := world.LocalToWorld(id)
	eye := m.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
	center := m.Mul4x1(mgl32.Vec4{0, 0, -1, 1}).Vec3()
	up := m.Mul4x1(mgl32.Vec4{0, 1, 0, 0}).Vec3()
	return mgl32.LookAtV(eye, center, up)
}

// ProjectionMatrix returns the perspective projection for the given aspect ratio.
func (c Camera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// FreeCameraController makes the camera entity steerable by the player.
type FreeCameraController struct {
	RotationSensitivity float32    `yaml:"rotationSensitivity"`
	FovSensitivity      float32    `yaml:"fovSensitivity"`
	PositionSensitivity mgl32.Vec3 `yaml:"positionSensitivity"`
	SpeedupFactor       float32    `yaml:"speedupFactor"`
}

func NewFreeCameraController() FreeCameraController {
	return FreeCameraController{
		RotationSensitivity: 0.01,
		FovSensitivity:      0.3,
		PositionSensitivity: mgl32.Vec3{3, 3, 3},
		SpeedupFactor:       5,
	}
}

// MeshRenderer describes how the render collaborator draws an entity.
type MeshRenderer struct {
	Mesh     string     `yaml:"mesh"`
	Material string     `yaml:"material"`
	Color    mgl32.Vec4 `yaml:"color"`
	Glyph    string     `yaml:"glyph"`
}

// LightType is the kind of light source.
type LightType string

const (
	LightDirectional LightType = "directional"
	LightPoint       LightType = "point"
	LightSpot        LightType = "spot"
)

// Light is a scene light. ConeAngles holds the inner and outer angles of a spot light in radians.
type Light struct {
	Type        LightType  `yaml:"lightType"`
	Direction   mgl32.Vec3 `yaml:"direction"`
	Diffuse     mgl32.Vec3 `yaml:"diffuse"`
	Specular    mgl32.Vec3 `yaml:"specular"`
	Attenuation mgl32.Vec3 `yaml:"attenuation"`
	ConeAngles  mgl32.Vec2 `yaml:"coneAngles"`
}

func NewLight() Light {
	return Light{
		Type:        LightDirectional,
		Direction:   mgl32.Vec3{0, -1, 0},
		Diffuse:     mgl32.Vec3{1, 1, 1},
		Specular:    mgl32.Vec3{1, 1, 1},
		Attenuation: mgl32.Vec3{1, 0, 0},
		ConeAngles:  mgl32.Vec2{math.Pi / 8, math.Pi / 4},
	}
}

// Component keys as they appear in scene documents.
const (
	KeyMovement     = "Movement"
	KeyCamera       = "Camera"
	KeyController   = "FreeCameraController"
	KeyMeshRenderer = "MeshRenderer"
	KeyLight        = "Light"
)

// RegisterComponents registers every game component kind with the registry.
func RegisterComponents(r *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Movement](r, KeyMovement)
	ecs.RegisterComponent[Camera](r, KeyCamera)
	ecs.RegisterComponent[FreeCameraController](r, KeyController)
	ecs.RegisterComponent[MeshRenderer](r, KeyMeshRenderer)
	ecs.RegisterComponent[Light](r, KeyLight)
}

// NewComponentRegistry returns a component registry with the game components registered.
func NewComponentRegistry() *ecs.ComponentRegistry {
	r := ecs.NewComponentRegistry()
	RegisterComponents(r)
	return r
}
