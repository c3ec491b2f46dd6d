package ecs_test

import "github.com/plus3/lilypad/ecs"

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Label struct {
	Value string
}

type Health struct {
	Current int
	Max     int
}

type PlayerController struct{}

// Custom primitive types for testing non-struct components
type Score int32
type Temperature float64

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry, "Position")
	ecs.RegisterComponent[Velocity](registry, "Velocity")
	ecs.RegisterComponent[Label](registry, "Label")
	ecs.RegisterComponent[Health](registry, "Health")
	ecs.RegisterComponent[PlayerController](registry, "PlayerController")
	ecs.RegisterComponent[Score](registry, "Score")
	ecs.RegisterComponent[Temperature](registry, "Temperature")
	return registry
}

func newTestWorld() *ecs.World {
	return ecs.NewWorld(newTestRegistry())
}
