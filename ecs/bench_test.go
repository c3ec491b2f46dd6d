package ecs_test

import (
	"reflect"
	"testing"

	"github.com/plus3/lilypad/ecs"
)

func BenchmarkSpawn(b *testing.B) {
	world := newTestWorld()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		world.Spawn(Position{X: 1.0, Y: 2.0}, Velocity{DX: 0.5, DY: 0.5})
	}
}

func BenchmarkDelete(b *testing.B) {
	world := newTestWorld()

	ids := make([]ecs.EntityId, b.N)
	for i := 0; i < b.N; i++ {
		ids[i] = world.Spawn(Position{X: 1.0, Y: 2.0}, Velocity{DX: 0.5, DY: 0.5})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		world.Delete(ids[i])
	}
}

func BenchmarkGetComponent(b *testing.B) {
	world := newTestWorld()
	id := world.Spawn(Position{X: 1.0, Y: 2.0}, Velocity{DX: 0.5, DY: 0.5})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ecs.ReadComponent[Position](world, id)
	}
}

func BenchmarkAddRemoveComponent(b *testing.B) {
	world := newTestWorld()
	id := world.Spawn(Position{X: 1.0, Y: 2.0})
	velocityType := reflect.TypeFor[Velocity]()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		world.AddComponent(id, Velocity{DX: 0.5})
		world.RemoveComponent(id, velocityType)
	}
}

func BenchmarkViewIter(b *testing.B) {
	world := newTestWorld()
	for i := 0; i < 1000; i++ {
		world.Spawn(Position{X: float32(i)}, Velocity{DX: 1})
		world.Spawn(Position{X: float32(i)})
	}
	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](world)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for item := range view.Values() {
			item.Position.X += item.Velocity.DX
		}
	}
}

func BenchmarkFindByName(b *testing.B) {
	world := newTestWorld()
	for i := 0; i < 50; i++ {
		world.Spawn(ecs.Name("log"))
	}
	world.Spawn(ecs.Name("frog"))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = world.FindByName("frog")
	}
}
