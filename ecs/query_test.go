package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plus3/lilypad/ecs"
)

func TestQuerySnapshot(t *testing.T) {
	world := newTestWorld()
	world.Spawn(Position{X: 1}, Velocity{})
	world.Spawn(Position{X: 2})

	query := ecs.NewQuery[struct {
		*Position
		*Velocity
	}](world)
	query.Execute()
	assert.Equal(t, 1, query.Len())

	spawned := 0
	for range query.Iter() {
		world.Spawn(Position{}, Velocity{})
		spawned++
	}
	assert.Equal(t, 1, spawned, "entities spawned mid-scan are not visited")

	query.Execute()
	assert.Equal(t, 2, query.Len())
}

func TestQueryReusesSnapshotWithoutChanges(t *testing.T) {
	world := newTestWorld()
	id := world.Spawn(Position{X: 1})

	query := ecs.NewQuery[struct{ *Position }](world)
	query.Execute()

	ecs.ReadComponent[Position](world, id).X = 10
	query.Execute()

	for item := range query.Values() {
		assert.Equal(t, float32(10), item.Position.X)
	}
}

func TestQueryLazyExecute(t *testing.T) {
	world := newTestWorld()
	world.Spawn(Score(1))
	world.Spawn(Score(2))

	query := ecs.NewQuery[struct{ *Score }](world)
	total := Score(0)
	for _, item := range query.Iter() {
		total += *item.Score
	}
	assert.Equal(t, Score(3), total)
}

func TestQueryAfterDelete(t *testing.T) {
	world := newTestWorld()
	a := world.Spawn(Score(1))
	world.Spawn(Score(2))

	query := ecs.NewQuery[struct{ *Score }](world)
	query.Execute()
	world.Delete(a)
	query.Execute()
	assert.Equal(t, 1, query.Len())
}
