package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/lilypad/ecs"
)

func TestCollectStats(t *testing.T) {
	world := newTestWorld()

	stats := world.CollectStats()
	assert.Equal(t, 0, stats.TotalEntityCount)
	assert.Empty(t, stats.ComponentBreakdown)

	world.Spawn(Position{}, Velocity{})
	world.Spawn(Position{})
	doomed := world.Spawn(Score(1))
	world.MarkForRemoval(doomed)

	ecs.NewSingleton(world, Temperature(20))
	world.AddSingleton(Label{Value: "settings"})

	stats = world.CollectStats()
	assert.Equal(t, 3, stats.TotalEntityCount)
	assert.Equal(t, 1, stats.PendingRemovals)
	assert.Equal(t, 2, stats.SingletonCount)
	assert.Equal(t, []string{"ecs_test.Label", "ecs_test.Temperature"}, stats.SingletonTypes)

	require.Len(t, stats.ComponentBreakdown, 3)
	assert.Equal(t, ecs.ComponentStats{Key: "Position", TypeName: "ecs_test.Position", EntityCount: 2}, stats.ComponentBreakdown[0])
	assert.Equal(t, "Score", stats.ComponentBreakdown[1].Key)
	assert.Equal(t, "Velocity", stats.ComponentBreakdown[2].Key)
}
