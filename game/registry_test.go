package game_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/lilypad/ecs"
	"github.com/plus3/lilypad/game"
)

func TestRegistryRebuild(t *testing.T) {
	l := newLevel()
	w := l.world
	log1 := spawnNamed(w, "log", transformAt(0, 0, 2))
	log2 := w.Spawn(transformAt(0, 0, 3), game.Movement{Category: game.CategoryReverseLog})
	car := w.Spawn(game.Movement{Category: game.CategoryCar})
	w.Spawn(game.Movement{Category: game.CategoryStar})
	spawnNamed(w, "tree", transformAt(0, 0, 0))

	r := game.NewRegistry()
	assert.False(t, r.Indexed(w))
	r.Rebuild(w)
	assert.True(t, r.Indexed(w))
	assert.Equal(t, w.Version(), r.BuiltAt())

	frog, ok := r.Frog()
	require.True(t, ok)
	assert.Equal(t, l.frog, frog)
	goal, ok := r.Goal()
	require.True(t, ok)
	assert.Equal(t, l.goal, goal)
	skull, ok := r.Skull()
	require.True(t, ok)
	assert.Equal(t, l.skull, skull)

	assert.Equal(t, []ecs.EntityId{log1, log2}, slices.Collect(r.Group(game.TagLog)))
	assert.Equal(t, []ecs.EntityId{car}, slices.Collect(r.Group(game.TagCar)))
	assert.Zero(t, r.Count(game.TagStar), "unnamed stars are not tagged")

	tag, ok := r.TagOf(log2)
	require.True(t, ok)
	assert.Equal(t, game.TagLog, tag)
	_, ok = r.TagOf(l.camera)
	assert.False(t, ok)
}

func TestRegistrySkipsDeadEntities(t *testing.T) {
	w := ecs.NewWorld(game.NewComponentRegistry())
	a := spawnNamed(w, "star", transformAt(0, 0, 0))
	b := spawnNamed(w, "star", transformAt(1, 0, 0))

	r := game.NewRegistry()
	r.Rebuild(w)
	w.Delete(a)

	assert.Equal(t, []ecs.EntityId{b}, slices.Collect(r.Group(game.TagStar)))
	assert.Equal(t, 2, r.Count(game.TagStar))
	first, ok := r.First(game.TagStar)
	require.True(t, ok)
	assert.Equal(t, b, first)
}

func TestRegistryClear(t *testing.T) {
	l := newLevel()
	r := game.NewRegistry()
	r.Rebuild(l.world)

	r.Clear()

	assert.False(t, r.Indexed(l.world))
	_, ok := r.Frog()
	assert.False(t, ok)
	assert.Empty(t, slices.Collect(r.Group(game.TagFrog)))
}

func TestTagForName(t *testing.T) {
	tag, ok := game.TagForName("woodenBox")
	require.True(t, ok)
	assert.Equal(t, game.TagGoal, tag)
	assert.Equal(t, "woodenBox", tag.String())

	_, ok = game.TagForName("Frog")
	assert.False(t, ok, "names are case sensitive")
}
