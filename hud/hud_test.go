package hud

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/lilypad/ecs"
	"github.com/plus3/lilypad/game"
	"github.com/plus3/lilypad/render"
)

func newLevel() (*ecs.World, ecs.EntityId, ecs.EntityId, ecs.EntityId) {
	world := ecs.NewWorld(game.NewComponentRegistry())
	frog := world.Spawn(ecs.Name("frog"), game.MeshRenderer{Glyph: "F"})
	log := world.Spawn(ecs.Name("log-1"), game.MeshRenderer{Glyph: "="},
		game.Movement{LinearVelocity: mgl32.Vec3{2, 0, 0}, Category: game.CategoryLog})
	star := world.Spawn(ecs.Name("star"))
	world.SetParent(star, log)
	return world, frog, log, star
}

func TestStatusFields(t *testing.T) {
	fields := StatusFields(render.Status{Lives: 2, Checkpoints: 1, TimeLeft: 12.2}, 3)
	require.Len(t, fields, 3)
	assert.Equal(t, "Your Health", fields[0].Label)
	assert.Equal(t, "2", fields[0].Value)
	assert.Equal(t, "1/3", fields[1].Value)
	assert.Equal(t, "13", fields[2].Value)

	expired := StatusFields(render.Status{TimeLeft: -0.5}, 3)
	assert.Equal(t, "0", expired[2].Value)
}

func TestCollectEntities(t *testing.T) {
	world, frog, log, star := newLevel()

	rows := CollectEntities(world)
	require.Len(t, rows, 3)

	assert.Equal(t, frog, rows[0].ID)
	assert.Equal(t, "frog", rows[0].Name)
	assert.Equal(t, []string{game.KeyMeshRenderer}, rows[0].Components)

	assert.Equal(t, []string{game.KeyMeshRenderer, game.KeyMovement}, rows[1].Components)

	assert.Equal(t, star, rows[2].ID)
	assert.Equal(t, log, rows[2].Parent)
	assert.Empty(t, rows[2].Components)
}

func TestFilterEntities(t *testing.T) {
	world, frog, log, _ := newLevel()
	rows := CollectEntities(world)

	assert.Len(t, FilterEntities(rows, ""), 3)

	byName := FilterEntities(rows, "FROG")
	require.Len(t, byName, 1)
	assert.Equal(t, frog, byName[0].ID)

	byComponent := FilterEntities(rows, "movement")
	require.Len(t, byComponent, 1)
	assert.Equal(t, log, byComponent[0].ID)

	assert.Empty(t, FilterEntities(rows, "skull"))
}

func TestSortEntities(t *testing.T) {
	world, frog, log, star := newLevel()
	rows := CollectEntities(world)

	SortEntities(rows, 1, true)
	assert.Equal(t, []ecs.EntityId{frog, log, star}, ids(rows))

	SortEntities(rows, 3, false)
	assert.Equal(t, log, rows[0].ID)
	assert.Equal(t, star, rows[2].ID)

	SortEntities(rows, 0, true)
	assert.Equal(t, []ecs.EntityId{frog, log, star}, ids(rows))
}

func ids(rows []EntityInfo) []ecs.EntityId {
	out := make([]ecs.EntityId, len(rows))
	for i, row := range rows {
		out[i] = row.ID
	}
	return out
}

func TestSortComponentStats(t *testing.T) {
	world, _, _, _ := newLevel()
	rows := world.CollectStats().ComponentBreakdown
	require.Len(t, rows, 2)

	SortComponentStats(rows, 2, false)
	assert.Equal(t, game.KeyMeshRenderer, rows[0].Key)
	assert.Equal(t, 2, rows[0].EntityCount)

	SortComponentStats(rows, 0, false)
	assert.Equal(t, game.KeyMovement, rows[0].Key)
}

func TestCollectTags(t *testing.T) {
	world, frog, log, star := newLevel()
	registry := game.NewRegistry()
	registry.Rebuild(world)
	world.Delete(star)

	groups := CollectTags(registry)
	require.Len(t, groups, len(game.Tags()))

	byTag := make(map[game.Tag]TagGroup)
	for _, g := range groups {
		byTag[g.Tag] = g
	}
	assert.Equal(t, []ecs.EntityId{frog}, byTag[game.TagFrog].Live)
	assert.Equal(t, []ecs.EntityId{log}, byTag[game.TagLog].Live)
	assert.Equal(t, 1, byTag[game.TagStar].Indexed)
	assert.Empty(t, byTag[game.TagStar].Live)
	assert.Empty(t, byTag[game.TagGoal].Live)
}

func TestEditableFields(t *testing.T) {
	type sample struct {
		Speed  float32
		hidden int
		Target *mgl32.Vec3
	}

	fields := editableFields(reflect.TypeOf(sample{}))
	assert.Equal(t, []editableField{
		{Name: "Speed", Index: 0},
		{Name: "Target", Index: 2, Pointer: true},
	}, fields)
	assert.Nil(t, editableFields(reflect.TypeOf(3)))
}

func TestHeading(t *testing.T) {
	world, frog, log, star := newLevel()
	registry := game.NewRegistry()
	registry.Rebuild(world)

	assert.Equal(t, fmt.Sprintf("Entity %s \"frog\" [frog]", frog), Heading(world, registry, frog))
	assert.Equal(t, fmt.Sprintf("Entity %s \"log-1\" [log]", log), Heading(world, registry, log))
	assert.Equal(t, fmt.Sprintf("Entity %s \"star\" [star]", star), Heading(world, registry, star))
	assert.Equal(t, fmt.Sprintf("Entity %s \"frog\"", frog), Heading(world, nil, frog))

	plain := world.Spawn(ecs.Name("rock"))
	registry.Rebuild(world)
	assert.Equal(t, fmt.Sprintf("Entity %s \"rock\"", plain), Heading(world, registry, plain))
}

func TestFrameHistory(t *testing.T) {
	h := NewFrameHistory(2)
	assert.Zero(t, h.Average())

	h.Add(0.010)
	assert.InDelta(t, 10, h.Average(), 1e-4)

	h.Add(0.020)
	h.Add(0.030)
	assert.InDelta(t, 25, h.Average(), 1e-4)
}
