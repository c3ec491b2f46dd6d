package game_test

import (
	"slices"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/plus3/lilypad/ecs"
	"github.com/plus3/lilypad/game"
)

func TestEvents(t *testing.T) {
	var events game.Events
	events.Add(game.EventSafe, 0)
	events.AddMove(game.EventCarried, ecs.EntityId(3), mgl32.Vec3{1, 0, 0})
	events.AddMove(game.EventCarried, ecs.EntityId(4), mgl32.Vec3{-1, 0, 0})

	assert.True(t, events.Has(game.EventCarried))
	assert.False(t, events.Has(game.EventSplash))
	assert.Equal(t, []game.EventKind{game.EventSafe, game.EventCarried, game.EventCarried}, events.Kinds())

	carried := slices.Collect(events.Of(game.EventCarried))
	if assert.Len(t, carried, 2) {
		assert.Equal(t, ecs.EntityId(3), carried[0].Entity)
		assert.Equal(t, mgl32.Vec3{-1, 0, 0}, carried[1].Delta)
	}

	assert.Equal(t, "collected-star", game.EventCollectedStar.String())
	assert.Equal(t, "event(?)", game.EventKind(0).String())
}

func TestFrameEventOrder(t *testing.T) {
	h := newHarness()
	h.place(h.frog, 0.4, -9.6)
	spawnNamed(h.world, "star", transformAt(0, 0, -10))

	assert.NoError(t, h.update(0.1))

	assert.Equal(t, []game.EventKind{game.EventCollectedStar, game.EventReachedGoal}, h.sys.Events().Kinds())
	assert.Equal(t, 1, h.app.checkpoints, "the star is counted before the win ends the frame")
	assert.Equal(t, game.Win, h.app.state)
}

func TestEffectFlags(t *testing.T) {
	var flags game.EffectFlags
	flags.SetEffect(game.EffectDamage, true)

	assert.True(t, flags.Effect(game.EffectDamage))
	assert.False(t, flags.Effect(game.EffectFlash))
	assert.False(t, flags.Effect(game.Effect(9)))
	assert.Equal(t, "damage", game.EffectDamage.String())
}

func TestManualClock(t *testing.T) {
	c := &game.ManualClock{}
	c.Advance(1.5)
	assert.Equal(t, 1.5, c.Now())
}
