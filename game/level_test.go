package game_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/lilypad/game"
)

func TestDefaultLevelIsValid(t *testing.T) {
	assert.NoError(t, game.DefaultLevelConfig().Validate())
}

func TestLevelValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*game.LevelConfig)
	}{
		{"no wrap bound", func(c *game.LevelConfig) { c.WrapBound = 0 }},
		{"no lane width", func(c *game.LevelConfig) { c.LaneHalfWidth = -1 }},
		{"depths swapped", func(c *game.LevelConfig) { c.StartDepth, c.EndDepth = c.EndDepth, c.StartDepth }},
		{"no checkpoints", func(c *game.LevelConfig) { c.Checkpoints = nil }},
		{"no goal tolerance", func(c *game.LevelConfig) { c.GoalTolerance = 0 }},
		{"no rise speed", func(c *game.LevelConfig) { c.WinRiseSpeed = 0 }},
		{"no fall speed", func(c *game.LevelConfig) { c.SkullFallSpeed = 0 }},
		{"negative effect", func(c *game.LevelConfig) { c.EffectDuration = -1 }},
		{"unknown win mode", func(c *game.LevelConfig) { c.OnWin = "menu" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := game.DefaultLevelConfig()
			tt.modify(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, game.ErrInvalidLevel))

			var cfgErr *game.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, "level", cfgErr.Tag)
			assert.Contains(t, err.Error(), `game: "level": `)
		})
	}
}

func TestLevelCheckpoint(t *testing.T) {
	cfg := game.DefaultLevelConfig()

	assert.Equal(t, game.Checkpoint{X: 0, Z: 10}, cfg.Checkpoint(0))
	assert.Equal(t, game.Checkpoint{X: -3, Z: 1}, cfg.Checkpoint(1))
	assert.Equal(t, game.Checkpoint{X: 3, Z: -9}, cfg.Checkpoint(2))
	assert.Equal(t, game.Checkpoint{X: 3, Z: -9}, cfg.Checkpoint(7), "extra stars keep the last checkpoint")
	assert.Equal(t, game.Checkpoint{X: 0, Z: 10}, cfg.Checkpoint(-1))

	cfg.Checkpoints = nil
	assert.Equal(t, game.Checkpoint{}, cfg.Checkpoint(1))
}

func TestLevelInLane(t *testing.T) {
	cfg := game.DefaultLevelConfig()

	assert.True(t, cfg.InLane(0, 0))
	assert.True(t, cfg.InLane(10, 11), "the bounds are inclusive")
	assert.True(t, cfg.InLane(-10, -12))
	assert.False(t, cfg.InLane(10.1, 0))
	assert.False(t, cfg.InLane(0, 11.1))
	assert.False(t, cfg.InLane(0, -12.1))
}
