package ebitenrender_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/plus3/lilypad/game"
	"github.com/plus3/lilypad/render/ebitenrender"
)

func TestTopDownLayout(t *testing.T) {
	r := ebitenrender.NewTopDown(game.DefaultLevelConfig(), mgl32.Vec4{0, 0, 0, 1}, 10)

	w, h := r.Size()
	assert.Equal(t, 200, w)
	assert.Equal(t, 240, h)

	x, y := r.Project(-10, -12)
	assert.Equal(t, float32(0), x)
	assert.Equal(t, float32(5), y)

	x, y = r.Project(0, 10)
	assert.Equal(t, float32(100), x)
	assert.Equal(t, float32(225), y, "the near bank is at the bottom")
}

func TestTopDownDefaultCellSize(t *testing.T) {
	r := ebitenrender.NewTopDown(game.DefaultLevelConfig(), mgl32.Vec4{}, 0)
	assert.Equal(t, float32(32), r.CellSize)
}

func TestTopDownSetLevel(t *testing.T) {
	r := ebitenrender.NewTopDown(game.DefaultLevelConfig(), mgl32.Vec4{}, 10)
	level := game.DefaultLevelConfig()
	level.LaneHalfWidth = 5
	r.SetLevel(level)

	w, _ := r.Size()
	assert.Equal(t, 100, w)
}
