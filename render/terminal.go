package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/plus3/lilypad/ecs"
	"github.com/plus3/lilypad/game"
)

// Terminal draws the level as a grid of cells on a tcell screen. Row 0 holds the
// status line and the far bank is drawn at the top.
type Terminal struct {
	game.EffectFlags

	screen tcell.Screen
	level  game.LevelConfig

	// CellsPerUnit is the number of columns for one world unit; rows are one per unit.
	CellsPerUnit int
	// Ceiling hides entities higher than it, such as the parked skull.
	Ceiling float32
}

func NewTerminal(screen tcell.Screen, level game.LevelConfig) *Terminal {
	return &Terminal{
		screen:       screen,
		level:        level,
		CellsPerUnit: 2,
		Ceiling:      6,
	}
}

// SetLevel switches the layout after a scene reload.
func (t *Terminal) SetLevel(level game.LevelConfig) {
	t.level = level
}

// Cell maps a ground-plane point to the screen cell it is drawn in.
func (t *Terminal) Cell(x, z float32) (col, row int) {
	col = int(math.Floor(float64((x + t.level.LaneHalfWidth) * float32(t.CellsPerUnit))))
	row = 1 + int(math.Floor(float64(z-t.level.EndDepth)+0.5))
	return col, row
}

// Size returns the number of columns and rows the level needs.
func (t *Terminal) Size() (int, int) {
	col, row := t.Cell(t.level.LaneHalfWidth, t.level.StartDepth)
	return col + 1, row + 1
}

// Render draws the world and the status line, then shows the screen.
func (t *Terminal) Render(world *ecs.World, status Status) {
	t.screen.Clear()
	tint := Tint(world)
	cols, rows := t.Size()

	base := tcell.StyleDefault
	switch {
	case t.Effect(game.EffectDamage):
		base = base.Background(tcell.ColorDarkRed)
	case t.Effect(game.EffectFlash):
		base = base.Background(tcell.ColorWhite)
	}
	for row := 1; row < rows; row++ {
		for col := 0; col < cols; col++ {
			t.screen.SetContent(col, row, ' ', nil, base)
		}
	}

	for _, s := range Collect(world, t.Ceiling) {
		style := base.Foreground(color(Shade(s.Color, tint)))
		if !s.Area() {
			col, row := t.Cell(s.Center.X(), s.Center.Y())
			t.put(col, row, cols, rows, s.Glyph, style)
			continue
		}
		if s.Height < 0 {
			style = style.Background(color(Shade(s.Color, tint)))
		}
		c0, r0 := t.Cell(s.Min.X(), s.Min.Y())
		c1, r1 := t.Cell(s.Max.X(), s.Max.Y())
		for row := r0; row < r1; row++ {
			for col := c0; col < c1; col++ {
				t.put(col, row, cols, rows, s.Glyph, style)
			}
		}
	}

	t.text(0, 0, fmt.Sprintf("Lives %d  Checkpoint %d/3  Time %d  %s",
		status.Lives, status.Checkpoints, int(math.Ceil(math.Max(status.TimeLeft, 0))), status.State))
	t.screen.Show()
}

func (t *Terminal) put(col, row, cols, rows int, r rune, style tcell.Style) {
	if col < 0 || row < 1 || col >= cols || row >= rows {
		return
	}
	t.screen.SetContent(col, row, r, nil, style)
}

// text writes a line of text starting at the cell.
func (t *Terminal) text(col, row int, s string) {
	for _, r := range s {
		t.screen.SetContent(col, row, r, nil, tcell.StyleDefault)
		col++
	}
}

// Message shows a centered line, used by the end screens.
func (t *Terminal) Message(s string) {
	t.screen.Clear()
	cols, rows := t.screen.Size()
	t.text((cols-len(s))/2, rows/2, s)
	t.screen.Show()
}

func color(c mgl32.Vec4) tcell.Color {
	clamp := func(v float32) int32 {
		return int32(mgl32.Clamp(v, 0, 1) * 255)
	}
	return tcell.NewRGBColor(clamp(c.X()), clamp(c.Y()), clamp(c.Z()))
}
