// Package ebiteninput polls keyboard and mouse state from Ebiten.
package ebiteninput

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/lilypad/input"
)

var keyMap = map[input.Key]ebiten.Key{
	input.KeyW:         ebiten.KeyW,
	input.KeyA:         ebiten.KeyA,
	input.KeyS:         ebiten.KeyS,
	input.KeyD:         ebiten.KeyD,
	input.KeyQ:         ebiten.KeyQ,
	input.KeyE:         ebiten.KeyE,
	input.KeyUp:        ebiten.KeyArrowUp,
	input.KeyDown:      ebiten.KeyArrowDown,
	input.KeyLeft:      ebiten.KeyArrowLeft,
	input.KeyRight:     ebiten.KeyArrowRight,
	input.KeyLeftShift: ebiten.KeyShiftLeft,
	input.KeyEscape:    ebiten.KeyEscape,
	input.KeyEnter:     ebiten.KeyEnter,
	input.KeySpace:     ebiten.KeySpace,
	input.KeyP:         ebiten.KeyP,
	input.KeyR:         ebiten.KeyR,
}

var buttonMap = map[input.Button]ebiten.MouseButton{
	input.ButtonLeft:   ebiten.MouseButtonLeft,
	input.ButtonRight:  ebiten.MouseButtonRight,
	input.ButtonMiddle: ebiten.MouseButtonMiddle,
}

// Poller reads Ebiten's input state once per Update call.
// It also implements input.Pointer by toggling the cursor capture mode.
type Poller struct {
	// Blocked reports whether another layer (the HUD) is consuming the pointer this frame.
	Blocked func() bool

	current  input.State
	lastX    int
	lastY    int
	havePrev bool
}

func NewPoller() *Poller {
	return &Poller{}
}

func (p *Poller) Poll() input.State {
	next := p.current.Next()
	next.Keys = 0
	next.Buttons = 0

	for k, ek := range keyMap {
		if ebiten.IsKeyPressed(ek) {
			next.Keys = next.Keys.With(k)
		}
	}

	pointerFree := p.Blocked == nil || !p.Blocked()
	if pointerFree {
		for b, eb := range buttonMap {
			if ebiten.IsMouseButtonPressed(eb) {
				next = next.WithButton(b)
			}
		}
		wx, wy := ebiten.Wheel()
		next.Scroll = mgl32.Vec2{float32(wx), float32(wy)}
	}

	x, y := ebiten.CursorPosition()
	if p.havePrev && pointerFree {
		next.MouseDelta = mgl32.Vec2{float32(x - p.lastX), float32(y - p.lastY)}
	}
	p.lastX, p.lastY, p.havePrev = x, y, true

	p.current = next
	return next
}

func (p *Poller) Lock() {
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)
}

func (p *Poller) Unlock() {
	ebiten.SetCursorMode(ebiten.CursorModeVisible)
}
