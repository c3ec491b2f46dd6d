package input

import "github.com/gdamore/tcell/v2"

// DefaultHoldFrames is how long a terminal key stays held after its last event.
// Terminals report presses and auto-repeats but never releases.
const DefaultHoldFrames = 6

// Terminal turns tcell key events into per-frame snapshots.
// Feed and Poll must be called from the same goroutine.
type Terminal struct {
	HoldFrames int

	held    [keyCount]int
	current State
	quit    bool
}

// NewTerminal creates a terminal source with the default hold time.
func NewTerminal() *Terminal {
	return &Terminal{HoldFrames: DefaultHoldFrames}
}

// Feed records a tcell event for the next Poll. Non-key events are ignored.
func (t *Terminal) Feed(ev tcell.Event) {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return
	}
	if key.Key() == tcell.KeyCtrlC {
		t.quit = true
		return
	}
	if k, ok := translateTcell(key); ok {
		t.held[k] = t.HoldFrames
		if t.held[k] <= 0 {
			t.held[k] = 1
		}
	}
}

// Quit reports whether Ctrl+C was received.
func (t *Terminal) Quit() bool {
	return t.quit
}

// Poll returns the snapshot for this frame and ages held keys.
func (t *Terminal) Poll() State {
	next := t.current.Next()
	next.Keys = 0
	for k := range t.held {
		if t.held[k] > 0 {
			next.Keys = next.Keys.With(Key(k))
			t.held[k]--
		}
	}
	t.current = next
	return next
}

func translateTcell(ev *tcell.EventKey) (Key, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return KeyUp, true
	case tcell.KeyDown:
		return KeyDown, true
	case tcell.KeyLeft:
		return KeyLeft, true
	case tcell.KeyRight:
		return KeyRight, true
	case tcell.KeyEscape:
		return KeyEscape, true
	case tcell.KeyEnter:
		return KeyEnter, true
	case tcell.KeyRune:
		return runeKey(ev.Rune())
	}
	return 0, false
}

func runeKey(r rune) (Key, bool) {
	switch r {
	case 'w', 'W':
		return KeyW, true
	case 'a', 'A':
		return KeyA, true
	case 's', 'S':
		return KeyS, true
	case 'd', 'D':
		return KeyD, true
	case 'q', 'Q':
		return KeyQ, true
	case 'e', 'E':
		return KeyE, true
	case 'p', 'P':
		return KeyP, true
	case 'r', 'R':
		return KeyR, true
	case ' ':
		return KeySpace, true
	}
	return 0, false
}
