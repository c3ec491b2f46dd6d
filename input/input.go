// Package input holds the per-frame input snapshot consumed by the game systems,
// independent of the device library that produced it.
package input

import "github.com/go-gl/mathgl/mgl32"

// Key is a symbolic keyboard key.
type Key uint8

const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeyQ
	KeyE
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyLeftShift
	KeyEscape
	KeyEnter
	KeySpace
	KeyP
	KeyR

	keyCount
)

var keyNames = [keyCount]string{
	KeyW:         "W",
	KeyA:         "A",
	KeyS:         "S",
	KeyD:         "D",
	KeyQ:         "Q",
	KeyE:         "E",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyLeftShift: "LeftShift",
	KeyEscape:    "Escape",
	KeyEnter:     "Enter",
	KeySpace:     "Space",
	KeyP:         "P",
	KeyR:         "R",
}

func (k Key) String() string {
	if k < keyCount {
		return keyNames[k]
	}
	return "Key(?)"
}

// Keys lists every symbolic key.
func Keys() []Key {
	keys := make([]Key, keyCount)
	for i := range keys {
		keys[i] = Key(i)
	}
	return keys
}

// Button is a pointer device button.
type Button uint8

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

// KeySet is a bit set of keys.
type KeySet uint32

func (s KeySet) Has(k Key) bool {
	return s&(1<<k) != 0
}

func (s KeySet) With(keys ...Key) KeySet {
	for _, k := range keys {
		s |= 1 << k
	}
	return s
}

func (s KeySet) Without(keys ...Key) KeySet {
	for _, k := range keys {
		s &^= 1 << k
	}
	return s
}

// State is the input observed during one frame.
type State struct {
	Keys     KeySet
	Previous KeySet
	Buttons  uint8

	// MouseDelta is the pointer movement since the previous frame, in pixels.
	MouseDelta mgl32.Vec2
	// Scroll is the wheel offset accumulated since the previous frame.
	Scroll mgl32.Vec2
}

// Pressed reports whether the key is held this frame.
func (s State) Pressed(k Key) bool {
	return s.Keys.Has(k)
}

// JustPressed reports whether the key went down this frame.
func (s State) JustPressed(k Key) bool {
	return s.Keys.Has(k) && !s.Previous.Has(k)
}

// AnyPressed reports whether at least one of the keys is held.
func (s State) AnyPressed(keys ...Key) bool {
	for _, k := range keys {
		if s.Keys.Has(k) {
			return true
		}
	}
	return false
}

// MouseButton reports whether the button is held this frame.
func (s State) MouseButton(b Button) bool {
	return s.Buttons&(1<<b) != 0
}

// WithButton returns a copy of the state with the button held.
func (s State) WithButton(b Button) State {
	s.Buttons |= 1 << b
	return s
}

// Next starts the following frame: current keys become the previous ones and
// the per-frame deltas are cleared.
func (s State) Next() State {
	return State{Previous: s.Keys, Keys: s.Keys, Buttons: s.Buttons}
}

// Source produces one snapshot per frame.
type Source interface {
	Poll() State
}

// Pointer controls pointer capture for first-person style looking.
type Pointer interface {
	Lock()
	Unlock()
}

// NopPointer ignores lock requests; used by front ends without a capturable pointer.
type NopPointer struct{}

func (NopPointer) Lock() {}
func (NopPointer) Unlock() {}

// Scripted replays a fixed list of snapshots, repeating the last one forever.
type Scripted struct {
	Frames []State
	next   int
}

func (s *Scripted) Poll() State {
	if len(s.Frames) == 0 {
		return State{}
	}
	if s.next >= len(s.Frames) {
		return s.Frames[len(s.Frames)-1]
	}
	state := s.Frames[s.next]
	s.next++
	return state
}
