package game

import (
	"github.com/plus3/lilypad/ecs"
	"github.com/plus3/lilypad/input"
)

// GameState is the play session state seen by the control system.
type GameState uint8

const (
	Playing GameState = iota
	Win
	GameOver
	Pause
	// Lost is terminal: the session ended and the shell moves to its lose screen.
	Lost
)

func (s GameState) String() string {
	switch s {
	case Playing:
		return "playing"
	case Win:
		return "win"
	case GameOver:
		return "game-over"
	case Pause:
		return "pause"
	case Lost:
		return "lost"
	}
	return "state(?)"
}

// Shell state names the control system may request.
const (
	StateLose = "lose"
	StateWin  = "win"
)

// Cue names played by the rules.
const (
	CueHit    = "hit"
	CueSplash = "splash"
	CueStar   = "star"
	CueWin    = "win"
)

// CuePlayer plays named audio cues. Playing a cue that is already playing does nothing.
type CuePlayer interface {
	Play(name string, loop, stopOthers bool)
}

// NopCues discards every cue.
type NopCues struct{}

func (NopCues) Play(string, bool, bool) {}

// App is the application shell as seen by the game systems.
type App interface {
	GameState() GameState
	SetGameState(GameState)
	Lives() int
	SetLives(int)
	Checkpoints() int
	SetCheckpoints(int)
	// TimeLeft is the countdown in seconds; the shell ticks it.
	TimeLeft() float64
	// ChangeState requests a transition of the shell to a named state.
	ChangeState(name string)

	Input() input.State
	Pointer() input.Pointer
	Cues() CuePlayer

	// ReloadScene clears the world and populates it again from the stored scene.
	ReloadScene(world *ecs.World) error
}
