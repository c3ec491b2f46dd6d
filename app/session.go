package app

import (
	"github.com/google/uuid"

	"github.com/plus3/lilypad/game"
	"github.com/plus3/lilypad/scene"
)

// Session is one play-through: the lives, checkpoints and countdown the rules work with.
type Session struct {
	ID          uuid.UUID
	State       game.GameState
	Lives       int
	Checkpoints int
	// TimeLeft is the countdown in seconds. It only runs while the state is Playing.
	TimeLeft float64

	spec scene.SessionSpec
}

func NewSession(spec scene.SessionSpec) *Session {
	s := &Session{spec: spec}
	s.Reset()
	return s
}

// Reset starts a new play-through with a fresh id.
func (s *Session) Reset() {
	s.ID = uuid.New()
	s.State = game.Playing
	s.Lives = s.spec.Lives
	s.Checkpoints = 0
	s.TimeLeft = s.spec.TimeLimit
}

// SetSpec changes the starting values used by the next Reset.
func (s *Session) SetSpec(spec scene.SessionSpec) {
	s.spec = spec
}

// Tick runs the countdown down by dt seconds while playing.
func (s *Session) Tick(dt float64) {
	if s.State != game.Playing {
		return
	}
	s.TimeLeft -= dt
}
