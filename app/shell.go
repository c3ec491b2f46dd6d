// Package app is the application shell: it owns the play session, switches between
// the menu, play, pause and end screens and hands the game systems what they need.
package app

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/plus3/lilypad/ecs"
	"github.com/plus3/lilypad/game"
	"github.com/plus3/lilypad/input"
	"github.com/plus3/lilypad/render"
	"github.com/plus3/lilypad/scene"
)

// ErrQuit is returned by Frame once the player asked to leave.
var ErrQuit = errors.New("app: quit")

// Names of the shell states.
const (
	StateMenu  = "menu"
	StatePlay  = "play"
	StatePause = "pause"
	StateWin   = game.StateWin
	StateLose  = game.StateLose
)

// State is one screen of the shell.
type State interface {
	OnInitialize(shell *Shell) error
	OnDraw(dt float64) error
	OnDestroy()
}

// View is the render collaborator the states draw through.
type View interface {
	game.Renderer
	Render(world *ecs.World, status render.Status)
	// Message shows a full screen line of text.
	Message(text string)
}

// Shell runs one state at a time. Transitions requested while a state is drawing
// take effect at the start of the next frame. Overlay states run on top of the state
// they were entered from, which is resumed rather than re-initialized when they exit.
type Shell struct {
	Session *Session
	Logger  *slog.Logger

	source  input.Source
	pointer input.Pointer
	cues    game.CuePlayer
	doc     *scene.Document

	states   map[string]State
	overlays map[string]bool

	current   string
	state     State
	suspended string
	below     State
	next      string
	quit      bool

	frame input.State
}

// NewShell creates a shell for the scene document. A nil pointer or cue player is replaced
// by one that does nothing.
func NewShell(doc *scene.Document, source input.Source, pointer input.Pointer, cues game.CuePlayer) *Shell {
	if pointer == nil {
		pointer = input.NopPointer{}
	}
	if cues == nil {
		cues = game.NopCues{}
	}
	return &Shell{
		Session:  NewSession(doc.Session),
		source:   source,
		pointer:  pointer,
		cues:     cues,
		doc:      doc,
		states:   make(map[string]State),
		overlays: make(map[string]bool),
	}
}

func (s *Shell) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// Register adds a state under name.
func (s *Shell) Register(name string, state State) {
	s.states[name] = state
}

// RegisterOverlay adds a state that suspends the current state instead of destroying it.
func (s *Shell) RegisterOverlay(name string, state State) {
	s.states[name] = state
	s.overlays[name] = true
}

// Current returns the name of the running state.
func (s *Shell) Current() string {
	return s.current
}

// Scene returns the scene document states populate their worlds from.
func (s *Shell) Scene() *scene.Document {
	return s.doc
}

// SetScene swaps the scene document. A running state that can reload picks it up at once.
func (s *Shell) SetScene(doc *scene.Document) error {
	s.doc = doc
	s.Session.SetSpec(doc.Session)
	for _, st := range []State{s.state, s.below} {
		if r, ok := st.(interface{ Reload() error }); ok {
			if err := r.Reload(); err != nil {
				return err
			}
		}
	}
	s.logger().Info("app: scene replaced", "path", doc.Path, "session", s.Session.ID)
	return nil
}

// Quit makes the next Frame return ErrQuit.
func (s *Shell) Quit() {
	s.quit = true
}

// Start enters the first state.
func (s *Shell) Start(name string) error {
	s.next = name
	return s.apply()
}

// Frame polls input, applies a pending transition and draws the running state.
func (s *Shell) Frame(dt float64) error {
	if s.quit {
		return ErrQuit
	}
	if s.source != nil {
		s.frame = s.source.Poll()
	}
	if err := s.apply(); err != nil {
		return err
	}
	if s.state == nil {
		return nil
	}
	if err := s.state.OnDraw(dt); err != nil {
		return err
	}
	if s.quit {
		return ErrQuit
	}
	return nil
}

// Stop destroys the running and suspended states.
func (s *Shell) Stop() {
	if s.state != nil {
		s.state.OnDestroy()
	}
	if s.below != nil {
		s.below.OnDestroy()
	}
	s.state, s.below = nil, nil
	s.current, s.suspended = "", ""
}

func (s *Shell) apply() error {
	if s.next == "" {
		return nil
	}
	name := s.next
	s.next = ""

	next, ok := s.states[name]
	if !ok {
		return fmt.Errorf("app: unknown state %q", name)
	}

	switch {
	case s.overlays[name] && s.state != nil && !s.overlays[s.current]:
		s.below, s.suspended = s.state, s.current
	case name == s.suspended && s.below != nil:
		s.state.OnDestroy()
		s.state, s.current = s.below, s.suspended
		s.below, s.suspended = nil, ""
		s.logger().Debug("app: resumed state", "state", name)
		return nil
	default:
		if s.state != nil {
			s.state.OnDestroy()
		}
		if s.below != nil {
			s.below.OnDestroy()
			s.below, s.suspended = nil, ""
		}
	}

	s.state, s.current = next, name
	if err := next.OnInitialize(s); err != nil {
		s.state, s.current = nil, ""
		return fmt.Errorf("app: enter %s: %w", name, err)
	}
	s.logger().Debug("app: entered state", "state", name, "session", s.Session.ID)
	return nil
}

// Pause freezes a running play-through and shows the pause screen.
func (s *Shell) Pause() {
	if s.Session.State != game.Playing {
		return
	}
	s.Session.State = game.Pause
	s.ChangeState(StatePause)
}

// Resume returns from the pause screen to the suspended play-through.
func (s *Shell) Resume() {
	if s.Session.State == game.Pause {
		s.Session.State = game.Playing
	}
	s.ChangeState(StatePlay)
}

// Status is the session summary the views show.
func (s *Shell) Status() render.Status {
	return render.Status{
		Lives:       s.Session.Lives,
		Checkpoints: s.Session.Checkpoints,
		TimeLeft:    s.Session.TimeLeft,
		State:       s.Session.State,
	}
}

func (s *Shell) GameState() game.GameState { return s.Session.State }
func (s *Shell) SetGameState(state game.GameState) { s.Session.State = state }
func (s *Shell) Lives() int { return s.Session.Lives }
func (s *Shell) SetLives(n int) { s.Session.Lives = n }
func (s *Shell) Checkpoints() int { return s.Session.Checkpoints }
func (s *Shell) SetCheckpoints(n int) { s.Session.Checkpoints = n }
func (s *Shell) TimeLeft() float64 { return s.Session.TimeLeft }
func (s *Shell) Input() input.State { return s.frame }
func (s *Shell) Pointer() input.Pointer { return s.pointer }
func (s *Shell) Cues() game.CuePlayer { return s.cues }

// ChangeState requests a transition, applied at the start of the next frame.
func (s *Shell) ChangeState(name string) {
	s.next = name
}

// ReloadScene clears the world and populates it again from the current scene.
func (s *Shell) ReloadScene(world *ecs.World) error {
	return s.doc.Reload(world)
}
