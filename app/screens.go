package app

import (
	"github.com/plus3/lilypad/game"
	"github.com/plus3/lilypad/input"
)

// MenuState waits for Enter to start playing. Escape quits.
type MenuState struct {
	View  View
	Title string

	shell *Shell
}

func (m *MenuState) OnInitialize(shell *Shell) error {
	m.shell = shell
	return nil
}

func (m *MenuState) OnDraw(float64) error {
	in := m.shell.Input()
	switch {
	case in.JustPressed(input.KeyEnter), in.JustPressed(input.KeySpace):
		m.shell.ChangeState(StatePlay)
	case in.JustPressed(input.KeyEscape):
		m.shell.Quit()
	}
	if m.View != nil {
		m.View.Message(m.Title + " - press Enter to play, Escape to quit")
	}
	return nil
}

func (m *MenuState) OnDestroy() {}

// PauseState freezes the play state it was entered from. Escape, Enter or P resume
// and Q gives up and returns to the menu.
type PauseState struct {
	Play *PlayState

	shell *Shell
}

func (p *PauseState) OnInitialize(shell *Shell) error {
	p.shell = shell
	shell.Session.State = game.Pause
	return nil
}

func (p *PauseState) OnDraw(float64) error {
	in := p.shell.Input()
	switch {
	case in.JustPressed(input.KeyEscape), in.JustPressed(input.KeyEnter), in.JustPressed(input.KeyP):
		p.shell.Resume()
	case in.JustPressed(input.KeyQ):
		p.shell.ChangeState(StateMenu)
	}
	if p.Play != nil {
		p.Play.Redraw()
	}
	return nil
}

func (p *PauseState) OnDestroy() {}

// EndState is the win or lose screen. Enter starts a new play-through.
type EndState struct {
	View View
	Text string
	Cue  string

	shell *Shell
}

func (e *EndState) OnInitialize(shell *Shell) error {
	e.shell = shell
	if e.Cue != "" {
		shell.Cues().Play(e.Cue, false, true)
	}
	shell.logger().Info("app: play-through ended", "session", shell.Session.ID,
		"state", shell.Current(), "lives", shell.Session.Lives, "checkpoints", shell.Session.Checkpoints)
	return nil
}

func (e *EndState) OnDraw(float64) error {
	in := e.shell.Input()
	switch {
	case in.JustPressed(input.KeyEnter), in.JustPressed(input.KeyR):
		e.shell.ChangeState(StatePlay)
	case in.JustPressed(input.KeyEscape):
		e.shell.ChangeState(StateMenu)
	}
	if e.View != nil {
		e.View.Message(e.Text + " - press Enter to play again")
	}
	return nil
}

func (e *EndState) OnDestroy() {}

// Install registers the standard menu, play, pause, win and lose states on the shell.
func Install(shell *Shell, view View, title string) *PlayState {
	play := NewPlayState(view)
	shell.Register(StateMenu, &MenuState{View: view, Title: title})
	shell.Register(StatePlay, play)
	shell.RegisterOverlay(StatePause, &PauseState{Play: play})
	shell.Register(StateWin, &EndState{View: view, Text: "You made it across", Cue: game.CueWin})
	shell.Register(StateLose, &EndState{View: view, Text: "Game over", Cue: game.CueHit})
	return play
}
