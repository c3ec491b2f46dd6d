package app

import (
	"errors"
	"fmt"

	"github.com/plus3/lilypad/audio"
	"github.com/plus3/lilypad/ecs"
	"github.com/plus3/lilypad/game"
	"github.com/plus3/lilypad/input"
)

// PlayState runs the level: movement, then player control and game rules, then the view.
type PlayState struct {
	View View
	// Clock overrides the wall clock of the control system, mainly for tests.
	Clock game.Clock

	shell     *Shell
	world     *ecs.World
	scheduler *ecs.Scheduler
	movement  *game.MovementSystem
	control   *game.ControlSystem
}

func NewPlayState(view View) *PlayState {
	return &PlayState{View: view}
}

// World returns the level world, nil before the state was entered.
func (p *PlayState) World() *ecs.World {
	return p.world
}

// Scheduler returns the scheduler running the level's systems.
func (p *PlayState) Scheduler() *ecs.Scheduler {
	return p.scheduler
}

// Control returns the player control system.
func (p *PlayState) Control() *game.ControlSystem {
	return p.control
}

// OnInitialize starts a new play-through from the shell's scene.
func (p *PlayState) OnInitialize(shell *Shell) error {
	p.shell = shell
	doc := shell.Scene()

	if err := doc.Validate(); err != nil {
		shell.logger().Warn("app: scene has authoring problems", "path", doc.Path, "err", err)
	}
	p.world = ecs.NewWorld(game.NewComponentRegistry())
	if _, err := doc.Populate(p.world); err != nil {
		return err
	}

	p.movement = game.NewMovementSystem(doc.Level.WrapBound)
	p.control = game.NewControlSystem(doc.Level)
	p.control.Logger = shell.logger()
	p.control.Clock = p.Clock
	p.control.Renderer = p.View
	p.control.Enter(shell)
	p.control.Reset(p.world)
	p.setLevel(doc.Level)

	p.scheduler = ecs.NewScheduler(p.world)
	p.scheduler.Register(p.movement)
	p.scheduler.Register(p.control)
	p.scheduler.RegisterNamed("render", ecs.SystemFunc(p.render))

	shell.Session.Reset()
	shell.Cues().Play(audio.CueMusic, true, true)
	shell.logger().Info("app: play-through started",
		"session", shell.Session.ID, "entities", p.world.Len(), "lives", shell.Session.Lives)
	return nil
}

// OnDraw advances one frame. Escape pauses the play-through.
func (p *PlayState) OnDraw(dt float64) error {
	if p.shell.GameState() == game.Pause {
		p.render(nil)
		return nil
	}

	p.shell.Session.Tick(dt)
	p.scheduler.Once(dt)

	if p.shell.Input().JustPressed(input.KeyEscape) {
		p.shell.Pause()
	}

	// Scene authoring problems were logged by the control system; the level keeps running.
	var cfgErr *game.ConfigError
	if err := p.control.Err(); err != nil && !errors.As(err, &cfgErr) {
		return fmt.Errorf("app: play: %w", err)
	}
	return nil
}

// Redraw shows the current frame without advancing it.
func (p *PlayState) Redraw() {
	p.render(nil)
}

func (p *PlayState) render(*ecs.UpdateFrame) {
	if p.View != nil && p.world != nil {
		p.View.Render(p.world, p.shell.Status())
	}
}

// Reload rebuilds the world from the shell's current scene, keeping the session.
func (p *PlayState) Reload() error {
	if p.world == nil {
		return nil
	}
	doc := p.shell.Scene()
	if err := doc.Reload(p.world); err != nil {
		return err
	}
	p.movement.Bound = doc.Level.WrapBound
	p.control.Level = doc.Level
	p.control.Reset(p.world)
	p.setLevel(doc.Level)
	return nil
}

func (p *PlayState) setLevel(level game.LevelConfig) {
	if v, ok := p.View.(interface{ SetLevel(game.LevelConfig) }); ok {
		v.SetLevel(level)
	}
}

// OnDestroy releases the pointer and drops the level.
func (p *PlayState) OnDestroy() {
	if p.control != nil {
		p.control.Exit()
	}
	if p.world != nil {
		p.world.Clear()
	}
	if p.View != nil {
		for _, e := range []game.Effect{game.EffectFlash, game.EffectDamage} {
			p.View.SetEffect(e, false)
		}
	}
}
