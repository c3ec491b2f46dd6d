package game

import (
	"log/slog"

	"github.com/plus3/lilypad/ecs"
)

type controlled struct {
	Id         ecs.EntityId
	Transform  *ecs.Transform
	Camera     *Camera
	Controller *FreeCameraController
}

// frame carries the entities resolved for one Update through the stages.
type frame struct {
	world    *ecs.World
	dt       float32
	now      float64
	renderer Renderer
	intent   Intent

	controller *FreeCameraController
	camera     *ecs.Transform
	frogId     ecs.EntityId
	frog       *ecs.Transform
}

// ControlSystem turns player input into camera and frog motion and runs the game rules.
//
// Each Update runs four stages that talk through the frame's event list: input to intent,
// intent to motion, overlap queries and finally the rules that drive lives, checkpoints
// and state transitions.
type ControlSystem struct {
	Level  LevelConfig
	Clock  Clock
	Logger *slog.Logger
	// Renderer receives effect flags when the system runs from a Scheduler.
	Renderer Renderer

	app      App
	registry *Registry
	locked   bool
	hazard   bool
	reported bool

	// err is the result of the last Execute
	err error

	effectOn    [effectCount]bool
	effectUntil [effectCount]float64

	events Events
}

func NewControlSystem(level LevelConfig) *ControlSystem {
	return &ControlSystem{
		Level:    level,
		registry: NewRegistry(),
	}
}

// Enter binds the system to the application shell.
func (s *ControlSystem) Enter(app App) {
	s.app = app
}

// Exit releases the pointer if the system locked it.
func (s *ControlSystem) Exit() {
	if s.locked && s.app != nil {
		s.app.Pointer().Unlock()
	}
	s.locked = false
}

// Reset re-indexes the world's special entities and drops any pending hazard sequence.
// Call it after the world was cleared or populated from a scene.
func (s *ControlSystem) Reset(world *ecs.World) {
	s.registry.Rebuild(world)
	s.hazard = false
	s.reported = false
}

// Registry returns the tag index the system works from.
func (s *ControlSystem) Registry() *Registry {
	return s.registry
}

// Events returns the events of the last Update. The slice is reused by the next Update.
func (s *ControlSystem) Events() Events {
	return s.events
}

// HazardActive reports whether a hazard hit is being played out.
func (s *ControlSystem) HazardActive() bool {
	return s.hazard
}

func (s *ControlSystem) clock() Clock {
	if s.Clock == nil {
		s.Clock = NewSystemClock()
	}
	return s.Clock
}

func (s *ControlSystem) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// Execute runs Update from a Scheduler. The outcome is kept for Err.
func (s *ControlSystem) Execute(frame *ecs.UpdateFrame) {
	s.err = s.Update(frame.World, float32(frame.DeltaTime), s.Renderer)
}

// Err returns the error of the last scheduled run.
func (s *ControlSystem) Err() error {
	return s.err
}

// Update runs one frame. Without a controlled camera or a frog it does nothing.
// A scene that has a frog but lacks an entity the rules need yields a *ConfigError.
func (s *ControlSystem) Update(world *ecs.World, dt float32, renderer Renderer) error {
	s.events = s.events[:0]
	if s.app == nil {
		return nil
	}

	now := s.clock().Now()
	s.expireEffects(renderer, now)

	_, ctl, ok := ecs.NewView[controlled](world).First()
	if !ok {
		return nil
	}

	intent := IntentFromInput(s.app.Input())
	s.updatePointer(intent)
	applyLook(ctl.Transform, ctl.Camera, ctl.Controller, intent)
	applyFly(ctl.Transform, ctl.Controller, intent, dt)

	if !s.registry.Indexed(world) || s.registry.Epoch() != world.Epoch() {
		s.Reset(world)
	} else if s.registry.BuiltAt() != world.Version() {
		s.registry.Rebuild(world)
	}
	frogId, ok := s.registry.Frog()
	if !ok {
		return nil
	}

	f := &frame{
		world:      world,
		dt:         dt,
		now:        now,
		renderer:   renderer,
		intent:     intent,
		controller: ctl.Controller,
		camera:     ctl.Transform,
		frogId:     frogId,
		frog:       world.Transform(frogId),
	}

	var err error
	switch s.app.GameState() {
	case Playing:
		err = s.play(f)
	case Win:
		err = s.rise(f)
	case GameOver:
		err = s.recover(f)
	}

	world.CommitRemovals()
	if err != nil {
		s.report(err)
	}
	return err
}

func (s *ControlSystem) report(err error) {
	if s.reported {
		return
	}
	s.reported = true
	s.logger().Error("game: scene cannot be played", "err", err)
}

// updatePointer locks the pointer while the look button is held.
func (s *ControlSystem) updatePointer(intent Intent) {
	switch {
	case intent.Looking && !s.locked:
		s.app.Pointer().Lock()
		s.locked = true
	case !intent.Looking && s.locked:
		s.app.Pointer().Unlock()
		s.locked = false
	}
}
