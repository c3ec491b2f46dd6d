package game_test

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/plus3/lilypad/ecs"
	"github.com/plus3/lilypad/game"
	"github.com/plus3/lilypad/input"
)

type fakePointer struct {
	locks, unlocks int
}

func (p *fakePointer) Lock() { p.locks++ }
func (p *fakePointer) Unlock() { p.unlocks++ }

type cuePlay struct {
	name       string
	loop, stop bool
}

type fakeCues struct {
	plays []cuePlay
}

func (c *fakeCues) Play(name string, loop, stopOthers bool) {
	c.plays = append(c.plays, cuePlay{name, loop, stopOthers})
}

func (c *fakeCues) names() []string {
	names := make([]string, len(c.plays))
	for i, p := range c.plays {
		names[i] = p.name
	}
	return names
}

type fakeApp struct {
	state       game.GameState
	lives       int
	checkpoints int
	timeLeft    float64
	changes     []string
	in          input.State
	pointer     *fakePointer
	cues        *fakeCues
	reloads     int
	reload      func(*ecs.World) error
}

func newFakeApp() *fakeApp {
	return &fakeApp{
		state:    game.Playing,
		lives:    3,
		timeLeft: 60,
		pointer:  &fakePointer{},
		cues:     &fakeCues{},
	}
}

func (a *fakeApp) GameState() game.GameState { return a.state }
func (a *fakeApp) SetGameState(s game.GameState) { a.state = s }
func (a *fakeApp) Lives() int { return a.lives }
func (a *fakeApp) SetLives(n int) { a.lives = n }
func (a *fakeApp) Checkpoints() int { return a.checkpoints }
func (a *fakeApp) SetCheckpoints(n int) { a.checkpoints = n }
func (a *fakeApp) TimeLeft() float64 { return a.timeLeft }
func (a *fakeApp) ChangeState(name string) { a.changes = append(a.changes, name) }
func (a *fakeApp) Input() input.State { return a.in }
func (a *fakeApp) Pointer() input.Pointer { return a.pointer }
func (a *fakeApp) Cues() game.CuePlayer { return a.cues }
func (a *fakeApp) ReloadScene(w *ecs.World) error {
	a.reloads++
	if a.reload != nil {
		return a.reload(w)
	}
	return nil
}

func press(keys ...input.Key) input.State {
	return input.State{Keys: input.KeySet(0).With(keys...)}
}

func transformAt(x, y, z float32) ecs.Transform {
	t := ecs.NewTransform()
	t.Position = mgl32.Vec3{x, y, z}
	return t
}

func spawnNamed(w *ecs.World, name string, t ecs.Transform, components ...any) ecs.EntityId {
	return w.Spawn(append([]any{ecs.Name(name), t}, components...)...)
}

// level is a small test layout: a safe frog start, the goal far away and the
// skull parked high above it.
type level struct {
	world  *ecs.World
	camera ecs.EntityId
	frog   ecs.EntityId
	goal   ecs.EntityId
	skull  ecs.EntityId
}

func newLevel() *level {
	w := ecs.NewWorld(game.NewComponentRegistry())
	l := &level{world: w}
	l.camera = w.Spawn(transformAt(0, 8, 14), game.NewCamera(), game.NewFreeCameraController())
	l.frog = spawnNamed(w, "frog", transformAt(0, 0, 10))
	l.goal = spawnNamed(w, "woodenBox", transformAt(0, 0, -10))
	l.skull = spawnNamed(w, "skull", transformAt(0, 20, 0))
	return l
}

func (l *level) pos(id ecs.EntityId) mgl32.Vec3 {
	return l.world.Transform(id).Position
}

func (l *level) place(id ecs.EntityId, x, z float32) {
	t := l.world.Transform(id)
	t.Position[0] = x
	t.Position[2] = z
}

type harness struct {
	*level
	app      *fakeApp
	clock    *game.ManualClock
	renderer *game.EffectFlags
	sys      *game.ControlSystem
}

func newHarness() *harness {
	h := &harness{
		level:    newLevel(),
		app:      newFakeApp(),
		clock:    &game.ManualClock{T: 1},
		renderer: &game.EffectFlags{},
	}
	h.sys = game.NewControlSystem(game.DefaultLevelConfig())
	h.sys.Clock = h.clock
	h.sys.Enter(h.app)
	return h
}

func (h *harness) update(dt float32) error {
	return h.sys.Update(h.world, dt, h.renderer)
}
