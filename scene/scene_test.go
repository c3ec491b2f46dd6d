package scene_test

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/lilypad/ecs"
	"github.com/plus3/lilypad/game"
	"github.com/plus3/lilypad/scene"
)

const small = `
session:
  lives: 5
level:
  onWin: shell
  checkpoints:
    - { x: 1, z: 2 }
world:
  - name: camera
    position: [0, 8, 14]
    rotation: [-90, 0, 0]
    components:
      - type: Camera
      - type: FreeCameraController
        speedupFactor: 2
  - name: frog
    position: [0, 0, 10]
    scale: [0.5, 0.5, 0.5]
    children:
      - name: hat
        position: [0, 1, 0]
  - name: log
    components:
      - { type: Movement, category: log, linearVelocity: [2, 0, 0] }
`

func newWorld() *ecs.World {
	return ecs.NewWorld(game.NewComponentRegistry())
}

func TestParseDefaults(t *testing.T) {
	doc, err := scene.Parse([]byte(small))
	require.NoError(t, err)

	assert.Equal(t, 5, doc.Session.Lives)
	assert.Equal(t, 90.0, doc.Session.TimeLimit, "missing settings keep their defaults")
	assert.Equal(t, game.OnWinShell, doc.Level.OnWin)
	assert.Equal(t, []game.Checkpoint{{X: 1, Z: 2}}, doc.Level.Checkpoints)
	assert.Equal(t, float32(11), doc.Level.WrapBound)
	assert.Equal(t, float32(32), doc.Renderer.CellSize)
	assert.Len(t, doc.World, 3)
	assert.Empty(t, doc.Path)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"bad yaml", "world: [\n"},
		{"component without type", "world:\n  - name: a\n    components:\n      - { mesh: box }\n"},
		{"invalid level", "level:\n  onWin: menu\n"},
		{"no lives", "session:\n  lives: 0\n"},
		{"short vector", "world:\n  - position: [1, 2]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scene.Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}

	_, err := scene.Parse([]byte("level:\n  goalTolerance: -1\n"))
	assert.ErrorIs(t, err, game.ErrInvalidLevel)
}

func TestPopulate(t *testing.T) {
	doc, err := scene.Parse([]byte(small))
	require.NoError(t, err)
	world := newWorld()

	ids, err := doc.Populate(world)
	require.NoError(t, err)
	require.Len(t, ids, 4)
	assert.Equal(t, 4, world.Len())

	camera, ok := world.FindByName("camera")
	require.True(t, ok)
	cam, ok := ecs.Get[game.Camera](world, camera)
	require.True(t, ok)
	assert.Equal(t, game.NewCamera(), *cam, "components start from their defaults")
	ctl, ok := ecs.Get[game.FreeCameraController](world, camera)
	require.True(t, ok)
	assert.Equal(t, float32(2), ctl.SpeedupFactor)
	assert.Equal(t, float32(0.01), ctl.RotationSensitivity)
	assert.InDelta(t, -math.Pi/2, world.Transform(camera).Rotation.X(), 1e-6, "rotation is given in degrees")

	frog, _ := world.FindByName("frog")
	assert.Equal(t, mgl32.Vec3{0.5, 0.5, 0.5}, world.Transform(frog).Scale)
	hat, ok := world.FindByName("hat")
	require.True(t, ok)
	parent, ok := world.Parent(hat)
	require.True(t, ok)
	assert.Equal(t, frog, parent)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, world.Transform(hat).Scale)

	log, _ := world.FindByName("log")
	movement, ok := ecs.Get[game.Movement](world, log)
	require.True(t, ok)
	assert.Equal(t, game.CategoryLog, movement.Category)
	assert.Equal(t, mgl32.Vec3{2, 0, 0}, movement.LinearVelocity)
}

func TestPopulateUnknownComponent(t *testing.T) {
	doc, err := scene.Parse([]byte("world:\n  - name: a\n  - name: b\n    components:\n      - type: Sprite\n"))
	require.NoError(t, err)
	world := newWorld()

	_, err = doc.Populate(world)

	require.ErrorIs(t, err, scene.ErrUnknownComponent)
	assert.Contains(t, err.Error(), `entity "b"`)
	assert.Zero(t, world.Len(), "nothing is spawned from a broken document")
}

func TestReload(t *testing.T) {
	doc, err := scene.Parse([]byte(small))
	require.NoError(t, err)
	world := newWorld()
	_, err = doc.Populate(world)
	require.NoError(t, err)
	world.Spawn(ecs.Name("extra"))

	require.NoError(t, doc.Reload(world))

	assert.Equal(t, 4, world.Len())
	_, ok := world.FindByName("extra")
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	doc, err := scene.Parse([]byte(small))
	require.NoError(t, err)

	err = doc.Validate()
	require.ErrorIs(t, err, game.ErrMissingEntity)
	assert.Contains(t, err.Error(), "woodenBox")
	assert.Contains(t, err.Error(), "skull")

	noFrog, err := scene.Parse([]byte("world:\n  - name: camera\n"))
	require.NoError(t, err)
	assert.NoError(t, noFrog.Validate(), "a scene without a frog needs nothing else")
}

func TestDefaultLevel(t *testing.T) {
	doc, err := scene.Default()
	require.NoError(t, err)
	require.NoError(t, doc.Validate())

	world := newWorld()
	_, err = doc.Populate(world)
	require.NoError(t, err)

	registry := game.NewRegistry()
	registry.Rebuild(world)
	_, ok := registry.Frog()
	assert.True(t, ok)
	assert.Equal(t, 4, registry.Count(game.TagCar))
	assert.Equal(t, 3, registry.Count(game.TagLog))
	assert.Equal(t, 2, registry.Count(game.TagStar))
	assert.Equal(t, 3, registry.Count(game.TagGrass))
	assert.Equal(t, 1, registry.Count(game.TagWater))

	sun, ok := world.FindByName("sun")
	require.True(t, ok)
	light, ok := ecs.Get[game.Light](world, sun)
	require.True(t, ok)
	assert.Equal(t, game.LightDirectional, light.Type)
	assert.Contains(t, doc.Audio.Cues, game.CueHit)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mine.yaml")
	require.NoError(t, os.WriteFile(path, []byte(small), 0o644))

	doc, err := scene.Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Path)

	embedded, err := scene.Load("level1")
	require.NoError(t, err)
	assert.Empty(t, embedded.Path)

	_, err = scene.Load(filepath.Join(dir, "missing.yaml"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "level.yaml")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte(small), 0o644))

	w, err := scene.NewWatcher(path)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(other, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte(small+"\n"), 0o644))

	want, err := filepath.Abs(path)
	require.NoError(t, err)
	select {
	case got := <-w.Events:
		assert.Equal(t, want, got)
	case <-time.After(5 * time.Second):
		t.Fatal("no change event")
	}

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
	_, open := <-w.Events
	for open {
		_, open = <-w.Events
	}
}
