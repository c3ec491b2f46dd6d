package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/plus3/lilypad/ecs"
	"github.com/plus3/lilypad/game"
)

// defaults returns a pointer to the initial value of components whose zero value is not usable.
var defaults = map[string]func() any{
	game.KeyCamera: func() any {
		c := game.NewCamera()
		return &c
	},
	game.KeyController: func() any {
		c := game.NewFreeCameraController()
		return &c
	},
	game.KeyLight: func() any {
		l := game.NewLight()
		return &l
	},
	game.KeyMeshRenderer: func() any {
		return &game.MeshRenderer{Color: mgl32.Vec4{1, 1, 1, 1}}
	},
}

// newComponent allocates the component registered under key, decoded from the entry.
func newComponent(registry *ecs.ComponentRegistry, spec ComponentSpec) (any, error) {
	if _, ok := registry.Lookup(spec.Type); !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownComponent, spec.Type)
	}

	var value any
	if def, ok := defaults[spec.Type]; ok {
		value = def()
	} else {
		value, _ = registry.New(spec.Type)
	}
	if err := spec.Decode(value); err != nil {
		return nil, fmt.Errorf("decode %s: %w", spec.Type, err)
	}
	return value, nil
}

// Transform returns the local transform of the entity.
func (e EntitySpec) Transform() ecs.Transform {
	t := ecs.NewTransform()
	t.Position = e.Position
	t.Rotation = mgl32.Vec3{
		mgl32.DegToRad(e.Rotation.X()),
		mgl32.DegToRad(e.Rotation.Y()),
		mgl32.DegToRad(e.Rotation.Z()),
	}
	if e.Scale != nil {
		t.Scale = *e.Scale
	}
	return t
}

// Populate spawns the document's entities into world, parents before children.
// Nothing is spawned when any component fails to decode.
func (d *Document) Populate(world *ecs.World) ([]ecs.EntityId, error) {
	type pending struct {
		spec       *EntitySpec
		parent     int
		components []any
	}

	var plan []pending
	var walk func(specs []EntitySpec, parent int) error
	walk = func(specs []EntitySpec, parent int) error {
		for i := range specs {
			spec := &specs[i]
			p := pending{spec: spec, parent: parent}
			for _, cs := range spec.Components {
				component, err := newComponent(world.Registry(), cs)
				if err != nil {
					return fmt.Errorf("scene: entity %q: %w", spec.Name, err)
				}
				p.components = append(p.components, component)
			}
			plan = append(plan, p)
			if err := walk(spec.Children, len(plan)-1); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(d.World, -1); err != nil {
		return nil, err
	}

	ids := make([]ecs.EntityId, len(plan))
	for i, p := range plan {
		args := append([]any{ecs.Name(p.spec.Name), p.spec.Transform()}, p.components...)
		ids[i] = world.Spawn(args...)
		if p.parent >= 0 {
			world.SetParent(ids[i], ids[p.parent])
		}
	}
	return ids, nil
}

// Reload clears world and populates it again.
func (d *Document) Reload(world *ecs.World) error {
	world.Clear()
	_, err := d.Populate(world)
	return err
}
