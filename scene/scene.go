// Package scene loads YAML scene documents and populates worlds from them.
//
// A document names the entities of a level with their transforms and components,
// plus the renderer, level, audio and session settings the front ends read.
//
//	world:
//	  - name: frog
//	    position: [0, 0, 10]
//	    components:
//	      - type: MeshRenderer
//	        color: [0.2, 0.8, 0.2, 1]
//	level:
//	  onWin: shell
package scene

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/plus3/lilypad/game"
)

var (
	// ErrUnknownComponent is returned for a component type that is not registered.
	ErrUnknownComponent = errors.New("unknown component type")
	// ErrMissingType is returned for a component entry without a type.
	ErrMissingType = errors.New("component without type")
)

// Document is a parsed scene file.
type Document struct {
	World    []EntitySpec     `yaml:"world"`
	Renderer RendererSpec     `yaml:"renderer"`
	Level    game.LevelConfig `yaml:"level"`
	Audio    AudioSpec        `yaml:"audio"`
	Session  SessionSpec      `yaml:"session"`

	// Path is the file the document was read from, empty for embedded or inline documents.
	Path string `yaml:"-"`
}

// EntitySpec describes one entity. Rotation is given in degrees.
type EntitySpec struct {
	Name       string          `yaml:"name"`
	Position   mgl32.Vec3      `yaml:"position"`
	Rotation   mgl32.Vec3      `yaml:"rotation"`
	Scale      *mgl32.Vec3     `yaml:"scale"`
	Components []ComponentSpec `yaml:"components"`
	Children   []EntitySpec    `yaml:"children"`
}

// ComponentSpec is a component entry. Type is the registry key and the remaining
// fields are decoded into the component when the world is populated.
type ComponentSpec struct {
	Type string
	node yaml.Node
}

func (c *ComponentSpec) UnmarshalYAML(node *yaml.Node) error {
	var head struct {
		Type string `yaml:"type"`
	}
	if err := node.Decode(&head); err != nil {
		return err
	}
	if head.Type == "" {
		return fmt.Errorf("line %d: %w", node.Line, ErrMissingType)
	}
	c.Type = head.Type
	c.node = *node
	return nil
}

// Decode fills out with the entry's fields.
func (c ComponentSpec) Decode(out any) error {
	if c.node.Kind == 0 {
		return nil
	}
	return c.node.Decode(out)
}

// RendererSpec holds the settings of the render collaborator.
type RendererSpec struct {
	ClearColor  mgl32.Vec4 `yaml:"clearColor"`
	Sky         bool       `yaml:"sky"`
	Postprocess string     `yaml:"postprocess"`
	// CellSize is the number of pixels per world unit of the top-down renderer.
	CellSize float32 `yaml:"cellSize"`
}

// AudioSpec maps cue names to sound files. Relative paths resolve against the scene file.
type AudioSpec struct {
	Cues   map[string]string `yaml:"cues"`
	Music  string            `yaml:"music"`
	Volume float64           `yaml:"volume"`
}

// SessionSpec holds the starting values of a play-through.
type SessionSpec struct {
	Lives int `yaml:"lives"`
	// TimeLimit is the countdown in seconds.
	TimeLimit float64 `yaml:"timeLimit"`
}

func defaultDocument() Document {
	return Document{
		Renderer: RendererSpec{
			ClearColor: mgl32.Vec4{0.05, 0.05, 0.1, 1},
			CellSize:   32,
		},
		Level:   game.DefaultLevelConfig(),
		Session: SessionSpec{Lives: 3, TimeLimit: 90},
	}
}

// Parse decodes a scene document. Settings the document leaves out keep their defaults.
func Parse(data []byte) (*Document, error) {
	doc := defaultDocument()
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("scene: unmarshal: %w", err)
	}
	if err := doc.Level.Validate(); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	if doc.Session.Lives <= 0 {
		return nil, fmt.Errorf("scene: session lives must be positive, got %d", doc.Session.Lives)
	}
	return &doc, nil
}

// Load reads a scene from disk, falling back to the embedded levels for bare names.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	fromDisk := err == nil
	if !fromDisk {
		embedded, embedErr := LevelsFS.ReadFile(levelPath(path))
		if embedErr != nil {
			return nil, fmt.Errorf("scene: load %s: %w", path, err)
		}
		data = embedded
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scene: %s: %w", path, err)
	}
	if fromDisk {
		doc.Path = path
	}
	return doc, nil
}

// Validate reports authoring problems the game rules would run into. A scene with a
// frog needs a goal and a skull; the errors unwrap to game.ErrMissingEntity.
func (d *Document) Validate() error {
	names := make(map[string]int)
	var count func([]EntitySpec)
	count = func(specs []EntitySpec) {
		for _, spec := range specs {
			names[spec.Name]++
			count(spec.Children)
		}
	}
	count(d.World)

	var errs []error
	if names[game.TagFrog.String()] > 0 {
		for _, tag := range []game.Tag{game.TagGoal, game.TagSkull} {
			if names[tag.String()] == 0 {
				errs = append(errs, &game.ConfigError{
					Tag:    tag.String(),
					Reason: fmt.Sprintf("scene has a frog but no entity named %q", tag.String()),
					Err:    game.ErrMissingEntity,
				})
			}
		}
	}
	if n := names[game.TagFrog.String()]; n > 1 {
		errs = append(errs, &game.ConfigError{
			Tag:    game.TagFrog.String(),
			Reason: fmt.Sprintf("scene has %d frogs, only the first is controlled", n),
		})
	}
	return errors.Join(errs...)
}
