package game

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Checkpoint is a fixed respawn location on the ground plane.
type Checkpoint struct {
	X float32 `yaml:"x"`
	Z float32 `yaml:"z"`
}

// CarHitbox is the box around a car, measured along its facing.
type CarHitbox struct {
	Front     float32 `yaml:"front"`
	Back      float32 `yaml:"back"`
	HalfDepth float32 `yaml:"halfDepth"`
}

// Rules switches optional gameplay rules.
type Rules struct {
	// WaterDrowns makes landing in water count as a hazard hit instead of a splash only.
	WaterDrowns bool `yaml:"waterDrowns"`
}

// Win behaviours once the win animation finishes.
const (
	OnWinReload = "reload"
	OnWinShell  = "shell"
)

// LevelConfig holds the level geometry and tuning that the systems read every frame.
type LevelConfig struct {
	// WrapBound is the |x| at which lane entities wrap to the opposite side.
	WrapBound float32 `yaml:"wrapBound"`
	// LaneHalfWidth bounds the frog's x position.
	LaneHalfWidth float32 `yaml:"laneHalfWidth"`
	// StartDepth and EndDepth bound the frog's z position; EndDepth is the far side.
	StartDepth float32 `yaml:"startDepth"`
	EndDepth   float32 `yaml:"endDepth"`

	Checkpoints   []Checkpoint `yaml:"checkpoints"`
	CarHitbox     CarHitbox    `yaml:"carHitbox"`
	GoalTolerance float32      `yaml:"goalTolerance"`

	FrogBaseHeight float32 `yaml:"frogBaseHeight"`
	JumpAmplitude  float32 `yaml:"jumpAmplitude"`
	JumpFrequency  float32 `yaml:"jumpFrequency"`

	WinRiseSpeed float32 `yaml:"winRiseSpeed"`
	WinHeight    float32 `yaml:"winHeight"`
	OnWin        string  `yaml:"onWin"`

	SkullFallSpeed float32    `yaml:"skullFallSpeed"`
	SkullFloor     float32    `yaml:"skullFloor"`
	SkullOffset    mgl32.Vec3 `yaml:"skullOffset"`

	// EffectDuration is the wall clock time, in seconds, a renderer effect stays on.
	EffectDuration float64 `yaml:"effectDuration"`

	Rules Rules `yaml:"rules"`
}

// DefaultLevelConfig returns the layout of the stock level.
func DefaultLevelConfig() LevelConfig {
	return LevelConfig{
		WrapBound:     11,
		LaneHalfWidth: 10,
		StartDepth:    11,
		EndDepth:      -12,
		Checkpoints: []Checkpoint{
			{X: 0, Z: 10},
			{X: -3, Z: 1},
			{X: 3, Z: -9},
		},
		CarHitbox:      CarHitbox{Front: 2, Back: 1, HalfDepth: 0.8},
		GoalTolerance:  1,
		FrogBaseHeight: 0,
		JumpAmplitude:  0.05,
		JumpFrequency:  10,
		WinRiseSpeed:   5,
		WinHeight:      10,
		OnWin:          OnWinReload,
		SkullFallSpeed: 6,
		SkullFloor:     0,
		SkullOffset:    mgl32.Vec3{0, 3, 0},
		EffectDuration: 0.25,
	}
}

// Checkpoint returns the respawn location for a checkpoint count, clamped to the last one.
func (c LevelConfig) Checkpoint(count int) Checkpoint {
	if len(c.Checkpoints) == 0 {
		return Checkpoint{}
	}
	if count < 0 {
		count = 0
	}
	if count >= len(c.Checkpoints) {
		count = len(c.Checkpoints) - 1
	}
	return c.Checkpoints[count]
}

// InLane reports whether a point on the ground plane is inside the playable area.
func (c LevelConfig) InLane(x, z float32) bool {
	return x >= -c.LaneHalfWidth && x <= c.LaneHalfWidth &&
		z >= c.EndDepth && z <= c.StartDepth
}

// Validate checks the configuration for values the systems cannot work with.
func (c LevelConfig) Validate() error {
	var reason string
	switch {
	case c.WrapBound <= 0:
		reason = "wrapBound must be positive"
	case c.LaneHalfWidth <= 0:
		reason = "laneHalfWidth must be positive"
	case c.EndDepth >= c.StartDepth:
		reason = "endDepth must be less than startDepth"
	case len(c.Checkpoints) == 0:
		reason = "at least one checkpoint is required"
	case c.GoalTolerance <= 0:
		reason = "goalTolerance must be positive"
	case c.WinRiseSpeed <= 0:
		reason = "winRiseSpeed must be positive"
	case c.SkullFallSpeed <= 0:
		reason = "skullFallSpeed must be positive"
	case c.EffectDuration < 0:
		reason = "effectDuration must not be negative"
	case c.OnWin != OnWinReload && c.OnWin != OnWinShell:
		reason = fmt.Sprintf("onWin must be %q or %q, got %q", OnWinReload, OnWinShell, c.OnWin)
	default:
		return nil
	}
	return &ConfigError{Tag: "level", Reason: reason, Err: ErrInvalidLevel}
}
