package game

import (
	"errors"
	"strconv"
)

var (
	// ErrMissingEntity is reported when a scene lacks an entity the game rules reference.
	ErrMissingEntity = errors.New("missing scene entity")
	// ErrInvalidLevel is reported for level configurations the systems cannot run.
	ErrInvalidLevel = errors.New("invalid level configuration")
)

// ConfigError is a scene authoring problem. The simulation stops advancing game rules
// for the frame but the caller may keep running and reload a fixed scene.
type ConfigError struct {
	Tag    string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	return "game: " + strconv.Quote(e.Tag) + ": " + e.Reason
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func missingEntity(tag Tag) *ConfigError {
	return &ConfigError{
		Tag:    tag.String(),
		Reason: "scene has a frog but no entity named " + strconv.Quote(tag.String()),
		Err:    ErrMissingEntity,
	}
}
