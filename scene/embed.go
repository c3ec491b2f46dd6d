package scene

import (
	"embed"
	"path"
	"path/filepath"
	"strings"
)

//go:embed levels/*.yaml
var LevelsFS embed.FS

// DefaultLevel is the embedded level used when no scene is given.
const DefaultLevel = "level1"

// Default parses the embedded default level.
func Default() (*Document, error) {
	return Load(DefaultLevel)
}

// levelPath maps "level1", "level1.yaml" or "levels/level1.yaml" to the embedded file.
func levelPath(name string) string {
	s := filepath.ToSlash(name)
	s = strings.TrimPrefix(s, "levels/")
	if path.Ext(s) == "" {
		s += ".yaml"
	}
	return path.Join("levels", s)
}
