package app

import (
	"log/slog"
	"maps"
	"path/filepath"

	"github.com/plus3/lilypad/audio"
	"github.com/plus3/lilypad/scene"
)

// OpenAudio starts the speaker and loads the scene's cues and music. Relative sound
// paths resolve against the scene file. Cues that fail to load are logged and stay silent.
func OpenAudio(doc *scene.Document, logger *slog.Logger) (*audio.CuePlayer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	player := audio.NewCuePlayer(doc.Audio.Volume, logger)
	if err := player.Init(); err != nil {
		return nil, err
	}

	cues := maps.Clone(doc.Audio.Cues)
	if cues == nil {
		cues = make(map[string]string)
	}
	if doc.Audio.Music != "" {
		cues[audio.CueMusic] = doc.Audio.Music
	}
	dir := "."
	if doc.Path != "" {
		dir = filepath.Dir(doc.Path)
	}
	if err := player.LoadCues(cues, dir); err != nil {
		logger.Warn("audio: some cues are missing", "err", err)
	}
	return player, nil
}
