package audio_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/lilypad/audio"
	"github.com/plus3/lilypad/game"
)

var testFormat = beep.Format{SampleRate: 44100, NumChannels: 2, Precision: 2}

func silence(n int) *beep.Buffer {
	buf := beep.NewBuffer(testFormat)
	buf.Append(beep.Silence(n))
	return buf
}

// drain streams the mixer as the speaker would.
func drain(p *audio.CuePlayer, n int) {
	samples := make([][2]float64, n)
	p.Mixer().Stream(samples)
}

func TestPlayIsIdempotent(t *testing.T) {
	p := audio.NewCuePlayer(1, nil)
	p.Add(game.CueHit, silence(100))

	p.Play(game.CueHit, false, false)
	p.Play(game.CueHit, false, false)

	assert.Equal(t, 1, p.Mixer().Len())
	assert.True(t, p.Playing(game.CueHit))

	drain(p, 512)
	assert.False(t, p.Playing(game.CueHit))
	assert.Zero(t, p.Mixer().Len())

	p.Play(game.CueHit, false, false)
	assert.Equal(t, 1, p.Mixer().Len(), "a finished cue can be played again")
}

func TestLoopUntilStopped(t *testing.T) {
	p := audio.NewCuePlayer(0.5, nil)
	p.Add(audio.CueMusic, silence(64))
	p.Add(game.CueWin, silence(64))

	p.Play(audio.CueMusic, true, false)
	drain(p, 2048)
	assert.True(t, p.Playing(audio.CueMusic))

	p.Play(game.CueWin, false, true)
	assert.False(t, p.Playing(audio.CueMusic), "stopOthers stops the music")
	assert.True(t, p.Playing(game.CueWin))

	drain(p, 512)
	assert.Zero(t, p.Mixer().Len())
}

func TestStopAndClose(t *testing.T) {
	p := audio.NewCuePlayer(1, nil)
	p.Add(game.CueStar, silence(1000))
	p.Add(game.CueSplash, silence(1000))

	p.Play(game.CueStar, false, false)
	p.Play(game.CueSplash, false, false)
	assert.Equal(t, 2, p.Mixer().Len())

	p.Stop(game.CueStar)
	assert.False(t, p.Playing(game.CueStar))
	assert.True(t, p.Playing(game.CueSplash))

	p.Close()
	assert.False(t, p.Playing(game.CueSplash))
	assert.Zero(t, p.Mixer().Len())
}

func TestUnknownCue(t *testing.T) {
	p := audio.NewCuePlayer(1, nil)

	p.Play("nope", false, false)
	p.Play("nope", true, true)

	assert.Zero(t, p.Mixer().Len())
	assert.False(t, p.Playing("nope"))
}

func writeWav(t *testing.T, path string, rate beep.SampleRate, n int) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, wav.Encode(f, beep.Silence(n), beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}))
}

func TestLoadCues(t *testing.T) {
	dir := t.TempDir()
	writeWav(t, filepath.Join(dir, "hit.wav"), 44100, 441)
	writeWav(t, filepath.Join(dir, "star.wav"), 22050, 220)

	p := audio.NewCuePlayer(1, nil)
	err := p.LoadCues(map[string]string{
		game.CueHit:  "hit.wav",
		game.CueStar: filepath.Join(dir, "star.wav"),
		game.CueWin:  "missing.wav",
	}, dir)

	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, []string{game.CueHit, game.CueStar}, p.Names())

	p.Play(game.CueStar, false, false)
	assert.True(t, p.Playing(game.CueStar))
}
