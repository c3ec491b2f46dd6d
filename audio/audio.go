// Package audio plays the game's named sound cues through beep.
package audio

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
)

const sampleRate = beep.SampleRate(44100)

// CueMusic is the name the background track is registered under.
const CueMusic = "music"

var format = beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2}

type cue struct {
	ctrl *beep.Ctrl
	done atomic.Bool
}

// CuePlayer mixes decoded cues. Playing a cue that is still playing does nothing.
// Until Init is called the mixer is not attached to the speaker.
type CuePlayer struct {
	mu          sync.Mutex
	sounds      map[string]*beep.Buffer
	playing     map[string]*cue
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	warned      map[string]bool
	logger      *slog.Logger
}

// NewCuePlayer creates an empty player. Volume is linear, 1 is unchanged.
func NewCuePlayer(volume float64, logger *slog.Logger) *CuePlayer {
	if logger == nil {
		logger = slog.Default()
	}
	if volume <= 0 {
		volume = 1
	}
	return &CuePlayer{
		sounds:  make(map[string]*beep.Buffer),
		playing: make(map[string]*cue),
		warned:  make(map[string]bool),
		mixer:   &beep.Mixer{},
		volume:  volume,
		logger:  logger,
	}
}

// Init opens the speaker and starts streaming the mixer.
func (p *CuePlayer) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close stops every cue.
func (p *CuePlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.lock()
	defer p.unlock()
	for name, c := range p.playing {
		c.ctrl.Streamer = nil
		delete(p.playing, name)
	}
	p.mixer.Clear()
}

func (p *CuePlayer) lock() {
	if p.initialized {
		speaker.Lock()
	}
}

func (p *CuePlayer) unlock() {
	if p.initialized {
		speaker.Unlock()
	}
}

// Mixer returns the mixer the cues are added to.
func (p *CuePlayer) Mixer() *beep.Mixer {
	return p.mixer
}

// Add registers a decoded sound under name, replacing any previous one.
func (p *CuePlayer) Add(name string, buf *beep.Buffer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sounds[name] = buf
}

// Names returns the registered cue names in order.
func (p *CuePlayer) Names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	names := make([]string, 0, len(p.sounds))
	for name := range p.sounds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadFile decodes a wav file and registers it under name.
func (p *CuePlayer) LoadFile(name, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("audio: cue %q: %w", name, err)
	}
	defer f.Close()

	streamer, fileFormat, err := wav.Decode(f)
	if err != nil {
		return fmt.Errorf("audio: cue %q: decode %s: %w", name, path, err)
	}
	defer streamer.Close()

	buf := beep.NewBuffer(format)
	if fileFormat.SampleRate != sampleRate {
		buf.Append(beep.Resample(4, fileFormat.SampleRate, sampleRate, streamer))
	} else {
		buf.Append(streamer)
	}
	p.Add(name, buf)
	return nil
}

// LoadCues loads every cue of a name to file map. Relative paths resolve against dir.
// Cues that fail to load are skipped and reported together.
func (p *CuePlayer) LoadCues(cues map[string]string, dir string) error {
	var failed []error
	for name, path := range cues {
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		if err := p.LoadFile(name, path); err != nil {
			failed = append(failed, err)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("audio: %d of %d cues failed to load: %w", len(failed), len(cues), failed[0])
	}
	return nil
}

// Play starts the named cue. With loop the cue repeats until stopped; with stopOthers
// every other cue is stopped first. Unknown names are ignored.
func (p *CuePlayer) Play(name string, loop, stopOthers bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.lock()
	defer p.unlock()

	if stopOthers {
		for other, c := range p.playing {
			if other != name {
				c.ctrl.Streamer = nil
				delete(p.playing, other)
			}
		}
	}

	if c, ok := p.playing[name]; ok && !c.done.Load() {
		return
	}

	buf, ok := p.sounds[name]
	if !ok {
		if !p.warned[name] {
			p.warned[name] = true
			p.logger.Warn("audio: cue not loaded", "cue", name)
		}
		return
	}

	var s beep.Streamer = buf.Streamer(0, buf.Len())
	if loop {
		s = beep.Loop(-1, buf.Streamer(0, buf.Len()))
	}

	c := &cue{}
	c.ctrl = &beep.Ctrl{Streamer: beep.Seq(p.withVolume(s), beep.Callback(func() {
		c.done.Store(true)
	}))}
	p.playing[name] = c
	p.mixer.Add(c.ctrl)
}

// Stop stops the named cue.
func (p *CuePlayer) Stop(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.lock()
	defer p.unlock()
	if c, ok := p.playing[name]; ok {
		c.ctrl.Streamer = nil
		delete(p.playing, name)
	}
}

// Playing reports whether the named cue is still playing.
func (p *CuePlayer) Playing(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	c, ok := p.playing[name]
	return ok && !c.done.Load()
}

func (p *CuePlayer) withVolume(s beep.Streamer) beep.Streamer {
	if p.volume == 1 {
		return s
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(p.volume)}
}
