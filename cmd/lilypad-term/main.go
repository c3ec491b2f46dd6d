// Command lilypad-term plays a scene in the terminal. Arrow keys hop, Escape pauses
// and Ctrl+C quits.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/lilypad/app"
	"github.com/plus3/lilypad/game"
	"github.com/plus3/lilypad/input"
	"github.com/plus3/lilypad/render"
	"github.com/plus3/lilypad/scene"
)

func main() {
	scenePath := flag.String("scene", scene.DefaultLevel, "Scene file, or the name of an embedded level.")
	watch := flag.Bool("watch", false, "Reload the scene when its file changes.")
	withAudio := flag.Bool("audio", false, "Play sound cues.")
	fps := flag.Int("fps", 30, "Frames per second.")
	logPath := flag.String("log", "", "Write logs to this file; the terminal is busy drawing.")
	flag.Parse()

	logger := slog.New(slog.DiscardHandler)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("Failed to open log: %v", err)
		}
		defer f.Close()
		logger = slog.New(slog.NewTextHandler(f, nil))
		log.SetOutput(f)
	}

	doc, err := scene.Load(*scenePath)
	if err != nil {
		log.Fatalf("Failed to load scene: %v", err)
	}

	var cues game.CuePlayer = game.NopCues{}
	if *withAudio {
		player, err := app.OpenAudio(doc, logger)
		if err != nil {
			logger.Warn("audio disabled", "err", err)
		} else {
			defer player.Close()
			cues = player
		}
	}

	var watcher *scene.Watcher
	if *watch && doc.Path != "" {
		watcher, err = scene.NewWatcher(doc.Path)
		if err != nil {
			log.Fatalf("Failed to watch scene: %v", err)
		}
		defer watcher.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Failed to open terminal: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("Failed to init terminal: %v", err)
	}
	defer screen.Fini()

	source := input.NewTerminal()
	view := render.NewTerminal(screen, doc.Level)
	shell := app.NewShell(doc, source, input.NopPointer{}, cues)
	shell.Logger = logger
	app.Install(shell, view, "lilypad")
	if err := shell.Start(app.StateMenu); err != nil {
		screen.Fini()
		log.Fatalf("Failed to start: %v", err)
	}
	defer shell.Stop()

	if err := run(context.Background(), screen, source, shell, watcher, *fps); err != nil && !errors.Is(err, app.ErrQuit) {
		screen.Fini()
		log.Fatalf("Game stopped: %v", err)
	}
}

// run drives the shell at a fixed rate until it quits. tcell events are read on their
// own goroutine and fed to the input source between frames.
func run(ctx context.Context, screen tcell.Screen, source *input.Terminal, shell *app.Shell, watcher *scene.Watcher, fps int) error {
	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	var changes <-chan string
	if watcher != nil {
		changes = watcher.Events
	}

	interval := time.Second / time.Duration(max(fps, 1))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return app.ErrQuit
			}
			if _, resized := ev.(*tcell.EventResize); resized {
				screen.Sync()
			}
			source.Feed(ev)
			if source.Quit() {
				return app.ErrQuit
			}
		case path, ok := <-changes:
			if !ok {
				changes = nil
				continue
			}
			doc, err := scene.Load(path)
			if err != nil {
				shell.Logger.Warn("keeping the running scene", "err", err)
				continue
			}
			if err := shell.SetScene(doc); err != nil {
				return err
			}
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if err := shell.Frame(dt); err != nil {
				return err
			}
		}
	}
}
