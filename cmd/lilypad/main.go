// Command lilypad plays a scene in a window, with the HUD drawn by Dear ImGui.
package main

import (
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/lilypad/app"
	"github.com/plus3/lilypad/game"
	"github.com/plus3/lilypad/hud"
	"github.com/plus3/lilypad/hud/ebitenhud"
	"github.com/plus3/lilypad/input/ebiteninput"
	"github.com/plus3/lilypad/render/ebitenrender"
	"github.com/plus3/lilypad/scene"
)

const (
	ScreenWidth  = 1280
	ScreenHeight = 800
)

func main() {
	scenePath := flag.String("scene", scene.DefaultLevel, "Scene file, or the name of an embedded level.")
	watch := flag.Bool("watch", false, "Reload the scene when its file changes.")
	mute := flag.Bool("mute", false, "Disable audio.")
	debug := flag.Bool("debug", false, "Show the entity, component, tag and performance panels.")
	tps := flag.Int("fps", 60, "Simulation ticks per second.")
	verbose := flag.Bool("v", false, "Log debug messages.")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	doc, err := scene.Load(*scenePath)
	if err != nil {
		log.Fatalf("Failed to load scene: %v", err)
	}

	var cues game.CuePlayer = game.NopCues{}
	if !*mute {
		player, err := app.OpenAudio(doc, logger)
		if err != nil {
			log.Printf("Audio disabled: %v", err)
		} else {
			defer player.Close()
			cues = player
		}
	}

	overlay := hud.NewOverlay()
	backend := ebitenhud.New("lilypad", ScreenWidth, ScreenHeight, overlay)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(*tps)

	poller := ebiteninput.NewPoller()
	poller.Blocked = overlay.WantsPointer

	view := ebitenrender.NewTopDown(doc.Level, doc.Renderer.ClearColor, doc.Renderer.CellSize)
	shell := app.NewShell(doc, poller, poller, cues)
	shell.Logger = logger
	play := app.Install(shell, view, "lilypad")

	g := &Game{
		Shell:   shell,
		View:    view,
		Backend: backend,
		dt:      1 / float64(*tps),
	}

	status := hud.NewStatusBar(shell, len(doc.Level.Checkpoints))
	overlay.Add("Status", func() {
		if current := shell.Current(); current == app.StatePlay || current == app.StatePause {
			status.Checkpoints = len(shell.Scene().Level.Checkpoints)
			status.Render()
		}
	})
	if *debug {
		g.Debug = hud.AddDebugPanels(overlay, play)
	}

	if *watch {
		if doc.Path == "" {
			log.Printf("Not watching %s: embedded levels cannot change", *scenePath)
		} else {
			watcher, err := scene.NewWatcher(doc.Path)
			if err != nil {
				log.Fatalf("Failed to watch scene: %v", err)
			}
			defer watcher.Close()
			g.Watcher = watcher
		}
	}

	if err := shell.Start(app.StateMenu); err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	defer shell.Stop()

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatalf("Game stopped: %v", err)
	}
}
