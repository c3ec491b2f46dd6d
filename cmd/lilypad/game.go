package main

import (
	"errors"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/lilypad/app"
	"github.com/plus3/lilypad/hud"
	"github.com/plus3/lilypad/hud/ebitenhud"
	"github.com/plus3/lilypad/render/ebitenrender"
	"github.com/plus3/lilypad/scene"
)

// Game implements ebiten.Game: the shell advances in Update, the level is drawn
// to an offscreen canvas scaled into the window and the HUD goes on top.
type Game struct {
	Shell   *app.Shell
	View    *ebitenrender.TopDown
	Backend *ebitenhud.Backend
	Debug   *hud.Debug
	Watcher *scene.Watcher

	dt     float64
	canvas *ebiten.Image
}

func (g *Game) Update() error {
	g.reload()

	if g.Debug != nil {
		g.Debug.Performance.Record(g.dt)
	}
	g.Backend.Update(g.dt)

	if err := g.Shell.Frame(g.dt); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return ebiten.Termination
		}
		return err
	}
	return nil
}

// reload swaps in the scene file once it changed on disk. A scene that fails to load
// is reported and the running one is kept.
func (g *Game) reload() {
	if g.Watcher == nil {
		return
	}
	select {
	case path, ok := <-g.Watcher.Events:
		if !ok {
			g.Watcher = nil
			return
		}
		doc, err := scene.Load(path)
		if err != nil {
			log.Printf("Keeping the running scene: %v", err)
			return
		}
		if err := g.Shell.SetScene(doc); err != nil {
			log.Printf("Failed to apply %s: %v", path, err)
		}
	case err, ok := <-g.Watcher.Errors:
		if ok {
			log.Printf("Scene watcher: %v", err)
		}
	default:
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	w, h := g.View.Size()
	if g.canvas == nil || g.canvas.Bounds().Dx() != w || g.canvas.Bounds().Dy() != h {
		if g.canvas != nil {
			g.canvas.Deallocate()
		}
		g.canvas = ebiten.NewImage(w, h)
	}
	g.View.Present(g.canvas)

	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	scale := math.Min(float64(sw)/float64(w), float64(sh)/float64(h))
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate((float64(sw)-float64(w)*scale)/2, (float64(sh)-float64(h)*scale)/2)
	screen.DrawImage(g.canvas, op)

	g.Backend.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.Backend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
