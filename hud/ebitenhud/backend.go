// Package ebitenhud runs a hud.Overlay on top of an Ebiten game.
package ebitenhud

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/lilypad/hud"
)

// Backend drives the ImGui frame of an overlay from an ebiten.Game.
type Backend struct {
	*ebitenbackend.EbitenBackend
	Overlay *hud.Overlay
}

// New creates the ImGui window. It must be called before ebiten.RunGame.
func New(title string, width, height int, overlay *hud.Overlay) *Backend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return &Backend{EbitenBackend: backend, Overlay: overlay}
}

// Update builds the overlay's ImGui frame; call it from the game's Update.
func (b *Backend) Update(dt float64) {
	b.BeginFrame()
	b.Overlay.Frame(dt)
	b.EndFrame()
}

// Draw renders the last built frame over screen.
func (b *Backend) Draw(screen *ebiten.Image) {
	b.EbitenBackend.Draw(screen)
}

// Layout keeps the ImGui display size in step with the window.
func (b *Backend) Layout(width, height int) {
	b.EbitenBackend.Layout(width, height)
}
