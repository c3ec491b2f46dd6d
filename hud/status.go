package hud

import (
	"fmt"
	"math"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/lilypad/render"
)

// Controls is the part of the shell the status bar reads and drives.
type Controls interface {
	Status() render.Status
	Pause()
}

// StatusField is one label and value pair of the status bar.
type StatusField struct {
	Label string
	Value string
	X     float32
}

// StatusFields formats the session for the status bar. Checkpoints are shown out of total.
func StatusFields(status render.Status, total int) []StatusField {
	return []StatusField{
		{Label: "Your Health", Value: fmt.Sprint(status.Lives), X: 20},
		{Label: "Checkpoint", Value: fmt.Sprintf("%d/%d", status.Checkpoints, total), X: 500},
		{Label: "Timer", Value: fmt.Sprint(int(math.Ceil(math.Max(status.TimeLeft, 0)))), X: 900},
	}
}

var statusGreen = imgui.NewVec4(0, 1, 0, 1)

// StatusBar draws lives, checkpoints, the countdown and a pause button along the top edge.
type StatusBar struct {
	Controls    Controls
	Checkpoints int
	FontScale   float32
}

func NewStatusBar(controls Controls, checkpoints int) *StatusBar {
	return &StatusBar{Controls: controls, Checkpoints: checkpoints, FontScale: 2}
}

func (b *StatusBar) Render() {
	const flags = imgui.WindowFlagsNoDecoration | imgui.WindowFlagsNoBackground

	imgui.PushStyleColorVec4(imgui.ColWindowBg, imgui.NewVec4(0, 0, 0, 0))
	for _, field := range StatusFields(b.Controls.Status(), b.Checkpoints) {
		imgui.SetNextWindowPosV(imgui.NewVec2(field.X, 20), imgui.CondAlways, imgui.NewVec2(0, 0))
		imgui.SetNextWindowSizeV(imgui.NewVec2(300, 90), imgui.CondAlways)
		if imgui.BeginV("##status-"+field.Label, nil, flags) {
			imgui.SetWindowFontScale(b.FontScale)
			imgui.TextColored(statusGreen, field.Label)
			imgui.TextColored(statusGreen, field.Value)
		}
		imgui.End()
	}
	imgui.PopStyleColor()

	imgui.SetNextWindowPosV(imgui.NewVec2(1100, 20), imgui.CondAlways, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(120, 100), imgui.CondAlways)
	if imgui.BeginV("##status-pause", nil, flags) {
		imgui.SetWindowFontScale(b.FontScale)
		if imgui.Button("||") {
			b.Controls.Pause()
		}
	}
	imgui.End()
}
