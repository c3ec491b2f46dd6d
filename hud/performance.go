package hud

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/lilypad/ecs"
)

// FrameHistory is a ring of frame times in milliseconds.
type FrameHistory struct {
	samples []float32
	next    int
	filled  int
}

func NewFrameHistory(size int) *FrameHistory {
	return &FrameHistory{samples: make([]float32, size)}
}

// Add records a frame that took dt seconds.
func (h *FrameHistory) Add(dt float64) {
	h.samples[h.next] = float32(dt * 1000)
	h.next = (h.next + 1) % len(h.samples)
	h.filled = min(h.filled+1, len(h.samples))
}

// Average returns the mean frame time in milliseconds over the recorded frames.
func (h *FrameHistory) Average() float32 {
	if h.filled == 0 {
		return 0
	}
	var total float32
	for _, s := range h.samples[:h.filled] {
		total += s
	}
	return total / float32(h.filled)
}

// PerformanceStats shows frame times, the per-system timings of a scheduler and world counts.
type PerformanceStats struct {
	Scheduler func() *ecs.Scheduler
	History   *FrameHistory
}

func NewPerformanceStats(scheduler func() *ecs.Scheduler, historyFrames int) *PerformanceStats {
	return &PerformanceStats{Scheduler: scheduler, History: NewFrameHistory(historyFrames)}
}

// Record adds a frame time; call it once per frame even while the panel is hidden.
func (ps *PerformanceStats) Record(dt float64) {
	ps.History.Add(dt)
}

func (ps *PerformanceStats) Render() {
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	avg := ps.History.Average()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000/avg))
	}
	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.History.samples[0], int32(len(ps.History.samples)))

	scheduler := ps.Scheduler()
	if scheduler == nil {
		imgui.End()
		return
	}

	stats := scheduler.World().CollectStats()
	imgui.Text(fmt.Sprintf("Entities: %d", stats.TotalEntityCount))
	imgui.Text(fmt.Sprintf("Singletons: %d", stats.SingletonCount))

	if imgui.TreeNodeStr("Systems") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemStatsTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Last")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, system := range scheduler.GetStats().Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(system.Name)
				imgui.TableNextColumn()
				imgui.Text(system.LastDuration.String())
				imgui.TableNextColumn()
				imgui.Text(system.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(system.MaxDuration.String())
			}
			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}
