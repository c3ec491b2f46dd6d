package hud

import (
	"fmt"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/lilypad/ecs"
)

// SortComponentStats orders component rows: 0 key, 1 type name, 2 entity count.
func SortComponentStats(rows []ecs.ComponentStats, column int, ascending bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		var less bool
		switch column {
		case 1:
			less = a.TypeName < b.TypeName
		case 2:
			less = a.EntityCount < b.EntityCount
		default:
			less = a.Key < b.Key
		}
		if !ascending {
			return !less
		}
		return less
	})
}

// ComponentViewer shows how many entities carry each component kind.
type ComponentViewer struct {
	World func() *ecs.World

	sortColumn    int
	sortAscending bool
}

func NewComponentViewer(world func() *ecs.World) *ComponentViewer {
	return &ComponentViewer{World: world, sortColumn: 2}
}

func (cv *ComponentViewer) Render() {
	if !imgui.BeginV("Component Kinds", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	world := cv.World()
	if world == nil {
		imgui.Text("No level loaded")
		imgui.End()
		return
	}

	stats := world.CollectStats()
	rows := stats.ComponentBreakdown
	SortComponentStats(rows, cv.sortColumn, cv.sortAscending)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable
	if imgui.BeginTableV("ComponentTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Key")
		imgui.TableSetupColumn("Type")
		imgui.TableSetupColumn("Entities")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			cv.sortColumn = int(spec.ColumnIndex())
			cv.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			SortComponentStats(rows, cv.sortColumn, cv.sortAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		for _, row := range rows {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(row.Key)
			imgui.TableNextColumn()
			imgui.Text(row.TypeName)
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.EntityCount))
		}
		imgui.EndTable()
	}

	imgui.Text(fmt.Sprintf("Entities: %d, pending removals: %d", stats.TotalEntityCount, stats.PendingRemovals))
	imgui.End()
}
