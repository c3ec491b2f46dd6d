package hud

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/lilypad/ecs"
)

// EntityInfo is one row of the entity browser.
type EntityInfo struct {
	ID         ecs.EntityId
	Name       string
	Parent     ecs.EntityId
	Components []string
}

// CollectEntities lists the world's entities in slot order with their component keys.
func CollectEntities(world *ecs.World) []EntityInfo {
	registry := world.Registry()
	rows := make([]EntityInfo, 0, world.Len())
	for id := range world.Entities() {
		info := EntityInfo{ID: id, Name: world.Name(id)}
		info.Parent, _ = world.Parent(id)
		for _, t := range world.ComponentTypes(id) {
			key, ok := registry.Key(t)
			if !ok {
				key = t.String()
			}
			info.Components = append(info.Components, key)
		}
		rows = append(rows, info)
	}
	return rows
}

// FilterEntities keeps the rows whose id, name or component keys contain text, ignoring case.
func FilterEntities(rows []EntityInfo, text string) []EntityInfo {
	if text == "" {
		return rows
	}
	needle := strings.ToLower(text)
	filtered := make([]EntityInfo, 0, len(rows))
	for _, row := range rows {
		if strings.Contains(row.ID.String(), needle) ||
			strings.Contains(strings.ToLower(row.Name), needle) ||
			strings.Contains(strings.ToLower(strings.Join(row.Components, " ")), needle) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// SortEntities orders rows by column: 0 id, 1 name, 2 components, 3 component count.
func SortEntities(rows []EntityInfo, column int, ascending bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		var less bool
		switch column {
		case 1:
			less = a.Name < b.Name
		case 2:
			less = strings.Join(a.Components, ",") < strings.Join(b.Components, ",")
		case 3:
			less = len(a.Components) < len(b.Components)
		default:
			less = a.ID.Index() < b.ID.Index()
		}
		if !ascending {
			return !less
		}
		return less
	})
}

// EntityBrowser lists the entities of a world and lets one be selected.
type EntityBrowser struct {
	World func() *ecs.World

	selected      ecs.EntityId
	filterText    string
	sortColumn    int
	sortAscending bool
	perPage       int
	page          int

	rows    []EntityInfo
	version uint64
	built   *ecs.World
}

func NewEntityBrowser(world func() *ecs.World, perPage int) *EntityBrowser {
	return &EntityBrowser{World: world, perPage: perPage, sortAscending: true}
}

// Selected returns the chosen entity, zero when none is.
func (eb *EntityBrowser) Selected() ecs.EntityId {
	return eb.selected
}

func (eb *EntityBrowser) refresh(world *ecs.World) {
	if eb.built == world && eb.version == world.Version() && eb.rows != nil {
		return
	}
	eb.rows = CollectEntities(world)
	SortEntities(eb.rows, eb.sortColumn, eb.sortAscending)
	eb.built = world
	eb.version = world.Version()
}

func (eb *EntityBrowser) Render() {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	world := eb.World()
	if world == nil {
		imgui.Text("No level loaded")
		imgui.End()
		return
	}
	eb.refresh(world)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
	}

	rows := FilterEntities(eb.rows, eb.filterText)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Name")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.sortColumn = int(spec.ColumnIndex())
			eb.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			SortEntities(eb.rows, eb.sortColumn, eb.sortAscending)
			rows = FilterEntities(eb.rows, eb.filterText)
			sortSpecs.SetSpecsDirty(false)
		}

		start := min(eb.page*eb.perPage, len(rows))
		end := min(start+eb.perPage, len(rows))
		for _, row := range rows[start:end] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			if imgui.SelectableBoolV(row.ID.String(), eb.selected == row.ID, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selected = row.ID
			}
			imgui.TableNextColumn()
			imgui.Text(row.Name)
			imgui.TableNextColumn()
			imgui.Text(strings.Join(row.Components, ", "))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", len(row.Components)))
		}
		imgui.EndTable()
	}

	if len(rows) > eb.perPage {
		pages := (len(rows) + eb.perPage - 1) / eb.perPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.page+1, pages, len(rows)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.page > 0 {
			eb.page--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.page < pages-1 {
			eb.page++
		}
	} else {
		eb.page = 0
		imgui.Text(fmt.Sprintf("Total: %d entities", len(rows)))
	}

	imgui.End()
}
