package hud

import (
	"github.com/plus3/lilypad/ecs"
	"github.com/plus3/lilypad/game"
)

// Inspectable is the running level as the debug panels see it. Every accessor may
// return nil while no level is loaded.
type Inspectable interface {
	World() *ecs.World
	Scheduler() *ecs.Scheduler
	Control() *game.ControlSystem
}

// Debug holds the debug panels added to an overlay.
type Debug struct {
	Browser     *EntityBrowser
	Inspector   *Inspector
	Components  *ComponentViewer
	Tags        *TagViewer
	Performance *PerformanceStats
}

// AddDebugPanels adds the entity browser, inspector, component, tag and performance panels.
func AddDebugPanels(overlay *Overlay, level Inspectable) *Debug {
	world := level.World
	scheduler := level.Scheduler
	registry := func() *game.Registry {
		if control := level.Control(); control != nil {
			return control.Registry()
		}
		return nil
	}

	d := &Debug{
		Browser:     NewEntityBrowser(world, 100),
		Components:  NewComponentViewer(world),
		Tags:        NewTagViewer(registry, world),
		Performance: NewPerformanceStats(scheduler, 120),
	}
	d.Inspector = NewInspector(world, registry, d.Browser.Selected)

	overlay.Add("Entity Browser", d.Browser.Render)
	overlay.Add("Component Inspector", d.Inspector.Render)
	overlay.Add("Component Kinds", d.Components.Render)
	overlay.Add("Tags", d.Tags.Render)
	overlay.Add("Performance Stats", d.Performance.Render)
	return d
}
