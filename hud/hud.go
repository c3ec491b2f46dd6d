// Package hud draws the in-game overlay and the debug panels with Dear ImGui.
//
// Panels are entities of a small UI world of their own: every Panel component is
// rendered once per frame by System, which also publishes whether ImGui wants the
// pointer so the game can leave it alone.
package hud

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/lilypad/ecs"
)

// Panel holds an ImGui render function.
type Panel struct {
	Name   string
	Render func()
}

// InputState is a singleton telling whether ImGui is consuming pointer or keyboard input.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// System queues every panel's render function and refreshes InputState.
type System struct {
	Panels     ecs.Query[struct{ *Panel }]
	InputState ecs.Singleton[InputState]
}

func (s *System) Execute(frame *ecs.UpdateFrame) {
	state := s.InputState.Get()
	io := imgui.CurrentIO()
	state.WantCaptureMouse = io.WantCaptureMouse()
	state.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for item := range s.Panels.Values() {
		if item.Panel.Render != nil {
			frame.Commands.Defer(item.Panel.Render)
		}
	}
}

// Overlay owns the UI world and runs its panels.
type Overlay struct {
	world     *ecs.World
	scheduler *ecs.Scheduler
	input     *ecs.Singleton[InputState]
}

// NewOverlay creates an empty overlay. Panels are added with Add.
func NewOverlay() *Overlay {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Panel](registry, "Panel")

	world := ecs.NewWorld(registry)
	o := &Overlay{
		world: world,
		input: ecs.NewSingleton[InputState](world),
	}
	o.scheduler = ecs.NewScheduler(world)
	o.scheduler.Register(&System{})
	return o
}

// Add registers a panel and returns its entity so it can be removed later.
func (o *Overlay) Add(name string, render func()) ecs.EntityId {
	return o.world.Spawn(Panel{Name: name, Render: render})
}

// Remove drops a panel.
func (o *Overlay) Remove(id ecs.EntityId) {
	o.world.Delete(id)
}

// Panels lists the panel names in the order they are drawn.
func (o *Overlay) Panels() []string {
	var names []string
	for p := range ecs.NewView[struct{ *Panel }](o.world).Values() {
		names = append(names, p.Panel.Name)
	}
	return names
}

// Frame renders every panel. It must run between the backend's BeginFrame and EndFrame.
func (o *Overlay) Frame(dt float64) {
	o.scheduler.Once(dt)
}

// WantsPointer reports whether the last frame's panels were using the pointer.
func (o *Overlay) WantsPointer() bool {
	return o.input.Get().WantCaptureMouse
}
