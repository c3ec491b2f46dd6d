package hud

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/lilypad/ecs"
	"github.com/plus3/lilypad/game"
)

// TagGroup is the content of one registry tag.
type TagGroup struct {
	Tag     game.Tag
	Indexed int
	Live    []ecs.EntityId
}

// CollectTags summarises a tag registry. Indexed counts every entity seen at the last
// rebuild; Live only those still alive.
func CollectTags(registry *game.Registry) []TagGroup {
	var groups []TagGroup
	for _, tag := range game.Tags() {
		group := TagGroup{Tag: tag, Indexed: registry.Count(tag)}
		for id := range registry.Group(tag) {
			group.Live = append(group.Live, id)
		}
		groups = append(groups, group)
	}
	return groups
}

// TagViewer lists the special entities the game rules work with.
type TagViewer struct {
	Registry func() *game.Registry
	World    func() *ecs.World
}

func NewTagViewer(registry func() *game.Registry, world func() *ecs.World) *TagViewer {
	return &TagViewer{Registry: registry, World: world}
}

func (tv *TagViewer) Render() {
	if !imgui.BeginV("Tags", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	registry, world := tv.Registry(), tv.World()
	if registry == nil || world == nil {
		imgui.Text("No level loaded")
		imgui.End()
		return
	}

	for _, group := range CollectTags(registry) {
		label := fmt.Sprintf("%s (%d/%d)##%d", group.Tag, len(group.Live), group.Indexed, group.Tag)
		if !imgui.TreeNodeStr(label) {
			continue
		}
		for _, id := range group.Live {
			p := world.Transform(id).Position
			imgui.BulletText(fmt.Sprintf("%s at (%.2f, %.2f, %.2f)", id, p.X(), p.Y(), p.Z()))
		}
		imgui.TreePop()
	}
	imgui.End()
}
