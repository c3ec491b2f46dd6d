package hud

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/plus3/lilypad/ecs"
	"github.com/plus3/lilypad/game"
)

// Inspector shows and edits the transform and components of the selected entity.
// Rotation is edited in degrees.
type Inspector struct {
	World    func() *ecs.World
	Registry func() *game.Registry
	Selected func() ecs.EntityId
}

func NewInspector(world func() *ecs.World, registry func() *game.Registry, selected func() ecs.EntityId) *Inspector {
	return &Inspector{World: world, Registry: registry, Selected: selected}
}

// Heading names an entity and, when the rules know it, the tag it plays under.
func Heading(world *ecs.World, registry *game.Registry, id ecs.EntityId) string {
	heading := fmt.Sprintf("Entity %s %q", id, world.Name(id))
	if registry == nil {
		return heading
	}
	if tag, ok := registry.TagOf(id); ok {
		heading += fmt.Sprintf(" [%s]", tag)
	}
	return heading
}

func (in *Inspector) Render() {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	world := in.World()
	id := in.Selected()
	switch {
	case world == nil || id == 0:
		imgui.Text("No entity selected")
		imgui.End()
		return
	case !world.IsAlive(id):
		imgui.Text(fmt.Sprintf("Entity %s no longer exists", id))
		imgui.End()
		return
	}

	imgui.Text(Heading(world, in.Registry(), id))
	if parent, ok := world.Parent(id); ok {
		imgui.Text(fmt.Sprintf("Parent %s %q", parent, world.Name(parent)))
	}
	imgui.Separator()

	if imgui.TreeNodeStr("Transform") {
		t := world.Transform(id)
		editVec3("Position", &t.Position)
		degrees := mgl32.Vec3{mgl32.RadToDeg(t.Rotation[0]), mgl32.RadToDeg(t.Rotation[1]), mgl32.RadToDeg(t.Rotation[2])}
		if editVec3("Rotation", &degrees) {
			t.Rotation = mgl32.Vec3{mgl32.DegToRad(degrees[0]), mgl32.DegToRad(degrees[1]), mgl32.DegToRad(degrees[2])}
		}
		editVec3("Scale", &t.Scale)
		imgui.TreePop()
	}

	registry := world.Registry()
	for _, compType := range world.ComponentTypes(id) {
		component := world.GetComponent(id, compType)
		if component == nil {
			continue
		}
		label, ok := registry.Key(compType)
		if !ok {
			label = compType.String()
		}
		if imgui.TreeNodeStr(label) {
			renderStruct(reflect.ValueOf(component).Elem(), label)
			imgui.TreePop()
		}
	}

	imgui.End()
}

func editVec3(name string, v *mgl32.Vec3) bool {
	changed := false
	imgui.Text(name)
	for i, axis := range [3]string{"x", "y", "z"} {
		imgui.SameLine()
		imgui.SetNextItemWidth(80)
		if imgui.InputFloat(fmt.Sprintf("##%s-%s", name, axis), &v[i]) {
			changed = true
		}
	}
	return changed
}

// editableField is an exported struct field the inspector can draw.
type editableField struct {
	Name    string
	Index   int
	Pointer bool
}

// editableFields lists the exported fields of a struct type in declaration order, nil
// for anything else. Results are kept per type; the inspector only runs on the UI frame.
func editableFields(t reflect.Type) []editableField {
	if fields, ok := knownFields[t]; ok {
		return fields
	}
	var fields []editableField
	if t.Kind() == reflect.Struct {
		for i := range t.NumField() {
			if f := t.Field(i); f.IsExported() {
				fields = append(fields, editableField{Name: f.Name, Index: i, Pointer: f.Type.Kind() == reflect.Pointer})
			}
		}
	}
	knownFields[t] = fields
	return fields
}

var knownFields = map[reflect.Type][]editableField{}

func renderStruct(val reflect.Value, scope string) {
	for _, field := range editableFields(val.Type()) {
		fv := val.Field(field.Index)
		if field.Pointer {
			if fv.IsNil() {
				imgui.Text(fmt.Sprintf("%s: nil", field.Name))
				continue
			}
			fv = fv.Elem()
		}
		renderField(field.Name, fv, scope+"."+field.Name)
	}
}

// renderField draws an editor for one value. val comes from a component pointer and is addressable.
func renderField(name string, val reflect.Value, id string) {
	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt("##"+id, &v) && val.CanSet() {
			val.SetInt(int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt("##"+id, &v) && v >= 0 && val.CanSet() {
			val.SetUint(uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat("##"+id, &v) && val.CanSet() {
			val.SetFloat(float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name+"##"+id, &v) && val.CanSet() {
			val.SetBool(v)
		}

	case reflect.String:
		v := val.String()
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint("##"+id, "", &v, imgui.InputTextFlagsNone, nil) && val.CanSet() {
			val.SetString(v)
		}

	case reflect.Array:
		if val.Type().Elem().Kind() == reflect.Float32 && val.Len() <= 4 {
			imgui.Text(name)
			for i := 0; i < val.Len(); i++ {
				imgui.SameLine()
				imgui.SetNextItemWidth(80)
				v := float32(val.Index(i).Float())
				if imgui.InputFloat(fmt.Sprintf("##%s-%d", id, i), &v) && val.CanSet() {
					val.Index(i).SetFloat(float64(v))
				}
			}
			return
		}
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			renderStruct(val, id)
			imgui.TreePop()
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	case reflect.Func:
		imgui.Text(name + ": func")

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}
