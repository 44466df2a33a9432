package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/turfwars/ecs"
)

func NewComponentInspectorComponent() ComponentInspectorComponent {
	return ComponentInspectorComponent{}
}

func (ci *ComponentInspectorComponent) Render(scene *ecs.Scene, selected ecs.Entity, hasSelection bool) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ci.selectedEntity, ci.hasSelection = selected, hasSelection

	if !ci.hasSelection {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	mask, ok := scene.Mask(ci.selectedEntity)
	if !ok {
		imgui.Text(fmt.Sprintf("Entity %d not found", ci.selectedEntity))
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity: %d", ci.selectedEntity))
	imgui.Text(fmt.Sprintf("Components: %d", mask.Count()))
	imgui.Separator()

	registry := scene.Registry()
	for id := range mask.IDs() {
		component, err := scene.ComponentValue(ci.selectedEntity, id)
		if err != nil {
			continue
		}

		if imgui.TreeNodeStr(typeName(registry, id)) {
			renderComponent(component)
			if imgui.Button(fmt.Sprintf("Remove##%d", id)) {
				_ = scene.RemoveComponentID(ci.selectedEntity, id)
			}
			imgui.TreePop()
		}
	}

	imgui.End()
}

// renderComponent draws editable widgets for the value behind component,
// which must be a pointer into storage.
func renderComponent(component any) {
	val := reflect.ValueOf(component)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		imgui.Text(fmt.Sprintf("%v", component))
		return
	}
	val = val.Elem()

	if val.Kind() != reflect.Struct {
		renderField("value", val, FieldInfo{Type: val.Type(), Kind: fieldKindOf(val.Type())})
		return
	}

	renderFields(val)
}

// renderFields draws every exported field of the struct val, following
// non-nil pointer fields.
func renderFields(val reflect.Value) {
	for _, field := range globalReflectionCache.GetFields(val.Type()) {
		fieldVal := val.Field(field.Index)
		if field.IsPointer {
			if fieldVal.IsNil() {
				imgui.Text(fmt.Sprintf("%s: nil", field.Name))
				continue
			}
			fieldVal = fieldVal.Elem()
		}
		renderField(field.Name, fieldVal, field)
	}
}

func renderField(name string, val reflect.Value, field FieldInfo) {
	if !val.IsValid() {
		imgui.Text(fmt.Sprintf("%s: <invalid>", name))
		return
	}

	if field.Kind == FieldCollection {
		imgui.Text(fmt.Sprintf("%s: %s[%d items]", name, val.Kind(), val.Len()))
		return
	}

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) {
			setInt(val, int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) && v >= 0 {
			setUint(val, uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(fmt.Sprintf("##%s", name), &v) {
			setFloat(val, float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) {
			setBool(val, v)
		}

	case reflect.String:
		v := val.String()
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(fmt.Sprintf("##%s", name), "", &v, imgui.InputTextFlagsNone, nil) {
			setString(val, v)
		}

	case reflect.Array:
		if imgui.TreeNodeStr(name) {
			for i := 0; i < val.Len(); i++ {
				renderField(fmt.Sprintf("%s[%d]", name, i), val.Index(i), FieldInfo{Type: val.Type().Elem(), Kind: fieldKindOf(val.Type().Elem())})
			}
			imgui.TreePop()
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			renderFields(val)
			imgui.TreePop()
		}

	case reflect.Func:
		imgui.Text(fmt.Sprintf("%s: func", name))

	default:
		if val.CanInterface() {
			imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
		} else {
			imgui.Text(fmt.Sprintf("%s: %s", name, field.Type))
		}
	}
}

func setInt(field reflect.Value, value int64) {
	if field.CanSet() && !field.OverflowInt(value) {
		field.SetInt(value)
	}
}

func setUint(field reflect.Value, value uint64) {
	if field.CanSet() && !field.OverflowUint(value) {
		field.SetUint(value)
	}
}

func setFloat(field reflect.Value, value float64) {
	if field.CanSet() {
		field.SetFloat(value)
	}
}

func setBool(field reflect.Value, value bool) {
	if field.CanSet() {
		field.SetBool(value)
	}
}

func setString(field reflect.Value, value string) {
	if field.CanSet() {
		field.SetString(value)
	}
}
