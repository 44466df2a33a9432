// Package debugui provides immediate-mode GUI integration for ECS applications using Dear ImGui.
// It manages ImGui rendering and input state through ECS components and systems, and
// ships a set of inspector windows for looking inside a running Scene.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/turfwars/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks Dear ImGui's input capture state as a singleton component.
// Use this to determine if ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem queries all ImguiItem components and defers their render functions.
// It also updates the ImguiInputState singleton with current input capture state.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

// Execute updates input state and queues all ImGui render functions for execution.
func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	if state := i.InputState.Get(); state != nil {
		state.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
		state.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()
	}

	for item := range i.Items.Values() {
		frame.Commands.Defer(item.Render)
	}
}

// InspectorSystem renders the inspector windows spawned by SpawnDebugUI.
// The entity selected in the browser is the one the component inspector shows.
// Windows may live in a different scene than the one they inspect.
type InspectorSystem struct {
	Browsers   ecs.Query[struct{ *EntityBrowserComponent }]
	Inspectors ecs.Query[struct{ *ComponentInspectorComponent }]
	Storages   ecs.Query[struct{ *StorageViewerComponent }]
	Stats      ecs.Query[struct{ *PerformanceStatsComponent }]
	Queries    ecs.Query[struct{ *QueryDebuggerComponent }]

	// Target is the inspected scene; nil inspects the scene the system runs in.
	Target *ecs.Scene
	// Hidden suppresses every inspector window while set.
	Hidden bool
}

// Execute defers rendering until the frame's structural changes are applied.
// Windows are reached through refs because the flush may move their storage.
func (s *InspectorSystem) Execute(frame *ecs.UpdateFrame) {
	if s.Hidden {
		return
	}

	home := frame.Scene
	scene := s.Target
	if scene == nil {
		scene = home
	}
	browsers := refs[EntityBrowserComponent](home, s.Browsers.Entities())
	inspectors := refs[ComponentInspectorComponent](home, s.Inspectors.Entities())
	storages := refs[StorageViewerComponent](home, s.Storages.Entities())
	stats := refs[PerformanceStatsComponent](home, s.Stats.Entities())
	queries := refs[QueryDebuggerComponent](home, s.Queries.Entities())
	dt := float32(frame.DeltaTime)

	frame.Commands.Defer(func() {
		var selected ecs.Entity
		hasSelection := false
		for _, ref := range browsers {
			if browser, err := ref.Get(); err == nil {
				browser.Render(scene)
				if e, ok := browser.SelectedEntity(); ok {
					selected, hasSelection = e, true
				}
			}
		}
		for _, ref := range inspectors {
			if inspector, err := ref.Get(); err == nil {
				inspector.Render(scene, selected, hasSelection)
			}
		}
		for _, ref := range storages {
			if viewer, err := ref.Get(); err == nil {
				viewer.Render(scene)
			}
		}
		for _, ref := range stats {
			if perf, err := ref.Get(); err == nil {
				perf.Render(scene, dt)
			}
		}
		for _, ref := range queries {
			if debugger, err := ref.Get(); err == nil {
				debugger.Render(scene)
			}
		}
	})
}

func refs[T any](scene *ecs.Scene, entities []ecs.Entity) []ecs.Ref[T] {
	out := make([]ecs.Ref[T], len(entities))
	for i, e := range entities {
		out[i] = ecs.RefOf[T](scene, e)
	}
	return out
}
