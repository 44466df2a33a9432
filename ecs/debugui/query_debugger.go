package debugui

import (
	"fmt"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/turfwars/ecs"
)

// How many matching entities are listed under the totals.
const queryPreviewLimit = 50

type componentChoice struct {
	ID   ecs.ComponentID
	Name string
}

type QueryDebuggerCache struct {
	components       []componentChoice
	lastStorageCount int
}

func NewQueryDebuggerComponent() QueryDebuggerComponent {
	return QueryDebuggerComponent{
		selectedComponentTypes: make(map[ecs.ComponentID]bool),
		cache: &QueryDebuggerCache{
			lastStorageCount: -1,
		},
	}
}

func (qd *QueryDebuggerComponent) Render(scene *ecs.Scene) {
	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	qd.rebuildCacheIfNeeded(scene)

	imgui.Text("Select Component Types:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		qd.selectedComponentTypes = make(map[ecs.ComponentID]bool)
	}

	for _, choice := range qd.cache.components {
		selected := qd.selectedComponentTypes[choice.ID]
		if imgui.Checkbox(choice.Name, &selected) {
			if selected {
				qd.selectedComponentTypes[choice.ID] = true
			} else {
				delete(qd.selectedComponentTypes, choice.ID)
			}
		}
	}

	imgui.Separator()

	ids := qd.selectedIDs()
	if len(ids) == 0 {
		imgui.Text("No component types selected")
		imgui.End()
		return
	}

	matching := qd.matchingEntities(scene)
	imgui.Text(fmt.Sprintf("Matching Entities: %d", len(matching)))

	if imgui.TreeNodeStr("Entities") {
		for i, e := range matching {
			if i == queryPreviewLimit {
				imgui.Text(fmt.Sprintf("... %d more", len(matching)-queryPreviewLimit))
				break
			}
			imgui.BulletText(fmt.Sprintf("%d", e))
		}
		imgui.TreePop()
	}

	imgui.End()
}

func (qd *QueryDebuggerComponent) rebuildCacheIfNeeded(scene *ecs.Scene) {
	count := 0
	for range scene.Storages() {
		count++
	}
	if qd.cache.lastStorageCount != count {
		qd.rebuildCache(scene)
	}
}

// rebuildCache lists every component type that has a storage in the scene.
func (qd *QueryDebuggerComponent) rebuildCache(scene *ecs.Scene) {
	registry := scene.Registry()
	qd.cache.components = qd.cache.components[:0]

	for id := range scene.Storages() {
		qd.cache.components = append(qd.cache.components, componentChoice{
			ID:   id,
			Name: typeName(registry, id),
		})
	}

	qd.cache.lastStorageCount = len(qd.cache.components)
	sort.Slice(qd.cache.components, func(i, j int) bool {
		return qd.cache.components[i].Name < qd.cache.components[j].Name
	})
}

// Toggle selects or deselects a component type.
func (qd *QueryDebuggerComponent) Toggle(id ecs.ComponentID, selected bool) {
	if selected {
		qd.selectedComponentTypes[id] = true
	} else {
		delete(qd.selectedComponentTypes, id)
	}
}

func (qd *QueryDebuggerComponent) selectedIDs() []ecs.ComponentID {
	ids := make([]ecs.ComponentID, 0, len(qd.selectedComponentTypes))
	for id := range qd.selectedComponentTypes {
		ids = append(ids, id)
	}
	return ids
}

// matchingEntities returns, in ascending order, the entities that hold every
// selected component type.
func (qd *QueryDebuggerComponent) matchingEntities(scene *ecs.Scene) []ecs.Entity {
	ids := qd.selectedIDs()
	if len(ids) == 0 {
		return nil
	}

	var matching []ecs.Entity
	for e := range scene.EntitiesWith(ids...) {
		matching = append(matching, e)
	}
	return matching
}
