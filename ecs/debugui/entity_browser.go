package debugui

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/turfwars/ecs"
)

// Masks change without the entity count moving, so the cache is also
// rebuilt every refreshFrames renders.
const refreshFrames = 30

type EntityInfo struct {
	ID             ecs.Entity
	ComponentIDs   []ecs.ComponentID
	ComponentTypes []string
	ComponentCount int
}

type EntityBrowserCache struct {
	entities        []EntityInfo
	lastEntityCount int
	framesSinceSync int
	sortColumn      int
	sortAscending   bool
}

func NewEntityBrowserComponent(maxEntitiesPerPage int) EntityBrowserComponent {
	return EntityBrowserComponent{
		cache: &EntityBrowserCache{
			sortColumn:    0,
			sortAscending: true,
		},
		maxEntitiesPerPage: maxEntitiesPerPage,
	}
}

func (eb *EntityBrowserComponent) Render(scene *ecs.Scene) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.rebuildCacheIfNeeded(scene)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
		eb.filterComponent = nil
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.cache.sortColumn = int(spec.ColumnIndex())
			eb.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			eb.sortEntities()
			sortSpecs.SetSpecsDirty(false)
		}

		filteredEntities := eb.getFilteredEntities()
		startIdx, endIdx := eb.pageBounds(len(filteredEntities))

		for i := startIdx; i < endIdx; i++ {
			entity := filteredEntities[i]
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := eb.hasSelection && eb.selectedEntity == entity.ID
			if imgui.SelectableBoolV(fmt.Sprintf("%d", entity.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.Select(entity.ID)
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", entity.ComponentCount))
		}

		imgui.EndTable()
	}

	filteredEntities := eb.getFilteredEntities()

	if len(filteredEntities) > eb.maxEntitiesPerPage {
		totalPages := eb.totalPages(len(filteredEntities))
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filteredEntities)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filteredEntities)))
	}

	imgui.End()
}

func (eb *EntityBrowserComponent) totalPages(n int) int {
	if eb.maxEntitiesPerPage <= 0 {
		return 1
	}
	return max((n+eb.maxEntitiesPerPage-1)/eb.maxEntitiesPerPage, 1)
}

func (eb *EntityBrowserComponent) pageBounds(n int) (int, int) {
	if eb.maxEntitiesPerPage <= 0 {
		return 0, n
	}
	eb.currentPage = min(eb.currentPage, eb.totalPages(n)-1)
	start := eb.currentPage * eb.maxEntitiesPerPage
	return start, min(start+eb.maxEntitiesPerPage, n)
}

func (eb *EntityBrowserComponent) rebuildCacheIfNeeded(scene *ecs.Scene) {
	eb.cache.framesSinceSync++
	if eb.cache.lastEntityCount != scene.EntityCount() || eb.cache.framesSinceSync >= refreshFrames {
		eb.cache.entities = nil
	}

	if eb.cache.entities == nil {
		eb.rebuildCache(scene)
	}
}

func (eb *EntityBrowserComponent) rebuildCache(scene *ecs.Scene) {
	registry := scene.Registry()
	eb.cache.entities = make([]EntityInfo, 0, scene.EntityCount())
	eb.cache.lastEntityCount = scene.EntityCount()
	eb.cache.framesSinceSync = 0

	for e := range scene.Entities() {
		mask, _ := scene.Mask(e)
		info := EntityInfo{ID: e}
		for id := range mask.IDs() {
			info.ComponentIDs = append(info.ComponentIDs, id)
			info.ComponentTypes = append(info.ComponentTypes, typeName(registry, id))
		}
		info.ComponentCount = len(info.ComponentIDs)
		eb.cache.entities = append(eb.cache.entities, info)
	}

	eb.sortEntities()
}

func (eb *EntityBrowserComponent) sortEntities() {
	sort.SliceStable(eb.cache.entities, func(i, j int) bool {
		a, b := eb.cache.entities[i], eb.cache.entities[j]
		var less bool

		switch eb.cache.sortColumn {
		case 1:
			less = strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		case 2:
			less = a.ComponentCount < b.ComponentCount
		default:
			less = a.ID < b.ID
		}

		if !eb.cache.sortAscending {
			return !less
		}
		return less
	})
}

func (eb *EntityBrowserComponent) getFilteredEntities() []EntityInfo {
	if eb.filterText == "" && eb.filterComponent == nil {
		return eb.cache.entities
	}

	filtered := make([]EntityInfo, 0, len(eb.cache.entities))
	filterLower := strings.ToLower(eb.filterText)

	for _, entity := range eb.cache.entities {
		if eb.filterComponent != nil && !slices.Contains(entity.ComponentIDs, *eb.filterComponent) {
			continue
		}

		if eb.filterText != "" {
			idStr := fmt.Sprintf("%d", entity.ID)
			componentsStr := strings.ToLower(strings.Join(entity.ComponentTypes, " "))

			if !strings.Contains(idStr, filterLower) &&
				!strings.Contains(componentsStr, filterLower) {
				continue
			}
		}

		filtered = append(filtered, entity)
	}

	return filtered
}

// FilterByComponent restricts the browser to entities holding id.
func (eb *EntityBrowserComponent) FilterByComponent(id ecs.ComponentID) {
	eb.filterComponent = &id
	eb.currentPage = 0
}

// Select marks e as the entity shown by the component inspector.
func (eb *EntityBrowserComponent) Select(e ecs.Entity) {
	eb.selectedEntity = e
	eb.hasSelection = true
}

// SelectedEntity returns the selected entity, if any. Entity 0 is a real
// entity, so absence is reported separately.
func (eb *EntityBrowserComponent) SelectedEntity() (ecs.Entity, bool) {
	return eb.selectedEntity, eb.hasSelection
}

func typeName(registry *ecs.ComponentRegistry, id ecs.ComponentID) string {
	if t := registry.Type(id); t != nil {
		return t.String()
	}
	return fmt.Sprintf("#%d", id)
}
