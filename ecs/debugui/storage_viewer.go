package debugui

import (
	"fmt"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/turfwars/ecs"
)

type StorageViewerCache struct {
	storages      []ecs.StorageStats
	lastCompact   ecs.CompactStats
	sortColumn    int
	sortAscending bool
}

func NewStorageViewerComponent() StorageViewerComponent {
	return StorageViewerComponent{
		cache: &StorageViewerCache{
			sortColumn:    5,
			sortAscending: false,
		},
	}
}

// Render draws one row per component storage and returns the storage the
// user clicked this frame, if any.
func (sv *StorageViewerComponent) Render(scene *ecs.Scene) *ecs.ComponentID {
	if !imgui.BeginV("Storage Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return nil
	}

	if imgui.Button("Compact") {
		// sv lives in a storage that Compact may move; touch only the cache.
		cache := sv.cache
		cache.lastCompact = scene.Compact()
		imgui.End()
		return nil
	}
	if last := sv.cache.lastCompact; last.Storages > 0 {
		imgui.SameLine()
		imgui.Text(fmt.Sprintf("freed %d slots, %d -> %d bytes",
			last.SlotsFreed, last.BytesBefore, last.BytesAfter))
	}

	sv.refresh(scene)

	var maxBytes uintptr
	for _, st := range sv.cache.storages {
		maxBytes = max(maxBytes, st.Bytes)
	}

	var clicked *ecs.ComponentID

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("StorageTable", 6, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("ID")
		imgui.TableSetupColumn("Component")
		imgui.TableSetupColumn("Kind")
		imgui.TableSetupColumn("Slots")
		imgui.TableSetupColumn("Live")
		imgui.TableSetupColumn("Bytes")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			sv.cache.sortColumn = int(spec.ColumnIndex())
			sv.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sv.sortStorages()
			sortSpecs.SetSpecsDirty(false)
		}

		for _, st := range sv.cache.storages {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := sv.selectedStorage != nil && *sv.selectedStorage == st.ID
			if imgui.SelectableBoolV(fmt.Sprintf("%d", st.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				id := st.ID
				clicked = &id
				sv.selectedStorage = &id
			}

			imgui.TableNextColumn()
			imgui.Text(st.Name)

			imgui.TableNextColumn()
			imgui.Text(st.Kind.String())

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", st.Slots))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d (%d dead)", st.Live, st.Tombstones()))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", st.Bytes))

			if maxBytes > 0 {
				barWidth := float32(st.Bytes) / float32(maxBytes) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}
		}

		imgui.EndTable()
	}

	imgui.End()
	return clicked
}

func (sv *StorageViewerComponent) refresh(scene *ecs.Scene) {
	sv.cache.storages = scene.CollectStats().Storages
	sv.sortStorages()
}

func (sv *StorageViewerComponent) sortStorages() {
	sort.SliceStable(sv.cache.storages, func(i, j int) bool {
		a, b := sv.cache.storages[i], sv.cache.storages[j]
		var less bool

		switch sv.cache.sortColumn {
		case 0:
			less = a.ID < b.ID
		case 1:
			less = a.Name < b.Name
		case 2:
			less = a.Kind < b.Kind
		case 3:
			less = a.Slots < b.Slots
		case 4:
			less = a.Live < b.Live
		default:
			less = a.Bytes < b.Bytes
		}

		if !sv.cache.sortAscending {
			return !less
		}
		return less
	})
}
