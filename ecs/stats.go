package ecs

// SceneStats is a point-in-time summary of a Scene's memory layout.
type SceneStats struct {
	EntityCount    int
	ComponentTypes int
	StorageCount   int
	SingletonCount int
	TotalBytes     uintptr
	Storages       []StorageStats
	SingletonTypes []string
}

// StorageStats describes one component storage.
type StorageStats struct {
	ID          ComponentID
	Name        string
	Kind        StorageKind
	ElementSize uintptr
	// Slots is the number of constructed slots, including tombstones.
	Slots int
	// Live is the number of entities whose mask holds the component.
	Live  int
	Bytes uintptr
}

// Tombstones returns the number of slots not backing a live component.
func (s StorageStats) Tombstones() int {
	return max(s.Slots-s.Live, 0)
}

// CollectStats walks every mask and storage once.
func (s *Scene) CollectStats() SceneStats {
	stats := SceneStats{
		EntityCount:    len(s.masks),
		ComponentTypes: s.registry.Len(),
		SingletonCount: s.singletons.Len(),
	}

	live := make([]int, len(s.storages))
	for _, m := range s.masks {
		for id := range m.IDs() {
			if int(id) < len(live) {
				live[id]++
			}
		}
	}

	for id, st := range s.Storages() {
		bytes := st.Footprint()
		stats.Storages = append(stats.Storages, StorageStats{
			ID:          id,
			Name:        st.Type().String(),
			Kind:        st.Kind(),
			ElementSize: st.ElementSize(),
			Slots:       st.Slots(),
			Live:        live[id],
			Bytes:       bytes,
		})
		stats.TotalBytes += bytes
	}
	stats.StorageCount = len(stats.Storages)

	for t := range s.Singletons() {
		stats.SingletonTypes = append(stats.SingletonTypes, t.String())
	}

	return stats
}
