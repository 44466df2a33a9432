package debugui

import "github.com/plus3/turfwars/ecs"

// SpawnDebugUI creates one entity per inspector window. Render them by
// registering an InspectorSystem with the scene's scheduler.
func SpawnDebugUI(scene *ecs.Scene) error {
	for _, window := range []any{
		NewEntityBrowserComponent(100),
		NewComponentInspectorComponent(),
		NewStorageViewerComponent(),
		NewPerformanceStatsComponent(120),
		NewQueryDebuggerComponent(),
	} {
		e, err := scene.CreateEntity()
		if err != nil {
			return err
		}
		if err := scene.AddComponentValue(e, window); err != nil {
			return err
		}
	}
	return nil
}

func RegisterDebugUIComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
	ecs.RegisterComponent[ImguiInputState](registry)
	ecs.RegisterComponent[EntityBrowserComponent](registry)
	ecs.RegisterComponent[ComponentInspectorComponent](registry)
	ecs.RegisterComponent[StorageViewerComponent](registry)
	ecs.RegisterComponent[PerformanceStatsComponent](registry)
	ecs.RegisterComponent[QueryDebuggerComponent](registry)
}
