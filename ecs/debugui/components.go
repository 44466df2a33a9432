package debugui

import (
	"github.com/plus3/turfwars/ecs"
)

type EntityBrowserComponent struct {
	cache              *EntityBrowserCache
	selectedEntity     ecs.Entity
	hasSelection       bool
	filterText         string
	filterComponent    *ecs.ComponentID
	maxEntitiesPerPage int
	currentPage        int
}

type ComponentInspectorComponent struct {
	selectedEntity ecs.Entity
	hasSelection   bool
}

type StorageViewerComponent struct {
	cache           *StorageViewerCache
	selectedStorage *ecs.ComponentID
}

type PerformanceStatsComponent struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
	timer         *FrameTimer
}

type QueryDebuggerComponent struct {
	selectedComponentTypes map[ecs.ComponentID]bool
	cache                  *QueryDebuggerCache
}
