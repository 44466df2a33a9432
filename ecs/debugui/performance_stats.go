package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/turfwars/ecs"
)

// NewPerformanceStatsComponent keeps the last historyFrames frame times.
func NewPerformanceStatsComponent(historyFrames int) PerformanceStatsComponent {
	return PerformanceStatsComponent{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
		timer:         NewFrameTimer(),
	}
}

// Record adds a frame time in seconds to the rolling history and returns the
// average frame time in milliseconds. Slots not yet written count as zero.
func (ps *PerformanceStatsComponent) Record(deltaTime float32) float32 {
	if ps.historyFrames == 0 {
		return 0
	}
	ps.frameHistory[ps.frameIndex] = deltaTime * 1000
	ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames

	var sum float32
	for _, ms := range ps.frameHistory {
		sum += ms
	}
	return sum / float32(ps.historyFrames)
}

// Render draws the window. The graph tracks wall-clock time between renders;
// stepDelta is the simulation step the scheduler was given.
func (ps *PerformanceStatsComponent) Render(scene *ecs.Scene, stepDelta float32) {
	if ps.timer == nil {
		ps.timer = NewFrameTimer()
	}
	avg := ps.Record(ps.timer.GetDeltaTime())

	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := scene.CollectStats()
	imgui.Text(fmt.Sprintf("Entities: %d   Component types: %d", stats.EntityCount, stats.ComponentTypes))
	imgui.Text(fmt.Sprintf("Storages: %d (%d bytes)   Singletons: %d", stats.StorageCount, stats.TotalBytes, stats.SingletonCount))
	imgui.Text(fmt.Sprintf("Sim step: %.2f ms", stepDelta*1000))
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Frame: %.2f ms avg (%.0f FPS)", avg, 1000/avg))
	}

	imgui.Separator()
	if len(ps.frameHistory) > 0 {
		imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))
	}

	if imgui.TreeNodeStr("Tombstones") {
		for _, st := range stats.Storages {
			if dead := st.Tombstones(); dead > 0 {
				imgui.BulletText(fmt.Sprintf("%s (%s): %d of %d slots", st.Name, st.Kind, dead, st.Slots))
			}
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Singletons") {
		for _, name := range stats.SingletonTypes {
			imgui.BulletText(name)
		}
		imgui.TreePop()
	}

	imgui.End()
}

// FrameTimer measures wall-clock time between successive calls.
type FrameTimer struct {
	last time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{last: time.Now()}
}

// GetDeltaTime returns the seconds since the previous call, or since the
// timer was created.
func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.last).Seconds())
	ft.last = now
	return delta
}
