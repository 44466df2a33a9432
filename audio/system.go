package audio

import (
	"github.com/plus3/turfwars/ecs"
	"github.com/plus3/turfwars/sim"
)

// Sounds is what the audio system drives.
type Sounds interface {
	PlayWind()
	StopWind()
	PlayAlarm()
}

// System keeps the soundscape in step with the round: wind while it runs and
// one alarm when a vehicle leaves the field.
type System struct {
	State  ecs.Singleton[sim.GameState]
	Sounds Sounds

	started bool
	alarmed bool
}

func (s *System) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	if state == nil || s.Sounds == nil {
		return
	}

	if state.Running && !s.started {
		s.Sounds.PlayWind()
		s.started = true
	}

	if !state.Running && !s.alarmed {
		s.Sounds.StopWind()
		s.Sounds.PlayAlarm()
		s.alarmed = true
	}
}
