package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Player owns the speaker and the mixer every sound is played through.
// A Player that was never initialised accepts every call and plays nothing.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	wind        *beep.Ctrl
	volume      float64
	initialized bool
}

func NewPlayer(volume float64) *Player {
	return &Player{
		mixer:  &beep.Mixer{},
		volume: volume,
	}
}

// Init opens the speaker and starts the mixer.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// PlayWind starts the wind loop, or resumes it if paused.
func (p *Player) PlayWind() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Lock()
	defer speaker.Unlock()

	if p.wind != nil {
		p.wind.Paused = false
		return
	}
	p.wind = &beep.Ctrl{Streamer: withVolume(NewWind(sampleRate, uint64(time.Now().UnixNano())), 0.7*p.volume)}
	p.mixer.Add(p.wind)
}

func (p *Player) StopWind() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.wind == nil {
		return
	}
	speaker.Lock()
	p.wind.Paused = true
	speaker.Unlock()
}

// PlayAlarm plays the out-of-bounds alarm once.
func (p *Player) PlayAlarm() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Lock()
	p.mixer.Add(withVolume(NewAlarm(sampleRate), p.volume))
	speaker.Unlock()
}

// Close stops every sound and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Clear()
	speaker.Close()
	p.wind = nil
	p.mixer = &beep.Mixer{}
	p.initialized = false
}
