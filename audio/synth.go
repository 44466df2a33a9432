// Package audio synthesizes the turfwars soundscape: a looping wind bed and
// an alarm when a vehicle leaves the field.
package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

const sampleRate = beep.SampleRate(48000)

// wind is low-passed white noise whose loudness drifts with a slow gust LFO.
// It never ends.
type wind struct {
	rate     beep.SampleRate
	rng      *rand.Rand
	lowpass  float64
	gust     float64
	gustRate float64
}

// NewWind returns an endless wind stream. The same seed yields the same
// samples.
func NewWind(rate beep.SampleRate, seed uint64) beep.Streamer {
	return &wind{
		rate:     rate,
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		gustRate: 0.15,
	}
}

func (w *wind) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		noise := w.rng.Float64()*2 - 1
		// one-pole low-pass, cutoff a few hundred Hz at 48 kHz
		w.lowpass += 0.04 * (noise - w.lowpass)

		amp := 0.6 + 0.4*math.Sin(2*math.Pi*w.gust)
		w.gust += w.gustRate / float64(w.rate)
		w.gust -= math.Floor(w.gust)

		val := clamp(w.lowpass * 3 * amp)
		samples[i][0] = val
		samples[i][1] = val
	}
	return len(samples), true
}

func (w *wind) Err() error { return nil }

// tone is a sine oscillator with a linear release over its whole length.
type tone struct {
	freq     float64
	phase    float64
	rate     beep.SampleRate
	length   int
	position int
}

// NewTone returns a decaying sine at freq Hz.
func NewTone(freq float64, length time.Duration, rate beep.SampleRate) beep.Streamer {
	return &tone{freq: freq, rate: rate, length: rate.N(length)}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.length {
			return i, i > 0
		}

		env := 1 - float64(t.position)/float64(t.length)
		val := math.Sin(2*math.Pi*t.phase) * env
		samples[i][0] = val
		samples[i][1] = val

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// NewAlarm returns the out-of-bounds alarm: three falling beeps.
func NewAlarm(rate beep.SampleRate) beep.Streamer {
	beep1 := NewTone(880, 180*time.Millisecond, rate)
	beep2 := NewTone(660, 180*time.Millisecond, rate)
	beep3 := NewTone(440, 400*time.Millisecond, rate)
	gap := func() beep.Streamer { return beep.Silence(rate.N(60 * time.Millisecond)) }
	return beep.Seq(beep1, gap(), beep2, gap(), beep3)
}

// withVolume scales s linearly; zero or negative volume is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

func clamp(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
