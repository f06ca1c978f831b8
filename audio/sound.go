// Package audio synthesizes the short feedback sounds the level viewer plays:
// a bump when movement stops dead, a scrape when it slides along a wall, and a
// chime when a level finishes generating. Everything is generated, no assets.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// SoundType identifies one of the generated effects.
type SoundType int

const (
	SoundBump SoundType = iota
	SoundSlide
	SoundChime
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw waveform samples as a finite streamer
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a finite streamer producing the given wave shape
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, false
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes a streamer with a linear attack and release
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, false
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.totalSamples - e.releaseSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = float64(e.totalSamples-e.position) / float64(e.releaseSamples)
			if vol < 0 {
				vol = 0
			}
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps a streamer in a volume effect.
// math.Log2(0) is -Inf, so zero volume switches to silent instead
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// Blip is the general one-shot: a wave at freq, shaped with a fast attack and
// a release covering the back two thirds of the duration
func Blip(wave WaveType, freq float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(freq, duration, wave, rate)
	return NewEnvelope(osc, duration, 2*time.Millisecond, duration*2/3, rate)
}

// CreateBumpSound generates a low thud for movement stopped by a wall
func CreateBumpSound(rate beep.SampleRate) beep.Streamer {
	return Blip(WaveSaw, 110.0, 90*time.Millisecond, rate)
}

// CreateSlideSound generates a short scrape for sliding along a wall
func CreateSlideSound(rate beep.SampleRate) beep.Streamer {
	const dur = 60 * time.Millisecond
	noise := NewOscillator(0, dur, WaveNoise, rate)
	shaped := NewEnvelope(noise, dur, 5*time.Millisecond, 40*time.Millisecond, rate)
	return newVolume(shaped, 0.4)
}

// CreateChimeSound generates a two-tone ding for level generation
func CreateChimeSound(rate beep.SampleRate) beep.Streamer {
	const dur = 250 * time.Millisecond

	// Fundamental (A5) with an octave overtone
	fund := NewOscillator(880.0, dur, WaveSine, rate)
	fundShaped := NewEnvelope(fund, dur, 5*time.Millisecond, 200*time.Millisecond, rate)

	over := NewOscillator(1760.0, dur, WaveSine, rate)
	overShaped := NewEnvelope(over, dur, 5*time.Millisecond, 120*time.Millisecond, rate)

	return beep.Mix(
		newVolume(fundShaped, 0.7),
		newVolume(overShaped, 0.3),
	)
}

// GetSoundEffect returns a fresh streamer for the given sound type
func GetSoundEffect(st SoundType, rate beep.SampleRate) beep.Streamer {
	switch st {
	case SoundBump:
		return CreateBumpSound(rate)
	case SoundSlide:
		return CreateSlideSound(rate)
	case SoundChime:
		return CreateChimeSound(rate)
	default:
		return nil
	}
}
