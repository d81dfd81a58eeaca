// Package audio synthesizes the game's sound effects.
package audio

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a wave whose frequency slides linearly from freq to endFreq.
type oscillator struct {
	freq     float64
	endFreq  float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates a fixed-frequency oscillator.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates an oscillator gliding from freq to endFreq over duration.
func NewSweep(freq, endFreq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		endFreq:  endFreq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewSource(int64(freq*1000 + endFreq))),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
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
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		progress := float64(o.position) / float64(o.duration)
		freq := o.freq + (o.endFreq-o.freq)*progress
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream.
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope wraps s with a linear attack and release.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: max(total-att-rel, 0),
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = max(float64(e.totalSamples-e.position)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly by vol. Zero volume is silent, since log2(0) is -Inf.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// Sound names a sound effect.
type Sound int

const (
	SoundShot Sound = iota
	SoundExplosion
	SoundHit
	SoundPickup
	SoundLevel
	SoundBoss
	SoundGameOver
	SoundVictory
)

// Sounds lists every effect.
var Sounds = []Sound{
	SoundShot, SoundExplosion, SoundHit, SoundPickup,
	SoundLevel, SoundBoss, SoundGameOver, SoundVictory,
}

func (s Sound) String() string {
	switch s {
	case SoundShot:
		return "shot"
	case SoundExplosion:
		return "explosion"
	case SoundHit:
		return "hit"
	case SoundPickup:
		return "pickup"
	case SoundLevel:
		return "level"
	case SoundBoss:
		return "boss"
	case SoundGameOver:
		return "game over"
	case SoundVictory:
		return "victory"
	default:
		return fmt.Sprintf("Sound(%d)", int(s))
	}
}

// tone is a single enveloped oscillator.
func tone(freq, endFreq float64, d time.Duration, wave WaveType, rate beep.SampleRate, vol float64) beep.Streamer {
	osc := NewSweep(freq, endFreq, d, wave, rate)
	return newVolume(NewEnvelope(osc, d, d/20, d/2, rate), vol)
}

// arpeggio plays notes one after another.
func arpeggio(notes []float64, step time.Duration, wave WaveType, rate beep.SampleRate, vol float64) beep.Streamer {
	parts := make([]beep.Streamer, len(notes))
	for i, f := range notes {
		parts[i] = tone(f, f, step, wave, rate, vol)
	}
	return beep.Seq(parts...)
}

// Create synthesizes sound s at the given sample rate and master volume.
func Create(s Sound, rate beep.SampleRate, volume float64) beep.Streamer {
	var st beep.Streamer
	switch s {
	case SoundShot:
		st = tone(1200, 400, 80*time.Millisecond, WaveSquare, rate, 0.25)
	case SoundExplosion:
		st = beep.Mix(
			tone(0, 0, 350*time.Millisecond, WaveNoise, rate, 0.5),
			tone(120, 40, 350*time.Millisecond, WaveSine, rate, 0.5),
		)
	case SoundHit:
		st = tone(180, 60, 250*time.Millisecond, WaveSaw, rate, 0.6)
	case SoundPickup:
		st = arpeggio([]float64{660, 880, 1320}, 60*time.Millisecond, WaveSine, rate, 0.5)
	case SoundLevel:
		st = arpeggio([]float64{523.25, 659.25, 783.99}, 110*time.Millisecond, WaveSquare, rate, 0.3)
	case SoundBoss:
		st = tone(90, 45, 900*time.Millisecond, WaveSaw, rate, 0.6)
	case SoundGameOver:
		st = arpeggio([]float64{392, 329.63, 261.63, 196}, 220*time.Millisecond, WaveSine, rate, 0.5)
	case SoundVictory:
		st = arpeggio([]float64{523.25, 659.25, 783.99, 1046.5}, 150*time.Millisecond, WaveSquare, rate, 0.35)
	default:
		st = beep.Silence(0)
	}
	return newVolume(st, volume)
}
