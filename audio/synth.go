package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// tone describes one enveloped note, pitch glides linearly from From to To
// To == 0 holds From for the whole note
type tone struct {
	Wave     WaveType
	From, To float64
	Duration time.Duration
	Attack   time.Duration
	Release  time.Duration
	Gain     float64 // 0 means unity
}

// stream renders the tone as a finite streamer at rate
func (t tone) stream(rate beep.SampleRate) beep.Streamer {
	to := t.To
	if to == 0 {
		to = t.From
	}
	v := &voice{
		wave:    t.Wave,
		from:    t.From,
		to:      to,
		rate:    float64(rate),
		total:   rate.N(t.Duration),
		attack:  rate.N(t.Attack),
		release: rate.N(t.Release),
		gain:    1,
	}
	if t.Gain > 0 {
		v.gain = t.Gain
	}
	if t.Wave == WaveNoise {
		// Fixed seed keeps rendered samples reproducible across plays
		v.rng = rand.New(rand.NewSource(int64(t.From) + int64(v.total)))
	}
	return v
}

// voice is the running state of a tone
type voice struct {
	wave     WaveType
	from, to float64
	rate     float64
	total    int
	attack   int
	release  int
	gain     float64
	rng      *rand.Rand

	pos   int
	phase float64
}

func (v *voice) sample() float64 {
	switch v.wave {
	case WaveSquare:
		if v.phase < 0.5 {
			return 1
		}
		return -1
	case WaveSaw:
		return 2*v.phase - 1
	case WaveNoise:
		return v.rng.Float64()*2 - 1
	default:
		return math.Sin(2 * math.Pi * v.phase)
	}
}

// level is the envelope gain at the current position
func (v *voice) level() float64 {
	lvl := v.gain
	if v.attack > 0 && v.pos < v.attack {
		lvl *= float64(v.pos) / float64(v.attack)
	}
	if left := v.total - v.pos; v.release > 0 && left < v.release {
		lvl *= float64(left) / float64(v.release)
	}
	return lvl
}

func (v *voice) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if v.pos >= v.total {
			return i, i > 0
		}

		val := v.sample() * v.level()
		samples[i][0], samples[i][1] = val, val

		progress := float64(v.pos) / float64(v.total)
		freq := v.from + (v.to-v.from)*progress
		v.phase += freq / v.rate
		v.phase -= math.Floor(v.phase)
		v.pos++
	}
	return len(samples), true
}

func (v *voice) Err() error { return nil }

// newVolume scales s linearly, vol <= 0 is silent
// effects.Volume works in log space and Log2(0) is -Inf
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
