package audio

import (
	"github.com/gopxl/beep"

	"github.com/lixenwraith/tile-chain/parameter"
)

// Sound identifies a game sound effect
type Sound int

const (
	SoundPop        Sound = iota // Tile removed by a chain
	SoundCascadePop              // Tile removed by an area clear
	SoundChime                   // Combo tier reached
	SoundBell                    // Time extension
	SoundPour                    // Spawn batch started
	SoundThump                   // Population floor enforced
	soundCount
)

var soundNames = [soundCount]string{"pop", "cascade-pop", "chime", "bell", "pour", "thump"}

func (s Sound) String() string {
	if s < 0 || s >= soundCount {
		return "unknown"
	}
	return soundNames[s]
}

func pop(rate beep.SampleRate, freq float64) beep.Streamer {
	return tone{
		Wave:     WaveSine,
		From:     freq,
		To:       freq * parameter.PopSoundGlide,
		Duration: parameter.PopSoundDuration,
		Attack:   parameter.PopSoundAttack,
		Release:  parameter.PopSoundRelease,
	}.stream(rate)
}

// chime is a two-note square arpeggio (B5, E6)
func chime(rate beep.SampleRate) beep.Streamer {
	lo := tone{Wave: WaveSquare, From: 987.77, Duration: parameter.ChimeNote1Duration,
		Attack: parameter.ChimeAttack, Release: parameter.ChimeNote1Release, Gain: 0.5}
	hi := tone{Wave: WaveSquare, From: 1318.51, Duration: parameter.ChimeNote2Duration,
		Attack: parameter.ChimeAttack, Release: parameter.ChimeNote2Release, Gain: 0.5}
	return beep.Seq(lo.stream(rate), hi.stream(rate))
}

// bell mixes an A5 fundamental with its octave
func bell(rate beep.SampleRate) beep.Streamer {
	fund := tone{Wave: WaveSine, From: 880, Duration: parameter.BellSoundDuration,
		Attack: parameter.BellSoundAttack, Release: parameter.BellSoundFundamentalRelease, Gain: 0.7}
	over := tone{Wave: WaveSine, From: 1760, Duration: parameter.BellSoundDuration,
		Attack: parameter.BellSoundAttack, Release: parameter.BellSoundOvertoneRelease, Gain: 0.3}
	return beep.Mix(fund.stream(rate), over.stream(rate))
}

func pour(rate beep.SampleRate) beep.Streamer {
	return tone{
		Wave:     WaveNoise,
		Duration: parameter.PourSoundDuration,
		Attack:   parameter.PourSoundAttack,
		Release:  parameter.PourSoundRelease,
		Gain:     0.4,
	}.stream(rate)
}

func thump(rate beep.SampleRate) beep.Streamer {
	return tone{
		Wave:     WaveSaw,
		From:     parameter.ThumpSoundFreq,
		To:       parameter.ThumpSoundEndFreq,
		Duration: parameter.ThumpSoundDuration,
		Attack:   parameter.ThumpSoundAttack,
		Release:  parameter.ThumpSoundRelease,
	}.stream(rate)
}

// build returns a fresh unity-gain streamer for sound, nil for unknown sounds
func build(sound Sound, rate beep.SampleRate) beep.Streamer {
	switch sound {
	case SoundPop:
		return pop(rate, parameter.PopSoundFreq)
	case SoundCascadePop:
		return pop(rate, parameter.PopCascadeFreq)
	case SoundChime:
		return chime(rate)
	case SoundBell:
		return bell(rate)
	case SoundPour:
		return pour(rate)
	case SoundThump:
		return thump(rate)
	default:
		return nil
	}
}
