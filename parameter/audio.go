package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration is the speaker buffer, latency vs underrun tradeoff
	AudioBufferDuration = 100 * time.Millisecond

	AudioDefaultVolume = 0.6
)

// Pop Sound (tile removed)
const (
	PopSoundDuration = 70 * time.Millisecond
	PopSoundAttack   = 3 * time.Millisecond
	PopSoundRelease  = 50 * time.Millisecond
	PopSoundFreq     = 660.0
	// PopCascadeFreq is lower so cascades read as a rumble under the chain
	PopCascadeFreq = 440.0
	// PopSoundGlide is the end pitch ratio, pops bend upward
	PopSoundGlide = 1.5
)

// Chime Sound (combo tier reached)
const (
	ChimeNote1Duration = 80 * time.Millisecond
	ChimeNote2Duration = 280 * time.Millisecond
	ChimeAttack        = 5 * time.Millisecond
	ChimeNote1Release  = 40 * time.Millisecond
	ChimeNote2Release  = 200 * time.Millisecond
)

// Bell Sound (time extension)
const (
	BellSoundDuration           = 600 * time.Millisecond
	BellSoundAttack             = 5 * time.Millisecond
	BellSoundFundamentalRelease = 550 * time.Millisecond
	BellSoundOvertoneRelease    = 200 * time.Millisecond
)

// Pour Sound (spawn batch)
const (
	PourSoundDuration = 300 * time.Millisecond
	PourSoundAttack   = 150 * time.Millisecond
	PourSoundRelease  = 150 * time.Millisecond
)

// Thump Sound (population floor)
const (
	ThumpSoundDuration = 120 * time.Millisecond
	ThumpSoundAttack   = 1 * time.Millisecond
	ThumpSoundRelease  = 100 * time.Millisecond
	ThumpSoundFreq     = 90.0
	ThumpSoundEndFreq  = 50.0
)

// MinSoundGap throttles repeats of the same sound, removals arrive in bursts
const MinSoundGap = 40 * time.Millisecond
