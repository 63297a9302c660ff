// Package audio plays synthesized sound effects for game events through beep
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/tile-chain/event"
	"github.com/lixenwraith/tile-chain/parameter"
)

// Output receives finished streamers, the speaker in production
type Output interface {
	Play(s ...beep.Streamer)
}

type speakerOutput struct{}

func (speakerOutput) Play(s ...beep.Streamer) { speaker.Play(s...) }

// InitSpeaker opens the audio device at the game sample rate
func InitSpeaker() (Output, error) {
	rate := beep.SampleRate(parameter.AudioSampleRate)
	if err := speaker.Init(rate, rate.N(parameter.AudioBufferDuration)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	return speakerOutput{}, nil
}

// CloseSpeaker releases the audio device
func CloseSpeaker() {
	speaker.Close()
}

// Player maps game events to sound effects
// Implements event.Handler; safe for concurrent Play calls
type Player struct {
	mu     sync.Mutex
	out    Output
	rate   beep.SampleRate
	volume float64
	muted  bool
	now    func() time.Time

	last   [soundCount]time.Time
	played [soundCount]int
}

// NewPlayer creates a player writing to out at volume in [0, 1]
func NewPlayer(out Output, volume float64) *Player {
	return &Player{
		out:    out,
		rate:   beep.SampleRate(parameter.AudioSampleRate),
		volume: min(max(volume, 0), 1),
		now:    time.Now,
	}
}

// SetMuted toggles output, muted plays are dropped
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	p.muted = muted
	p.mu.Unlock()
}

func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Played returns how many times sound reached the output
func (p *Player) Played(sound Sound) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if sound < 0 || sound >= soundCount {
		return 0
	}
	return p.played[sound]
}

// Play sends sound to the output unless muted or repeated within MinSoundGap
func (p *Player) Play(sound Sound) bool {
	if sound < 0 || sound >= soundCount {
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.muted || p.out == nil {
		return false
	}

	now := p.now()
	if !p.last[sound].IsZero() && now.Sub(p.last[sound]) < parameter.MinSoundGap {
		return false
	}
	p.last[sound] = now

	s := build(sound, p.rate)
	if s == nil {
		return false
	}
	p.played[sound]++
	p.out.Play(newVolume(s, p.volume))
	return true
}

// EventTypes returns the events that make a sound
func (p *Player) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventTileRemoved,
		event.EventComboReached,
		event.EventTimeExtensionGranted,
		event.EventSpawnBatchStarted,
		event.EventMinimumPopulationEnforced,
	}
}

func (p *Player) HandleEvent(ev event.GameEvent) {
	switch ev.Type {
	case event.EventTileRemoved:
		if pl, ok := ev.Payload.(*event.TileRemovedPayload); ok && pl.Cascade {
			p.Play(SoundCascadePop)
			return
		}
		p.Play(SoundPop)
	case event.EventComboReached:
		p.Play(SoundChime)
	case event.EventTimeExtensionGranted:
		p.Play(SoundBell)
	case event.EventSpawnBatchStarted:
		p.Play(SoundPour)
	case event.EventMinimumPopulationEnforced:
		p.Play(SoundThump)
	}
}
