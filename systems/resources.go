// Package systems holds the match-resolution core: chain tracking, clearance,
// scoring and spawning, all driven by one cooperative scheduler
package systems

import (
	"github.com/rs/zerolog"

	"github.com/lixenwraith/tile-chain/board"
	"github.com/lixenwraith/tile-chain/config"
	"github.com/lixenwraith/tile-chain/engine"
	"github.com/lixenwraith/tile-chain/event"
	"github.com/lixenwraith/tile-chain/status"
)

// Resources bundles the collaborators shared by every system
// Systems keep explicit references to each other, nothing is looked up globally
type Resources struct {
	Board  *board.Board
	Sched  *engine.Scheduler
	Events *event.EventQueue
	Status *status.Registry
	Config *config.Config
	Log    zerolog.Logger
}

func (r *Resources) emit(t event.EventType, payload any) {
	r.Events.Emit(t, payload, r.Sched.Now())
}

func (r *Resources) logger(system string) zerolog.Logger {
	return r.Log.With().Str("system", system).Logger()
}
