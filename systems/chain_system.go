package systems

import (
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/tile-chain/board"
	"github.com/lixenwraith/tile-chain/event"
	"github.com/lixenwraith/tile-chain/parameter"
	"github.com/lixenwraith/tile-chain/rules"
	"github.com/lixenwraith/tile-chain/status"
	"github.com/lixenwraith/tile-chain/vmath"
)

// Chain is the ordered, duplicate-free set of tiles under the active drag gesture
type Chain struct {
	tiles   []*board.Tile
	members map[board.TileID]struct{}
	state   rules.ChainState
}

func newChain() Chain {
	return Chain{members: make(map[board.TileID]struct{})}
}

func (c *Chain) Len() int { return len(c.tiles) }

// State returns the rule-relevant summary of the chain
func (c *Chain) State() rules.ChainState { return c.state }

func (c *Chain) Contains(id board.TileID) bool {
	_, ok := c.members[id]
	return ok
}

// Tiles returns a copy of the members in connection order
func (c *Chain) Tiles() []*board.Tile {
	out := make([]*board.Tile, len(c.tiles))
	copy(out, c.tiles)
	return out
}

// IDs returns member ids in connection order
func (c *Chain) IDs() []board.TileID {
	ids := make([]board.TileID, len(c.tiles))
	for i, t := range c.tiles {
		ids[i] = t.ID
	}
	return ids
}

func (c *Chain) last() *board.Tile {
	if len(c.tiles) == 0 {
		return nil
	}
	return c.tiles[len(c.tiles)-1]
}

func (c *Chain) append(t *board.Tile) {
	c.tiles = append(c.tiles, t)
	c.members[t.ID] = struct{}{}
	c.state.Len++
	switch t.Kind {
	case board.KindOrdinary:
		if !c.state.HasTag {
			c.state.HasTag = true
			c.state.Tag = t.Type
		}
	case board.KindWildcard:
		c.state.HasWildcard = true
	}
}

func (c *Chain) reset() {
	c.tiles = c.tiles[:0]
	clear(c.members)
	c.state = rules.ChainState{}
}

// Clearer accepts a released chain
type Clearer interface {
	Clear(tiles []*board.Tile) *Batch
}

// ChainSystem builds the active chain from press, hold and release positions
type ChainSystem struct {
	res     *Resources
	log     zerolog.Logger
	clearer Clearer

	chain   Chain
	enabled bool

	statRejected  *atomic.Int64
	statSubmitted *atomic.Int64
	statLongest   *atomic.Int64
}

func NewChainSystem(res *Resources, clearer Clearer) *ChainSystem {
	return &ChainSystem{
		res:     res,
		log:     res.logger("chain"),
		clearer: clearer,
		chain:   newChain(),
		enabled: true,

		statRejected:  res.Status.Ints.Get(status.KeyRejectedInputs),
		statSubmitted: res.Status.Ints.Get(status.KeyChainsSubmitted),
		statLongest:   res.Status.Ints.Get(status.KeyLongestChain),
	}
}

// Chain exposes the active chain for rendering
func (s *ChainSystem) Chain() *Chain {
	return &s.chain
}

// Enabled reports whether input is accepted
func (s *ChainSystem) Enabled() bool {
	return s.enabled
}

// SetEnabled gates input, disabling drops a chain under construction
func (s *ChainSystem) SetEnabled(enabled bool) {
	s.enabled = enabled
	if !enabled {
		s.resetChain()
	}
}

// OnPress starts a new gesture at pos
func (s *ChainSystem) OnPress(pos vmath.Vec2F) {
	if !s.enabled {
		return
	}
	s.resetChain()
	s.register(pos)
}

// OnHold extends the gesture with the tile under pos, if any
func (s *ChainSystem) OnHold(pos vmath.Vec2F) {
	if !s.enabled {
		return
	}
	s.register(pos)
}

// OnRelease ends the gesture, chains of MinChainLength or more go to clearance
// Members captured by a concurrent cascade while the chain was held are dropped first
func (s *ChainSystem) OnRelease(vmath.Vec2F) *Batch {
	if !s.enabled || s.chain.Len() == 0 {
		return nil
	}

	live := make([]*board.Tile, 0, s.chain.Len())
	for _, t := range s.chain.tiles {
		if t.Live() {
			live = append(live, t)
		}
	}
	s.resetChain()

	if len(live) < parameter.MinChainLength {
		s.log.Debug().Int("len", len(live)).Msg("chain too short, discarded")
		return nil
	}

	s.statSubmitted.Add(1)
	if int64(len(live)) > s.statLongest.Load() {
		s.statLongest.Store(int64(len(live)))
	}
	return s.clearer.Clear(live)
}

// register attempts to append the tile under pos to the chain
func (s *ChainSystem) register(pos vmath.Vec2F) bool {
	t := s.res.Board.TileAt(pos)
	if t == nil {
		return false
	}
	if s.chain.Contains(t.ID) {
		return false
	}

	st := s.chain.State()
	if !rules.Accepts(st, t) {
		s.reject(t, "rule")
		return false
	}

	if last := s.chain.last(); last != nil {
		for _, between := range s.res.Board.Between(last, t) {
			if rules.Blocks(between, st) {
				s.reject(t, "blocked")
				return false
			}
		}
	}

	s.chain.append(t)
	s.res.emit(event.EventChainChanged, &event.ChainChangedPayload{Tiles: s.chain.IDs()})
	return true
}

func (s *ChainSystem) reject(t *board.Tile, reason string) {
	s.statRejected.Add(1)
	s.log.Debug().Uint64("tile", uint64(t.ID)).Str("kind", t.Kind.String()).Str("reason", reason).Msg("registration rejected")
}

// resetChain empties the chain, listeners hear about it only if it had members
func (s *ChainSystem) resetChain() {
	if s.chain.Len() == 0 {
		return
	}
	s.chain.reset()
	s.res.emit(event.EventChainChanged, &event.ChainChangedPayload{Tiles: []board.TileID{}})
}
