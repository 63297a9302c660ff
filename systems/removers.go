package systems

import (
	"github.com/lixenwraith/tile-chain/board"
	"github.com/lixenwraith/tile-chain/event"
)

// Remover is the removal capability of one tile kind
// It runs on the scheduler baton inside a batch or cascade task
type Remover interface {
	Remove(c *ClearSystem, b *Batch, t *board.Tile, cascade bool)
}

// plainRemover destroys the tile and notifies listeners
type plainRemover struct{}

func (plainRemover) Remove(c *ClearSystem, _ *Batch, t *board.Tile, cascade bool) {
	c.res.Board.Remove(t.ID)
	c.statRemoved.Add(1)
	c.res.emit(event.EventTileRemoved, &event.TileRemovedPayload{TileID: t.ID, Cascade: cascade})
}

// areaClearRemover destroys the tile then captures every live tile within the
// area-clear radius into a cascade task owned by the batch
type areaClearRemover struct {
	plainRemover
}

func (r areaClearRemover) Remove(c *ClearSystem, b *Batch, t *board.Tile, cascade bool) {
	center := t.Pos
	r.plainRemover.Remove(c, b, t, cascade)

	captured := c.res.Board.WithinRadius(center, c.cfg.AreaClearRadius)
	claimed := captured[:0]
	for _, ct := range captured {
		if c.res.Board.Claim(ct) {
			claimed = append(claimed, ct)
		}
	}
	if len(claimed) == 0 {
		c.log.Debug().Str("batch", b.ID).Uint64("tile", uint64(t.ID)).Msg("area clear captured nothing")
		return
	}
	c.dispatchCascade(b, claimed)
}

// defaultRemovers maps every kind to its removal capability
func defaultRemovers() map[board.Kind]Remover {
	return map[board.Kind]Remover{
		board.KindOrdinary:  plainRemover{},
		board.KindWildcard:  plainRemover{},
		board.KindAreaClear: areaClearRemover{},
	}
}
