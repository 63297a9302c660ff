package board

import (
	"math"
	"sort"

	"github.com/lixenwraith/tile-chain/vmath"
)

// Board owns the tile set and answers spatial queries
// Mutations happen only at scheduler step boundaries, so no locking is used;
// callers must not touch a Board from outside the scheduler's pump goroutine
type Board struct {
	width, height float64
	tileRadius    float64
	pickRadius    float64

	tiles  []*Tile          // Dense storage, swap-remove keeps it packed
	index  map[TileID]int   // ID → position in tiles
	counts [StateRemoved]int // Per-state counters, Removed tiles are not stored
	nextID TileID
}

// New creates an empty board with the given extents and radii
func New(width, height, tileRadius, pickRadius float64) *Board {
	return &Board{
		width:      width,
		height:     height,
		tileRadius: tileRadius,
		pickRadius: pickRadius,
		index:      make(map[TileID]int),
	}
}

// Width returns the board width in board units
func (b *Board) Width() float64 {
	return b.width
}

// Height returns the board height in board units
func (b *Board) Height() float64 {
	return b.height
}

// TileRadius returns the collision radius used for ray queries
func (b *Board) TileRadius() float64 {
	return b.tileRadius
}

// Contains reports whether pos lies within the board extents
func (b *Board) Contains(pos vmath.Vec2F) bool {
	return pos.X >= 0 && pos.X < b.width && pos.Y >= 0 && pos.Y < b.height
}

// Add creates a tile in the given state and returns it
func (b *Board) Add(typ TileType, kind Kind, pos vmath.Vec2F, state State) *Tile {
	if state == StateRemoved {
		state = StateLive
	}
	b.nextID++
	t := &Tile{
		ID:    b.nextID,
		Type:  typ,
		Kind:  kind,
		Pos:   pos,
		State: state,
	}
	b.index[t.ID] = len(b.tiles)
	b.tiles = append(b.tiles, t)
	b.counts[state]++
	return t
}

// Get returns the tile with id if it is still on the board
func (b *Board) Get(id TileID) (*Tile, bool) {
	idx, ok := b.index[id]
	if !ok {
		return nil, false
	}
	return b.tiles[idx], true
}

// setState moves a present tile between states keeping counters in sync
func (b *Board) setState(t *Tile, state State) {
	b.counts[t.State]--
	t.State = state
	b.counts[state]++
}

// Claim captures a live tile for removal, returns false if the tile is not live
func (b *Board) Claim(t *Tile) bool {
	if !t.Live() {
		return false
	}
	if _, ok := b.index[t.ID]; !ok {
		return false
	}
	b.setState(t, StateClaimed)
	return true
}

// Activate makes a spawning tile interactive, returns false if it was not spawning
func (b *Board) Activate(t *Tile) bool {
	if t == nil || t.State != StateSpawning {
		return false
	}
	if _, ok := b.index[t.ID]; !ok {
		return false
	}
	b.setState(t, StateLive)
	return true
}

// Remove destroys a tile, returns false if it was already gone
// O(1), swap-remove with the last stored tile
func (b *Board) Remove(id TileID) bool {
	idx, ok := b.index[id]
	if !ok {
		return false
	}

	t := b.tiles[idx]
	b.counts[t.State]--
	t.State = StateRemoved

	last := len(b.tiles) - 1
	if idx < last {
		b.tiles[idx] = b.tiles[last]
		b.index[b.tiles[idx].ID] = idx
	}
	b.tiles[last] = nil
	b.tiles = b.tiles[:last]
	delete(b.index, id)
	return true
}

// TileAt returns the live tile whose pick circle contains pos, nearest center wins
func (b *Board) TileAt(pos vmath.Vec2F) *Tile {
	var best *Tile
	bestDist := b.pickRadius * b.pickRadius
	for _, t := range b.tiles {
		if t.State != StateLive {
			continue
		}
		d := vmath.V2FDistSq(pos, t.Pos)
		if d <= bestDist {
			best, bestDist = t, d
		}
	}
	return best
}

// Between returns live tiles whose collision circle intersects the segment from a to b,
// excluding a and b themselves, ordered by distance along the segment
// Tiles whose center projects at or beyond either endpoint are not between the two
func (b *Board) Between(from, to *Tile) []*Tile {
	type hit struct {
		t    *Tile
		dist float64
	}
	var hits []hit
	for _, t := range b.tiles {
		if t.State != StateLive || t.ID == from.ID || t.ID == to.ID {
			continue
		}
		if proj := vmath.SegmentProjection(from.Pos, to.Pos, t.Pos); proj <= 0 || proj >= 1 {
			continue
		}
		param, ok := vmath.SegmentCircleHit(from.Pos, to.Pos, t.Pos, b.tileRadius)
		if !ok {
			continue
		}
		hits = append(hits, hit{t: t, dist: param})
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].dist < hits[j].dist })

	result := make([]*Tile, len(hits))
	for i, h := range hits {
		result[i] = h.t
	}
	return result
}

// WithinRadius returns live tiles whose center lies within radius of center
func (b *Board) WithinRadius(center vmath.Vec2F, radius float64) []*Tile {
	var result []*Tile
	for _, t := range b.tiles {
		if t.State == StateLive && vmath.WithinRadius(t.Pos, center, radius) {
			result = append(result, t)
		}
	}
	return result
}

// Nearest returns the distance from pos to the closest present tile center, ok false on an empty board
func (b *Board) Nearest(pos vmath.Vec2F) (dist float64, ok bool) {
	best := -1.0
	for _, t := range b.tiles {
		d := vmath.V2FDistSq(pos, t.Pos)
		if best < 0 || d < best {
			best = d
		}
	}
	if best < 0 {
		return 0, false
	}
	return math.Sqrt(best), true
}

// Count returns the number of stored tiles in state
func (b *Board) Count(state State) int {
	if state >= StateRemoved {
		return 0
	}
	return b.counts[state]
}

// LiveCount returns the number of interactive tiles
func (b *Board) LiveCount() int {
	return b.counts[StateLive]
}

// Population returns live plus spawning tiles, the tiles that will remain on the board
func (b *Board) Population() int {
	return b.counts[StateLive] + b.counts[StateSpawning]
}

// Len returns the number of stored tiles in any state
func (b *Board) Len() int {
	return len(b.tiles)
}

// Tiles returns a snapshot of stored tiles ordered by ID
func (b *Board) Tiles() []*Tile {
	result := make([]*Tile, len(b.tiles))
	copy(result, b.tiles)
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// Reset removes every tile, IDs keep increasing across resets
func (b *Board) Reset() {
	for _, t := range b.tiles {
		t.State = StateRemoved
	}
	b.tiles = b.tiles[:0]
	b.index = make(map[TileID]int)
	b.counts = [StateRemoved]int{}
}
