package board

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/tile-chain/vmath"
)

func newTestBoard() *Board {
	return New(10, 10, 0.45, 0.5)
}

func TestBoard_AddAndRemove(t *testing.T) {
	b := newTestBoard()

	a := b.Add(TypeCherry, KindOrdinary, vmath.V2F(1, 1), StateLive)
	c := b.Add(TypeLemon, KindOrdinary, vmath.V2F(2, 1), StateSpawning)
	d := b.Add(TypeGrape, KindOrdinary, vmath.V2F(3, 1), StateLive)

	assert.NotEqual(t, a.ID, c.ID)
	assert.Equal(t, 3, b.Len())
	assert.Equal(t, 2, b.LiveCount())
	assert.Equal(t, 3, b.Population())

	require.True(t, b.Remove(a.ID))
	assert.False(t, b.Remove(a.ID), "second remove must report missing tile")
	assert.Equal(t, StateRemoved, a.State)
	assert.False(t, a.Present())

	got, ok := b.Get(d.ID)
	require.True(t, ok, "swap-remove must keep index consistent")
	assert.Same(t, d, got)
	assert.Equal(t, 1, b.LiveCount())
	assert.Equal(t, 2, b.Len())
}

func TestBoard_StateTransitions(t *testing.T) {
	b := newTestBoard()

	s := b.Add(TypeMint, KindOrdinary, vmath.V2F(1, 1), StateSpawning)
	assert.False(t, b.Claim(s), "spawning tile cannot be claimed")

	require.True(t, b.Activate(s))
	assert.False(t, b.Activate(s), "live tile cannot be activated again")
	assert.Equal(t, 1, b.LiveCount())

	require.True(t, b.Claim(s))
	assert.False(t, b.Claim(s), "claimed tile is no longer live")
	assert.Equal(t, 0, b.LiveCount())
	assert.Equal(t, 1, b.Count(StateClaimed))
	assert.Equal(t, 0, b.Population())

	require.True(t, b.Remove(s.ID))
	assert.Equal(t, 0, b.Count(StateClaimed))
}

func TestBoard_TileAt(t *testing.T) {
	b := newTestBoard()
	near := b.Add(TypeCherry, KindOrdinary, vmath.V2F(5, 5), StateLive)
	b.Add(TypeLemon, KindOrdinary, vmath.V2F(5.8, 5), StateLive)
	spawning := b.Add(TypeGrape, KindOrdinary, vmath.V2F(8, 8), StateSpawning)

	tests := []struct {
		name string
		pos  vmath.Vec2F
		want *Tile
	}{
		{"center", vmath.V2F(5, 5), near},
		{"nearest wins", vmath.V2F(5.3, 5), near},
		{"empty region", vmath.V2F(1, 1), nil},
		{"spawning ignored", spawning.Pos, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := b.TileAt(tt.pos)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			assert.Same(t, tt.want, got)
		})
	}
}

func TestBoard_Between(t *testing.T) {
	b := newTestBoard()
	from := b.Add(TypeCherry, KindOrdinary, vmath.V2F(0, 0), StateLive)
	to := b.Add(TypeCherry, KindOrdinary, vmath.V2F(6, 0), StateLive)
	far := b.Add(TypeLemon, KindOrdinary, vmath.V2F(4, 0.2), StateLive)
	nearHit := b.Add(TypeGrape, KindWildcard, vmath.V2F(2, -0.3), StateLive)
	b.Add(TypeMint, KindOrdinary, vmath.V2F(3, 3), StateLive)
	claimed := b.Add(TypeMint, KindOrdinary, vmath.V2F(3, 0), StateLive)
	require.True(t, b.Claim(claimed))
	b.Add(TypeMint, KindOrdinary, vmath.V2F(5, 0), StateSpawning)

	hits := b.Between(from, to)
	require.Len(t, hits, 2)
	assert.Same(t, nearHit, hits[0], "hits ordered along the segment")
	assert.Same(t, far, hits[1])
}

func TestBoard_Between_IgnoresTilesAtEndpoints(t *testing.T) {
	b := newTestBoard()
	from := b.Add(TypeCherry, KindOrdinary, vmath.V2F(4, 1), StateLive)
	to := b.Add(TypeCherry, KindOrdinary, vmath.V2F(4, 4), StateLive)
	b.Add(TypeLemon, KindOrdinary, vmath.V2F(4.3, 1), StateLive)   // beside from
	b.Add(TypeLemon, KindOrdinary, vmath.V2F(4, 0.7), StateLive)   // behind from
	b.Add(TypeLemon, KindOrdinary, vmath.V2F(4.2, 4.1), StateLive) // just past to
	mid := b.Add(TypeGrape, KindOrdinary, vmath.V2F(4.1, 2.5), StateLive)

	hits := b.Between(from, to)
	require.Len(t, hits, 1)
	assert.Same(t, mid, hits[0])
}

func TestBoard_WithinRadius(t *testing.T) {
	b := newTestBoard()
	center := vmath.V2F(5, 5)
	in1 := b.Add(TypeCherry, KindOrdinary, vmath.V2F(5, 6), StateLive)
	in2 := b.Add(TypeCherry, KindOrdinary, vmath.V2F(6.5, 5), StateLive)
	b.Add(TypeCherry, KindOrdinary, vmath.V2F(9, 9), StateLive)
	b.Add(TypeCherry, KindOrdinary, vmath.V2F(5, 5.5), StateSpawning)

	got := b.WithinRadius(center, 2)
	assert.ElementsMatch(t, []*Tile{in1, in2}, got)
}

func TestBoard_Nearest(t *testing.T) {
	b := newTestBoard()
	_, ok := b.Nearest(vmath.V2F(1, 1))
	assert.False(t, ok)

	b.Add(TypeCherry, KindOrdinary, vmath.V2F(4, 5), StateLive)
	dist, ok := b.Nearest(vmath.V2F(1, 1))
	require.True(t, ok)
	assert.InDelta(t, 5.0, dist, 1e-9)
}

func TestBoard_Reset(t *testing.T) {
	b := newTestBoard()
	a := b.Add(TypeCherry, KindOrdinary, vmath.V2F(1, 1), StateLive)
	b.Reset()

	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 0, b.Population())
	assert.Equal(t, StateRemoved, a.State)

	next := b.Add(TypeCherry, KindOrdinary, vmath.V2F(1, 1), StateLive)
	assert.Greater(t, uint64(next.ID), uint64(a.ID), "ids are never reused")
}

func TestTileType_Parse(t *testing.T) {
	for _, typ := range AllTypes() {
		parsed, ok := ParseTileType(typ.String())
		require.True(t, ok, typ.String())
		assert.Equal(t, typ, parsed)
	}
	_, ok := ParseTileType("durian")
	assert.False(t, ok)
	assert.Equal(t, "unknown", TypeCount.String())
}

func TestRender_Snapshot(t *testing.T) {
	b := New(6, 3, 0.45, 0.5)
	b.Add(TypeCherry, KindOrdinary, vmath.V2F(0.5, 0.5), StateLive)
	b.Add(TypeLemon, KindOrdinary, vmath.V2F(2.5, 0.5), StateLive)
	claimed := b.Add(TypeMint, KindOrdinary, vmath.V2F(3.5, 1.5), StateLive)
	b.Claim(claimed)
	b.Add(TypeGrape, KindAreaClear, vmath.V2F(4.2, 1.7), StateLive)
	b.Add(TypeBerry, KindWildcard, vmath.V2F(1.5, 2.5), StateLive)
	b.Add(TypePlum, KindOrdinary, vmath.V2F(5.5, 2.5), StateSpawning)

	g := goldie.New(t)
	g.Assert(t, "render_snapshot", []byte(b.Render()))
}
