package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/tile-chain/board"
)

func tile(typ board.TileType, kind board.Kind) *board.Tile {
	return &board.Tile{Type: typ, Kind: kind, State: board.StateLive}
}

func TestCanStart(t *testing.T) {
	assert.True(t, CanStart(board.KindOrdinary))
	assert.False(t, CanStart(board.KindAreaClear), "area clear never starts a chain")
	assert.False(t, CanStart(board.KindWildcard), "wildcard never starts a chain")
	assert.False(t, CanStart(board.Kind(42)))
}

func TestCanExtend(t *testing.T) {
	tagged := ChainState{Len: 1, HasTag: true, Tag: board.TypeGrape}
	withWildcard := ChainState{Len: 2, HasTag: true, Tag: board.TypeGrape, HasWildcard: true}
	untagged := ChainState{Len: 1}

	tests := []struct {
		name string
		st   ChainState
		t    *board.Tile
		want bool
	}{
		{"ordinary same tag", tagged, tile(board.TypeGrape, board.KindOrdinary), true},
		{"ordinary foreign tag", tagged, tile(board.TypeMint, board.KindOrdinary), false},
		{"ordinary after wildcard still matches", withWildcard, tile(board.TypeGrape, board.KindOrdinary), true},
		{"ordinary after wildcard foreign", withWildcard, tile(board.TypeLemon, board.KindOrdinary), false},
		{"wildcard with tag", tagged, tile(board.TypeMint, board.KindWildcard), true},
		{"wildcard without tag", untagged, tile(board.TypeMint, board.KindWildcard), false},
		{"area clear any tag", tagged, tile(board.TypeLemon, board.KindAreaClear), true},
		{"area clear after wildcard", withWildcard, tile(board.TypeGrape, board.KindAreaClear), false},
		{"nil tile", tagged, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanExtend(tt.st, tt.t))
		})
	}
}

func TestAccepts_FirstTile(t *testing.T) {
	empty := ChainState{}
	assert.True(t, Accepts(empty, tile(board.TypeCherry, board.KindOrdinary)))
	assert.False(t, Accepts(empty, tile(board.TypeCherry, board.KindAreaClear)))
	assert.False(t, Accepts(empty, tile(board.TypeCherry, board.KindWildcard)))
	assert.False(t, Accepts(empty, nil))
}

func TestBlocks(t *testing.T) {
	st := ChainState{Len: 2, HasTag: true, Tag: board.TypeCherry}

	tests := []struct {
		name string
		t    *board.Tile
		want bool
	}{
		{"foreign ordinary blocks", tile(board.TypeLemon, board.KindOrdinary), true},
		{"same tag ordinary passes", tile(board.TypeCherry, board.KindOrdinary), false},
		{"area clear transparent", tile(board.TypeLemon, board.KindAreaClear), false},
		{"wildcard transparent", tile(board.TypeLemon, board.KindWildcard), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Blocks(tt.t, st))
		})
	}
}

func TestTable(t *testing.T) {
	rows := Table()
	if assert.Len(t, rows, 3) {
		assert.Equal(t, board.KindOrdinary, rows[0].Kind)
		assert.False(t, rows[0].Transparent)
		assert.True(t, rows[1].Transparent)
		assert.True(t, rows[2].Transparent)
	}
}
