// Package rules is the special tile resolver: a rule table over chain position
// (first tile or continuation) and tile kind, plus line-of-sight transparency
package rules

import (
	"github.com/lixenwraith/tile-chain/board"
)

// ChainState is the part of a chain the rules depend on
type ChainState struct {
	Len         int
	HasTag      bool
	Tag         board.TileType
	HasWildcard bool
}

// Position distinguishes the first tile from continuation tiles
type Position uint8

const (
	PositionFirst Position = iota
	PositionContinuation
)

func (p Position) String() string {
	if p == PositionFirst {
		return "first"
	}
	return "continuation"
}

// PositionOf returns the position a candidate would take in a chain with the given state
func PositionOf(st ChainState) Position {
	if st.Len == 0 {
		return PositionFirst
	}
	return PositionContinuation
}

type check func(st ChainState, t *board.Tile) bool

type kindRule struct {
	first        check
	continuation check
	transparent  bool // Never blocks line of sight

	firstDesc        string
	continuationDesc string
}

func never(ChainState, *board.Tile) bool { return false }

var table = map[board.Kind]kindRule{
	board.KindOrdinary: {
		first: func(ChainState, *board.Tile) bool { return true },
		continuation: func(st ChainState, t *board.Tile) bool {
			return !st.HasTag || t.Type == st.Tag
		},
		firstDesc:        "allowed, locks the matched tag",
		continuationDesc: "must match the locked tag",
	},
	board.KindAreaClear: {
		first: never,
		continuation: func(st ChainState, _ *board.Tile) bool {
			return !st.HasWildcard
		},
		transparent:      true,
		firstDesc:        "rejected",
		continuationDesc: "allowed unless the chain holds a wildcard, tag not checked",
	},
	board.KindWildcard: {
		first: never,
		continuation: func(st ChainState, _ *board.Tile) bool {
			return st.HasTag
		},
		transparent:      true,
		firstDesc:        "rejected",
		continuationDesc: "allowed once a tag is locked, does not define a tag",
	},
}

// CanStart reports whether a tile of kind may be the first member of a chain
func CanStart(kind board.Kind) bool {
	r, ok := table[kind]
	return ok && r.first(ChainState{}, nil)
}

// CanExtend reports whether t may continue a non-empty chain in state st
func CanExtend(st ChainState, t *board.Tile) bool {
	if t == nil {
		return false
	}
	r, ok := table[t.Kind]
	if !ok {
		return false
	}
	return r.continuation(st, t)
}

// Accepts dispatches to CanStart or CanExtend depending on chain length
func Accepts(st ChainState, t *board.Tile) bool {
	if t == nil {
		return false
	}
	if PositionOf(st) == PositionFirst {
		return CanStart(t.Kind)
	}
	return CanExtend(st, t)
}

// Blocks reports whether t, lying on the path between two chained tiles, breaks the connection
// Special kinds are transparent; ordinary tiles block unless they carry the matched tag
func Blocks(t *board.Tile, st ChainState) bool {
	if t == nil {
		return false
	}
	r, ok := table[t.Kind]
	if ok && r.transparent {
		return false
	}
	return !st.HasTag || t.Type != st.Tag
}

// Rule is a printable row of the rule table
type Rule struct {
	Kind         board.Kind
	First        string
	Continuation string
	Transparent  bool
}

// Table returns the rule table in kind order
func Table() []Rule {
	kinds := []board.Kind{board.KindOrdinary, board.KindAreaClear, board.KindWildcard}
	rows := make([]Rule, 0, len(kinds))
	for _, k := range kinds {
		r := table[k]
		rows = append(rows, Rule{
			Kind:         k,
			First:        r.firstDesc,
			Continuation: r.continuationDesc,
			Transparent:  r.transparent,
		})
	}
	return rows
}
