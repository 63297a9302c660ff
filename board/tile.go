package board

import "github.com/lixenwraith/tile-chain/vmath"

// TileID identifies a tile for the lifetime of a session, never reused
type TileID uint64

// TileType is the flavor tag chains match on
type TileType uint8

const (
	TypeCherry TileType = iota
	TypeLemon
	TypeGrape
	TypeMint
	TypeBerry
	TypeOrange
	TypePlum

	// TypeCount is the number of flavors, not a valid type
	TypeCount
)

var typeNames = [TypeCount]string{"cherry", "lemon", "grape", "mint", "berry", "orange", "plum"}

func (t TileType) String() string {
	if t >= TypeCount {
		return "unknown"
	}
	return typeNames[t]
}

// Valid reports whether t is one of the enumerated flavors
func (t TileType) Valid() bool {
	return t < TypeCount
}

// Glyph is the single rune used by text renderers
func (t TileType) Glyph() rune {
	if t >= TypeCount {
		return '?'
	}
	return rune(typeNames[t][0])
}

// ParseTileType resolves a flavor name as used in configuration files
func ParseTileType(name string) (TileType, bool) {
	for i, n := range typeNames {
		if n == name {
			return TileType(i), true
		}
	}
	return 0, false
}

// AllTypes returns the flavors in enumeration order
func AllTypes() []TileType {
	types := make([]TileType, TypeCount)
	for i := range types {
		types[i] = TileType(i)
	}
	return types
}

// Kind is the special behavior variant of a tile
type Kind uint8

const (
	KindOrdinary Kind = iota
	KindAreaClear
	KindWildcard
)

func (k Kind) String() string {
	switch k {
	case KindOrdinary:
		return "Ordinary"
	case KindAreaClear:
		return "AreaClear"
	case KindWildcard:
		return "Wildcard"
	default:
		return "Unknown"
	}
}

// Special reports whether the kind is exempt from tag matching
func (k Kind) Special() bool {
	return k == KindAreaClear || k == KindWildcard
}

// State is the liveness lifecycle of a tile
// Spawning → Live → Claimed → Removed; Live is the only interactive state
type State uint8

const (
	StateSpawning State = iota
	StateLive
	StateClaimed
	StateRemoved
)

func (s State) String() string {
	switch s {
	case StateSpawning:
		return "Spawning"
	case StateLive:
		return "Live"
	case StateClaimed:
		return "Claimed"
	case StateRemoved:
		return "Removed"
	default:
		return "Unknown"
	}
}

// Tile is a single board piece
type Tile struct {
	ID    TileID
	Type  TileType
	Kind  Kind
	Pos   vmath.Vec2F
	State State
}

// Live reports whether the tile may join chains and be captured by cascades
func (t *Tile) Live() bool {
	return t != nil && t.State == StateLive
}

// Present reports whether the tile still occupies the board
func (t *Tile) Present() bool {
	return t != nil && t.State != StateRemoved
}
