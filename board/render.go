package board

import (
	"math"
	"strings"
)

// Glyphs used by the text snapshot
const (
	GlyphEmpty     = '.'
	GlyphAreaClear = '*'
	GlyphWildcard  = '?'
	GlyphSpawning  = '+'
	GlyphClaimed   = '~'
)

// Glyph returns the rune a text renderer shows for t
func (t *Tile) Glyph() rune {
	switch t.State {
	case StateSpawning:
		return GlyphSpawning
	case StateClaimed:
		return GlyphClaimed
	}
	switch t.Kind {
	case KindAreaClear:
		return GlyphAreaClear
	case KindWildcard:
		return GlyphWildcard
	}
	return t.Type.Glyph()
}

// Render returns a one-rune-per-cell snapshot of the board, one line per unit row
// Tiles are bucketed by the floor of their position; later IDs overwrite earlier ones
func (b *Board) Render() string {
	cols := int(math.Ceil(b.width))
	rows := int(math.Ceil(b.height))
	if cols <= 0 || rows <= 0 {
		return ""
	}

	grid := make([][]rune, rows)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(string(GlyphEmpty), cols))
	}

	for _, t := range b.Tiles() {
		x, y := int(math.Floor(t.Pos.X)), int(math.Floor(t.Pos.Y))
		if x < 0 || x >= cols || y < 0 || y >= rows {
			continue
		}
		grid[y][x] = t.Glyph()
	}

	var sb strings.Builder
	sb.Grow(rows * (cols + 1))
	for _, line := range grid {
		sb.WriteString(string(line))
		sb.WriteByte('\n')
	}
	return sb.String()
}
