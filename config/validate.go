package config

import (
	"fmt"

	"github.com/lixenwraith/tile-chain/board"
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...)
}

// Validate checks ranges and cross-field constraints, the first violation is returned
func (c *Config) Validate() error {
	s := c.Score
	switch {
	case s.BasePerTile < 0 || s.LengthBonusPerUnit < 0:
		return invalid("base_per_tile and length_bonus_per_unit must be non-negative")
	case s.ComboTier2 < 1:
		return invalid("combo_tier2 must be at least 1, got %d", s.ComboTier2)
	case s.ComboTier3 <= s.ComboTier2:
		return invalid("combo_tier3 (%d) must exceed combo_tier2 (%d)", s.ComboTier3, s.ComboTier2)
	case s.ComboMult2 < 1 || s.ComboMult3 < s.ComboMult2:
		return invalid("combo multipliers must satisfy 1 <= combo_mult2 <= combo_mult3")
	case s.TimeExtensionThreshold < 1:
		return invalid("time_extension_threshold must be at least 1")
	case s.TimeExtensionSeconds < 0 || s.TimeExtensionPoints < 0:
		return invalid("time extension seconds and points must be non-negative")
	}

	cl := c.Clear
	switch {
	case cl.AreaClearRadius <= 0:
		return invalid("area_clear_radius must be positive, got %g", cl.AreaClearRadius)
	case cl.AreaClearBonus < 0:
		return invalid("area_clear_bonus must be non-negative")
	case cl.RemoveDelay < 0 || cl.CascadeGrace < 0:
		return invalid("remove_delay and cascade_grace must be non-negative")
	case cl.CascadeMode != CascadeModeJoin && cl.CascadeMode != CascadeModeWindow:
		return invalid("cascade_mode must be %q or %q, got %q", CascadeModeJoin, CascadeModeWindow, cl.CascadeMode)
	}

	sp := c.Spawn
	switch {
	case sp.MinPopulation < 0 || sp.InitialPopulation < 0:
		return invalid("population counts must be non-negative")
	case sp.SpawnInterval < 0 || sp.PourDuration < 0:
		return invalid("spawn_interval and pour_duration must be non-negative")
	case sp.AreaClearChance < 0 || sp.WildcardChance < 0 || sp.AreaClearChance+sp.WildcardChance > 1:
		return invalid("special chances must be non-negative and sum to at most 1")
	case sp.MaxPlacementTries < 1:
		return invalid("max_placement_tries must be at least 1")
	}
	for name, w := range sp.SpawnWeights {
		if _, ok := board.ParseTileType(name); !ok {
			return invalid("spawn_weights: unknown flavor %q", name)
		}
		if w < 0 {
			return invalid("spawn_weights: %s weight %g is negative", name, w)
		}
	}

	b := c.Board
	switch {
	case b.Width <= 0 || b.Height <= 0:
		return invalid("board width and height must be positive")
	case b.TileRadius <= 0 || b.PickRadius <= 0:
		return invalid("tile_radius and pick_radius must be positive")
	case b.TileSpacing < 2*b.TileRadius:
		return invalid("tile_spacing %g must be at least twice tile_radius %g", b.TileSpacing, b.TileRadius)
	}

	if c.Session.Seconds < 1 {
		return invalid("session_seconds must be at least 1")
	}
	return nil
}
