// Package config holds the tunable game surface and reads it from TOML or YAML
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/tile-chain/board"
	"github.com/lixenwraith/tile-chain/parameter"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

// CascadeMode selects how a clearance batch waits for its area-clear cascades
type CascadeMode string

const (
	// CascadeModeJoin waits until every cascade of the batch has finished
	CascadeModeJoin CascadeMode = "join"
	// CascadeModeWindow waits CascadeGrace and forwards late reports as standalone refills
	CascadeModeWindow CascadeMode = "window"
)

// Duration is a time.Duration written as a Go duration string ("60ms", "1.5s")
type Duration time.Duration

func (d Duration) D() time.Duration { return time.Duration(d) }

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return fmt.Errorf("duration %q: %w", string(b), err)
	}
	*d = Duration(v)
	return nil
}

type Score struct {
	BasePerTile        int `toml:"base_per_tile" yaml:"base_per_tile"`
	LengthBonusPerUnit int `toml:"length_bonus_per_unit" yaml:"length_bonus_per_unit"`
	ComboTier2         int `toml:"combo_tier2" yaml:"combo_tier2"`
	ComboTier3         int `toml:"combo_tier3" yaml:"combo_tier3"`
	ComboMult2         int `toml:"combo_mult2" yaml:"combo_mult2"`
	ComboMult3         int `toml:"combo_mult3" yaml:"combo_mult3"`

	TimeExtensionThreshold int `toml:"time_extension_threshold" yaml:"time_extension_threshold"`
	TimeExtensionSeconds   int `toml:"time_extension_seconds" yaml:"time_extension_seconds"`
	TimeExtensionPoints    int `toml:"time_extension_points" yaml:"time_extension_points"`
}

type Clear struct {
	AreaClearRadius float64     `toml:"area_clear_radius" yaml:"area_clear_radius"`
	AreaClearBonus  int         `toml:"area_clear_bonus" yaml:"area_clear_bonus"`
	RemoveDelay     Duration    `toml:"remove_delay" yaml:"remove_delay"`
	CascadeGrace    Duration    `toml:"cascade_grace" yaml:"cascade_grace"`
	CascadeMode     CascadeMode `toml:"cascade_mode" yaml:"cascade_mode"`
}

type Spawn struct {
	MinPopulation     int                `toml:"min_population" yaml:"min_population"`
	InitialPopulation int                `toml:"initial_population" yaml:"initial_population"`
	SpawnWeights      map[string]float64 `toml:"spawn_weights" yaml:"spawn_weights"`
	SpawnInterval     Duration           `toml:"spawn_interval" yaml:"spawn_interval"`
	PourDuration      Duration           `toml:"pour_duration" yaml:"pour_duration"`
	AreaClearChance   float64            `toml:"area_clear_chance" yaml:"area_clear_chance"`
	WildcardChance    float64            `toml:"wildcard_chance" yaml:"wildcard_chance"`
	MaxPlacementTries int                `toml:"max_placement_tries" yaml:"max_placement_tries"`
}

type Board struct {
	Width       float64 `toml:"width" yaml:"width"`
	Height      float64 `toml:"height" yaml:"height"`
	TileRadius  float64 `toml:"tile_radius" yaml:"tile_radius"`
	PickRadius  float64 `toml:"pick_radius" yaml:"pick_radius"`
	TileSpacing float64 `toml:"tile_spacing" yaml:"tile_spacing"`
}

type Session struct {
	Seconds int `toml:"session_seconds" yaml:"session_seconds"`
	// Seed feeds the spawn RNG, 0 seeds from the wall clock
	Seed int64 `toml:"seed" yaml:"seed"`
}

// Config is the complete tunable surface of a session
type Config struct {
	Score   Score   `toml:"score" yaml:"score"`
	Clear   Clear   `toml:"clear" yaml:"clear"`
	Spawn   Spawn   `toml:"spawn" yaml:"spawn"`
	Board   Board   `toml:"board" yaml:"board"`
	Session Session `toml:"session" yaml:"session"`
}

// Default returns the built-in configuration
func Default() *Config {
	weights := make(map[string]float64, board.TypeCount)
	for _, t := range board.AllTypes() {
		weights[t.String()] = parameter.DefaultSpawnWeight
	}

	return &Config{
		Score: Score{
			BasePerTile:            parameter.BasePerTile,
			LengthBonusPerUnit:     parameter.LengthBonusPerUnit,
			ComboTier2:             parameter.ComboTier2,
			ComboTier3:             parameter.ComboTier3,
			ComboMult2:             parameter.ComboMult2,
			ComboMult3:             parameter.ComboMult3,
			TimeExtensionThreshold: parameter.TimeExtensionThreshold,
			TimeExtensionSeconds:   parameter.TimeExtensionSeconds,
			TimeExtensionPoints:    parameter.TimeExtensionPoints,
		},
		Clear: Clear{
			AreaClearRadius: parameter.AreaClearRadius,
			AreaClearBonus:  parameter.AreaClearBonus,
			RemoveDelay:     Duration(parameter.RemoveDelay),
			CascadeGrace:    Duration(parameter.CascadeGrace),
			CascadeMode:     CascadeMode(parameter.CascadeMode),
		},
		Spawn: Spawn{
			MinPopulation:     parameter.MinPopulation,
			InitialPopulation: parameter.InitialPopulation,
			SpawnWeights:      weights,
			SpawnInterval:     Duration(parameter.SpawnInterval),
			PourDuration:      Duration(parameter.PourDuration),
			AreaClearChance:   parameter.AreaClearChance,
			WildcardChance:    parameter.WildcardChance,
			MaxPlacementTries: parameter.MaxPlacementTries,
		},
		Board: Board{
			Width:       parameter.BoardWidth,
			Height:      parameter.BoardHeight,
			TileRadius:  parameter.TileRadius,
			PickRadius:  parameter.PickRadius,
			TileSpacing: parameter.TileSpacing,
		},
		Session: Session{
			Seconds: parameter.SessionSeconds,
		},
	}
}

// Load reads path over the defaults, format is chosen by extension
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Decode(f, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads a TOML (".toml") or YAML (".yaml", ".yml") document over the defaults and validates it
func Decode(r io.Reader, ext string) (*Config, error) {
	cfg := Default()

	switch strings.ToLower(ext) {
	case ".toml":
		dec := toml.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// EncodeTOML writes cfg as a TOML document
func EncodeTOML(w io.Writer, cfg *Config) error {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode toml: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// WeightTable returns spawn weights indexed by tile type, missing flavors weigh 0
// An empty weight map yields a nil table, which disables spawning
func (c *Config) WeightTable() []float64 {
	if len(c.Spawn.SpawnWeights) == 0 {
		return nil
	}
	table := make([]float64, board.TypeCount)
	for name, w := range c.Spawn.SpawnWeights {
		if t, ok := board.ParseTileType(name); ok {
			table[t] = w
		}
	}
	return table
}
