package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/tile-chain/config"
	"github.com/lixenwraith/tile-chain/status"
)

// singleFlavor makes every spawned tile an ordinary cherry so any nearby pair connects
func singleFlavor(seed int64) *config.Config {
	cfg := config.Default()
	cfg.Spawn.SpawnWeights = map[string]float64{"cherry": 1}
	cfg.Spawn.AreaClearChance = 0
	cfg.Spawn.WildcardChance = 0
	cfg.Session.Seed = seed
	return cfg
}

func TestRunSim_PlaysRequestedChains(t *testing.T) {
	cfg := singleFlavor(11)
	r := runSim(cfg, 5, time.Second, zerolog.Nop())

	assert.Equal(t, 5, r.Plays)
	assert.Equal(t, 5, r.Batches)
	assert.GreaterOrEqual(t, r.Removed, 15)
	assert.Positive(t, r.Score)
	assert.False(t, r.Expired)
	assert.GreaterOrEqual(t, r.LiveTiles, cfg.Spawn.MinPopulation, "floor holds after every settle")
	assert.Equal(t, cfg.Spawn.InitialPopulation+r.Removed, r.Spawned, "removed tiles are refilled one for one")
	assert.Zero(t, r.FloorSpawn)
	assert.Equal(t, int64(r.Score), r.Metrics[status.KeyScoreTotal])
	assert.NotEmpty(t, r.SessionID)
}

func TestRunSim_Deterministic(t *testing.T) {
	a := runSim(singleFlavor(5), 8, 500*time.Millisecond, zerolog.Nop())
	b := runSim(singleFlavor(5), 8, 500*time.Millisecond, zerolog.Nop())

	assert.Equal(t, a.Score, b.Score)
	assert.Equal(t, a.Removed, b.Removed)
	assert.Equal(t, a.Spawned, b.Spawned)
	assert.Equal(t, a.Elapsed, b.Elapsed)
	assert.Equal(t, a.Board, b.Board)
	assert.NotEqual(t, a.SessionID, b.SessionID)
}

func TestRunSim_StopsAtExpiry(t *testing.T) {
	cfg := singleFlavor(3)
	cfg.Session.Seconds = 2
	cfg.Score.TimeExtensionThreshold = 100

	r := runSim(cfg, 50, time.Second, zerolog.Nop())
	assert.True(t, r.Expired)
	assert.LessOrEqual(t, r.Plays, 3)
}

func TestWriteReport_Formats(t *testing.T) {
	r := &SimReport{
		SessionID: "s-1",
		Seed:      9,
		Plays:     2,
		Score:     12345,
		Combos:    map[string]int{"Great": 1},
		Metrics:   map[string]any{"clear.batches": int64(2)},
		Board:     "c.\n.c\n",
	}

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeReport(&buf, r, "text"))
		out := buf.String()
		assert.Contains(t, out, "12,345")
		assert.Contains(t, out, "Great x1")
		assert.True(t, strings.HasSuffix(out, "c.\n.c\n"))
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeReport(&buf, r, "json"))
		var got SimReport
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, 12345, got.Score)
		assert.Equal(t, "s-1", got.SessionID)
		assert.Equal(t, map[string]int{"Great": 1}, got.Combos)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeReport(&buf, r, "yaml"))
		var got map[string]any
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, 12345, got["score"])
		assert.Equal(t, "s-1", got["session_id"])
	})
}

func TestSimCommand_JSON(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"sim", "--plays", "2", "--seed", "3", "--format", "json"})
	require.NoError(t, cmd.Execute())

	var got SimReport
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, int64(3), got.Seed)
	assert.LessOrEqual(t, got.Plays, 2)
	assert.Empty(t, got.Board, "board only with --show-board")
}

func TestSimCommand_RejectsFormat(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"sim", "--format", "xml"})
	assert.ErrorContains(t, cmd.Execute(), "invalid format")
}

func TestConfigCommand(t *testing.T) {
	t.Run("defaults round trip", func(t *testing.T) {
		var out bytes.Buffer
		cmd := newRootCommand()
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"config"})
		require.NoError(t, cmd.Execute())

		cfg, err := config.Decode(&out, ".toml")
		require.NoError(t, err)
		assert.Equal(t, config.Default(), cfg)
	})

	t.Run("rules", func(t *testing.T) {
		var out bytes.Buffer
		cmd := newRootCommand()
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"config", "rules"})
		require.NoError(t, cmd.Execute())

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 4)
		assert.True(t, strings.HasPrefix(lines[0], "KIND"))
		assert.Contains(t, lines[1], "Ordinary")
		assert.Contains(t, lines[2], "AreaClear")
		assert.Contains(t, lines[3], "Wildcard")
	})
}
