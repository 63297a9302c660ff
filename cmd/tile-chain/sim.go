package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/tile-chain/board"
	"github.com/lixenwraith/tile-chain/config"
	"github.com/lixenwraith/tile-chain/engine"
	"github.com/lixenwraith/tile-chain/event"
	"github.com/lixenwraith/tile-chain/game"
	"github.com/lixenwraith/tile-chain/parameter"
	"github.com/lixenwraith/tile-chain/status"
	"github.com/lixenwraith/tile-chain/vmath"
)

var simFormats = []string{"text", "json", "yaml"}

var simEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// simOptions holds flags for the sim command
type simOptions struct {
	*rootOptions
	Plays     int
	Seed      int64
	Step      time.Duration
	Format    string
	ShowBoard bool
}

// SimReport summarizes a headless session
type SimReport struct {
	SessionID  string         `json:"session_id" yaml:"session_id"`
	Seed       int64          `json:"seed" yaml:"seed"`
	Plays      int            `json:"plays" yaml:"plays"`
	Batches    int            `json:"batches" yaml:"batches"`
	Score      int            `json:"score" yaml:"score"`
	Removed    int            `json:"removed" yaml:"removed"`
	Cascades   int            `json:"cascades" yaml:"cascades"`
	Spawned    int            `json:"spawned" yaml:"spawned"`
	Combos     map[string]int `json:"combos" yaml:"combos"`
	Extensions int            `json:"time_extensions" yaml:"time_extensions"`
	FloorSpawn int            `json:"floor_spawned" yaml:"floor_spawned"`
	LiveTiles  int            `json:"live_tiles" yaml:"live_tiles"`
	Elapsed    time.Duration  `json:"elapsed_ns" yaml:"elapsed"`
	Expired    bool           `json:"expired" yaml:"expired"`
	Metrics    map[string]any `json:"metrics" yaml:"metrics"`
	Board      string         `json:"board,omitempty" yaml:"board,omitempty"`
}

func newSimCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &simOptions{rootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sim",
		Short: "Play a headless session with random chains",
		Long: `Play a deterministic headless session on a virtual clock.

A bot drags random valid chains, the clock advances by --step after each
release, and the session report is printed once every batch has settled.

Example:
  tile-chain sim --plays 50 --seed 42 --format json`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			for _, f := range simFormats {
				if f == opts.Format {
					return nil
				}
			}
			return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, simFormats)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("seed") || cfg.Session.Seed == 0 {
				cfg.Session.Seed = opts.Seed
			}

			report := runSim(cfg, opts.Plays, opts.Step, opts.logger)
			if !opts.ShowBoard {
				report.Board = ""
			}
			return writeReport(cmd.OutOrStdout(), report, opts.Format)
		},
	}

	cmd.Flags().IntVarP(&opts.Plays, "plays", "n", 20, "number of chains to play")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 1, "random seed for spawns and the bot")
	cmd.Flags().DurationVar(&opts.Step, "step", time.Second, "virtual time between releases")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "text", "report format (text|json|yaml)")
	cmd.Flags().BoolVar(&opts.ShowBoard, "show-board", false, "include the final board snapshot")

	return cmd
}

// simTally counts listener callbacks the metric registry does not cover
type simTally struct {
	event.NopListener
	combos     map[string]int
	extensions int
	floor      int
}

func (t *simTally) OnComboReached(tier string, _ int) { t.combos[tier]++ }
func (t *simTally) OnTimeExtensionGranted(int)        { t.extensions++ }
func (t *simTally) OnMinimumPopulationEnforced(d int) { t.floor += d }

// runSim plays up to plays chains and drains the session before reporting
func runSim(cfg *config.Config, plays int, step time.Duration, logger zerolog.Logger) *SimReport {
	clock := engine.NewMockTimeProvider(simEpoch)
	reg := status.NewRegistry()
	sess := game.NewSession(cfg, game.Options{Clock: clock, Logger: logger, Status: reg})
	defer sess.Stop()

	tally := &simTally{combos: make(map[string]int)}
	sess.Register(event.NewListenerHandler(tally))

	sess.Start()
	sess.Dispatch()

	b := &bot{sess: sess, rng: rand.New(rand.NewSource(cfg.Session.Seed))}
	played, misses := 0, 0
	for played < plays && !sess.Expired() && misses < simMaxMisses {
		if b.play() {
			played++
			misses = 0
			sess.Scheduler().Advance(step)
		} else {
			misses++
			sess.Scheduler().Advance(simMissStep)
		}
		sess.Dispatch()
	}

	for i := 0; i < simDrainSteps && !sess.Idle(); i++ {
		sess.Scheduler().Advance(simMissStep)
	}
	sess.Dispatch()

	return &SimReport{
		SessionID:  sess.ID,
		Seed:       cfg.Session.Seed,
		Plays:      played,
		Batches:    int(reg.Ints.Get(status.KeyClearBatches).Load()),
		Score:      sess.Score.Total(),
		Removed:    int(reg.Ints.Get(status.KeyClearRemoved).Load()),
		Cascades:   int(reg.Ints.Get(status.KeyCascades).Load()),
		Spawned:    sess.Spawn.Spawned(),
		Combos:     tally.combos,
		Extensions: tally.extensions,
		FloorSpawn: tally.floor,
		LiveTiles:  sess.Board().LiveCount(),
		Elapsed:    clock.Elapsed(),
		Expired:    sess.Expired(),
		Metrics:    reg.Snapshot(),
		Board:      sess.Board().Render(),
	}
}

const (
	simMaxMisses  = 20
	simDrainSteps = 200
	simMissStep   = 250 * time.Millisecond
	simCandidates = 8
	simStarts     = 16
)

// bot drags chains through the session input surface, so every rule check is the real one
type bot struct {
	sess *game.Session
	rng  *rand.Rand
}

// play tries a few start tiles and releases the first chain long enough to clear
func (b *bot) play() bool {
	live := b.liveTiles()
	b.rng.Shuffle(len(live), func(i, j int) { live[i], live[j] = live[j], live[i] })

	target := parameter.MinChainLength + b.rng.Intn(7)
	for i, start := range live {
		if i == simStarts {
			break
		}
		b.sess.OnPress(start.Pos)
		chain := b.sess.Chain.Chain()
		if chain.Len() == 0 {
			continue
		}

		cur := start
		for chain.Len() < target {
			next := b.extend(cur, live)
			if next == nil {
				break
			}
			cur = next
		}
		if chain.Len() >= parameter.MinChainLength {
			return b.sess.OnRelease(cur.Pos) != nil
		}
	}
	if len(live) > 0 {
		b.sess.OnRelease(live[0].Pos)
	}
	return false
}

// extend holds over the nearest candidates until one joins the chain
func (b *bot) extend(cur *board.Tile, live []*board.Tile) *board.Tile {
	chain := b.sess.Chain.Chain()
	cands := make([]*board.Tile, 0, len(live))
	for _, t := range live {
		if t.Live() && !chain.Contains(t.ID) {
			cands = append(cands, t)
		}
	}
	sort.Slice(cands, func(i, j int) bool {
		return vmath.V2FDistSq(cur.Pos, cands[i].Pos) < vmath.V2FDistSq(cur.Pos, cands[j].Pos)
	})

	for i, t := range cands {
		if i == simCandidates {
			break
		}
		before := chain.Len()
		b.sess.OnHold(t.Pos)
		if chain.Len() > before {
			return t
		}
	}
	return nil
}

func (b *bot) liveTiles() []*board.Tile {
	var live []*board.Tile
	for _, t := range b.sess.Board().Tiles() {
		if t.Live() {
			live = append(live, t)
		}
	}
	return live
}

func writeReport(w io.Writer, r *SimReport, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		return enc.Close()
	default:
		return writeTextReport(w, r)
	}
}

func writeTextReport(w io.Writer, r *SimReport) error {
	p := message.NewPrinter(language.English)
	p.Fprintf(w, "session     %s (seed %d)\n", r.SessionID, r.Seed)
	p.Fprintf(w, "score       %d\n", r.Score)
	p.Fprintf(w, "plays       %d chains, %d batches\n", r.Plays, r.Batches)
	p.Fprintf(w, "removed     %d tiles, %d cascades\n", r.Removed, r.Cascades)
	p.Fprintf(w, "spawned     %d tiles, %d by floor\n", r.Spawned, r.FloorSpawn)
	p.Fprintf(w, "live        %d tiles\n", r.LiveTiles)
	p.Fprintf(w, "extensions  %d\n", r.Extensions)

	tiers := make([]string, 0, len(r.Combos))
	for tier := range r.Combos {
		tiers = append(tiers, tier)
	}
	sort.Strings(tiers)
	for _, tier := range tiers {
		p.Fprintf(w, "combo       %s x%d\n", tier, r.Combos[tier])
	}

	p.Fprintf(w, "elapsed     %v (expired %t)\n", r.Elapsed, r.Expired)
	if r.Board != "" {
		if _, err := fmt.Fprintf(w, "\n%s", r.Board); err != nil {
			return err
		}
	}
	return nil
}
