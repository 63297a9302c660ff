package systems

import (
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/tile-chain/board"
	"github.com/lixenwraith/tile-chain/config"
	"github.com/lixenwraith/tile-chain/engine"
	"github.com/lixenwraith/tile-chain/event"
	"github.com/lixenwraith/tile-chain/status"
	"github.com/lixenwraith/tile-chain/vmath"
)

// SpawnSystem creates tiles: paced pour batches for refills and immediate top-ups for the population floor
//
// Ledger:
//   - owed accumulates refill requests, a running batch drains it whole
//   - at most one batch animates; requests arriving mid-pour merge into owed
//   - floor top-ups are credited against owed so replaced tiles are not spawned twice
type SpawnSystem struct {
	res *Resources
	log zerolog.Logger
	cfg config.Spawn
	rng *rand.Rand

	weights     []float64
	totalWeight float64

	owed      int
	animating bool
	spawned   int

	statBatches *atomic.Int64
	statSpawned *atomic.Int64
	statOwed    *atomic.Int64
	statFloor   *atomic.Int64
}

// NewSpawnSystem creates a spawn system drawing from rng
// Weights come from the config spawn table indexed by tile type
func NewSpawnSystem(res *Resources, rng *rand.Rand) *SpawnSystem {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s := &SpawnSystem{
		res: res,
		log: res.logger("spawn"),
		cfg: res.Config.Spawn,
		rng: rng,

		statBatches: res.Status.Ints.Get(status.KeySpawnBatches),
		statSpawned: res.Status.Ints.Get(status.KeySpawned),
		statOwed:    res.Status.Ints.Get(status.KeySpawnOwed),
		statFloor:   res.Status.Ints.Get(status.KeyFloorEnforced),
	}
	s.SetWeights(res.Config.WeightTable())
	return s
}

// Init clears the ledger for a new session
// Only valid once the scheduler running a previous pour was stopped
func (s *SpawnSystem) Init() {
	s.owed = 0
	s.animating = false
	s.spawned = 0
	s.statOwed.Store(0)
}

// SetWeights replaces the weight table, index is board.TileType
func (s *SpawnSystem) SetWeights(weights []float64) {
	if len(weights) > int(board.TypeCount) {
		weights = weights[:board.TypeCount]
	}
	s.weights = append(s.weights[:0], weights...)
	s.totalWeight = 0
	for _, w := range s.weights {
		if w > 0 {
			s.totalWeight += w
		}
	}
	if len(s.weights) == 0 {
		s.log.Warn().Msg("spawn weight table is empty, spawning disabled")
	} else if s.totalWeight == 0 {
		s.log.Warn().Msg("spawn weights sum to zero, falling back to uniform selection")
	}
}

// Owed returns tiles requested but not yet created
func (s *SpawnSystem) Owed() int {
	return s.owed
}

// Animating reports whether a pour batch is running
func (s *SpawnSystem) Animating() bool {
	return s.animating
}

// Spawned returns tiles created since Init
func (s *SpawnSystem) Spawned() int {
	return s.spawned
}

// PickType draws a tile type by weight, ok is false when the table is empty
func (s *SpawnSystem) PickType() (board.TileType, bool) {
	n := len(s.weights)
	if n == 0 {
		return 0, false
	}
	if s.totalWeight <= 0 {
		return board.TileType(s.rng.Intn(n)), true
	}

	draw := s.rng.Float64() * s.totalWeight
	cumulative := 0.0
	for i, w := range s.weights {
		if w <= 0 {
			continue
		}
		cumulative += w
		if cumulative > draw {
			return board.TileType(i), true
		}
	}
	// Float rounding at the top edge, last positive weight wins
	for i := n - 1; i >= 0; i-- {
		if s.weights[i] > 0 {
			return board.TileType(i), true
		}
	}
	return board.TileType(s.rng.Intn(n)), true
}

func (s *SpawnSystem) pickKind() board.Kind {
	r := s.rng.Float64()
	switch {
	case r < s.cfg.AreaClearChance:
		return board.KindAreaClear
	case r < s.cfg.AreaClearChance+s.cfg.WildcardChance:
		return board.KindWildcard
	default:
		return board.KindOrdinary
	}
}

// place picks a position inside the board keeping tile spacing when possible
// The last candidate is accepted when every try collides
func (s *SpawnSystem) place() vmath.Vec2F {
	b := s.res.Board
	margin := b.TileRadius()
	spanX := b.Width() - 2*margin
	spanY := b.Height() - 2*margin
	if spanX < 0 {
		spanX = 0
	}
	if spanY < 0 {
		spanY = 0
	}
	spacing := s.res.Config.Board.TileSpacing

	var pos vmath.Vec2F
	for try := 0; try < s.cfg.MaxPlacementTries; try++ {
		pos = vmath.V2F(margin+s.rng.Float64()*spanX, margin+s.rng.Float64()*spanY)
		d, ok := b.Nearest(pos)
		if !ok || d >= spacing {
			return pos
		}
	}
	return pos
}

func (s *SpawnSystem) spawnOne(state board.State) *board.Tile {
	typ, ok := s.PickType()
	if !ok {
		return nil
	}
	t := s.res.Board.Add(typ, s.pickKind(), s.place(), state)
	s.spawned++
	s.statSpawned.Add(1)
	s.res.emit(event.EventTileSpawned, &event.TileSpawnedPayload{TileID: t.ID, Type: t.Type, Kind: t.Kind})
	return t
}

// SpawnLive creates n live tiles immediately, used for the initial board and floor top-ups
func (s *SpawnSystem) SpawnLive(n int) int {
	created := 0
	for i := 0; i < n; i++ {
		if s.spawnOne(board.StateLive) == nil {
			break
		}
		created++
	}
	return created
}

// RequestSpawn adds count to the owed ledger and starts a pour batch when none is running
func (s *SpawnSystem) RequestSpawn(count int) {
	if count <= 0 {
		return
	}
	if len(s.weights) == 0 {
		s.log.Warn().Int("count", count).Msg("spawn request ignored, weight table is empty")
		return
	}

	s.owed += count
	s.statOwed.Store(int64(s.owed))
	if s.animating {
		s.log.Debug().Int("count", count).Int("owed", s.owed).Msg("merged into running batch")
		return
	}
	s.animating = true
	s.res.Sched.Go("spawn-batch", s.runBatches)
}

// runBatches pours owed tiles until the ledger is empty
func (s *SpawnSystem) runBatches(task *engine.Task) {
	interval := s.cfg.SpawnInterval.D()
	pour := s.cfg.PourDuration.D()

	for s.owed > 0 {
		n := s.owed
		s.owed = 0
		s.statOwed.Store(0)
		s.statBatches.Add(1)
		s.res.emit(event.EventSpawnBatchStarted, &event.SpawnBatchPayload{Count: n})
		s.log.Debug().Int("count", n).Msg("pour batch started")

		poured := make([]*board.Tile, 0, n)
		for i := 0; i < n; i++ {
			if i > 0 {
				task.Delay(interval)
			}
			t := s.spawnOne(board.StateSpawning)
			if t == nil {
				break
			}
			poured = append(poured, t)
		}

		task.Delay(pour)

		activated := 0
		for _, t := range poured {
			if s.res.Board.Activate(t) {
				activated++
			}
		}
		s.res.emit(event.EventTilesActivated, &event.SpawnBatchPayload{Count: activated})
	}

	s.animating = false
	s.EnsureMinimumPopulation(s.cfg.MinPopulation)
}

// EnsureMinimumPopulation creates live tiles immediately when the live count is below floor
// Returns the deficit created; tiles still owed are reduced by the same amount
func (s *SpawnSystem) EnsureMinimumPopulation(floor int) int {
	live := s.res.Board.LiveCount()
	if live >= floor {
		return 0
	}
	deficit := s.SpawnLive(floor - live)
	if deficit == 0 {
		return 0
	}

	credit := min(deficit, s.owed)
	s.owed -= credit
	s.statOwed.Store(int64(s.owed))
	s.statFloor.Add(int64(deficit))

	s.log.Info().Int("live", live).Int("floor", floor).Int("deficit", deficit).Msg("population floor enforced")
	s.res.emit(event.EventMinimumPopulationEnforced, &event.MinimumPopulationPayload{Deficit: deficit})
	return deficit
}
