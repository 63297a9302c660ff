package systems

import (
	"math/rand"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/tile-chain/board"
	"github.com/lixenwraith/tile-chain/config"
	"github.com/lixenwraith/tile-chain/engine"
	"github.com/lixenwraith/tile-chain/event"
	"github.com/lixenwraith/tile-chain/status"
	"github.com/lixenwraith/tile-chain/vmath"
)

var testEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// testWorld wires every system over a mock clock with no random specials and no floor
type testWorld struct {
	t     *testing.T
	res   *Resources
	clock *engine.MockTimeProvider
	sched *engine.Scheduler

	score *ScoreSystem
	spawn *SpawnSystem
	clear *ClearSystem
	chain *ChainSystem

	seen []event.GameEvent
}

func newTestWorld(t *testing.T, mutate func(cfg *config.Config)) *testWorld {
	t.Helper()

	cfg := config.Default()
	cfg.Spawn.MinPopulation = 0
	cfg.Spawn.AreaClearChance = 0
	cfg.Spawn.WildcardChance = 0
	if mutate != nil {
		mutate(cfg)
	}

	clock := engine.NewMockTimeProvider(testEpoch)
	sched := engine.NewScheduler(clock, zerolog.Nop())
	t.Cleanup(sched.Stop)

	res := &Resources{
		Board:  board.New(cfg.Board.Width, cfg.Board.Height, cfg.Board.TileRadius, cfg.Board.PickRadius),
		Sched:  sched,
		Events: event.NewEventQueue(),
		Status: status.NewRegistry(),
		Config: cfg,
		Log:    zerolog.Nop(),
	}

	w := &testWorld{t: t, res: res, clock: clock, sched: sched}
	w.score = NewScoreSystem(res)
	w.spawn = NewSpawnSystem(res, rand.New(rand.NewSource(7)))
	w.clear = NewClearSystem(res, w.score, w.spawn)
	w.chain = NewChainSystem(res, w.clear)
	return w
}

func (w *testWorld) add(typ board.TileType, kind board.Kind, x, y float64) *board.Tile {
	return w.res.Board.Add(typ, kind, vmath.V2F(x, y), board.StateLive)
}

// row places count ordinary tiles of typ one unit apart starting at (x, y)
func (w *testWorld) row(typ board.TileType, count int, x, y float64) []*board.Tile {
	tiles := make([]*board.Tile, count)
	for i := range tiles {
		tiles[i] = w.add(typ, board.KindOrdinary, x+float64(i), y)
	}
	return tiles
}

// drag presses on the first tile, holds over the rest, and releases on the last
func (w *testWorld) drag(tiles ...*board.Tile) *Batch {
	w.chain.OnPress(tiles[0].Pos)
	for _, t := range tiles[1:] {
		w.chain.OnHold(t.Pos)
	}
	return w.chain.OnRelease(tiles[len(tiles)-1].Pos)
}

func (w *testWorld) runUntilIdle() {
	w.t.Helper()
	if !w.sched.RunUntilIdle(10000) {
		w.t.Fatal("scheduler did not go idle")
	}
}

// collect drains the queue into the seen log and returns events of type typ
func (w *testWorld) collect(typ event.EventType) []event.GameEvent {
	w.seen = append(w.seen, w.res.Events.Consume()...)
	var out []event.GameEvent
	for _, ev := range w.seen {
		if ev.Type == typ {
			out = append(out, ev)
		}
	}
	return out
}

type fakeTimer struct {
	extensions []int
}

func (f *fakeTimer) Extend(seconds int) {
	f.extensions = append(f.extensions, seconds)
}
