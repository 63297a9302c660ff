package systems

import (
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/tile-chain/board"
	"github.com/lixenwraith/tile-chain/config"
	"github.com/lixenwraith/tile-chain/engine"
	"github.com/lixenwraith/tile-chain/event"
	"github.com/lixenwraith/tile-chain/status"
)

// Phase is the clearance state of one batch
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseClearing
	PhaseCascadeWindow
	PhaseSettling
)

var phaseNames = [...]string{"Idle", "Clearing", "CascadeWindow", "Settling"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "Unknown"
}

// Batch is one released chain travelling through the clearance pipeline
type Batch struct {
	ID string

	tiles  []*board.Tile // Claimed snapshot in connection order, never mutated
	length float64

	removed      int // Chain tiles removed by the batch task
	pendingExtra int // Cascade removals reported before settling
	extra        int // pendingExtra captured at settle
	refill       int
	points       int

	phase    Phase
	settled  bool
	cascades *engine.Group
}

// Count returns the snapshot size
func (b *Batch) Count() int { return len(b.tiles) }

// Length returns the physical length of the snapshot
func (b *Batch) Length() float64 { return b.length }

// Tiles returns a copy of the snapshot
func (b *Batch) Tiles() []*board.Tile {
	out := make([]*board.Tile, len(b.tiles))
	copy(out, b.tiles)
	return out
}

func (b *Batch) Phase() Phase         { return b.phase }
func (b *Batch) Settled() bool        { return b.settled }
func (b *Batch) Removed() int         { return b.removed }
func (b *Batch) PendingExtra() int    { return b.pendingExtra }
func (b *Batch) Extra() int           { return b.extra }
func (b *Batch) Refill() int          { return b.refill }
func (b *Batch) Points() int          { return b.points }
func (b *Batch) CascadesStarted() int { return b.cascades.Started() }

// TimeExtender receives granted seconds, implemented by the session timer
type TimeExtender interface {
	Extend(seconds int)
}

// ClearSystem runs clearance batches: paced removal, cascade absorption, scoring and refill
// Batches run as independent scheduler tasks and own disjoint claimed tile sets
type ClearSystem struct {
	res      *Resources
	log      zerolog.Logger
	cfg      config.Clear
	scoreCfg config.Score
	floor    int

	score    *ScoreSystem
	spawn    *SpawnSystem
	timer    TimeExtender
	removers map[board.Kind]Remover

	inFlight int

	statBatches   *atomic.Int64
	statInFlight  *atomic.Int64
	statRemoved   *atomic.Int64
	statSkipped   *atomic.Int64
	statCascades  *atomic.Int64
	statCascTiles *atomic.Int64
	statLate      *atomic.Int64
	statPhase     *status.AtomicString
}

func NewClearSystem(res *Resources, score *ScoreSystem, spawn *SpawnSystem) *ClearSystem {
	return &ClearSystem{
		res:      res,
		log:      res.logger("clear"),
		cfg:      res.Config.Clear,
		scoreCfg: res.Config.Score,
		floor:    res.Config.Spawn.MinPopulation,
		score:    score,
		spawn:    spawn,
		removers: defaultRemovers(),

		statBatches:   res.Status.Ints.Get(status.KeyClearBatches),
		statInFlight:  res.Status.Ints.Get(status.KeyClearInFlight),
		statRemoved:   res.Status.Ints.Get(status.KeyClearRemoved),
		statSkipped:   res.Status.Ints.Get(status.KeyClearSkipped),
		statCascades:  res.Status.Ints.Get(status.KeyCascades),
		statCascTiles: res.Status.Ints.Get(status.KeyCascadeTiles),
		statLate:      res.Status.Ints.Get(status.KeyLateReports),
		statPhase:     res.Status.Strings.Get(status.KeyLastBatchPhase),
	}
}

// Init forgets in-flight batches, only valid after the scheduler running them was stopped
func (c *ClearSystem) Init() {
	c.inFlight = 0
	c.statInFlight.Store(0)
}

// SetTimeExtender installs the collaborator receiving time extensions, nil disables it
func (c *ClearSystem) SetTimeExtender(t TimeExtender) {
	c.timer = t
}

// InFlight returns batches not yet settled
func (c *ClearSystem) InFlight() int {
	return c.inFlight
}

// Clear claims tiles and starts a clearance batch
// Tiles that are no longer live are left out; nil is returned when nothing could be claimed
func (c *ClearSystem) Clear(tiles []*board.Tile) *Batch {
	snapshot := make([]*board.Tile, 0, len(tiles))
	for _, t := range tiles {
		if c.res.Board.Claim(t) {
			snapshot = append(snapshot, t)
		}
	}
	if len(snapshot) == 0 {
		return nil
	}

	b := &Batch{
		ID:       uuid.NewString(),
		tiles:    snapshot,
		length:   PhysicalLength(snapshot),
		phase:    PhaseClearing,
		cascades: c.res.Sched.NewGroup(),
	}
	c.inFlight++
	c.statBatches.Add(1)
	c.statInFlight.Store(int64(c.inFlight))
	c.setPhase(b, PhaseClearing)

	if label, mult := c.score.Tier(b.Count()); mult > 1 {
		c.res.emit(event.EventComboReached, &event.ComboReachedPayload{Tier: label, Count: b.Count()})
	}

	c.log.Debug().Str("batch", b.ID).Int("count", b.Count()).Float64("length", b.length).Msg("batch started")
	c.res.Sched.Go("clear", func(t *engine.Task) { c.run(t, b) })
	return b
}

func (c *ClearSystem) setPhase(b *Batch, p Phase) {
	b.phase = p
	c.statPhase.Store(p.String())
}

// run is the batch task: Clearing, CascadeWindow, Settling, Idle
func (c *ClearSystem) run(task *engine.Task, b *Batch) {
	for i, t := range b.tiles {
		if i > 0 {
			task.Delay(c.cfg.RemoveDelay.D())
		}
		if c.removeTile(b, t, false) {
			b.removed++
		}
	}

	c.setPhase(b, PhaseCascadeWindow)
	switch c.cfg.CascadeMode {
	case config.CascadeModeWindow:
		task.Delay(c.cfg.CascadeGrace.D())
	default:
		task.Wait(b.cascades)
	}

	c.setPhase(b, PhaseSettling)
	c.settle(b)

	b.settled = true
	c.inFlight--
	c.statInFlight.Store(int64(c.inFlight))
	c.setPhase(b, PhaseIdle)
}

// removeTile dispatches through the kind's remover, tiles already gone are skipped
func (c *ClearSystem) removeTile(b *Batch, t *board.Tile, cascade bool) bool {
	if _, ok := c.res.Board.Get(t.ID); !ok {
		c.statSkipped.Add(1)
		c.log.Debug().Str("batch", b.ID).Uint64("tile", uint64(t.ID)).Msg("tile already removed, skipped")
		return false
	}
	r, ok := c.removers[t.Kind]
	if !ok {
		r = plainRemover{}
	}
	r.Remove(c, b, t, cascade)
	return true
}

// dispatchCascade starts a cascade task in the batch group
// The cascade reports its removal count through the callback bound here
func (c *ClearSystem) dispatchCascade(b *Batch, tiles []*board.Tile) {
	c.statCascades.Add(1)
	report := func(n int) { c.report(b, n) }
	delay := c.cfg.RemoveDelay.D()

	b.cascades.Go("cascade", func(task *engine.Task) {
		removed := 0
		for _, t := range tiles {
			task.Delay(delay)
			if c.removeTile(b, t, true) {
				removed++
			}
		}
		if removed > 0 {
			c.statCascTiles.Add(int64(removed))
			c.score.AddCascade(removed)
		}
		report(removed)
	})
}

// report folds a cascade count into the batch refill
// Reports after a window-mode batch settled become standalone refill requests
func (c *ClearSystem) report(b *Batch, n int) {
	if n <= 0 {
		return
	}
	if b.settled {
		c.statLate.Add(1)
		c.log.Warn().Str("batch", b.ID).Int("count", n).Msg("cascade reported after the grace window, refilling separately")
		c.spawn.RequestSpawn(n)
		return
	}
	b.pendingExtra += n
}

func (c *ClearSystem) settle(b *Batch) {
	count := b.Count()
	b.points = c.score.AddChain(count, b.length)

	if count >= c.scoreCfg.TimeExtensionThreshold {
		c.score.AddTimeBonus()
		if c.timer != nil {
			c.timer.Extend(c.scoreCfg.TimeExtensionSeconds)
		}
		c.res.emit(event.EventTimeExtensionGranted, &event.TimeExtensionPayload{Seconds: c.scoreCfg.TimeExtensionSeconds})
	}

	b.extra = b.pendingExtra
	b.pendingExtra = 0
	b.refill = count + b.extra
	c.spawn.RequestSpawn(b.refill)
	c.spawn.EnsureMinimumPopulation(c.floor)

	c.log.Debug().Str("batch", b.ID).Int("count", count).Int("extra", b.extra).Int("points", b.points).Msg("batch settled")
	c.res.emit(event.EventBatchSettled, &event.BatchSettledPayload{
		BatchID: b.ID,
		Count:   count,
		Extra:   b.extra,
		Refill:  b.refill,
		Points:  b.points,
	})
}
