package systems

import (
	"math"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/tile-chain/board"
	"github.com/lixenwraith/tile-chain/config"
	"github.com/lixenwraith/tile-chain/event"
	"github.com/lixenwraith/tile-chain/status"
	"github.com/lixenwraith/tile-chain/vmath"
)

// Combo tier labels reported with EventComboReached
const (
	TierLabel2 = "Great"
	TierLabel3 = "Amazing"
)

// ScoreSystem owns the session score total
// The total never decreases except through Reset at session start
type ScoreSystem struct {
	res *Resources
	log zerolog.Logger
	cfg config.Score

	areaClearBonus int
	total          int

	statTotal      *atomic.Int64
	statExtensions *atomic.Int64
}

func NewScoreSystem(res *Resources) *ScoreSystem {
	return &ScoreSystem{
		res:            res,
		log:            res.logger("score"),
		cfg:            res.Config.Score,
		areaClearBonus: res.Config.Clear.AreaClearBonus,

		statTotal:      res.Status.Ints.Get(status.KeyScoreTotal),
		statExtensions: res.Status.Ints.Get(status.KeyTimeExtensions),
	}
}

// Multiplier returns the combo multiplier for a chain of count tiles
func (s *ScoreSystem) Multiplier(count int) int {
	_, m := s.Tier(count)
	return m
}

// Tier returns the combo label and multiplier, the base tier has an empty label
func (s *ScoreSystem) Tier(count int) (string, int) {
	switch {
	case count >= s.cfg.ComboTier3:
		return TierLabel3, s.cfg.ComboMult3
	case count >= s.cfg.ComboTier2:
		return TierLabel2, s.cfg.ComboMult2
	default:
		return "", 1
	}
}

// Points applies the chain formula to count tiles spanning length board units
func (s *ScoreSystem) Points(count int, length float64) int {
	raw := float64(s.cfg.BasePerTile*count) + float64(s.cfg.LengthBonusPerUnit)*length
	return int(math.Round(raw * float64(s.Multiplier(count))))
}

// PhysicalLength sums center distances between consecutive tiles in connection order
func PhysicalLength(tiles []*board.Tile) float64 {
	pts := make([]vmath.Vec2F, len(tiles))
	for i, t := range tiles {
		pts[i] = t.Pos
	}
	return vmath.PolylineLength(pts)
}

// AddChain scores a cleared chain and returns the awarded points
func (s *ScoreSystem) AddChain(count int, length float64) int {
	if count <= 0 {
		return 0
	}
	p := s.Points(count, length)
	s.log.Debug().Int("count", count).Float64("length", length).Int("points", p).Msg("chain scored")
	s.add(p)
	return p
}

// AddCascade awards the flat per-tile area-clear bonus
func (s *ScoreSystem) AddCascade(count int) int {
	if count <= 0 {
		return 0
	}
	p := s.areaClearBonus * count
	s.add(p)
	return p
}

// AddTimeBonus awards the fixed bonus accompanying a time extension
func (s *ScoreSystem) AddTimeBonus() int {
	s.statExtensions.Add(1)
	s.add(s.cfg.TimeExtensionPoints)
	return s.cfg.TimeExtensionPoints
}

func (s *ScoreSystem) add(delta int) {
	if delta <= 0 {
		return
	}
	s.total += delta
	s.statTotal.Store(int64(s.total))
	s.res.emit(event.EventScoreChanged, &event.ScoreChangedPayload{Total: s.total, Delta: delta})
}

// Reset zeroes the total, only called at session start
func (s *ScoreSystem) Reset() {
	s.total = 0
	s.statTotal.Store(0)
	s.statExtensions.Store(0)
	s.res.emit(event.EventScoreChanged, &event.ScoreChangedPayload{})
}

func (s *ScoreSystem) Total() int {
	return s.total
}
