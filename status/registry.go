package status

import "sync/atomic"

// Metric keys written by the systems
const (
	KeyClearBatches    = "clear.batches"
	KeyClearInFlight   = "clear.in_flight"
	KeyClearRemoved    = "clear.removed"
	KeyClearSkipped    = "clear.skipped"
	KeyCascades        = "clear.cascades"
	KeyCascadeTiles    = "clear.cascade_tiles"
	KeyLateReports     = "clear.late_reports"
	KeySpawnBatches    = "spawn.batches"
	KeySpawned         = "spawn.spawned"
	KeySpawnOwed       = "spawn.owed"
	KeyFloorEnforced   = "spawn.floor_enforced"
	KeyScoreTotal      = "score.total"
	KeyLongestChain    = "chain.longest"
	KeyChainLength     = "chain.physical_length"
	KeySessionID       = "session.id"
	KeySessionExpired  = "session.expired"
	KeyLastBatchPhase  = "clear.last_phase"
	KeyTimeExtensions  = "score.time_extensions"
	KeyRejectedInputs  = "chain.rejected"
	KeyChainsSubmitted = "chain.submitted"
)

// Registry groups metric maps by value type
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns the number of registered metrics across all maps
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Snapshot copies every metric into a flat map, used by the sim report
func (r *Registry) Snapshot() map[string]any {
	out := make(map[string]any, r.TotalCount())
	r.Bools.Range(func(k string, c *atomic.Bool) { out[k] = c.Load() })
	r.Ints.Range(func(k string, c *atomic.Int64) { out[k] = c.Load() })
	r.Floats.Range(func(k string, c *AtomicFloat) { out[k] = c.Get() })
	r.Strings.Range(func(k string, c *AtomicString) { out[k] = c.Load() })
	return out
}
