package status

import (
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricMap_GetReturnsStableCell(t *testing.T) {
	m := NewMetricMap[AtomicFloat]()
	a := m.Get("x")
	a.Set(1.5)
	assert.Same(t, a, m.Get("x"))
	assert.True(t, m.Has("x"))
	assert.False(t, m.Has("y"))
	assert.Equal(t, 1, m.Count())
}

func TestMetricMap_RangeSorted(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get("b").Store(2)
	r.Ints.Get("a").Store(1)
	r.Ints.Get("c").Store(3)

	var keys []string
	r.Ints.Range(func(k string, _ *atomic.Int64) { keys = append(keys, k) })
	assert.Equal(t, []string{"a", "b", "c"}, keys)
}

func TestAtomicFloat_ConcurrentAdd(t *testing.T) {
	var f AtomicFloat
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				f.Add(0.5)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 400.0, f.Get())
}

func TestAtomicString_Truncates(t *testing.T) {
	var s AtomicString
	assert.Equal(t, "", s.Load())
	s.Store(strings.Repeat("z", MaxStringLen+5))
	assert.Len(t, s.Load(), MaxStringLen)
}

func TestRegistry_Snapshot(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get(KeySpawned).Add(7)
	r.Floats.Get(KeyChainLength).Set(2.5)
	r.Bools.Get(KeySessionExpired).Store(true)
	r.Strings.Get(KeyLastBatchPhase).Store("Settling")

	snap := r.Snapshot()
	assert.Equal(t, 4, r.TotalCount())
	assert.Equal(t, int64(7), snap[KeySpawned])
	assert.Equal(t, 2.5, snap[KeyChainLength])
	assert.Equal(t, true, snap[KeySessionExpired])
	assert.Equal(t, "Settling", snap[KeyLastBatchPhase])
}
