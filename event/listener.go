package event

import "github.com/lixenwraith/tile-chain/board"

// Listener is the presentation/audio collaborator surface
type Listener interface {
	OnChainChanged(tiles []board.TileID)
	OnTileRemoved(id board.TileID)
	OnComboReached(tier string, count int)
	OnScoreChanged(total int)
	OnTimeExtensionGranted(seconds int)
	OnSpawnBatchStarted(count int)
	OnMinimumPopulationEnforced(deficit int)
}

// NopListener implements Listener with no-ops, embed it to override a subset
type NopListener struct{}

func (NopListener) OnChainChanged([]board.TileID)   {}
func (NopListener) OnTileRemoved(board.TileID)      {}
func (NopListener) OnComboReached(string, int)      {}
func (NopListener) OnScoreChanged(int)              {}
func (NopListener) OnTimeExtensionGranted(int)      {}
func (NopListener) OnSpawnBatchStarted(int)         {}
func (NopListener) OnMinimumPopulationEnforced(int) {}

// ListenerHandler adapts a Listener to the router
type ListenerHandler struct {
	L Listener
}

// NewListenerHandler wraps l for registration with a Router
func NewListenerHandler(l Listener) *ListenerHandler {
	return &ListenerHandler{L: l}
}

// EventTypes returns the events the Listener surface covers
func (h *ListenerHandler) EventTypes() []EventType {
	return []EventType{
		EventChainChanged,
		EventTileRemoved,
		EventComboReached,
		EventScoreChanged,
		EventTimeExtensionGranted,
		EventSpawnBatchStarted,
		EventMinimumPopulationEnforced,
	}
}

// HandleEvent maps payloads onto Listener callbacks, mismatched payloads are dropped
func (h *ListenerHandler) HandleEvent(ev GameEvent) {
	switch ev.Type {
	case EventChainChanged:
		if p, ok := ev.Payload.(*ChainChangedPayload); ok {
			h.L.OnChainChanged(p.Tiles)
		}
	case EventTileRemoved:
		if p, ok := ev.Payload.(*TileRemovedPayload); ok {
			h.L.OnTileRemoved(p.TileID)
		}
	case EventComboReached:
		if p, ok := ev.Payload.(*ComboReachedPayload); ok {
			h.L.OnComboReached(p.Tier, p.Count)
		}
	case EventScoreChanged:
		if p, ok := ev.Payload.(*ScoreChangedPayload); ok {
			h.L.OnScoreChanged(p.Total)
		}
	case EventTimeExtensionGranted:
		if p, ok := ev.Payload.(*TimeExtensionPayload); ok {
			h.L.OnTimeExtensionGranted(p.Seconds)
		}
	case EventSpawnBatchStarted:
		if p, ok := ev.Payload.(*SpawnBatchPayload); ok {
			h.L.OnSpawnBatchStarted(p.Count)
		}
	case EventMinimumPopulationEnforced:
		if p, ok := ev.Payload.(*MinimumPopulationPayload); ok {
			h.L.OnMinimumPopulationEnforced(p.Deficit)
		}
	}
}

// HandlerFunc adapts a function to Handler for a fixed set of event types
type HandlerFunc struct {
	Types []EventType
	Fn    func(ev GameEvent)
}

func (h HandlerFunc) EventTypes() []EventType  { return h.Types }
func (h HandlerFunc) HandleEvent(ev GameEvent) { h.Fn(ev) }
