package event

var typeNames = [eventTypeCount]string{
	EventChainChanged:              "ChainChanged",
	EventTileRemoved:               "TileRemoved",
	EventComboReached:              "ComboReached",
	EventBatchSettled:              "BatchSettled",
	EventScoreChanged:              "ScoreChanged",
	EventTimeExtensionGranted:      "TimeExtensionGranted",
	EventSpawnBatchStarted:         "SpawnBatchStarted",
	EventTileSpawned:               "TileSpawned",
	EventTilesActivated:            "TilesActivated",
	EventMinimumPopulationEnforced: "MinimumPopulationEnforced",
	EventSessionStarted:            "SessionStarted",
	EventSessionExpired:            "SessionExpired",
}

// String returns the event name used in logs
func (t EventType) String() string {
	if t < 0 || t >= eventTypeCount {
		return "Unknown"
	}
	return typeNames[t]
}

// GetEventType returns the EventType for a given name
func GetEventType(name string) (EventType, bool) {
	for i, n := range typeNames {
		if n == name {
			return EventType(i), true
		}
	}
	return 0, false
}
