package event

var typeToName = map[EventType]string{
	EventTick:               "Tick",
	EventTankActivated:      "EventTankActivated",
	EventTankDeactivated:    "EventTankDeactivated",
	EventTankDestroyed:      "EventTankDestroyed",
	EventChargeStarted:      "EventChargeStarted",
	EventProjectileFired:    "EventProjectileFired",
	EventDamageTaken:        "EventDamageTaken",
	EventShellExploded:      "EventShellExploded",
	EventEffectStarted:      "EventEffectStarted",
	EventEffectExpired:      "EventEffectExpired",
	EventEngineStateChanged: "EventEngineStateChanged",
	EventPickupSpawned:      "EventPickupSpawned",
	EventPickupCollected:    "EventPickupCollected",
	EventRoundStarted:       "EventRoundStarted",
	EventRoundEnded:         "EventRoundEnded",
}

// String returns the registered name of the event type
func (t EventType) String() string {
	if name, ok := typeToName[t]; ok {
		return name
	}
	return "EventUnknown"
}
