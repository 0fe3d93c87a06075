package event

// EventType represents the type of game event
type EventType int

const (
	// EventTick is the zero value, never pushed
	EventTick EventType = iota

	// === Tank lifecycle ===

	// EventTankActivated signals a tank was (re)spawned with full health
	// Trigger: Tank.Activate | Consumer: CueSystem, Recorder | Payload: *TankPayload
	EventTankActivated

	// EventTankDeactivated signals a tank stopped simulating (destroyed or disabled)
	// Trigger: Tank.Deactivate | Consumer: CueSystem | Payload: *TankPayload
	EventTankDeactivated

	// EventTankDestroyed signals the one-time death transition of a tank
	// Trigger: HealthModel via Tank | Consumer: CueSystem, Recorder, Telemetry, Arena | Payload: *TankPayload
	EventTankDestroyed

	// === Combat ===

	// EventChargeStarted signals the trigger was pressed from Idle
	// Trigger: ChargeFireController | Consumer: CueSystem | Payload: *TankPayload
	EventChargeStarted

	// EventProjectileFired signals a shell launch
	// Trigger: ChargeFireController | Consumer: CueSystem, Recorder, Telemetry | Payload: *ProjectileFiredPayload
	EventProjectileFired

	// EventDamageTaken signals damage applied through the resist multiplier
	// Trigger: Tank.Hit, Dynamite | Consumer: Recorder, Telemetry | Payload: *DamagePayload
	EventDamageTaken

	// EventShellExploded signals a shell detonation
	// Trigger: Arena | Consumer: CueSystem | Payload: *ExplosionPayload
	EventShellExploded

	// === Effects ===

	// EventEffectStarted signals an effect was applied or a durable effect restarted
	// Trigger: EffectEngine | Consumer: CueSystem, Recorder, Telemetry | Payload: *EffectPayload
	EventEffectStarted

	// EventEffectExpired signals a durable effect ran out or was cancelled
	// Trigger: EffectEngine | Consumer: Recorder | Payload: *EffectPayload
	EventEffectExpired

	// EventEngineStateChanged signals an idle/driving switch of the engine hum
	// Trigger: Tank | Consumer: CueSystem | Payload: *EnginePayload
	EventEngineStateChanged

	// === Arena ===

	// EventPickupSpawned signals an item appeared on a pad
	// Trigger: ItemSpawner | Consumer: Recorder | Payload: *PickupPayload
	EventPickupSpawned

	// EventPickupCollected signals a tank drove over an item
	// Trigger: Arena | Consumer: Recorder, Telemetry | Payload: *PickupPayload
	EventPickupCollected

	// EventRoundStarted signals all tanks were respawned
	// Trigger: Arena | Consumer: Recorder, EventLogger | Payload: *RoundPayload
	EventRoundStarted

	// EventRoundEnded signals at most one tank remains
	// Trigger: Arena | Consumer: Scoreboard, Recorder, EventLogger | Payload: *RoundPayload
	EventRoundEnded
)

// AllEventTypes lists every routable event type
var AllEventTypes = []EventType{
	EventTankActivated,
	EventTankDeactivated,
	EventTankDestroyed,
	EventChargeStarted,
	EventProjectileFired,
	EventDamageTaken,
	EventShellExploded,
	EventEffectStarted,
	EventEffectExpired,
	EventEngineStateChanged,
	EventPickupSpawned,
	EventPickupCollected,
	EventRoundStarted,
	EventRoundEnded,
}

// GameEvent is a single queued notification
type GameEvent struct {
	Type    EventType
	Payload any
	Tick    uint64
}

// Emitter accepts events; EventQueue is the production implementation
type Emitter interface {
	Push(event GameEvent)
}

// Discard drops every event
type Discard struct{}

func (Discard) Push(GameEvent) {}
