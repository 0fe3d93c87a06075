package engine

import (
	"github.com/rs/zerolog"

	"github.com/lixenwraith/tank-arena/event"
)

// EventLogger writes every routed game event to the log
// Round boundaries and deaths log at info, everything else at debug
type EventLogger struct {
	logger zerolog.Logger
}

func NewEventLogger(logger zerolog.Logger) *EventLogger {
	return &EventLogger{logger: logger.With().Str("component", "events").Logger()}
}

func (l *EventLogger) EventTypes() []event.EventType {
	return event.AllEventTypes
}

func (l *EventLogger) HandleEvent(ev event.GameEvent) {
	level := zerolog.DebugLevel
	switch ev.Type {
	case event.EventRoundStarted, event.EventRoundEnded, event.EventTankDestroyed:
		level = zerolog.InfoLevel
	}

	e := l.logger.WithLevel(level).Uint64("tick", ev.Tick).Stringer("type", ev.Type)
	switch p := ev.Payload.(type) {
	case *event.TankPayload:
		e = e.Int("slot", p.Slot)
	case *event.DamagePayload:
		e = e.Int("slot", p.Slot).Float64("raw", p.Raw).Float64("applied", p.Applied).
			Float64("health", p.Health).Str("source", p.Source).Int("attacker", p.Attacker)
	case *event.EffectPayload:
		e = e.Int("slot", p.Slot).Stringer("kind", p.Kind).Float64("magnitude", p.Magnitude).
			Bool("restarted", p.Restarted).Bool("cancelled", p.Cancelled)
	case *event.ProjectileFiredPayload:
		e = e.Int("slot", p.Spawn.Owner).Float64("force", p.Spawn.Speed())
	case *event.ExplosionPayload:
		e = e.Int("owner", p.Owner)
	case *event.EnginePayload:
		e = e.Int("slot", p.Slot).Bool("driving", p.Driving)
	case *event.PickupPayload:
		e = e.Int("pad", p.Pad).Int("slot", p.Slot).Stringer("kind", p.Kind)
	case *event.RoundPayload:
		e = e.Int("round", p.Round).Int("winner", p.Winner)
	}
	e.Msg("game event")
}
