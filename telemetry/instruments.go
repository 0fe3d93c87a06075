package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/lixenwraith/tank-arena/event"
)

// Instruments records combat metrics from routed game events
type Instruments struct {
	shots   metric.Int64Counter
	kills   metric.Int64Counter
	damage  metric.Float64Histogram
	pickups metric.Int64Counter
	effects metric.Int64Counter
	rounds  metric.Int64Counter
	tick    metric.Int64ObservableGauge

	ctx context.Context
}

// NewInstruments creates instruments on the global meter (no-op if not configured)
func NewInstruments() (*Instruments, error) {
	return NewInstrumentsWithMeter(meter())
}

// NewInstrumentsWithMeter creates instruments on m
func NewInstrumentsWithMeter(m metric.Meter) (*Instruments, error) {
	in := &Instruments{ctx: context.Background()}

	var err error
	in.shots, err = m.Int64Counter(
		"tank.shots",
		metric.WithDescription("Projectiles launched"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating shots counter: %w", err)
	}

	in.kills, err = m.Int64Counter(
		"tank.destroyed",
		metric.WithDescription("Death transitions"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating destroyed counter: %w", err)
	}

	in.damage, err = m.Float64Histogram(
		"tank.damage",
		metric.WithDescription("Damage applied after resist"),
		metric.WithUnit("hp"),
		metric.WithExplicitBucketBoundaries(5, 10, 25, 50, 75, 100, 1000),
	)
	if err != nil {
		return nil, fmt.Errorf("creating damage histogram: %w", err)
	}

	in.pickups, err = m.Int64Counter(
		"pickup.collected",
		metric.WithDescription("Items collected"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pickups counter: %w", err)
	}

	in.effects, err = m.Int64Counter(
		"effect.started",
		metric.WithDescription("Effects applied or restarted"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating effects counter: %w", err)
	}

	in.rounds, err = m.Int64Counter(
		"round.ended",
		metric.WithDescription("Completed rounds"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating rounds counter: %w", err)
	}

	in.tick, err = m.Int64ObservableGauge(
		"arena.tick",
		metric.WithDescription("Current simulation tick"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating tick gauge: %w", err)
	}

	return in, nil
}

// ObserveTick registers a callback reporting the simulation tick on every collection
func (in *Instruments) ObserveTick(m metric.Meter, tick func() uint64) error {
	_, err := m.RegisterCallback(
		func(ctx context.Context, o metric.Observer) error {
			o.ObserveInt64(in.tick, int64(tick()))
			return nil
		},
		in.tick,
	)
	if err != nil {
		return fmt.Errorf("registering tick callback: %w", err)
	}
	return nil
}

// EventTypes implements event.Handler
func (in *Instruments) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventProjectileFired,
		event.EventTankDestroyed,
		event.EventDamageTaken,
		event.EventPickupCollected,
		event.EventEffectStarted,
		event.EventRoundEnded,
	}
}

// HandleEvent implements event.Handler
func (in *Instruments) HandleEvent(ev event.GameEvent) {
	switch p := ev.Payload.(type) {
	case *event.ProjectileFiredPayload:
		in.shots.Add(in.ctx, 1, metric.WithAttributes(attribute.Int("slot", p.Spawn.Owner)))

	case *event.TankPayload:
		if ev.Type == event.EventTankDestroyed {
			in.kills.Add(in.ctx, 1, metric.WithAttributes(attribute.Int("slot", p.Slot)))
		}

	case *event.DamagePayload:
		in.damage.Record(in.ctx, p.Applied, metric.WithAttributes(attribute.String("source", p.Source)))

	case *event.PickupPayload:
		in.pickups.Add(in.ctx, 1, metric.WithAttributes(attribute.String("kind", p.Kind.String())))

	case *event.EffectPayload:
		in.effects.Add(in.ctx, 1, metric.WithAttributes(
			attribute.String("kind", p.Kind.String()),
			attribute.Bool("restarted", p.Restarted),
		))

	case *event.RoundPayload:
		outcome := "win"
		if p.Winner < 0 {
			outcome = "draw"
		}
		in.rounds.Add(in.ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	}
}
