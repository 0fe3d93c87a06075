package telemetry

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/lixenwraith/tank-arena/component"
	"github.com/lixenwraith/tank-arena/event"
	"github.com/lixenwraith/tank-arena/vmath"
)

func newTestInstruments(t *testing.T) (*Instruments, *sdkmetric.ManualReader, *sdkmetric.MeterProvider) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	in, err := NewInstrumentsWithMeter(mp.Meter("test"))
	require.NoError(t, err)
	return in, reader, mp
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

// counterValue returns the data point of a sum matching key=value
func counterValue(t *testing.T, m metricdata.Metrics, kv attribute.KeyValue) int64 {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "metric %s is not an int64 sum", m.Name)
	for _, dp := range sum.DataPoints {
		if v, ok := dp.Attributes.Value(kv.Key); ok && v == kv.Value {
			return dp.Value
		}
	}
	return 0
}

func TestInstrumentsCountEvents(t *testing.T) {
	in, reader, _ := newTestInstruments(t)

	queue := event.NewEventQueue()
	router := event.NewRouter(queue)
	router.Register(in)

	spawn := component.ProjectileSpawn{Owner: 1, Velocity: vmath.Vec3F{Z: 20}}
	queue.Push(event.GameEvent{Type: event.EventProjectileFired, Payload: &event.ProjectileFiredPayload{Spawn: spawn}})
	queue.Push(event.GameEvent{Type: event.EventProjectileFired, Payload: &event.ProjectileFiredPayload{Spawn: spawn}})
	queue.Push(event.GameEvent{Type: event.EventDamageTaken, Payload: &event.DamagePayload{Slot: 0, Applied: 40, Source: "shell"}})
	queue.Push(event.GameEvent{Type: event.EventDamageTaken, Payload: &event.DamagePayload{Slot: 0, Applied: 60, Source: "shell"}})
	queue.Push(event.GameEvent{Type: event.EventTankDestroyed, Payload: &event.TankPayload{Slot: 0}})
	queue.Push(event.GameEvent{Type: event.EventPickupCollected, Payload: &event.PickupPayload{Kind: component.EffectHeal}})
	queue.Push(event.GameEvent{Type: event.EventEffectStarted, Payload: &event.EffectPayload{Kind: component.EffectSpeed, Restarted: true}})
	queue.Push(event.GameEvent{Type: event.EventRoundEnded, Payload: &event.RoundPayload{Round: 1, Winner: 1}})
	queue.Push(event.GameEvent{Type: event.EventRoundEnded, Payload: &event.RoundPayload{Round: 2, Winner: -1}})
	router.DispatchAll()

	metrics := collect(t, reader)

	assert.Equal(t, int64(2), counterValue(t, metrics["tank.shots"], attribute.Int("slot", 1)))
	assert.Equal(t, int64(1), counterValue(t, metrics["tank.destroyed"], attribute.Int("slot", 0)))
	assert.Equal(t, int64(1), counterValue(t, metrics["pickup.collected"], attribute.String("kind", "heal")))
	assert.Equal(t, int64(1), counterValue(t, metrics["effect.started"], attribute.String("kind", "speed")))
	assert.Equal(t, int64(1), counterValue(t, metrics["round.ended"], attribute.String("outcome", "win")))
	assert.Equal(t, int64(1), counterValue(t, metrics["round.ended"], attribute.String("outcome", "draw")))

	hist, ok := metrics["tank.damage"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, uint64(2), hist.DataPoints[0].Count)
	assert.InDelta(t, 100.0, hist.DataPoints[0].Sum, 1e-9)
}

func TestInstrumentsObserveTick(t *testing.T) {
	in, reader, mp := newTestInstruments(t)

	var tick uint64 = 41
	require.NoError(t, in.ObserveTick(mp.Meter("test"), func() uint64 { return tick }))
	tick++

	gauge, ok := collect(t, reader)["arena.tick"].Data.(metricdata.Gauge[int64])
	require.True(t, ok)
	require.Len(t, gauge.DataPoints, 1)
	assert.Equal(t, int64(42), gauge.DataPoints[0].Value)
}

func TestProviderDisabled(t *testing.T) {
	p := New(false)
	assert.False(t, p.Enabled())

	in, err := NewInstrumentsWithMeter(p.Meter())
	require.NoError(t, err)
	in.HandleEvent(event.GameEvent{Type: event.EventRoundEnded, Payload: &event.RoundPayload{Winner: 0}})

	rm, err := p.Collect(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rm.ScopeMetrics)
	require.NoError(t, p.Shutdown(context.Background()))
}

func TestProviderLogSummary(t *testing.T) {
	p := New(true)
	t.Cleanup(func() { _ = p.Shutdown(context.Background()) })

	in, err := NewInstruments()
	require.NoError(t, err)
	in.HandleEvent(event.GameEvent{Type: event.EventProjectileFired, Payload: &event.ProjectileFiredPayload{
		Spawn: component.ProjectileSpawn{Owner: 0},
	}})
	in.HandleEvent(event.GameEvent{Type: event.EventDamageTaken, Payload: &event.DamagePayload{Applied: 12, Source: "dynamite"}})

	var buf bytes.Buffer
	require.NoError(t, p.LogSummary(context.Background(), zerolog.New(&buf)))

	out := buf.String()
	assert.True(t, strings.Contains(out, `"metric":"tank.shots"`), "summary should include shots: %s", out)
	assert.True(t, strings.Contains(out, `"metric":"tank.damage"`), "summary should include damage: %s", out)
	assert.True(t, strings.Contains(out, "source=dynamite"), "summary should include attributes: %s", out)
}
