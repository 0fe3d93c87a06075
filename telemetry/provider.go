package telemetry

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// Provider owns an in-process meter provider read on demand
// Disabled providers hand out a no-op meter and report nothing
type Provider struct {
	reader  *sdkmetric.ManualReader
	mp      *sdkmetric.MeterProvider
	enabled bool
}

// New creates a provider; when enabled it is also installed as the global meter provider
func New(enabled bool) *Provider {
	p := &Provider{enabled: enabled}
	if !enabled {
		return p
	}

	p.reader = sdkmetric.NewManualReader()
	p.mp = sdkmetric.NewMeterProvider(sdkmetric.WithReader(p.reader))
	otel.SetMeterProvider(p.mp)
	return p
}

// Enabled returns whether metrics are collected
func (p *Provider) Enabled() bool {
	return p.enabled
}

// Meter returns this provider's meter, no-op when disabled
func (p *Provider) Meter() metric.Meter {
	if !p.enabled {
		return noop.Meter{}
	}
	return p.mp.Meter(instrumentationName)
}

// Collect reads the current state of every instrument
func (p *Provider) Collect(ctx context.Context) (metricdata.ResourceMetrics, error) {
	var rm metricdata.ResourceMetrics
	if !p.enabled {
		return rm, nil
	}
	if err := p.reader.Collect(ctx, &rm); err != nil {
		return rm, fmt.Errorf("metric collection failed: %w", err)
	}
	return rm, nil
}

// LogSummary collects once and writes one structured line per data point
func (p *Provider) LogSummary(ctx context.Context, log zerolog.Logger) error {
	rm, err := p.Collect(ctx)
	if err != nil {
		return err
	}

	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					log.Info().Str("metric", m.Name).Str("attrs", dp.Attributes.Encoded(attribute.DefaultEncoder())).Int64("value", dp.Value).Msg("Metric")
				}
			case metricdata.Gauge[int64]:
				for _, dp := range data.DataPoints {
					log.Info().Str("metric", m.Name).Int64("value", dp.Value).Msg("Metric")
				}
			case metricdata.Histogram[float64]:
				for _, dp := range data.DataPoints {
					log.Info().
						Str("metric", m.Name).
						Str("attrs", dp.Attributes.Encoded(attribute.DefaultEncoder())).
						Uint64("count", dp.Count).
						Float64("sum", dp.Sum).
						Msg("Metric")
				}
			}
		}
	}
	return nil
}

// Shutdown releases the meter provider
func (p *Provider) Shutdown(ctx context.Context) error {
	if !p.enabled {
		return nil
	}
	if err := p.mp.Shutdown(ctx); err != nil {
		return fmt.Errorf("meter provider shutdown failed: %w", err)
	}
	return nil
}
