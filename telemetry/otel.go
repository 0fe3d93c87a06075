package telemetry

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/lixenwraith/tank-arena/telemetry"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}
