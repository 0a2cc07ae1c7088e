// pkg/telemetry/metrics.go
package telemetry

import (
	"github.com/CodeMonkeyCybersecurity/credgen/pkg/shared"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
)

// MeterProvider returns the provider installed by Init, or the global
// delegate if Init has not run.
func MeterProvider() metric.MeterProvider {
	return otel.GetMeterProvider()
}

// Int64Counter creates a counter on mp. A nil mp means MeterProvider().
func Int64Counter(mp metric.MeterProvider, name, description string) metric.Int64Counter {
	if mp == nil {
		mp = MeterProvider()
	}
	c, err := mp.Meter(shared.CredgenID).Int64Counter(name, metric.WithDescription(description))
	if err != nil {
		otel.Handle(err)
		return metricnoop.Int64Counter{}
	}
	return c
}
