// Package observe provides application-wide observability primitives for
// Quiesce: OpenTelemetry metrics with a Prometheus exporter bridge and
// structured logging helpers.
//
// Metrics are recorded through the OpenTelemetry Metrics API. A Prometheus
// exporter bridge is available via [InitProvider] so that metrics can still be
// scraped via the standard /metrics endpoint. A package-level default
// [Metrics] instance ([DefaultMetrics]) is provided for convenience; tests
// should use [NewMetrics] with a custom [metric.MeterProvider] to avoid
// cross-test pollution.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all Quiesce metrics.
const meterName = "github.com/MrWong99/quiesce"

// Metrics holds all OpenTelemetry metric instruments for the application.
// All fields are safe for concurrent use — the underlying OTel types handle
// their own synchronisation.
type Metrics struct {
	// --- Phrase coordination counters ---

	// Suppressions counts phrases for which the interrupt-suppression batch
	// was applied.
	Suppressions metric.Int64Counter

	// RestoresScheduled counts deferred re-enable batches handed to the
	// scheduler at phrase end.
	RestoresScheduled metric.Int64Counter

	// GateSkips counts phrase events dropped by the precondition gate. Use
	// with attributes:
	//   attribute.String("event", "start"|"end"), attribute.String("reason", ...)
	GateSkips metric.Int64Counter

	// CommandErrors counts failed command batches. Use with attribute:
	//   attribute.String("event", "start"|"restore")
	CommandErrors metric.Int64Counter

	// --- Speech dispatch counters ---

	// SpeechDispatches counts text-to-speech dispatches. Use with attributes:
	//   attribute.String("route", "reader"|"fallback"), attribute.String("status", ...)
	SpeechDispatches metric.Int64Counter

	// --- Gauges ---

	// ReaderRunning reports the screen reader's last observed reachability
	// (1 running, 0 not).
	ReaderRunning metric.Int64Gauge
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	// Counters.
	if met.Suppressions, err = m.Int64Counter("quiesce.phrase.suppressions",
		metric.WithDescription("Total phrases with interrupt suppression applied."),
	); err != nil {
		return nil, err
	}
	if met.RestoresScheduled, err = m.Int64Counter("quiesce.phrase.restores_scheduled",
		metric.WithDescription("Total deferred re-enable batches scheduled."),
	); err != nil {
		return nil, err
	}
	if met.GateSkips, err = m.Int64Counter("quiesce.phrase.gate_skips",
		metric.WithDescription("Total phrase events dropped by the precondition gate, by event and reason."),
	); err != nil {
		return nil, err
	}
	if met.CommandErrors, err = m.Int64Counter("quiesce.ipc.command_errors",
		metric.WithDescription("Total failed command batches, by event."),
	); err != nil {
		return nil, err
	}
	if met.SpeechDispatches, err = m.Int64Counter("quiesce.tts.dispatches",
		metric.WithDescription("Total TTS dispatches by route and status."),
	); err != nil {
		return nil, err
	}

	// Gauges.
	if met.ReaderRunning, err = m.Int64Gauge("quiesce.reader.running",
		metric.WithDescription("Screen reader reachability (1 running, 0 not)."),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// defaultMetrics is the lazily-initialised package-level Metrics instance.
var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating it on
// first call using [otel.GetMeterProvider]. Subsequent calls return the same
// pointer. Panics if instrument creation fails (should not happen with the
// global provider).
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// RecordGateSkip records one gated-out phrase event.
func (m *Metrics) RecordGateSkip(ctx context.Context, event, reason string) {
	m.GateSkips.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("event", event),
			attribute.String("reason", reason),
		),
	)
}

// RecordCommandError records one failed command batch.
func (m *Metrics) RecordCommandError(ctx context.Context, event string) {
	m.CommandErrors.Add(ctx, 1,
		metric.WithAttributes(attribute.String("event", event)),
	)
}

// RecordSpeechDispatch records one TTS dispatch.
func (m *Metrics) RecordSpeechDispatch(ctx context.Context, route, status string) {
	m.SpeechDispatches.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("route", route),
			attribute.String("status", status),
		),
	)
}

// SetReaderRunning records the reader's current reachability.
func (m *Metrics) SetReaderRunning(ctx context.Context, running bool) {
	var v int64
	if running {
		v = 1
	}
	m.ReaderRunning.Record(ctx, v)
}
