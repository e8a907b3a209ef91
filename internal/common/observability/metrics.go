// internal/common/observability/metrics.go
package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"

	"personality-workers/internal/common/logger"
)

// Observability owns the OTel meter provider. Instruments are exported
// through the default Prometheus registry.
type Observability struct {
	meterProvider    *metric.MeterProvider
	meter            otelmetric.Meter
	jobCounter       otelmetric.Int64Counter
	jobDuration      otelmetric.Float64Histogram
	analysisCounter  otelmetric.Int64Counter
	analysisDuration otelmetric.Float64Histogram
	logger           logger.Logger
}

// New builds the meter provider. When the exporter cannot be created the
// returned value records nothing.
func New(serviceName string, log logger.Logger) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		log.Warn("failed to create prometheus exporter", map[string]interface{}{"error": err.Error()})
		return &Observability{logger: log}
	}
	return newWithReader(serviceName, exporter, log)
}

func newWithReader(serviceName string, reader metric.Reader, log logger.Logger) *Observability {
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)
	o := &Observability{meterProvider: provider, meter: meter, logger: log}

	var err error
	if o.jobCounter, err = meter.Int64Counter(
		"jobs.processed",
		otelmetric.WithDescription("Number of jobs processed"),
	); err != nil {
		log.Warn("instrument unavailable", map[string]interface{}{"name": "jobs.processed", "error": err.Error()})
	}
	if o.jobDuration, err = meter.Float64Histogram(
		"jobs.duration",
		otelmetric.WithDescription("Job processing duration"),
		otelmetric.WithUnit("ms"),
	); err != nil {
		log.Warn("instrument unavailable", map[string]interface{}{"name": "jobs.duration", "error": err.Error()})
	}
	if o.analysisCounter, err = meter.Int64Counter(
		"personality.analyses",
		otelmetric.WithDescription("Personality analyses by operation and mode"),
	); err != nil {
		log.Warn("instrument unavailable", map[string]interface{}{"name": "personality.analyses", "error": err.Error()})
	}
	if o.analysisDuration, err = meter.Float64Histogram(
		"personality.analysis.duration",
		otelmetric.WithDescription("Personality analysis duration"),
		otelmetric.WithUnit("ms"),
	); err != nil {
		log.Warn("instrument unavailable", map[string]interface{}{"name": "personality.analysis.duration", "error": err.Error()})
	}
	return o
}

func (o *Observability) RecordJobProcessed(ctx context.Context, taskType, status string) {
	if o == nil || o.jobCounter == nil {
		return
	}
	o.jobCounter.Add(ctx, 1, otelmetric.WithAttributes(
		attribute.String("task_type", taskType),
		attribute.String("status", status),
	))
}

func (o *Observability) RecordJobDuration(ctx context.Context, taskType string, duration time.Duration, status string) {
	if o == nil || o.jobDuration == nil {
		return
	}
	o.jobDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
		attribute.String("task_type", taskType),
		attribute.String("status", status),
	))
}

// RecordAnalysis counts one analyzer call. degraded marks a minimal result.
func (o *Observability) RecordAnalysis(ctx context.Context, operation, mode string, degraded bool, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := otelmetric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("mode", mode),
		attribute.Bool("degraded", degraded),
	)
	if o.analysisCounter != nil {
		o.analysisCounter.Add(ctx, 1, attrs)
	}
	if o.analysisDuration != nil {
		o.analysisDuration.Record(ctx, float64(duration.Microseconds())/1000, attrs)
	}
}

func (o *Observability) Shutdown() {
	if o == nil || o.meterProvider == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := o.meterProvider.Shutdown(ctx); err != nil {
		o.logger.Warn("meter provider shutdown failed", map[string]interface{}{"error": err.Error()})
	}
}
