package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Variant attempt outcomes
const (
	OutcomeCollected = "collected"
	OutcomeEmpty     = "empty"
	OutcomeFailed    = "failed"
)

// Registry holds the per-run collector metrics. A run is a short-lived
// process, so the registry is exported as a node-exporter textfile rather
// than served over HTTP.
type Registry struct {
	reg             *prometheus.Registry
	VariantAttempts *prometheus.CounterVec
	RowsSkipped     *prometheus.CounterVec
	RecordsEmitted  prometheus.Gauge
	LastSuccess     prometheus.Gauge
	RunDurationSec  prometheus.Gauge
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	attempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dealcollector_variant_attempts_total",
		Help: "Source variant attempts by outcome.",
	}, []string{"variant", "outcome"})
	skipped := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dealcollector_rows_skipped_total",
		Help: "Candidate rows dropped by the field extractor, by reason.",
	}, []string{"variant", "reason"})
	emitted := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "dealcollector_records_emitted",
		Help: "Records written by the last run.",
	})
	lastSuccess := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "dealcollector_last_success_timestamp_seconds",
		Help: "Unix time of the last run that wrote an output file.",
	})
	duration := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "dealcollector_run_duration_seconds",
		Help: "Wall time of the last run.",
	})

	r.MustRegister(attempts, skipped, emitted, lastSuccess, duration)
	return &Registry{
		reg:             r,
		VariantAttempts: attempts,
		RowsSkipped:     skipped,
		RecordsEmitted:  emitted,
		LastSuccess:     lastSuccess,
		RunDurationSec:  duration,
	}
}

// A nil *Registry ignores all observations.

// ObserveVariant counts one attempt of a variant
func (r *Registry) ObserveVariant(variant, outcome string) {
	if r == nil {
		return
	}
	r.VariantAttempts.WithLabelValues(variant, outcome).Inc()
}

// ObserveSkip counts one dropped row
func (r *Registry) ObserveSkip(variant, reason string) {
	if r == nil {
		return
	}
	r.RowsSkipped.WithLabelValues(variant, reason).Inc()
}

// ObserveRun records the outcome of a finished run
func (r *Registry) ObserveRun(records int, elapsed time.Duration, succeeded bool, now time.Time) {
	if r == nil {
		return
	}
	r.RecordsEmitted.Set(float64(records))
	r.RunDurationSec.Set(elapsed.Seconds())
	if succeeded {
		r.LastSuccess.Set(float64(now.Unix()))
	}
}

// WriteTextfile atomically writes the registry in the text exposition format
func (r *Registry) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.reg)
}
