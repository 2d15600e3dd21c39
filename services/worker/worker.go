package worker

import (
	"context"
	"encoding/json"
	"time"

	"sjsage522/dealcollector/internal"
	"sjsage522/dealcollector/internal/crawler"
	"sjsage522/dealcollector/logger"
	"sjsage522/dealcollector/services/metrics"
	"sjsage522/dealcollector/services/publisher"
)

// PublishKey is the stream field carrying the base64 JSON batch
const PublishKey = "b64_deals"

// Collector produces one batch of records
type Collector interface {
	Collect(ctx context.Context) ([]crawler.ListingRecord, error)
}

// Sink persists a batch
type Sink interface {
	Append(records ...crawler.ListingRecord)
	Flush() error
}

// Worker runs one collection: collect, write, publish, report
type Worker struct {
	collector   Collector
	sink        Sink
	publisher   publisher.Publisher
	metrics     *metrics.Registry
	metricsPath string
	now         func() time.Time
}

// NewWorker creates a new worker. Publisher and metrics in deps are optional.
func NewWorker(collector Collector, sink Sink, deps internal.Dependencies, metricsPath string) *Worker {
	return &Worker{
		collector:   collector,
		sink:        sink,
		publisher:   deps.Publisher,
		metrics:     deps.Metrics,
		metricsPath: metricsPath,
		now:         time.Now,
	}
}

// Run performs a single collection. Only collection and sink failures are
// returned; publish and metrics failures are logged.
func (w *Worker) Run(ctx context.Context) error {
	log := logger.ForWorker()
	start := w.now()

	records, err := w.collector.Collect(ctx)
	if err != nil {
		w.report(0, start, false)
		return err
	}

	w.sink.Append(records...)
	if err := w.sink.Flush(); err != nil {
		w.report(0, start, false)
		return err
	}

	w.logSample(records)
	w.publish(ctx, records)
	w.report(len(records), start, true)

	log.Info().
		Int("records", len(records)).
		Dur("elapsed", w.now().Sub(start)).
		Msg("run finished")
	return nil
}

func (w *Worker) publish(ctx context.Context, records []crawler.ListingRecord) {
	if w.publisher == nil {
		return
	}
	log := logger.ForPublisher()

	data, err := json.Marshal(records)
	if err != nil {
		log.Warn().Err(err).Msg("encode batch failed")
		return
	}
	if err := w.publisher.Publish(ctx, PublishKey, data); err != nil {
		log.Warn().Err(err).Msg("publish failed")
		return
	}
	log.Debug().Int("records", len(records)).Msg("batch published")
}

func (w *Worker) report(records int, start time.Time, succeeded bool) {
	if w.metrics == nil {
		return
	}
	now := w.now()
	w.metrics.ObserveRun(records, now.Sub(start), succeeded, now)
	if w.metricsPath == "" {
		return
	}
	if err := w.metrics.WriteTextfile(w.metricsPath); err != nil {
		logger.ForWorker().Warn().Err(err).Str("path", w.metricsPath).Msg("metrics textfile write failed")
	}
}

// logSample logs the first record of the batch in debug mode
func (w *Worker) logSample(records []crawler.ListingRecord) {
	if !logger.IsDebugEnabled() || len(records) == 0 {
		return
	}
	log := logger.ForWorker()

	data, err := json.Marshal(records[0])
	if err != nil {
		log.Warn().Err(err).Msg("encode sample failed")
		return
	}
	var loggable map[string]interface{}
	if err := json.Unmarshal(data, &loggable); err != nil {
		log.Warn().Err(err).Msg("decode sample failed")
		return
	}
	if _, exists := loggable["image"]; exists {
		loggable["image"] = "OK"
	}
	log.Debug().Interface("record", loggable).Msg("collected record")
}
