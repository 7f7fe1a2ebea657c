// Package metrics exports run statistics in the Prometheus text format,
// suitable for the node_exporter textfile collector.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/sdejongh/slugnorris/pkg/models"
)

// Recorder holds the metrics of one run in a private registry
type Recorder struct {
	registry *prometheus.Registry

	events      *prometheus.CounterVec
	duration    prometheus.Gauge
	success     prometheus.Gauge
	lastRun     prometheus.Gauge
	dryRun      prometheus.Gauge
	maxPathSeen prometheus.Gauge
}

// NewRecorder creates a recorder with all metrics registered
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		events: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slugnorris_events_total",
				Help: "Number of reported events by type",
			},
			[]string{"type"},
		),
		duration: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "slugnorris_run_duration_seconds",
				Help: "Wall-clock duration of the last run",
			},
		),
		success: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "slugnorris_run_success",
				Help: "1 if the last run succeeded, 0 otherwise",
			},
		),
		lastRun: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "slugnorris_run_timestamp_seconds",
				Help: "Unix time at which the last run finished",
			},
		),
		dryRun: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "slugnorris_run_dry",
				Help: "1 if the last run was a dry run",
			},
		),
		maxPathSeen: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "slugnorris_path_length_max",
				Help: "Longest path length flagged by the length policy",
			},
		),
	}
}

// RecordReport folds a finished report into the metrics
func (r *Recorder) RecordReport(report *models.RunReport) {
	for _, t := range []models.EventType{
		models.EventIgnored, models.EventUnchanged, models.EventRenamed,
		models.EventConflict, models.EventDenied, models.EventUnreadable,
		models.EventWarn, models.EventError,
	} {
		r.events.WithLabelValues(string(t)).Add(0)
	}

	maxLen := 0
	for _, ev := range report.Events {
		r.events.WithLabelValues(string(ev.Type)).Inc()
		if ev.Length > maxLen {
			maxLen = ev.Length
		}
	}

	r.maxPathSeen.Set(float64(maxLen))
	r.duration.Set(report.Duration.Seconds())
	r.lastRun.Set(float64(report.EndTime.Unix()))
	r.success.Set(boolGauge(report.OK))
	r.dryRun.Set(boolGauge(report.DryRun))
}

// WriteTextfile atomically writes the metrics to path
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	return nil
}

// Gatherer exposes the underlying registry
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
