// Package metrics records batch statistics on a private Prometheus registry
// and writes them in the node_exporter textfile format, so a scheduled
// archive job can be monitored without running a server.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "url2pdf"

// Capture status label values.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Recorder collects per-capture observations.
type Recorder struct {
	registry *prometheus.Registry
	captures *prometheus.CounterVec
	duration prometheus.Histogram
	steps    prometheus.Histogram
	capped   prometheus.Counter
	lastRun  prometheus.Gauge
}

// NewRecorder registers the batch metrics on a fresh registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		captures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "captures_total",
			Help:      "URLs captured, by outcome.",
		}, []string{"status"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "capture_duration_seconds",
			Help:      "Wall time of one capture, navigation to written file.",
			Buckets:   []float64{1, 2.5, 5, 10, 20, 30, 60, 120, 300},
		}),
		steps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "settle_scroll_steps",
			Help:      "Scroll increments needed before a page settled.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 7),
		}),
		capped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settle_capped_total",
			Help:      "Pages that hit the settle cap before their height stopped growing.",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the batch finished.",
		}),
	}
	r.registry.MustRegister(r.captures, r.duration, r.steps, r.capped, r.lastRun)
	return r
}

// Observe records one capture.
func (r *Recorder) Observe(ok bool, d time.Duration, settleSteps int, capped bool) {
	status := StatusSuccess
	if !ok {
		status = StatusFailure
	}
	r.captures.WithLabelValues(status).Inc()
	r.duration.Observe(d.Seconds())
	if settleSteps > 0 {
		r.steps.Observe(float64(settleSteps))
	}
	if capped {
		r.capped.Inc()
	}
}

// Finish stamps the batch completion time.
func (r *Recorder) Finish(now time.Time) {
	r.lastRun.Set(float64(now.Unix()))
}

// Gatherer exposes the registry, mainly for tests.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteFile writes all metrics to path atomically (temp file + rename).
func (r *Recorder) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
