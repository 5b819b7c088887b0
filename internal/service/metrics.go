package service

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records pipeline outcomes. A nil *Metrics is valid and records nothing.
type Metrics struct {
	uploads     *prometheus.CounterVec
	rows        prometheus.Histogram
	llmDuration prometheus.Histogram
}

// NewMetrics creates the pipeline collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		uploads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "csv_uploads_total",
				Help: "CSV uploads processed, by outcome.",
			},
			[]string{"outcome"},
		),
		rows: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "csv_upload_rows",
			Help:    "Data rows decoded per upload.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
		llmDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Latency of the language model call.",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 15, 30, 60},
		}),
	}

	for _, c := range []prometheus.Collector{m.uploads, m.rows, m.llmDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Outcome names the pipeline result for err, used as a metric label and log field.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrCSVDecode):
		return "csv_decode_error"
	case errors.Is(err, ErrStorage):
		return "storage_error"
	case errors.Is(err, ErrRecommendation):
		return "recommendation_error"
	default:
		return "internal_error"
	}
}

func (m *Metrics) observeUpload(err error) {
	if m == nil {
		return
	}
	m.uploads.WithLabelValues(Outcome(err)).Inc()
}

func (m *Metrics) observeRows(n int) {
	if m == nil {
		return
	}
	m.rows.Observe(float64(n))
}

func (m *Metrics) observeLLM(start time.Time) {
	if m == nil {
		return
	}
	m.llmDuration.Observe(time.Since(start).Seconds())
}
