package observability

import (
	"github.com/jonathan/ats-scorer/internal/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records per-run scoring counters on a private registry. It
// implements pipeline.Recorder and is safe for concurrent use.
type Metrics struct {
	registry  *prometheus.Registry
	scored    *prometheus.CounterVec
	rejected  *prometheus.CounterVec
	relevance *prometheus.CounterVec
	scores    prometheus.Histogram
}

// NewMetrics registers the scoring metrics on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		scored: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ats_documents_scored_total",
				Help: "Total number of documents scored, by grade",
			},
			[]string{"grade"},
		),
		rejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ats_documents_rejected_total",
				Help: "Total number of documents rejected before scoring",
			},
			[]string{"reason"},
		),
		relevance: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ats_relevance_source_total",
				Help: "Relevance scores by the strategy that produced them",
			},
			[]string{"source"},
		),
		scores: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ats_final_score",
				Help:    "Distribution of final ATS scores",
				Buckets: []float64{45, 60, 75, 90, 100},
			},
		),
	}
}

// ReportScored records one scored document.
func (m *Metrics) ReportScored(report *types.FinalReport) {
	if report == nil {
		return
	}
	m.scored.WithLabelValues(report.Grade).Inc()
	m.relevance.WithLabelValues(report.Ensemble.RelevanceSource).Inc()
	m.scores.Observe(report.FinalATSScore)
}

// DocumentRejected records a document that failed its precondition check.
func (m *Metrics) DocumentRejected(reason string) {
	m.rejected.WithLabelValues(reason).Inc()
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes the metrics in the text exposition format, for
// node_exporter's textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
