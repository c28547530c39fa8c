package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the analysis collectors
type Metrics struct {
	// Analyses completed, by verdict
	AnalysisCount *prometheus.CounterVec

	// Analyses abandoned before the verdict (client gone, timeout)
	AnalysisAborted prometheus.Counter

	// Detector results that flagged the email, by detector
	DetectorFlagCount *prometheus.CounterVec

	// Wall time of a full analysis, streaming included
	AnalysisDuration prometheus.Histogram

	// HTTP request latency
	HTTPRequestDuration *prometheus.HistogramVec
}

// New registers the collectors on reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		AnalysisCount: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "phishing_analysis_total",
				Help: "Total number of completed email analyses",
			},
			[]string{"verdict"}, // verdict: phishing, not_phishing
		),
		AnalysisAborted: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "phishing_analysis_aborted_total",
				Help: "Total number of analyses stopped before the verdict",
			},
		),
		DetectorFlagCount: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "phishing_detector_flag_total",
				Help: "Total number of detector results that flagged an email",
			},
			[]string{"detector"},
		),
		AnalysisDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "phishing_analysis_duration_seconds",
				Help:    "Email analysis duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10), // 100µs to ~26s
			},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
			},
			[]string{"method", "path", "status"},
		),
	}
}

// RecordAnalysis records a completed analysis
func (m *Metrics) RecordAnalysis(phishing bool, duration time.Duration) {
	verdict := "not_phishing"
	if phishing {
		verdict = "phishing"
	}
	m.AnalysisCount.WithLabelValues(verdict).Inc()
	m.AnalysisDuration.Observe(duration.Seconds())
}

// RecordAborted records an analysis that never reached its verdict
func (m *Metrics) RecordAborted() {
	m.AnalysisAborted.Inc()
}

// IncrementDetectorFlag counts a flagging result for a detector
func (m *Metrics) IncrementDetectorFlag(detector string) {
	m.DetectorFlagCount.WithLabelValues(detector).Inc()
}

// RecordHTTPRequestDuration records HTTP request latency
func (m *Metrics) RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	m.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}
