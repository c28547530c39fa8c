package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_RecordAnalysis(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordAnalysis(true, time.Millisecond)
	m.RecordAnalysis(false, time.Millisecond)
	m.RecordAnalysis(false, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.AnalysisCount.WithLabelValues("phishing")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.AnalysisCount.WithLabelValues("not_phishing")))
}

func TestMetrics_DetectorFlagsAndAborts(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncrementDetectorFlag("check_semantics")
	m.IncrementDetectorFlag("check_semantics")
	m.RecordAborted()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.DetectorFlagCount.WithLabelValues("check_semantics")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AnalysisAborted))
}

func TestNew_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}
