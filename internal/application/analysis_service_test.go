package application

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stoik/phishing-analyzer/internal/domain"
	"github.com/stoik/phishing-analyzer/internal/domain/detection"
	"github.com/stoik/phishing-analyzer/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestService(t *testing.T) (*AnalysisService, *metrics.Metrics, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	m := metrics.New(prometheus.NewRegistry())
	return NewAnalysisService(detection.DefaultRegistry(), m, zap.New(core)), m, logs
}

// flushRecorder records how many lines were written before each flush
type flushRecorder struct {
	bytes.Buffer
	writes  int
	flushes []int
}

func (r *flushRecorder) Write(p []byte) (int, error) {
	r.writes++
	return r.Buffer.Write(p)
}

func (r *flushRecorder) Flush() {
	r.flushes = append(r.flushes, r.writes)
}

type failingWriter struct {
	failAfter int
	writes    int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.writes >= w.failAfter {
		return 0, errors.New("connection reset")
	}
	w.writes++
	return len(p), nil
}

func TestAnalysisService_Stream(t *testing.T) {
	service, m, logs := newTestService(t)
	out := &flushRecorder{}

	analysis, err := service.Stream(context.Background(), domain.EmailRecord{
		Sender:  "evil@malicious.com",
		Subject: "Urgent",
	}, out)
	require.NoError(t, err)

	lines := strings.SplitAfter(out.String(), "\n")
	lines = lines[:len(lines)-1] // trailing empty element after the last newline
	require.Len(t, lines, 11)
	assert.Equal(t, "Final conclusion: phishing\n", lines[10])
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, out.flushes, "every line is flushed on its own")

	assert.NotEqual(t, uuid.Nil, analysis.ID)
	assert.Equal(t, domain.VerdictPhishing, analysis.Verdict)
	assert.Equal(t, []string{"check_sender_blacklist", "check_semantics"}, analysis.Flagged)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.AnalysisCount.WithLabelValues("phishing")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DetectorFlagCount.WithLabelValues("check_sender_blacklist")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DetectorFlagCount.WithLabelValues("check_semantics")))

	warnings := logs.FilterMessage("Phishing email detected").All()
	require.Len(t, warnings, 1)
	assert.Equal(t, analysis.ID.String(), warnings[0].ContextMap()["analysis_id"])
	assert.Len(t, logs.FilterMessage("Detector finished").All(), 5)
}

func TestAnalysisService_Analyze(t *testing.T) {
	service, m, logs := newTestService(t)

	analysis, err := service.Analyze(context.Background(), domain.EmailRecord{
		Sender:  "user@example.com",
		Subject: "Test",
		Body:    "Hello",
	})
	require.NoError(t, err)

	require.Len(t, analysis.Lines, 11)
	assert.Equal(t, "Final conclusion: not phishing\n", analysis.Lines[10])
	assert.Equal(t, domain.VerdictNotPhishing, analysis.Verdict)
	assert.Empty(t, analysis.Flagged)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AnalysisCount.WithLabelValues("not_phishing")))
	assert.Len(t, logs.FilterMessage("Email analyzed").All(), 1)
}

func TestAnalysisService_AnalysesGetDistinctIDs(t *testing.T) {
	service, _, _ := newTestService(t)
	email := domain.EmailRecord{Body: "Hello"}

	first, err := service.Analyze(context.Background(), email)
	require.NoError(t, err)
	second, err := service.Analyze(context.Background(), email)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.Lines, second.Lines)
}

func TestAnalysisService_CancelledContext(t *testing.T) {
	service, m, _ := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	_, err := service.Stream(ctx, domain.EmailRecord{Sender: "evil@malicious.com"}, &out)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AnalysisAborted))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.AnalysisCount.WithLabelValues("phishing")))
}

func TestAnalysisService_WriteFailureStopsStream(t *testing.T) {
	service, m, _ := newTestService(t)
	w := &failingWriter{failAfter: 3}

	analysis, err := service.Stream(context.Background(), domain.EmailRecord{Sender: "evil@malicious.com"}, w)

	assert.ErrorContains(t, err, "connection reset")
	assert.Equal(t, 3, w.writes)
	assert.Equal(t, domain.VerdictNotPhishing, analysis.Verdict, "no verdict reached")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AnalysisAborted))
}

func TestAnalysisService_RunCapability(t *testing.T) {
	service, _, _ := newTestService(t)

	result, err := service.RunCapability(context.Background(), "check_links", domain.EmailRecord{
		Body: "go to https://x.example",
	})
	require.NoError(t, err)
	assert.Equal(t, detection.LinkReport{"https://x.example": false}, result)

	_, err = service.RunCapability(context.Background(), "nope", domain.EmailRecord{})
	assert.ErrorIs(t, err, detection.ErrUnknownCapability)
}

func TestAnalysisService_Capabilities(t *testing.T) {
	service, _, _ := newTestService(t)
	assert.Len(t, service.Capabilities(), 5)
}
