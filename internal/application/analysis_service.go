package application

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/stoik/phishing-analyzer/internal/domain"
	"github.com/stoik/phishing-analyzer/internal/domain/detection"
	"github.com/stoik/phishing-analyzer/internal/metrics"
	"github.com/stoik/phishing-analyzer/internal/ports"
	"go.uber.org/zap"
)

var _ ports.EmailAnalyzer = (*AnalysisService)(nil)

// flusher is implemented by writers that buffer, such as http.ResponseWriter
type flusher interface {
	Flush()
}

// AnalysisService runs the detection pipeline on behalf of transports
//
// The service adds what the pure pipeline leaves out: a correlation ID per
// run, logging, metrics, and cancellation through the caller's context.
type AnalysisService struct {
	registry *detection.Registry
	pipeline *detection.Pipeline
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewAnalysisService creates a new analysis service with dependency injection
func NewAnalysisService(
	registry *detection.Registry,
	metrics *metrics.Metrics,
	logger *zap.Logger,
) *AnalysisService {
	return &AnalysisService{
		registry: registry,
		pipeline: detection.NewPipeline(registry),
		metrics:  metrics,
		logger:   logger,
	}
}

// Stream writes each analysis line to w as soon as it is produced
//
// Writers that implement Flush are flushed after every line so that the
// caller sees progress before the next detector runs. When ctx is done or a
// write fails, the remaining detectors are skipped and the returned summary
// carries no verdict.
func (s *AnalysisService) Stream(ctx context.Context, email domain.EmailRecord, w io.Writer) (*domain.Analysis, error) {
	analysis := &domain.Analysis{
		ID:     uuid.New(),
		Sender: email.Sender,
	}
	logger := s.logger.With(zap.String("analysis_id", analysis.ID.String()))
	logger.Debug("Starting analysis",
		zap.String("sender", email.Sender),
		zap.Int("attachments", len(email.Attachments)))

	start := time.Now()
	f, canFlush := w.(flusher)

	for event := range s.pipeline.Events(email) {
		if err := ctx.Err(); err != nil {
			s.abort(logger, err)
			return analysis, fmt.Errorf("analysis %s aborted: %w", analysis.ID, err)
		}

		if _, err := io.WriteString(w, event.Line); err != nil {
			s.abort(logger, err)
			return analysis, fmt.Errorf("failed to write analysis line: %w", err)
		}
		if canFlush {
			f.Flush()
		}

		switch event.Kind {
		case detection.EventResult:
			flagged := event.Result.Flagged()
			logger.Debug("Detector finished",
				zap.String("detector", event.Capability),
				zap.Bool("flagged", flagged),
				zap.Stringer("result", event.Result))
			if flagged {
				analysis.Flagged = append(analysis.Flagged, event.Capability)
				s.metrics.IncrementDetectorFlag(event.Capability)
			}
		case detection.EventVerdict:
			analysis.Verdict = event.Verdict
		}
	}

	analysis.Duration = time.Since(start)
	s.metrics.RecordAnalysis(bool(analysis.Verdict), analysis.Duration)

	fields := []zap.Field{
		zap.String("sender", email.Sender),
		zap.Stringer("verdict", analysis.Verdict),
		zap.Strings("flagged", analysis.Flagged),
		zap.Duration("duration", analysis.Duration),
	}
	if analysis.Verdict == domain.VerdictPhishing {
		logger.Warn("Phishing email detected", fields...)
	} else {
		logger.Info("Email analyzed", fields...)
	}

	return analysis, nil
}

// Analyze runs a full analysis and keeps the streamed lines in the summary
func (s *AnalysisService) Analyze(ctx context.Context, email domain.EmailRecord) (*domain.Analysis, error) {
	recorder := &lineRecorder{}
	analysis, err := s.Stream(ctx, email, recorder)
	analysis.Lines = recorder.lines
	return analysis, err
}

// RunCapability runs a single detector by name
func (s *AnalysisService) RunCapability(ctx context.Context, name string, email domain.EmailRecord) (detection.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := s.registry.Invoke(name, email)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Capability invoked",
		zap.String("detector", name),
		zap.Bool("flagged", result.Flagged()))
	return result, nil
}

// Capabilities lists the detectors in pipeline order
func (s *AnalysisService) Capabilities() []detection.Capability {
	return s.registry.Capabilities()
}

func (s *AnalysisService) abort(logger *zap.Logger, err error) {
	s.metrics.RecordAborted()
	logger.Warn("Analysis stopped before verdict", zap.Error(err))
}

// lineRecorder keeps every write as one line; Stream writes whole lines
type lineRecorder struct {
	lines []string
}

func (r *lineRecorder) Write(p []byte) (int, error) {
	r.lines = append(r.lines, string(p))
	return len(p), nil
}
