package ports

import (
	"context"
	"io"

	"github.com/stoik/phishing-analyzer/internal/domain"
	"github.com/stoik/phishing-analyzer/internal/domain/detection"
)

// EmailAnalyzer defines the contract transports use to run analyses
type EmailAnalyzer interface {
	// Stream writes the analysis lines of an email to w as they are produced
	// and returns the run summary. It stops early when ctx is done.
	Stream(ctx context.Context, email domain.EmailRecord, w io.Writer) (*domain.Analysis, error)

	// RunCapability runs a single named detector
	RunCapability(ctx context.Context, name string, email domain.EmailRecord) (detection.Result, error)

	// Capabilities lists the detectors in pipeline order
	Capabilities() []detection.Capability
}
