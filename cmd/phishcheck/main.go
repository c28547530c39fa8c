// Command phishcheck analyzes one email from the command line and prints the
// analysis as it runs. It exits with status 2 when the email is phishing.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stoik/phishing-analyzer/internal/adapters/mime"
	"github.com/stoik/phishing-analyzer/internal/application"
	"github.com/stoik/phishing-analyzer/internal/domain"
	"github.com/stoik/phishing-analyzer/internal/domain/detection"
	"github.com/stoik/phishing-analyzer/internal/logging"
	"github.com/stoik/phishing-analyzer/internal/metrics"
	"go.uber.org/zap"
)

const exitPhishing = 2

func main() {
	var (
		file    = flag.String("file", "", "path to an RFC 5322 message, - for stdin")
		sender  = flag.String("sender", "", "sender address")
		subject = flag.String("subject", "", "subject line")
		body    = flag.String("body", "", "message body")
		verbose = flag.Bool("verbose", false, "log every detector result to stderr")
	)
	flag.Parse()

	logger, err := logging.InitConsoleLogger(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	email, err := loadEmail(logger, *file, domain.EmailRecord{
		Sender:  *sender,
		Subject: *subject,
		Body:    *body,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	service := application.NewAnalysisService(
		detection.DefaultRegistry(),
		metrics.New(prometheus.NewRegistry()),
		logger,
	)

	analysis, err := service.Stream(ctx, *email, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if analysis.Verdict == domain.VerdictPhishing {
		os.Exit(exitPhishing)
	}
}

// loadEmail parses the message file when one is given and falls back to the
// flag values otherwise
func loadEmail(logger *zap.Logger, path string, fromFlags domain.EmailRecord) (*domain.EmailRecord, error) {
	if path == "" {
		return &fromFlags, nil
	}

	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open message: %w", err)
		}
		defer f.Close()
		r = f
	}

	return mime.NewEnmimeParser(logger).Parse(r)
}
