package httpapi

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stoik/phishing-analyzer/internal/metrics"
	"github.com/stoik/phishing-analyzer/internal/ports"
	"go.uber.org/zap"
)

// Options tunes the HTTP transport
type Options struct {
	MaxUploadBytes  int64
	AnalysisTimeout time.Duration

	// MetricsPath serves Gatherer when both are set
	MetricsPath string
	Gatherer    prometheus.Gatherer
}

// Handler exposes the analyzer over HTTP
//
// The handler is glue: it turns requests into email records and forwards the
// analysis lines to the client as they are produced.
type Handler struct {
	analyzer ports.EmailAnalyzer
	parser   ports.MessageParser
	metrics  *metrics.Metrics
	logger   *zap.Logger
	opts     Options
}

// NewHandler creates a new HTTP handler
func NewHandler(
	analyzer ports.EmailAnalyzer,
	parser ports.MessageParser,
	metrics *metrics.Metrics,
	logger *zap.Logger,
	opts Options,
) *Handler {
	return &Handler{
		analyzer: analyzer,
		parser:   parser,
		metrics:  metrics,
		logger:   logger,
		opts:     opts,
	}
}

// Routes registers every route on a fresh mux wrapped in request logging
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", h.index)
	mux.HandleFunc("POST /analyze", h.analyzeForm)
	mux.HandleFunc("POST /analyze/raw", h.analyzeRaw)
	mux.HandleFunc("GET /tools", h.listTools)
	mux.HandleFunc("POST /tools/{name}", h.runTool)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok\n"))
	})

	if h.opts.MetricsPath != "" && h.opts.Gatherer != nil {
		mux.Handle("GET "+h.opts.MetricsPath, promhttp.HandlerFor(h.opts.Gatherer, promhttp.HandlerOpts{}))
	}

	return h.logRequests(mux)
}
