package di

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/stoik/phishing-analyzer/internal/adapters/httpapi"
	"github.com/stoik/phishing-analyzer/internal/adapters/mime"
	"github.com/stoik/phishing-analyzer/internal/application"
	"github.com/stoik/phishing-analyzer/internal/config"
	"github.com/stoik/phishing-analyzer/internal/domain/detection"
	"github.com/stoik/phishing-analyzer/internal/logging"
	"github.com/stoik/phishing-analyzer/internal/metrics"
	"github.com/stoik/phishing-analyzer/internal/ports"
)

// BuildContainer creates and configures the dependency injection container
// for the HTTP server
func BuildContainer() (*dig.Container, error) {
	return buildContainer(config.New)
}

// buildContainer takes the configuration constructor so tests can skip the
// config file lookup
func buildContainer(newConfig any) (*dig.Container, error) {
	container := dig.New()

	providers := []any{
		newConfig,
		logging.InitLogger,

		// Metrics live on their own registry, with the process collectors
		// the default registry would have carried
		func() *prometheus.Registry {
			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			return reg
		},
		func(reg *prometheus.Registry) *metrics.Metrics {
			return metrics.New(reg)
		},

		detection.DefaultRegistry,
		application.NewAnalysisService,
		func(s *application.AnalysisService) ports.EmailAnalyzer { return s },
		func(logger *zap.Logger) ports.MessageParser { return mime.NewEnmimeParser(logger) },

		func(cfg *config.Config, reg *prometheus.Registry) (httpapi.Options, error) {
			timeout, err := cfg.GetDuration("server.analysis_timeout")
			if err != nil {
				return httpapi.Options{}, err
			}
			opts := httpapi.Options{
				MaxUploadBytes:  cfg.GetInt64("server.max_upload_bytes"),
				AnalysisTimeout: timeout,
			}
			if cfg.GetBool("metrics.enabled") {
				opts.MetricsPath = cfg.GetString("metrics.path")
				opts.Gatherer = reg
			}
			return opts, nil
		},
		httpapi.NewHandler,
	}

	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return nil, err
		}
	}

	return container, nil
}
