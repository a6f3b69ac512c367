package observability

import (
	"context"
	"strings"

	"github.com/uptrace/uptrace-go/uptrace"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/pick-grader/internal/config"
	"github.com/riskibarqy/pick-grader/internal/platform/logging"
)

// InitUptrace installs the global tracer provider exporting to Uptrace. Grading metrics stay
// on Prometheus when METRICS_ADDR is set, so OTLP metrics are only exported without it.
func InitUptrace(cfg config.Config, logger *logging.Logger) (func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	noop := func(context.Context) error { return nil }
	if !cfg.UptraceEnabled {
		logger.Info("tracing export off", "reason", "UPTRACE_ENABLED=false")
		return noop, nil
	}
	if strings.TrimSpace(cfg.UptraceDSN) == "" {
		logger.Info("tracing export off", "reason", "UPTRACE_DSN empty")
		return noop, nil
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithResourceAttributes(deploymentAttributes(cfg)...),
		uptrace.WithMetricsEnabled(cfg.MetricsAddr == ""),
		uptrace.WithLoggingEnabled(cfg.UptraceLogsEnabled),
	)

	logger.Info("tracing export to uptrace",
		"service_name", cfg.ServiceName,
		"service_version", cfg.ServiceVersion,
		"environment", cfg.AppEnv,
		"otlp_metrics", cfg.MetricsAddr == "",
		"logs_enabled", cfg.UptraceLogsEnabled,
	)

	return uptrace.Shutdown, nil
}

// deploymentAttributes tags traces with the backends a submission ran against.
func deploymentAttributes(cfg config.Config) []attribute.KeyValue {
	storage, locks, events := "memory", "memory", "none"
	if cfg.DBURL != "" {
		storage = "postgres"
	}
	if cfg.RedisEnabled() {
		locks = "redis"
	}
	if cfg.KafkaEnabled() {
		events = "kafka"
	}

	return []attribute.KeyValue{
		attribute.String("pick_grader.storage", storage),
		attribute.String("pick_grader.locks", locks),
		attribute.String("pick_grader.events", events),
		attribute.Bool("pick_grader.cache", cfg.CacheEnabled),
	}
}
