package observability

import (
	"context"

	"github.com/uptrace/uptrace-go/uptrace"

	"fantasy-war-room/internal/platform/logging"
)

type TracingConfig struct {
	DSN            string
	ServiceName    string
	ServiceVersion string
	Environment    string
}

// InitTracing configures the OpenTelemetry SDK against Uptrace. With no DSN
// configured, tracing stays on the default no-op provider and the returned
// shutdown does nothing.
func InitTracing(cfg TracingConfig, logger *logging.Logger) func(context.Context) error {
	if cfg.DSN == "" {
		logger.Info("tracing disabled, no dsn configured")
		return func(context.Context) error { return nil }
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.DSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.Environment),
	)

	logger.Info("tracing enabled", "service", cfg.ServiceName, "env", cfg.Environment)
	return uptrace.Shutdown
}
