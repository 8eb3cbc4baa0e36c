package observability

import (
	pyroscope "github.com/grafana/pyroscope-go"

	"fantasy-war-room/internal/platform/logging"
)

type ProfilingConfig struct {
	Enabled         bool
	ServerAddress   string
	ApplicationName string
	AuthToken       string
	Environment     string
}

// InitProfiling starts the continuous profiler. Returns a stop function;
// both the disabled path and a failed start return a no-op stop so the
// caller never branches.
func InitProfiling(cfg ProfilingConfig, logger *logging.Logger) func() {
	if !cfg.Enabled || cfg.ServerAddress == "" {
		return func() {}
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: cfg.ApplicationName,
		ServerAddress:   cfg.ServerAddress,
		AuthToken:       cfg.AuthToken,
		Logger:          nil,
		Tags:            map[string]string{"env": cfg.Environment},
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocObjects,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseObjects,
			pyroscope.ProfileInuseSpace,
		},
	})
	if err != nil {
		logger.Warn("profiling failed to start", "error", err)
		return func() {}
	}

	logger.Info("profiling enabled", "server", cfg.ServerAddress)
	return func() {
		_ = profiler.Stop()
	}
}
