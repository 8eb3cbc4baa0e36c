package observability

import (
	"net/http"
	"net/http/pprof"
	"time"

	"fantasy-war-room/internal/platform/logging"
)

type PprofConfig struct {
	Enabled bool
	Addr    string
}

// StartPprof serves the pprof handlers on a dedicated listener, kept off the
// public API server. Returns the server for shutdown, or nil when disabled.
func StartPprof(cfg PprofConfig, logger *logging.Logger) *http.Server {
	if !cfg.Enabled {
		return nil
	}
	if cfg.Addr == "" {
		cfg.Addr = "localhost:6060"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	srv := &http.Server{
		Addr:        cfg.Addr,
		Handler:     mux,
		ReadTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("pprof server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("pprof server failed", "error", err)
		}
	}()

	return srv
}
