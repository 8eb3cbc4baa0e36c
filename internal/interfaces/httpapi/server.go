package httpapi

import (
	"context"
	"net/http"
	"time"

	"fantasy-war-room/internal/platform/logging"
)

type ServerConfig struct {
	Addr             string
	ServiceName      string
	InternalJobToken string
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
}

// Server is the HTTP front of the war room.
type Server struct {
	httpServer *http.Server
	logger     *logging.Logger
}

func NewServer(cfg ServerConfig, handler *Handler, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 15 * time.Second
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 30 * time.Second
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = time.Minute
	}

	mux := newRouter(cfg, handler)
	root := chain(mux,
		RequestTracing(cfg.ServiceName),
		RecoverPanic(logger),
		RequestLogging(logger),
		CORS(),
	)

	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Addr,
			Handler:      root,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		logger: logger,
	}
}

// Start blocks until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("http server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server shutting down")
	return s.httpServer.Shutdown(ctx)
}
