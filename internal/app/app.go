package app

import (
	"context"
	"net/http"
	"time"

	"fantasy-war-room/internal/config"
	"fantasy-war-room/internal/infrastructure/notify"
	"fantasy-war-room/internal/infrastructure/sheetfeed"
	"fantasy-war-room/internal/infrastructure/sleeper"
	"fantasy-war-room/internal/interfaces/httpapi"
	"fantasy-war-room/internal/observability"
	"fantasy-war-room/internal/platform/cache"
	"fantasy-war-room/internal/platform/logging"
	"fantasy-war-room/internal/platform/resilience"
	"fantasy-war-room/internal/usecase"
)

// App wires configuration, sources, services, and servers together.
type App struct {
	cfg    config.Config
	logger *logging.Logger

	server      *httpapi.Server
	pprofServer *http.Server

	stopProfiling func()
	stopTracing   func(context.Context) error
}

func New(cfg config.Config, logger *logging.Logger) *App {
	stopTracing := observability.InitTracing(observability.TracingConfig{
		DSN:            cfg.Observability.UptraceDSN,
		ServiceName:    cfg.App.Name,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Env,
	}, logger)

	stopProfiling := observability.InitProfiling(observability.ProfilingConfig{
		Enabled:         cfg.Observability.PyroscopeEnabled,
		ServerAddress:   cfg.Observability.PyroscopeAddr,
		ApplicationName: cfg.App.Name,
		AuthToken:       cfg.Observability.PyroscopeToken,
		Environment:     cfg.App.Env,
	}, logger)

	pprofServer := observability.StartPprof(observability.PprofConfig{
		Enabled: cfg.Observability.PprofEnabled,
		Addr:    cfg.Observability.PprofAddr,
	}, logger)

	rosterClient := sheetfeed.NewClient(sheetfeed.Config{
		URL:        cfg.Sources.SheetURL,
		Timeout:    cfg.Sources.SheetTimeout,
		MaxRetries: cfg.Sources.SheetMaxRetries,
	}, logger.With("component", "sheetfeed"))

	sleeperClient := sleeper.NewClient(sleeper.Config{
		BaseURL:        cfg.Sources.SleeperBaseURL,
		Timeout:        cfg.Sources.SleeperTimeout,
		MaxRetries:     cfg.Sources.SleeperMaxRetries,
		RequestsPerSec: cfg.Sources.SleeperRPS,
		Breaker:        resilience.DefaultCircuitBreakerConfig(),
	}, logger.With("component", "sleeper"))

	publisher := notify.NewWebhookPublisher(notify.Config{
		URL:     cfg.Webhook.URL,
		Token:   cfg.Webhook.Token,
		Timeout: cfg.Webhook.Timeout,
		Breaker: resilience.DefaultCircuitBreakerConfig(),
	}, logger.With("component", "webhook"))

	var notifier usecase.Notifier
	if publisher != nil {
		notifier = publisher
	}

	warRoom := usecase.NewWarRoomService(usecase.WarRoomConfig{
		DraftID:    cfg.Draft.ID,
		NumTeams:   cfg.Draft.NumTeams,
		MySlot:     cfg.Draft.MySlot,
		RosterTTL:  cfg.Sources.RosterTTL,
		CatalogTTL: cfg.Sources.CatalogTTL,
		PicksTTL:   cfg.Sources.PicksTTL,
	}, rosterClient, sleeperClient, sleeperClient, cache.NewStore(), notifier, logger.With("component", "warroom"))

	syncer := usecase.NewSourceSyncService(warRoom, cfg.Jobs.SyncMaxWorkers, logger.With("component", "resync"))

	handler := httpapi.NewHandler(warRoom, syncer, logger)
	server := httpapi.NewServer(httpapi.ServerConfig{
		Addr:             cfg.App.HTTPAddr,
		ServiceName:      cfg.App.Name,
		InternalJobToken: cfg.Jobs.InternalJobToken,
	}, handler, logger)

	return &App{
		cfg:           cfg,
		logger:        logger,
		server:        server,
		pprofServer:   pprofServer,
		stopProfiling: stopProfiling,
		stopTracing:   stopTracing,
	}
}

// Run serves HTTP until the context is canceled, then shuts everything down.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- a.server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http shutdown failed", "error", err)
	}
	if a.pprofServer != nil {
		if err := a.pprofServer.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("pprof shutdown failed", "error", err)
		}
	}
	a.stopProfiling()
	if err := a.stopTracing(shutdownCtx); err != nil {
		a.logger.Error("tracing shutdown failed", "error", err)
	}

	return nil
}
