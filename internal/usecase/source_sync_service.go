package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"fantasy-war-room/internal/platform/logging"
)

const (
	syncStatusOK     = "ok"
	syncStatusFailed = "failed"
)

// SyncResult is the outcome of re-warming one source.
type SyncResult struct {
	Source   string
	Status   string
	Duration time.Duration
	Error    string
}

// SyncReport is the outcome of a full resync run.
type SyncReport struct {
	StartedAt    time.Time
	Duration     time.Duration
	Results      []SyncResult
	BoardRebuilt bool
}

// SourceSyncService drops every cached source and re-warms them on a worker
// pool, then rebuilds the board. It backs the internal resync job endpoint,
// for when a source is known stale (roster sheet edited, catalog corrected)
// and waiting out the TTL is not acceptable.
type SourceSyncService struct {
	warRoom *WarRoomService
	workers int
	logger  *logging.Logger
}

func NewSourceSyncService(warRoom *WarRoomService, workers int, logger *logging.Logger) *SourceSyncService {
	if workers < 1 {
		workers = 3
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &SourceSyncService{warRoom: warRoom, workers: workers, logger: logger}
}

type syncTask struct {
	source string
	warm   func(context.Context) error
}

// Resync re-warms all sources and rebuilds the board. Individual source
// failures are reported per task, not fatal to the run; the board rebuild at
// the end falls back to stale data the same way a normal refresh does.
func (s *SourceSyncService) Resync(ctx context.Context) (SyncReport, error) {
	ctx, span := startSpan(ctx, "SourceSyncService.Resync")
	defer span.End()

	start := s.warRoom.now()
	report := SyncReport{StartedAt: start}

	w := s.warRoom
	tasks := []syncTask{
		{source: "roster", warm: func(ctx context.Context) error {
			w.cache.Invalidate(cacheKeyRoster)
			_, err := w.cache.GetOrLoad(ctx, cacheKeyRoster, w.cfg.RosterTTL, func(ctx context.Context) (any, error) {
				return w.roster.FetchRoster(ctx)
			})
			return err
		}},
		{source: "catalog", warm: func(ctx context.Context) error {
			w.cache.Invalidate(cacheKeyCatalog)
			_, err := w.cache.GetOrLoad(ctx, cacheKeyCatalog, w.cfg.CatalogTTL, func(ctx context.Context) (any, error) {
				return w.catalog.FetchCatalog(ctx)
			})
			return err
		}},
		{source: "picks", warm: func(ctx context.Context) error {
			key := cacheKeyPicks + w.cfg.DraftID
			w.cache.Invalidate(key)
			_, err := w.cache.GetOrLoad(ctx, key, w.cfg.PicksTTL, func(ctx context.Context) (any, error) {
				return w.picks.FetchPicks(ctx, w.cfg.DraftID)
			})
			return err
		}},
	}

	p, err := ants.NewPool(s.workers)
	if err != nil {
		return report, err
	}
	defer p.Release()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make([]SyncResult, 0, len(tasks))
	)

	record := func(r SyncResult) {
		mu.Lock()
		results = append(results, r)
		mu.Unlock()
	}

	for _, task := range tasks {
		task := task
		wg.Add(1)
		submitErr := p.Submit(func() {
			defer wg.Done()

			taskStart := time.Now()
			result := SyncResult{Source: task.source, Status: syncStatusOK}
			if err := task.warm(ctx); err != nil {
				result.Status = syncStatusFailed
				result.Error = err.Error()
				s.logger.WarnContext(ctx, "source sync failed", "source", task.source, "error", err)
			}
			result.Duration = time.Since(taskStart)
			record(result)
		})
		if submitErr != nil {
			wg.Done()
			record(SyncResult{Source: task.source, Status: syncStatusFailed, Error: submitErr.Error()})
		}
	}
	wg.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].Source < results[j].Source })
	report.Results = results
	if _, err := s.warRoom.Refresh(ctx); err == nil {
		report.BoardRebuilt = true
	} else {
		s.logger.ErrorContext(ctx, "board rebuild after resync failed", "error", err)
	}
	report.Duration = s.warRoom.now().Sub(start)

	s.logger.InfoContext(ctx, "source resync finished",
		"sources", len(report.Results),
		"board_rebuilt", report.BoardRebuilt,
		"duration", report.Duration.String(),
	)
	return report, nil
}
