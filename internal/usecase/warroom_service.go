package usecase

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/sourcegraph/conc/pool"

	"fantasy-war-room/internal/domain/board"
	"fantasy-war-room/internal/domain/draft"
	"fantasy-war-room/internal/domain/identity"
	"fantasy-war-room/internal/domain/player"
	"fantasy-war-room/internal/domain/scoring"
	"fantasy-war-room/internal/infrastructure/notify"
	"fantasy-war-room/internal/platform/cache"
	"fantasy-war-room/internal/platform/logging"
)

// Source cache keys. Picks get their own key per draft so switching drafts
// mid-season cannot serve another draft's picks.
const (
	cacheKeyRoster  = "source:roster"
	cacheKeyCatalog = "source:catalog"
	cacheKeyPicks   = "source:picks:"
)

const suggestionLimit = 3

type RosterSource interface {
	FetchRoster(ctx context.Context) ([]player.Record, error)
}

type CatalogSource interface {
	FetchCatalog(ctx context.Context) ([]identity.Entry, error)
}

type PickSource interface {
	FetchPicks(ctx context.Context, draftID string) ([]draft.Pick, error)
}

type Notifier interface {
	Publish(ctx context.Context, event notify.Event) error
}

// Board is one immutable snapshot of the draft. A refresh builds a complete
// new Board and swaps it in atomically; readers never see a half-built one.
type Board struct {
	Scored      []scoring.ScoredPlayer
	Available   []scoring.ScoredPlayer
	Picks       []draft.Pick
	Index       board.ScoreIndex
	Catalog     identity.Catalog
	Unresolved  []string
	RefreshedAt time.Time
}

// UnresolvedPlayer is a roster name that could not be matched to a catalog
// ID, with the closest catalog names as a fixing aid.
type UnresolvedPlayer struct {
	Name        string
	Suggestions []string
}

// Summary is the at-a-glance draft state.
type Summary struct {
	DraftID        string
	NumTeams       int
	MySlot         int
	PickCount      int
	CurrentRound   int
	OnClockSlot    int
	LastPick       string
	AvailableCount int
	RefreshedAt    time.Time
}

type WarRoomConfig struct {
	DraftID    string
	NumTeams   int
	MySlot     int
	RosterTTL  time.Duration
	CatalogTTL time.Duration
	PicksTTL   time.Duration
}

// WarRoomService owns the live draft board: it pulls the three sources,
// runs the scoring pipeline, and answers board queries. A failed refresh
// keeps serving the previous snapshot.
type WarRoomService struct {
	cfg      WarRoomConfig
	roster   RosterSource
	catalog  CatalogSource
	picks    PickSource
	cache    *cache.Store
	notifier Notifier
	logger   *logging.Logger
	now      func() time.Time

	current atomic.Pointer[Board]
}

func NewWarRoomService(
	cfg WarRoomConfig,
	roster RosterSource,
	catalog CatalogSource,
	picks PickSource,
	store *cache.Store,
	notifier Notifier,
	logger *logging.Logger,
) *WarRoomService {
	if store == nil {
		store = cache.NewStore()
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	return &WarRoomService{
		cfg:      cfg,
		roster:   roster,
		catalog:  catalog,
		picks:    picks,
		cache:    store,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Refresh pulls all three sources, rebuilds the board, and swaps it in.
// Source fetches go through the TTL cache, so within a TTL window a refresh
// is cheap. If any source fails and a previous board exists, that board is
// returned unchanged; with no board at all the refresh fails.
func (s *WarRoomService) Refresh(ctx context.Context) (*Board, error) {
	ctx, span := startSpan(ctx, "WarRoomService.Refresh")
	defer span.End()

	var (
		rosterRecs []player.Record
		entries    []identity.Entry
		livePicks  []draft.Pick
	)

	p := pool.New().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		v, err := s.cache.GetOrLoad(ctx, cacheKeyRoster, s.cfg.RosterTTL, func(ctx context.Context) (any, error) {
			return s.roster.FetchRoster(ctx)
		})
		if err != nil {
			return errors.Wrap(err, "roster source")
		}
		rosterRecs = v.([]player.Record)
		return nil
	})
	p.Go(func(ctx context.Context) error {
		v, err := s.cache.GetOrLoad(ctx, cacheKeyCatalog, s.cfg.CatalogTTL, func(ctx context.Context) (any, error) {
			return s.catalog.FetchCatalog(ctx)
		})
		if err != nil {
			return errors.Wrap(err, "catalog source")
		}
		entries = v.([]identity.Entry)
		return nil
	})
	p.Go(func(ctx context.Context) error {
		v, err := s.cache.GetOrLoad(ctx, cacheKeyPicks+s.cfg.DraftID, s.cfg.PicksTTL, func(ctx context.Context) (any, error) {
			return s.picks.FetchPicks(ctx, s.cfg.DraftID)
		})
		if err != nil {
			return errors.Wrap(err, "pick source")
		}
		livePicks = v.([]draft.Pick)
		return nil
	})

	if err := p.Wait(); err != nil {
		if prev := s.current.Load(); prev != nil {
			s.logger.WarnContext(ctx, "refresh failed, serving previous board",
				"error", err,
				"board_age", s.now().Sub(prev.RefreshedAt).String(),
			)
			return prev, nil
		}
		return nil, errors.Mark(err, ErrDependencyUnavailable)
	}

	b := s.buildBoard(rosterRecs, entries, livePicks)
	prev := s.current.Swap(b)

	s.logger.InfoContext(ctx, "board refreshed",
		"players", len(b.Scored),
		"available", len(b.Available),
		"picks", len(b.Picks),
		"unresolved", len(b.Unresolved),
	)

	s.publishIfChanged(ctx, prev, b)
	return b, nil
}

// ForceRefresh drops the cached picks first so the next refresh hits the
// draft platform even inside the TTL window. Roster and catalog keep their
// cache; they change on a much slower clock.
func (s *WarRoomService) ForceRefresh(ctx context.Context) (*Board, error) {
	s.cache.Invalidate(cacheKeyPicks + s.cfg.DraftID)
	return s.Refresh(ctx)
}

func (s *WarRoomService) buildBoard(records []player.Record, entries []identity.Entry, picks []draft.Pick) *Board {
	cat := identity.BuildCatalog(entries)

	scored := make([]scoring.ScoredPlayer, 0, len(records))
	var unresolved []string
	for _, rec := range records {
		id, ok := cat.Resolve(rec.Name)
		if !ok {
			unresolved = append(unresolved, rec.Name)
		}
		scored = append(scored, scoring.ScoredPlayer{
			Record:     rec,
			Score:      scoring.Score(rec),
			ExternalID: id,
		})
	}

	return &Board{
		Scored:      scored,
		Available:   board.FilterAvailable(scored, picks),
		Picks:       picks,
		Index:       board.BuildScoreIndex(scored),
		Catalog:     cat,
		Unresolved:  unresolved,
		RefreshedAt: s.now(),
	}
}

func (s *WarRoomService) publishIfChanged(ctx context.Context, prev, next *Board) {
	if s.notifier == nil {
		return
	}
	if prev != nil && len(prev.Picks) == len(next.Picks) {
		return
	}

	event := notify.Event{
		Type:        "board.refreshed",
		DraftID:     s.cfg.DraftID,
		PickCount:   len(next.Picks),
		OnClockSlot: draft.SlotForPick(len(next.Picks)+1, s.cfg.NumTeams),
		RefreshedAt: next.RefreshedAt,
	}
	if n := len(next.Picks); n > 0 {
		event.LastPick = next.Picks[n-1].DisplayName
	}

	// Delivery failures are already logged by the publisher.
	_ = s.notifier.Publish(ctx, event)
}

// currentBoard returns the latest snapshot, refreshing lazily when none
// exists yet or the pick TTL has elapsed since the last build.
func (s *WarRoomService) currentBoard(ctx context.Context) (*Board, error) {
	b := s.current.Load()
	if b != nil && s.now().Sub(b.RefreshedAt) < s.cfg.PicksTTL {
		return b, nil
	}
	return s.Refresh(ctx)
}

// Available lists undrafted players, best score first. position filters to
// one position, "FLEX" to the RB/WR/TE union, empty keeps everyone. limit
// caps the result when positive.
func (s *WarRoomService) Available(ctx context.Context, position string, limit int) ([]scoring.ScoredPlayer, error) {
	ctx, span := startSpan(ctx, "WarRoomService.Available")
	defer span.End()

	b, err := s.currentBoard(ctx)
	if err != nil {
		return nil, err
	}

	players := b.Available
	switch value := strings.ToUpper(strings.TrimSpace(position)); value {
	case "":
	case "FLEX":
		players = board.Flex(players)
	default:
		pos := player.ParsePosition(value)
		if _, known := player.AllPositions[pos]; !known {
			return nil, errors.Wrapf(ErrInvalidInput, "unknown position %q", position)
		}
		players = board.ByPosition(players, pos)
	}

	if limit > 0 && len(players) > limit {
		players = players[:limit]
	}

	out := make([]scoring.ScoredPlayer, len(players))
	copy(out, players)
	return out, nil
}

// PowerRanking returns per-slot draft-efficiency standings, best first.
func (s *WarRoomService) PowerRanking(ctx context.Context) ([]board.SlotStanding, error) {
	ctx, span := startSpan(ctx, "WarRoomService.PowerRanking")
	defer span.End()

	b, err := s.currentBoard(ctx)
	if err != nil {
		return nil, err
	}
	return board.PowerRanking(b.Picks, b.Index, s.cfg.NumTeams, s.cfg.MySlot), nil
}

// Roster returns the given slot's picks and remaining lineup needs. A
// non-positive slot means the configured own slot.
func (s *WarRoomService) Roster(ctx context.Context, slot int) (board.Roster, error) {
	ctx, span := startSpan(ctx, "WarRoomService.Roster")
	defer span.End()

	if slot <= 0 {
		slot = s.cfg.MySlot
	}
	if slot < 1 || slot > s.cfg.NumTeams {
		return board.Roster{}, errors.Wrapf(ErrInvalidInput, "slot %d outside 1..%d", slot, s.cfg.NumTeams)
	}

	b, err := s.currentBoard(ctx)
	if err != nil {
		return board.Roster{}, err
	}
	return board.RosterForSlot(b.Picks, b.Index, slot, s.cfg.NumTeams, nil), nil
}

// Unresolved reports roster names that did not resolve to a catalog ID,
// each with the closest catalog names attached.
func (s *WarRoomService) Unresolved(ctx context.Context) ([]UnresolvedPlayer, error) {
	ctx, span := startSpan(ctx, "WarRoomService.Unresolved")
	defer span.End()

	b, err := s.currentBoard(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]UnresolvedPlayer, 0, len(b.Unresolved))
	for _, name := range b.Unresolved {
		out = append(out, UnresolvedPlayer{
			Name:        name,
			Suggestions: b.Catalog.Suggest(name, suggestionLimit),
		})
	}
	return out, nil
}

// DraftSummary returns the at-a-glance draft state.
func (s *WarRoomService) DraftSummary(ctx context.Context) (Summary, error) {
	ctx, span := startSpan(ctx, "WarRoomService.DraftSummary")
	defer span.End()

	b, err := s.currentBoard(ctx)
	if err != nil {
		return Summary{}, err
	}

	nextPick := len(b.Picks) + 1
	summary := Summary{
		DraftID:        s.cfg.DraftID,
		NumTeams:       s.cfg.NumTeams,
		MySlot:         s.cfg.MySlot,
		PickCount:      len(b.Picks),
		CurrentRound:   draft.RoundForPick(nextPick, s.cfg.NumTeams),
		OnClockSlot:    draft.SlotForPick(nextPick, s.cfg.NumTeams),
		AvailableCount: len(b.Available),
		RefreshedAt:    b.RefreshedAt,
	}
	if n := len(b.Picks); n > 0 {
		summary.LastPick = b.Picks[n-1].DisplayName
	}
	return summary, nil
}
