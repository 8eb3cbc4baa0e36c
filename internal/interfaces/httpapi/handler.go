package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"fantasy-war-room/internal/domain/board"
	"fantasy-war-room/internal/domain/scoring"
	"fantasy-war-room/internal/platform/logging"
	"fantasy-war-room/internal/usecase"
)

const defaultAvailableLimit = 50

// Handler holds the route handlers and their dependencies.
type Handler struct {
	warRoom  *usecase.WarRoomService
	syncer   *usecase.SourceSyncService
	validate *validator.Validate
	logger   *logging.Logger
}

func NewHandler(warRoom *usecase.WarRoomService, syncer *usecase.SourceSyncService, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handler{
		warRoom:  warRoom,
		syncer:   syncer,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, map[string]string{"status": "ok"})
}

type summaryResponse struct {
	DraftID        string    `json:"draftId"`
	NumTeams       int       `json:"numTeams"`
	MySlot         int       `json:"mySlot"`
	PickCount      int       `json:"pickCount"`
	CurrentRound   int       `json:"currentRound"`
	OnClockSlot    int       `json:"onClockSlot"`
	LastPick       string    `json:"lastPick,omitempty"`
	AvailableCount int       `json:"availableCount"`
	RefreshedAt    time.Time `json:"refreshedAt"`
}

func (h *Handler) handleBoardSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.warRoom.DraftSummary(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "board summary failed", "error", err)
		respondUsecaseError(w, err)
		return
	}

	respondData(w, http.StatusOK, summaryResponse{
		DraftID:        summary.DraftID,
		NumTeams:       summary.NumTeams,
		MySlot:         summary.MySlot,
		PickCount:      summary.PickCount,
		CurrentRound:   summary.CurrentRound,
		OnClockSlot:    summary.OnClockSlot,
		LastPick:       summary.LastPick,
		AvailableCount: summary.AvailableCount,
		RefreshedAt:    summary.RefreshedAt,
	})
}

type availableQuery struct {
	Position string `validate:"omitempty,alpha,max=5"`
	Limit    int    `validate:"min=0,max=500"`
}

type playerResponse struct {
	Name          string  `json:"name"`
	Position      string  `json:"position"`
	Score         float64 `json:"score"`
	ADP           float64 `json:"adp"`
	Projection    float64 `json:"projection"`
	HistoricalAvg float64 `json:"historicalAvg"`
	Tier          int     `json:"tier,omitempty"`
	ExternalID    string  `json:"externalId,omitempty"`
}

func toPlayerResponses(players []scoring.ScoredPlayer) []playerResponse {
	out := make([]playerResponse, 0, len(players))
	for _, p := range players {
		out = append(out, playerResponse{
			Name:          p.Name,
			Position:      string(p.Position),
			Score:         p.Score,
			ADP:           p.ADP,
			Projection:    p.Projection,
			HistoricalAvg: p.HistoricalAvg,
			Tier:          p.Tier,
			ExternalID:    p.ExternalID,
		})
	}
	return out
}

func (h *Handler) handleAvailable(w http.ResponseWriter, r *http.Request) {
	query := availableQuery{
		Position: r.URL.Query().Get("position"),
		Limit:    defaultAvailableLimit,
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		query.Limit = limit
	}
	if err := h.validate.Struct(query); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	players, err := h.warRoom.Available(r.Context(), query.Position, query.Limit)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "available players failed", "error", err)
		respondUsecaseError(w, err)
		return
	}

	respondData(w, http.StatusOK, map[string]any{
		"count":   len(players),
		"players": toPlayerResponses(players),
	})
}

type standingResponse struct {
	Slot         int     `json:"slot"`
	Label        string  `json:"label"`
	Self         bool    `json:"self"`
	PickCount    int     `json:"pickCount"`
	AverageScore float64 `json:"averageScore"`
	TotalScore   float64 `json:"totalScore"`
}

func (h *Handler) handlePowerRanking(w http.ResponseWriter, r *http.Request) {
	ranking, err := h.warRoom.PowerRanking(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "power ranking failed", "error", err)
		respondUsecaseError(w, err)
		return
	}

	out := make([]standingResponse, 0, len(ranking))
	for _, s := range ranking {
		out = append(out, standingResponse{
			Slot:         s.Slot,
			Label:        s.Label,
			Self:         s.Self,
			PickCount:    s.PickCount,
			AverageScore: s.AverageScore,
			TotalScore:   s.TotalScore,
		})
	}
	respondData(w, http.StatusOK, map[string]any{"standings": out})
}

type rosterPickResponse struct {
	PickNo   int     `json:"pickNo"`
	Round    int     `json:"round"`
	Name     string  `json:"name"`
	Position string  `json:"position"`
	Score    float64 `json:"score"`
}

type rosterResponse struct {
	Slot       int                  `json:"slot"`
	Picks      []rosterPickResponse `json:"picks"`
	Counts     map[string]int       `json:"countsByPosition"`
	Needs      map[string]int       `json:"needsByPosition"`
	FlexNeeded int                  `json:"flexNeeded"`
}

func toRosterResponse(roster board.Roster) rosterResponse {
	out := rosterResponse{
		Slot:       roster.Slot,
		Picks:      make([]rosterPickResponse, 0, len(roster.Picks)),
		Counts:     make(map[string]int, len(roster.CountsByPosition)),
		Needs:      make(map[string]int, len(roster.NeedsByPosition)),
		FlexNeeded: roster.FlexNeeded,
	}
	for _, pick := range roster.Picks {
		out.Picks = append(out.Picks, rosterPickResponse{
			PickNo:   pick.PickNo,
			Round:    pick.Round,
			Name:     pick.DisplayName,
			Position: string(pick.Position),
			Score:    pick.Score,
		})
	}
	for pos, n := range roster.CountsByPosition {
		out.Counts[string(pos)] = n
	}
	for pos, n := range roster.NeedsByPosition {
		out.Needs[string(pos)] = n
	}
	return out
}

func (h *Handler) handleRoster(w http.ResponseWriter, r *http.Request) {
	slot := 0
	if raw := r.URL.Query().Get("slot"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "slot must be an integer")
			return
		}
		slot = parsed
	}

	roster, err := h.warRoom.Roster(r.Context(), slot)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "roster lookup failed", "error", err, "slot", slot)
		respondUsecaseError(w, err)
		return
	}
	respondData(w, http.StatusOK, toRosterResponse(roster))
}

type unresolvedResponse struct {
	Name        string   `json:"name"`
	Suggestions []string `json:"suggestions,omitempty"`
}

func (h *Handler) handleUnresolved(w http.ResponseWriter, r *http.Request) {
	unresolved, err := h.warRoom.Unresolved(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "unresolved lookup failed", "error", err)
		respondUsecaseError(w, err)
		return
	}

	out := make([]unresolvedResponse, 0, len(unresolved))
	for _, u := range unresolved {
		out = append(out, unresolvedResponse{Name: u.Name, Suggestions: u.Suggestions})
	}
	respondData(w, http.StatusOK, map[string]any{
		"count":   len(out),
		"players": out,
	})
}

func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	b, err := h.warRoom.ForceRefresh(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "board refresh failed", "error", err)
		respondUsecaseError(w, err)
		return
	}

	respondData(w, http.StatusOK, map[string]any{
		"pickCount":   len(b.Picks),
		"available":   len(b.Available),
		"unresolved":  len(b.Unresolved),
		"refreshedAt": b.RefreshedAt,
	})
}

type syncResultResponse struct {
	Source   string `json:"source"`
	Status   string `json:"status"`
	Duration string `json:"duration"`
	Error    string `json:"error,omitempty"`
}

func (h *Handler) handleResync(w http.ResponseWriter, r *http.Request) {
	report, err := h.syncer.Resync(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "source resync failed", "error", err)
		respondUsecaseError(w, err)
		return
	}

	results := make([]syncResultResponse, 0, len(report.Results))
	for _, res := range report.Results {
		results = append(results, syncResultResponse{
			Source:   res.Source,
			Status:   res.Status,
			Duration: res.Duration.String(),
			Error:    res.Error,
		})
	}
	respondData(w, http.StatusOK, map[string]any{
		"startedAt":    report.StartedAt,
		"duration":     report.Duration.String(),
		"boardRebuilt": report.BoardRebuilt,
		"results":      results,
	})
}
