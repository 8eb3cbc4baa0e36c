package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fantasy-war-room/internal/domain/draft"
	"fantasy-war-room/internal/domain/identity"
	"fantasy-war-room/internal/domain/player"
	"fantasy-war-room/internal/platform/cache"
	"fantasy-war-room/internal/usecase"
)

type stubSources struct {
	roster  []player.Record
	entries []identity.Entry
	picks   []draft.Pick
}

func (s *stubSources) FetchRoster(context.Context) ([]player.Record, error) {
	return s.roster, nil
}

func (s *stubSources) FetchCatalog(context.Context) ([]identity.Entry, error) {
	return s.entries, nil
}

func (s *stubSources) FetchPicks(context.Context, string) ([]draft.Pick, error) {
	return s.picks, nil
}

func newTestServer(t *testing.T, token string) *httptest.Server {
	t.Helper()

	src := &stubSources{
		roster: []player.Record{
			{Name: "Christian McCaffrey", Position: player.PositionRB, HistoricalAvg: 188.1, ADP: 1.5, Projection: 22.4, Tier: 1},
			{Name: "Justin Jefferson", Position: player.PositionWR, HistoricalAvg: 150.3, ADP: 2.1, Projection: 21.0, Tier: 1},
		},
		entries: []identity.Entry{
			{Name: "Christian McCaffrey", ID: "1"},
			{Name: "Justin Jefferson", ID: "2"},
		},
		picks: []draft.Pick{
			{PickNo: 1, PlayerID: "1", DisplayName: "Christian McCaffrey", Position: player.PositionRB},
		},
	}

	warRoom := usecase.NewWarRoomService(usecase.WarRoomConfig{
		DraftID:    "d1",
		NumTeams:   10,
		MySlot:     1,
		RosterTTL:  time.Hour,
		CatalogTTL: time.Hour,
		PicksTTL:   time.Minute,
	}, src, src, src, cache.NewStore(), nil, nil)

	syncer := usecase.NewSourceSyncService(warRoom, 3, nil)
	handler := NewHandler(warRoom, syncer, nil)

	server := NewServer(ServerConfig{
		ServiceName:      "war-room-test",
		InternalJobToken: token,
	}, handler, nil)

	ts := httptest.NewServer(server.httpServer.Handler)
	t.Cleanup(ts.Close)
	return ts
}

func getEnvelope(t *testing.T, url string) (int, envelope) {
	t.Helper()

	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
	return resp.StatusCode, env
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, "")

	status, env := getEnvelope(t, ts.URL+"/healthz")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if env.APIVersion != apiVersion || env.Error != nil {
		t.Fatalf("envelope = %+v", env)
	}
}

func TestBoardSummary(t *testing.T) {
	ts := newTestServer(t, "")

	status, env := getEnvelope(t, ts.URL+"/v1/board")
	if status != http.StatusOK {
		t.Fatalf("status = %d, body %+v", status, env)
	}

	data := env.Data.(map[string]any)
	if data["pickCount"].(float64) != 1 {
		t.Fatalf("pickCount = %v", data["pickCount"])
	}
	if data["lastPick"] != "Christian McCaffrey" {
		t.Fatalf("lastPick = %v", data["lastPick"])
	}
	// Pick 2 of a 10-team draft puts slot 2 on the clock.
	if data["onClockSlot"].(float64) != 2 {
		t.Fatalf("onClockSlot = %v", data["onClockSlot"])
	}
}

func TestAvailableEndpoint(t *testing.T) {
	ts := newTestServer(t, "")

	status, env := getEnvelope(t, ts.URL+"/v1/board/available?position=WR&limit=5")
	if status != http.StatusOK {
		t.Fatalf("status = %d, body %+v", status, env)
	}

	data := env.Data.(map[string]any)
	players := data["players"].([]any)
	if len(players) != 1 {
		t.Fatalf("players = %v", players)
	}
	row := players[0].(map[string]any)
	if row["name"] != "Justin Jefferson" || row["position"] != "WR" {
		t.Fatalf("row = %v", row)
	}
}

func TestAvailableRejectsBadInput(t *testing.T) {
	ts := newTestServer(t, "")

	for _, url := range []string{
		ts.URL + "/v1/board/available?limit=nope",
		ts.URL + "/v1/board/available?limit=9999",
		ts.URL + "/v1/board/available?position=GOALIE",
	} {
		status, env := getEnvelope(t, url)
		if status != http.StatusBadRequest {
			t.Fatalf("%s status = %d, want 400", url, status)
		}
		if env.Error == nil || env.Error.Code != http.StatusBadRequest {
			t.Fatalf("%s error = %+v", url, env.Error)
		}
	}
}

func TestRosterEndpoint(t *testing.T) {
	ts := newTestServer(t, "")

	status, env := getEnvelope(t, ts.URL+"/v1/board/roster")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}

	data := env.Data.(map[string]any)
	if data["slot"].(float64) != 1 {
		t.Fatalf("slot = %v", data["slot"])
	}
	if len(data["picks"].([]any)) != 1 {
		t.Fatalf("picks = %v", data["picks"])
	}

	status, _ = getEnvelope(t, ts.URL+"/v1/board/roster?slot=99")
	if status != http.StatusBadRequest {
		t.Fatalf("out-of-range slot status = %d, want 400", status)
	}
}

func TestRefreshEndpoint(t *testing.T) {
	ts := newTestServer(t, "")

	resp, err := http.Post(ts.URL+"/v1/board/refresh", "application/json", nil)
	if err != nil {
		t.Fatalf("POST refresh: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestResyncRequiresToken(t *testing.T) {
	ts := newTestServer(t, "hunter2")

	resp, err := http.Post(ts.URL+"/v1/internal/jobs/resync", "application/json", nil)
	if err != nil {
		t.Fatalf("POST resync: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unauthenticated status = %d, want 401", resp.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/v1/internal/jobs/resync", nil)
	req.Header.Set("Authorization", "Bearer hunter2")
	resp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST resync with token: %v", err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("authenticated status = %d, want 200", resp2.StatusCode)
	}
}

func TestResyncDisabledWithoutConfiguredToken(t *testing.T) {
	ts := newTestServer(t, "")

	resp, err := http.Post(ts.URL+"/v1/internal/jobs/resync", "application/json", nil)
	if err != nil {
		t.Fatalf("POST resync: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 when token unset", resp.StatusCode)
	}
}
