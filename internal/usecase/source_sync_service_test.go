package usecase

import (
	"context"
	"errors"
	"testing"
)

func TestResyncRewarmsAllSources(t *testing.T) {
	src := testSources()
	warRoom := newTestService(src, nil)
	if _, err := warRoom.Refresh(context.Background()); err != nil {
		t.Fatalf("initial refresh: %v", err)
	}

	sync := NewSourceSyncService(warRoom, 3, nil)
	report, err := sync.Resync(context.Background())
	if err != nil {
		t.Fatalf("Resync: %v", err)
	}

	if len(report.Results) != 3 {
		t.Fatalf("results = %+v, want 3", report.Results)
	}
	// Results are sorted by source name.
	wantOrder := []string{"catalog", "picks", "roster"}
	for i, want := range wantOrder {
		if report.Results[i].Source != want || report.Results[i].Status != syncStatusOK {
			t.Fatalf("results[%d] = %+v, want %s ok", i, report.Results[i], want)
		}
	}
	if !report.BoardRebuilt {
		t.Fatal("board should have been rebuilt")
	}

	// Every source fetched twice: initial refresh, then forced rewarm.
	if src.rosterCalls != 2 || src.catalogCalls != 2 || src.picksCalls != 2 {
		t.Fatalf("sources fetched %d/%d/%d times, want 2 each",
			src.rosterCalls, src.catalogCalls, src.picksCalls)
	}
}

func TestResyncReportsPerSourceFailure(t *testing.T) {
	src := testSources()
	src.rosterErr = errors.New("sheet gone")

	warRoom := newTestService(src, nil)
	sync := NewSourceSyncService(warRoom, 2, nil)

	report, err := sync.Resync(context.Background())
	if err != nil {
		t.Fatalf("Resync: %v", err)
	}

	var rosterResult *SyncResult
	for i := range report.Results {
		if report.Results[i].Source == "roster" {
			rosterResult = &report.Results[i]
		}
	}
	if rosterResult == nil || rosterResult.Status != syncStatusFailed || rosterResult.Error == "" {
		t.Fatalf("roster result = %+v, want failed with error", rosterResult)
	}

	// No board existed and the roster source is down, so no rebuild.
	if report.BoardRebuilt {
		t.Fatal("board rebuild should have failed")
	}
}
