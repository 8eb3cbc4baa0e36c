package board

import (
	"testing"

	"fantasy-war-room/internal/domain/draft"
	"fantasy-war-room/internal/domain/player"
	"fantasy-war-room/internal/domain/scoring"
)

func scored(name string, pos player.Position, score float64, externalID string) scoring.ScoredPlayer {
	return scoring.ScoredPlayer{
		Record:     player.Record{Name: name, Position: pos},
		Score:      score,
		ExternalID: externalID,
	}
}

func TestFilterAvailableExcludesByIDOrName(t *testing.T) {
	players := []scoring.ScoredPlayer{
		scored("Pat Mahomes", player.PositionQB, 250, "100"),
		scored("Tyreek Hill", player.PositionWR, 240, "200"),
		scored("Nick Chubb", player.PositionRB, 230, ""),
	}

	picks := []draft.Pick{
		// ID matches even though the display name differs.
		{PickNo: 1, PlayerID: "100", DisplayName: "Patrick Mahomes"},
		// No usable ID, but the name matches an unresolved player.
		{PickNo: 2, PlayerID: "", DisplayName: "Nick Chubb"},
	}

	got := FilterAvailable(players, picks)
	if len(got) != 1 || got[0].Name != "Tyreek Hill" {
		t.Fatalf("available = %+v, want only Tyreek Hill", got)
	}
}

func TestFilterAvailableOrdersByScoreStable(t *testing.T) {
	players := []scoring.ScoredPlayer{
		scored("Low", player.PositionRB, 10, "1"),
		scored("TieFirst", player.PositionWR, 50, "2"),
		scored("TieSecond", player.PositionWR, 50, "3"),
		scored("High", player.PositionRB, 90, "4"),
	}

	got := FilterAvailable(players, nil)
	wantOrder := []string{"High", "TieFirst", "TieSecond", "Low"}
	for i, name := range wantOrder {
		if got[i].Name != name {
			t.Fatalf("position %d = %s, want %s", i, got[i].Name, name)
		}
	}
}

func TestFilterAvailableEmptyPickListKeepsEveryone(t *testing.T) {
	players := []scoring.ScoredPlayer{scored("A", player.PositionRB, 305.66, "1")}
	if got := FilterAvailable(players, nil); len(got) != 1 {
		t.Fatalf("available = %d players, want 1", len(got))
	}
}

func TestPositionViews(t *testing.T) {
	players := []scoring.ScoredPlayer{
		scored("QB1", player.PositionQB, 1, "1"),
		scored("RB1", player.PositionRB, 2, "2"),
		scored("WR1", player.PositionWR, 3, "3"),
		scored("TE1", player.PositionTE, 4, "4"),
		scored("K1", player.PositionK, 5, "5"),
	}

	if got := ByPosition(players, player.PositionQB); len(got) != 1 || got[0].Name != "QB1" {
		t.Fatalf("ByPosition(QB) = %+v", got)
	}

	flex := Flex(players)
	if len(flex) != 3 {
		t.Fatalf("Flex returned %d players, want RB/WR/TE", len(flex))
	}
	for _, p := range flex {
		if p.Position == player.PositionQB || p.Position == player.PositionK {
			t.Fatalf("Flex must not contain %s", p.Position)
		}
	}
}

func TestPowerRanking(t *testing.T) {
	players := []scoring.ScoredPlayer{
		scored("Star", player.PositionRB, 300, "1"),
		scored("Solid", player.PositionWR, 200, "2"),
	}
	idx := BuildScoreIndex(players)

	picks := []draft.Pick{
		{PickNo: 1, PlayerID: "1", DisplayName: "Star"},      // slot 1
		{PickNo: 2, PlayerID: "2", DisplayName: "Solid"},     // slot 2
		{PickNo: 4, PlayerID: "x", DisplayName: "Unsheeted"}, // slot 4, neutral 50
	}

	got := PowerRanking(picks, idx, 10, 2)
	if len(got) != 3 {
		t.Fatalf("ranking has %d slots, want 3 (zero-pick slots omitted)", len(got))
	}
	if got[0].Slot != 1 || got[0].AverageScore != 300 {
		t.Fatalf("best slot = %+v, want slot 1 avg 300", got[0])
	}
	if got[1].Slot != 2 || !got[1].Self || got[1].Label != "Team 2 (you)" {
		t.Fatalf("self slot = %+v, want labeled Team 2 (you)", got[1])
	}
	if got[2].Slot != 4 || got[2].AverageScore != 50 {
		t.Fatalf("unmatched pick = %+v, want neutral 50", got[2])
	}
}

func TestRosterForSlot(t *testing.T) {
	idx := BuildScoreIndex([]scoring.ScoredPlayer{
		scored("Back One", player.PositionRB, 280, "1"),
		scored("Back Two", player.PositionRB, 260, "2"),
		scored("Back Three", player.PositionRB, 240, "3"),
	})

	// 10-team snake, slot 1 owns picks 1, 20, 21.
	picks := []draft.Pick{
		{PickNo: 1, PlayerID: "1", DisplayName: "Back One", Position: player.PositionRB},
		{PickNo: 2, PlayerID: "9", DisplayName: "Someone Else", Position: player.PositionWR},
		{PickNo: 20, PlayerID: "2", DisplayName: "Back Two", Position: player.PositionRB},
		{PickNo: 21, PlayerID: "3", DisplayName: "Back Three", Position: player.PositionRB},
	}

	roster := RosterForSlot(picks, idx, 1, 10, nil)
	if len(roster.Picks) != 3 {
		t.Fatalf("roster has %d picks, want 3", len(roster.Picks))
	}
	if roster.Picks[2].Round != 3 {
		t.Fatalf("pick 21 round = %d, want 3", roster.Picks[2].Round)
	}
	if roster.CountsByPosition[player.PositionRB] != 3 {
		t.Fatalf("RB count = %d, want 3", roster.CountsByPosition[player.PositionRB])
	}

	// Both starting RB spots filled; the third RB covers FLEX.
	if _, still := roster.NeedsByPosition[player.PositionRB]; still {
		t.Fatal("RB need should be satisfied")
	}
	if roster.FlexNeeded != 0 {
		t.Fatalf("FlexNeeded = %d, want 0", roster.FlexNeeded)
	}
	if roster.NeedsByPosition[player.PositionWR] != 3 {
		t.Fatalf("WR need = %d, want 3", roster.NeedsByPosition[player.PositionWR])
	}
}
