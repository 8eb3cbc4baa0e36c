package board

import (
	"fmt"
	"sort"

	"fantasy-war-room/internal/domain/draft"
	"fantasy-war-room/internal/domain/identity"
	"fantasy-war-room/internal/domain/scoring"
)

// neutralPickScore is credited to any pick that cannot be matched back to a
// scored roster row (e.g. a kicker nobody bothered to sheet). Matching must
// never fail the ranking.
const neutralPickScore = 50.0

// SlotStanding is one team's draft-efficiency aggregate.
type SlotStanding struct {
	Slot         int
	Label        string
	Self         bool
	PickCount    int
	TotalScore   float64
	AverageScore float64
}

// ScoreIndex looks pick scores up by platform ID first, normalized display
// name second.
type ScoreIndex struct {
	byID   map[string]float64
	byName map[string]float64
}

// BuildScoreIndex indexes scored players for pick attribution. On normalized
// name collisions the later row wins, consistent with catalog resolution.
func BuildScoreIndex(players []scoring.ScoredPlayer) ScoreIndex {
	idx := ScoreIndex{
		byID:   make(map[string]float64, len(players)),
		byName: make(map[string]float64, len(players)),
	}
	for _, p := range players {
		if p.ExternalID != "" {
			idx.byID[p.ExternalID] = p.Score
		}
		if key := identity.NormalizeName(p.Name); key != "" {
			idx.byName[key] = p.Score
		}
	}
	return idx
}

func (idx ScoreIndex) scoreFor(pick draft.Pick) float64 {
	if score, ok := idx.byID[pick.PlayerID]; ok {
		return score
	}
	if score, ok := idx.byName[identity.NormalizeName(pick.DisplayName)]; ok {
		return score
	}
	return neutralPickScore
}

// PowerRanking attributes every pick's score to its snake-draft slot and
// returns per-slot averages, best first. Slots without a pick are omitted
// (an average over zero picks is undefined). The configured selfSlot is
// labeled distinctly.
func PowerRanking(picks []draft.Pick, idx ScoreIndex, numTeams, selfSlot int) []SlotStanding {
	totals := make(map[int]*SlotStanding, numTeams)
	for _, pick := range picks {
		slot := draft.SlotForPick(pick.PickNo, numTeams)
		if slot == 0 {
			continue
		}

		standing, ok := totals[slot]
		if !ok {
			standing = &SlotStanding{
				Slot:  slot,
				Label: fmt.Sprintf("Team %d", slot),
				Self:  slot == selfSlot,
			}
			if standing.Self {
				standing.Label = fmt.Sprintf("Team %d (you)", slot)
			}
			totals[slot] = standing
		}

		standing.PickCount++
		standing.TotalScore += idx.scoreFor(pick)
	}

	out := make([]SlotStanding, 0, len(totals))
	for _, standing := range totals {
		standing.AverageScore = standing.TotalScore / float64(standing.PickCount)
		out = append(out, *standing)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].AverageScore != out[j].AverageScore {
			return out[i].AverageScore > out[j].AverageScore
		}
		return out[i].Slot < out[j].Slot
	})
	return out
}
