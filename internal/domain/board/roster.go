package board

import (
	"fantasy-war-room/internal/domain/draft"
	"fantasy-war-room/internal/domain/player"
)

// StartingRequirements is the lineup convention the needs report assumes:
// 1 QB, 2 RB, 3 WR, 1 TE, 1 FLEX, 1 K, 1 DEF, remainder bench. Callers with
// a different league format can pass their own map.
func StartingRequirements() map[player.Position]int {
	return map[player.Position]int{
		player.PositionQB:  1,
		player.PositionRB:  2,
		player.PositionWR:  3,
		player.PositionTE:  1,
		player.PositionK:   1,
		player.PositionDEF: 1,
	}
}

// StartingFlexCount is the number of FLEX spots in the assumed lineup.
const StartingFlexCount = 1

// RosterPick is one of the caller's own selections with its attributed score.
type RosterPick struct {
	draft.Pick
	Round int
	Score float64
}

// Roster summarizes the configured slot's draft so far.
type Roster struct {
	Slot             int
	Picks            []RosterPick
	CountsByPosition map[player.Position]int
	// NeedsByPosition holds how many starters are still missing per position;
	// filled positions are omitted.
	NeedsByPosition map[player.Position]int
	FlexNeeded      int
}

// RosterForSlot extracts the picks owned by slot under snake order and
// assesses remaining starting-lineup needs. FLEX is considered covered by
// surplus RB/WR/TE beyond their own starting requirements.
func RosterForSlot(picks []draft.Pick, idx ScoreIndex, slot, numTeams int, requirements map[player.Position]int) Roster {
	if requirements == nil {
		requirements = StartingRequirements()
	}

	roster := Roster{
		Slot:             slot,
		Picks:            make([]RosterPick, 0, 16),
		CountsByPosition: make(map[player.Position]int),
		NeedsByPosition:  make(map[player.Position]int),
	}

	for _, pick := range picks {
		if draft.SlotForPick(pick.PickNo, numTeams) != slot {
			continue
		}
		roster.Picks = append(roster.Picks, RosterPick{
			Pick:  pick,
			Round: draft.RoundForPick(pick.PickNo, numTeams),
			Score: idx.scoreFor(pick),
		})
		roster.CountsByPosition[pick.Position]++
	}

	flexSurplus := 0
	for pos, required := range requirements {
		have := roster.CountsByPosition[pos]
		if have < required {
			roster.NeedsByPosition[pos] = required - have
		}
		if _, flexible := player.FlexPositions[pos]; flexible && have > required {
			flexSurplus += have - required
		}
	}

	roster.FlexNeeded = StartingFlexCount - flexSurplus
	if roster.FlexNeeded < 0 {
		roster.FlexNeeded = 0
	}
	return roster
}
