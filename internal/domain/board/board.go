package board

import (
	"sort"

	"fantasy-war-room/internal/domain/draft"
	"fantasy-war-room/internal/domain/identity"
	"fantasy-war-room/internal/domain/player"
	"fantasy-war-room/internal/domain/scoring"
)

// FilterAvailable returns the scored players not yet drafted, best score
// first. Ties keep input order (the sort is stable), so identical inputs
// always produce identical output.
//
// A player is excluded when its resolved external ID matches a pick's player
// ID or when its normalized name matches a pick's normalized display name.
// The OR is deliberate redundancy: the ID join handles clean matches, the
// name join catches resolution misses. Two distinct players sharing a
// normalized name are both excluded once either is drafted; that imprecision
// is accepted, not silently repaired.
func FilterAvailable(players []scoring.ScoredPlayer, picks []draft.Pick) []scoring.ScoredPlayer {
	pickedIDs := make(map[string]struct{}, len(picks))
	pickedNames := make(map[string]struct{}, len(picks))
	for _, pick := range picks {
		if pick.PlayerID != "" {
			pickedIDs[pick.PlayerID] = struct{}{}
		}
		if key := identity.NormalizeName(pick.DisplayName); key != "" {
			pickedNames[key] = struct{}{}
		}
	}

	out := make([]scoring.ScoredPlayer, 0, len(players))
	for _, p := range players {
		if p.ExternalID != "" {
			if _, drafted := pickedIDs[p.ExternalID]; drafted {
				continue
			}
		}
		if key := identity.NormalizeName(p.Name); key != "" {
			if _, drafted := pickedNames[key]; drafted {
				continue
			}
		}
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// ByPosition filters on exact position equality.
func ByPosition(players []scoring.ScoredPlayer, pos player.Position) []scoring.ScoredPlayer {
	out := make([]scoring.ScoredPlayer, 0, len(players))
	for _, p := range players {
		if p.Position == pos {
			out = append(out, p)
		}
	}
	return out
}

// Flex is the union view of the FLEX-eligible positions (RB/WR/TE),
// preserving the incoming order.
func Flex(players []scoring.ScoredPlayer) []scoring.ScoredPlayer {
	out := make([]scoring.ScoredPlayer, 0, len(players))
	for _, p := range players {
		if _, ok := player.FlexPositions[p.Position]; ok {
			out = append(out, p)
		}
	}
	return out
}
