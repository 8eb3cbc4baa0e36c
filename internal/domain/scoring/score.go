package scoring

import "fantasy-war-room/internal/domain/player"

// The weights below are the compatibility contract with previously scored
// boards; changing any of them is a breaking change.
const (
	unrankedADP = 210.0

	histAvgWeight    = 0.08
	adpWeight        = 0.9
	projectionWeight = 0.02

	perfSaturation = 120.0

	worstTier     = 14
	tierBonusBase = 25.0
	tierBonusStep = 1.92
)

// ScoredPlayer is a roster record plus its derived score and, when identity
// resolution succeeded, the draft platform's player ID. Derived values are
// recomputed from scratch each refresh, never mutated in place.
type ScoredPlayer struct {
	player.Record
	Score      float64
	ExternalID string
}

// Score converts a player record into a single comparable value. Total and
// deterministic: every missing or out-of-range field falls back to a safe
// number before the formula runs, so no input can fail.
//
// ADP dominates (90%); historical average and current-season projection are
// minor corrections. An unranked player (adp <= 0) is treated as if drafted
// at pick 210, worse than any real pick. No clamping: adp beyond 210 keeps
// depressing the score.
func Score(rec player.Record) float64 {
	adp := rec.ADP
	if adp <= 0 {
		adp = unrankedADP
	}

	base := rec.HistoricalAvg*histAvgWeight +
		(unrankedADP-adp)*adpWeight +
		rec.Projection*projectionWeight

	return base * positionMultiplier(rec.Position, rec.HistoricalAvg) * tierMultiplier(rec.Tier)
}

// positionMultiplier scales by position, boosted by a performance factor that
// saturates at a 120-point historical average.
func positionMultiplier(pos player.Position, historicalAvg float64) float64 {
	perf := historicalAvg / perfSaturation
	if perf > 1 {
		perf = 1
	}
	if perf < 0 {
		perf = 0
	}

	switch pos {
	case player.PositionRB, player.PositionWR:
		return 1.3 + 0.5*perf
	case player.PositionTE:
		return 1.25 + 0.35*perf
	case player.PositionQB:
		return 1.2 + 0.25*perf
	case player.PositionDEF, player.PositionK:
		return 0.7 + 0.2*perf
	default:
		return 1.0
	}
}

// tierMultiplier rewards tier 1 with ~25% and decays linearly to nothing by
// tier 14; it never drops below 1. A missing or non-positive tier counts as
// the worst tier.
func tierMultiplier(tier int) float64 {
	effective := tier
	if effective <= 0 {
		effective = worstTier
	}

	bonus := (tierBonusBase - float64(effective-1)*tierBonusStep) / 100
	if bonus < 0 {
		bonus = 0
	}
	return 1 + bonus
}
