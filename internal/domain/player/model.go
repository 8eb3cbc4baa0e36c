package player

import "strings"

// Position is a fantasy roster position category.
type Position string

const (
	PositionQB  Position = "QB"
	PositionRB  Position = "RB"
	PositionWR  Position = "WR"
	PositionTE  Position = "TE"
	PositionK   Position = "K"
	PositionDEF Position = "DEF"
)

var AllPositions = map[Position]struct{}{
	PositionQB:  {},
	PositionRB:  {},
	PositionWR:  {},
	PositionTE:  {},
	PositionK:   {},
	PositionDEF: {},
}

// FlexPositions are the positions eligible for a FLEX roster spot.
var FlexPositions = map[Position]struct{}{
	PositionRB: {},
	PositionWR: {},
	PositionTE: {},
}

// ParsePosition maps free-text position labels onto the internal enum.
// Sleeper labels team defenses "DST"; the roster sheet uses "DEF".
// Unknown labels are kept as-is so scoring can apply its neutral multiplier.
func ParsePosition(raw string) Position {
	value := strings.ToUpper(strings.TrimSpace(raw))
	if value == "DST" {
		return PositionDEF
	}
	return Position(value)
}

// Record is one row of the roster sheet. Immutable once loaded; scoring is a
// total function of a Record and never mutates it.
type Record struct {
	Name          string
	Position      Position
	HistoricalAvg float64
	ADP           float64
	Projection    float64
	Tier          int
}
