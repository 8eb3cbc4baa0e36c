package draft

// RoundForPick returns the 1-based round a global pick number falls in.
// Returns 0 for out-of-range input.
func RoundForPick(pickNo, numTeams int) int {
	if pickNo < 1 || numTeams < 1 {
		return 0
	}
	return (pickNo-1)/numTeams + 1
}

// SlotForPick maps a global pick number onto the team slot (1..numTeams)
// that owns it. Odd rounds run slot 1..N, even rounds reverse (the snake).
// Returns 0 for out-of-range input.
func SlotForPick(pickNo, numTeams int) int {
	if pickNo < 1 || numTeams < 1 {
		return 0
	}

	offset := (pickNo - 1) % numTeams
	if RoundForPick(pickNo, numTeams)%2 == 1 {
		return offset + 1
	}
	return numTeams - offset
}
