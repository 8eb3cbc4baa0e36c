package draft

import "fantasy-war-room/internal/domain/player"

// Pick is one selection already made on the draft platform, ordered by
// PickNo (1-based, global, no gaps). The pick list is append-only during a
// draft; each poll replaces the whole slice.
type Pick struct {
	PickNo      int
	PlayerID    string
	DisplayName string
	Position    player.Position
}
