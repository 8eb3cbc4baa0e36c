package sleeper

import (
	"sort"
	"strings"

	"fantasy-war-room/internal/domain/draft"
	"fantasy-war-room/internal/domain/identity"
	"fantasy-war-room/internal/domain/player"
)

// playerRecord is one entry of the /v1/players/nfl map. The map key is the
// Sleeper player ID (a numeric string, or a team abbreviation for defenses).
type playerRecord struct {
	PlayerID  string `json:"player_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
	Position  string `json:"position"`
	Active    bool   `json:"active"`
}

// pickRecord is one entry of the /v1/draft/{id}/picks array.
type pickRecord struct {
	PickNo   int    `json:"pick_no"`
	PlayerID string `json:"player_id"`
	Metadata struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		FullName  string `json:"full_name"`
		Position  string `json:"position"`
	} `json:"metadata"`
}

func (p playerRecord) displayName() string {
	if p.FullName != "" {
		return p.FullName
	}
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

func (p pickRecord) displayName() string {
	if p.Metadata.FullName != "" {
		return p.Metadata.FullName
	}
	return strings.TrimSpace(p.Metadata.FirstName + " " + p.Metadata.LastName)
}

func catalogEntries(players map[string]playerRecord) []identity.Entry {
	entries := make([]identity.Entry, 0, len(players))
	for id, rec := range players {
		// Retired players stay in the Sleeper dump. Keeping them would let a
		// retired namesake steal an active player's ID under last-write-wins.
		if !rec.Active {
			continue
		}
		if rec.PlayerID != "" {
			id = rec.PlayerID
		}
		name := rec.displayName()
		if id == "" || name == "" {
			continue
		}
		entries = append(entries, identity.Entry{Name: name, ID: id})
	}
	// Map iteration order is random; sort so repeated syncs build the same
	// catalog when two players normalize to the same key.
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries
}

func draftPicks(records []pickRecord) []draft.Pick {
	picks := make([]draft.Pick, 0, len(records))
	for _, rec := range records {
		picks = append(picks, draft.Pick{
			PickNo:      rec.PickNo,
			PlayerID:    rec.PlayerID,
			DisplayName: rec.displayName(),
			Position:    player.ParsePosition(rec.Metadata.Position),
		})
	}
	return picks
}
