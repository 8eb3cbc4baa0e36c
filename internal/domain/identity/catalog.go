package identity

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Entry is one player from the external draft platform's catalog.
type Entry struct {
	Name string
	ID   string
}

// Catalog maps normalized catalog names to the platform's opaque player IDs.
// When two catalog names normalize to the same key the later entry wins; the
// ambiguity is accepted rather than resolved (there is no better tie-break in
// the source data).
type Catalog struct {
	idByKey map[string]string
	names   []string
}

func BuildCatalog(entries []Entry) Catalog {
	idByKey := make(map[string]string, len(entries))
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		key := NormalizeName(entry.Name)
		if key == "" || strings.TrimSpace(entry.ID) == "" {
			continue
		}
		idByKey[key] = entry.ID
		names = append(names, entry.Name)
	}
	return Catalog{idByKey: idByKey, names: names}
}

func (c Catalog) Len() int {
	return len(c.idByKey)
}

// Resolve looks a roster-sheet name up by its normalized key. A miss is not
// an error; the caller records the player as unresolved.
func (c Catalog) Resolve(name string) (string, bool) {
	id, ok := c.idByKey[NormalizeName(name)]
	return id, ok
}

// Suggest returns up to limit catalog display names closest to the given
// name, best first. Purely diagnostic: suggestions never feed back into
// resolution, which stays an exact normalized-key lookup.
func (c Catalog) Suggest(name string, limit int) []string {
	if limit <= 0 || strings.TrimSpace(name) == "" {
		return nil
	}

	ranks := fuzzy.RankFindNormalizedFold(name, c.names)
	sort.Stable(ranks)

	out := make([]string, 0, limit)
	for _, rank := range ranks {
		out = append(out, rank.Target)
		if len(out) == limit {
			break
		}
	}
	return out
}
