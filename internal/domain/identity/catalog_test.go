package identity

import "testing"

func TestCatalogResolve(t *testing.T) {
	catalog := BuildCatalog([]Entry{
		{Name: "Patrick Mahomes", ID: "4046"},
		{Name: "Josh Allen", ID: "4984"},
		{Name: "", ID: "9999"},
		{Name: "No ID Player", ID: " "},
	})

	if got := catalog.Len(); got != 2 {
		t.Fatalf("catalog size = %d, want 2", got)
	}

	id, ok := catalog.Resolve("Pat-rick MAHOMES")
	if !ok || id != "4046" {
		t.Fatalf("Resolve = (%q, %v), want (4046, true)", id, ok)
	}

	if _, ok := catalog.Resolve("Unknown Guy"); ok {
		t.Fatal("unknown names must resolve to absent, not error")
	}
}

func TestCatalogCollisionLastWriteWins(t *testing.T) {
	catalog := BuildCatalog([]Entry{
		{Name: "Mike Williams", ID: "100"},
		{Name: "Mike Williams", ID: "200"},
	})

	id, ok := catalog.Resolve("Mike Williams")
	if !ok || id != "200" {
		t.Fatalf("Resolve = (%q, %v), want later entry 200", id, ok)
	}
}

func TestCatalogSuggest(t *testing.T) {
	catalog := BuildCatalog([]Entry{
		{Name: "Patrick Mahomes", ID: "1"},
		{Name: "Patrick Queen", ID: "2"},
		{Name: "Josh Allen", ID: "3"},
	})

	got := catalog.Suggest("Patrick", 2)
	if len(got) != 2 {
		t.Fatalf("Suggest returned %d names, want 2", len(got))
	}
	if got := catalog.Suggest("Patrick", 0); got != nil {
		t.Fatalf("limit 0 should return nil, got %v", got)
	}
}
