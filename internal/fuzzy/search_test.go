package fuzzy

import "testing"

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"backflip", "backflip", 0},
		{"café", "cafe", 1},
	}

	for _, tt := range tests {
		if got := levenshteinDistance([]rune(tt.a), []rune(tt.b)); got != tt.want {
			t.Errorf("levenshteinDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSearch_Ordering(t *testing.T) {
	items := []string{"Backflip", "Black Cat", "Backflip Kick", "Swinging Web Kick"}

	results := Search("backflp", items, DefaultSearchOptions())
	if len(results) == 0 {
		t.Fatal("Search() returned no results")
	}
	if results[0].Item != "Backflip" {
		t.Errorf("best match = %q, want Backflip", results[0].Item)
	}

	exact := Search("black cat", items, DefaultSearchOptions())
	if exact[0].Score != 100 {
		t.Errorf("exact score = %d, want 100", exact[0].Score)
	}
}

func TestSearch_Options(t *testing.T) {
	items := []string{"Backflip", "Backflip Kick", "Unrelated"}

	results := Search("Backflip", items, SearchOptions{CaseSensitive: true, MaxResults: 1, MinScore: 50})
	if len(results) != 1 {
		t.Fatalf("results = %d, want 1", len(results))
	}

	if got := Search("zzzz", items, SuggestionOptions()); len(got) != 0 {
		t.Errorf("unexpected suggestions: %v", got)
	}
}
