package naming

import "testing"

func TestBuildKey(t *testing.T) {
	tests := []struct {
		name string
		meta Metadata
		want string
	}{
		{"all fields", Metadata{Title: "Money Heist", Year: 2017, SeasonEpisode: "S01E03"}, "money heist 2017 s01e03"},
		{"title and year", Metadata{Title: "Leo", Year: 2023}, "leo 2023"},
		{"title only", Metadata{Title: "Pudhupettai"}, "pudhupettai"},
		{"year only", Metadata{Year: 2006}, "2006"},
		{"season episode only", Metadata{SeasonEpisode: "S04E08"}, "s04e08"},
		{"all absent", Metadata{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildKey(tt.meta)
			if got != tt.want {
				t.Errorf("BuildKey(%+v) = %q, want %q", tt.meta, got, tt.want)
			}
		})
	}
}

func TestBuildKey_Deterministic(t *testing.T) {
	meta := Metadata{Title: "The Jungle Book", Year: 1967}
	first := BuildKey(meta)
	for i := 0; i < 10; i++ {
		if got := BuildKey(meta); got != first {
			t.Fatalf("BuildKey not deterministic: %q vs %q", got, first)
		}
	}
}
