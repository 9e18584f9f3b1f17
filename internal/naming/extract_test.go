package naming

import (
	"errors"
	"testing"
)

func TestSeasonEpisode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"compact uppercase", "Money Heist S04E08 WEB", "S04E08"},
		{"compact lowercase preserved verbatim", "show s2e5 x265", "s2e5"},
		{"compact embedded in token", "Show.S01E02.mkv S01E02", "S01E02"},
		{"phrase canonicalized", "money heist season 1 episode 2", "S01E02"},
		{"phrase with wide numbers", "show season 12 episode 345", "S12E345"},
		{"compact wins over phrase", "S03E04 season 1 episode 2", "S03E04"},
		{"no pattern", "Kung Fu Panda 3 (2016)", ""},
		{"bare season only", "show season 2", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SeasonEpisode(tt.input)
			if got != tt.want {
				t.Errorf("SeasonEpisode(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCanonicalizeSeasonEpisode(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"money heist season 1 episode 3", "money heist S01E03"},
		{"season 10 episode 2 finale", "S10E02 finale"},
		{"leo 2023", "leo 2023"},
		{"", ""},
	}

	for _, tt := range tests {
		got := CanonicalizeSeasonEpisode(tt.input)
		if got != tt.want {
			t.Errorf("CanonicalizeSeasonEpisode(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

type failingGuesser struct{}

func (failingGuesser) Guess(string) (GuessResult, error) {
	return GuessResult{}, errors.New("guess exploded")
}

type fixedGuesser struct {
	result GuessResult
}

func (g fixedGuesser) Guess(string) (GuessResult, error) {
	return g.result, nil
}

func TestExtractor_GuesserFailureDegradesToAbsent(t *testing.T) {
	e := NewExtractor(failingGuesser{}, nil)

	meta := e.Extract("Money Heist S04E08")
	if meta.Title != "" || meta.Year != 0 || meta.SeasonEpisode != "" {
		t.Errorf("Extract after guesser failure = %+v, want all-absent metadata", meta)
	}
}

func TestExtractor_CombinesGuessAndSeasonEpisode(t *testing.T) {
	e := NewExtractor(fixedGuesser{result: GuessResult{Title: "Money Heist", Year: 2017}}, nil)

	meta := e.Extract("Money Heist 2017 S04E08")
	if meta.Title != "Money Heist" {
		t.Errorf("Title = %q, want %q", meta.Title, "Money Heist")
	}
	if meta.Year != 2017 {
		t.Errorf("Year = %d, want 2017", meta.Year)
	}
	if meta.SeasonEpisode != "S04E08" {
		t.Errorf("SeasonEpisode = %q, want S04E08", meta.SeasonEpisode)
	}
}
