package moderation

import (
	"context"
	"errors"
	"testing"
)

type staticSource struct {
	words []string
	err   error
}

func (s *staticSource) BannedWords(ctx context.Context) ([]string, error) {
	return s.words, s.err
}

func TestFilter_Check(t *testing.T) {
	tests := []struct {
		name        string
		words       []string
		text        string
		wantFlagged bool
		wantMatches int
	}{
		{"clean text", []string{"violence", "gore"}, "a cat chasing a laser pointer", false, 0},
		{"direct hit", []string{"violence"}, "extreme violence in slow motion", true, 1},
		{"case insensitive", []string{"Violence"}, "VIOLENCE everywhere", true, 1},
		{"substring match", []string{"gun"}, "a gunslinger walks into town", true, 1},
		{"multiple hits", []string{"blood", "gore"}, "blood and gore", true, 2},
		{"empty word set never flags", nil, "anything at all", false, 0},
		{"empty text", []string{"gore"}, "", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFilter(&staticSource{words: tt.words})
			res, err := f.Check(context.Background(), tt.text)
			if err != nil {
				t.Fatalf("Check failed: %v", err)
			}
			if res.Flagged != tt.wantFlagged {
				t.Errorf("Flagged = %v, want %v", res.Flagged, tt.wantFlagged)
			}
			if len(res.Matches) != tt.wantMatches {
				t.Errorf("got %d matches, want %d", len(res.Matches), tt.wantMatches)
			}
		})
	}
}

func TestFilter_SourceError(t *testing.T) {
	f := NewFilter(&staticSource{err: errors.New("db down")})
	_, err := f.Check(context.Background(), "text")
	if err == nil {
		t.Error("Expected error when the word source fails")
	}
}
