package moderation

import (
	"context"
	"strings"
)

// WordSource supplies the current banned-word set. The database
// repository implements it; the cache layer may wrap it with a TTL.
type WordSource interface {
	BannedWords(ctx context.Context) ([]string, error)
}

// Result of a content check. Matches lists every banned word found, in
// the order the word list returned them.
type Result struct {
	Flagged bool     `json:"flagged"`
	Matches []string `json:"matches,omitempty"`
}

// Filter checks free text against a banned-word list using
// case-insensitive substring matching. A single match flags the whole
// text. Auditing the hit is the caller's contract, not the filter's.
type Filter struct {
	source WordSource
}

// NewFilter creates a filter backed by the given word source.
func NewFilter(source WordSource) *Filter {
	return &Filter{source: source}
}

// Check scans text for banned words. An empty word set never flags.
func (f *Filter) Check(ctx context.Context, text string) (Result, error) {
	words, err := f.source.BannedWords(ctx)
	if err != nil {
		return Result{}, err
	}

	lower := strings.ToLower(text)
	var matches []string
	for _, w := range words {
		if w == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(w)) {
			matches = append(matches, w)
		}
	}

	return Result{Flagged: len(matches) > 0, Matches: matches}, nil
}
