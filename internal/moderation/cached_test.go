package moderation

import (
	"context"
	"errors"
	"testing"
	"time"
)

type countingSource struct {
	words []string
	err   error
	calls int
}

func (s *countingSource) BannedWords(_ context.Context) ([]string, error) {
	s.calls++
	return s.words, s.err
}

type fakeWordCache struct {
	words  []string
	stored bool
	getErr error
	setErr error
}

func (c *fakeWordCache) GetBannedWords(_ context.Context) ([]string, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	return c.words, c.stored, nil
}

func (c *fakeWordCache) SetBannedWords(_ context.Context, words []string, _ time.Duration) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.words = words
	c.stored = true
	return nil
}

func TestCachedWordSource_LoadsOnceWithinTTL(t *testing.T) {
	source := &countingSource{words: []string{"violence"}}
	cache := &fakeWordCache{}
	cached := NewCachedWordSource(source, cache, 5*time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		words, err := cached.BannedWords(ctx)
		if err != nil {
			t.Fatalf("BannedWords failed: %v", err)
		}
		if len(words) != 1 || words[0] != "violence" {
			t.Errorf("Unexpected words: %v", words)
		}
	}

	if source.calls != 1 {
		t.Errorf("Expected 1 source load, got %d", source.calls)
	}
}

func TestCachedWordSource_EmptySetIsCached(t *testing.T) {
	source := &countingSource{words: nil}
	cache := &fakeWordCache{}
	cached := NewCachedWordSource(source, cache, 5*time.Minute)
	ctx := context.Background()

	words, err := cached.BannedWords(ctx)
	if err != nil {
		t.Fatalf("BannedWords failed: %v", err)
	}
	if len(words) != 0 {
		t.Errorf("Expected empty set, got %v", words)
	}

	if _, err := cached.BannedWords(ctx); err != nil {
		t.Fatalf("BannedWords failed: %v", err)
	}

	if source.calls != 1 {
		t.Errorf("Expected cached empty set to count as a hit, source loaded %d times", source.calls)
	}
}

func TestCachedWordSource_CacheFailureFallsBack(t *testing.T) {
	source := &countingSource{words: []string{"explicit"}}
	cache := &fakeWordCache{
		getErr: errors.New("redis down"),
		setErr: errors.New("redis down"),
	}
	cached := NewCachedWordSource(source, cache, 5*time.Minute)

	words, err := cached.BannedWords(context.Background())
	if err != nil {
		t.Fatalf("BannedWords should fall back to the source: %v", err)
	}
	if len(words) != 1 {
		t.Errorf("Expected 1 word, got %v", words)
	}
}

func TestCachedWordSource_SourceError(t *testing.T) {
	source := &countingSource{err: errors.New("db down")}
	cache := &fakeWordCache{}
	cached := NewCachedWordSource(source, cache, 5*time.Minute)

	if _, err := cached.BannedWords(context.Background()); err == nil {
		t.Error("Expected error when both cache and source fail")
	}
}
