package moderation

import (
	"context"
	"time"
)

// WordCache stores the banned-word set with a TTL. The Redis cache
// layer implements it.
type WordCache interface {
	GetBannedWords(ctx context.Context) ([]string, bool, error)
	SetBannedWords(ctx context.Context, words []string, ttl time.Duration) error
}

// CachedWordSource is a read-through WordSource. A cache failure falls
// back to the underlying source, so moderation keeps working when
// Redis is down.
type CachedWordSource struct {
	source WordSource
	cache  WordCache
	ttl    time.Duration
}

// NewCachedWordSource wraps source with a TTL cache.
func NewCachedWordSource(source WordSource, cache WordCache, ttl time.Duration) *CachedWordSource {
	return &CachedWordSource{source: source, cache: cache, ttl: ttl}
}

// BannedWords returns the cached word set, reloading from the source
// after the TTL expires.
func (c *CachedWordSource) BannedWords(ctx context.Context) ([]string, error) {
	words, hit, err := c.cache.GetBannedWords(ctx)
	if err == nil && hit {
		return words, nil
	}

	words, err = c.source.BannedWords(ctx)
	if err != nil {
		return nil, err
	}

	if words == nil {
		words = []string{}
	}
	if err := c.cache.SetBannedWords(ctx, words, c.ttl); err != nil {
		// Serve the fresh set anyway; the next call retries the cache.
		return words, nil
	}

	return words, nil
}
