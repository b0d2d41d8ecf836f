package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/reelmint/reelmint/pkg/models"
)

// Cache provides caching functionality using Redis
type Cache struct {
	client *redis.Client
}

// NewCache creates a new cache instance
func NewCache(host string, port int, password string, db int) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: password,
		DB:       db,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Cache{client: client}, nil
}

// Close closes the Redis connection
func (c *Cache) Close() error {
	return c.client.Close()
}

// Job Status Cache Operations

// SetJob caches a job snapshot so status polls do not always hit the
// database.
func (c *Cache) SetJob(ctx context.Context, job *models.VideoJob, ttl time.Duration) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}

	key := fmt.Sprintf("job:%s", job.ID)
	return c.client.Set(ctx, key, data, ttl).Err()
}

// GetJob retrieves a cached job snapshot
func (c *Cache) GetJob(ctx context.Context, jobID string) (*models.VideoJob, error) {
	key := fmt.Sprintf("job:%s", jobID)
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("failed to get job from cache: %w", err)
	}

	var job models.VideoJob
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job: %w", err)
	}

	return &job, nil
}

// DeleteJob removes a cached job snapshot. Called whenever the job's
// state changes so polls never serve a stale terminal status.
func (c *Cache) DeleteJob(ctx context.Context, jobID string) error {
	key := fmt.Sprintf("job:%s", jobID)
	return c.client.Del(ctx, key).Err()
}

// Profile Cache Operations

// SetProfile caches a user profile
func (c *Cache) SetProfile(ctx context.Context, user *models.User, ttl time.Duration) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	key := fmt.Sprintf("profile:%s", user.ID)
	return c.client.Set(ctx, key, data, ttl).Err()
}

// GetProfile retrieves a cached user profile
func (c *Cache) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	key := fmt.Sprintf("profile:%s", userID)
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("failed to get profile from cache: %w", err)
	}

	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}

	return &user, nil
}

// DeleteProfile invalidates a cached profile after any balance change.
func (c *Cache) DeleteProfile(ctx context.Context, userID string) error {
	key := fmt.Sprintf("profile:%s", userID)
	return c.client.Del(ctx, key).Err()
}

// Banned Word Cache Operations

const bannedWordsKey = "moderation:banned_words"

// SetBannedWords caches the banned-word set
func (c *Cache) SetBannedWords(ctx context.Context, words []string, ttl time.Duration) error {
	data, err := json.Marshal(words)
	if err != nil {
		return fmt.Errorf("failed to marshal banned words: %w", err)
	}
	return c.client.Set(ctx, bannedWordsKey, data, ttl).Err()
}

// GetBannedWords retrieves the cached banned-word set. A miss returns
// (nil, false, nil) so an empty set stored in the cache is still a hit.
func (c *Cache) GetBannedWords(ctx context.Context) ([]string, bool, error) {
	data, err := c.client.Get(ctx, bannedWordsKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get banned words from cache: %w", err)
	}

	var words []string
	if err := json.Unmarshal(data, &words); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal banned words: %w", err)
	}

	return words, true, nil
}

// Rate Limiting Operations

// CheckRateLimit checks if a rate limit has been exceeded
func (c *Cache) CheckRateLimit(ctx context.Context, key string, limit int64, window time.Duration) (bool, error) {
	rateLimitKey := fmt.Sprintf("ratelimit:%s", key)

	// Increment counter
	count, err := c.client.Incr(ctx, rateLimitKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit: %w", err)
	}

	// Set expiry on first request
	if count == 1 {
		if err := c.client.Expire(ctx, rateLimitKey, window).Err(); err != nil {
			return false, fmt.Errorf("failed to set expiry: %w", err)
		}
	}

	// Check if limit exceeded
	return count <= limit, nil
}

// Health check
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
