package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/reelmint/reelmint/pkg/models"
)

func setupTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	// Create a mini Redis server for testing
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}

	cache, err := NewCache(mr.Host(), mr.Server().Addr().Port, "", 0)
	if err != nil {
		mr.Close()
		t.Fatalf("Failed to create cache: %v", err)
	}

	return cache, mr
}

func TestNewCache(t *testing.T) {
	cache, mr := setupTestCache(t)
	defer mr.Close()
	defer cache.Close()

	ctx := context.Background()
	if err := cache.Ping(ctx); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}

func TestCache_JobOperations(t *testing.T) {
	cache, mr := setupTestCache(t)
	defer mr.Close()
	defer cache.Close()

	ctx := context.Background()

	job := &models.VideoJob{
		ID:           "test-job-1",
		UserID:       "user-1",
		Prompt:       "a cat on a skateboard",
		TotalSeconds: 25,
		Resolution:   models.Resolution720p,
		SecondsUsed:  25,
		Status:       models.JobStatusGenerating,
	}

	// Test SetJob
	err := cache.SetJob(ctx, job, 30*time.Second)
	if err != nil {
		t.Fatalf("SetJob failed: %v", err)
	}

	// Test GetJob
	retrieved, err := cache.GetJob(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetJob failed: %v", err)
	}

	if retrieved == nil {
		t.Fatal("Retrieved job should not be nil")
	}

	if retrieved.ID != job.ID {
		t.Errorf("Expected ID %s, got %s", job.ID, retrieved.ID)
	}

	if retrieved.Status != models.JobStatusGenerating {
		t.Errorf("Expected status %s, got %s", models.JobStatusGenerating, retrieved.Status)
	}

	// Test GetJob for non-existent job
	nonExistent, err := cache.GetJob(ctx, "non-existent")
	if err != nil {
		t.Fatalf("GetJob for non-existent should not error: %v", err)
	}

	if nonExistent != nil {
		t.Error("Non-existent job should return nil")
	}

	// Test DeleteJob
	err = cache.DeleteJob(ctx, job.ID)
	if err != nil {
		t.Fatalf("DeleteJob failed: %v", err)
	}

	deleted, err := cache.GetJob(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetJob after delete failed: %v", err)
	}

	if deleted != nil {
		t.Error("Deleted job should return nil")
	}
}

func TestCache_ProfileOperations(t *testing.T) {
	cache, mr := setupTestCache(t)
	defer mr.Close()
	defer cache.Close()

	ctx := context.Background()

	user := &models.User{
		ID:               "user-1",
		Username:         "alice",
		Email:            "alice@example.com",
		RemainingSeconds: 120,
	}

	err := cache.SetProfile(ctx, user, time.Minute)
	if err != nil {
		t.Fatalf("SetProfile failed: %v", err)
	}

	retrieved, err := cache.GetProfile(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}

	if retrieved == nil {
		t.Fatal("Retrieved profile should not be nil")
	}

	if retrieved.RemainingSeconds != 120 {
		t.Errorf("Expected 120 remaining seconds, got %d", retrieved.RemainingSeconds)
	}

	err = cache.DeleteProfile(ctx, user.ID)
	if err != nil {
		t.Fatalf("DeleteProfile failed: %v", err)
	}

	deleted, err := cache.GetProfile(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetProfile after delete failed: %v", err)
	}

	if deleted != nil {
		t.Error("Deleted profile should return nil")
	}
}

func TestCache_BannedWords(t *testing.T) {
	cache, mr := setupTestCache(t)
	defer mr.Close()
	defer cache.Close()

	ctx := context.Background()

	// A miss is distinguishable from a cached empty set
	_, hit, err := cache.GetBannedWords(ctx)
	if err != nil {
		t.Fatalf("GetBannedWords failed: %v", err)
	}
	if hit {
		t.Error("Expected cache miss before any set")
	}

	words := []string{"violence", "explicit"}
	if err := cache.SetBannedWords(ctx, words, 5*time.Minute); err != nil {
		t.Fatalf("SetBannedWords failed: %v", err)
	}

	retrieved, hit, err := cache.GetBannedWords(ctx)
	if err != nil {
		t.Fatalf("GetBannedWords failed: %v", err)
	}
	if !hit {
		t.Fatal("Expected cache hit after set")
	}
	if len(retrieved) != 2 {
		t.Errorf("Expected 2 words, got %d", len(retrieved))
	}

	// An empty set is still a hit
	if err := cache.SetBannedWords(ctx, []string{}, 5*time.Minute); err != nil {
		t.Fatalf("SetBannedWords failed: %v", err)
	}

	retrieved, hit, err = cache.GetBannedWords(ctx)
	if err != nil {
		t.Fatalf("GetBannedWords failed: %v", err)
	}
	if !hit {
		t.Error("Cached empty set should be a hit")
	}
	if len(retrieved) != 0 {
		t.Errorf("Expected 0 words, got %d", len(retrieved))
	}
}

func TestCache_RateLimit(t *testing.T) {
	cache, mr := setupTestCache(t)
	defer mr.Close()
	defer cache.Close()

	ctx := context.Background()
	key := "user:123"
	limit := int64(5)
	window := 1 * time.Minute

	// Should allow first 5 requests
	for i := 0; i < 5; i++ {
		allowed, err := cache.CheckRateLimit(ctx, key, limit, window)
		if err != nil {
			t.Fatalf("CheckRateLimit failed: %v", err)
		}

		if !allowed {
			t.Errorf("Request %d should be allowed", i+1)
		}
	}

	// Should deny 6th request
	allowed, err := cache.CheckRateLimit(ctx, key, limit, window)
	if err != nil {
		t.Fatalf("CheckRateLimit failed: %v", err)
	}

	if allowed {
		t.Error("Request beyond limit should be denied")
	}
}
