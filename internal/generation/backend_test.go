package generation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelmint/reelmint/internal/config"
)

func newTestBackend(t *testing.T, handler http.HandlerFunc) *HTTPBackend {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewHTTPBackend(config.ProviderConfig{
		Endpoint: srv.URL,
		APIKey:   "test-key",
		Timeout:  5 * time.Second,
	})
}

func TestHTTPBackend_GenerateClip(t *testing.T) {
	backend := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/clips", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req ClipRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "job-1", req.JobID)
		assert.Equal(t, int64(10), req.DurationSeconds)

		json.NewEncoder(w).Encode(ClipResult{ClipURL: "https://cdn.example.com/clip.mp4"})
	})

	result, err := backend.GenerateClip(context.Background(), ClipRequest{
		JobID:           "job-1",
		Segment:         0,
		Prompt:          "start, a sunrise over mountains",
		DurationSeconds: 10,
		Resolution:      "720p",
		Watermark:       true,
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/clip.mp4", result.ClipURL)
}

func TestHTTPBackend_GenerateClip_EmptyURL(t *testing.T) {
	backend := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ClipResult{})
	})

	_, err := backend.GenerateClip(context.Background(), ClipRequest{JobID: "job-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty clip URL")
}

func TestHTTPBackend_GenerateClip_ProviderError(t *testing.T) {
	backend := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "render farm unavailable", http.StatusServiceUnavailable)
	})

	_, err := backend.GenerateClip(context.Background(), ClipRequest{JobID: "job-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
	assert.Contains(t, err.Error(), "render farm unavailable")
}

func TestHTTPBackend_AssembleClips(t *testing.T) {
	backend := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/assemble", r.URL.Path)

		var req struct {
			JobID    string   `json:"jobId"`
			ClipURLs []string `json:"clipUrls"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "job-1", req.JobID)
		assert.Len(t, req.ClipURLs, 2)

		json.NewEncoder(w).Encode(map[string]string{"videoUrl": "https://cdn.example.com/final.mp4"})
	})

	url, err := backend.AssembleClips(context.Background(), "job-1", []string{
		"https://cdn.example.com/0.mp4",
		"https://cdn.example.com/1.mp4",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/final.mp4", url)
}

func TestSimulatedBackend_DeterministicURLs(t *testing.T) {
	backend := NewSimulatedBackend()

	result, err := backend.GenerateClip(context.Background(), ClipRequest{JobID: "job-9", Segment: 2})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.reelmint.dev/clips/job-9/2.mp4", result.ClipURL)

	url, err := backend.AssembleClips(context.Background(), "job-9", nil)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.reelmint.dev/videos/job-9/final.mp4", url)
}

func TestSimulatedBackend_RespectsCancellation(t *testing.T) {
	backend := &SimulatedBackend{ClipDelay: time.Minute}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := backend.GenerateClip(ctx, ClipRequest{JobID: "job-1"})
	require.ErrorIs(t, err, context.Canceled)
}
