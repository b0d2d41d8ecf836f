package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/reelmint/reelmint/internal/config"
)

// ClipRequest asks the provider for one rendered segment.
type ClipRequest struct {
	JobID           string `json:"jobId"`
	Segment         int    `json:"segment"`
	Prompt          string `json:"prompt"`
	DurationSeconds int64  `json:"durationSeconds"`
	Resolution      string `json:"resolution"`
	Watermark       bool   `json:"watermark"`
}

// ClipResult is the provider's answer for one segment.
type ClipResult struct {
	ClipURL string `json:"clipUrl"`
}

// VideoBackend renders segments and assembles them into the final
// video. Implementations must be safe for concurrent use.
type VideoBackend interface {
	GenerateClip(ctx context.Context, req ClipRequest) (ClipResult, error)
	AssembleClips(ctx context.Context, jobID string, clipURLs []string) (string, error)
}

// HTTPBackend talks to a remote generation provider.
type HTTPBackend struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewHTTPBackend creates a backend for the configured provider.
func NewHTTPBackend(cfg config.ProviderConfig) *HTTPBackend {
	return &HTTPBackend{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: cfg.Timeout},
	}
}

// GenerateClip renders one segment via the provider API.
func (b *HTTPBackend) GenerateClip(ctx context.Context, req ClipRequest) (ClipResult, error) {
	var result ClipResult
	if err := b.post(ctx, "/v1/clips", req, &result); err != nil {
		return ClipResult{}, err
	}
	if result.ClipURL == "" {
		return ClipResult{}, fmt.Errorf("provider returned empty clip URL for segment %d", req.Segment)
	}
	return result, nil
}

// AssembleClips concatenates rendered segments into the final video.
func (b *HTTPBackend) AssembleClips(ctx context.Context, jobID string, clipURLs []string) (string, error) {
	payload := struct {
		JobID    string   `json:"jobId"`
		ClipURLs []string `json:"clipUrls"`
	}{JobID: jobID, ClipURLs: clipURLs}

	var result struct {
		VideoURL string `json:"videoUrl"`
	}
	if err := b.post(ctx, "/v1/assemble", payload, &result); err != nil {
		return "", err
	}
	if result.VideoURL == "" {
		return "", fmt.Errorf("provider returned empty video URL for job %s", jobID)
	}
	return result.VideoURL, nil
}

func (b *HTTPBackend) post(ctx context.Context, path string, payload, dest any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal provider request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build provider request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.apiKey)

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("provider returned status %d: %s", resp.StatusCode, data)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode provider response: %w", err)
	}

	return nil
}

// SimulatedBackend renders nothing and returns deterministic URLs. It
// is selected when no provider endpoint is configured, which keeps
// development and CI environments self-contained.
type SimulatedBackend struct {
	// ClipDelay throttles each simulated render. Zero means instant.
	ClipDelay time.Duration
}

// NewSimulatedBackend creates a simulated backend
func NewSimulatedBackend() *SimulatedBackend {
	return &SimulatedBackend{}
}

// GenerateClip pretends to render a segment.
func (b *SimulatedBackend) GenerateClip(ctx context.Context, req ClipRequest) (ClipResult, error) {
	if b.ClipDelay > 0 {
		select {
		case <-ctx.Done():
			return ClipResult{}, ctx.Err()
		case <-time.After(b.ClipDelay):
		}
	}

	url := fmt.Sprintf("https://cdn.reelmint.dev/clips/%s/%d.mp4", req.JobID, req.Segment)
	return ClipResult{ClipURL: url}, nil
}

// AssembleClips pretends to concatenate segments.
func (b *SimulatedBackend) AssembleClips(_ context.Context, jobID string, _ []string) (string, error) {
	return fmt.Sprintf("https://cdn.reelmint.dev/videos/%s/final.mp4", jobID), nil
}
