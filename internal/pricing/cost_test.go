package pricing

import (
	"testing"

	"github.com/reelmint/reelmint/pkg/models"
)

func TestComputeSecondsUsed(t *testing.T) {
	tests := []struct {
		name         string
		requested    int64
		resolution   string
		promptLength int
		expected     int64
	}{
		{"baseline 720p", 10, models.Resolution720p, 0, 10},
		{"1080p multiplier", 10, models.Resolution1080p, 0, 15},
		{"prompt length bonus", 10, models.Resolution720p, 250, 12},
		{"short prompt adds nothing", 10, models.Resolution720p, 100, 10},
		{"1080p rounds up", 7, models.Resolution1080p, 0, 11},
		{"floor clamp to segment length", 3, models.Resolution720p, 0, 10},
		{"bonus applies after multiplier", 20, models.Resolution1080p, 150, 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeSecondsUsed(tt.requested, tt.resolution, tt.promptLength)
			if got != tt.expected {
				t.Errorf("ComputeSecondsUsed(%d, %s, %d) = %d, want %d",
					tt.requested, tt.resolution, tt.promptLength, got, tt.expected)
			}
		})
	}
}
