package generation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelmint/reelmint/pkg/models"
)

func TestBuildSegments_Partition(t *testing.T) {
	tests := []struct {
		name         string
		totalSeconds int64
		wantCount    int
		wantLastLen  int64
	}{
		{"single short segment", 7, 1, 7},
		{"exactly one segment", 10, 1, 10},
		{"two and a half segments", 25, 3, 5},
		{"exact multiple", 30, 3, 10},
		{"long job", 95, 10, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segments := BuildSegments("a fox running", tt.totalSeconds)
			require.Len(t, segments, tt.wantCount)

			// Contiguous, non-overlapping, covering [0, total)
			var cursor int64
			for i, seg := range segments {
				assert.Equal(t, i, seg.Index)
				assert.Equal(t, cursor, seg.StartSecond)
				assert.Greater(t, seg.EndSecond, seg.StartSecond)
				assert.Equal(t, models.SegmentStatusPending, seg.Status)
				cursor = seg.EndSecond
			}
			assert.Equal(t, tt.totalSeconds, cursor)

			last := segments[len(segments)-1]
			assert.Equal(t, tt.wantLastLen, last.Duration())
		})
	}
}

func TestBuildSegments_PromptPhrases(t *testing.T) {
	segments := BuildSegments("a city at night", 70)
	require.Len(t, segments, 7)

	assert.True(t, strings.HasPrefix(segments[0].Prompt, "start,"))
	assert.True(t, strings.HasPrefix(segments[1].Prompt, "next,"))
	assert.True(t, strings.HasPrefix(segments[2].Prompt, "then,"))
	assert.True(t, strings.HasPrefix(segments[3].Prompt, "subsequently,"))
	assert.True(t, strings.HasPrefix(segments[4].Prompt, "finally,"))

	// Segments past the phrase list reuse the last phrase
	assert.True(t, strings.HasPrefix(segments[5].Prompt, "finally,"))
	assert.True(t, strings.HasPrefix(segments[6].Prompt, "finally,"))

	for _, seg := range segments {
		assert.True(t, strings.HasSuffix(seg.Prompt, "a city at night"))
	}
}

func TestDowngradeResolution(t *testing.T) {
	assert.Equal(t, models.Resolution720p, DowngradeResolution(models.Resolution1080p))
	assert.Equal(t, "480p", DowngradeResolution(models.Resolution720p))
}
