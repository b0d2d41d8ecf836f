package generation

import (
	"fmt"

	"github.com/reelmint/reelmint/pkg/models"
)

// SegmentSeconds is the standard clip length. The provider generates
// clips in fixed chunks; only the final segment of a job may be
// shorter.
const SegmentSeconds = 10

// segmentPhrases prefix each segment's prompt so consecutive clips
// read as one continuous scene. Jobs longer than five segments reuse
// the last phrase.
var segmentPhrases = []string{"start,", "next,", "then,", "subsequently,", "finally,"}

// BuildSegments partitions a job into contiguous segments covering
// [0, totalSeconds) and derives each segment's prompt.
func BuildSegments(prompt string, totalSeconds int64) []*models.Segment {
	var segments []*models.Segment

	for start := int64(0); start < totalSeconds; start += SegmentSeconds {
		end := start + SegmentSeconds
		if end > totalSeconds {
			end = totalSeconds
		}

		idx := len(segments)
		phrase := segmentPhrases[len(segmentPhrases)-1]
		if idx < len(segmentPhrases) {
			phrase = segmentPhrases[idx]
		}

		segments = append(segments, &models.Segment{
			Index:       idx,
			StartSecond: start,
			EndSecond:   end,
			Prompt:      fmt.Sprintf("%s %s", phrase, prompt),
			Status:      models.SegmentStatusPending,
		})
	}

	return segments
}

// DowngradeResolution returns the resolution segments are rendered at,
// one notch below the job's target. The final assembly pass upscales.
func DowngradeResolution(resolution string) string {
	switch resolution {
	case models.Resolution1080p:
		return models.Resolution720p
	default:
		return "480p"
	}
}
