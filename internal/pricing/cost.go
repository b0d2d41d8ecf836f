package pricing

import (
	"math"

	"github.com/reelmint/reelmint/pkg/models"
)

const (
	// MinBillableSeconds is the smallest schedulable charge, equal to
	// one segment length.
	MinBillableSeconds = 10

	// promptBonusChunk is the prompt length granting one extra billed
	// second; prompts of 100 characters or less add nothing.
	promptBonusChunk = 100

	// hdMultiplier applies to 1080p renders.
	hdMultiplier = 1.5
)

// ComputeSecondsUsed maps a generation request to the seconds debited
// from the user's balance. Pure; callers validate that requestedSeconds
// is positive before charging.
func ComputeSecondsUsed(requestedSeconds int64, resolution string, promptLength int) int64 {
	used := requestedSeconds

	if resolution == models.Resolution1080p {
		used = int64(math.Ceil(float64(requestedSeconds) * hdMultiplier))
	}

	if promptLength > promptBonusChunk {
		used += int64(promptLength / promptBonusChunk)
	}

	if used < MinBillableSeconds {
		used = MinBillableSeconds
	}

	return used
}
