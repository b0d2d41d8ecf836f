package ads

import (
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// DailyWatchLimit caps rewarded views per user per UTC calendar day.
	DailyWatchLimit = 5

	baseRewardSeconds = 25
	maxBonusSeconds   = 10
)

// Reward is the outcome of one rewarded ad view. Revenue is what the
// ad network pays out for the impression; it is recorded for audit but
// never credited to the withdrawable balance.
type Reward struct {
	SecondsEarned int64
	Revenue       decimal.Decimal
}

// Policy computes per-watch rewards. The random source is injectable
// for tests; the zero value is not usable, construct with NewPolicy.
type Policy struct {
	rng *rand.Rand
}

// NewPolicy creates a reward policy with its own random source.
func NewPolicy() *Policy {
	return &Policy{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewPolicyWithSource creates a policy with a caller-provided source,
// used by tests to pin the reward.
func NewPolicyWithSource(src rand.Source) *Policy {
	return &Policy{rng: rand.New(src)}
}

// Draw computes the reward for one watch: 25 plus a uniform 0-10 bonus
// seconds, and a uniform 0.10-0.30 revenue recorded to 4 decimals.
func (p *Policy) Draw() Reward {
	seconds := int64(baseRewardSeconds + p.rng.Intn(maxBonusSeconds+1))
	revenue := decimal.NewFromFloat(0.1 + p.rng.Float64()*0.2).Round(4)
	return Reward{SecondsEarned: seconds, Revenue: revenue}
}

// DayBoundsUTC returns the half-open UTC day interval containing t,
// used to count a user's watches for the daily cap.
func DayBoundsUTC(t time.Time) (start, end time.Time) {
	t = t.UTC()
	start = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24 * time.Hour)
}
