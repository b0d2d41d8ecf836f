package models

import (
	"github.com/shopspring/decimal"
)

// UserStats aggregates one user's generation and ledger history.
type UserStats struct {
	TotalJobs        int64 `json:"total_jobs"`
	CompletedJobs    int64 `json:"completed_jobs"`
	FailedJobs       int64 `json:"failed_jobs"`
	SecondsGenerated int64 `json:"seconds_generated"`

	AdsWatched      int64           `json:"ads_watched"`
	AdSecondsEarned int64           `json:"ad_seconds_earned"`
	AdRevenue       decimal.Decimal `json:"ad_revenue"`

	TotalRecharge decimal.Decimal `json:"total_recharge"`
	TotalWithdraw decimal.Decimal `json:"total_withdraw"`
}
