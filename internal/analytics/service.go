package analytics

import (
	"context"

	"github.com/reelmint/reelmint/pkg/models"
)

// StatsStore supplies the aggregated rows the summary is built from.
type StatsStore interface {
	GetUserStats(ctx context.Context, userID string) (*models.UserStats, error)
}

// Service computes per-user usage summaries
type Service struct {
	store StatsStore
}

// NewService creates an analytics service
func NewService(store StatsStore) *Service {
	return &Service{store: store}
}

// Summary is a user's usage report with derived rates.
type Summary struct {
	Stats *models.UserStats `json:"stats"`

	// SuccessRate is the share of jobs that completed, in percent.
	// Zero jobs yields zero rather than a division error.
	SuccessRate float64 `json:"success_rate"`

	// AvailableBalance is what the user can still withdraw.
	AvailableBalance string `json:"available_balance"`
}

// GetUserSummary aggregates one user's generation and ledger history.
func (s *Service) GetUserSummary(ctx context.Context, userID string) (*Summary, error) {
	stats, err := s.store.GetUserStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Stats:            stats,
		AvailableBalance: stats.TotalRecharge.Sub(stats.TotalWithdraw).StringFixed(2),
	}

	if stats.TotalJobs > 0 {
		summary.SuccessRate = float64(stats.CompletedJobs) / float64(stats.TotalJobs) * 100
	}

	return summary, nil
}
