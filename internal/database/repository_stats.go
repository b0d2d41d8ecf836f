package database

import (
	"context"
	"fmt"

	"github.com/reelmint/reelmint/pkg/models"
)

// GetUserStats aggregates a user's generation and ledger history.
func (r *Repository) GetUserStats(ctx context.Context, userID string) (*models.UserStats, error) {
	stats := &models.UserStats{}

	err := r.db.Pool.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'completed'),
		       COUNT(*) FILTER (WHERE status = 'failed'),
		       COALESCE(SUM(total_seconds) FILTER (WHERE status = 'completed'), 0)
		FROM video_jobs
		WHERE user_id = $1
	`, userID).Scan(&stats.TotalJobs, &stats.CompletedJobs, &stats.FailedJobs, &stats.SecondsGenerated)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate jobs: %w", err)
	}

	var revenueText string
	err = r.db.Pool.QueryRow(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(seconds_earned), 0),
		       COALESCE(SUM(revenue), 0)::text
		FROM ad_records
		WHERE user_id = $1
	`, userID).Scan(&stats.AdsWatched, &stats.AdSecondsEarned, &revenueText)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate ad watches: %w", err)
	}
	if stats.AdRevenue, err = parseDecimal(revenueText); err != nil {
		return nil, err
	}

	user, err := r.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats.TotalRecharge = user.TotalRechargeAmount
	stats.TotalWithdraw = user.TotalWithdrawAmount

	return stats, nil
}
