package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/reelmint/reelmint/internal/apperror"
	"github.com/reelmint/reelmint/pkg/models"
)

// RecordAdWatch appends an ad-watch record and credits the reward as
// one atomic unit. The daily cap is re-checked under the user row lock
// so concurrent watches cannot slip past it. Returns the number of
// watches today including this one.
func (r *Repository) RecordAdWatch(ctx context.Context, rec *models.AdWatchRecord, dayStart, dayEnd time.Time, dailyLimit int) (int, error) {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}

	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var locked string
	err = tx.QueryRow(ctx,
		`SELECT id FROM users WHERE id = $1 FOR UPDATE`, rec.UserID,
	).Scan(&locked)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, apperror.New(apperror.NotFound, "user not found")
	}
	if err != nil {
		return 0, fmt.Errorf("failed to lock user: %w", err)
	}

	var watchesToday int
	err = tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM ad_records
		WHERE user_id = $1 AND created_at >= $2 AND created_at < $3
	`, rec.UserID, dayStart, dayEnd).Scan(&watchesToday)
	if err != nil {
		return 0, fmt.Errorf("failed to count watches: %w", err)
	}

	if watchesToday >= dailyLimit {
		return watchesToday, apperror.New(apperror.DailyLimitExceeded,
			"daily ad watch limit of %d reached", dailyLimit)
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO ad_records (id, user_id, seconds_earned, revenue)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, rec.ID, rec.UserID, rec.SecondsEarned, rec.Revenue.StringFixed(4),
	).Scan(&rec.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert ad record: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE users
		SET remaining_seconds = remaining_seconds + $1,
		    total_ads_watched = total_ads_watched + 1,
		    updated_at = NOW()
		WHERE id = $2
	`, rec.SecondsEarned, rec.UserID)
	if err != nil {
		return 0, fmt.Errorf("failed to credit reward: %w", err)
	}

	desc := fmt.Sprintf("earned %d seconds watching an ad", rec.SecondsEarned)
	if err := appendAudit(ctx, tx, rec.UserID, models.ActionAdWatched, desc); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}

	return watchesToday + 1, nil
}

// ApplyRecharge appends a completed recharge record and credits the
// package atomically. The unlimited tier flips the premium flag instead
// of crediting a sentinel balance.
func (r *Repository) ApplyRecharge(ctx context.Context, rec *models.RechargeRecord, grantsPremium bool) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}

	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var locked string
	err = tx.QueryRow(ctx,
		`SELECT id FROM users WHERE id = $1 FOR UPDATE`, rec.UserID,
	).Scan(&locked)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperror.New(apperror.NotFound, "user not found")
	}
	if err != nil {
		return fmt.Errorf("failed to lock user: %w", err)
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO recharge_records
			(id, user_id, transaction_id, package_id, amount, seconds_added, payment_method, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`, rec.ID, rec.UserID, rec.TransactionID, rec.PackageID,
		rec.Amount.StringFixed(2), rec.SecondsAdded, rec.PaymentMethod, rec.Status,
	).Scan(&rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert recharge record: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE users
		SET remaining_seconds = remaining_seconds + $1,
		    total_recharge_amount = total_recharge_amount + $2::numeric,
		    is_premium = is_premium OR $3,
		    updated_at = NOW()
		WHERE id = $4
	`, rec.SecondsAdded, rec.Amount.StringFixed(2), grantsPremium, rec.UserID)
	if err != nil {
		return fmt.Errorf("failed to credit recharge: %w", err)
	}

	desc := fmt.Sprintf("recharged %s for package %s", rec.Amount.StringFixed(2), rec.PackageID)
	if err := appendAudit(ctx, tx, rec.UserID, models.ActionRechargeCompleted, desc); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	return nil
}

// ApplyWithdraw appends a pending withdraw record and bumps the
// withdrawn total atomically. The available balance is re-checked under
// the row lock; the invariant total_withdraw <= total_recharge can
// never be broken by concurrent requests.
func (r *Repository) ApplyWithdraw(ctx context.Context, rec *models.WithdrawRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}

	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
		SELECT (total_recharge_amount - total_withdraw_amount)::text
		FROM users WHERE id = $1 FOR UPDATE
	`, rec.UserID)

	var availableText string
	err = row.Scan(&availableText)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperror.New(apperror.NotFound, "user not found")
	}
	if err != nil {
		return fmt.Errorf("failed to lock user: %w", err)
	}

	available, err := parseDecimal(availableText)
	if err != nil {
		return err
	}

	if rec.Amount.GreaterThan(available) {
		return apperror.New(apperror.InsufficientBalance,
			"withdrawal exceeds available balance: requested %s, available %s",
			rec.Amount.StringFixed(2), available.StringFixed(2))
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO withdraw_records
			(id, user_id, transaction_id, amount, fee, net_amount, payment_method, account_number, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`, rec.ID, rec.UserID, rec.TransactionID,
		rec.Amount.StringFixed(2), rec.Fee.StringFixed(2), rec.NetAmount.StringFixed(2),
		rec.PaymentMethod, rec.AccountNumber, rec.Status,
	).Scan(&rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert withdraw record: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE users
		SET total_withdraw_amount = total_withdraw_amount + $1::numeric,
		    updated_at = NOW()
		WHERE id = $2
	`, rec.Amount.StringFixed(2), rec.UserID)
	if err != nil {
		return fmt.Errorf("failed to apply withdrawal: %w", err)
	}

	desc := fmt.Sprintf("requested withdrawal of %s", rec.Amount.StringFixed(2))
	if err := appendAudit(ctx, tx, rec.UserID, models.ActionWithdrawRequested, desc); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	return nil
}
