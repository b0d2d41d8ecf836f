package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/reelmint/reelmint/internal/apperror"
	"github.com/reelmint/reelmint/pkg/models"
)

// CreateVideoJobWithDebit persists a job with its segments and debits
// the owner's time balance in one transaction. Premium owners are not
// debited; SecondsDebited records what was actually taken so the
// failure path can refund exactly that amount.
func (r *Repository) CreateVideoJobWithDebit(ctx context.Context, job *models.VideoJob) error {
	if job.ID == "" {
		job.ID = uuid.New().String()
	}

	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var remaining int64
	var premium bool
	err = tx.QueryRow(ctx,
		`SELECT remaining_seconds, is_premium FROM users WHERE id = $1 FOR UPDATE`,
		job.UserID,
	).Scan(&remaining, &premium)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperror.New(apperror.NotFound, "user not found")
	}
	if err != nil {
		return fmt.Errorf("failed to lock user: %w", err)
	}

	job.SecondsDebited = 0
	if !premium {
		if remaining < job.SecondsUsed {
			return apperror.New(apperror.InsufficientSeconds,
				"insufficient seconds: need %d, have %d", job.SecondsUsed, remaining)
		}
		job.SecondsDebited = job.SecondsUsed

		_, err = tx.Exec(ctx, `
			UPDATE users
			SET remaining_seconds = remaining_seconds - $1, updated_at = NOW()
			WHERE id = $2
		`, job.SecondsUsed, job.UserID)
		if err != nil {
			return fmt.Errorf("failed to debit balance: %w", err)
		}
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO video_jobs
			(id, user_id, prompt, total_seconds, resolution, seconds_used,
			 seconds_debited, has_watermark, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`, job.ID, job.UserID, job.Prompt, job.TotalSeconds, job.Resolution,
		job.SecondsUsed, job.SecondsDebited, job.HasWatermark, job.Status,
	).Scan(&job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create video job: %w", err)
	}

	for _, seg := range job.Segments {
		seg.JobID = job.ID
		_, err = tx.Exec(ctx, `
			INSERT INTO video_segments (job_id, idx, start_second, end_second, prompt, status)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, seg.JobID, seg.Index, seg.StartSecond, seg.EndSecond, seg.Prompt, seg.Status)
		if err != nil {
			return fmt.Errorf("failed to create segment %d: %w", seg.Index, err)
		}
	}

	desc := fmt.Sprintf("started video generation %s (%d seconds billed)", job.ID, job.SecondsUsed)
	if err := appendAudit(ctx, tx, job.UserID, models.ActionGenerationStarted, desc); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	return nil
}

const jobColumns = `
	id, user_id, prompt, total_seconds, resolution, seconds_used,
	seconds_debited, seconds_refunded, has_watermark, status,
	COALESCE(final_video_url, ''), COALESCE(error_msg, ''),
	started_at, completed_at, created_at, updated_at
`

func scanJob(row rowScanner) (*models.VideoJob, error) {
	var job models.VideoJob
	err := row.Scan(
		&job.ID, &job.UserID, &job.Prompt, &job.TotalSeconds, &job.Resolution,
		&job.SecondsUsed, &job.SecondsDebited, &job.SecondsRefunded,
		&job.HasWatermark, &job.Status, &job.FinalVideoURL, &job.ErrorMsg,
		&job.StartedAt, &job.CompletedAt, &job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// GetVideoJob retrieves a job and its segments.
func (r *Repository) GetVideoJob(ctx context.Context, jobID string) (*models.VideoJob, error) {
	row := r.db.Pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM video_jobs WHERE id = $1`, jobID)

	job, err := scanJob(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.New(apperror.NotFound, "video job not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get video job: %w", err)
	}

	segments, err := r.getSegments(ctx, jobID)
	if err != nil {
		return nil, err
	}
	job.Segments = segments

	return job, nil
}

func (r *Repository) getSegments(ctx context.Context, jobID string) ([]*models.Segment, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT job_id, idx, start_second, end_second, prompt, status,
		       COALESCE(clip_url, ''), COALESCE(error_msg, ''), completed_at
		FROM video_segments
		WHERE job_id = $1
		ORDER BY idx
	`, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to get segments: %w", err)
	}
	defer rows.Close()

	var segments []*models.Segment
	for rows.Next() {
		var seg models.Segment
		err := rows.Scan(
			&seg.JobID, &seg.Index, &seg.StartSecond, &seg.EndSecond,
			&seg.Prompt, &seg.Status, &seg.ClipURL, &seg.ErrorMsg, &seg.CompletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan segment: %w", err)
		}
		segments = append(segments, &seg)
	}

	return segments, rows.Err()
}

// ListUserJobs retrieves a user's jobs newest first, without segments.
func (r *Repository) ListUserJobs(ctx context.Context, userID string, limit, offset int) ([]*models.VideoJob, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+jobColumns+` FROM video_jobs
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*models.VideoJob
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, job)
	}

	return jobs, rows.Err()
}

// MarkJobGenerating moves a pending job to generating. A job already
// past pending is left untouched.
func (r *Repository) MarkJobGenerating(ctx context.Context, jobID string) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE video_jobs
		SET status = $1, started_at = NOW(), updated_at = NOW()
		WHERE id = $2 AND status = $3
	`, models.JobStatusGenerating, jobID, models.JobStatusPending)
	if err != nil {
		return fmt.Errorf("failed to mark job generating: %w", err)
	}
	return nil
}

// MarkSegmentCompleted stores a finished segment's clip URL.
func (r *Repository) MarkSegmentCompleted(ctx context.Context, jobID string, index int, clipURL string) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE video_segments
		SET status = $1, clip_url = $2, completed_at = NOW()
		WHERE job_id = $3 AND idx = $4
	`, models.SegmentStatusCompleted, clipURL, jobID, index)
	if err != nil {
		return fmt.Errorf("failed to mark segment completed: %w", err)
	}
	return nil
}

// MarkSegmentFailed records a segment failure.
func (r *Repository) MarkSegmentFailed(ctx context.Context, jobID string, index int, reason string) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE video_segments
		SET status = $1, error_msg = $2, completed_at = NOW()
		WHERE job_id = $3 AND idx = $4
	`, models.SegmentStatusFailed, reason, jobID, index)
	if err != nil {
		return fmt.Errorf("failed to mark segment failed: %w", err)
	}
	return nil
}

// FailJobAndRefund marks the job failed and returns the debited
// seconds to the owner in one transaction. Calling it on a job that is
// already terminal is a no-op, so retried deliveries cannot refund
// twice.
func (r *Repository) FailJobAndRefund(ctx context.Context, jobID, reason string) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var userID string
	var debited int64
	var status string
	err = tx.QueryRow(ctx, `
		SELECT user_id, seconds_debited, status
		FROM video_jobs WHERE id = $1 FOR UPDATE
	`, jobID).Scan(&userID, &debited, &status)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperror.New(apperror.NotFound, "video job not found")
	}
	if err != nil {
		return fmt.Errorf("failed to lock job: %w", err)
	}

	if status == models.JobStatusCompleted || status == models.JobStatusFailed {
		return nil
	}

	_, err = tx.Exec(ctx, `
		UPDATE video_jobs
		SET status = $1, error_msg = $2, seconds_refunded = $3,
		    completed_at = NOW(), updated_at = NOW()
		WHERE id = $4
	`, models.JobStatusFailed, reason, debited, jobID)
	if err != nil {
		return fmt.Errorf("failed to fail job: %w", err)
	}

	if debited > 0 {
		_, err = tx.Exec(ctx, `
			UPDATE users
			SET remaining_seconds = remaining_seconds + $1, updated_at = NOW()
			WHERE id = $2
		`, debited, userID)
		if err != nil {
			return fmt.Errorf("failed to refund balance: %w", err)
		}
	}

	desc := fmt.Sprintf("generation %s failed, refunded %d seconds", jobID, debited)
	if err := appendAudit(ctx, tx, userID, models.ActionGenerationFailed, desc); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	return nil
}

// CompleteJob marks the job completed, stores the final URL and rolls
// the rendered seconds into the owner's lifetime total.
func (r *Repository) CompleteJob(ctx context.Context, jobID, finalURL string) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var userID string
	var totalSeconds int64
	var status string
	err = tx.QueryRow(ctx, `
		SELECT user_id, total_seconds, status
		FROM video_jobs WHERE id = $1 FOR UPDATE
	`, jobID).Scan(&userID, &totalSeconds, &status)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperror.New(apperror.NotFound, "video job not found")
	}
	if err != nil {
		return fmt.Errorf("failed to lock job: %w", err)
	}

	if status == models.JobStatusCompleted || status == models.JobStatusFailed {
		return nil
	}

	_, err = tx.Exec(ctx, `
		UPDATE video_jobs
		SET status = $1, final_video_url = $2, completed_at = NOW(), updated_at = NOW()
		WHERE id = $3
	`, models.JobStatusCompleted, finalURL, jobID)
	if err != nil {
		return fmt.Errorf("failed to complete job: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE users
		SET total_generated_seconds = total_generated_seconds + $1, updated_at = NOW()
		WHERE id = $2
	`, totalSeconds, userID)
	if err != nil {
		return fmt.Errorf("failed to update generated total: %w", err)
	}

	desc := fmt.Sprintf("generation %s completed", jobID)
	if err := appendAudit(ctx, tx, userID, models.ActionGenerationComplete, desc); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	return nil
}
