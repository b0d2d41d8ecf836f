package generation

import (
	"context"
	"strings"
	"time"

	"github.com/reelmint/reelmint/internal/apperror"
	"github.com/reelmint/reelmint/internal/logging"
	"github.com/reelmint/reelmint/internal/metrics"
	"github.com/reelmint/reelmint/internal/moderation"
	"github.com/reelmint/reelmint/internal/pricing"
	"github.com/reelmint/reelmint/pkg/models"
)

// JobStore is the persistence surface the workflow needs. The database
// repository implements it; tests use an in-memory fake.
type JobStore interface {
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	CreateVideoJobWithDebit(ctx context.Context, job *models.VideoJob) error
	GetVideoJob(ctx context.Context, jobID string) (*models.VideoJob, error)
	ListUserJobs(ctx context.Context, userID string, limit, offset int) ([]*models.VideoJob, error)
	MarkJobGenerating(ctx context.Context, jobID string) error
	MarkSegmentCompleted(ctx context.Context, jobID string, index int, clipURL string) error
	MarkSegmentFailed(ctx context.Context, jobID string, index int, reason string) error
	FailJobAndRefund(ctx context.Context, jobID, reason string) error
	CompleteJob(ctx context.Context, jobID, finalURL string) error
	AppendAudit(ctx context.Context, userID, actionType, description string) error
}

// Publisher hands accepted jobs to the worker.
type Publisher interface {
	PublishGenerationJob(ctx context.Context, jobID string) error
}

// StatusCache is an optional read-through cache for job status polls.
type StatusCache interface {
	GetJob(ctx context.Context, jobID string) (*models.VideoJob, error)
	SetJob(ctx context.Context, job *models.VideoJob, ttl time.Duration) error
	DeleteJob(ctx context.Context, jobID string) error
}

// Workflow runs a job from submission through segment generation to a
// terminal state. Submission debits the cost up front; any segment
// failure fails the whole job and refunds the debit in full.
type Workflow struct {
	store     JobStore
	publisher Publisher
	backend   VideoBackend
	filter    *moderation.Filter
	cache     StatusCache
	logger    *logging.Logger

	maxTotalSeconds int64
	statusTTL       time.Duration
}

// NewWorkflow creates a workflow. cache may be nil.
func NewWorkflow(store JobStore, publisher Publisher, backend VideoBackend, filter *moderation.Filter, cache StatusCache, logger *logging.Logger, maxTotalSeconds int64, statusTTL time.Duration) *Workflow {
	return &Workflow{
		store:           store,
		publisher:       publisher,
		backend:         backend,
		filter:          filter,
		cache:           cache,
		logger:          logger,
		maxTotalSeconds: maxTotalSeconds,
		statusTTL:       statusTTL,
	}
}

// CheckPrompt runs the content filter without submitting anything.
func (w *Workflow) CheckPrompt(ctx context.Context, prompt string) (moderation.Result, error) {
	return w.filter.Check(ctx, prompt)
}

// Submit validates, prices and persists a generation request, then
// hands it to the worker. The returned job is in pending state.
func (w *Workflow) Submit(ctx context.Context, userID, prompt string, totalSeconds int64, resolution string) (*models.VideoJob, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, apperror.New(apperror.InvalidRequest, "prompt is required")
	}
	if totalSeconds <= 0 {
		return nil, apperror.New(apperror.InvalidRequest, "duration must be positive")
	}
	if totalSeconds > w.maxTotalSeconds {
		return nil, apperror.New(apperror.InvalidRequest,
			"duration exceeds the maximum of %d seconds", w.maxTotalSeconds)
	}
	if !models.ValidResolution(resolution) {
		return nil, apperror.New(apperror.InvalidRequest, "unsupported resolution %q", resolution)
	}
	if resolution == "" {
		resolution = models.Resolution720p
	}

	check, err := w.filter.Check(ctx, prompt)
	if err != nil {
		return nil, err
	}
	if check.Flagged {
		metrics.PromptsFlaggedTotal.Inc()
		desc := "prompt rejected: " + strings.Join(check.Matches, ", ")
		if err := w.store.AppendAudit(ctx, userID, models.ActionBannedWords, desc); err != nil {
			return nil, err
		}
		return nil, apperror.New(apperror.BannedContent,
			"prompt contains prohibited content: %s", strings.Join(check.Matches, ", "))
	}

	user, err := w.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	job := &models.VideoJob{
		UserID:       userID,
		Prompt:       prompt,
		TotalSeconds: totalSeconds,
		Resolution:   resolution,
		SecondsUsed:  pricing.ComputeSecondsUsed(totalSeconds, resolution, len(prompt)),
		HasWatermark: !user.IsPremium,
		Status:       models.JobStatusPending,
		Segments:     BuildSegments(prompt, totalSeconds),
	}

	if err := w.store.CreateVideoJobWithDebit(ctx, job); err != nil {
		return nil, err
	}

	if err := w.publisher.PublishGenerationJob(ctx, job.ID); err != nil {
		// The debit already committed; refund rather than strand the job.
		if failErr := w.store.FailJobAndRefund(ctx, job.ID, "failed to enqueue job"); failErr != nil {
			w.logger.WithJobID(job.ID).ErrorWithErr("Failed to refund unqueued job", failErr)
		}
		return nil, &apperror.Error{
			Kind:    apperror.BackendError,
			Message: "failed to enqueue generation job",
			Err:     err,
		}
	}

	metrics.RecordJobSubmitted(resolution, job.SecondsDebited)
	w.logger.LogJobEvent(job.ID, "submitted", job.Status, map[string]interface{}{
		"user_id":         userID,
		"total_seconds":   totalSeconds,
		"seconds_used":    job.SecondsUsed,
		"seconds_debited": job.SecondsDebited,
		"resolution":      resolution,
	})

	return job, nil
}

// GetJob returns a job with its segments, serving status polls from
// the cache when possible. Jobs are only visible to their owner.
func (w *Workflow) GetJob(ctx context.Context, jobID, userID string) (*models.VideoJob, error) {
	if w.cache != nil {
		cached, err := w.cache.GetJob(ctx, jobID)
		if err != nil {
			w.logger.WithJobID(jobID).ErrorWithErr("Job cache read failed", err)
		}
		metrics.RecordCacheAccess("job_status", cached != nil)
		if cached != nil {
			if cached.UserID != userID {
				return nil, apperror.New(apperror.NotFound, "video job not found")
			}
			return cached, nil
		}
	}

	job, err := w.store.GetVideoJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.UserID != userID {
		return nil, apperror.New(apperror.NotFound, "video job not found")
	}

	if w.cache != nil {
		if err := w.cache.SetJob(ctx, job, w.statusTTL); err != nil {
			w.logger.WithJobID(jobID).ErrorWithErr("Job cache write failed", err)
		}
	}

	return job, nil
}

// ListJobs returns the user's jobs newest first.
func (w *Workflow) ListJobs(ctx context.Context, userID string, limit, offset int) ([]*models.VideoJob, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return w.store.ListUserJobs(ctx, userID, limit, offset)
}

// RunJob executes one job end to end: every segment strictly in order,
// then final assembly. Terminal jobs are skipped so a redelivered
// message cannot re-run or double-refund anything.
func (w *Workflow) RunJob(ctx context.Context, jobID string) error {
	job, err := w.store.GetVideoJob(ctx, jobID)
	if err != nil {
		return err
	}

	if job.Status == models.JobStatusCompleted || job.Status == models.JobStatusFailed {
		w.logger.WithJobID(jobID).Info("Skipping job already in terminal state")
		return nil
	}

	if err := w.store.MarkJobGenerating(ctx, jobID); err != nil {
		return err
	}

	metrics.JobsInProgress.Inc()
	defer metrics.JobsInProgress.Dec()

	started := time.Now()
	w.logger.LogJobEvent(jobID, "started", models.JobStatusGenerating, map[string]interface{}{
		"segments": len(job.Segments),
	})

	renderRes := DowngradeResolution(job.Resolution)
	clipURLs := make([]string, 0, len(job.Segments))

	for _, seg := range job.Segments {
		segStart := time.Now()

		result, genErr := w.backend.GenerateClip(ctx, ClipRequest{
			JobID:           jobID,
			Segment:         seg.Index,
			Prompt:          seg.Prompt,
			DurationSeconds: seg.Duration(),
			Resolution:      renderRes,
			Watermark:       job.HasWatermark,
		})
		if genErr != nil {
			metrics.RecordSegmentOutcome(models.SegmentStatusFailed)
			w.logger.LogSegmentOutcome(jobID, seg.Index, models.SegmentStatusFailed, time.Since(segStart), genErr)

			if err := w.store.MarkSegmentFailed(ctx, jobID, seg.Index, genErr.Error()); err != nil {
				return err
			}
			return w.failJob(ctx, job, started, "segment generation failed: "+genErr.Error())
		}

		if err := w.store.MarkSegmentCompleted(ctx, jobID, seg.Index, result.ClipURL); err != nil {
			return err
		}
		metrics.RecordSegmentOutcome(models.SegmentStatusCompleted)
		w.logger.LogSegmentOutcome(jobID, seg.Index, models.SegmentStatusCompleted, time.Since(segStart), nil)

		clipURLs = append(clipURLs, result.ClipURL)
		w.invalidateJob(ctx, jobID)
	}

	finalURL, err := w.backend.AssembleClips(ctx, jobID, clipURLs)
	if err != nil {
		return w.failJob(ctx, job, started, "final assembly failed: "+err.Error())
	}

	if err := w.store.CompleteJob(ctx, jobID, finalURL); err != nil {
		return err
	}

	metrics.RecordJobCompleted(models.JobStatusCompleted, job.Resolution, time.Since(started).Seconds(), 0)
	w.logger.LogJobEvent(jobID, "completed", models.JobStatusCompleted, map[string]interface{}{
		"final_video_url": finalURL,
		"duration_ms":     time.Since(started).Milliseconds(),
	})
	w.invalidateJob(ctx, jobID)

	return nil
}

// failJob moves the job to failed and refunds the debited seconds. The
// failure is terminal, so nil is returned and the queue message acks.
func (w *Workflow) failJob(ctx context.Context, job *models.VideoJob, started time.Time, reason string) error {
	if err := w.store.FailJobAndRefund(ctx, job.ID, reason); err != nil {
		return err
	}

	metrics.RecordJobCompleted(models.JobStatusFailed, job.Resolution, time.Since(started).Seconds(), job.SecondsDebited)
	w.logger.LogJobEvent(job.ID, "failed", models.JobStatusFailed, map[string]interface{}{
		"reason":           reason,
		"seconds_refunded": job.SecondsDebited,
	})
	w.invalidateJob(ctx, job.ID)

	return nil
}

func (w *Workflow) invalidateJob(ctx context.Context, jobID string) {
	if w.cache == nil {
		return
	}
	if err := w.cache.DeleteJob(ctx, jobID); err != nil {
		w.logger.WithJobID(jobID).ErrorWithErr("Job cache invalidation failed", err)
	}
}
