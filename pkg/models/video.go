package models

import (
	"time"
)

// VideoJob represents one accepted generation request. The cost is
// debited when the job is created; SecondsDebited records how much was
// actually taken (zero for premium users) so a failure can refund
// exactly that amount.
type VideoJob struct {
	ID              string     `json:"id" db:"id"`
	UserID          string     `json:"user_id" db:"user_id"`
	Prompt          string     `json:"prompt" db:"prompt"`
	TotalSeconds    int64      `json:"total_seconds" db:"total_seconds"`
	Resolution      string     `json:"resolution" db:"resolution"`
	SecondsUsed     int64      `json:"seconds_used" db:"seconds_used"`
	SecondsDebited  int64      `json:"-" db:"seconds_debited"`
	SecondsRefunded int64      `json:"seconds_refunded" db:"seconds_refunded"`
	HasWatermark    bool       `json:"has_watermark" db:"has_watermark"`
	Status          string     `json:"status" db:"status"`
	FinalVideoURL   string     `json:"final_video_url,omitempty" db:"final_video_url"`
	ErrorMsg        string     `json:"error_msg,omitempty" db:"error_msg"`
	Segments        []*Segment `json:"segments,omitempty" db:"-"`
	StartedAt       *time.Time `json:"started_at,omitempty" db:"started_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}

// Segment is one fixed-length chunk of a job. Segments are contiguous,
// non-overlapping and cover [0, TotalSeconds); only the last one may be
// shorter than the standard length.
type Segment struct {
	JobID       string     `json:"-" db:"job_id"`
	Index       int        `json:"segment" db:"idx"`
	StartSecond int64      `json:"start" db:"start_second"`
	EndSecond   int64      `json:"end" db:"end_second"`
	Prompt      string     `json:"prompt" db:"prompt"`
	Status      string     `json:"status" db:"status"`
	ClipURL     string     `json:"clip_url,omitempty" db:"clip_url"`
	ErrorMsg    string     `json:"error_msg,omitempty" db:"error_msg"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`
}

// Duration returns the segment length in seconds.
func (s *Segment) Duration() int64 {
	return s.EndSecond - s.StartSecond
}

// Job status constants
const (
	JobStatusPending    = "pending"
	JobStatusGenerating = "generating"
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"
)

// Segment status constants
const (
	SegmentStatusPending   = "pending"
	SegmentStatusCompleted = "completed"
	SegmentStatusFailed    = "failed"
)

// Supported output resolutions
const (
	Resolution720p  = "720p"
	Resolution1080p = "1080p"
)

// ValidResolution reports whether r is a supported resolution. An empty
// value is allowed and defaults to 720p at submit time.
func ValidResolution(r string) bool {
	return r == "" || r == Resolution720p || r == Resolution1080p
}
