package models

import "time"

// AuditLog is one row of the system_logs table. Every ledger-affecting
// operation appends one as part of its transaction.
type AuditLog struct {
	ID          int64     `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	ActionType  string    `json:"action_type" db:"action_type"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Audit action types
const (
	ActionUserRegistered     = "user_registered"
	ActionUserLoggedIn       = "user_logged_in"
	ActionAdWatched          = "ad_watched"
	ActionRechargeCompleted  = "recharge_completed"
	ActionWithdrawRequested  = "withdraw_requested"
	ActionBannedWords        = "banned_words_detected"
	ActionGenerationStarted  = "video_generation_started"
	ActionGenerationComplete = "video_generation_completed"
	ActionGenerationFailed   = "video_generation_failed"
)

// BannedWord is one case-insensitive substring disallowed in prompts.
type BannedWord struct {
	ID        int64     `json:"id" db:"id"`
	Word      string    `json:"word" db:"word"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
