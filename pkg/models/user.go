package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents a registered account and its ledger state.
//
// RemainingSeconds is the time-credit spent on video generation. The
// monetary totals track cash movement only; the withdrawable balance is
// TotalRechargeAmount - TotalWithdrawAmount and never goes negative.
type User struct {
	ID                    string          `json:"id" db:"id"`
	Username              string          `json:"username" db:"username"`
	Email                 string          `json:"email" db:"email"`
	PasswordHash          string          `json:"-" db:"password_hash"`
	RemainingSeconds      int64           `json:"remaining_seconds" db:"remaining_seconds"`
	IsPremium             bool            `json:"is_premium" db:"is_premium"`
	TotalAdsWatched       int64           `json:"total_ads_watched" db:"total_ads_watched"`
	TotalGeneratedSeconds int64           `json:"total_generated_seconds" db:"total_generated_seconds"`
	TotalRechargeAmount   decimal.Decimal `json:"total_recharge_amount" db:"total_recharge_amount"`
	TotalWithdrawAmount   decimal.Decimal `json:"total_withdraw_amount" db:"total_withdraw_amount"`
	CreatedAt             time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at" db:"updated_at"`
}

// AvailableBalance returns the cash the user may still withdraw.
func (u *User) AvailableBalance() decimal.Decimal {
	return u.TotalRechargeAmount.Sub(u.TotalWithdrawAmount)
}

// HasSeconds reports whether the user can afford a debit of n seconds.
// Premium accounts are unbounded regardless of the stored balance.
func (u *User) HasSeconds(n int64) bool {
	if u.IsPremium {
		return true
	}
	return u.RemainingSeconds >= n
}
