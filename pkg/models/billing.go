package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdWatchRecord is the append-only audit row for one rewarded ad view.
// Revenue is informational; it never feeds the withdrawable balance.
type AdWatchRecord struct {
	ID            string          `json:"id" db:"id"`
	UserID        string          `json:"user_id" db:"user_id"`
	SecondsEarned int64           `json:"seconds_earned" db:"seconds_earned"`
	Revenue       decimal.Decimal `json:"revenue" db:"revenue"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}

// RechargeRecord is the append-only audit row for a package purchase.
type RechargeRecord struct {
	ID            string          `json:"id" db:"id"`
	UserID        string          `json:"user_id" db:"user_id"`
	TransactionID string          `json:"transaction_id" db:"transaction_id"`
	PackageID     string          `json:"package_id" db:"package_id"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	SecondsAdded  int64           `json:"seconds_added" db:"seconds_added"`
	PaymentMethod string          `json:"payment_method" db:"payment_method"`
	Status        string          `json:"status" db:"status"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}

// WithdrawRecord is the append-only audit row for a payout request.
type WithdrawRecord struct {
	ID            string          `json:"id" db:"id"`
	UserID        string          `json:"user_id" db:"user_id"`
	TransactionID string          `json:"transaction_id" db:"transaction_id"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	Fee           decimal.Decimal `json:"fee" db:"fee"`
	NetAmount     decimal.Decimal `json:"net_amount" db:"net_amount"`
	PaymentMethod string          `json:"payment_method" db:"payment_method"`
	AccountNumber string          `json:"account_number" db:"account_number"`
	Status        string          `json:"status" db:"status"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}

// Transaction status constants
const (
	TxnStatusPending   = "pending"
	TxnStatusCompleted = "completed"
	TxnStatusRejected  = "rejected"
)

// Package describes one purchasable balance package. Unlimited packages
// grant the premium flag instead of a literal seconds balance.
type Package struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Price          decimal.Decimal `json:"price"`
	SecondsAwarded int64           `json:"seconds_awarded"`
	GrantsPremium  bool            `json:"grants_premium"`
	Description    string          `json:"description"`
}
