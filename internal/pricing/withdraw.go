package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/reelmint/reelmint/internal/apperror"
)

var (
	// minWithdrawAmount is the smallest accepted payout request.
	minWithdrawAmount = decimal.NewFromInt(10)

	// withdrawFeeRate is deducted from every payout.
	withdrawFeeRate = decimal.NewFromFloat(0.02)
)

// WithdrawQuote is the fee breakdown for a payout request. All amounts
// are fixed to 2 decimal places.
type WithdrawQuote struct {
	Amount decimal.Decimal
	Fee    decimal.Decimal
	Net    decimal.Decimal
}

// QuoteWithdrawal validates the requested amount against the policy
// minimum and computes the fee and net payout. The caller checks the
// available balance; this function is pure.
func QuoteWithdrawal(amount decimal.Decimal) (WithdrawQuote, error) {
	if amount.LessThan(minWithdrawAmount) {
		return WithdrawQuote{}, apperror.New(apperror.BelowMinimum,
			"minimum withdrawal amount is %s", minWithdrawAmount.StringFixed(2))
	}

	fee := amount.Mul(withdrawFeeRate).Round(2)
	return WithdrawQuote{
		Amount: amount.Round(2),
		Fee:    fee,
		Net:    amount.Sub(fee).Round(2),
	}, nil
}
