package ledger

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/reelmint/reelmint/internal/ads"
	"github.com/reelmint/reelmint/internal/apperror"
	"github.com/reelmint/reelmint/internal/logging"
	"github.com/reelmint/reelmint/internal/metrics"
	"github.com/reelmint/reelmint/internal/pricing"
	"github.com/reelmint/reelmint/pkg/models"
)

// Store is the persistence surface the ledger needs. The database
// repository implements it; tests use an in-memory fake.
type Store interface {
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	RecordAdWatch(ctx context.Context, rec *models.AdWatchRecord, dayStart, dayEnd time.Time, dailyLimit int) (int, error)
	ApplyRecharge(ctx context.Context, rec *models.RechargeRecord, grantsPremium bool) error
	ApplyWithdraw(ctx context.Context, rec *models.WithdrawRecord) error
}

// Service implements the balance ledger: ad rewards in, package
// purchases in, payouts out. Every mutation goes through the store in
// a single transaction, so the service itself holds no state.
type Service struct {
	store  Store
	policy *ads.Policy
	logger *logging.Logger
	now    func() time.Time
}

// NewService creates a ledger service
func NewService(store Store, policy *ads.Policy, logger *logging.Logger) *Service {
	return &Service{
		store:  store,
		policy: policy,
		logger: logger,
		now:    time.Now,
	}
}

// AdWatchResult is returned after a granted rewarded view.
type AdWatchResult struct {
	Record       *models.AdWatchRecord
	WatchesToday int
	WatchesLeft  int
}

// WatchAd grants one rewarded ad view. The daily cap is enforced
// inside the store transaction; a capped watch credits nothing.
func (s *Service) WatchAd(ctx context.Context, userID string) (*AdWatchResult, error) {
	reward := s.policy.Draw()
	dayStart, dayEnd := ads.DayBoundsUTC(s.now())

	rec := &models.AdWatchRecord{
		UserID:        userID,
		SecondsEarned: reward.SecondsEarned,
		Revenue:       reward.Revenue,
	}

	watchesToday, err := s.store.RecordAdWatch(ctx, rec, dayStart, dayEnd, ads.DailyWatchLimit)
	if err != nil {
		if apperror.IsKind(err, apperror.DailyLimitExceeded) {
			metrics.RecordAdWatch(false, 0)
		}
		return nil, err
	}

	metrics.RecordAdWatch(true, reward.SecondsEarned)
	s.logger.LogLedgerMovement(userID, "ad_reward", reward.SecondsEarned, reward.Revenue)

	return &AdWatchResult{
		Record:       rec,
		WatchesToday: watchesToday,
		WatchesLeft:  ads.DailyWatchLimit - watchesToday,
	}, nil
}

// Purchase applies a completed package payment. The unlimited tier
// grants the premium flag instead of crediting seconds.
func (s *Service) Purchase(ctx context.Context, userID, packageID, paymentMethod string) (*models.RechargeRecord, error) {
	pkg, err := pricing.LookupPackage(packageID)
	if err != nil {
		return nil, err
	}

	rec := &models.RechargeRecord{
		UserID:        userID,
		TransactionID: newTransactionID(),
		PackageID:     pkg.ID,
		Amount:        pkg.Price,
		SecondsAdded:  pkg.SecondsAwarded,
		PaymentMethod: paymentMethod,
		Status:        models.TxnStatusCompleted,
	}

	if err := s.store.ApplyRecharge(ctx, rec, pkg.GrantsPremium); err != nil {
		return nil, err
	}

	metrics.RecordPurchase(pkg.ID)
	s.logger.LogLedgerMovement(userID, "recharge", pkg.SecondsAwarded, pkg.Price)

	return rec, nil
}

// Withdraw requests a payout of previously recharged funds. The
// request lands in pending state; an operator settles it out of band.
func (s *Service) Withdraw(ctx context.Context, userID string, amount decimal.Decimal, paymentMethod, accountNumber string) (*models.WithdrawRecord, error) {
	if paymentMethod == "" || accountNumber == "" {
		return nil, apperror.New(apperror.MissingAccountInfo,
			"payment method and account number are required")
	}

	quote, err := pricing.QuoteWithdrawal(amount)
	if err != nil {
		metrics.RecordWithdrawal("rejected")
		return nil, err
	}

	rec := &models.WithdrawRecord{
		UserID:        userID,
		TransactionID: newTransactionID(),
		Amount:        quote.Amount,
		Fee:           quote.Fee,
		NetAmount:     quote.Net,
		PaymentMethod: paymentMethod,
		AccountNumber: accountNumber,
		Status:        models.TxnStatusPending,
	}

	if err := s.store.ApplyWithdraw(ctx, rec); err != nil {
		if apperror.IsKind(err, apperror.InsufficientBalance) {
			metrics.RecordWithdrawal("rejected")
		}
		return nil, err
	}

	metrics.RecordWithdrawal("accepted")
	s.logger.LogLedgerMovement(userID, "withdraw", 0, quote.Amount)

	return rec, nil
}

// GetProfile returns the user's current balances and lifetime totals.
func (s *Service) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	return s.store.GetUserByID(ctx, userID)
}

// newTransactionID mints an id like TXN1756713600000a1b2c3d4.
func newTransactionID() string {
	buf := make([]byte, 4)
	rand.Read(buf)
	return fmt.Sprintf("TXN%d%s", time.Now().UnixMilli(), hex.EncodeToString(buf))
}
