package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/reelmint/reelmint/internal/apperror"
)

func TestLookupPackage(t *testing.T) {
	pkg, err := LookupPackage(PackageBasic)
	assert.NoError(t, err)
	assert.Equal(t, int64(300), pkg.SecondsAwarded)
	assert.True(t, pkg.Price.Equal(decimal.NewFromInt(5)))
	assert.False(t, pkg.GrantsPremium)

	pkg, err = LookupPackage(PackageUnlimited)
	assert.NoError(t, err)
	assert.True(t, pkg.GrantsPremium)
	assert.Equal(t, int64(0), pkg.SecondsAwarded)

	_, err = LookupPackage("mega")
	assert.Error(t, err)
	assert.Equal(t, apperror.InvalidPackage, apperror.KindOf(err))
}

func TestListPackages(t *testing.T) {
	pkgs := ListPackages()
	assert.Len(t, pkgs, 3)
	assert.Equal(t, PackageBasic, pkgs[0].ID)
	assert.Equal(t, PackageUnlimited, pkgs[2].ID)
}

func TestQuoteWithdrawal(t *testing.T) {
	quote, err := QuoteWithdrawal(decimal.NewFromInt(100))
	assert.NoError(t, err)
	assert.Equal(t, "2.00", quote.Fee.StringFixed(2))
	assert.Equal(t, "98.00", quote.Net.StringFixed(2))

	// Exactly the minimum passes
	quote, err = QuoteWithdrawal(decimal.NewFromInt(10))
	assert.NoError(t, err)
	assert.Equal(t, "0.20", quote.Fee.StringFixed(2))
	assert.Equal(t, "9.80", quote.Net.StringFixed(2))

	// Below the minimum fails with the policy kind
	_, err = QuoteWithdrawal(decimal.NewFromFloat(9.99))
	assert.Error(t, err)
	assert.Equal(t, apperror.BelowMinimum, apperror.KindOf(err))
}
