package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/reelmint/reelmint/internal/apperror"
	"github.com/reelmint/reelmint/internal/middleware"
	"github.com/reelmint/reelmint/internal/pricing"
)

type purchaseRequest struct {
	PackageID     string `json:"package_id" binding:"required"`
	PaymentMethod string `json:"payment_method" binding:"required"`
}

type withdrawRequest struct {
	// Amount is a decimal string so nothing is lost to float parsing.
	Amount        string `json:"amount" binding:"required"`
	PaymentMethod string `json:"payment_method"`
	AccountNumber string `json:"account_number"`
}

// listPackages returns the purchasable packages.
func (api *API) listPackages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"packages": pricing.ListPackages()})
}

// watchAd grants one rewarded ad view, capped per UTC day.
func (api *API) watchAd(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		respondError(c, apperror.New(apperror.Unauthenticated, "authentication required"))
		return
	}

	result, err := api.ledger.WatchAd(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	api.invalidateProfile(c, userID)

	c.JSON(http.StatusOK, gin.H{
		"seconds_earned": result.Record.SecondsEarned,
		"watches_today":  result.WatchesToday,
		"watches_left":   result.WatchesLeft,
	})
}

// purchasePackage applies a completed package payment.
func (api *API) purchasePackage(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		respondError(c, apperror.New(apperror.Unauthenticated, "authentication required"))
		return
	}

	var req purchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := api.ledger.Purchase(c.Request.Context(), userID, req.PackageID, req.PaymentMethod)
	if err != nil {
		respondError(c, err)
		return
	}

	api.invalidateProfile(c, userID)

	c.JSON(http.StatusCreated, rec)
}

// requestWithdrawal files a payout request against recharged funds.
func (api *API) requestWithdrawal(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		respondError(c, apperror.New(apperror.Unauthenticated, "authentication required"))
		return
	}

	var req withdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		respondError(c, apperror.New(apperror.InvalidRequest, "invalid amount %q", req.Amount))
		return
	}

	rec, err := api.ledger.Withdraw(c.Request.Context(), userID, amount, req.PaymentMethod, req.AccountNumber)
	if err != nil {
		respondError(c, err)
		return
	}

	api.invalidateProfile(c, userID)

	c.JSON(http.StatusCreated, rec)
}

func (api *API) invalidateProfile(c *gin.Context, userID string) {
	if err := api.cache.DeleteProfile(c.Request.Context(), userID); err != nil {
		api.logger.WithUserID(userID).ErrorWithErr("Profile cache invalidation failed", err)
	}
}
