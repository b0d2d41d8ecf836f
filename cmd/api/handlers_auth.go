package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/reelmint/reelmint/internal/apperror"
	"github.com/reelmint/reelmint/internal/metrics"
	"github.com/reelmint/reelmint/internal/middleware"
	"github.com/reelmint/reelmint/pkg/models"
)

type registerRequest struct {
	Username string `json:"username" binding:"required,min=3,max=32"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// register creates an account and returns a signed token.
func (api *API) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := &models.User{
		Username: strings.TrimSpace(req.Username),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
	}

	if err := api.repo.CreateUser(c.Request.Context(), user, req.Password); err != nil {
		respondError(c, err)
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, api.cfg.Auth.TokenTTL)
	if err != nil {
		respondError(c, apperror.New(apperror.Internal, "failed to issue token"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  user,
	})
}

// login verifies credentials and returns a signed token.
func (api *API) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := api.repo.VerifyCredentials(c.Request.Context(), email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := api.repo.TouchLogin(c.Request.Context(), user.ID); err != nil {
		api.logger.WithUserID(user.ID).ErrorWithErr("Failed to record login", err)
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, api.cfg.Auth.TokenTTL)
	if err != nil {
		respondError(c, apperror.New(apperror.Internal, "failed to issue token"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// getProfile returns the caller's balances and lifetime totals.
func (api *API) getProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		respondError(c, apperror.New(apperror.Unauthenticated, "authentication required"))
		return
	}

	if cached, err := api.cache.GetProfile(c.Request.Context(), userID); err == nil && cached != nil {
		metrics.RecordCacheAccess("profile", true)
		c.JSON(http.StatusOK, profileResponse(cached))
		return
	}
	metrics.RecordCacheAccess("profile", false)

	user, err := api.ledger.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := api.cache.SetProfile(c.Request.Context(), user, api.cfg.Generation.StatusCacheTTL); err != nil {
		api.logger.WithUserID(userID).ErrorWithErr("Profile cache write failed", err)
	}

	c.JSON(http.StatusOK, profileResponse(user))
}

// getUserStats returns the caller's usage summary.
func (api *API) getUserStats(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		respondError(c, apperror.New(apperror.Unauthenticated, "authentication required"))
		return
	}

	summary, err := api.analytics.GetUserSummary(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func profileResponse(user *models.User) gin.H {
	return gin.H{
		"user":              user,
		"available_balance": user.AvailableBalance().StringFixed(2),
	}
}
