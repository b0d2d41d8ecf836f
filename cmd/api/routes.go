package main

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/reelmint/reelmint/internal/apperror"
	"github.com/reelmint/reelmint/internal/metrics"
	"github.com/reelmint/reelmint/internal/middleware"
)

func setupRouter(api *API) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(api.logger.Zerolog()))
	router.Use(instrumentHTTP())

	limiter := middleware.NewRateLimiter(api.cfg.Server.RateLimitRPS, api.cfg.Server.RateLimitBurst)

	// Health check
	router.GET("/health", api.healthCheck)

	v1 := router.Group("/api/v1")
	v1.Use(middleware.RateLimit(limiter))
	{
		// Auth attempts share one Redis counter across instances
		auth := v1.Group("/auth")
		auth.Use(api.authThrottle(10, time.Minute))
		{
			auth.POST("/register", api.register)
			auth.POST("/login", api.login)
		}

		// Packages are public; purchases are not
		v1.GET("/packages", api.listPackages)

		authed := v1.Group("")
		authed.Use(middleware.JWTAuth())
		{
			// Profile
			authed.GET("/users/me", api.getProfile)
			authed.GET("/users/me/stats", api.getUserStats)

			// Generation
			authed.POST("/videos/generate", api.generateVideo)
			authed.GET("/videos/:id", api.getVideoJob)
			authed.GET("/videos", api.listVideoJobs)
			authed.POST("/moderation/check", api.checkPrompt)

			// Ledger
			authed.POST("/ads/watch", api.watchAd)
			authed.POST("/payments/purchase", api.purchasePackage)
			authed.POST("/withdrawals", api.requestWithdrawal)
		}
	}

	return router
}

// authThrottle limits attempts per client IP using a shared Redis
// counter. Fails open when Redis is unreachable.
func (api *API) authThrottle(limit int64, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("auth:%s", c.ClientIP())
		allowed, err := api.cache.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			api.logger.ErrorWithErr("Auth throttle check failed", err)
			c.Next()
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "too many attempts, try again later",
			})
			return
		}
		c.Next()
	}
}

// instrumentHTTP records request counts and latency per route.
func instrumentHTTP() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		metrics.RecordHTTPRequest(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start).Seconds(),
		)
	}
}

// respondError maps an error's kind to an HTTP status and writes the
// user-safe message.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch apperror.KindOf(err) {
	case apperror.Unauthenticated:
		status = http.StatusUnauthorized
	case apperror.InvalidRequest, apperror.BannedContent, apperror.InvalidPackage,
		apperror.BelowMinimum, apperror.MissingAccountInfo:
		status = http.StatusBadRequest
	case apperror.NotFound:
		status = http.StatusNotFound
	case apperror.DailyLimitExceeded:
		status = http.StatusTooManyRequests
	case apperror.InsufficientSeconds, apperror.InsufficientBalance:
		status = http.StatusPaymentRequired
	case apperror.BackendError:
		status = http.StatusBadGateway
	}

	c.JSON(status, gin.H{"error": apperror.UserMessage(err)})
}

// healthCheck reports API liveness and dependency health.
func (api *API) healthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := api.repo.Health(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}

	if err := api.cache.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
	})
}
