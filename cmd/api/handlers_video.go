package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/reelmint/reelmint/internal/apperror"
	"github.com/reelmint/reelmint/internal/middleware"
)

type generateRequest struct {
	Prompt          string `json:"prompt" binding:"required"`
	DurationSeconds int64  `json:"duration_seconds" binding:"required"`
	Resolution      string `json:"resolution"`
}

type checkPromptRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// generateVideo accepts a generation request. The cost is debited
// immediately; the job itself runs on the worker and the client polls
// for status.
func (api *API) generateVideo(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		respondError(c, apperror.New(apperror.Unauthenticated, "authentication required"))
		return
	}

	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	job, err := api.workflow.Submit(c.Request.Context(), userID, req.Prompt, req.DurationSeconds, req.Resolution)
	if err != nil {
		respondError(c, err)
		return
	}

	// The balance changed; the next profile read must see it
	api.invalidateProfile(c, userID)

	c.JSON(http.StatusCreated, job)
}

// getVideoJob returns one job with segment detail, for status polling.
func (api *API) getVideoJob(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		respondError(c, apperror.New(apperror.Unauthenticated, "authentication required"))
		return
	}

	job, err := api.workflow.GetJob(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// listVideoJobs returns the caller's jobs newest first.
func (api *API) listVideoJobs(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		respondError(c, apperror.New(apperror.Unauthenticated, "authentication required"))
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	jobs, err := api.workflow.ListJobs(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"jobs":   jobs,
		"limit":  limit,
		"offset": offset,
	})
}

// checkPrompt runs the content filter without creating a job, so
// clients can validate before submitting.
func (api *API) checkPrompt(c *gin.Context) {
	var req checkPromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := api.workflow.CheckPrompt(c.Request.Context(), req.Prompt)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
