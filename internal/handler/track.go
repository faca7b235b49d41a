// Package handler implements the gin HTTP handlers for the public site,
// the tracking API, and the admin panel.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fastmoney/fastmoney/internal/domain"
	"github.com/fastmoney/fastmoney/internal/logger"
	"github.com/fastmoney/fastmoney/internal/tracker"
)

// TrackHandler exposes the session and click tracking endpoints called by
// the public pages. Tracking failures respond 202 regardless: the visitor's
// page must never stall on analytics.
type TrackHandler struct {
	tracker *tracker.Tracker
	logger  logger.Logger
}

// NewTrackHandler creates a TrackHandler.
func NewTrackHandler(t *tracker.Tracker, log logger.Logger) *TrackHandler {
	return &TrackHandler{
		tracker: t,
		logger:  log,
	}
}

type startSessionRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Page      string `json:"page" binding:"required"`
	UTMSource string `json:"utm_source"`
}

// StartSession opens or refreshes the visitor's session.
func (h *TrackHandler) StartSession(c *gin.Context) {
	var req startSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	visit := tracker.Visit{
		SessionID: req.SessionID,
		Page:      req.Page,
		RemoteIP:  c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Referrer:  c.Request.Referer(),
		UTMSource: req.UTMSource,
	}

	if err := h.tracker.StartSession(c.Request.Context(), visit); err != nil {
		if errors.Is(err, domain.ErrInvalidSessionID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session id"})
			return
		}
		// Store failures are already logged; tracking stays best-effort.
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "ok"})
}

type endSessionRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

// EndSession closes the visitor's session. Idempotent.
func (h *TrackHandler) EndSession(c *gin.Context) {
	var req endSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := h.tracker.EndSession(c.Request.Context(), req.SessionID); err != nil {
		if errors.Is(err, domain.ErrInvalidSessionID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session id"})
			return
		}
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "ok"})
}

type trackClickRequest struct {
	SessionID   string `json:"session_id" binding:"required"`
	LinkID      int    `json:"link_id" binding:"required"`
	ResultName  string `json:"result_name"`
	ResultTitle string `json:"result_title"`
	SearchTerm  string `json:"search_term"`
	IsBlogClick bool   `json:"is_blog_click"`
}

// TrackClick records one click on a masked link.
func (h *TrackHandler) TrackClick(c *gin.Context) {
	var req trackClickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	click := tracker.Click{
		SessionID:   req.SessionID,
		LinkID:      req.LinkID,
		ResultName:  req.ResultName,
		ResultTitle: req.ResultTitle,
		SearchTerm:  req.SearchTerm,
		IsBlogClick: req.IsBlogClick,
	}

	if err := h.tracker.TrackClick(c.Request.Context(), click); err != nil {
		if errors.Is(err, domain.ErrInvalidSessionID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session id"})
			return
		}
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "ok"})
}
