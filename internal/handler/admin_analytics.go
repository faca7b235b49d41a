package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fastmoney/fastmoney/internal/analytics"
	"github.com/fastmoney/fastmoney/internal/logger"
)

// GetAnalytics produces an analytics report for the dashboard. The report's
// seq field lets the polling client discard responses that arrive out of
// order.
func (h *AdminHandler) GetAnalytics(c *gin.Context) {
	filter := analytics.Filter{
		Country:           c.Query("country"),
		Source:            c.Query("source"),
		ExcludeBlogClicks: c.Query("exclude_blog") == "true",
	}

	report, err := h.aggregator.Report(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to build analytics report",
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build analytics report"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// ClearAnalytics deletes all sessions and click events. On failure nothing
// is removed, and the client must keep its current view rather than show a
// false cleared state.
func (h *AdminHandler) ClearAnalytics(c *gin.Context) {
	if err := h.aggregator.Clear(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear analytics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}
