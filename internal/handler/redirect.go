package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fastmoney/fastmoney/internal/domain"
	"github.com/fastmoney/fastmoney/internal/logger"
	"github.com/fastmoney/fastmoney/internal/repository"
	"github.com/fastmoney/fastmoney/internal/resolver"
	"github.com/fastmoney/fastmoney/internal/tracker"
)

// clickWriteTimeout bounds the fire-and-forget click write that outlives
// the redirect response.
const clickWriteTimeout = 5 * time.Second

// RedirectHandler serves the masked link redirect. The lid is the only
// identifier that ever appears in the public URL.
type RedirectHandler struct {
	results  *repository.ResultRepository
	resolver *resolver.Resolver
	tracker  *tracker.Tracker
	geo      tracker.Locator
	logger   logger.Logger
}

// NewRedirectHandler creates a RedirectHandler.
func NewRedirectHandler(
	results *repository.ResultRepository,
	res *resolver.Resolver,
	t *tracker.Tracker,
	locator tracker.Locator,
	log logger.Logger,
) *RedirectHandler {
	return &RedirectHandler{
		results:  results,
		resolver: res,
		tracker:  t,
		geo:      locator,
		logger:   log,
	}
}

// HandleRedirect resolves a masked link and redirects the visitor. The
// click record is written in the background; navigation never waits on it.
func (h *RedirectHandler) HandleRedirect(c *gin.Context) {
	lid, err := strconv.Atoi(c.Param("lid"))
	if err != nil || lid < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid link id"})
		return
	}

	result, err := h.results.GetByLinkID(c.Request.Context(), lid)
	if err != nil {
		if repository.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
			return
		}
		h.logger.Error("Failed to load result for redirect",
			logger.Int("lid", lid),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve link"})
		return
	}

	loc := h.geo.Lookup(c.Request.Context(), c.ClientIP())
	destination := h.resolver.Resolve(c.Request.Context(), result, loc.Country)

	h.recordClick(c.Query("sid"), result)

	c.Redirect(http.StatusFound, destination)
}

// recordClick fires the click write in the background. The navigation
// supersedes it; the write is allowed to finish after the 302 is sent.
func (h *RedirectHandler) recordClick(sessionID string, result *domain.WebResult) {
	if sessionID == "" {
		return
	}

	click := tracker.Click{
		SessionID:   sessionID,
		LinkID:      result.LinkID,
		ResultName:  result.Name,
		ResultTitle: result.Title,
		SearchTerm:  result.Page,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), clickWriteTimeout)
		defer cancel()
		// Errors are logged inside the tracker; nothing to do here.
		_ = h.tracker.TrackClick(ctx, click)
	}()
}
