package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fastmoney/fastmoney/internal/domain"
	"github.com/fastmoney/fastmoney/internal/logger"
	"github.com/fastmoney/fastmoney/internal/repository"
)

// PublicHandler serves the landing content and the category result pages.
type PublicHandler struct {
	content *repository.ContentRepository
	results *repository.ResultRepository
	logger  logger.Logger
}

// NewPublicHandler creates a PublicHandler.
func NewPublicHandler(
	content *repository.ContentRepository,
	results *repository.ResultRepository,
	log logger.Logger,
) *PublicHandler {
	return &PublicHandler{
		content: content,
		results: results,
		logger:  log,
	}
}

// GetLanding returns the landing copy and the ordered search buttons.
func (h *PublicHandler) GetLanding(c *gin.Context) {
	landing, err := h.content.GetLanding(c.Request.Context())
	if err != nil && !repository.IsNotFound(err) {
		h.logger.Error("Failed to load landing content",
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load landing content"})
		return
	}
	if landing == nil {
		landing = &domain.LandingContent{}
	}

	buttons, err := h.content.ListButtons(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to load buttons",
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load buttons"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"landing": landing,
		"buttons": buttons,
	})
}

// GetResultsPage returns one category's results, split into sponsored and
// organic groups the way the result page renders them.
func (h *PublicHandler) GetResultsPage(c *gin.Context) {
	page := c.Param("page")

	results, err := h.results.ListByPage(c.Request.Context(), "wr="+page)
	if err != nil {
		h.logger.Error("Failed to load results page",
			logger.String("page", page),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load results"})
		return
	}

	sponsored := make([]domain.WebResult, 0)
	organic := make([]domain.WebResult, 0)
	for _, r := range results {
		if r.IsSponsored {
			sponsored = append(sponsored, r)
		} else {
			organic = append(organic, r)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"sponsored": sponsored,
		"results":   organic,
	})
}
