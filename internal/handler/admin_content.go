package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fastmoney/fastmoney/internal/domain"
	"github.com/fastmoney/fastmoney/internal/logger"
	"github.com/fastmoney/fastmoney/internal/repository"
)

// GetLanding returns the current landing copy for editing.
func (h *AdminHandler) GetLanding(c *gin.Context) {
	landing, err := h.content.GetLanding(c.Request.Context())
	if err != nil {
		if repository.IsNotFound(err) {
			c.JSON(http.StatusOK, &domain.LandingContent{})
			return
		}
		h.logger.Error("Failed to load landing content",
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load landing content"})
		return
	}

	c.JSON(http.StatusOK, landing)
}

// SaveLanding replaces the landing copy. Validation failures reject the
// whole save.
func (h *AdminHandler) SaveLanding(c *gin.Context) {
	var landing domain.LandingContent
	if err := c.ShouldBindJSON(&landing); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := landing.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.content.SaveLanding(c.Request.Context(), &landing); err != nil {
		h.logger.Error("Failed to save landing content",
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save landing content"})
		return
	}

	h.logger.Info("Landing content updated")
	c.JSON(http.StatusOK, landing)
}

// ListButtons returns all search buttons in display order.
func (h *AdminHandler) ListButtons(c *gin.Context) {
	buttons, err := h.content.ListButtons(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list buttons",
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list buttons"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"buttons": buttons,
		"count":   len(buttons),
	})
}

// CreateButton adds a search button.
func (h *AdminHandler) CreateButton(c *gin.Context) {
	var button domain.SearchButton
	if err := c.ShouldBindJSON(&button); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := button.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.content.CreateButton(c.Request.Context(), &button); err != nil {
		h.logger.Error("Failed to create button",
			logger.String("title", button.Title),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create button"})
		return
	}

	h.logger.Info("Button created",
		logger.String("button_id", button.ID),
		logger.String("title", button.Title),
	)
	c.JSON(http.StatusCreated, button)
}

// UpdateButton rewrites a button's fields.
func (h *AdminHandler) UpdateButton(c *gin.Context) {
	id := c.Param("id")

	var button domain.SearchButton
	if err := c.ShouldBindJSON(&button); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	button.ID = id

	if err := button.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.content.UpdateButton(c.Request.Context(), &button); err != nil {
		if repository.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Button not found"})
			return
		}
		h.logger.Error("Failed to update button",
			logger.String("button_id", id),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update button"})
		return
	}

	c.JSON(http.StatusOK, button)
}

// DeleteButton removes a button.
func (h *AdminHandler) DeleteButton(c *gin.Context) {
	id := c.Param("id")

	if err := h.content.DeleteButton(c.Request.Context(), id); err != nil {
		if repository.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Button not found"})
			return
		}
		h.logger.Error("Failed to delete button",
			logger.String("button_id", id),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete button"})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
