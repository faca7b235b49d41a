package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fastmoney/fastmoney/internal/domain"
	"github.com/fastmoney/fastmoney/internal/logger"
	"github.com/fastmoney/fastmoney/internal/repository"
)

// worldwideCountryParam is the :country path value that addresses a
// result's worldwide fallback instead of a country override.
const worldwideCountryParam = "ww"

// ListResults returns all web results.
func (h *AdminHandler) ListResults(c *gin.Context) {
	results, err := h.results.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list results",
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list results"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results": results,
		"count":   len(results),
	})
}

// CreateResult adds a web result and assigns its masked link id.
func (h *AdminHandler) CreateResult(c *gin.Context) {
	var result domain.WebResult
	if err := c.ShouldBindJSON(&result); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := result.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.results.Create(c.Request.Context(), &result); err != nil {
		h.logger.Error("Failed to create result",
			logger.String("name", result.Name),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create result"})
		return
	}

	h.logger.Info("Result created",
		logger.String("result_id", result.ID),
		logger.Int("lid", result.LinkID),
	)
	c.JSON(http.StatusCreated, result)
}

// UpdateResult rewrites a result's editable fields. The lid never changes.
func (h *AdminHandler) UpdateResult(c *gin.Context) {
	id := c.Param("id")

	var result domain.WebResult
	if err := c.ShouldBindJSON(&result); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	result.ID = id

	if err := result.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.results.Update(c.Request.Context(), &result); err != nil {
		if repository.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Result not found"})
			return
		}
		h.logger.Error("Failed to update result",
			logger.String("result_id", id),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update result"})
		return
	}

	updated, err := h.results.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusOK, result)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteResult removes a result and its overrides.
func (h *AdminHandler) DeleteResult(c *gin.Context) {
	id := c.Param("id")

	if err := h.results.Delete(c.Request.Context(), id); err != nil {
		if repository.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Result not found"})
			return
		}
		h.logger.Error("Failed to delete result",
			logger.String("result_id", id),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete result"})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// ListLinks returns a result's country overrides and worldwide fallback.
func (h *AdminHandler) ListLinks(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	countryLinks, err := h.links.ListCountryLinks(ctx, id)
	if err != nil {
		h.logger.Error("Failed to list country links",
			logger.String("result_id", id),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list links"})
		return
	}

	response := gin.H{"country_links": countryLinks}

	worldwide, err := h.links.GetWorldwideLink(ctx, id)
	switch {
	case err == nil:
		response["worldwide_link"] = worldwide
	case !repository.IsNotFound(err):
		h.logger.Error("Failed to load worldwide link",
			logger.String("result_id", id),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list links"})
		return
	}

	c.JSON(http.StatusOK, response)
}

type setLinkRequest struct {
	URL string `json:"url" binding:"required"`
}

// SetLink creates or replaces the override for one country, or the
// worldwide fallback when the country parameter is "ww".
func (h *AdminHandler) SetLink(c *gin.Context) {
	id := c.Param("id")
	country := strings.ToLower(c.Param("country"))

	var req setLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if country == worldwideCountryParam {
		link := &domain.WorldwideLink{ResultID: id, URL: req.URL}
		if err := link.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := h.links.SetWorldwideLink(c.Request.Context(), link); err != nil {
			h.logger.Error("Failed to set worldwide link",
				logger.String("result_id", id),
				logger.Error(err),
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set link"})
			return
		}
		c.JSON(http.StatusOK, link)
		return
	}

	link := &domain.CountryLink{ResultID: id, Country: country, URL: req.URL}
	if err := link.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.links.SetCountryLink(c.Request.Context(), link); err != nil {
		h.logger.Error("Failed to set country link",
			logger.String("result_id", id),
			logger.String("country", country),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set link"})
		return
	}

	c.JSON(http.StatusOK, link)
}

// DeleteLink removes the override for one country, or the worldwide
// fallback when the country parameter is "ww". A failed delete leaves the
// stored link in place and reports the error.
func (h *AdminHandler) DeleteLink(c *gin.Context) {
	id := c.Param("id")
	country := strings.ToLower(c.Param("country"))

	var err error
	if country == worldwideCountryParam {
		err = h.links.DeleteWorldwideLink(c.Request.Context(), id)
	} else {
		err = h.links.DeleteCountryLink(c.Request.Context(), id, country)
	}

	if err != nil {
		if repository.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
			return
		}
		h.logger.Error("Failed to delete link",
			logger.String("result_id", id),
			logger.String("country", country),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete link"})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
