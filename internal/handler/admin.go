package handler

import (
	"github.com/fastmoney/fastmoney/internal/analytics"
	"github.com/fastmoney/fastmoney/internal/logger"
	"github.com/fastmoney/fastmoney/internal/repository"
)

// AdminHandler implements the admin panel API: landing copy, search
// buttons, web results with their link overrides, and the analytics view.
// The admin surface carries no authentication, matching the deployment it
// fronts; it must only ever be exposed on a private network.
type AdminHandler struct {
	content    *repository.ContentRepository
	results    *repository.ResultRepository
	links      *repository.LinkRepository
	aggregator *analytics.Aggregator
	logger     logger.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(
	content *repository.ContentRepository,
	results *repository.ResultRepository,
	links *repository.LinkRepository,
	aggregator *analytics.Aggregator,
	log logger.Logger,
) *AdminHandler {
	return &AdminHandler{
		content:    content,
		results:    results,
		links:      links,
		aggregator: aggregator,
		logger:     log,
	}
}
