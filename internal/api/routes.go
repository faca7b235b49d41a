package api

import (
	"github.com/gin-gonic/gin"

	"github.com/fastmoney/fastmoney/internal/handler"
)

// Handlers bundles the handler set the router mounts.
type Handlers struct {
	Health   *handler.HealthHandler
	Public   *handler.PublicHandler
	Track    *handler.TrackHandler
	Redirect *handler.RedirectHandler
	Admin    *handler.AdminHandler
}

// SetupRoutes configures all API routes.
func SetupRoutes(router *gin.Engine, h Handlers) {
	router.GET("/health", h.Health.Health)

	// Masked link redirect; lid is the only identifier in the URL.
	router.GET("/go/:lid", h.Redirect.HandleRedirect)

	// Category result pages keep the original wr=N addressing.
	router.GET("/wr/:page", h.Public.GetResultsPage)

	api := router.Group("/api")
	{
		api.GET("/landing", h.Public.GetLanding)

		track := api.Group("/track")
		{
			track.POST("/session/start", h.Track.StartSession)
			track.POST("/session/end", h.Track.EndSession)
			track.POST("/click", h.Track.TrackClick)
		}
	}

	// The admin surface is unauthenticated; deploy it behind a private
	// network boundary.
	admin := router.Group("/admin/api")
	{
		admin.GET("/landing", h.Admin.GetLanding)
		admin.PUT("/landing", h.Admin.SaveLanding)

		admin.GET("/buttons", h.Admin.ListButtons)
		admin.POST("/buttons", h.Admin.CreateButton)
		admin.PUT("/buttons/:id", h.Admin.UpdateButton)
		admin.DELETE("/buttons/:id", h.Admin.DeleteButton)

		admin.GET("/results", h.Admin.ListResults)
		admin.POST("/results", h.Admin.CreateResult)
		admin.PUT("/results/:id", h.Admin.UpdateResult)
		admin.DELETE("/results/:id", h.Admin.DeleteResult)

		admin.GET("/results/:id/links", h.Admin.ListLinks)
		admin.PUT("/results/:id/links/:country", h.Admin.SetLink)
		admin.DELETE("/results/:id/links/:country", h.Admin.DeleteLink)

		admin.GET("/analytics", h.Admin.GetAnalytics)
		admin.DELETE("/analytics", h.Admin.ClearAnalytics)
	}
}
