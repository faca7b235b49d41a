package api

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastmoney/fastmoney/internal/analytics"
	"github.com/fastmoney/fastmoney/internal/handler"
	"github.com/fastmoney/fastmoney/internal/logger"
)

func TestSetupRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	log := logger.NewNop()
	h := Handlers{
		Health:   handler.NewHealthHandler(nil, "fastmoney", "test"),
		Public:   handler.NewPublicHandler(nil, nil, log),
		Track:    handler.NewTrackHandler(nil, log),
		Redirect: handler.NewRedirectHandler(nil, nil, nil, nil, log),
		Admin:    handler.NewAdminHandler(nil, nil, nil, &analytics.Aggregator{}, log),
	}

	SetupRoutes(router, h)

	registered := make(map[string]bool)
	for _, route := range router.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	expected := []string{
		"GET /health",
		"GET /go/:lid",
		"GET /wr/:page",
		"GET /api/landing",
		"POST /api/track/session/start",
		"POST /api/track/session/end",
		"POST /api/track/click",
		"GET /admin/api/landing",
		"PUT /admin/api/landing",
		"GET /admin/api/buttons",
		"POST /admin/api/buttons",
		"PUT /admin/api/buttons/:id",
		"DELETE /admin/api/buttons/:id",
		"GET /admin/api/results",
		"POST /admin/api/results",
		"PUT /admin/api/results/:id",
		"DELETE /admin/api/results/:id",
		"GET /admin/api/results/:id/links",
		"PUT /admin/api/results/:id/links/:country",
		"DELETE /admin/api/results/:id/links/:country",
		"GET /admin/api/analytics",
		"DELETE /admin/api/analytics",
	}

	require.Len(t, router.Routes(), len(expected))
	for _, route := range expected {
		assert.True(t, registered[route], "missing route %s", route)
	}
}
