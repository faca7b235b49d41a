package handler

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports service liveness and database reachability.
type HealthHandler struct {
	db      *sql.DB
	name    string
	version string
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(db *sql.DB, name, version string) *HealthHandler {
	return &HealthHandler{
		db:      db,
		name:    name,
		version: version,
	}
}

// Health responds 200 when the database answers a ping, 503 otherwise.
func (h *HealthHandler) Health(c *gin.Context) {
	status := "healthy"
	code := http.StatusOK

	if err := h.db.PingContext(c.Request.Context()); err != nil {
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":  status,
		"service": h.name,
		"version": h.version,
	})
}
