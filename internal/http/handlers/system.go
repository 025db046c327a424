package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// UserCounter is the probe run by /db-check.
type UserCounter interface {
	CountUsers(ctx context.Context) (int64, error)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "hotel booking backend is running"})
}

func (h *Handler) DBCheck(c *gin.Context) {
	if h.DB == nil {
		respondError(c, http.StatusInternalServerError, "db_unavailable", "database is not connected", nil)
		return
	}
	count, err := h.DB.CountUsers(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "db_unavailable", "database query failed: "+err.Error(), nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "database connection OK", "users_in_db": count})
}
