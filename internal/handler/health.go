package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health returns the service status and whether an analysis is available.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "healthy",
		"has_analysis": h.store.Latest() != nil,
	})
}
