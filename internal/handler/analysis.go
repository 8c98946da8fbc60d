package handler

import (
	"net/http"
	"strconv"

	"CycleSentinel/internal/recorder"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

const (
	defaultHistoryLimit = 30
	maxHistoryLimit     = 365
)

// GetLatest returns the most recent analysis result, or 404 before the first
// run.
func (h *Handler) GetLatest(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.get-latest")
	defer span.End()

	res := h.store.Latest()
	if res == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no analysis available yet"})
		return
	}
	span.SetAttributes(attribute.String("category", string(res.Category)))
	c.JSON(http.StatusOK, res)
}

// GetHistory returns recent run summaries, newest first.
func (h *Handler) GetHistory(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-history")
	defer span.End()

	limit := defaultHistoryLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxHistoryLimit {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "limit must be an integer between 1 and " + strconv.Itoa(maxHistoryLimit),
			})
			return
		}
		limit = n
	}
	span.SetAttributes(attribute.Int("limit", limit))

	runs, err := h.recorder.RecentRuns(ctx, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if runs == nil {
		runs = []recorder.RunSummary{}
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs, "count": len(runs)})
}
