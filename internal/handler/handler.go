package handler

import (
	"CycleSentinel/internal/recorder"
	"CycleSentinel/internal/store"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

type Handler struct {
	tracer   trace.Tracer
	store    *store.Store
	recorder recorder.Recorder
}

func New(tracer trace.Tracer, st *store.Store, rec recorder.Recorder) *Handler {
	return &Handler{
		tracer:   tracer,
		store:    st,
		recorder: rec,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.GET("/api/v1/analysis/latest", h.GetLatest)
	r.GET("/api/v1/analysis/history", h.GetHistory)
}
