package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether the database answers
type Pinger func(ctx context.Context) error

// Counter reports how many movies are stored
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

type HealthHandler struct {
	ping  Pinger
	store Counter
}

func NewHealthHandler(ping Pinger, store Counter) *HealthHandler {
	return &HealthHandler{ping: ping, store: store}
}

// GET /manage/health
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "DOWN",
			"details": "Database ping failed",
			"error":   err.Error(),
		})
		return
	}

	count, err := h.store.Count(ctx)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "DOWN",
			"details": "Movie count failed",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "UP", "movies": count})
}
