package handler

import (
	"context"
	"time"

	"quiz-player/internal/domain"
	"quiz-player/internal/dto"
	"quiz-player/internal/logger"
	"quiz-player/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const healthPingTimeout = 2 * time.Second

// HealthHandler reports whether the service and its cache are reachable
type HealthHandler struct {
	cache    domain.Cache
	playback service.PlaybackService
}

// NewHealthHandler creates a new HealthHandler instance. cache may be nil.
func NewHealthHandler(cache domain.Cache, playback service.PlaybackService) *HealthHandler {
	return &HealthHandler{cache: cache, playback: playback}
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	resp := dto.HealthResponse{Status: "ok", Cache: "disabled"}
	if h.playback != nil {
		resp.ActiveSessions = h.playback.ActiveSessions()
	}

	if h.cache != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), healthPingTimeout)
		defer cancel()
		if err := h.cache.Ping(ctx); err != nil {
			logger.Get().Warn("Health check: cache ping failed", zap.Error(err))
			resp.Status = "degraded"
			resp.Cache = "unavailable"
			return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
		}
		resp.Cache = "ok"
	}
	return c.JSON(resp)
}
