package middleware

import (
	"quiz-player/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const (
	ValidatedSessionIDKey = "validated_session_id"
	ValidatedVideoIDKey   = "validated_video_id"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateSessionID validates the :id path parameter
func (vm *ValidationMiddleware) ValidateSessionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Params("id")
		if errors := vm.validator.ValidateSessionID(sessionID); len(errors) > 0 {
			return errors // This will be handled by ErrorHandler middleware
		}
		c.Locals(ValidatedSessionIDKey, sessionID)
		return c.Next()
	}
}

// ValidateVideoID validates the :videoID path parameter
func (vm *ValidationMiddleware) ValidateVideoID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		videoID := c.Params("videoID")
		if errors := vm.validator.ValidateVideoID(videoID); len(errors) > 0 {
			return errors
		}
		c.Locals(ValidatedVideoIDKey, videoID)
		return c.Next()
	}
}
