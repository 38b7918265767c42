package handler

import (
	"time"

	"quiz-player/internal/domain"
	"quiz-player/internal/dto"
	"quiz-player/internal/middleware"
	"quiz-player/internal/player"
	"quiz-player/internal/service"
	"quiz-player/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// PlaybackHandler handles playback session HTTP requests
type PlaybackHandler struct {
	service   service.PlaybackService
	validator *validation.Validator
}

// NewPlaybackHandler creates a new PlaybackHandler instance
func NewPlaybackHandler(service service.PlaybackService) *PlaybackHandler {
	return &PlaybackHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// StartSession godoc
// @Summary Start a playback session
// @Description Loads the question schedule of a video and opens a session at position zero
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body dto.StartSessionRequest true "Video to play"
// @Success 201 {object} dto.PlaybackResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 429 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /sessions [post]
func (h *PlaybackHandler) StartSession(c *fiber.Ctx) error {
	var req dto.StartSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}
	if errs := h.validator.ValidateVideoID(req.VideoID); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.StartSession(c.UserContext(), req.VideoID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ReportPosition godoc
// @Summary Report the playback position
// @Description Feeds a position sample to the session and returns the action the client must render
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.PositionRequest true "Position sample"
// @Success 200 {object} dto.PlaybackResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /sessions/{id}/position [post]
func (h *PlaybackHandler) ReportPosition(c *fiber.Ctx) error {
	sessionID := c.Locals(middleware.ValidatedSessionIDKey).(string)

	var req dto.PositionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}
	if errs := h.validator.ValidatePosition(req.PositionMs); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.ReportPosition(c.UserContext(), sessionID, time.Duration(req.PositionMs)*time.Millisecond)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SubmitAnswer godoc
// @Summary Answer the active question
// @Description Submits the picked option, given as plain text or as a js:<option> navigation URL
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.AnswerRequest true "Picked option"
// @Success 200 {object} dto.PlaybackResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /sessions/{id}/answer [post]
func (h *PlaybackHandler) SubmitAnswer(c *fiber.Ctx) error {
	sessionID := c.Locals(middleware.ValidatedSessionIDKey).(string)

	var req dto.AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	answer := req.Answer
	if answer == "" && req.AnswerURL != "" {
		option, ok := player.ParseAnswerURL(req.AnswerURL)
		if !ok {
			return domain.ValidationErrors{domain.NewInvalidFormatError("answer_url", req.AnswerURL)}
		}
		answer = option
	}
	if errs := h.validator.ValidateAnswer(answer); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.SubmitAnswer(c.UserContext(), sessionID, answer)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetSession godoc
// @Summary Get session progress
// @Description Returns per-group progress, the active question and the playback state
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /sessions/{id} [get]
func (h *PlaybackHandler) GetSession(c *fiber.Ctx) error {
	sessionID := c.Locals(middleware.ValidatedSessionIDKey).(string)

	resp, err := h.service.GetSession(c.UserContext(), sessionID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// EndSession godoc
// @Summary End a playback session
// @Tags sessions
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} middleware.ErrorResponse
// @Router /sessions/{id} [delete]
func (h *PlaybackHandler) EndSession(c *fiber.Ctx) error {
	sessionID := c.Locals(middleware.ValidatedSessionIDKey).(string)

	if err := h.service.EndSession(c.UserContext(), sessionID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
