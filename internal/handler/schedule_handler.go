package handler

import (
	"time"

	"quiz-player/internal/domain"
	"quiz-player/internal/dto"
	"quiz-player/internal/logger"
	"quiz-player/internal/middleware"
	"quiz-player/internal/service"
	"quiz-player/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ScheduleHandler handles question schedule HTTP requests
type ScheduleHandler struct {
	service   service.ScheduleService
	validator *validation.Validator
}

// NewScheduleHandler creates a new ScheduleHandler instance
func NewScheduleHandler(service service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// GetSchedule godoc
// @Summary Get the question schedule of a video
// @Tags schedules
// @Produce json
// @Param videoID path string true "Video ID"
// @Success 200 {object} dto.ScheduleResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /videos/{videoID}/schedule [get]
func (h *ScheduleHandler) GetSchedule(c *fiber.Ctx) error {
	videoID := c.Locals(middleware.ValidatedVideoIDKey).(string)

	groups, err := h.service.GetSchedule(c.UserContext(), videoID)
	if err != nil {
		return err
	}
	return c.JSON(toScheduleResponse(videoID, groups))
}

// PutSchedule godoc
// @Summary Replace the question schedule of a video
// @Tags schedules
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param videoID path string true "Video ID"
// @Param request body dto.ScheduleRequest true "Schedule"
// @Success 200 {object} dto.ScheduleResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Router /videos/{videoID}/schedule [put]
func (h *ScheduleHandler) PutSchedule(c *fiber.Ctx) error {
	videoID := c.Locals(middleware.ValidatedVideoIDKey).(string)

	var req dto.ScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}
	if errs := h.validator.ValidateScheduleRequest(&req); len(errs) > 0 {
		return errs
	}

	saved, err := h.service.SaveSchedule(c.UserContext(), videoID, toDomainGroups(req.Groups))
	if err != nil {
		return err
	}
	logger.Get().Info("Schedule replaced",
		zap.String("video_id", videoID),
		zap.Any("by", c.Locals(middleware.SubjectKey)),
	)
	return c.JSON(toScheduleResponse(videoID, saved))
}

// DeleteSchedule godoc
// @Summary Delete the question schedule of a video
// @Tags schedules
// @Security ApiKeyAuth
// @Param videoID path string true "Video ID"
// @Success 204
// @Failure 401 {object} middleware.ErrorResponse
// @Router /videos/{videoID}/schedule [delete]
func (h *ScheduleHandler) DeleteSchedule(c *fiber.Ctx) error {
	videoID := c.Locals(middleware.ValidatedVideoIDKey).(string)

	if err := h.service.DeleteSchedule(c.UserContext(), videoID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func toDomainGroups(groups []dto.ScheduleGroup) []domain.QuestionGroup {
	out := make([]domain.QuestionGroup, 0, len(groups))
	for _, g := range groups {
		questions := make([]domain.Question, 0, len(g.Questions))
		for _, q := range g.Questions {
			questions = append(questions, domain.Question{
				Text:          q.Text,
				Options:       q.Options,
				CorrectAnswer: q.CorrectAnswer,
			})
		}
		out = append(out, domain.QuestionGroup{
			DueAt:     time.Duration(g.DueAtMs) * time.Millisecond,
			Questions: questions,
		})
	}
	return out
}

func toScheduleResponse(videoID string, groups []domain.QuestionGroup) dto.ScheduleResponse {
	resp := dto.ScheduleResponse{
		VideoID: videoID,
		Groups:  make([]dto.ScheduleGroup, 0, len(groups)),
	}
	for _, g := range groups {
		group := dto.ScheduleGroup{
			ID:        g.ID,
			DueAtMs:   g.DueAt.Milliseconds(),
			Questions: make([]dto.ScheduleQuestion, 0, len(g.Questions)),
		}
		for _, q := range g.Questions {
			group.Questions = append(group.Questions, dto.ScheduleQuestion{
				ID:            q.ID,
				Text:          q.Text,
				Options:       q.Options,
				CorrectAnswer: q.CorrectAnswer,
			})
		}
		resp.Groups = append(resp.Groups, group)
	}
	return resp
}
