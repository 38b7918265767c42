package handler

import (
	"quiz-player/internal/middleware"
	"quiz-player/internal/service"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the health check and the /api routes on app.
func RegisterRoutes(app *fiber.App, playback *PlaybackHandler, schedules *ScheduleHandler, health *HealthHandler, authService service.AuthService) {
	vm := middleware.NewValidationMiddleware()

	app.Get("/health", health.Health)

	api := app.Group("/api")

	sessions := api.Group("/sessions")
	sessions.Post("", playback.StartSession)
	sessions.Post("/:id/position", vm.ValidateSessionID(), playback.ReportPosition)
	sessions.Post("/:id/answer", vm.ValidateSessionID(), playback.SubmitAnswer)
	sessions.Get("/:id", vm.ValidateSessionID(), playback.GetSession)
	sessions.Delete("/:id", vm.ValidateSessionID(), playback.EndSession)

	videos := api.Group("/videos")
	videos.Get("/:videoID/schedule", vm.ValidateVideoID(), schedules.GetSchedule)
	videos.Put("/:videoID/schedule", middleware.Protected(authService), vm.ValidateVideoID(), schedules.PutSchedule)
	videos.Delete("/:videoID/schedule", middleware.Protected(authService), vm.ValidateVideoID(), schedules.DeleteSchedule)
}
