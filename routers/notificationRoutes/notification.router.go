package notificationRoutes

import (
	notificationControllers "lms/controllers/notification"
	"lms/middleware"
	notificationValidators "lms/validators/notification"

	"github.com/gofiber/fiber/v2"
)

func SetupNotificationRoutes(app *fiber.App) {
	notificationGroup := app.Group("/api/notifications", middleware.JWTMiddleware)
	notificationGroup.Get("/", notificationControllers.List)
	notificationGroup.Post("/read-all", notificationControllers.MarkAllRead)
	notificationGroup.Post("/:id/read", notificationControllers.MarkRead)
	notificationGroup.Delete("/:id", notificationControllers.Delete)

	adminGroup := app.Group("/api/admin", middleware.JWTMiddleware, middleware.AdminOnly)
	adminGroup.Post("/notifications/broadcast", notificationValidators.Broadcast(), notificationControllers.Broadcast)
}
