package adminRoutes

import (
	adminControllers "lms/controllers/admin"
	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/api/admin", middleware.JWTMiddleware, middleware.AdminOnly)

	adminGroup.Get("/dashboard", adminControllers.Dashboard)
	adminGroup.Get("/users", adminControllers.ListUsers)
	adminGroup.Get("/users/:id", adminControllers.UserDetail)
	adminGroup.Patch("/users/:id/ban", adminControllers.BanUser)
	adminGroup.Patch("/users/:id/unban", adminControllers.UnbanUser)
	adminGroup.Get("/courses/performance", adminControllers.CoursePerformance)
}
