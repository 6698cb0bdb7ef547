package certificateRoutes

import (
	certificateControllers "lms/controllers/certificate"
	"lms/middleware"
	certificateValidators "lms/validators/certificate"

	"github.com/gofiber/fiber/v2"
)

func SetupCertificateRoutes(app *fiber.App) {
	// Public verification by certificate number, no bearer token
	app.Get("/api/public/certificates/verify/:number", certificateControllers.Verify)

	certGroup := app.Group("/api/certificates")
	certGroup.Post("/:courseId/request", certificateValidators.Issue(), middleware.JWTMiddleware, certificateControllers.Issue)
	certGroup.Get("/", middleware.JWTMiddleware, certificateControllers.MyCertificates)
	certGroup.Get("/:id/print", middleware.JWTMiddleware, certificateControllers.Print)
	certGroup.Patch("/:id/name", certificateValidators.UpdateName(), middleware.JWTMiddleware, certificateControllers.UpdateName)

	adminGroup := app.Group("/api/admin", middleware.JWTMiddleware, middleware.AdminOnly)
	adminGroup.Patch("/certificates/:id/lock", certificateControllers.LockName)
	adminGroup.Patch("/certificates/:id/unlock", certificateControllers.UnlockName)
}
