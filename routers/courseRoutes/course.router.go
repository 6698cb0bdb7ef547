package courseRoutes

import (
	courseControllers "lms/controllers/course"
	"lms/middleware"
	courseValidators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/api/courses")

	// Public catalog
	courseGroup.Get("/", courseValidators.List(), courseControllers.ListCourses)
	courseGroup.Get("/categories", courseControllers.ListCategories)
	courseGroup.Get("/:id", courseControllers.CourseDetail)
	courseGroup.Get("/:id/reviews", courseControllers.ListReviews)

	// Learner routes
	courseGroup.Post("/:id/reviews", courseValidators.CreateReview(), middleware.JWTMiddleware, courseControllers.CreateReview)
	app.Get("/api/enrollments", middleware.JWTMiddleware, courseControllers.EnrolledCourses)
	app.Patch("/api/lessons/:id/progress", courseValidators.LessonProgress(), middleware.JWTMiddleware, courseControllers.UpdateLessonProgress)

	// Admin catalog management
	adminGroup := app.Group("/api/admin", middleware.JWTMiddleware, middleware.AdminOnly)
	adminGroup.Post("/courses", courseValidators.CreateCourse(), courseControllers.CreateCourse)
	adminGroup.Put("/courses/:id", courseValidators.CreateCourse(), courseControllers.UpdateCourse)
	adminGroup.Delete("/courses/:id", courseControllers.DeleteCourse)
	adminGroup.Post("/courses/:id/modules", courseValidators.CreateModule(), courseControllers.CreateModule)
	adminGroup.Post("/modules/:id/lessons", courseValidators.CreateLesson(), courseControllers.CreateLesson)
}
