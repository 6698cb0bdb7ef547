package courseValidator

import (
	"lms/middleware"
	"lms/validators"

	"github.com/gofiber/fiber/v2"
)

// List validates catalog listing query parameters
func List() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page     int    `query:"page" validate:"omitempty,gte=1"`
			Limit    int    `query:"limit" validate:"omitempty,gte=1,max=100"`
			Category string `query:"category" validate:"omitempty,max=100"`
			Level    string `query:"level" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED"`
			Search   string `query:"search" validate:"omitempty,max=255"`
			Sort     string `query:"sort" validate:"omitempty,oneof=newest price_low price_high title"`
		})
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		if errors := validators.CheckStruct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		if reqData.Page == 0 {
			reqData.Page = 1
		}
		if reqData.Limit == 0 {
			reqData.Limit = 20
		}

		c.Locals("validatedList", reqData)
		return c.Next()
	}
}

// CreateCourse validates the admin course creation payload
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title          string   `json:"title" validate:"required,min=3,max=255"`
			Slug           string   `json:"slug" validate:"required,min=3,max=255"`
			Description    string   `json:"description" validate:"omitempty"`
			Category       string   `json:"category" validate:"required,max=100"`
			Level          string   `json:"level" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED"`
			Thumbnail      string   `json:"thumbnail" validate:"omitempty,max=500"`
			InstructorName string   `json:"instructor_name" validate:"omitempty,max=255"`
			Price          float64  `json:"price" validate:"required,gt=0"`
			DiscountPrice  *float64 `json:"discount_price" validate:"omitempty,gte=0"`
			DurationHours  float64  `json:"duration_hours" validate:"omitempty,gte=0"`
			IsPublished    bool     `json:"is_published"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := validators.CheckStruct(reqData)
		if reqData.DiscountPrice != nil && *reqData.DiscountPrice >= reqData.Price {
			errors["discount_price"] = "Discount price must be lower than the list price!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// CreateModule validates the admin module creation payload
func CreateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title     string `json:"title" validate:"required,min=3,max=255"`
			SortOrder int    `json:"sort_order" validate:"omitempty,gte=0"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validators.CheckStruct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedModule", reqData)
		return c.Next()
	}
}

// CreateLesson validates the admin lesson creation payload
func CreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title           string `json:"title" validate:"required,min=3,max=255"`
			ContentURL      string `json:"content_url" validate:"omitempty,max=500"`
			DurationMinutes int    `json:"duration_minutes" validate:"omitempty,gte=0"`
			SortOrder       int    `json:"sort_order" validate:"omitempty,gte=0"`
			IsPreview       bool   `json:"is_preview"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validators.CheckStruct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

// LessonProgress validates a watch-progress update
func LessonProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			WatchedPercent float64 `json:"watched_percent" validate:"omitempty,gte=0,max=100"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validators.CheckStruct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProgress", reqData)
		return c.Next()
	}
}

// CreateReview validates a course review payload
func CreateReview() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Rating  int    `json:"rating" validate:"required,gte=1,max=5"`
			Comment string `json:"comment" validate:"omitempty,max=2000"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validators.CheckStruct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedReview", reqData)
		return c.Next()
	}
}
