package certificateValidator

import (
	"lms/middleware"
	"lms/validators"

	"github.com/gofiber/fiber/v2"
)

// Issue validates a certificate issuance request. The display name rides in
// the query string so the request body can stay empty.
func Issue() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			NameOnCertificate string `query:"name_on_certificate" validate:"omitempty,min=3,max=255"`
		})
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		if errors := validators.CheckStruct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedIssue", reqData)
		return c.Next()
	}
}

// UpdateName validates a certificate rename request
func UpdateName() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			NameOnCertificate string `json:"name_on_certificate" validate:"required,min=3,max=255"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validators.CheckStruct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedName", reqData)
		return c.Next()
	}
}
