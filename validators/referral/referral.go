package referralValidator

import (
	"lms/middleware"
	"lms/validators"

	"github.com/gofiber/fiber/v2"
)

// Withdraw validates a payout request
func Withdraw() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Amount        float64 `json:"amount" validate:"required,gt=0"`
			PaymentMethod string  `json:"payment_method" validate:"omitempty,oneof=BANK UPI PAYPAL"`
			PaymentDetail string  `json:"payment_detail" validate:"required,min=3,max=500"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validators.CheckStruct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedWithdraw", reqData)
		return c.Next()
	}
}

// Process validates an admin decision on a withdrawal request
func Process() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Status    string `json:"status" validate:"required,oneof=APPROVED REJECTED"`
			AdminNote string `json:"admin_note" validate:"omitempty,max=2000"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validators.CheckStruct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProcess", reqData)
		return c.Next()
	}
}
