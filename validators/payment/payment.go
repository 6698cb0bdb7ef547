package paymentValidator

import (
	"lms/middleware"
	"lms/validators"

	"github.com/gofiber/fiber/v2"
)

// Initiate validates checkout initiation
func Initiate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CouponCode string `json:"coupon_code" validate:"omitempty,min=3,max=32"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validators.CheckStruct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedInitiate", reqData)
		return c.Next()
	}
}

// Confirm validates the post-payment confirmation payload
func Confirm() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			TxnID string `json:"txn_id" validate:"required,min=6,max=64"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validators.CheckStruct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedConfirm", reqData)
		return c.Next()
	}
}

// CreateCoupon validates the admin coupon creation payload
func CreateCoupon() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Code      string  `json:"code" validate:"required,min=3,max=32"`
			Type      string  `json:"type" validate:"required,oneof=PERCENT FLAT"`
			Value     float64 `json:"value" validate:"required,gt=0"`
			MinAmount float64 `json:"min_amount" validate:"omitempty,gte=0"`
			MaxUses   int     `json:"max_uses" validate:"omitempty,gte=0"`
			ExpiresAt string  `json:"expires_at" validate:"omitempty"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := validators.CheckStruct(reqData)
		if reqData.Type == "PERCENT" && reqData.Value > 100 {
			errors["value"] = "Percent discount cannot exceed 100!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCoupon", reqData)
		return c.Next()
	}
}
