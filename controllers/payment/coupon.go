package paymentController

import (
	"log"
	"strings"
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// CreateCoupon creates a discount code (admin only).
func CreateCoupon(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCoupon").(*struct {
		Code      string  `json:"code" validate:"required,min=3,max=32"`
		Type      string  `json:"type" validate:"required,oneof=PERCENT FLAT"`
		Value     float64 `json:"value" validate:"required,gt=0"`
		MinAmount float64 `json:"min_amount" validate:"omitempty,gte=0"`
		MaxUses   int     `json:"max_uses" validate:"omitempty,gte=0"`
		ExpiresAt string  `json:"expires_at" validate:"omitempty"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	code := strings.ToUpper(strings.TrimSpace(reqData.Code))
	if err := db.Where("code = ?", code).First(&models.Coupon{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Coupon code already exists!", nil)
	}

	coupon := models.Coupon{
		Code:      code,
		Type:      models.CouponType(reqData.Type),
		Value:     reqData.Value,
		MinAmount: reqData.MinAmount,
		MaxUses:   reqData.MaxUses,
		IsActive:  true,
	}
	if reqData.ExpiresAt != "" {
		expiresAt, err := time.Parse(time.RFC3339, reqData.ExpiresAt)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "expires_at must be RFC3339!", nil)
		}
		coupon.ExpiresAt = &expiresAt
	}

	if err := db.Create(&coupon).Error; err != nil {
		log.Printf("Error creating coupon: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create coupon!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Coupon created.", coupon)
}

// ListCoupons lists all coupons (admin only).
func ListCoupons(c *fiber.Ctx) error {
	var coupons []models.Coupon
	if err := database.Database.Db.
		Where("is_deleted = false").
		Order("created_at desc").
		Find(&coupons).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch coupons!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Coupon list.", coupons)
}

// DeactivateCoupon switches a coupon off without deleting its redemption history (admin only).
func DeactivateCoupon(c *fiber.Ctx) error {
	couponId, err := c.ParamsInt("id")
	if err != nil || couponId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid coupon id!", nil)
	}

	db := database.Database.Db

	var coupon models.Coupon
	if err := db.Where("id = ? AND is_deleted = false", couponId).First(&coupon).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Coupon not found!", nil)
	}

	if err := db.Model(&coupon).Update("is_active", false).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to deactivate coupon!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Coupon deactivated.", coupon)
}
