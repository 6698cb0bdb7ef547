package paymentController

import (
	"fmt"
	"log"
	"strings"
	"time"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// InitiatePayment turns the cart into a PENDING order and hands back the
// signed gateway request for the frontend to post to PayU.
func InitiatePayment(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedInitiate").(*struct {
		CouponCode string `json:"coupon_code" validate:"omitempty,min=3,max=32"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = false", userId).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	var cartItems []models.CartItem
	if err := db.Where("user_id = ? AND is_deleted = false", userId).
		Preload("Course").
		Find(&cartItems).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch cart!", nil)
	}
	if len(cartItems) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Your cart is empty!", nil)
	}

	var subtotal float64
	titles := make([]string, 0, len(cartItems))
	for _, item := range cartItems {
		subtotal += item.Price
		titles = append(titles, item.Course.Title)
	}

	// Resolve coupon, if provided
	var coupon models.Coupon
	var discount float64
	var couponID uint
	if reqData.CouponCode != "" {
		code := strings.ToUpper(strings.TrimSpace(reqData.CouponCode))
		if err := db.Where("code = ? AND is_active = true AND is_deleted = false", code).
			First(&coupon).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Invalid coupon code!", nil)
		}
		if coupon.ExpiresAt != nil && coupon.ExpiresAt.Before(time.Now()) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Coupon has expired!", nil)
		}
		if coupon.MaxUses > 0 && coupon.UsedCount >= coupon.MaxUses {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Coupon usage limit reached!", nil)
		}
		if subtotal < coupon.MinAmount {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false,
				fmt.Sprintf("Cart total must be at least %.2f to use this coupon!", coupon.MinAmount), nil)
		}
		if err := db.Where("coupon_id = ? AND user_id = ? AND is_deleted = false",
			coupon.ID, userId).First(&models.CouponUse{}).Error; err == nil {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "You have already used this coupon!", nil)
		}
		discount = coupon.DiscountOn(subtotal)
		couponID = coupon.ID
	}

	total := subtotal - discount

	tx := db.Begin()

	order := models.Order{
		UserID:   userId,
		TxnID:    utils.GenerateTxnID(),
		Subtotal: subtotal,
		Discount: discount,
		Total:    total,
		Status:   models.OrderStatusPending,
		CouponID: couponID,
	}
	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		log.Printf("Error creating order for user %d: %v", userId, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create order!", nil)
	}

	for _, item := range cartItems {
		orderItem := models.OrderItem{
			OrderID:  order.ID,
			CourseID: item.CourseID,
			Title:    item.Course.Title,
			Price:    item.Price,
		}
		if err := tx.Create(&orderItem).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create order!", nil)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create order!", nil)
	}

	productInfo := fmt.Sprintf("%d course(s)", len(cartItems))
	payment := utils.BuildPaymentRequest(order.TxnID, productInfo, user.Name, user.Email, total)

	response := map[string]interface{}{
		"order":   order,
		"titles":  titles,
		"payment": payment,
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Payment initiated.", response)
}

// ConfirmPayment verifies the transaction with the gateway and, on success,
// completes the order: enrollments, cart cleanup, referral commission, coupon
// redemption, invoice email.
func ConfirmPayment(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedConfirm").(*struct {
		TxnID string `json:"txn_id" validate:"required,min=6,max=64"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var order models.Order
	if err := db.Where("txn_id = ? AND user_id = ? AND is_deleted = false",
		reqData.TxnID, userId).Preload("Items").First(&order).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Order not found!", nil)
	}
	if order.Status == models.OrderStatusCompleted {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Order is already completed!", nil)
	}

	gatewayStatus, rawBody, err := utils.VerifyPayment(order.TxnID)
	if err != nil {
		log.Printf("Payment verification error for %s: %v", order.TxnID, err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Could not verify payment with the gateway!", nil)
	}

	if gatewayStatus != "success" {
		db.Model(&order).Updates(map[string]interface{}{
			"status":               models.OrderStatusFailed,
			"payment_response_raw": datatypes.JSON(rawBody),
		})
		return middleware.JsonResponse(c, fiber.StatusPaymentRequired, false, "Payment was not successful!", nil)
	}

	var user models.User
	if err := db.Where("id = ? AND is_deleted = false", userId).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	tx := db.Begin()

	now := time.Now()
	if err := tx.Model(&order).Updates(map[string]interface{}{
		"status":               models.OrderStatusCompleted,
		"paid_at":              now,
		"payment_response_raw": datatypes.JSON(rawBody),
	}).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to complete order!", nil)
	}

	courseTitles := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		courseTitles = append(courseTitles, item.Title)

		// Enroll, skipping duplicates from admin grants
		var existing models.Enrollment
		if err := tx.Where("user_id = ? AND course_id = ? AND is_deleted = false",
			userId, item.CourseID).First(&existing).Error; err != nil {
			enrollment := models.Enrollment{
				UserID:   userId,
				CourseID: item.CourseID,
				OrderID:  order.ID,
			}
			if err := tx.Create(&enrollment).Error; err != nil {
				tx.Rollback()
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll!", nil)
			}
		}

		// Lifetime referral commission, held until maturation
		if user.ReferredBy != 0 {
			amount := item.Price * config.AppConfig.CommissionRate
			if amount > 0 {
				earning := models.ReferralEarning{
					UserID:      user.ReferredBy,
					ReferredID:  user.ID,
					OrderID:     order.ID,
					OrderItemID: item.ID,
					CourseTitle: item.Title,
					Amount:      amount,
					Status:      models.EarningStatusPending,
					MaturesAt:   now.AddDate(0, 0, config.AppConfig.MaturationDays),
				}
				if err := tx.Create(&earning).Error; err != nil {
					tx.Rollback()
					return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record commission!", nil)
				}
				if err := tx.Model(&models.User{}).Where("id = ?", user.ReferredBy).
					Update("total_earnings", gorm.Expr("total_earnings + ?", amount)).Error; err != nil {
					tx.Rollback()
					return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record commission!", nil)
				}
			}
		}
	}

	// Clear purchased items from the cart
	if err := tx.Model(&models.CartItem{}).
		Where("user_id = ? AND is_deleted = false", userId).
		Update("is_deleted", true).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to clear cart!", nil)
	}

	// Record coupon redemption
	if order.CouponID != 0 {
		use := models.CouponUse{
			CouponID: order.CouponID,
			UserID:   userId,
			OrderID:  order.ID,
		}
		if err := tx.Create(&use).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record coupon use!", nil)
		}
		if err := tx.Model(&models.Coupon{}).Where("id = ?", order.CouponID).
			Update("used_count", gorm.Expr("used_count + 1")).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record coupon use!", nil)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to complete order!", nil)
	}

	utils.SendInvoiceEmail(user.Email, user.Name, order.TxnID, courseTitles, order.Total)
	utils.Notify(userId, models.NotificationTypeOrder, "Purchase Confirmed",
		fmt.Sprintf("Your order %s is complete. Happy learning!", order.TxnID),
		map[string]interface{}{"order_id": order.ID})
	if user.ReferredBy != 0 {
		utils.Notify(user.ReferredBy, models.NotificationTypeReferral, "Referral Commission Earned",
			fmt.Sprintf("%s made a purchase. Your commission is on its way.", user.Name),
			map[string]interface{}{"order_id": order.ID})
	}

	order.Status = models.OrderStatusCompleted
	order.PaidAt = &now
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment confirmed. You are enrolled.", order)
}

// ListOrders returns the user's order history, newest first.
func ListOrders(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	db := database.Database.Db

	var orders []models.Order
	var total int64
	if err := db.Where("user_id = ? AND is_deleted = false", userId).
		Preload("Items").
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&orders).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch orders!", nil)
	}
	db.Model(&models.Order{}).Where("user_id = ? AND is_deleted = false", userId).Count(&total)

	response := map[string]interface{}{
		"orders": orders,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Order list.", response)
}

// OrderDetail returns one order belonging to the user.
func OrderDetail(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	orderId, err := c.ParamsInt("id")
	if err != nil || orderId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid order id!", nil)
	}

	var order models.Order
	if err := database.Database.Db.
		Where("id = ? AND user_id = ? AND is_deleted = false", orderId, userId).
		Preload("Items").
		First(&order).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Order not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Order detail.", order)
}
