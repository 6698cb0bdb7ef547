package referralController

import (
	"fmt"
	"log"
	"time"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ReferralStats returns the user's referral code, counts and wallet figures.
func ReferralStats(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = false", userId).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	var referredCount int64
	db.Model(&models.User{}).Where("referred_by = ? AND is_deleted = false", userId).Count(&referredCount)

	var pendingAmount float64
	db.Model(&models.ReferralEarning{}).
		Where("user_id = ? AND status = ? AND is_deleted = false", userId, models.EarningStatusPending).
		Select("COALESCE(SUM(amount), 0)").Scan(&pendingAmount)

	response := map[string]interface{}{
		"referral_code":   user.ReferralCode,
		"referral_link":   config.AppConfig.FrontendURL + "/register?ref=" + user.ReferralCode,
		"referred_count":  referredCount,
		"total_earnings":  user.TotalEarnings,
		"pending_amount":  pendingAmount,
		"wallet_balance":  user.WalletBalance,
		"commission_rate": config.AppConfig.CommissionRate,
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Referral stats.", response)
}

// EarningsList returns the user's commission history, newest first.
func EarningsList(c *fiber.Ctx) error {
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

	var earnings []models.ReferralEarning
	var total int64
	if err := db.Where("user_id = ? AND is_deleted = false", userId).
		Preload("ReferredUser", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		}).
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&earnings).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch earnings!", nil)
	}
	db.Model(&models.ReferralEarning{}).
		Where("user_id = ? AND is_deleted = false", userId).Count(&total)

	response := map[string]interface{}{
		"earnings": earnings,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Earnings list.", response)
}

// RequestWithdrawal creates a payout request. The amount leaves the wallet
// immediately so it cannot be requested twice; a rejection refunds it.
func RequestWithdrawal(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedWithdraw").(*struct {
		Amount        float64 `json:"amount" validate:"required,gt=0"`
		PaymentMethod string  `json:"payment_method" validate:"omitempty,oneof=BANK UPI PAYPAL"`
		PaymentDetail string  `json:"payment_detail" validate:"required,min=3,max=500"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Amount < config.AppConfig.MinWithdrawalLimit {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false,
			fmt.Sprintf("Minimum withdrawal amount is %.2f!", config.AppConfig.MinWithdrawalLimit), nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = false", userId).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}
	if reqData.Amount > user.WalletBalance {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Insufficient wallet balance!", nil)
	}

	method := reqData.PaymentMethod
	if method == "" {
		method = "BANK"
	}

	tx := db.Begin()

	request := models.WithdrawalRequest{
		UserID:        userId,
		Amount:        reqData.Amount,
		Status:        models.WithdrawalStatusPending,
		PaymentMethod: method,
		PaymentDetail: reqData.PaymentDetail,
	}
	if err := tx.Create(&request).Error; err != nil {
		tx.Rollback()
		log.Printf("Error creating withdrawal request for user %d: %v", userId, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create withdrawal request!", nil)
	}

	// The balance read above is advisory; the debit enforces it.
	debited, err := utils.DebitWallet(tx, userId, reqData.Amount)
	if err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create withdrawal request!", nil)
	}
	if !debited {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Insufficient wallet balance!", nil)
	}

	if err := tx.Commit().Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create withdrawal request!", nil)
	}

	utils.Notify(userId, models.NotificationTypeWithdrawal, "Withdrawal Requested",
		fmt.Sprintf("Your withdrawal request of %.2f has been submitted.", reqData.Amount),
		map[string]interface{}{"withdrawal_id": request.ID})

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Withdrawal request submitted.", request)
}

// WithdrawalList returns the user's withdrawal requests, newest first.
func WithdrawalList(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var requests []models.WithdrawalRequest
	if err := database.Database.Db.
		Where("user_id = ? AND is_deleted = false", userId).
		Order("created_at desc").
		Find(&requests).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch withdrawal requests!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Withdrawal list.", requests)
}

// AdminWithdrawalList lists withdrawal requests across users (admin only),
// optionally filtered by status.
func AdminWithdrawalList(c *fiber.Ctx) error {
	status := c.Query("status")
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
	query := db.Model(&models.WithdrawalRequest{}).Where("is_deleted = false")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var requests []models.WithdrawalRequest
	if err := query.
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email")
		}).
		Order("created_at asc").
		Offset(offset).
		Limit(limit).
		Find(&requests).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch withdrawal requests!", nil)
	}

	response := map[string]interface{}{
		"requests": requests,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Withdrawal requests.", response)
}

// ProcessWithdrawal resolves a pending request (admin only). Approval pays it
// out; rejection returns the escrowed amount to the wallet. Either way the
// decision is final.
func ProcessWithdrawal(c *fiber.Ctx) error {
	adminId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	requestId, err := c.ParamsInt("id")
	if err != nil || requestId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request id!", nil)
	}

	reqData, ok := c.Locals("validatedProcess").(*struct {
		Status    string `json:"status" validate:"required,oneof=APPROVED REJECTED"`
		AdminNote string `json:"admin_note" validate:"omitempty,max=2000"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var request models.WithdrawalRequest
	if err := db.Where("id = ? AND is_deleted = false", requestId).First(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Withdrawal request not found!", nil)
	}

	next := models.WithdrawalStatus(reqData.Status)
	if !request.Status.CanTransition(next) {
		return middleware.JsonResponse(c, fiber.StatusConflict, false,
			fmt.Sprintf("Cannot move request from %s to %s!", request.Status, next), nil)
	}

	var user models.User
	if err := db.Where("id = ? AND is_deleted = false", request.UserID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	tx := db.Begin()

	// The transition check above is advisory; the update only lands while the
	// request is still PENDING, so a request resolves exactly once.
	now := time.Now()
	resolved, err := utils.ResolveWithdrawal(tx, request.ID, next, reqData.AdminNote, adminId, now)
	if err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process withdrawal!", nil)
	}
	if !resolved {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusConflict, false,
			fmt.Sprintf("Cannot move request from %s to %s!", request.Status, next), nil)
	}

	// Rejection returns the escrowed amount
	if next == models.WithdrawalStatusRejected {
		if err := tx.Model(&models.User{}).Where("id = ?", request.UserID).
			Update("wallet_balance", gorm.Expr("wallet_balance + ?", request.Amount)).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process withdrawal!", nil)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process withdrawal!", nil)
	}

	approved := next == models.WithdrawalStatusApproved
	utils.SendWithdrawalProcessedEmail(user.Email, user.Name, request.Amount, approved, reqData.AdminNote)
	title := "Withdrawal Approved"
	message := fmt.Sprintf("Your withdrawal of %.2f has been approved.", request.Amount)
	if !approved {
		title = "Withdrawal Rejected"
		message = fmt.Sprintf("Your withdrawal of %.2f was rejected and refunded to your wallet.", request.Amount)
	}
	utils.Notify(request.UserID, models.NotificationTypeWithdrawal, title, message,
		map[string]interface{}{"withdrawal_id": request.ID})

	request.Status = next
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Withdrawal processed.", request)
}
