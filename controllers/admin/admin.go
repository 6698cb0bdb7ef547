package adminController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// Dashboard returns the platform-wide counters for the admin home screen.
func Dashboard(c *fiber.Ctx) error {
	db := database.Database.Db

	var totalUsers, totalCourses, totalEnrollments, completedEnrollments int64
	var totalOrders, pendingWithdrawals, openTickets, certificatesIssued int64
	var revenue, pendingPayouts float64

	db.Model(&models.User{}).Where("is_deleted = false").Count(&totalUsers)
	db.Model(&models.Course{}).Where("is_deleted = false").Count(&totalCourses)
	db.Model(&models.Enrollment{}).Where("is_deleted = false").Count(&totalEnrollments)
	db.Model(&models.Enrollment{}).
		Where("is_completed = true AND is_deleted = false").Count(&completedEnrollments)
	db.Model(&models.Order{}).
		Where("status = ? AND is_deleted = false", models.OrderStatusCompleted).Count(&totalOrders)
	db.Model(&models.Order{}).
		Where("status = ? AND is_deleted = false", models.OrderStatusCompleted).
		Select("COALESCE(SUM(total), 0)").Scan(&revenue)
	db.Model(&models.WithdrawalRequest{}).
		Where("status = ? AND is_deleted = false", models.WithdrawalStatusPending).Count(&pendingWithdrawals)
	db.Model(&models.WithdrawalRequest{}).
		Where("status = ? AND is_deleted = false", models.WithdrawalStatusPending).
		Select("COALESCE(SUM(amount), 0)").Scan(&pendingPayouts)
	db.Model(&models.SupportTicket{}).
		Where("status <> ? AND is_deleted = false", models.TicketStatusClosed).Count(&openTickets)
	db.Model(&models.Certificate{}).Where("is_deleted = false").Count(&certificatesIssued)

	response := map[string]interface{}{
		"users": map[string]interface{}{
			"total": totalUsers,
		},
		"courses": map[string]interface{}{
			"total": totalCourses,
		},
		"enrollments": map[string]interface{}{
			"total":     totalEnrollments,
			"completed": completedEnrollments,
		},
		"orders": map[string]interface{}{
			"completed": totalOrders,
			"revenue":   revenue,
		},
		"withdrawals": map[string]interface{}{
			"pending":        pendingWithdrawals,
			"pending_amount": pendingPayouts,
		},
		"tickets": map[string]interface{}{
			"open": openTickets,
		},
		"certificates": map[string]interface{}{
			"issued": certificatesIssued,
		},
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard.", response)
}

// ListUsers lists platform users with search and pagination (admin only).
func ListUsers(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	search := c.Query("search")
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	db := database.Database.Db
	query := db.Model(&models.User{}).Where("is_deleted = false")
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name LIKE ? OR email LIKE ?", pattern, pattern)
	}

	var total int64
	query.Count(&total)

	var users []models.User
	if err := query.
		Select("id", "created_at", "name", "email", "role", "is_email_verified",
			"is_banned", "wallet_balance", "total_earnings", "referral_code", "referred_by", "last_login").
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	response := map[string]interface{}{
		"users": users,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "User list.", response)
}

// UserDetail returns one user with purchase and referral context (admin only).
func UserDetail(c *fiber.Ctx) error {
	userId, err := c.ParamsInt("id")
	if err != nil || userId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = false", userId).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}
	user.Password = ""

	var enrollmentCount, orderCount, referredCount int64
	var spent float64
	db.Model(&models.Enrollment{}).
		Where("user_id = ? AND is_deleted = false", userId).Count(&enrollmentCount)
	db.Model(&models.Order{}).
		Where("user_id = ? AND status = ? AND is_deleted = false", userId, models.OrderStatusCompleted).
		Count(&orderCount)
	db.Model(&models.Order{}).
		Where("user_id = ? AND status = ? AND is_deleted = false", userId, models.OrderStatusCompleted).
		Select("COALESCE(SUM(total), 0)").Scan(&spent)
	db.Model(&models.User{}).
		Where("referred_by = ? AND is_deleted = false", userId).Count(&referredCount)

	response := map[string]interface{}{
		"user":           user,
		"enrollments":    enrollmentCount,
		"orders":         orderCount,
		"total_spent":    spent,
		"referred_count": referredCount,
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "User detail.", response)
}

// BanUser suspends a user account (admin only).
func BanUser(c *fiber.Ctx) error {
	return setBan(c, true)
}

// UnbanUser lifts a suspension (admin only).
func UnbanUser(c *fiber.Ctx) error {
	return setBan(c, false)
}

func setBan(c *fiber.Ctx, banned bool) error {
	adminId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	userId, err := c.ParamsInt("id")
	if err != nil || userId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}
	if uint(userId) == adminId {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You cannot ban yourself!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = false", userId).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if err := db.Model(&user).Update("is_banned", banned).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user!", nil)
	}
	user.IsBanned = banned
	user.Password = ""

	message := "User banned."
	if !banned {
		message = "User unbanned."
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, message, user)
}

// CoursePerformance returns per-course sales and completion numbers (admin only).
func CoursePerformance(c *fiber.Ctx) error {
	db := database.Database.Db

	var courses []models.Course
	if err := db.Where("is_deleted = false").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	type performance struct {
		CourseID    uint    `json:"course_id"`
		Title       string  `json:"title"`
		Enrollments int64   `json:"enrollments"`
		Completions int64   `json:"completions"`
		Revenue     float64 `json:"revenue"`
	}

	results := make([]performance, 0, len(courses))
	for _, course := range courses {
		p := performance{CourseID: course.ID, Title: course.Title}
		db.Model(&models.Enrollment{}).
			Where("course_id = ? AND is_deleted = false", course.ID).Count(&p.Enrollments)
		db.Model(&models.Enrollment{}).
			Where("course_id = ? AND is_completed = true AND is_deleted = false", course.ID).
			Count(&p.Completions)
		db.Model(&models.OrderItem{}).
			Joins("JOIN orders ON orders.id = order_items.order_id").
			Where("order_items.course_id = ? AND orders.status = ? AND order_items.is_deleted = false",
				course.ID, models.OrderStatusCompleted).
			Select("COALESCE(SUM(order_items.price), 0)").Scan(&p.Revenue)
		results = append(results, p)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course performance.", results)
}
