package notificationController

import (
	"log"

	"lms/database"
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// List returns the user's notifications with the derived unread count.
func List(c *fiber.Ctx) error {
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

	var notifications []models.Notification
	if err := db.Where("user_id = ? AND is_deleted = false", userId).
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&notifications).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch notifications!", nil)
	}

	var total, unread int64
	db.Model(&models.Notification{}).
		Where("user_id = ? AND is_deleted = false", userId).Count(&total)
	db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = false AND is_deleted = false", userId).Count(&unread)

	response := map[string]interface{}{
		"notifications": notifications,
		"unread_count":  unread,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification list.", response)
}

// MarkRead marks one notification as read. Reading is one-way; there is no
// way back to unread.
func MarkRead(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	notificationId, err := c.ParamsInt("id")
	if err != nil || notificationId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid notification id!", nil)
	}

	db := database.Database.Db

	var notification models.Notification
	if err := db.Where("id = ? AND user_id = ? AND is_deleted = false",
		notificationId, userId).First(&notification).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Notification not found!", nil)
	}

	if !notification.IsRead {
		if err := db.Model(&notification).Update("is_read", true).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update notification!", nil)
		}
		notification.IsRead = true
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification marked read.", notification)
}

// MarkAllRead marks every unread notification of the user as read.
func MarkAllRead(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	result := database.Database.Db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = false AND is_deleted = false", userId).
		Update("is_read", true)
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update notifications!", nil)
	}

	response := map[string]interface{}{
		"marked_read": result.RowsAffected,
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "All notifications marked read.", response)
}

// Delete soft-deletes a notification.
func Delete(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	notificationId, err := c.ParamsInt("id")
	if err != nil || notificationId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid notification id!", nil)
	}

	db := database.Database.Db

	var notification models.Notification
	if err := db.Where("id = ? AND user_id = ? AND is_deleted = false",
		notificationId, userId).First(&notification).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Notification not found!", nil)
	}

	if err := db.Model(&notification).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete notification!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification deleted.", nil)
}

// Broadcast sends a system notification to every active user (admin only).
func Broadcast(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedBroadcast").(*struct {
		Title   string `json:"title" validate:"required,min=3,max=255"`
		Message string `json:"message" validate:"required,min=3,max=5000"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var userIDs []uint
	if err := db.Model(&models.User{}).
		Where("is_deleted = false AND is_banned = false").
		Pluck("id", &userIDs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	notifications := make([]models.Notification, 0, len(userIDs))
	for _, id := range userIDs {
		notifications = append(notifications, models.Notification{
			UserID:  id,
			Type:    models.NotificationTypeSystem,
			Title:   reqData.Title,
			Message: reqData.Message,
		})
	}
	if len(notifications) > 0 {
		if err := db.CreateInBatches(notifications, 500).Error; err != nil {
			log.Printf("Error broadcasting notification: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to broadcast!", nil)
		}
	}

	response := map[string]interface{}{
		"recipients": len(notifications),
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Broadcast sent.", response)
}
