package supportController

import (
	"fmt"
	"log"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateTicket opens a new support ticket with its first message.
func CreateTicket(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedTicket").(*struct {
		Subject     string `json:"subject" validate:"required,min=5,max=255"`
		Description string `json:"description" validate:"required,min=10"`
		Priority    string `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
		Category    string `json:"category" validate:"omitempty,max=50"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	ticket := models.SupportTicket{
		UserID:      userId,
		Subject:     reqData.Subject,
		Description: reqData.Description,
		Status:      models.TicketStatusOpen,
	}
	if reqData.Priority != "" {
		ticket.Priority = reqData.Priority
	}
	if reqData.Category != "" {
		ticket.Category = reqData.Category
	}

	tx := db.Begin()
	if err := tx.Create(&ticket).Error; err != nil {
		tx.Rollback()
		log.Printf("Error creating ticket for user %d: %v", userId, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create ticket!", nil)
	}

	first := models.TicketMessage{
		TicketID: ticket.ID,
		SenderID: userId,
		Message:  reqData.Description,
	}
	if err := tx.Create(&first).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create ticket!", nil)
	}
	if err := tx.Commit().Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create ticket!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Ticket created.", ticket)
}

// ListTickets lists tickets with filtering, search and pagination, newest
// first. Admins see every ticket; everyone else sees their own.
func ListTickets(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedTicketList").(*struct {
		Page   int    `query:"page" validate:"omitempty,gte=1"`
		Limit  int    `query:"limit" validate:"omitempty,gte=1,max=100"`
		Status string `query:"status" validate:"omitempty,oneof=OPEN IN-PROGRESS CLOSED"`
		Search string `query:"search" validate:"omitempty,max=255"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	admin := isAdmin(db, userId)

	query := db.Model(&models.SupportTicket{}).Where("is_deleted = false")
	if !admin {
		query = query.Where("user_id = ?", userId)
	}
	if reqData.Status != "" {
		query = query.Where("status = ?", reqData.Status)
	}
	if reqData.Search != "" {
		pattern := "%" + reqData.Search + "%"
		query = query.Where("subject LIKE ? OR category LIKE ?", pattern, pattern)
	}

	var total int64
	query.Count(&total)

	if admin {
		query = query.Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email")
		})
	}

	offset := (reqData.Page - 1) * reqData.Limit
	var tickets []models.SupportTicket
	if err := query.
		Order("created_at desc").
		Offset(offset).
		Limit(reqData.Limit).
		Find(&tickets).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch tickets!", nil)
	}

	response := map[string]interface{}{
		"tickets": tickets,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  reqData.Page,
			"limit": reqData.Limit,
		},
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Ticket list.", response)
}

// TicketDetail returns one ticket with its full message thread. Owners and
// admins only.
func TicketDetail(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	ticketId, err := c.ParamsInt("id")
	if err != nil || ticketId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ticket id!", nil)
	}

	db := database.Database.Db

	var ticket models.SupportTicket
	if err := db.Where("id = ? AND is_deleted = false", ticketId).First(&ticket).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Ticket not found!", nil)
	}
	if ticket.UserID != userId && !isAdmin(db, userId) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have access to this ticket!", nil)
	}

	var messages []models.TicketMessage
	db.Where("ticket_id = ? AND is_deleted = false", ticketId).
		Order("created_at asc").Find(&messages)

	response := map[string]interface{}{
		"ticket":   ticket,
		"messages": messages,
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Ticket detail.", response)
}

// Reply appends a message to a ticket. Closed tickets reject replies; an admin
// reply on an OPEN ticket advances it to IN-PROGRESS.
func Reply(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	ticketId, err := c.ParamsInt("id")
	if err != nil || ticketId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ticket id!", nil)
	}

	reqData, ok := c.Locals("validatedReply").(*struct {
		Message string `json:"message" validate:"required,min=1,max=5000"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var ticket models.SupportTicket
	if err := db.Where("id = ? AND is_deleted = false", ticketId).First(&ticket).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Ticket not found!", nil)
	}

	fromAdmin := isAdmin(db, userId)
	if ticket.UserID != userId && !fromAdmin {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have access to this ticket!", nil)
	}

	if !ticket.Status.AcceptsReplies() {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Ticket is closed. Reopen it to continue the conversation!", nil)
	}

	message := models.TicketMessage{
		TicketID:    ticket.ID,
		SenderID:    userId,
		IsFromAdmin: fromAdmin,
		Message:     reqData.Message,
	}
	if err := db.Create(&message).Error; err != nil {
		log.Printf("Error creating reply on ticket %d: %v", ticket.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send reply!", nil)
	}

	// First admin response moves the ticket into IN-PROGRESS
	if fromAdmin && ticket.Status == models.TicketStatusOpen {
		if err := db.Model(&ticket).Update("status", models.TicketStatusInProgress).Error; err != nil {
			log.Printf("Error advancing ticket %d status: %v", ticket.ID, err)
		} else {
			ticket.Status = models.TicketStatusInProgress
		}
	}

	if fromAdmin {
		var owner models.User
		if err := db.Where("id = ? AND is_deleted = false", ticket.UserID).First(&owner).Error; err == nil {
			utils.SendTicketReplyEmail(owner.Email, owner.Name, ticket.Subject, ticket.ID)
			utils.Notify(ticket.UserID, models.NotificationTypeSupport, "Support Replied",
				fmt.Sprintf("Support replied on your ticket #%d.", ticket.ID),
				map[string]interface{}{"ticket_id": ticket.ID})
		}
	}

	response := map[string]interface{}{
		"ticket":  ticket,
		"message": message,
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Reply sent.", response)
}

// UpdateStatus sets an explicit ticket status, bound by the transition rules.
// Admins may apply any legal transition; the ticket owner may only close.
func UpdateStatus(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedStatus").(*struct {
		Status string `query:"status" validate:"required,oneof=OPEN IN-PROGRESS CLOSED"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	next := models.TicketStatus(reqData.Status)
	if next != models.TicketStatusClosed && !isAdmin(database.Database.Db, userId) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only support staff can set that status!", nil)
	}
	return changeStatus(c, next)
}

// Reopen moves a closed ticket back to OPEN. Owners and admins only.
func Reopen(c *fiber.Ctx) error {
	return changeStatus(c, models.TicketStatusOpen)
}

func changeStatus(c *fiber.Ctx, next models.TicketStatus) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	ticketId, err := c.ParamsInt("id")
	if err != nil || ticketId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ticket id!", nil)
	}

	db := database.Database.Db

	var ticket models.SupportTicket
	if err := db.Where("id = ? AND is_deleted = false", ticketId).First(&ticket).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Ticket not found!", nil)
	}
	if ticket.UserID != userId && !isAdmin(db, userId) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have access to this ticket!", nil)
	}

	if !ticket.Status.CanTransition(next) {
		return middleware.JsonResponse(c, fiber.StatusConflict, false,
			fmt.Sprintf("Cannot move ticket from %s to %s!", ticket.Status, next), nil)
	}

	if err := db.Model(&ticket).Update("status", next).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update ticket!", nil)
	}
	ticket.Status = next

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Ticket updated.", ticket)
}

func isAdmin(db *gorm.DB, userId uint) bool {
	var user models.User
	if err := db.Where("id = ? AND role = ? AND is_deleted = false",
		userId, models.RoleAdmin).First(&user).Error; err != nil {
		return false
	}
	return true
}
