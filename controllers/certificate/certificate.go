package certificateController

import (
	"log"
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Issue creates the certificate for a completed course. Issuance happens once;
// repeat calls return the existing certificate unchanged.
func Issue(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseIdParam, err := c.ParamsInt("courseId")
	if err != nil || courseIdParam < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}
	courseId := uint(courseIdParam)

	reqData, ok := c.Locals("validatedIssue").(*struct {
		NameOnCertificate string `query:"name_on_certificate" validate:"omitempty,min=3,max=255"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = false", userId).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	var enrollment models.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = false",
		userId, courseId).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
	}
	if !enrollment.IsCompleted {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Complete the course to get your certificate!", nil)
	}

	// Already issued: hand the same certificate back
	var existing models.Certificate
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = false",
		userId, courseId).Preload("Course").First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate already issued.", existing)
	}

	name := reqData.NameOnCertificate
	if name == "" {
		name = user.Name
	}

	certificate := models.Certificate{
		UserID:            userId,
		CourseID:          courseId,
		CertificateNumber: utils.GenerateCertificateNumber(courseId, userId, time.Now()),
		NameOnCertificate: name,
		NameLocked:        true,
	}
	if err := db.Create(&certificate).Error; err != nil {
		log.Printf("Error issuing certificate for user %d course %d: %v", userId, courseId, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to issue certificate!", nil)
	}

	var course models.Course
	if err := db.Where("id = ?", courseId).First(&course).Error; err == nil {
		certificate.Course = course
		utils.SendCertificateEmail(user.Email, user.Name, course.Title, certificate.CertificateNumber)
	}
	utils.Notify(userId, models.NotificationTypeCertificate, "Certificate Issued",
		"Your course completion certificate is ready.",
		map[string]interface{}{"certificate_id": certificate.ID})

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate issued.", certificate)
}

// MyCertificates lists the user's certificates.
func MyCertificates(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var certificates []models.Certificate
	if err := database.Database.Db.
		Where("user_id = ? AND is_deleted = false", userId).
		Preload("Course").
		Order("created_at desc").
		Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate list.", certificates)
}

// Print returns a certificate for rendering and bumps its print counter.
func Print(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	certId, err := c.ParamsInt("id")
	if err != nil || certId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid certificate id!", nil)
	}

	db := database.Database.Db

	var certificate models.Certificate
	if err := db.Where("id = ? AND user_id = ? AND is_deleted = false",
		certId, userId).Preload("Course").First(&certificate).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	if err := db.Model(&certificate).
		Update("print_count", gorm.Expr("print_count + 1")).Error; err != nil {
		log.Printf("Error bumping print count for certificate %d: %v", certificate.ID, err)
	} else {
		certificate.PrintCount++
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate.", certificate)
}

// UpdateName changes the printed name while the certificate is unlocked.
func UpdateName(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	certId, err := c.ParamsInt("id")
	if err != nil || certId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid certificate id!", nil)
	}

	reqData, ok := c.Locals("validatedName").(*struct {
		NameOnCertificate string `json:"name_on_certificate" validate:"required,min=3,max=255"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var certificate models.Certificate
	if err := db.Where("id = ? AND user_id = ? AND is_deleted = false",
		certId, userId).First(&certificate).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	if certificate.NameLocked {
		return middleware.JsonResponse(c, fiber.StatusConflict, false,
			"Certificate name is locked. Contact support to change it!", nil)
	}

	// Renaming re-locks the certificate
	if err := db.Model(&certificate).Updates(map[string]interface{}{
		"name_on_certificate": reqData.NameOnCertificate,
		"name_locked":         true,
	}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update certificate!", nil)
	}
	certificate.NameOnCertificate = reqData.NameOnCertificate
	certificate.NameLocked = true

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate name updated.", certificate)
}

// Verify is the public lookup by certificate number. No authentication.
func Verify(c *fiber.Ctx) error {
	number := c.Params("number")
	if number == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Certificate number is required!", nil)
	}

	db := database.Database.Db

	var certificate models.Certificate
	if err := db.Where("certificate_number = ? AND is_deleted = false", number).
		Preload("Course").First(&certificate).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	// Public view carries no account details beyond the printed name
	response := map[string]interface{}{
		"certificate_number":  certificate.CertificateNumber,
		"name_on_certificate": certificate.NameOnCertificate,
		"course_title":        certificate.Course.Title,
		"issued_at":           certificate.CreatedAt,
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate is valid.", response)
}

// LockName freezes the printed name (admin only).
func LockName(c *fiber.Ctx) error {
	return setNameLock(c, true)
}

// UnlockName allows the owner to change the printed name once (admin only).
func UnlockName(c *fiber.Ctx) error {
	return setNameLock(c, false)
}

func setNameLock(c *fiber.Ctx, locked bool) error {
	certId, err := c.ParamsInt("id")
	if err != nil || certId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid certificate id!", nil)
	}

	db := database.Database.Db

	var certificate models.Certificate
	if err := db.Where("id = ? AND is_deleted = false", certId).First(&certificate).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	if err := db.Model(&certificate).Update("name_locked", locked).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update certificate!", nil)
	}
	certificate.NameLocked = locked

	message := "Certificate name locked."
	if !locked {
		message = "Certificate name unlocked."
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, message, certificate)
}
