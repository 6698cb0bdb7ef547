package courseController

import (
	"log"

	"lms/database"
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

type coursePayload = struct {
	Title          string   `json:"title" validate:"required,min=3,max=255"`
	Slug           string   `json:"slug" validate:"required,min=3,max=255"`
	Description    string   `json:"description" validate:"omitempty"`
	Category       string   `json:"category" validate:"required,max=100"`
	Level          string   `json:"level" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED"`
	Thumbnail      string   `json:"thumbnail" validate:"omitempty,max=500"`
	InstructorName string   `json:"instructor_name" validate:"omitempty,max=255"`
	Price          float64  `json:"price" validate:"required,gt=0"`
	DiscountPrice  *float64 `json:"discount_price" validate:"omitempty,gte=0"`
	DurationHours  float64  `json:"duration_hours" validate:"omitempty,gte=0"`
	IsPublished    bool     `json:"is_published"`
}

// CreateCourse creates a catalog entry (admin only).
func CreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*coursePayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	if err := db.Where("slug = ?", reqData.Slug).First(&models.Course{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Slug is already in use!", nil)
	}

	course := models.Course{
		Title:          reqData.Title,
		Slug:           reqData.Slug,
		Description:    reqData.Description,
		Category:       reqData.Category,
		Level:          reqData.Level,
		Thumbnail:      reqData.Thumbnail,
		InstructorName: reqData.InstructorName,
		Price:          reqData.Price,
		DiscountPrice:  reqData.DiscountPrice,
		DurationHours:  reqData.DurationHours,
		IsPublished:    reqData.IsPublished,
	}
	if course.Level == "" {
		course.Level = "BEGINNER"
	}

	if err := db.Create(&course).Error; err != nil {
		log.Printf("Error creating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created.", course)
}

// UpdateCourse updates a catalog entry (admin only).
func UpdateCourse(c *fiber.Ctx) error {
	courseId, err := c.ParamsInt("id")
	if err != nil || courseId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*coursePayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = false", courseId).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var slugOwner models.Course
	if err := db.Where("slug = ? AND id <> ?", reqData.Slug, courseId).First(&slugOwner).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Slug is already in use!", nil)
	}

	updates := map[string]interface{}{
		"title":           reqData.Title,
		"slug":            reqData.Slug,
		"description":     reqData.Description,
		"category":        reqData.Category,
		"thumbnail":       reqData.Thumbnail,
		"instructor_name": reqData.InstructorName,
		"price":           reqData.Price,
		"discount_price":  reqData.DiscountPrice,
		"duration_hours":  reqData.DurationHours,
		"is_published":    reqData.IsPublished,
	}
	if reqData.Level != "" {
		updates["level"] = reqData.Level
	}

	if err := db.Model(&course).Updates(updates).Error; err != nil {
		log.Printf("Error updating course %d: %v", courseId, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated.", course)
}

// DeleteCourse soft-deletes a course (admin only). Existing enrollments keep
// working; the course just leaves the catalog.
func DeleteCourse(c *fiber.Ctx) error {
	courseId, err := c.ParamsInt("id")
	if err != nil || courseId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = false", courseId).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if err := db.Model(&course).Updates(map[string]interface{}{
		"is_deleted":   true,
		"is_published": false,
	}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted.", nil)
}

// CreateModule adds a module to a course (admin only).
func CreateModule(c *fiber.Ctx) error {
	courseId, err := c.ParamsInt("id")
	if err != nil || courseId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	reqData, ok := c.Locals("validatedModule").(*struct {
		Title     string `json:"title" validate:"required,min=3,max=255"`
		SortOrder int    `json:"sort_order" validate:"omitempty,gte=0"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	if err := db.Where("id = ? AND is_deleted = false", courseId).First(&models.Course{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	module := models.CourseModule{
		CourseID:  uint(courseId),
		Title:     reqData.Title,
		SortOrder: reqData.SortOrder,
	}
	if err := db.Create(&module).Error; err != nil {
		log.Printf("Error creating module: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Module created.", module)
}

// CreateLesson adds a lesson to a module (admin only).
func CreateLesson(c *fiber.Ctx) error {
	moduleId, err := c.ParamsInt("id")
	if err != nil || moduleId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid module id!", nil)
	}

	reqData, ok := c.Locals("validatedLesson").(*struct {
		Title           string `json:"title" validate:"required,min=3,max=255"`
		ContentURL      string `json:"content_url" validate:"omitempty,max=500"`
		DurationMinutes int    `json:"duration_minutes" validate:"omitempty,gte=0"`
		SortOrder       int    `json:"sort_order" validate:"omitempty,gte=0"`
		IsPreview       bool   `json:"is_preview"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var module models.CourseModule
	if err := db.Where("id = ? AND is_deleted = false", moduleId).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	lesson := models.Lesson{
		CourseModuleID:  module.ID,
		CourseID:        module.CourseID,
		Title:           reqData.Title,
		ContentURL:      reqData.ContentURL,
		DurationMinutes: reqData.DurationMinutes,
		SortOrder:       reqData.SortOrder,
		IsPreview:       reqData.IsPreview,
	}
	if err := db.Create(&lesson).Error; err != nil {
		log.Printf("Error creating lesson: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created.", lesson)
}
