package courseController

import (
	"log"
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ListCourses returns the published catalog with filtering, search and sorting.
func ListCourses(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedList").(*struct {
		Page     int    `query:"page" validate:"omitempty,gte=1"`
		Limit    int    `query:"limit" validate:"omitempty,gte=1,max=100"`
		Category string `query:"category" validate:"omitempty,max=100"`
		Level    string `query:"level" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED"`
		Search   string `query:"search" validate:"omitempty,max=255"`
		Sort     string `query:"sort" validate:"omitempty,oneof=newest price_low price_high title"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	query := db.Model(&models.Course{}).Where("is_published = true AND is_deleted = false")

	if reqData.Category != "" {
		query = query.Where("category = ?", reqData.Category)
	}
	if reqData.Level != "" {
		query = query.Where("level = ?", reqData.Level)
	}
	if reqData.Search != "" {
		pattern := "%" + reqData.Search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}

	switch reqData.Sort {
	case "price_low":
		query = query.Order("COALESCE(discount_price, price) asc")
	case "price_high":
		query = query.Order("COALESCE(discount_price, price) desc")
	case "title":
		query = query.Order("title asc")
	default:
		query = query.Order("created_at desc")
	}

	var total int64
	query.Count(&total)

	offset := (reqData.Page - 1) * reqData.Limit
	var courses []models.Course
	if err := query.Offset(offset).Limit(reqData.Limit).Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	response := map[string]interface{}{
		"courses": courses,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  reqData.Page,
			"limit": reqData.Limit,
		},
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course list.", response)
}

// CourseDetail returns one course with its modules, lessons and review summary.
func CourseDetail(c *fiber.Ctx) error {
	courseId, err := c.ParamsInt("id")
	if err != nil || courseId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_published = true AND is_deleted = false", courseId).
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var modules []models.CourseModule
	db.Where("course_id = ? AND is_deleted = false", courseId).
		Order("sort_order asc").Find(&modules)

	var lessons []models.Lesson
	db.Where("course_id = ? AND is_deleted = false", courseId).
		Order("sort_order asc").Find(&lessons)

	type moduleView struct {
		models.CourseModule
		Lessons []models.Lesson `json:"lessons"`
	}
	moduleViews := make([]moduleView, 0, len(modules))
	for _, m := range modules {
		mv := moduleView{CourseModule: m}
		for _, l := range lessons {
			if l.CourseModuleID == m.ID {
				mv.Lessons = append(mv.Lessons, l)
			}
		}
		moduleViews = append(moduleViews, mv)
	}

	var ratingAvg float64
	var ratingCount int64
	db.Model(&models.Review{}).Where("course_id = ? AND is_deleted = false", courseId).Count(&ratingCount)
	if ratingCount > 0 {
		db.Model(&models.Review{}).Where("course_id = ? AND is_deleted = false", courseId).
			Select("AVG(rating)").Scan(&ratingAvg)
	}

	response := map[string]interface{}{
		"course":          course,
		"effective_price": course.EffectivePrice(),
		"modules":         moduleViews,
		"rating": map[string]interface{}{
			"average": ratingAvg,
			"count":   ratingCount,
		},
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course detail.", response)
}

// ListCategories returns the distinct categories of published courses.
func ListCategories(c *fiber.Ctx) error {
	var categories []string
	if err := database.Database.Db.Model(&models.Course{}).
		Where("is_published = true AND is_deleted = false").
		Distinct().
		Order("category asc").
		Pluck("category", &categories).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch categories!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category list.", categories)
}

// EnrolledCourses lists the user's enrollments with per-course progress.
func EnrolledCourses(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var enrollments []models.Enrollment
	if err := db.Where("user_id = ? AND is_deleted = false", userId).
		Preload("Course").
		Order("created_at desc").
		Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	type enrollmentView struct {
		models.Enrollment
		TotalLessons     int64   `json:"total_lessons"`
		CompletedLessons int64   `json:"completed_lessons"`
		ProgressPercent  float64 `json:"progress_percent"`
	}

	views := make([]enrollmentView, 0, len(enrollments))
	for _, e := range enrollments {
		var totalLessons, completedLessons int64
		db.Model(&models.Lesson{}).
			Where("course_id = ? AND is_deleted = false", e.CourseID).Count(&totalLessons)
		db.Model(&models.LessonProgress{}).
			Where("user_id = ? AND course_id = ? AND is_completed = true AND is_deleted = false",
				userId, e.CourseID).Count(&completedLessons)

		v := enrollmentView{Enrollment: e, TotalLessons: totalLessons, CompletedLessons: completedLessons}
		if totalLessons > 0 {
			v.ProgressPercent = float64(completedLessons) / float64(totalLessons) * 100
		}
		views = append(views, v)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled courses.", views)
}

// UpdateLessonProgress records watch progress, completes the lesson past the
// threshold and completes the enrollment once every lesson is done.
func UpdateLessonProgress(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lessonId, err := c.ParamsInt("id")
	if err != nil || lessonId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lesson id!", nil)
	}

	reqData, ok := c.Locals("validatedProgress").(*struct {
		WatchedPercent float64 `json:"watched_percent" validate:"omitempty,gte=0,max=100"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var lesson models.Lesson
	if err := db.Where("id = ? AND is_deleted = false", lessonId).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	var enrollment models.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = false",
		userId, lesson.CourseID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
	}

	var progress models.LessonProgress
	err = db.Where("user_id = ? AND lesson_id = ? AND is_deleted = false", userId, lessonId).
		First(&progress).Error
	if err == gorm.ErrRecordNotFound {
		progress = models.LessonProgress{
			UserID:   userId,
			CourseID: lesson.CourseID,
			LessonID: lesson.ID,
		}
	} else if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	// Progress never moves backwards
	if reqData.WatchedPercent > progress.WatchedPercent {
		progress.WatchedPercent = reqData.WatchedPercent
	}
	if !progress.IsCompleted && progress.WatchedPercent >= models.LessonCompletionThreshold {
		progress.IsCompleted = true
		now := time.Now()
		progress.CompletedAt = &now
	}

	if err := db.Save(&progress).Error; err != nil {
		log.Printf("Error saving lesson progress for user %d lesson %d: %v", userId, lessonId, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save progress!", nil)
	}

	// Complete the enrollment once every lesson in the course is done
	if progress.IsCompleted && !enrollment.IsCompleted {
		var totalLessons, completedLessons int64
		db.Model(&models.Lesson{}).
			Where("course_id = ? AND is_deleted = false", lesson.CourseID).Count(&totalLessons)
		db.Model(&models.LessonProgress{}).
			Where("user_id = ? AND course_id = ? AND is_completed = true AND is_deleted = false",
				userId, lesson.CourseID).Count(&completedLessons)

		if totalLessons > 0 && completedLessons >= totalLessons {
			now := time.Now()
			db.Model(&enrollment).Updates(map[string]interface{}{
				"is_completed": true,
				"completed_at": now,
			})
			enrollment.IsCompleted = true
		}
	}

	response := map[string]interface{}{
		"progress":         progress,
		"course_completed": enrollment.IsCompleted,
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated.", response)
}

// CreateReview lets an enrolled user rate a course, one review per user.
func CreateReview(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseId, err := c.ParamsInt("id")
	if err != nil || courseId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	reqData, ok := c.Locals("validatedReview").(*struct {
		Rating  int    `json:"rating" validate:"required,gte=1,max=5"`
		Comment string `json:"comment" validate:"omitempty,max=2000"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = false",
		userId, courseId).First(&models.Enrollment{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
	}

	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = false",
		userId, courseId).First(&models.Review{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You have already reviewed this course!", nil)
	}

	review := models.Review{
		UserID:   userId,
		CourseID: uint(courseId),
		Rating:   reqData.Rating,
		Comment:  reqData.Comment,
	}
	if err := db.Create(&review).Error; err != nil {
		log.Printf("Error creating review: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create review!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Review created.", review)
}

// ListReviews returns the reviews of a course, newest first.
func ListReviews(c *fiber.Ctx) error {
	courseId, err := c.ParamsInt("id")
	if err != nil || courseId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	var reviews []models.Review
	if err := database.Database.Db.
		Where("course_id = ? AND is_deleted = false", courseId).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "profile_image")
		}).
		Order("created_at desc").
		Find(&reviews).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch reviews!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Review list.", reviews)
}
