package cartController

import (
	"log"

	"lms/database"
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

type itemPayload = struct {
	CourseID uint `json:"course_id" validate:"required,gt=0"`
}

// GetCart returns the user's cart items with the server-computed total. Totals
// come from the prices snapshotted at add time, never from the client.
func GetCart(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var items []models.CartItem
	if err := database.Database.Db.
		Where("user_id = ? AND is_deleted = false", userId).
		Preload("Course").
		Order("created_at desc").
		Find(&items).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch cart!", nil)
	}

	var total float64
	for _, item := range items {
		total += item.Price
	}

	response := map[string]interface{}{
		"items": items,
		"count": len(items),
		"total": total,
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Cart.", response)
}

// AddToCart puts a course in the cart, snapshotting its effective price.
func AddToCart(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedItem").(*itemPayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_published = true AND is_deleted = false",
		reqData.CourseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Already enrolled means nothing to buy
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = false",
		userId, course.ID).First(&models.Enrollment{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You are already enrolled in this course!", nil)
	}

	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = false",
		userId, course.ID).First(&models.CartItem{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course is already in your cart!", nil)
	}

	item := models.CartItem{
		UserID:   userId,
		CourseID: course.ID,
		Price:    course.EffectivePrice(),
	}
	if err := db.Create(&item).Error; err != nil {
		log.Printf("Error adding course %d to cart for user %d: %v", course.ID, userId, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add to cart!", nil)
	}
	item.Course = course

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Added to cart.", item)
}

// RemoveFromCart drops one item from the cart.
func RemoveFromCart(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	itemId, err := c.ParamsInt("itemId")
	if err != nil || itemId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid item id!", nil)
	}

	db := database.Database.Db

	var item models.CartItem
	if err := db.Where("id = ? AND user_id = ? AND is_deleted = false",
		itemId, userId).First(&item).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Cart item not found!", nil)
	}

	if err := db.Model(&item).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to remove from cart!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Removed from cart.", nil)
}

// GetWishlist returns the user's wishlist.
func GetWishlist(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var items []models.WishlistItem
	if err := database.Database.Db.
		Where("user_id = ? AND is_deleted = false", userId).
		Preload("Course").
		Order("created_at desc").
		Find(&items).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch wishlist!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Wishlist.", items)
}

// AddToWishlist saves a course for later.
func AddToWishlist(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedItem").(*itemPayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_published = true AND is_deleted = false",
		reqData.CourseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = false",
		userId, course.ID).First(&models.WishlistItem{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course is already in your wishlist!", nil)
	}

	item := models.WishlistItem{
		UserID:   userId,
		CourseID: course.ID,
	}
	if err := db.Create(&item).Error; err != nil {
		log.Printf("Error adding course %d to wishlist for user %d: %v", course.ID, userId, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add to wishlist!", nil)
	}
	item.Course = course

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Added to wishlist.", item)
}

// RemoveFromWishlist drops one item from the wishlist.
func RemoveFromWishlist(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	itemId, err := c.ParamsInt("itemId")
	if err != nil || itemId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid item id!", nil)
	}

	db := database.Database.Db

	var item models.WishlistItem
	if err := db.Where("id = ? AND user_id = ? AND is_deleted = false",
		itemId, userId).First(&item).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Wishlist item not found!", nil)
	}

	if err := db.Model(&item).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to remove from wishlist!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Removed from wishlist.", nil)
}

// AddWishlistItemToCart puts a wishlisted course in the cart. The wishlist
// entry stays; removing it is always an explicit separate action. The price
// snapshot is taken now, not at wishlist time.
func AddWishlistItemToCart(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	itemId, err := c.ParamsInt("itemId")
	if err != nil || itemId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid item id!", nil)
	}

	db := database.Database.Db

	var wish models.WishlistItem
	if err := db.Where("id = ? AND user_id = ? AND is_deleted = false",
		itemId, userId).First(&wish).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Wishlist item not found!", nil)
	}
	courseId := int(wish.CourseID)

	var course models.Course
	if err := db.Where("id = ? AND is_published = true AND is_deleted = false",
		courseId).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = false",
		userId, courseId).First(&models.Enrollment{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You are already enrolled in this course!", nil)
	}

	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = false",
		userId, courseId).First(&models.CartItem{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course is already in your cart!", nil)
	}

	item := models.CartItem{
		UserID:   userId,
		CourseID: course.ID,
		Price:    course.EffectivePrice(),
	}
	if err := db.Create(&item).Error; err != nil {
		log.Printf("Error adding wishlist item %d to cart for user %d: %v", wish.ID, userId, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add to cart!", nil)
	}
	item.Course = course

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Added to cart.", item)
}
