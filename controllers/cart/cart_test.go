package cartController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	cartRoutes "lms/routers/cartRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCartTest(t *testing.T) *fiber.App {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Course{}, &models.CartItem{},
		&models.WishlistItem{}, &models.Enrollment{},
	))
	database.Database = database.DbInstance{Db: db}
	config.AppConfig = &config.Config{JWTKey: "test-secret", SaltRound: 4}

	app := fiber.New()
	cartRoutes.SetupCartRoutes(app)
	return app
}

func createUser(t *testing.T, email string) (models.User, string) {
	user := models.User{Name: "Test User", Email: email, Password: "hashed", IsEmailVerified: true, ReferralCode: email}
	require.NoError(t, database.Database.Db.Create(&user).Error)
	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return user, token
}

func createCourse(t *testing.T, title string, price float64, discount *float64) models.Course {
	course := models.Course{Title: title, Slug: title, Price: price, DiscountPrice: discount, IsPublished: true}
	require.NoError(t, database.Database.Db.Create(&course).Error)
	return course
}

func doRequest(t *testing.T, app *fiber.App, method, url, token string, body interface{}) *http.Response {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestAddToCartSnapshotsPrice(t *testing.T) {
	app := setupCartTest(t)
	_, token := createUser(t, "buyer@example.com")
	discount := 75.0
	course := createCourse(t, "go-basics", 100, &discount)

	resp := doRequest(t, app, "POST", "/api/cart/", token, fiber.Map{"course_id": course.ID})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// Catalog price changes do not move the cart
	newDiscount := 50.0
	require.NoError(t, database.Database.Db.Model(&course).Update("discount_price", newDiscount).Error)

	resp = doRequest(t, app, "GET", "/api/cart/", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, 75.0, data["total"])
	assert.Equal(t, 1.0, data["count"])
}

func TestAddToCartDuplicateRejected(t *testing.T) {
	app := setupCartTest(t)
	_, token := createUser(t, "buyer@example.com")
	course := createCourse(t, "go-basics", 100, nil)

	resp := doRequest(t, app, "POST", "/api/cart/", token, fiber.Map{"course_id": course.ID})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doRequest(t, app, "POST", "/api/cart/", token, fiber.Map{"course_id": course.ID})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestAddToCartRejectedWhenEnrolled(t *testing.T) {
	app := setupCartTest(t)
	user, token := createUser(t, "buyer@example.com")
	course := createCourse(t, "go-basics", 100, nil)
	require.NoError(t, database.Database.Db.Create(&models.Enrollment{
		UserID: user.ID, CourseID: course.ID,
	}).Error)

	resp := doRequest(t, app, "POST", "/api/cart/", token, fiber.Map{"course_id": course.ID})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestCartTotalAndRemove(t *testing.T) {
	app := setupCartTest(t)
	_, token := createUser(t, "buyer@example.com")
	first := createCourse(t, "go-basics", 100, nil)
	second := createCourse(t, "go-advanced", 150, nil)

	doRequest(t, app, "POST", "/api/cart/", token, fiber.Map{"course_id": first.ID})
	doRequest(t, app, "POST", "/api/cart/", token, fiber.Map{"course_id": second.ID})

	resp := doRequest(t, app, "GET", "/api/cart/", token, nil)
	data := decodeBody(t, resp)["data"].(map[string]interface{})
	assert.Equal(t, 250.0, data["total"])

	var item models.CartItem
	require.NoError(t, database.Database.Db.Where("course_id = ?", first.ID).First(&item).Error)
	resp = doRequest(t, app, "DELETE", fmt.Sprintf("/api/cart/%d", item.ID), token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, "GET", "/api/cart/", token, nil)
	data = decodeBody(t, resp)["data"].(map[string]interface{})
	assert.Equal(t, 150.0, data["total"])
	assert.Equal(t, 1.0, data["count"])
}

func TestRemoveMissingCartItem(t *testing.T) {
	app := setupCartTest(t)
	_, token := createUser(t, "buyer@example.com")

	resp := doRequest(t, app, "DELETE", "/api/cart/999", token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestWishlistAddToCartKeepsWishlistEntry(t *testing.T) {
	app := setupCartTest(t)
	_, token := createUser(t, "buyer@example.com")
	course := createCourse(t, "go-basics", 100, nil)

	resp := doRequest(t, app, "POST", "/api/wishlist/", token, fiber.Map{"course_id": course.ID})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var wish models.WishlistItem
	require.NoError(t, database.Database.Db.Where("course_id = ?", course.ID).First(&wish).Error)
	resp = doRequest(t, app, "POST", fmt.Sprintf("/api/wishlist/%d/add-to-cart", wish.ID), token, nil)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// The course lands in the cart and the wishlist entry survives
	resp = doRequest(t, app, "GET", "/api/cart/", token, nil)
	data := decodeBody(t, resp)["data"].(map[string]interface{})
	assert.Equal(t, 1.0, data["count"])

	resp = doRequest(t, app, "GET", "/api/wishlist/", token, nil)
	body := decodeBody(t, resp)
	assert.Len(t, body["data"], 1)

	// Removing it afterwards is the explicit separate action
	resp = doRequest(t, app, "DELETE", fmt.Sprintf("/api/wishlist/%d", wish.ID), token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestCartRequiresAuth(t *testing.T) {
	app := setupCartTest(t)

	resp := doRequest(t, app, "GET", "/api/cart/", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAddToWishlistDuplicateRejected(t *testing.T) {
	app := setupCartTest(t)
	_, token := createUser(t, "buyer@example.com")
	course := createCourse(t, "go-basics", 100, nil)

	resp := doRequest(t, app, "POST", "/api/wishlist/", token, fiber.Map{"course_id": course.ID})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doRequest(t, app, "POST", "/api/wishlist/", token, fiber.Map{"course_id": course.ID})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var count int64
	database.Database.Db.Model(&models.WishlistItem{}).
		Where("course_id = ? AND is_deleted = false", course.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCartDuplicateBlockedByIndex(t *testing.T) {
	app := setupCartTest(t)
	user, token := createUser(t, "buyer@example.com")
	course := createCourse(t, "go-basics", 100, nil)

	resp := doRequest(t, app, "POST", "/api/cart/", token, fiber.Map{"course_id": course.ID})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// A second row slipping past the handler check still hits the index
	err := database.Database.Db.Create(&models.CartItem{
		UserID: user.ID, CourseID: course.ID, Price: 100,
	}).Error
	assert.Error(t, err)

	// Removal frees the slot for a re-add
	var item models.CartItem
	require.NoError(t, database.Database.Db.
		Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&item).Error)
	resp = doRequest(t, app, "DELETE", fmt.Sprintf("/api/cart/%d", item.ID), token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, "POST", "/api/cart/", token, fiber.Map{"course_id": course.ID})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}
