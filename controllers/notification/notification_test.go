package notificationController_test

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
	notificationRoutes "lms/routers/notificationRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupNotificationTest(t *testing.T) *fiber.App {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Notification{}))
	database.Database = database.DbInstance{Db: db}
	config.AppConfig = &config.Config{JWTKey: "test-secret", SaltRound: 4}

	app := fiber.New()
	notificationRoutes.SetupNotificationRoutes(app)
	return app
}

func createUser(t *testing.T, email, role string) (models.User, string) {
	user := models.User{
		Name: "Test User", Email: email, Password: "hashed",
		Role: role, IsEmailVerified: true, ReferralCode: email,
	}
	require.NoError(t, database.Database.Db.Create(&user).Error)
	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return user, token
}

func createNotification(t *testing.T, userID uint, read bool) models.Notification {
	notification := models.Notification{
		UserID:  userID,
		Type:    models.NotificationTypeSystem,
		Title:   "Hello",
		Message: "Something happened.",
		IsRead:  read,
	}
	require.NoError(t, database.Database.Db.Create(&notification).Error)
	return notification
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

func TestListReportsUnreadCount(t *testing.T) {
	app := setupNotificationTest(t)
	user, token := createUser(t, "reader@example.com", models.RoleStudent)
	createNotification(t, user.ID, false)
	createNotification(t, user.ID, false)
	createNotification(t, user.ID, true)

	resp := doRequest(t, app, "GET", "/api/notifications/", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := decodeBody(t, resp)["data"].(map[string]interface{})
	assert.Equal(t, 2.0, data["unread_count"])
	assert.Len(t, data["notifications"], 3)
}

func TestMarkReadIsOneWayAndIdempotent(t *testing.T) {
	app := setupNotificationTest(t)
	user, token := createUser(t, "reader@example.com", models.RoleStudent)
	notification := createNotification(t, user.ID, false)

	url := fmt.Sprintf("/api/notifications/%d/read", notification.ID)
	resp := doRequest(t, app, "POST", url, token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// A second call succeeds and leaves the flag set
	resp = doRequest(t, app, "POST", url, token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var reloaded models.Notification
	require.NoError(t, database.Database.Db.First(&reloaded, notification.ID).Error)
	assert.True(t, reloaded.IsRead)
}

func TestMarkReadScopedToOwner(t *testing.T) {
	app := setupNotificationTest(t)
	user, _ := createUser(t, "owner@example.com", models.RoleStudent)
	_, strangerToken := createUser(t, "stranger@example.com", models.RoleStudent)
	notification := createNotification(t, user.ID, false)

	resp := doRequest(t, app, "POST",
		fmt.Sprintf("/api/notifications/%d/read", notification.ID), strangerToken, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestMarkAllRead(t *testing.T) {
	app := setupNotificationTest(t)
	user, token := createUser(t, "reader@example.com", models.RoleStudent)
	createNotification(t, user.ID, false)
	createNotification(t, user.ID, false)
	createNotification(t, user.ID, true)

	resp := doRequest(t, app, "POST", "/api/notifications/read-all", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := decodeBody(t, resp)["data"].(map[string]interface{})
	assert.Equal(t, 2.0, data["marked_read"])

	var unread int64
	database.Database.Db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = false", user.ID).Count(&unread)
	assert.Equal(t, int64(0), unread)
}

func TestDeleteHidesNotification(t *testing.T) {
	app := setupNotificationTest(t)
	user, token := createUser(t, "reader@example.com", models.RoleStudent)
	notification := createNotification(t, user.ID, false)

	resp := doRequest(t, app, "DELETE",
		fmt.Sprintf("/api/notifications/%d", notification.ID), token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, "GET", "/api/notifications/", token, nil)
	data := decodeBody(t, resp)["data"].(map[string]interface{})
	assert.Len(t, data["notifications"], 0)
}

func TestBroadcastReachesActiveUsers(t *testing.T) {
	app := setupNotificationTest(t)
	_, adminToken := createUser(t, "admin@example.com", models.RoleAdmin)
	active, _ := createUser(t, "active@example.com", models.RoleStudent)
	banned, _ := createUser(t, "banned@example.com", models.RoleStudent)
	require.NoError(t, database.Database.Db.Model(&banned).Update("is_banned", true).Error)

	resp := doRequest(t, app, "POST", "/api/admin/notifications/broadcast", adminToken,
		fiber.Map{"title": "Maintenance", "message": "The platform will be down Sunday night."})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// Admin and active student get it, the banned user does not
	data := decodeBody(t, resp)["data"].(map[string]interface{})
	assert.Equal(t, 2.0, data["recipients"])

	var count int64
	database.Database.Db.Model(&models.Notification{}).
		Where("user_id = ?", active.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	database.Database.Db.Model(&models.Notification{}).
		Where("user_id = ?", banned.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestBroadcastRequiresAdmin(t *testing.T) {
	app := setupNotificationTest(t)
	_, token := createUser(t, "student@example.com", models.RoleStudent)

	resp := doRequest(t, app, "POST", "/api/admin/notifications/broadcast", token,
		fiber.Map{"title": "Update", "message": "Not allowed."})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
