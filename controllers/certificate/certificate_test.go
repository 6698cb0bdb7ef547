package certificateController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	certificateRoutes "lms/routers/certificateRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCertificateTest(t *testing.T) *fiber.App {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Course{}, &models.Enrollment{},
		&models.Certificate{}, &models.Notification{},
	))
	database.Database = database.DbInstance{Db: db}
	config.AppConfig = &config.Config{JWTKey: "test-secret", SaltRound: 4}

	app := fiber.New()
	certificateRoutes.SetupCertificateRoutes(app)
	return app
}

func createUser(t *testing.T, email, role string) (models.User, string) {
	user := models.User{
		Name: "Priya Sharma", Email: email, Password: "hashed",
		Role: role, IsEmailVerified: true, ReferralCode: email,
	}
	require.NoError(t, database.Database.Db.Create(&user).Error)
	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return user, token
}

func createCourse(t *testing.T, title string) models.Course {
	course := models.Course{
		Title: title, Slug: strings.ToLower(strings.ReplaceAll(title, " ", "-")),
		Price: 100, IsPublished: true,
	}
	require.NoError(t, database.Database.Db.Create(&course).Error)
	return course
}

func enroll(t *testing.T, userID, courseID uint, completed bool) {
	enrollment := models.Enrollment{UserID: userID, CourseID: courseID, IsCompleted: completed}
	require.NoError(t, database.Database.Db.Create(&enrollment).Error)
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

func TestIssueRequiresCompletedCourse(t *testing.T) {
	app := setupCertificateTest(t)
	user, token := createUser(t, "student@example.com", models.RoleStudent)
	course := createCourse(t, "Go Basics")

	// Not enrolled at all
	resp := doRequest(t, app, "POST", fmt.Sprintf("/api/certificates/%d/request", course.ID), token, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// Enrolled but not done
	enroll(t, user.ID, course.ID, false)
	resp = doRequest(t, app, "POST", fmt.Sprintf("/api/certificates/%d/request", course.ID), token, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestIssueOnce(t *testing.T) {
	app := setupCertificateTest(t)
	user, token := createUser(t, "student@example.com", models.RoleStudent)
	course := createCourse(t, "Go Basics")
	enroll(t, user.ID, course.ID, true)

	resp := doRequest(t, app, "POST", fmt.Sprintf("/api/certificates/%d/request", course.ID), token, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	data := decodeBody(t, resp)["data"].(map[string]interface{})
	number := data["certificate_number"].(string)
	assert.True(t, strings.HasPrefix(number, "LMS-"))
	assert.Equal(t, "Priya Sharma", data["name_on_certificate"])
	assert.Equal(t, true, data["name_locked"])

	// Second call hands the same certificate back
	resp = doRequest(t, app, "POST", fmt.Sprintf("/api/certificates/%d/request", course.ID), token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	again := decodeBody(t, resp)["data"].(map[string]interface{})
	assert.Equal(t, number, again["certificate_number"])

	var count int64
	database.Database.Db.Model(&models.Certificate{}).
		Where("user_id = ? AND course_id = ?", user.ID, course.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestIssueWithCustomName(t *testing.T) {
	app := setupCertificateTest(t)
	user, token := createUser(t, "student@example.com", models.RoleStudent)
	course := createCourse(t, "Go Basics")
	enroll(t, user.ID, course.ID, true)

	resp := doRequest(t, app, "POST",
		fmt.Sprintf("/api/certificates/%d/request?name_on_certificate=P.Sharma", course.ID), token, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	data := decodeBody(t, resp)["data"].(map[string]interface{})
	assert.Equal(t, "P.Sharma", data["name_on_certificate"])
}

func TestRenameLockedCertificateRejected(t *testing.T) {
	app := setupCertificateTest(t)
	user, token := createUser(t, "student@example.com", models.RoleStudent)
	course := createCourse(t, "Go Basics")
	enroll(t, user.ID, course.ID, true)

	doRequest(t, app, "POST", fmt.Sprintf("/api/certificates/%d/request", course.ID), token, nil)
	var certificate models.Certificate
	require.NoError(t, database.Database.Db.Where("user_id = ?", user.ID).First(&certificate).Error)

	resp := doRequest(t, app, "PATCH",
		fmt.Sprintf("/api/certificates/%d/name", certificate.ID), token,
		fiber.Map{"name_on_certificate": "Someone Else"})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestUnlockRenameRelocks(t *testing.T) {
	app := setupCertificateTest(t)
	user, token := createUser(t, "student@example.com", models.RoleStudent)
	_, adminToken := createUser(t, "admin@example.com", models.RoleAdmin)
	course := createCourse(t, "Go Basics")
	enroll(t, user.ID, course.ID, true)

	doRequest(t, app, "POST", fmt.Sprintf("/api/certificates/%d/request", course.ID), token, nil)
	var certificate models.Certificate
	require.NoError(t, database.Database.Db.Where("user_id = ?", user.ID).First(&certificate).Error)

	resp := doRequest(t, app, "PATCH",
		fmt.Sprintf("/api/admin/certificates/%d/unlock", certificate.ID), adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, "PATCH",
		fmt.Sprintf("/api/certificates/%d/name", certificate.ID), token,
		fiber.Map{"name_on_certificate": "Priya S. Sharma"})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var reloaded models.Certificate
	require.NoError(t, database.Database.Db.First(&reloaded, certificate.ID).Error)
	assert.Equal(t, "Priya S. Sharma", reloaded.NameOnCertificate)
	assert.True(t, reloaded.NameLocked)
}

func TestPrintBumpsCounter(t *testing.T) {
	app := setupCertificateTest(t)
	user, token := createUser(t, "student@example.com", models.RoleStudent)
	course := createCourse(t, "Go Basics")
	enroll(t, user.ID, course.ID, true)

	doRequest(t, app, "POST", fmt.Sprintf("/api/certificates/%d/request", course.ID), token, nil)
	var certificate models.Certificate
	require.NoError(t, database.Database.Db.Where("user_id = ?", user.ID).First(&certificate).Error)

	for i := 0; i < 2; i++ {
		resp := doRequest(t, app, "GET",
			fmt.Sprintf("/api/certificates/%d/print", certificate.ID), token, nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	var reloaded models.Certificate
	require.NoError(t, database.Database.Db.First(&reloaded, certificate.ID).Error)
	assert.Equal(t, 2, reloaded.PrintCount)
}

func TestPublicVerify(t *testing.T) {
	app := setupCertificateTest(t)
	user, token := createUser(t, "student@example.com", models.RoleStudent)
	course := createCourse(t, "Go Basics")
	enroll(t, user.ID, course.ID, true)

	doRequest(t, app, "POST", fmt.Sprintf("/api/certificates/%d/request", course.ID), token, nil)
	var certificate models.Certificate
	require.NoError(t, database.Database.Db.Where("user_id = ?", user.ID).First(&certificate).Error)

	// No token: the endpoint is public
	resp := doRequest(t, app, "GET", "/api/public/certificates/verify/"+certificate.CertificateNumber, "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := decodeBody(t, resp)["data"].(map[string]interface{})
	assert.Equal(t, certificate.CertificateNumber, data["certificate_number"])
	assert.Equal(t, "Go Basics", data["course_title"])
	assert.NotContains(t, data, "email")

	resp = doRequest(t, app, "GET", "/api/public/certificates/verify/LMS-00000000-00000000-20200101", "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDuplicateCertificateBlockedByIndex(t *testing.T) {
	app := setupCertificateTest(t)
	user, token := createUser(t, "student@example.com", models.RoleStudent)
	course := createCourse(t, "Go Basics")
	enroll(t, user.ID, course.ID, true)

	resp := doRequest(t, app, "POST", fmt.Sprintf("/api/certificates/%d/request", course.ID), token, nil)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// A second row slipping past the handler check still hits the index
	err := database.Database.Db.Create(&models.Certificate{
		UserID: user.ID, CourseID: course.ID,
		CertificateNumber: "LMS-DUPE", NameOnCertificate: user.Name,
	}).Error
	assert.Error(t, err)
}
