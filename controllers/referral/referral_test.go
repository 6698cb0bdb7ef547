package referralController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	referralRoutes "lms/routers/referralRoutes"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupReferralTest(t *testing.T) *fiber.App {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.ReferralEarning{}, &models.WithdrawalRequest{}, &models.Notification{},
	))
	database.Database = database.DbInstance{Db: db}
	config.AppConfig = &config.Config{
		JWTKey:             "test-secret",
		SaltRound:          4,
		FrontendURL:        "http://localhost:3001",
		CommissionRate:     0.20,
		MaturationDays:     30,
		MinWithdrawalLimit: 10,
	}

	app := fiber.New()
	referralRoutes.SetupReferralRoutes(app)
	return app
}

func createUser(t *testing.T, email, role string, balance float64) (models.User, string) {
	user := models.User{
		Name: "Test User", Email: email, Password: "hashed",
		Role: role, IsEmailVerified: true, ReferralCode: email,
		WalletBalance: balance,
	}
	require.NoError(t, database.Database.Db.Create(&user).Error)
	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return user, token
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

func walletBalance(t *testing.T, userID uint) float64 {
	var user models.User
	require.NoError(t, database.Database.Db.First(&user, userID).Error)
	return user.WalletBalance
}

func TestWithdrawalBelowMinimumRejected(t *testing.T) {
	app := setupReferralTest(t)
	user, token := createUser(t, "earner@example.com", models.RoleStudent, 100)

	resp := doRequest(t, app, "POST", "/api/referrals/withdraw", token, fiber.Map{
		"amount":         5,
		"payment_detail": "UPI handle: earner@bank",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, 100.0, walletBalance(t, user.ID))
}

func TestWithdrawalExceedingBalanceRejected(t *testing.T) {
	app := setupReferralTest(t)
	user, token := createUser(t, "earner@example.com", models.RoleStudent, 40)

	resp := doRequest(t, app, "POST", "/api/referrals/withdraw", token, fiber.Map{
		"amount":         50,
		"payment_detail": "UPI handle: earner@bank",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, 40.0, walletBalance(t, user.ID))
}

func TestWithdrawalEscrowsFullBalance(t *testing.T) {
	app := setupReferralTest(t)
	user, token := createUser(t, "earner@example.com", models.RoleStudent, 50)

	// Withdrawing the whole wallet is allowed
	resp := doRequest(t, app, "POST", "/api/referrals/withdraw", token, fiber.Map{
		"amount":         50,
		"payment_detail": "UPI handle: earner@bank",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, 0.0, walletBalance(t, user.ID))

	// The escrowed amount cannot be requested twice
	resp = doRequest(t, app, "POST", "/api/referrals/withdraw", token, fiber.Map{
		"amount":         50,
		"payment_detail": "UPI handle: earner@bank",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRejectionRefundsWallet(t *testing.T) {
	app := setupReferralTest(t)
	user, token := createUser(t, "earner@example.com", models.RoleStudent, 30)
	_, adminToken := createUser(t, "admin@example.com", models.RoleAdmin, 0)

	resp := doRequest(t, app, "POST", "/api/referrals/withdraw", token, fiber.Map{
		"amount":         30,
		"payment_detail": "UPI handle: earner@bank",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.Equal(t, 0.0, walletBalance(t, user.ID))

	var request models.WithdrawalRequest
	require.NoError(t, database.Database.Db.Where("user_id = ?", user.ID).First(&request).Error)

	resp = doRequest(t, app, "PUT", fmt.Sprintf("/api/admin/withdrawals/%d", request.ID), adminToken,
		fiber.Map{"status": "REJECTED", "admin_note": "Payment detail did not match."})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 30.0, walletBalance(t, user.ID))

	var reloaded models.WithdrawalRequest
	require.NoError(t, database.Database.Db.First(&reloaded, request.ID).Error)
	assert.Equal(t, models.WithdrawalStatusRejected, reloaded.Status)
	assert.NotNil(t, reloaded.ProcessedAt)
}

func TestApprovalDoesNotRefund(t *testing.T) {
	app := setupReferralTest(t)
	user, token := createUser(t, "earner@example.com", models.RoleStudent, 30)
	admin, adminToken := createUser(t, "admin@example.com", models.RoleAdmin, 0)

	resp := doRequest(t, app, "POST", "/api/referrals/withdraw", token, fiber.Map{
		"amount":         30,
		"payment_detail": "UPI handle: earner@bank",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var request models.WithdrawalRequest
	require.NoError(t, database.Database.Db.Where("user_id = ?", user.ID).First(&request).Error)

	resp = doRequest(t, app, "PUT", fmt.Sprintf("/api/admin/withdrawals/%d", request.ID), adminToken,
		fiber.Map{"status": "APPROVED"})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 0.0, walletBalance(t, user.ID))

	var reloaded models.WithdrawalRequest
	require.NoError(t, database.Database.Db.First(&reloaded, request.ID).Error)
	assert.Equal(t, models.WithdrawalStatusApproved, reloaded.Status)
	assert.Equal(t, admin.ID, reloaded.ProcessedBy)
}

func TestResolvedRequestIsFinal(t *testing.T) {
	app := setupReferralTest(t)
	user, token := createUser(t, "earner@example.com", models.RoleStudent, 30)
	_, adminToken := createUser(t, "admin@example.com", models.RoleAdmin, 0)

	doRequest(t, app, "POST", "/api/referrals/withdraw", token, fiber.Map{
		"amount":         30,
		"payment_detail": "UPI handle: earner@bank",
	})
	var request models.WithdrawalRequest
	require.NoError(t, database.Database.Db.Where("user_id = ?", user.ID).First(&request).Error)

	resp := doRequest(t, app, "PUT", fmt.Sprintf("/api/admin/withdrawals/%d", request.ID), adminToken,
		fiber.Map{"status": "REJECTED"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Flipping the decision afterwards is rejected and the wallet stays put
	resp = doRequest(t, app, "PUT", fmt.Sprintf("/api/admin/withdrawals/%d", request.ID), adminToken,
		fiber.Map{"status": "APPROVED"})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, 30.0, walletBalance(t, user.ID))
}

func TestReferralStats(t *testing.T) {
	app := setupReferralTest(t)
	user, token := createUser(t, "earner@example.com", models.RoleStudent, 12.5)

	// Two referred signups, one pending commission
	referred := models.User{
		Name: "Referred", Email: "ref1@example.com", Password: "hashed",
		ReferralCode: "ref1@example.com", ReferredBy: user.ID,
	}
	require.NoError(t, database.Database.Db.Create(&referred).Error)

	resp := doRequest(t, app, "GET", "/api/referrals/stats", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "earner@example.com", data["referral_code"])
	assert.Equal(t, 1.0, data["referred_count"])
	assert.Equal(t, 12.5, data["wallet_balance"])
	assert.Equal(t, 0.20, data["commission_rate"])
}

func TestWalletDebitStopsAtZero(t *testing.T) {
	setupReferralTest(t)
	user, _ := createUser(t, "earner@example.com", models.RoleStudent, 50)
	db := database.Database.Db

	// Two debits racing over the same balance: only one may land
	debited, err := utils.DebitWallet(db, user.ID, 50)
	require.NoError(t, err)
	assert.True(t, debited)

	debited, err = utils.DebitWallet(db, user.ID, 50)
	require.NoError(t, err)
	assert.False(t, debited)

	assert.Equal(t, 0.0, walletBalance(t, user.ID))
}

func TestWithdrawalResolvesExactlyOnce(t *testing.T) {
	setupReferralTest(t)
	user, _ := createUser(t, "earner@example.com", models.RoleStudent, 0)
	admin, _ := createUser(t, "admin@example.com", models.RoleAdmin, 0)
	db := database.Database.Db

	request := models.WithdrawalRequest{
		UserID: user.ID, Amount: 25,
		Status: models.WithdrawalStatusPending, PaymentDetail: "UPI handle: earner@bank",
	}
	require.NoError(t, db.Create(&request).Error)

	resolved, err := utils.ResolveWithdrawal(db, request.ID, models.WithdrawalStatusRejected, "duplicate", admin.ID, time.Now())
	require.NoError(t, err)
	assert.True(t, resolved)

	// A second resolver loses and must leave the wallet alone
	resolved, err = utils.ResolveWithdrawal(db, request.ID, models.WithdrawalStatusApproved, "", admin.ID, time.Now())
	require.NoError(t, err)
	assert.False(t, resolved)

	var reloaded models.WithdrawalRequest
	require.NoError(t, db.First(&reloaded, request.ID).Error)
	assert.Equal(t, models.WithdrawalStatusRejected, reloaded.Status)
}
