package utils

import (
	"testing"
	"time"

	"lms/config"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOTP(t *testing.T) {
	otp := GenerateOTP()
	assert.Len(t, otp, 6)
	for _, r := range otp {
		assert.True(t, r >= '0' && r <= '9')
	}
}

func TestGenerateReferralCode(t *testing.T) {
	code := GenerateReferralCode("John Doe")
	assert.Len(t, code, 8)
	assert.Equal(t, "JOHN", code[:4])

	// Codes for the same name still differ
	other := GenerateReferralCode("John Doe")
	assert.NotEqual(t, code, other)

	// Names without letters fall back to a generic prefix
	fallback := GenerateReferralCode("123")
	assert.Equal(t, "USER", fallback[:4])
}

func TestGenerateCertificateNumber(t *testing.T) {
	issuedAt := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	number := GenerateCertificateNumber(42, 7, issuedAt)
	assert.Equal(t, "LMS-00000042-00000007-20260315", number)

	// Same inputs always produce the same number
	assert.Equal(t, number, GenerateCertificateNumber(42, 7, issuedAt))
}

func TestGenerateTxnID(t *testing.T) {
	txn := GenerateTxnID()
	assert.Len(t, txn, 23)
	assert.Equal(t, "TXN", txn[:3])
	assert.NotEqual(t, txn, GenerateTxnID())
}

func TestPayuRequestHash(t *testing.T) {
	config.AppConfig = &config.Config{
		PayuMerchantKey: "testkey",
		PayuSalt:        "testsalt",
	}

	hash := PayuRequestHash("TXN123", "100.00", "2 course(s)", "John", "john@example.com")
	assert.Len(t, hash, 128) // sha512 hex

	// Deterministic for identical inputs
	assert.Equal(t, hash, PayuRequestHash("TXN123", "100.00", "2 course(s)", "John", "john@example.com"))

	// Any field change moves the hash
	assert.NotEqual(t, hash, PayuRequestHash("TXN124", "100.00", "2 course(s)", "John", "john@example.com"))
	assert.NotEqual(t, hash, PayuRequestHash("TXN123", "100.01", "2 course(s)", "John", "john@example.com"))
}

func TestBuildPaymentRequest(t *testing.T) {
	config.AppConfig = &config.Config{
		PayuMerchantKey: "testkey",
		PayuSalt:        "testsalt",
		PayuTestEnv:     true,
		FrontendURL:     "http://localhost:3001",
	}

	req := BuildPaymentRequest("TXN123", "1 course(s)", "John", "john@example.com", 49.5)
	assert.Equal(t, "https://test.payu.in/_payment", req.GatewayURL)
	assert.Equal(t, "49.50", req.Amount)
	assert.Equal(t, "http://localhost:3001/payment/success", req.SuccessURL)
	assert.Equal(t, PayuRequestHash("TXN123", "49.50", "1 course(s)", "John", "john@example.com"), req.Hash)

	config.AppConfig.PayuTestEnv = false
	live := BuildPaymentRequest("TXN123", "1 course(s)", "John", "john@example.com", 49.5)
	assert.Equal(t, "https://secure.payu.in/_payment", live.GatewayURL)
}
