package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateOTP generates a 6-digit OTP
func GenerateOTP() string {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	otp := ""
	for i := 0; i < 6; i++ {
		otp += fmt.Sprintf("%d", rng.Intn(10))
	}
	return otp
}

// GenerateReferralCode builds a short uppercase referral code from the user's
// name plus a random suffix, e.g. JOHN7F3A.
func GenerateReferralCode(name string) string {
	prefix := ""
	for _, r := range strings.ToUpper(name) {
		if r >= 'A' && r <= 'Z' {
			prefix += string(r)
		}
		if len(prefix) == 4 {
			break
		}
	}
	if prefix == "" {
		prefix = "USER"
	}
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:4]
	return prefix + suffix
}

// GenerateTxnID creates a unique gateway transaction reference for an order.
func GenerateTxnID() string {
	return "TXN" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:20]
}

// GenerateCertificateNumber builds the public certificate number:
// LMS-<COURSE8>-<USER8>-<YYYYMMDD>, where the middle parts are zero-padded ids.
func GenerateCertificateNumber(courseID, userID uint, issuedAt time.Time) string {
	return fmt.Sprintf("LMS-%08d-%08d-%s", courseID, userID, issuedAt.Format("20060102"))
}
