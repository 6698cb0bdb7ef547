package utils

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"log"

	"lms/config"

	"github.com/go-resty/resty/v2"
)

const (
	payuLiveURL = "https://secure.payu.in/_payment"
	payuTestURL = "https://test.payu.in/_payment"

	payuVerifyLiveURL = "https://info.payu.in/merchant/postservice.php?form=2"
	payuVerifyTestURL = "https://test.payu.in/merchant/postservice.php?form=2"
)

// PaymentRequest is the browser-side payload for a PayU checkout redirect.
type PaymentRequest struct {
	GatewayURL  string `json:"gateway_url"`
	MerchantKey string `json:"merchant_key"`
	TxnID       string `json:"txn_id"`
	Amount      string `json:"amount"`
	ProductInfo string `json:"product_info"`
	FirstName   string `json:"first_name"`
	Email       string `json:"email"`
	SuccessURL  string `json:"success_url"`
	FailureURL  string `json:"failure_url"`
	Hash        string `json:"hash"`
}

// PayuRequestHash computes the sha512 checkout hash:
// key|txnid|amount|productinfo|firstname|email|||||||||||salt
func PayuRequestHash(txnID, amount, productInfo, firstName, email string) string {
	raw := fmt.Sprintf("%s|%s|%s|%s|%s|%s|||||||||||%s",
		config.AppConfig.PayuMerchantKey, txnID, amount, productInfo, firstName, email,
		config.AppConfig.PayuSalt,
	)
	sum := sha512.Sum512([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// PayuResponseHash computes the reverse hash used to validate gateway callbacks:
// salt|status|||||||||||email|firstname|productinfo|amount|txnid|key
func PayuResponseHash(status, txnID, amount, productInfo, firstName, email string) string {
	raw := fmt.Sprintf("%s|%s|||||||||||%s|%s|%s|%s|%s|%s",
		config.AppConfig.PayuSalt, status, email, firstName, productInfo, amount, txnID,
		config.AppConfig.PayuMerchantKey,
	)
	sum := sha512.Sum512([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// BuildPaymentRequest assembles everything the frontend needs to post the user
// to PayU's hosted checkout page.
func BuildPaymentRequest(txnID, productInfo, firstName, email string, amount float64) PaymentRequest {
	gatewayURL := payuLiveURL
	if config.AppConfig.PayuTestEnv {
		gatewayURL = payuTestURL
	}
	amountStr := fmt.Sprintf("%.2f", amount)

	return PaymentRequest{
		GatewayURL:  gatewayURL,
		MerchantKey: config.AppConfig.PayuMerchantKey,
		TxnID:       txnID,
		Amount:      amountStr,
		ProductInfo: productInfo,
		FirstName:   firstName,
		Email:       email,
		SuccessURL:  config.AppConfig.FrontendURL + "/payment/success",
		FailureURL:  config.AppConfig.FrontendURL + "/payment/failure",
		Hash:        PayuRequestHash(txnID, amountStr, productInfo, firstName, email),
	}
}

// VerifyPayment asks PayU's verification API for the authoritative status of a
// transaction. Returns the raw response body and the parsed status string.
func VerifyPayment(txnID string) (string, []byte, error) {
	verifyURL := payuVerifyLiveURL
	if config.AppConfig.PayuTestEnv {
		verifyURL = payuVerifyTestURL
	}

	client := resty.New()
	resp, err := client.R().
		SetFormData(map[string]string{
			"key":     config.AppConfig.PayuMerchantKey,
			"command": "verify_payment",
			"var1":    txnID,
			"hash":    verifyCommandHash(txnID),
		}).
		Post(verifyURL)
	if err != nil {
		log.Printf("Payment verification request failed for %s: %v", txnID, err)
		return "", nil, err
	}
	if resp.StatusCode() != 200 {
		log.Printf("Payment verification failed for %s: %s", txnID, resp.String())
		return "", resp.Body(), fmt.Errorf("gateway responded %d", resp.StatusCode())
	}

	var verifyResp struct {
		Status             int `json:"status"`
		TransactionDetails map[string]struct {
			Status string `json:"status"`
		} `json:"transaction_details"`
	}
	if err := client.JSONUnmarshal(resp.Body(), &verifyResp); err != nil {
		return "", resp.Body(), fmt.Errorf("invalid verification response: %v", err)
	}

	detail, ok := verifyResp.TransactionDetails[txnID]
	if !ok {
		return "", resp.Body(), fmt.Errorf("transaction %s not found at gateway", txnID)
	}
	return detail.Status, resp.Body(), nil
}

// verifyCommandHash is the hash for the verify_payment API command:
// key|command|var1|salt
func verifyCommandHash(txnID string) string {
	raw := fmt.Sprintf("%s|verify_payment|%s|%s",
		config.AppConfig.PayuMerchantKey, txnID, config.AppConfig.PayuSalt)
	sum := sha512.Sum512([]byte(raw))
	return hex.EncodeToString(sum[:])
}
