package utils

import (
	"time"

	"lms/models"

	"gorm.io/gorm"
)

// DebitWallet takes amount out of the user's wallet only if the balance still
// covers it. The balance check rides in the UPDATE itself, so two requests
// racing over the same wallet cannot both win; the loser sees false.
func DebitWallet(tx *gorm.DB, userID uint, amount float64) (bool, error) {
	result := tx.Model(&models.User{}).
		Where("id = ? AND wallet_balance >= ?", userID, amount).
		Update("wallet_balance", gorm.Expr("wallet_balance - ?", amount))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ResolveWithdrawal moves a withdrawal request out of PENDING. The status
// condition rides in the UPDATE, so a request can only be resolved once; a
// second resolver sees false and must not touch the wallet.
func ResolveWithdrawal(tx *gorm.DB, requestID uint, next models.WithdrawalStatus, adminNote string, adminID uint, at time.Time) (bool, error) {
	result := tx.Model(&models.WithdrawalRequest{}).
		Where("id = ? AND status = ?", requestID, models.WithdrawalStatusPending).
		Updates(map[string]interface{}{
			"status":       next,
			"admin_note":   adminNote,
			"processed_by": adminID,
			"processed_at": at,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
