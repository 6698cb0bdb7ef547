package utils

import (
	"log"
	"time"

	"lms/database"
	"lms/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// InitializeCommissionScheduler starts the daily job that matures referral
// commissions whose holding window has passed.
func InitializeCommissionScheduler() {
	log.Println("[COMMISSION-SCHEDULER] Initializing commission scheduler...")

	c := cron.New()

	// Run daily at 1 AM
	c.AddFunc("0 1 * * *", func() {
		log.Println("[COMMISSION-SCHEDULER] Running daily commission maturation...")
		MatureCommissions()
	})

	c.Start()
	log.Println("[COMMISSION-SCHEDULER] Commission scheduler started - runs daily at 1 AM")
}

// MatureCommissions flips every due PENDING earning to AVAILABLE and credits
// the amount to the referrer's wallet. Each earning is settled in its own
// transaction so one failure never blocks the rest.
func MatureCommissions() {
	db := database.Database.Db
	now := time.Now()

	var due []models.ReferralEarning
	if err := db.
		Where("status = ? AND matures_at <= ? AND is_deleted = false", models.EarningStatusPending, now).
		Find(&due).Error; err != nil {
		log.Printf("[COMMISSION-SCHEDULER] Error fetching due commissions: %v", err)
		return
	}

	log.Printf("[COMMISSION-SCHEDULER] Found %d commissions to mature", len(due))

	for _, earning := range due {
		tx := db.Begin()

		if err := tx.Model(&models.ReferralEarning{}).
			Where("id = ? AND status = ?", earning.ID, models.EarningStatusPending).
			Update("status", models.EarningStatusAvailable).Error; err != nil {
			tx.Rollback()
			log.Printf("[COMMISSION-SCHEDULER] Error maturing commission %d: %v", earning.ID, err)
			continue
		}

		if err := tx.Model(&models.User{}).
			Where("id = ?", earning.UserID).
			Update("wallet_balance", gorm.Expr("wallet_balance + ?", earning.Amount)).Error; err != nil {
			tx.Rollback()
			log.Printf("[COMMISSION-SCHEDULER] Error crediting wallet for user %d: %v", earning.UserID, err)
			continue
		}

		if err := tx.Commit().Error; err != nil {
			log.Printf("[COMMISSION-SCHEDULER] Commit failed for commission %d: %v", earning.ID, err)
			continue
		}

		log.Printf("[COMMISSION-SCHEDULER] Matured commission %d (%.2f) for user %d",
			earning.ID, earning.Amount, earning.UserID)
	}
}
