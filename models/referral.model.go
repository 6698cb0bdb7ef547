package models

import (
	"time"

	"gorm.io/gorm"
)

// EarningStatus defines whether a referral commission is still in its holding
// window or already withdrawable.
type EarningStatus string

const (
	EarningStatusPending   EarningStatus = "PENDING"
	EarningStatusAvailable EarningStatus = "AVAILABLE"
)

// ReferralEarning is a commission credited to a referrer when a referred user
// buys a course. It starts PENDING and matures to AVAILABLE after the holding
// window, at which point the amount lands in the referrer's wallet.
type ReferralEarning struct {
	gorm.Model
	UserID       uint          `json:"user_id" gorm:"index;not null"` // referrer
	ReferredID   uint          `json:"referred_id" gorm:"index;not null"`
	OrderID      uint          `json:"order_id" gorm:"index;not null"`
	OrderItemID  uint          `json:"order_item_id" gorm:"not null"`
	CourseTitle  string        `json:"course_title" gorm:"size:255"`
	Amount       float64       `json:"amount" gorm:"not null"`
	Status       EarningStatus `json:"status" gorm:"type:varchar(20);default:'PENDING'"`
	MaturesAt    time.Time     `json:"matures_at" gorm:"not null;index"`
	IsDeleted    bool          `gorm:"default:false"`
	User         User          `gorm:"foreignKey:UserID" json:"-"`
	ReferredUser User          `gorm:"foreignKey:ReferredID" json:"referred_user,omitempty"`
}
