package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleStudent = "STUDENT"
	RoleAdmin   = "ADMIN"
)

type User struct {
	gorm.Model
	ProfileImage        string     `gorm:"default:''"`
	Name                string     `gorm:"default:''"`
	Email               string     `gorm:"unique;not null"`
	Mobile              string     `gorm:"default:''"`
	Role                string     `gorm:"default:'STUDENT'"` // STUDENT, ADMIN
	Password            string     `gorm:"not null"`
	IsEmailVerified     bool       `gorm:"default:false"`
	WalletBalance       float64    `gorm:"default:0"` // withdrawable referral earnings
	TotalEarnings       float64    `gorm:"default:0"` // lifetime referral earnings
	ReferralCode        string     `gorm:"size:12;uniqueIndex"`
	ReferredBy          uint       `gorm:"default:0;index"` // referrer user id, 0 when organic
	LastLogin           time.Time  `gorm:"default:NULL"`
	FailedLoginAttempts int        `gorm:"default:0"`
	LastFailedLogin     *time.Time `json:"last_failed_login"`
	IsBanned            bool       `gorm:"default:false"`
	IsDeleted           bool       `gorm:"default:false"`
}
