package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Notification types
const (
	NotificationTypeOrder       = "ORDER"
	NotificationTypeReferral    = "REFERRAL"
	NotificationTypeWithdrawal  = "WITHDRAWAL"
	NotificationTypeSupport     = "SUPPORT"
	NotificationTypeCertificate = "CERTIFICATE"
	NotificationTypeSystem      = "SYSTEM"
)

type Notification struct {
	gorm.Model
	UserID    uint           `json:"user_id" gorm:"index;not null"`
	Type      string         `json:"type" gorm:"size:30;default:'SYSTEM'"`
	Title     string         `json:"title" gorm:"size:255;not null"`
	Message   string         `json:"message" gorm:"type:text"`
	Data      datatypes.JSON `json:"data"` // type-specific payload (order id, ticket id, ...)
	IsRead    bool           `json:"is_read" gorm:"default:false;index"`
	IsDeleted bool           `gorm:"default:false"`
}
