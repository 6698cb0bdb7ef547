package models

import (
	"time"

	"gorm.io/gorm"
)

// WithdrawalStatus defines the status of a withdrawal request
type WithdrawalStatus string

const (
	WithdrawalStatusPending  WithdrawalStatus = "PENDING"
	WithdrawalStatusApproved WithdrawalStatus = "APPROVED"
	WithdrawalStatusRejected WithdrawalStatus = "REJECTED"
)

// withdrawalTransitions lists the allowed status moves. APPROVED and REJECTED
// are terminal.
var withdrawalTransitions = map[WithdrawalStatus][]WithdrawalStatus{
	WithdrawalStatusPending: {WithdrawalStatusApproved, WithdrawalStatusRejected},
}

// CanTransition reports whether a request may move from its current status to next.
func (s WithdrawalStatus) CanTransition(next WithdrawalStatus) bool {
	for _, allowed := range withdrawalTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// WithdrawalRequest holds a payout request. The amount is deducted from the
// user's wallet when the request is created; a rejection refunds it.
type WithdrawalRequest struct {
	gorm.Model
	UserID        uint             `json:"user_id" gorm:"index;not null"`
	Amount        float64          `json:"amount" gorm:"not null"`
	Status        WithdrawalStatus `json:"status" gorm:"type:varchar(20);default:'PENDING'"`
	PaymentMethod string           `json:"payment_method" gorm:"size:50;default:'BANK'"`
	PaymentDetail string           `json:"payment_detail" gorm:"type:text"` // account / UPI handle as given by the user
	AdminNote     string           `json:"admin_note" gorm:"type:text"`
	ProcessedBy   uint             `json:"processed_by" gorm:"default:0"`
	ProcessedAt   *time.Time       `json:"processed_at"`
	IsDeleted     bool             `gorm:"default:false"`
	User          User             `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
