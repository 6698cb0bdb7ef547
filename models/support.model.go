package models

import "gorm.io/gorm"

// TicketStatus defines the lifecycle state of a support ticket
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "OPEN"
	TicketStatusInProgress TicketStatus = "IN-PROGRESS"
	TicketStatusClosed     TicketStatus = "CLOSED"
)

// ticketTransitions lists the allowed status moves. Reopening a closed ticket
// goes back to OPEN; every other move off CLOSED is rejected.
var ticketTransitions = map[TicketStatus][]TicketStatus{
	TicketStatusOpen:       {TicketStatusInProgress, TicketStatusClosed},
	TicketStatusInProgress: {TicketStatusClosed},
	TicketStatusClosed:     {TicketStatusOpen},
}

// CanTransition reports whether a ticket may move from its current status to next.
func (s TicketStatus) CanTransition(next TicketStatus) bool {
	for _, allowed := range ticketTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// AcceptsReplies reports whether new messages may be appended in this status.
func (s TicketStatus) AcceptsReplies() bool {
	return s != TicketStatusClosed
}

type SupportTicket struct {
	gorm.Model
	UserID      uint         `json:"user_id" gorm:"index;not null"`
	Subject     string       `json:"subject" gorm:"not null"`
	Description string       `json:"description" gorm:"type:text"`
	Status      TicketStatus `json:"status" gorm:"type:varchar(20);default:'OPEN'"`
	Priority    string       `json:"priority" gorm:"size:20;default:'MEDIUM'"` // LOW, MEDIUM, HIGH
	Category    string       `json:"category" gorm:"size:50;default:'GENERAL'"`
	IsDeleted   bool         `json:"is_deleted" gorm:"default:false"`
	User        User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TicketMessage is an append-only reply on a ticket.
type TicketMessage struct {
	gorm.Model
	TicketID    uint   `json:"ticket_id" gorm:"index;not null"`
	SenderID    uint   `json:"sender_id" gorm:"not null"`
	IsFromAdmin bool   `json:"is_from_admin" gorm:"default:false"`
	Message     string `json:"message" gorm:"type:text;not null"`
	IsDeleted   bool   `gorm:"default:false"`
}
