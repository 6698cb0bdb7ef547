package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTicketStatusTransitions(t *testing.T) {
	tests := []struct {
		name string
		from TicketStatus
		to   TicketStatus
		want bool
	}{
		{"open to in-progress", TicketStatusOpen, TicketStatusInProgress, true},
		{"open to closed", TicketStatusOpen, TicketStatusClosed, true},
		{"in-progress to closed", TicketStatusInProgress, TicketStatusClosed, true},
		{"closed reopens to open", TicketStatusClosed, TicketStatusOpen, true},
		{"in-progress back to open", TicketStatusInProgress, TicketStatusOpen, false},
		{"closed to in-progress", TicketStatusClosed, TicketStatusInProgress, false},
		{"open to open", TicketStatusOpen, TicketStatusOpen, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}

func TestTicketStatusAcceptsReplies(t *testing.T) {
	assert.True(t, TicketStatusOpen.AcceptsReplies())
	assert.True(t, TicketStatusInProgress.AcceptsReplies())
	assert.False(t, TicketStatusClosed.AcceptsReplies())
}

func TestWithdrawalStatusTransitions(t *testing.T) {
	tests := []struct {
		name string
		from WithdrawalStatus
		to   WithdrawalStatus
		want bool
	}{
		{"pending to approved", WithdrawalStatusPending, WithdrawalStatusApproved, true},
		{"pending to rejected", WithdrawalStatusPending, WithdrawalStatusRejected, true},
		{"approved is terminal", WithdrawalStatusApproved, WithdrawalStatusRejected, false},
		{"rejected is terminal", WithdrawalStatusRejected, WithdrawalStatusApproved, false},
		{"approved back to pending", WithdrawalStatusApproved, WithdrawalStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}

func TestCourseEffectivePrice(t *testing.T) {
	discount := 49.0
	withDiscount := Course{Price: 99, DiscountPrice: &discount}
	assert.Equal(t, 49.0, withDiscount.EffectivePrice())

	noDiscount := Course{Price: 99}
	assert.Equal(t, 99.0, noDiscount.EffectivePrice())
}

func TestCouponDiscountOn(t *testing.T) {
	percent := Coupon{Type: CouponTypePercent, Value: 10}
	assert.Equal(t, 20.0, percent.DiscountOn(200))

	flat := Coupon{Type: CouponTypeFlat, Value: 50}
	assert.Equal(t, 50.0, flat.DiscountOn(200))

	// A flat discount never exceeds the subtotal
	bigFlat := Coupon{Type: CouponTypeFlat, Value: 500}
	assert.Equal(t, 200.0, bigFlat.DiscountOn(200))
}
