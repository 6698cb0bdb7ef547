package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OrderStatus defines the status of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusFailed    OrderStatus = "FAILED"
)

type Order struct {
	gorm.Model
	UserID   uint        `json:"user_id" gorm:"index;not null"`
	TxnID    string      `json:"txn_id" gorm:"size:64;uniqueIndex;not null"` // gateway transaction reference
	Subtotal float64     `json:"subtotal" gorm:"not null"`
	Discount float64     `json:"discount" gorm:"default:0"` // coupon discount applied
	Total    float64     `json:"total" gorm:"not null"`
	Status   OrderStatus `json:"status" gorm:"type:varchar(20);default:'PENDING'"`
	CouponID uint        `json:"coupon_id" gorm:"default:0"`

	// Payment gateway details
	PaymentGateway     string         `json:"payment_gateway" gorm:"type:varchar(50);default:'payu'"`
	PaymentID          string         `json:"payment_id" gorm:"type:varchar(100);index"`
	PaymentMethod      string         `json:"payment_method" gorm:"type:varchar(50)"`
	PaymentResponseRaw datatypes.JSON `json:"payment_response_raw"`
	PaidAt             *time.Time     `json:"paid_at"`

	IsDeleted bool        `gorm:"default:false"`
	User      User        `gorm:"foreignKey:UserID" json:"-"`
	Items     []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}

// OrderItem snapshots a purchased course and the price it was sold at.
type OrderItem struct {
	gorm.Model
	OrderID   uint    `json:"order_id" gorm:"index;not null"`
	CourseID  uint    `json:"course_id" gorm:"index;not null"`
	Title     string  `json:"title" gorm:"size:255"` // course title at purchase time
	Price     float64 `json:"price" gorm:"not null"`
	IsDeleted bool    `gorm:"default:false"`
	Course    Course  `gorm:"foreignKey:CourseID" json:"-"`
}

// CouponType defines how a coupon discounts the cart total
type CouponType string

const (
	CouponTypePercent CouponType = "PERCENT"
	CouponTypeFlat    CouponType = "FLAT"
)

type Coupon struct {
	gorm.Model
	Code      string     `json:"code" gorm:"size:32;uniqueIndex;not null"`
	Type      CouponType `json:"type" gorm:"type:varchar(20);default:'PERCENT'"`
	Value     float64    `json:"value" gorm:"not null"` // percent (0-100) or flat amount
	MinAmount float64    `json:"min_amount" gorm:"default:0"`
	MaxUses   int        `json:"max_uses" gorm:"default:0"` // 0 means unlimited
	UsedCount int        `json:"used_count" gorm:"default:0"`
	ExpiresAt *time.Time `json:"expires_at"`
	IsActive  bool       `json:"is_active" gorm:"default:true"`
	IsDeleted bool       `gorm:"default:false"`
}

// DiscountOn computes the discount this coupon grants for the given subtotal.
func (cp *Coupon) DiscountOn(subtotal float64) float64 {
	var discount float64
	if cp.Type == CouponTypePercent {
		discount = subtotal * cp.Value / 100
	} else {
		discount = cp.Value
	}
	if discount > subtotal {
		discount = subtotal
	}
	return discount
}

// CouponUse records one redemption, one per user per coupon.
type CouponUse struct {
	gorm.Model
	CouponID  uint `json:"coupon_id" gorm:"index;not null"`
	UserID    uint `json:"user_id" gorm:"index;not null"`
	OrderID   uint `json:"order_id" gorm:"index;not null"`
	IsDeleted bool `gorm:"default:false"`
}
