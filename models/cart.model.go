package models

import "gorm.io/gorm"

// CartItem stores one course in a user's cart. The price is captured at the
// moment the item is added so a later catalog change never moves a cart total
// without the user re-adding the item.
type CartItem struct {
	gorm.Model
	UserID    uint    `json:"user_id" gorm:"not null;uniqueIndex:idx_cart_user_course,where:is_deleted = false"`
	CourseID  uint    `json:"course_id" gorm:"index;not null;uniqueIndex:idx_cart_user_course,where:is_deleted = false"`
	Price     float64 `json:"price" gorm:"not null"` // effective price at add time
	IsDeleted bool    `gorm:"default:false"`
	User      User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Course    Course  `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"course"`
}

type WishlistItem struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"not null;uniqueIndex:idx_wishlist_user_course,where:is_deleted = false"`
	CourseID  uint   `json:"course_id" gorm:"index;not null;uniqueIndex:idx_wishlist_user_course,where:is_deleted = false"`
	IsDeleted bool   `gorm:"default:false"`
	User      User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Course    Course `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"course"`
}
