package models

import "gorm.io/gorm"

type Course struct {
	gorm.Model
	Title          string   `json:"title" gorm:"not null"`
	Slug           string   `json:"slug" gorm:"size:255;uniqueIndex"`
	Description    string   `json:"description" gorm:"type:text"`
	Category       string   `json:"category" gorm:"size:100;index"`
	Level          string   `json:"level" gorm:"size:50;default:'BEGINNER'"` // BEGINNER, INTERMEDIATE, ADVANCED
	Thumbnail      string   `json:"thumbnail" gorm:"default:''"`
	InstructorName string   `json:"instructor_name" gorm:"size:255"`
	Price          float64  `json:"price" gorm:"not null"`
	DiscountPrice  *float64 `json:"discount_price"` // nil means no discount
	DurationHours  float64  `json:"duration_hours" gorm:"default:0"`
	IsPublished    bool     `json:"is_published" gorm:"default:false"`
	IsDeleted      bool     `gorm:"default:false"`
}

// EffectivePrice returns the discount price when one is set, otherwise the list price.
func (c *Course) EffectivePrice() float64 {
	if c.DiscountPrice != nil {
		return *c.DiscountPrice
	}
	return c.Price
}

type CourseModule struct {
	gorm.Model
	CourseID  uint   `json:"course_id" gorm:"index;not null"`
	Title     string `json:"title" gorm:"not null"`
	SortOrder int    `json:"sort_order" gorm:"default:0"`
	IsDeleted bool   `gorm:"default:false"`
	Course    Course `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
}

type Lesson struct {
	gorm.Model
	CourseModuleID  uint         `json:"course_module_id" gorm:"index;not null"`
	CourseID        uint         `json:"course_id" gorm:"index;not null"`
	Title           string       `json:"title" gorm:"not null"`
	ContentURL      string       `json:"content_url" gorm:"default:''"`
	DurationMinutes int          `json:"duration_minutes" gorm:"default:0"`
	SortOrder       int          `json:"sort_order" gorm:"default:0"`
	IsPreview       bool         `json:"is_preview" gorm:"default:false"` // viewable without enrollment
	IsDeleted       bool         `gorm:"default:false"`
	CourseModule    CourseModule `gorm:"foreignKey:CourseModuleID;constraint:OnDelete:CASCADE" json:"-"`
}

type Review struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"not null;index"`
	CourseID  uint   `json:"course_id" gorm:"not null;index"`
	Rating    int    `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"` // 1–5 rating
	Comment   string `json:"comment" gorm:"type:text;default:''"`
	IsDeleted bool   `gorm:"default:false"`
	User      User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user"`
	Course    Course `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
}
