package models

import (
	"time"

	"gorm.io/gorm"
)

type Enrollment struct {
	gorm.Model
	UserID      uint       `json:"user_id" gorm:"index;not null"`
	CourseID    uint       `json:"course_id" gorm:"index;not null"`
	OrderID     uint       `json:"order_id" gorm:"default:0"` // 0 for admin-granted enrollments
	IsCompleted bool       `json:"is_completed" gorm:"default:false"`
	CompletedAt *time.Time `json:"completed_at"`
	IsDeleted   bool       `gorm:"default:false"`
	User        User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Course      Course     `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"course"`
}

// LessonProgress tracks how far a user has watched a lesson. A lesson counts
// as completed once the watched percentage crosses the completion threshold.
type LessonProgress struct {
	gorm.Model
	UserID         uint       `json:"user_id" gorm:"index;not null"`
	CourseID       uint       `json:"course_id" gorm:"index;not null"`
	LessonID       uint       `json:"lesson_id" gorm:"index;not null"`
	WatchedPercent float64    `json:"watched_percent" gorm:"default:0"`
	IsCompleted    bool       `json:"is_completed" gorm:"default:false"`
	CompletedAt    *time.Time `json:"completed_at"`
	IsDeleted      bool       `gorm:"default:false"`
	Lesson         Lesson     `gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE" json:"-"`
}

// LessonCompletionThreshold is the watched percentage at which a lesson is marked complete.
const LessonCompletionThreshold = 80.0
