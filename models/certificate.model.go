package models

import "gorm.io/gorm"

// Certificate is issued once per user per completed course. The name printed on
// the certificate is locked after issuance so a reissue request cannot change
// it without an admin unlock.
type Certificate struct {
	gorm.Model
	UserID            uint   `json:"user_id" gorm:"not null;uniqueIndex:idx_certificate_user_course,where:is_deleted = false"`
	CourseID          uint   `json:"course_id" gorm:"index;not null;uniqueIndex:idx_certificate_user_course,where:is_deleted = false"`
	CertificateNumber string `json:"certificate_number" gorm:"size:64;uniqueIndex;not null"`
	NameOnCertificate string `json:"name_on_certificate" gorm:"size:255;not null"`
	NameLocked        bool   `json:"name_locked" gorm:"default:true"`
	PrintCount        int    `json:"print_count" gorm:"default:0"`
	IsDeleted         bool   `gorm:"default:false"`
	User              User   `gorm:"foreignKey:UserID" json:"-"`
	Course            Course `gorm:"foreignKey:CourseID" json:"course"`
}
