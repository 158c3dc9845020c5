package models

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment links a user to a course and carries aggregate progress.
// At most one row exists per (user, course).
type Enrollment struct {
	gorm.Model
	UserID            uint       `json:"userId" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	CourseID          uint       `json:"courseId" gorm:"not null;uniqueIndex:idx_enrollment_user_course;index"`
	Progress          int        `json:"progress" gorm:"default:0"` // 0-100
	CompletedAt       *time.Time `json:"completedAt"`
	CertificateIssued bool       `json:"certificateIssued" gorm:"default:false"`
	Course            *Course    `json:"course,omitempty" gorm:"foreignKey:CourseID"`
}
