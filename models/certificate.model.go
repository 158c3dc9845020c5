package models

import "time"

// Certificate is immutable once issued.
type Certificate struct {
	ID                uint      `json:"id" gorm:"primarykey"`
	UserID            uint      `json:"userId" gorm:"not null;uniqueIndex:idx_certificate_user_course"`
	CourseID          uint      `json:"courseId" gorm:"not null;uniqueIndex:idx_certificate_user_course"`
	CertificateNumber string    `json:"certificateNumber" gorm:"not null;uniqueIndex"`
	IssuedAt          time.Time `json:"issuedAt"`
	CreatedAt         time.Time `json:"createdAt"`
	Course            *Course   `json:"course,omitempty" gorm:"foreignKey:CourseID"`
}
