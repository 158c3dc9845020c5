package models

import "gorm.io/gorm"

// Course represents a catalog entry
type Course struct {
	gorm.Model
	Title          string   `json:"title" gorm:"not null"`
	Description    string   `json:"description"`
	InstructorName string   `json:"instructorName"`
	ThumbnailURL   string   `json:"thumbnailUrl"`
	Price          float64  `json:"price" gorm:"default:0"`
	IsFree         bool     `json:"isFree" gorm:"default:false"`
	HasCertificate bool     `json:"hasCertificate" gorm:"default:false"`
	IsPublished    bool     `json:"isPublished" gorm:"default:false"`
	Topics         []Topic  `json:"topics,omitempty" gorm:"foreignKey:CourseID"`
	Lessons        []Lesson `json:"lessons,omitempty" gorm:"foreignKey:CourseID"`
}

// RequiresPayment reports whether enrolling goes through the payment gateway.
func (c *Course) RequiresPayment() bool {
	return !c.IsFree && c.Price > 0
}

// Topic groups lessons within a course
type Topic struct {
	gorm.Model
	CourseID   uint   `json:"courseId" gorm:"index;not null"`
	Title      string `json:"title"`
	OrderIndex int    `json:"orderIndex" gorm:"default:0"`
}
