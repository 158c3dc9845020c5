package models

import "gorm.io/gorm"

const (
	ContentVideo = "video"
	ContentPDF   = "pdf"
	ContentPPTX  = "pptx"
	ContentDOCX  = "docx"
)

// Lesson is an ordered content unit of a course. The number of live lessons
// in a course is the denominator of course progress.
type Lesson struct {
	gorm.Model
	CourseID    uint   `json:"courseId" gorm:"index;not null"`
	TopicID     *uint  `json:"topicId" gorm:"index"`
	Title       string `json:"title"`
	OrderIndex  int    `json:"orderIndex" gorm:"default:0"`
	ContentType string `json:"contentType" gorm:"default:'video'"`
	ContentURL  string `json:"contentUrl,omitempty"`
	Duration    int    `json:"duration" gorm:"default:0"` // minutes
}

func ValidContentType(t string) bool {
	switch t {
	case ContentVideo, ContentPDF, ContentPPTX, ContentDOCX:
		return true
	}
	return false
}
