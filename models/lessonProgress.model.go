package models

import "time"

// LessonProgress is a per-lesson completion marker. One row per (user, lesson).
type LessonProgress struct {
	ID          uint       `json:"id" gorm:"primarykey"`
	UserID      uint       `json:"userId" gorm:"not null;uniqueIndex:idx_lesson_progress_user_lesson"`
	LessonID    uint       `json:"lessonId" gorm:"not null;uniqueIndex:idx_lesson_progress_user_lesson;index"`
	Completed   bool       `json:"completed" gorm:"default:false"`
	CompletedAt *time.Time `json:"completedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (LessonProgress) TableName() string {
	return "lesson_progress"
}
