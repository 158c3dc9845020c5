package learning

import (
	"elearn/models"
	"math"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// CalculateProgress returns round(100*completed/total), 0 when the course has
// no lessons. The result is always within [0, 100].
func CalculateProgress(total, completed int64) int {
	if total <= 0 || completed <= 0 {
		return 0
	}
	if completed > total {
		completed = total
	}
	return clampPercent(int(math.Round(100 * float64(completed) / float64(total))))
}

// ComputeCourseProgress counts the course's live lessons and the user's
// completed ones and derives the percentage.
func ComputeCourseProgress(db *gorm.DB, userID, courseID uint) (int, error) {
	var total int64
	if err := db.Model(&models.Lesson{}).Where("course_id = ?", courseID).Count(&total).Error; err != nil {
		return 0, errors.Wrap(err, "count lessons")
	}
	if total == 0 {
		return 0, nil
	}

	var completed int64
	err := db.Model(&models.LessonProgress{}).
		Joins("JOIN lessons ON lessons.id = lesson_progress.lesson_id").
		Where("lesson_progress.user_id = ? AND lesson_progress.completed = ? AND lessons.course_id = ? AND lessons.deleted_at IS NULL",
			userID, true, courseID).
		Count(&completed).Error
	if err != nil {
		return 0, errors.Wrap(err, "count completed lessons")
	}
	return CalculateProgress(total, completed), nil
}

func clampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
