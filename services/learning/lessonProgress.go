package learning

import (
	"elearn/models"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MarkComplete records that userID completed lessonID. Repeat calls converge
// on the same single row with completed=true; completedAt is refreshed.
func MarkComplete(db *gorm.DB, userID, lessonID uint) (*models.LessonProgress, error) {
	now := time.Now().UTC()
	row := models.LessonProgress{
		UserID:      userID,
		LessonID:    lessonID,
		Completed:   true,
		CompletedAt: &now,
	}

	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"completed":    true,
			"completed_at": now,
			"updated_at":   now,
		}),
	}).Create(&row).Error
	if err != nil {
		return nil, errors.Wrapf(err, "mark lesson %d complete for user %d", lessonID, userID)
	}

	var stored models.LessonProgress
	if err := db.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&stored).Error; err != nil {
		return nil, errors.Wrap(err, "reload lesson progress")
	}
	return &stored, nil
}

// GetProgress returns the user's progress rows for lessons of courseID.
func GetProgress(db *gorm.DB, userID, courseID uint) ([]models.LessonProgress, error) {
	rows := []models.LessonProgress{}
	err := db.Model(&models.LessonProgress{}).
		Joins("JOIN lessons ON lessons.id = lesson_progress.lesson_id").
		Where("lesson_progress.user_id = ? AND lessons.course_id = ? AND lessons.deleted_at IS NULL", userID, courseID).
		Order("lessons.order_index asc").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "get lesson progress")
	}
	return rows, nil
}
