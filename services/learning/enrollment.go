package learning

import (
	"elearn/models"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Enroll creates the enrollment for (userID, courseID). The storage unique
// index on the pair turns a concurrent double-submit into ErrAlreadyEnrolled.
func Enroll(db *gorm.DB, userID, courseID uint) (*models.Enrollment, error) {
	enrollment := models.Enrollment{
		UserID:   userID,
		CourseID: courseID,
		Progress: 0,
	}
	if err := db.Create(&enrollment).Error; err != nil {
		if IsDuplicate(err) {
			return nil, ErrAlreadyEnrolled
		}
		return nil, errors.Wrapf(err, "create enrollment user=%d course=%d", userID, courseID)
	}
	return &enrollment, nil
}

func GetEnrollment(db *gorm.DB, userID, courseID uint) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, errors.Wrap(err, "get enrollment")
	}
	return &enrollment, nil
}

// EnsureEnrollment returns the existing enrollment or creates one. Losing a
// creation race to another caller is not an error.
func EnsureEnrollment(db *gorm.DB, userID, courseID uint) (*models.Enrollment, bool, error) {
	existing, err := GetEnrollment(db, userID, courseID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrEnrollmentNotFound) {
		return nil, false, err
	}
	var created *models.Enrollment
	// Savepoint so a duplicate-key failure does not abort an enclosing transaction.
	err = db.Transaction(func(tx *gorm.DB) error {
		var err error
		created, err = Enroll(tx, userID, courseID)
		return err
	})
	if errors.Is(err, ErrAlreadyEnrolled) {
		existing, err = GetEnrollment(db, userID, courseID)
		return existing, false, err
	}
	if err != nil {
		return nil, false, err
	}
	return created, true, nil
}

// UpdateProgress overwrites the enrollment's progress with an absolute
// percentage. completedAt is stamped on the transition to 100, kept while
// progress stays at 100 and cleared when it drops.
func UpdateProgress(db *gorm.DB, userID, courseID uint, progress int) (*models.Enrollment, error) {
	enrollment, err := GetEnrollment(db, userID, courseID)
	if err != nil {
		return nil, err
	}

	progress = clampPercent(progress)
	var completedAt *time.Time
	if progress == 100 {
		if enrollment.Progress == 100 && enrollment.CompletedAt != nil {
			completedAt = enrollment.CompletedAt
		} else {
			now := time.Now().UTC()
			completedAt = &now
		}
	}

	err = db.Model(enrollment).Updates(map[string]interface{}{
		"progress":     progress,
		"completed_at": completedAt,
	}).Error
	if err != nil {
		return nil, errors.Wrap(err, "update enrollment progress")
	}
	enrollment.Progress = progress
	enrollment.CompletedAt = completedAt
	return enrollment, nil
}

// ListEnrollments returns the user's enrollments with their course.
func ListEnrollments(db *gorm.DB, userID uint) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	err := db.Where("user_id = ?", userID).Preload("Course").Order("created_at desc").Find(&enrollments).Error
	if err != nil {
		return nil, errors.Wrap(err, "list enrollments")
	}
	return enrollments, nil
}
