package learning

import (
	"elearn/logger"
	"elearn/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// CompletionResult is the outcome of a lesson-completion request.
type CompletionResult struct {
	CourseID          uint                `json:"courseId"`
	Progress          int                 `json:"progress"`
	CourseCompleted   bool                `json:"courseCompleted"`
	CertificateIssued bool                `json:"certificateIssued"`
	NewCertificate    *models.Certificate `json:"-"`
}

// CompleteLesson marks the lesson complete, recomputes course progress and
// updates the enrollment in one transaction. When the course reaches 100%,
// certificate issuance runs in a nested savepoint: an issuance failure is
// logged and rolled back on its own without failing the completion.
func CompleteLesson(db *gorm.DB, userID, lessonID uint) (*CompletionResult, error) {
	var lesson models.Lesson
	if err := db.First(&lesson, lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLessonNotFound
		}
		return nil, errors.Wrap(err, "load lesson")
	}

	if _, err := GetEnrollment(db, userID, lesson.CourseID); err != nil {
		if errors.Is(err, ErrEnrollmentNotFound) {
			return nil, ErrNotEnrolled
		}
		return nil, err
	}

	result := &CompletionResult{CourseID: lesson.CourseID}
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := MarkComplete(tx, userID, lesson.ID); err != nil {
			return err
		}
		progress, err := ComputeCourseProgress(tx, userID, lesson.CourseID)
		if err != nil {
			return err
		}
		if _, err := UpdateProgress(tx, userID, lesson.CourseID, progress); err != nil {
			return err
		}
		result.Progress = progress
		result.CourseCompleted = progress == 100

		if result.CourseCompleted {
			ierr := tx.Transaction(func(sp *gorm.DB) error {
				cert, err := IssueIfEligible(sp, userID, lesson.CourseID)
				result.NewCertificate = cert
				return err
			})
			if ierr != nil {
				result.NewCertificate = nil
				logger.Log.Error("certificate issuance failed",
					"userId", userID, "courseId", lesson.CourseID, "lessonId", lesson.ID, "error", ierr)
			}
		}

		issued, err := HasCertificate(tx, userID, lesson.CourseID)
		if err != nil {
			return err
		}
		result.CertificateIssued = issued
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
