package learning

import (
	"elearn/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

func GetCourse(db *gorm.DB, courseID uint) (*models.Course, error) {
	var course models.Course
	if err := db.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, errors.Wrap(err, "get course")
	}
	return &course, nil
}

// GetPublishedCourse loads a published course with its topics and lessons.
// Lesson content URLs are stripped; they are only served behind enrollment.
func GetPublishedCourse(db *gorm.DB, courseID uint) (*models.Course, error) {
	var course models.Course
	err := db.Where("id = ? AND is_published = ?", courseID, true).
		Preload("Topics", func(tx *gorm.DB) *gorm.DB { return tx.Order("order_index asc") }).
		Preload("Lessons", func(tx *gorm.DB) *gorm.DB { return tx.Order("order_index asc") }).
		First(&course).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, errors.Wrap(err, "get published course")
	}
	for i := range course.Lessons {
		course.Lessons[i].ContentURL = ""
	}
	return &course, nil
}

func ListPublishedCourses(db *gorm.DB) ([]models.Course, error) {
	courses := []models.Course{}
	if err := db.Where("is_published = ?", true).Order("created_at desc").Find(&courses).Error; err != nil {
		return nil, errors.Wrap(err, "list courses")
	}
	return courses, nil
}

// DeleteCourse soft-deletes a course. It refuses while any enrollment exists.
func DeleteCourse(db *gorm.DB, courseID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := GetCourse(tx, courseID); err != nil {
			return err
		}
		var enrollments int64
		if err := tx.Model(&models.Enrollment{}).Where("course_id = ?", courseID).Count(&enrollments).Error; err != nil {
			return errors.Wrap(err, "count enrollments")
		}
		if enrollments > 0 {
			return ErrEnrollmentsExist
		}
		if err := tx.Where("course_id = ?", courseID).Delete(&models.Lesson{}).Error; err != nil {
			return errors.Wrap(err, "delete lessons")
		}
		if err := tx.Where("course_id = ?", courseID).Delete(&models.Topic{}).Error; err != nil {
			return errors.Wrap(err, "delete topics")
		}
		return errors.Wrap(tx.Delete(&models.Course{}, courseID).Error, "delete course")
	})
}

// GetLessonForUser returns a lesson with its content when the user is enrolled
// in the lesson's course. Instructors and admins bypass the enrollment gate.
func GetLessonForUser(db *gorm.DB, userID uint, role string, lessonID uint) (*models.Lesson, error) {
	var lesson models.Lesson
	if err := db.First(&lesson, lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLessonNotFound
		}
		return nil, errors.Wrap(err, "get lesson")
	}
	if role == models.RoleAdmin || role == models.RoleInstructor {
		return &lesson, nil
	}
	if _, err := GetEnrollment(db, userID, lesson.CourseID); err != nil {
		if errors.Is(err, ErrEnrollmentNotFound) {
			return nil, ErrNotEnrolled
		}
		return nil, err
	}
	return &lesson, nil
}

// EnrollFree enrolls the user in a course that needs no payment.
func EnrollFree(db *gorm.DB, userID, courseID uint) (*models.Enrollment, error) {
	var course models.Course
	if err := db.Where("id = ? AND is_published = ?", courseID, true).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, errors.Wrap(err, "load course")
	}
	if course.RequiresPayment() {
		return nil, ErrPaymentRequired
	}
	if _, err := GetEnrollment(db, userID, courseID); err == nil {
		return nil, ErrAlreadyEnrolled
	} else if !errors.Is(err, ErrEnrollmentNotFound) {
		return nil, err
	}
	return Enroll(db, userID, courseID)
}
