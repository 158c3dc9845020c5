package learning

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var (
	ErrCourseNotFound      = errors.New("course not found")
	ErrLessonNotFound      = errors.New("lesson not found")
	ErrEnrollmentNotFound  = errors.New("enrollment not found")
	ErrCertificateNotFound = errors.New("certificate not found")
	ErrAlreadyEnrolled     = errors.New("user already enrolled in this course")
	ErrNotEnrolled         = errors.New("user not enrolled in this course")
	ErrPaymentRequired     = errors.New("course requires payment")
	ErrEnrollmentsExist    = errors.New("course has enrollments")
)

// IsDuplicate reports whether err is a storage uniqueness violation.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
