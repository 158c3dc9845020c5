package learning

import (
	"elearn/logger"
	"elearn/models"
	"elearn/utils"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// NewCertificateNumber returns a fresh certificate number. Uniqueness is also
// enforced by the storage index on certificate_number.
func NewCertificateNumber() string {
	return "CERT-" + strings.ToUpper(uuid.NewString())
}

// IssueIfEligible issues the certificate for (userID, courseID) when the
// enrollment is at 100%, the course offers certificates and none exists yet.
// It returns (nil, nil) when nothing was issued.
func IssueIfEligible(db *gorm.DB, userID, courseID uint) (*models.Certificate, error) {
	var existing int64
	if err := db.Model(&models.Certificate{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&existing).Error; err != nil {
		return nil, errors.Wrap(err, "check existing certificate")
	}
	if existing > 0 {
		err := db.Model(&models.Enrollment{}).
			Where("user_id = ? AND course_id = ? AND certificate_issued = ?", userID, courseID, false).
			Update("certificate_issued", true).Error
		return nil, errors.Wrap(err, "sync certificate flag")
	}

	var course models.Course
	if err := db.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, errors.Wrap(err, "load course")
	}
	if !course.HasCertificate {
		return nil, nil
	}

	enrollment, err := GetEnrollment(db, userID, courseID)
	if err != nil {
		return nil, err
	}
	if enrollment.Progress != 100 {
		return nil, nil
	}

	cert := models.Certificate{
		UserID:            userID,
		CourseID:          courseID,
		CertificateNumber: NewCertificateNumber(),
		IssuedAt:          time.Now().UTC(),
	}
	// A concurrent issuer may win the unique index; the savepoint keeps an
	// enclosing transaction usable after the violation.
	err = db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&cert).Error
	})
	if err != nil {
		if IsDuplicate(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "create certificate")
	}

	if err := db.Model(enrollment).Update("certificate_issued", true).Error; err != nil {
		return nil, errors.Wrap(err, "flag enrollment certificate issued")
	}
	return &cert, nil
}

// HasCertificate reports whether a certificate exists for the pair.
func HasCertificate(db *gorm.DB, userID, courseID uint) (bool, error) {
	var count int64
	err := db.Model(&models.Certificate{}).Where("user_id = ? AND course_id = ?", userID, courseID).Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "count certificates")
	}
	return count > 0, nil
}

func ListCertificates(db *gorm.DB, userID uint) ([]models.Certificate, error) {
	certs := []models.Certificate{}
	err := db.Where("user_id = ?", userID).Preload("Course").Order("issued_at desc").Find(&certs).Error
	if err != nil {
		return nil, errors.Wrap(err, "list certificates")
	}
	return certs, nil
}

// GetOwnedCertificate loads a certificate only if it belongs to userID.
func GetOwnedCertificate(db *gorm.DB, userID, certificateID uint) (*models.Certificate, error) {
	var cert models.Certificate
	err := db.Where("id = ? AND user_id = ?", certificateID, userID).Preload("Course").First(&cert).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCertificateNotFound
		}
		return nil, errors.Wrap(err, "get certificate")
	}
	return &cert, nil
}

// ReissueMissingCertificates re-drives issuance for enrollments that reached
// 100% without a certificate, e.g. after a failed issuance. Each enrollment is
// handled in its own transaction; failures are logged and skipped.
func ReissueMissingCertificates(db *gorm.DB) ([]models.Certificate, error) {
	var pending []models.Enrollment
	err := db.Joins("JOIN courses ON courses.id = enrollments.course_id AND courses.deleted_at IS NULL").
		Where("enrollments.progress = ? AND enrollments.certificate_issued = ? AND courses.has_certificate = ?", 100, false, true).
		Find(&pending).Error
	if err != nil {
		return nil, errors.Wrap(err, "find enrollments missing certificates")
	}

	issued := []models.Certificate{}
	for _, e := range pending {
		var cert *models.Certificate
		err := db.Transaction(func(tx *gorm.DB) error {
			var err error
			cert, err = IssueIfEligible(tx, e.UserID, e.CourseID)
			return err
		})
		if err != nil {
			logger.Log.Error("certificate re-issuance failed", "userId", e.UserID, "courseId", e.CourseID, "error", err)
			continue
		}
		if cert != nil {
			issued = append(issued, *cert)
		}
	}
	return issued, nil
}

// CertificateDocument gathers what the certificate PDF prints.
func CertificateDocument(db *gorm.DB, cert *models.Certificate) (utils.CertificateData, error) {
	var user models.User
	if err := db.Unscoped().First(&user, cert.UserID).Error; err != nil {
		return utils.CertificateData{}, errors.Wrap(err, "load certificate recipient")
	}
	course := cert.Course
	if course == nil {
		course = &models.Course{}
		if err := db.Unscoped().First(course, cert.CourseID).Error; err != nil {
			return utils.CertificateData{}, errors.Wrap(err, "load certificate course")
		}
	}

	data := utils.CertificateData{
		CertificateID:     cert.ID,
		CertificateNumber: cert.CertificateNumber,
		RecipientName:     user.Name,
		CourseTitle:       course.Title,
		InstructorName:    course.InstructorName,
		IssuedAt:          cert.IssuedAt,
	}
	if enrollment, err := GetEnrollment(db, cert.UserID, cert.CourseID); err == nil && enrollment.CompletedAt != nil {
		data.CompletedAt = *enrollment.CompletedAt
	}
	return data, nil
}
