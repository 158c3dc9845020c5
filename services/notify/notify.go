// Package notify sends the user-facing emails that follow enrollment and
// certificate issuance. Every function is best effort: failures are logged.
package notify

import (
	"elearn/logger"
	"elearn/models"
	"elearn/services/learning"
	"elearn/utils"

	"gorm.io/gorm"
)

// Enrolled emails the user a confirmation for a new enrollment.
func Enrolled(db *gorm.DB, userID, courseID uint) {
	var user models.User
	var course models.Course
	if err := db.First(&user, userID).Error; err != nil {
		logger.Log.Warn("enrollment email skipped", "userId", userID, "error", err)
		return
	}
	if err := db.First(&course, courseID).Error; err != nil {
		logger.Log.Warn("enrollment email skipped", "courseId", courseID, "error", err)
		return
	}
	utils.SendEnrollmentEmail(user.Email, user.Name, course.Title, course.ID)
}

// CertificateIssued renders the certificate and emails it to its owner.
func CertificateIssued(db *gorm.DB, cert models.Certificate) {
	doc, err := learning.CertificateDocument(db, &cert)
	if err != nil {
		logger.Log.Warn("certificate email skipped", "certificateId", cert.ID, "error", err)
		return
	}
	pdf, err := utils.RenderCertificatePDF(doc)
	if err != nil {
		logger.Log.Error("certificate pdf failed", "certificateId", cert.ID, "error", err)
	}

	var user models.User
	if err := db.First(&user, cert.UserID).Error; err != nil {
		logger.Log.Warn("certificate email skipped", "userId", cert.UserID, "error", err)
		return
	}
	utils.SendCertificateEmail(user.Email, user.Name, doc.CourseTitle, cert.CertificateNumber, pdf)
}
