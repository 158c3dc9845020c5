package controllers

import (
	"elearn/database"
	"elearn/middleware"
	"elearn/services/learning"
	"elearn/utils"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

func GetMyCertificates(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)
	certs, err := learning.ListCertificates(database.Database.Db, userID)
	if err != nil {
		return respondError(c, err, "userId", userID)
	}
	return c.JSON(certs)
}

// DownloadCertificate streams the certificate PDF to its owner.
func DownloadCertificate(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)
	certID := c.Locals("certificateId").(uint)
	db := database.Database.Db

	cert, err := learning.GetOwnedCertificate(db, userID, certID)
	if err != nil {
		return respondError(c, err, "userId", userID, "certificateId", certID)
	}
	doc, err := learning.CertificateDocument(db, cert)
	if err != nil {
		return respondError(c, err, "certificateId", certID)
	}
	pdf, err := utils.RenderCertificatePDF(doc)
	if err != nil {
		return respondError(c, err, "certificateId", certID)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, utils.CertificateFilename(cert.CertificateNumber)))
	return c.Send(pdf)
}
