package utils

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

// CertificateData is everything printed on a certificate.
type CertificateData struct {
	CertificateID     uint
	CertificateNumber string
	RecipientName     string
	CourseTitle       string
	InstructorName    string
	IssuedAt          time.Time
	CompletedAt       time.Time // falls back to IssuedAt when zero
}

// DisplayID is the human-facing certificate identifier.
func (d CertificateData) DisplayID() string {
	return fmt.Sprintf("EACCC-%d-%d", d.CertificateID, d.IssuedAt.Year())
}

func CertificateFilename(certificateNumber string) string {
	return fmt.Sprintf("certificate-%s.pdf", certificateNumber)
}

// RenderCertificatePDF lays out a single A4 landscape page. The creation and
// modification dates are pinned to IssuedAt so the same certificate always renders the same bytes.
func RenderCertificatePDF(d CertificateData) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetCreationDate(d.IssuedAt)
	pdf.SetModificationDate(d.IssuedAt)
	pdf.SetTitle("Certificate of Completion", true)
	pdf.SetAuthor("EACCC", true)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	w, h := pdf.GetPageSize()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// border frame
	pdf.SetDrawColor(11, 61, 46)
	pdf.SetLineWidth(2)
	pdf.Rect(10, 10, w-20, h-20, "D")
	pdf.SetLineWidth(0.5)
	pdf.Rect(15, 15, w-30, h-30, "D")

	pdf.SetTextColor(11, 61, 46)
	pdf.SetFont("Helvetica", "B", 34)
	pdf.SetXY(20, 38)
	pdf.CellFormat(w-40, 16, "Certificate of Completion", "", 1, "C", false, 0, "")

	pdf.SetTextColor(80, 80, 80)
	pdf.SetFont("Helvetica", "", 14)
	pdf.SetX(20)
	pdf.CellFormat(w-40, 10, "This is to certify that", "", 1, "C", false, 0, "")

	pdf.Ln(4)
	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 28)
	pdf.SetX(20)
	pdf.CellFormat(w-40, 14, tr(orDash(d.RecipientName)), "", 1, "C", false, 0, "")

	pdf.Ln(4)
	pdf.SetTextColor(80, 80, 80)
	pdf.SetFont("Helvetica", "", 14)
	pdf.SetX(20)
	pdf.CellFormat(w-40, 10, "has successfully completed the course", "", 1, "C", false, 0, "")

	pdf.SetTextColor(11, 61, 46)
	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetX(30)
	pdf.MultiCell(w-60, 11, tr(orDash(d.CourseTitle)), "", "C", false)

	pdf.Ln(4)
	pdf.SetTextColor(80, 80, 80)
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetX(20)
	completed := d.CompletedAt
	if completed.IsZero() {
		completed = d.IssuedAt
	}
	pdf.CellFormat(w-40, 8, "Completed on "+completed.Format("January 2, 2006"), "", 1, "C", false, 0, "")

	// signature block
	sigY := h - 52
	pdf.SetDrawColor(80, 80, 80)
	pdf.SetLineWidth(0.3)
	pdf.Line(40, sigY, 120, sigY)
	pdf.SetXY(40, sigY+2)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(80, 7, tr(orDash(d.InstructorName)), "", 2, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(80, 6, "Instructor", "", 0, "C", false, 0, "")

	pdf.SetXY(w-130, sigY-8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(90, 6, "Certificate ID", "", 2, "C", false, 0, "")
	pdf.SetFont("Courier", "B", 12)
	pdf.CellFormat(90, 7, d.DisplayID(), "", 2, "C", false, 0, "")
	pdf.SetFont("Courier", "", 8)
	pdf.CellFormat(90, 6, d.CertificateNumber, "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "render certificate pdf")
	}
	return buf.Bytes(), nil
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
