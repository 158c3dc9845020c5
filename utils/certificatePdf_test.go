package utils

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCertificatePDF(t *testing.T) {
	d := CertificateData{
		CertificateID:     42,
		CertificateNumber: "CERT-ABC",
		RecipientName:     "Ada Obi",
		CourseTitle:       "Intro to Go",
		InstructorName:    "Grace",
		IssuedAt:          time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC),
	}

	out, err := RenderCertificatePDF(d)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	// PDF dates have one-second resolution; cross a second boundary.
	time.Sleep(1100 * time.Millisecond)
	again, err := RenderCertificatePDF(d)
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestCertificateNames(t *testing.T) {
	d := CertificateData{CertificateID: 7, IssuedAt: time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC)}
	assert.Equal(t, "EACCC-7-2024", d.DisplayID())
	assert.Equal(t, "certificate-CERT-1.pdf", CertificateFilename("CERT-1"))
}
