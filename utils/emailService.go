package utils

import (
	"elearn/config"
	"elearn/logger"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

var (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

// Attachment is a file sent along with an email.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// SendEmail delivers an HTML email through SendGrid. Without an API key the
// message is only logged.
func SendEmail(to, name, subject, htmlBody string, attachments ...Attachment) error {
	cfg := config.AppConfig
	if cfg == nil || cfg.SendgridAPIKey == "" {
		logger.Log.Debug("email delivery disabled, skipping", "to", to, "subject", subject)
		return nil
	}

	p := sgmail.NewPersonalization()
	p.Subject = subject
	p.AddTos(sgmail.NewEmail(name, to))

	m := sgmail.NewV3Mail()
	m.SetFrom(sgmail.NewEmail(cfg.EmailSenderName, cfg.EmailSender))
	m.AddPersonalizations(p)
	m.AddContent(sgmail.NewContent("text/html", htmlBody))
	for _, a := range attachments {
		m.AddAttachment(&sgmail.Attachment{
			Content:     base64.StdEncoding.EncodeToString(a.Content),
			Type:        a.ContentType,
			Filename:    a.Filename,
			Disposition: "attachment",
		})
	}

	req := sendgrid.GetRequest(cfg.SendgridAPIKey, sendgridEndpoint, sendgridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m)

	res, err := sendgrid.API(req)
	if err != nil {
		logger.Log.Error("sending email failed", "to", to, "subject", subject, "error", err)
		return errors.Wrap(err, "sendgrid")
	}
	if res.StatusCode >= http.StatusBadRequest {
		logger.Log.Error("sending email rejected", "to", to, "subject", subject, "status", res.StatusCode, "body", res.Body)
		return errors.Errorf("sendgrid rejected email: status %d", res.StatusCode)
	}
	logger.Log.Info("email sent", "to", to, "subject", subject)
	return nil
}

func getEmailTemplate(title, bodyContent string) string {
	brand := "EACCC Academy"
	if config.AppConfig != nil && config.AppConfig.EmailSenderName != "" {
		brand = config.AppConfig.EmailSenderName
	}
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
			.header { background-color: #0B3D2E; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1F2933; line-height: 1.6; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #2E7D32; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; }
			.info-box { background: #E8F5E9; padding: 15px; border-radius: 4px; border-left: 4px solid #2E7D32; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>%s</h1></div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">&copy; %s. All rights reserved.</div>
		</div>
	</body>
	</html>
	`, brand, title, bodyContent, brand)
}

func frontendLink(path string) string {
	if config.AppConfig == nil {
		return path
	}
	return config.AppConfig.FrontendURL + path
}

// SendWelcomeEmail is sent after registration.
func SendWelcomeEmail(email, name string) {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your account has been created. Browse the catalog and start learning.</p>
		<a class="btn" href="%s">Browse courses</a>
	`, name, frontendLink("/courses"))
	go SendEmail(email, name, "Welcome aboard", getEmailTemplate("Welcome!", body))
}

// SendEnrollmentEmail confirms a new enrollment.
func SendEnrollmentEmail(email, name, courseTitle string, courseID uint) {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You are now enrolled in <strong>%s</strong>.</p>
		<div class="info-box">Complete every lesson to reach 100%% progress.</div>
		<a class="btn" href="%s">Start learning</a>
	`, name, courseTitle, frontendLink(fmt.Sprintf("/courses/%d", courseID)))
	go SendEmail(email, name, "Enrollment confirmed: "+courseTitle, getEmailTemplate("Enrollment Successful", body))
}

// SendCertificateEmail announces an issued certificate with its PDF attached.
func SendCertificateEmail(email, name, courseTitle, certificateNumber string, pdf []byte) {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Congratulations on completing <strong>%s</strong>.</p>
		<div class="info-box">Certificate number: <strong>%s</strong></div>
		<p>Your certificate is attached and can be downloaded from your dashboard at any time.</p>
	`, name, courseTitle, certificateNumber)

	var attachments []Attachment
	if len(pdf) > 0 {
		attachments = append(attachments, Attachment{
			Filename:    CertificateFilename(certificateNumber),
			ContentType: "application/pdf",
			Content:     pdf,
		})
	}
	go SendEmail(email, name, "Your certificate: "+courseTitle, getEmailTemplate("Certificate of Completion", body), attachments...)
}
