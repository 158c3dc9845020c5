package utils

import (
	"elearn/config"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withSendgrid(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	srv := httptest.NewServer(handler)
	prevHost, prevCfg := sendgridHost, config.AppConfig
	sendgridHost = srv.URL
	config.AppConfig = &config.Config{
		SendgridAPIKey:  "SG.test",
		EmailSender:     "noreply@test.io",
		EmailSenderName: "Test Academy",
		FrontendURL:     "http://frontend.test",
	}
	t.Cleanup(func() {
		srv.Close()
		sendgridHost, config.AppConfig = prevHost, prevCfg
	})
}

func TestSendEmail_PostsToSendgrid(t *testing.T) {
	var got map[string]interface{}
	var auth string
	withSendgrid(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		assert.Equal(t, "/v3/mail/send", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.WriteHeader(http.StatusAccepted)
	})

	err := SendEmail("ada@test.io", "Ada", "Hello", "<p>hi</p>", Attachment{
		Filename: "certificate-X.pdf", ContentType: "application/pdf", Content: []byte("%PDF-1.3"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer SG.test", auth)

	from := got["from"].(map[string]interface{})
	assert.Equal(t, "noreply@test.io", from["email"])
	attachments := got["attachments"].([]interface{})
	require.Len(t, attachments, 1)
	assert.Equal(t, "certificate-X.pdf", attachments[0].(map[string]interface{})["filename"])
}

func TestSendEmail_Rejected(t *testing.T) {
	withSendgrid(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	err := SendEmail("ada@test.io", "Ada", "Hello", "<p>hi</p>")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "401"))
}

func TestSendEmail_NoKeySkips(t *testing.T) {
	prev := config.AppConfig
	config.AppConfig = &config.Config{}
	t.Cleanup(func() { config.AppConfig = prev })
	assert.NoError(t, SendEmail("ada@test.io", "Ada", "Hello", "<p>hi</p>"))
}
