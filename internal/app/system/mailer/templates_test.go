package mailer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPasswordResetEmail(t *testing.T) {
	msg := BuildPasswordResetEmail(PasswordResetEmailData{
		SiteName:     "ContestHub",
		Nickname:     "Budi",
		NewPassword:  "xK9mQ2pL",
		SupportEmail: "support@example.com",
	})

	assert.Equal(t, "Your ContestHub password has been reset", msg.Subject)
	assert.Contains(t, msg.TextBody, "xK9mQ2pL")
	assert.Contains(t, msg.TextBody, "support@example.com")
	assert.Contains(t, msg.HTMLBody, "xK9mQ2pL")
	assert.Contains(t, msg.HTMLBody, "Budi")
}

func TestBuildPasswordResetEmail_EscapesHTML(t *testing.T) {
	msg := BuildPasswordResetEmail(PasswordResetEmailData{
		SiteName:    "ContestHub",
		Nickname:    "<script>alert(1)</script>",
		NewPassword: "xK9mQ2pL",
	})
	assert.NotContains(t, msg.HTMLBody, "<script>")
}

func TestBuildMessage_MultipartAlternative(t *testing.T) {
	raw, err := buildMessage("no-reply@example.com", Email{
		To:       "user@example.com",
		Subject:  "Hello",
		TextBody: "plain body",
		HTMLBody: "<p>html body</p>",
	})
	assert.NoError(t, err)

	s := string(raw)
	assert.Contains(t, s, "From: no-reply@example.com")
	assert.Contains(t, s, "To: user@example.com")
	assert.Contains(t, s, "multipart/alternative")
	assert.Contains(t, s, "plain body")
	assert.Contains(t, s, "<p>html body</p>")
	assert.True(t, strings.Contains(s, "MIME-Version: 1.0"))
}
