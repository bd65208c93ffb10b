// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// PasswordResetEmailData holds data for password-reset email templates.
type PasswordResetEmailData struct {
	SiteName     string
	Nickname     string
	NewPassword  string
	SupportEmail string
}

// BuildPasswordResetEmail creates a password-reset email with both HTML and
// text bodies. The new password is generated server-side; the recipient is
// told to change it after signing in.
func BuildPasswordResetEmail(data PasswordResetEmailData) Email {
	return Email{
		To:       "", // Set by caller
		Subject:  fmt.Sprintf("Your %s password has been reset", data.SiteName),
		TextBody: buildPasswordResetText(data),
		HTMLBody: buildPasswordResetHTML(data),
	}
}

func buildPasswordResetText(data PasswordResetEmailData) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("Hi %s,\n\n", data.Nickname))
	buf.WriteString(fmt.Sprintf("Your %s password has been reset. Your new password is:\n\n", data.SiteName))
	buf.WriteString(data.NewPassword + "\n\n")
	buf.WriteString("Sign in with this password and change it from your profile page.\n\n")
	if data.SupportEmail != "" {
		buf.WriteString(fmt.Sprintf("If you did not request this reset, contact us at %s.\n", data.SupportEmail))
	} else {
		buf.WriteString("If you did not request this reset, please contact support.\n")
	}
	return buf.String()
}

func buildPasswordResetHTML(data PasswordResetEmailData) string {
	tmpl := template.Must(template.New("passwordreset").Parse(passwordResetHTMLTemplate))
	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, data)
	return buf.String()
}

const passwordResetHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Password Reset</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f3f4f6;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 480px; background-color: #ffffff; border-radius: 8px; box-shadow: 0 2px 4px rgba(0, 0, 0, 0.1);">
          <!-- Header -->
          <tr>
            <td style="padding: 32px 32px 24px; text-align: center; border-bottom: 1px solid #e5e7eb;">
              <h1 style="margin: 0; font-size: 24px; font-weight: 600; color: #4f46e5;">{{.SiteName}}</h1>
            </td>
          </tr>

          <!-- Content -->
          <tr>
            <td style="padding: 32px;">
              <p style="margin: 0 0 24px; font-size: 16px; color: #374151; line-height: 1.5;">
                Hi {{.Nickname}}, your password has been reset. Your new password is:
              </p>

              <!-- Password Box -->
              <div style="background-color: #f3f4f6; border-radius: 8px; padding: 24px; text-align: center; margin-bottom: 24px;">
                <span style="font-size: 24px; font-weight: 700; letter-spacing: 4px; color: #1f2937; font-family: 'Courier New', monospace;">{{.NewPassword}}</span>
              </div>

              <p style="margin: 0; font-size: 14px; color: #6b7280; text-align: center;">
                Sign in with this password and change it from your profile page.
              </p>
            </td>
          </tr>

          <!-- Footer -->
          <tr>
            <td style="padding: 24px 32px; background-color: #f9fafb; border-top: 1px solid #e5e7eb; border-radius: 0 0 8px 8px;">
              <p style="margin: 0; font-size: 12px; color: #9ca3af; text-align: center;">
                If you did not request this reset, {{if .SupportEmail}}contact us at {{.SupportEmail}}{{else}}please contact support{{end}}.
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`
