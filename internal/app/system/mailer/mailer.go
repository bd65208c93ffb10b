// internal/app/system/mailer/mailer.go

// Package mailer sends transactional email over SMTP. Messages carry both a
// text and an HTML body as multipart/alternative so plain-text clients stay
// readable.
package mailer

import (
	"fmt"
	"mime"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"strings"
)

// Email is a single outbound message.
type Email struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Config holds SMTP connection settings.
type Config struct {
	Host string // e.g. localhost for Mailpit, email-smtp.us-east-1.amazonaws.com for SES
	Port int    // e.g. 1025 for Mailpit, 587 for SES
	User string // empty disables auth
	Pass string
	From string // sender address, e.g. no-reply@example.com
}

// Mailer sends Email messages through a single SMTP endpoint.
type Mailer struct {
	cfg Config
}

// New builds a Mailer from SMTP settings.
func New(cfg Config) *Mailer {
	return &Mailer{cfg: cfg}
}

// Send delivers msg. Auth is used only when a username is configured, so
// local dev servers like Mailpit work out of the box.
func (m *Mailer) Send(msg Email) error {
	raw, err := buildMessage(m.cfg.From, msg)
	if err != nil {
		return fmt.Errorf("build message: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	}
	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{msg.To}, raw); err != nil {
		return fmt.Errorf("send to %s: %w", msg.To, err)
	}
	return nil
}

func buildMessage(from string, msg Email) ([]byte, error) {
	var buf strings.Builder
	var body strings.Builder
	mw := multipart.NewWriter(&body)

	part := func(contentType, content string) error {
		h := textproto.MIMEHeader{}
		h.Set("Content-Type", contentType+"; charset=UTF-8")
		w, err := mw.CreatePart(h)
		if err != nil {
			return err
		}
		_, err = w.Write([]byte(content))
		return err
	}
	if err := part("text/plain", msg.TextBody); err != nil {
		return nil, err
	}
	if msg.HTMLBody != "" {
		if err := part("text/html", msg.HTMLBody); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", msg.To)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", msg.Subject))
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%q\r\n", mw.Boundary())
	buf.WriteString("\r\n")
	buf.WriteString(body.String())
	return []byte(buf.String()), nil
}
