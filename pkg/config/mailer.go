package config

import (
	"fmt"

	mail "github.com/go-mail/mail/v2"
)

// SMTPMailer sends transactional mail over SMTP.
type SMTPMailer struct {
	cfg *Config
}

// NewMailer creates an SMTPMailer from the loaded configuration.
func NewMailer(cfg *Config) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// SendPasswordReset emails a password-reset link carrying the given token.
func (m *SMTPMailer) SendPasswordReset(to, username, token string) error {
	if m.cfg.SMTPHost == "" || m.cfg.SMTPFrom == "" {
		return fmt.Errorf("smtp not configured (SMTP_HOST/SMTP_FROM)")
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", m.cfg.AppBaseURL, token)
	body := fmt.Sprintf(
		"<p>Dear %s,</p>"+
			"<p>To reset your password <a href=%q>click here</a>. "+
			"The link expires in ten minutes.</p>"+
			"<p>If you have not requested a password reset simply ignore this message.</p>",
		username, resetURL)

	msg := mail.NewMessage()
	msg.SetHeader("From", m.cfg.SMTPFrom)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "[Microblog] Reset Your Password")
	msg.SetBody("text/html", body)

	d := mail.NewDialer(m.cfg.SMTPHost, m.cfg.SMTPPort, m.cfg.SMTPUser, m.cfg.SMTPPass)
	return d.DialAndSend(msg)
}
