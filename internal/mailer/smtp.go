// internal/mailer/smtp.go
package mailer

import (
	"fmt"

	mail "gopkg.in/gomail.v2"

	"github.com/mailsched/mailsched-backend/internal/config"
)

// SMTPSender sends mail through an SMTP relay via gomail.
type SMTPSender struct {
	host string
	port int
	user string
	pass string
}

func NewSMTPSender(cfg *config.Config) *SMTPSender {
	return &SMTPSender{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPass,
	}
}

func (s *SMTPSender) Send(subject, body, from, to string) error {
	m := mail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := mail.NewDialer(s.host, s.port, s.user, s.pass)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("could not send email to %s: %w", to, err)
	}
	return nil
}

var _ Sender = (*SMTPSender)(nil)
