// Package mailer delivers transactional email over SMTP.
package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type Mailer interface {
	SendOTP(to, code string) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer sends through a gomail dialer (STARTTLS on 587).
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTP(cfg Config) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (m *SMTPMailer) SendOTP(to, code string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Your MUUD verification code")
	msg.SetBody("text/plain", fmt.Sprintf("Your verification code is: %s. It will expire in 10 minutes.", code))
	msg.AddAlternative("text/html", fmt.Sprintf(
		"<p>Your verification code is:</p><h2>%s</h2><p>This code will expire in 10 minutes.</p>", code))

	return m.dialer.DialAndSend(msg)
}
