// Package mailer sends the registration-confirmation email over SMTP.
package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func New(cfg Config) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// SendRegistrationMail delivers the confirmation message for a new account.
// The send blocks on the request path and carries no retry.
func (m *Mailer) SendRegistrationMail(name, email string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", "Registration Success!")
	msg.SetBody("text/html", fmt.Sprintf(
		"<p>Hi %s,</p><p>Your account has been registered. Activate it to start using the service.</p>",
		name,
	))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send registration mail: %w", err)
	}
	return nil
}
