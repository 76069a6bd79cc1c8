package services

import (
	"fmt"
	"log"

	gomail "gopkg.in/gomail.v2"
)

// Notifier delivers a message to one recipient. Delivery failures are the
// caller's concern; implementations do not retry.
type Notifier interface {
	Send(recipient string, subject string, body string) error
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, username string, password string, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (mailer *SMTPMailer) Send(recipient string, subject string, body string) error {
	message := gomail.NewMessage()
	message.SetHeader("From", mailer.from)
	message.SetHeader("To", recipient)
	message.SetHeader("Subject", subject)
	message.SetBody("text/plain", body)

	if err := mailer.dialer.DialAndSend(message); err != nil {
		return fmt.Errorf("send mail to %s: %w", recipient, err)
	}
	return nil
}

// LogMailer stands in when SMTP is not configured: it logs that a delivery
// was skipped and reports success so request flows stay intact.
type LogMailer struct{}

func (LogMailer) Send(recipient string, subject string, _ string) error {
	log.Printf("mail delivery disabled, skipped %q to %s", subject, recipient)
	return nil
}

// PasswordResetMail renders the reset message carrying the token.
func PasswordResetMail(token string) (subject string, body string) {
	subject = "Password Reset"
	body = fmt.Sprintf(
		"Hello,\n\nYour password reset token is: %s\n\n"+
			"Paste this token into the application to set your new password.\n"+
			"This token will expire in 15 minutes.\n",
		token,
	)
	return subject, body
}
