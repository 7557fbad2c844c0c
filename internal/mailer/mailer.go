// Package mailer sends transactional email. Handlers never talk to it
// directly; the auth service wraps delivery failures into a domain error so
// a broken SMTP relay surfaces as 502, not a crash.
package mailer

import (
	"bytes"
	"context"
	"html/template"

	internal "github.com/aditirto/identity-service/internal"

	gomail "gopkg.in/gomail.v2"
)

type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// SMTPMailer delivers mail over a configured SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(cfg internal.SMTPConfig) *SMTPMailer {
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   from,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)
	return m.dialer.DialAndSend(msg)
}

var verificationTemplate = template.Must(template.New("verification").Parse(
	"<html><body><p>Code, which should be copied and used for " +
		"authorization:</p><h3>{{.Code}}</h3><p>This message was sent by a robot, " +
		"which does not check incoming mail</p></body></html>"))

const VerificationSubject = "Your verification code"

// BuildVerificationEmail renders the fixed HTML body carrying the one-time code.
func BuildVerificationEmail(code string) (string, error) {
	var buf bytes.Buffer
	if err := verificationTemplate.Execute(&buf, struct{ Code string }{Code: code}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
