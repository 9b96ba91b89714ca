package utils

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/smtp"

	"event_planner/config"
	"event_planner/service/ports"

	"github.com/jordan-wright/email"
	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

//go:embed templates/*.html
var templateFS embed.FS

var mailTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

const (
	qrSize          = 256
	recoveryMinutes = 10
)

// SMTPMailer sends invitations with gomail and recovery codes with jordan-wright/email.
type SMTPMailer struct {
	smtp config.SMTPSettings
}

func NewSMTPMailer(settings config.SMTPSettings) *SMTPMailer {
	return &SMTPMailer{smtp: settings}
}

func render(name string, data any) (string, error) {
	var body bytes.Buffer
	if err := mailTemplates.ExecuteTemplate(&body, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return body.String(), nil
}

func (m *SMTPMailer) SendInvitation(_ context.Context, inv ports.Invitation) error {
	body, err := render("invitation.html", inv)
	if err != nil {
		return err
	}
	qr, err := GenerateQRCode(inv.RSVPURL, qrSize)
	if err != nil {
		return fmt.Errorf("rsvp qr: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.smtp.From)
	msg.SetHeader("To", inv.To)
	msg.SetHeader("Subject", "You're invited: "+inv.EventType)
	msg.SetBody("text/html", body)
	msg.Embed("rsvp-qr.png", gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(qr)
		return err
	}))

	d := gomail.NewDialer(m.smtp.Host, m.smtp.Port, m.smtp.Username, m.smtp.Password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("send invitation to %s: %w", inv.To, err)
	}
	return nil
}

func (m *SMTPMailer) SendRecoveryCode(_ context.Context, to, name, code string) error {
	body, err := render("recovery.html", map[string]any{
		"Name":    name,
		"Code":    code,
		"Minutes": recoveryMinutes,
	})
	if err != nil {
		return err
	}

	e := email.NewEmail()
	e.From = m.smtp.From
	e.To = []string{to}
	e.Subject = "Your password recovery code"
	e.HTML = []byte(body)

	addr := fmt.Sprintf("%s:%d", m.smtp.Host, m.smtp.Port)
	auth := smtp.PlainAuth("", m.smtp.Username, m.smtp.Password, m.smtp.Host)
	if err := e.Send(addr, auth); err != nil {
		return fmt.Errorf("send recovery code to %s: %w", to, err)
	}
	return nil
}

// LogMailer stands in for SMTP in development; it only logs what would have been sent.
type LogMailer struct {
	log zerolog.Logger
}

func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log.With().Str("component", "mailer").Logger()}
}

func (m *LogMailer) SendInvitation(_ context.Context, inv ports.Invitation) error {
	m.log.Info().Str("to", inv.To).Str("rsvp", inv.RSVPURL).Msg("invitation email (smtp disabled)")
	return nil
}

func (m *LogMailer) SendRecoveryCode(_ context.Context, to, _, _ string) error {
	m.log.Info().Str("to", to).Msg("recovery code email (smtp disabled)")
	return nil
}
