package services

import (
	"context"
	"fmt"
	"net/smtp"

	"sailbook/internal/config"
)

// EmailService sends account mail over plain SMTP. It implements
// AccountMailer; errors bubble up to the caller so the web layer can
// report a failed delivery.
type EmailService struct {
	auth smtp.Auth
	from string
	host string
	port string
}

func NewEmailService(cfg *config.Config) *EmailService {
	auth := smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPHost)
	return &EmailService{
		auth: auth,
		from: cfg.SMTPUser,
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
	}
}

func (s *EmailService) send(to, subject, body string) error {
	msg := []byte("Subject: " + subject + "\r\n" +
		"Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n" +
		body)

	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	return smtp.SendMail(addr, s.auth, s.from, []string{to}, msg)
}

func (s *EmailService) SendPasswordReset(_ context.Context, to, link string) error {
	body := "To reset your password, open the following link:\r\n\r\n" + link +
		"\r\n\r\nThe link is valid for a limited time and can be used once."
	return s.send(to, "Password reset request", body)
}

func (s *EmailService) SendVerification(_ context.Context, to, link string) error {
	body := "Please confirm your e-mail address by opening the following link:\r\n\r\n" + link
	return s.send(to, "Confirm your e-mail address", body)
}
