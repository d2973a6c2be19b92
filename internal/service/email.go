package service

import (
	"fmt"
	"net/smtp"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// EmailSender delivers transactional mail.
type EmailSender interface {
	SendMagicLink(toEmail, name, link string) error
}

type EmailService struct {
	smtpHost     string
	smtpPort     string
	smtpUsername string
	smtpPassword string
	fromEmail    string
	fromName     string
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func envOrSecret(envKey, secretName string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return readSecret(secretName)
}

// NewEmailService builds the SMTP-backed sender. Returns nil when SMTP is
// not configured, which disables passwordless sign-in.
func NewEmailService() EmailSender {
	service := &EmailService{
		smtpHost:     envOrSecret("SMTP_HOST", "smtp_host"),
		smtpPort:     envOrSecret("SMTP_PORT", "smtp_port"),
		smtpUsername: envOrSecret("SMTP_USERNAME", "smtp_username"),
		smtpPassword: envOrSecret("SMTP_PASSWORD", "smtp_password"),
		fromEmail:    envOrSecret("EMAIL_FROM", "email_from"),
		fromName:     envOrSecret("EMAIL_FROM_NAME", "email_from_name"),
	}

	if service.smtpHost == "" || service.fromEmail == "" {
		return nil
	}
	return service
}

// SendMagicLink emails a one-time sign-in link.
func (s *EmailService) SendMagicLink(toEmail, name, link string) error {
	greeting := "there"
	if name != "" {
		greeting = cases.Title(language.English).String(name)
	}

	subject := "Your sign-in link"
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\n"+
			"Use the link below to sign in. It expires in 15 minutes.\r\n\r\n"+
			"%s\r\n\r\n"+
			"If you did not request this, you can ignore this email.\r\n",
		greeting, link,
	)

	msg := fmt.Sprintf(
		"From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.fromName, s.fromEmail, toEmail, subject, body,
	)

	addr := fmt.Sprintf("%s:%s", s.smtpHost, s.smtpPort)
	auth := smtp.PlainAuth("", s.smtpUsername, s.smtpPassword, s.smtpHost)
	return smtp.SendMail(addr, auth, s.fromEmail, []string{toEmail}, []byte(msg))
}
