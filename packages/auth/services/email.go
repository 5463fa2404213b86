package services

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"

	"github.com/go-mail/mail/v2"
)

// EmailService sends account emails
type EmailService interface {
	SendPasswordResetEmail(to, resetURL string) error
}

func resetEmailBody(resetURL string) (subject, body string) {
	subject = "Reset your password"
	body = fmt.Sprintf(`Hi,

You asked to reset your password.
Follow this link to choose a new one:

%s

The link is valid for 2 hours.

If you did not make this request, ignore this message.

Campus Compete`, resetURL)
	return subject, body
}

// LogEmailService logs emails instead of sending them (development)
type LogEmailService struct{}

func NewLogEmailService() *LogEmailService {
	return &LogEmailService{}
}

func (s *LogEmailService) SendPasswordResetEmail(to, resetURL string) error {
	subject, body := resetEmailBody(resetURL)

	log.Printf("=== EMAIL SENT ===")
	log.Printf("To: %s", to)
	log.Printf("Subject: %s", subject)
	log.Printf("Body: %s", body)
	log.Printf("=================")
	return nil
}

// SMTPEmailService sends real emails through SMTP
type SMTPEmailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTPEmailService reads the SMTP endpoint from the MAIL_DSN url
func NewSMTPEmailService() (*SMTPEmailService, error) {
	mailDSN := os.Getenv("MAIL_DSN")
	if mailDSN == "" {
		return nil, fmt.Errorf("MAIL_DSN environment variable is required")
	}

	u, err := url.Parse(mailDSN)
	if err != nil {
		return nil, fmt.Errorf("invalid MAIL_DSN format: %v", err)
	}

	port := 25
	if u.Port() != "" {
		port, err = strconv.Atoi(u.Port())
		if err != nil {
			return nil, fmt.Errorf("invalid port in MAIL_DSN: %v", err)
		}
	}

	username := ""
	password := ""
	if u.User != nil {
		username = u.User.Username()
		password, _ = u.User.Password()
	}

	from := "noreply@campus-compete.local"
	if envSender := os.Getenv("MAILER_ENVELOPE_SENDER"); envSender != "" {
		from = envSender
	} else if username != "" {
		from = username
	}

	return &SMTPEmailService{
		host:     u.Hostname(),
		port:     port,
		username: username,
		password: password,
		from:     from,
	}, nil
}

func (s *SMTPEmailService) SendPasswordResetEmail(to, resetURL string) error {
	subject, body := resetEmailBody(resetURL)

	m := mail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := mail.NewDialer(s.host, s.port, s.username, s.password)

	// Local catchers like Mailpit have no TLS
	if s.host == "localhost" || s.host == "127.0.0.1" {
		d.TLSConfig = nil
	}

	if err := d.DialAndSend(m); err != nil {
		log.Printf("Error sending email: %v", err)
		return err
	}

	log.Printf("Email sent successfully to %s via SMTP (%s:%d)", to, s.host, s.port)
	return nil
}

// NewEmailService picks SMTP when configured, log output otherwise
func NewEmailService() EmailService {
	if smtpService, err := NewSMTPEmailService(); err == nil {
		return smtpService
	}

	log.Println("MAIL_DSN not configured, using log email service")
	return NewLogEmailService()
}
