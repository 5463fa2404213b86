package services

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"

	"github.com/go-mail/mail/v2"
)

// ChallengeNotifier delivers challenge notifications to the opponent's
// institutional mailbox (handle@campus domain).
type ChallengeNotifier interface {
	SendChallengeNotification(opponentHandle, message string) error
}

// NewChallengeNotifier picks the SMTP notifier when MAIL_DSN is configured
// and falls back to logging for local development.
func NewChallengeNotifier() ChallengeNotifier {
	if os.Getenv("MAIL_DSN") != "" {
		notifier, err := NewSMTPChallengeNotifier()
		if err != nil {
			log.Printf("SMTP notifier unavailable, falling back to log: %v", err)
			return NewLogChallengeNotifier()
		}
		return notifier
	}
	return NewLogChallengeNotifier()
}

// campusMailDomain is where handle-addressed mail goes; the handle itself is
// the localpart of the institutional address.
func campusMailDomain() string {
	if domain := os.Getenv("CAMPUS_MAIL_DOMAIN"); domain != "" {
		return domain
	}
	return "andrew.cmu.edu"
}

// LogChallengeNotifier logs notifications instead of sending them.
type LogChallengeNotifier struct{}

func NewLogChallengeNotifier() *LogChallengeNotifier {
	return &LogChallengeNotifier{}
}

func (n *LogChallengeNotifier) SendChallengeNotification(opponentHandle, message string) error {
	log.Printf("=== CHALLENGE NOTIFICATION ===")
	log.Printf("To: %s@%s", opponentHandle, campusMailDomain())
	log.Printf("Body: %s", message)
	log.Printf("==============================")
	return nil
}

// SMTPChallengeNotifier sends real mail through the MAIL_DSN server.
type SMTPChallengeNotifier struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewSMTPChallengeNotifier() (*SMTPChallengeNotifier, error) {
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

	from := os.Getenv("MAIL_FROM")
	if from == "" {
		from = "noreply@campus-compete.local"
	}

	return &SMTPChallengeNotifier{
		host:     u.Hostname(),
		port:     port,
		username: username,
		password: password,
		from:     from,
	}, nil
}

func (n *SMTPChallengeNotifier) SendChallengeNotification(opponentHandle, message string) error {
	m := mail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", fmt.Sprintf("%s@%s", opponentHandle, campusMailDomain()))
	m.SetHeader("Subject", "You have been challenged!")
	m.SetBody("text/plain", message+"\n\nLog in to accept or decline.")

	d := mail.NewDialer(n.host, n.port, n.username, n.password)
	return d.DialAndSend(m)
}
