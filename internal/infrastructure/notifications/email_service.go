package notifications

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/Sushil1248/innfostride-backend/domain"
)

// EmailServiceImpl implements the email half of domain.NotificationService
// over SMTP.
type EmailServiceImpl struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewEmailService creates a new SMTP notification service.
func NewEmailService(host string, port int, username, password, from string) *EmailServiceImpl {
	return &EmailServiceImpl{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// SendEmail implements domain.NotificationService.
func (e *EmailServiceImpl) SendEmail(to, subject, htmlBody string) error {
	// If SMTP is not configured, log instead of sending.
	if e.host == "" {
		fmt.Printf("[MOCK EMAIL] To: %s, Subject: %s\n", to, subject)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", e.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(e.host, e.port, e.username, e.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}
	return nil
}

// SendSMS implements domain.NotificationService. Email transport cannot send
// SMS; pair this service with the Twilio one via Notifier.
func (e *EmailServiceImpl) SendSMS(to, message string) error {
	fmt.Printf("[MOCK SMS] To: %s, Message: %s\n", to, message)
	return nil
}
