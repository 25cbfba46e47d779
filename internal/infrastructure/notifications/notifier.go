package notifications

import "github.com/Sushil1248/innfostride-backend/domain"

// SMSSender is the outbound SMS boundary.
type SMSSender interface {
	SendSMS(to, message string) error
}

// Notifier combines the email and SMS channels into one
// domain.NotificationService.
type Notifier struct {
	email *EmailServiceImpl
	sms   SMSSender
}

func NewNotifier(email *EmailServiceImpl, sms SMSSender) domain.NotificationService {
	return &Notifier{email: email, sms: sms}
}

func (n *Notifier) SendEmail(to, subject, htmlBody string) error {
	return n.email.SendEmail(to, subject, htmlBody)
}

func (n *Notifier) SendSMS(to, message string) error {
	return n.sms.SendSMS(to, message)
}
