package mocks

// MockNotificationService implements domain.NotificationService interface for testing
type MockNotificationService struct {
	SendEmailFunc func(to, subject, htmlBody string) error
	SendSMSFunc   func(to, message string) error

	SentEmails []SentEmail
	SentSMS    []SentSMS
}

type SentEmail struct {
	To      string
	Subject string
	Body    string
}

type SentSMS struct {
	To      string
	Message string
}

// NewMockNotificationService creates a new MockNotificationService with default behaviors
func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

func (m *MockNotificationService) SendEmail(to, subject, htmlBody string) error {
	if m.SendEmailFunc != nil {
		return m.SendEmailFunc(to, subject, htmlBody)
	}
	m.SentEmails = append(m.SentEmails, SentEmail{To: to, Subject: subject, Body: htmlBody})
	return nil
}

func (m *MockNotificationService) SendSMS(to, message string) error {
	if m.SendSMSFunc != nil {
		return m.SendSMSFunc(to, message)
	}
	m.SentSMS = append(m.SentSMS, SentSMS{To: to, Message: message})
	return nil
}

// MockMailRenderer implements domain.MailRenderer interface for testing
type MockMailRenderer struct {
	VerificationCodeFunc func(otp string) (string, string, error)
	ResetLinkFunc        func(username, link string) (string, string, error)
}

// NewMockMailRenderer creates a new MockMailRenderer with default behaviors
func NewMockMailRenderer() *MockMailRenderer {
	return &MockMailRenderer{}
}

func (m *MockMailRenderer) VerificationCode(otp string) (string, string, error) {
	if m.VerificationCodeFunc != nil {
		return m.VerificationCodeFunc(otp)
	}
	return "Account Verification Email", "<p>" + otp + "</p>", nil
}

func (m *MockMailRenderer) ResetLink(username, link string) (string, string, error) {
	if m.ResetLinkFunc != nil {
		return m.ResetLinkFunc(username, link)
	}
	return "Reset password email", "<a href=\"" + link + "\">reset</a>", nil
}
