package notifications

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/Sushil1248/innfostride-backend/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// TemplateRenderer implements domain.MailRenderer from the embedded email
// templates.
type TemplateRenderer struct {
	templates *template.Template
	appName   string
	appLogo   string
}

// NewTemplateRenderer parses the embedded templates once.
func NewTemplateRenderer(appName, appLogo string) (*TemplateRenderer, error) {
	t, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse mail templates: %w", err)
	}
	return &TemplateRenderer{templates: t, appName: appName, appLogo: appLogo}, nil
}

var _ domain.MailRenderer = (*TemplateRenderer)(nil)

// VerificationCode renders the account verification email.
func (r *TemplateRenderer) VerificationCode(otp string) (string, string, error) {
	body, err := r.render("send-verification-code.html", map[string]string{
		"OTP":     otp,
		"AppName": r.appName,
		"AppLogo": r.appLogo,
	})
	if err != nil {
		return "", "", err
	}
	return "Account Verification Email", body, nil
}

// ResetLink renders the password reset email.
func (r *TemplateRenderer) ResetLink(username, link string) (string, string, error) {
	body, err := r.render("reset-password.html", map[string]string{
		"Name":      username,
		"ResetLink": link,
		"AppName":   r.appName,
		"AppLogo":   r.appLogo,
	})
	if err != nil {
		return "", "", err
	}
	return "Reset password email", body, nil
}

func (r *TemplateRenderer) render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}
