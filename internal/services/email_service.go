package services

import (
	"fmt"
	"net/url"
	"strings"

	"essaylab_backend/internal/config"
	"essaylab_backend/internal/email"
	"essaylab_backend/internal/logger"
)

// EmailService sends the account-lifecycle emails. Failures are logged,
// never propagated: a broken SMTP relay must not fail a signup.
type EmailService interface {
	SendVerification(to, name, token string)
	SendPasswordReset(to, name, token string)
	SendInvite(to, name, token string)
	SendApproved(to, name string)
	SendRejected(to, name, reason string)
	SendSuspended(to, name string)
	NotifyAdminNewSignup(userEmail, userName string)
}

type emailService struct {
	cfg      *config.Config
	provider email.Provider
}

func NewEmailService(cfg *config.Config, provider email.Provider) EmailService {
	if provider == nil {
		provider = &email.MockProvider{}
	}
	return &emailService{cfg: cfg, provider: provider}
}

func (s *emailService) send(to, subject, template string, data email.TemplateData) {
	if err := s.provider.SendTemplate([]string{to}, subject, template, data); err != nil {
		logger.WithError(err).Error("send email failed", "template", template, "to", to)
	}
}

// link builds a frontend deep link carrying the token, e.g.
// https://app.example.com/verify-email?token=abc.
func (s *emailService) link(path, token string) string {
	base := strings.TrimRight(s.cfg.Email.FrontendURL, "/")
	return fmt.Sprintf("%s%s?token=%s", base, path, url.QueryEscape(token))
}

func (s *emailService) SendVerification(to, name, token string) {
	s.send(to, "Verify your email", email.TemplateVerification, email.TemplateData{
		"Name": name,
		"Link": s.link("/verify-email", token),
	})
}

func (s *emailService) SendPasswordReset(to, name, token string) {
	s.send(to, "Reset your password", email.TemplatePasswordReset, email.TemplateData{
		"Name": name,
		"Link": s.link("/reset-password", token),
	})
}

func (s *emailService) SendInvite(to, name, token string) {
	s.send(to, "You have been invited", email.TemplateInvite, email.TemplateData{
		"Name": name,
		"Link": s.link("/set-password", token),
	})
}

func (s *emailService) SendApproved(to, name string) {
	s.send(to, "Your account has been approved", email.TemplateApproved, email.TemplateData{
		"Name": name,
	})
}

func (s *emailService) SendRejected(to, name, reason string) {
	s.send(to, "About your account application", email.TemplateRejected, email.TemplateData{
		"Name":   name,
		"Reason": reason,
	})
}

func (s *emailService) SendSuspended(to, name string) {
	s.send(to, "Your account has been suspended", email.TemplateSuspended, email.TemplateData{
		"Name": name,
	})
}

func (s *emailService) NotifyAdminNewSignup(userEmail, userName string) {
	if s.cfg.Email.AdminEmail == "" {
		return
	}
	s.send(s.cfg.Email.AdminEmail, fmt.Sprintf("New signup pending review: %s", userEmail),
		email.TemplateAdminNotification, email.TemplateData{
			"Email": userEmail,
			"Name":  userName,
		})
}
