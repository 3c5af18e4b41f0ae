package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"essaylab_backend/internal/config"
	"essaylab_backend/internal/email"
)

// renderingProvider renders through the real built-in templates so the
// tests exercise the data keys the service actually sends.
type renderingProvider struct {
	tm        *email.TemplateManager
	to        []string
	subject   string
	template  string
	lastBody  string
	renderErr error
}

func (p *renderingProvider) Send(msg *email.Email) error { return nil }

func (p *renderingProvider) Close() error { return nil }

func (p *renderingProvider) SendTemplate(to []string, subject, templateName string, data email.TemplateData) error {
	p.to = to
	p.subject = subject
	p.template = templateName
	p.lastBody, p.renderErr = p.tm.Render(templateName, data)
	return p.renderErr
}

func newEmailServiceForTest(t *testing.T) (EmailService, *renderingProvider) {
	t.Helper()
	cfg := &config.Config{}
	cfg.Email.FrontendURL = "https://app.example.com"
	cfg.Email.AdminEmail = "admin@example.com"
	provider := &renderingProvider{tm: email.NewTemplateManager()}
	return NewEmailService(cfg, provider), provider
}

func TestSendVerificationBodyCarriesToken(t *testing.T) {
	svc, provider := newEmailServiceForTest(t)

	svc.SendVerification("dana@example.com", "Dana", "tok-verification-123")

	require.NoError(t, provider.renderErr)
	assert.Equal(t, email.TemplateVerification, provider.template)
	assert.Equal(t, []string{"dana@example.com"}, provider.to)
	assert.Contains(t, provider.lastBody, "Dana")
	assert.Contains(t, provider.lastBody, "https://app.example.com/verify-email?token=tok-verification-123")
	assert.NotContains(t, provider.lastBody, `href=""`)
}

func TestSendPasswordResetBodyCarriesToken(t *testing.T) {
	svc, provider := newEmailServiceForTest(t)

	svc.SendPasswordReset("dana@example.com", "Dana", "tok-reset-456")

	require.NoError(t, provider.renderErr)
	assert.Contains(t, provider.lastBody, "https://app.example.com/reset-password?token=tok-reset-456")
	assert.NotContains(t, provider.lastBody, `href=""`)
}

func TestSendInviteBodyCarriesToken(t *testing.T) {
	svc, provider := newEmailServiceForTest(t)

	svc.SendInvite("newhire@example.com", "Alim", "tok-invite-789")

	require.NoError(t, provider.renderErr)
	assert.Contains(t, provider.lastBody, "https://app.example.com/set-password?token=tok-invite-789")
	assert.NotContains(t, provider.lastBody, `href=""`)
}

func TestNotifyAdminNewSignupBodyCarriesUser(t *testing.T) {
	svc, provider := newEmailServiceForTest(t)

	svc.NotifyAdminNewSignup("applicant@example.com", "Aruzhan")

	require.NoError(t, provider.renderErr)
	assert.Equal(t, []string{"admin@example.com"}, provider.to)
	assert.Contains(t, provider.lastBody, "applicant@example.com")
	assert.Contains(t, provider.lastBody, "Aruzhan")
}

func TestEmailLinkEscapesTokenAndTrailingSlash(t *testing.T) {
	cfg := &config.Config{}
	cfg.Email.FrontendURL = "https://app.example.com/"
	provider := &renderingProvider{tm: email.NewTemplateManager()}
	svc := NewEmailService(cfg, provider)

	svc.SendVerification("dana@example.com", "Dana", "a b&c")

	require.NoError(t, provider.renderErr)
	assert.Contains(t, provider.lastBody, "https://app.example.com/verify-email?token=a+b")
	assert.NotContains(t, provider.lastBody, "com//verify-email")
}
