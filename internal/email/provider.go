package email

import "essaylab_backend/internal/logger"

// Provider sends transactional email.
type Provider interface {
	// Send sends a prepared message.
	Send(email *Email) error

	// SendTemplate renders a named template and sends it.
	SendTemplate(to []string, subject string, templateName string, data TemplateData) error

	// Close releases provider resources.
	Close() error
}

// MockProvider logs instead of sending; used in development and tests.
type MockProvider struct{}

func (m *MockProvider) Send(email *Email) error {
	logger.Info("mock email send", "to", email.To, "subject", email.Subject)
	return nil
}

func (m *MockProvider) SendTemplate(to []string, subject string, templateName string, data TemplateData) error {
	logger.Info("mock email send", "to", to, "subject", subject, "template", templateName)
	return nil
}

func (m *MockProvider) Close() error { return nil }
