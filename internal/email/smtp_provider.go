package email

import (
	"fmt"

	"essaylab_backend/internal/config"

	"gopkg.in/gomail.v2"
)

// SMTPProvider sends through SMTP via gomail.
type SMTPProvider struct {
	cfg      *config.Config
	renderer *TemplateManager
}

func NewSMTPProvider(cfg *config.Config, renderer *TemplateManager) (*SMTPProvider, error) {
	if cfg.Email.SMTPHost == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if cfg.Email.FromEmail == "" {
		return nil, fmt.Errorf("from email is required")
	}

	return &SMTPProvider{
		cfg:      cfg,
		renderer: renderer,
	}, nil
}

func (p *SMTPProvider) Send(email *Email) error {
	m := gomail.NewMessage()

	from := email.From
	if from == "" {
		from = p.cfg.Email.FromEmail
	}
	if p.cfg.Email.FromName != "" {
		m.SetHeader("From", m.FormatAddress(from, p.cfg.Email.FromName))
	} else {
		m.SetHeader("From", from)
	}

	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)

	if email.HTMLBody != "" {
		m.SetBody("text/html", email.HTMLBody)
		if email.Body != "" {
			m.AddAlternative("text/plain", email.Body)
		}
	} else {
		m.SetBody("text/plain", email.Body)
	}

	d := gomail.NewDialer(
		p.cfg.Email.SMTPHost,
		p.cfg.Email.SMTPPort,
		p.cfg.Email.SMTPUsername,
		p.cfg.Email.SMTPPassword,
	)

	return d.DialAndSend(m)
}

func (p *SMTPProvider) SendTemplate(to []string, subject string, templateName string, data TemplateData) error {
	htmlBody, err := p.renderer.Render(templateName, data)
	if err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}

	return p.Send(&Email{
		To:       to,
		Subject:  subject,
		HTMLBody: htmlBody,
	})
}

func (p *SMTPProvider) Close() error { return nil }
