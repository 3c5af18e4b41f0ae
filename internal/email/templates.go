package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// Template names used by the account lifecycle.
const (
	TemplateVerification      = "verification"
	TemplatePasswordReset     = "password_reset"
	TemplateInvite            = "invite"
	TemplateApproved          = "account_approved"
	TemplateRejected          = "account_rejected"
	TemplateSuspended         = "account_suspended"
	TemplateAdminNotification = "admin_notification"
)

// TemplateManager parses and renders the built-in html templates.
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}
	for name, body := range builtinTemplates {
		// Built-in templates are compile-time constants; a parse failure
		// is a programming error.
		if err := tm.AddTemplate(name, body); err != nil {
			panic(err)
		}
	}
	return tm
}

// Render renders a template with data.
func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// AddTemplate registers or replaces a template.
func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()

	return nil
}

var builtinTemplates = map[string]string{
	TemplateVerification: `<html><body>
<h2>Confirm your email</h2>
<p>Hi {{.Name}},</p>
<p>Please confirm your email address to activate your account:</p>
<p><a href="{{.Link}}">Confirm email</a></p>
</body></html>`,

	TemplatePasswordReset: `<html><body>
<h2>Reset your password</h2>
<p>Hi {{.Name}},</p>
<p>We received a request to reset your password. The link below is valid for one hour:</p>
<p><a href="{{.Link}}">Reset password</a></p>
<p>If you did not request this, you can ignore this email.</p>
</body></html>`,

	TemplateInvite: `<html><body>
<h2>Your account is ready</h2>
<p>Hi {{.Name}},</p>
<p>An account has been created for you. Follow the link below to set your password:</p>
<p><a href="{{.Link}}">Set password</a></p>
</body></html>`,

	TemplateApproved: `<html><body>
<h2>Account approved</h2>
<p>Hi {{.Name}},</p>
<p>Your account has been approved. You can now sign in and start working on your essays.</p>
</body></html>`,

	TemplateRejected: `<html><body>
<h2>Account review</h2>
<p>Hi {{.Name}},</p>
<p>We were not able to approve your account at this time.{{if .Reason}} Reason: {{.Reason}}{{end}}</p>
</body></html>`,

	TemplateSuspended: `<html><body>
<h2>Account suspended</h2>
<p>Hi {{.Name}},</p>
<p>Your account has been suspended.{{if .Reason}} Reason: {{.Reason}}{{end}} Contact support if you believe this is a mistake.</p>
</body></html>`,

	TemplateAdminNotification: `<html><body>
<h2>New signup pending review</h2>
<p>{{.Email}}{{if .Name}} ({{.Name}}){{end}} registered and is waiting for account approval.</p>
</body></html>`,
}
