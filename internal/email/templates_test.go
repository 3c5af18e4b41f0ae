package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinTemplatesRender(t *testing.T) {
	tm := NewTemplateManager()

	data := TemplateData{
		"Name":   "Aruzhan",
		"Link":   "https://example.com/verify?token=abc",
		"Email":  "aruzhan@example.com",
		"Reason": "incomplete application",
	}

	for _, name := range []string{
		TemplateVerification,
		TemplatePasswordReset,
		TemplateInvite,
		TemplateApproved,
		TemplateRejected,
		TemplateSuspended,
		TemplateAdminNotification,
	} {
		t.Run(name, func(t *testing.T) {
			body, err := tm.Render(name, data)
			require.NoError(t, err)
			assert.NotEmpty(t, body)
		})
	}
}

func TestRenderSubstitutesData(t *testing.T) {
	tm := NewTemplateManager()

	body, err := tm.Render(TemplateVerification, TemplateData{
		"Name": "Dana",
		"Link": "https://example.com/verify?token=xyz",
	})
	require.NoError(t, err)
	assert.Contains(t, body, "Dana")
	assert.Contains(t, body, "token=xyz")
}

func TestRenderUnknownTemplate(t *testing.T) {
	tm := NewTemplateManager()

	_, err := tm.Render("no-such-template", TemplateData{})
	assert.Error(t, err)
}

func TestAddTemplateOverride(t *testing.T) {
	tm := NewTemplateManager()

	require.NoError(t, tm.AddTemplate("custom", "<p>Hi {{.Name}}</p>"))
	body, err := tm.Render("custom", TemplateData{"Name": "Alim"})
	require.NoError(t, err)
	assert.Equal(t, "<p>Hi Alim</p>", body)
}
