package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitParagraphs(t *testing.T) {
	content := "First paragraph.\n\n  Second paragraph.  \n\nThird."
	assert.Equal(t,
		[]string{"First paragraph.", "Second paragraph.", "Third."},
		splitParagraphs(content))
}

func TestSplitParagraphsEmpty(t *testing.T) {
	assert.Empty(t, splitParagraphs(""))
	assert.Empty(t, splitParagraphs("\n\n\n"))
}

func TestExportFileName(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		expected string
	}{
		{"plain title", "Why Architecture", "Why Architecture.docx"},
		{"empty title", "", "essay.docx"},
		{"slashes replaced", `Essays/Drafts\v2`, "Essays-Drafts-v2.docx"},
		{"quotes stripped", `My "final" draft`, "My final draft.docx"},
		{"newlines flattened", "Two\nlines", "Two lines.docx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, exportFileName(tt.title))
		})
	}
}
