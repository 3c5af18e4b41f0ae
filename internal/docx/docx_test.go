package docx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAndExtractRoundTrip(t *testing.T) {
	doc := Document{
		Title: "Why Architecture",
		Paragraphs: []string{
			"My first paragraph about buildings.",
			"My second paragraph about cities.",
		},
	}

	data, err := Build(doc)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	text, err := ExtractText(data)
	require.NoError(t, err)
	assert.Contains(t, text, "Why Architecture")
	assert.Contains(t, text, "My first paragraph about buildings.")
	assert.Contains(t, text, "My second paragraph about cities.")
}

func TestBuildEscapesMarkup(t *testing.T) {
	doc := Document{
		Title:      "Essays & Edits",
		Paragraphs: []string{`He said "less <is> more".`},
	}

	data, err := Build(doc)
	require.NoError(t, err)

	text, err := ExtractText(data)
	require.NoError(t, err)
	assert.Contains(t, text, "Essays & Edits")
	assert.Contains(t, text, `He said "less <is> more".`)
}

func TestBuildIncludesFeedbackSection(t *testing.T) {
	doc := Document{
		Title:      "Draft",
		Paragraphs: []string{"Body text."},
		Feedback: []FeedbackItem{
			{
				Type:       "clarity",
				Original:   "Body text.",
				Suggestion: "Clearer body text.",
				Rationale:  "More specific.",
			},
		},
	}

	data, err := Build(doc)
	require.NoError(t, err)

	text, err := ExtractText(data)
	require.NoError(t, err)
	assert.Contains(t, text, "Editorial Feedback")
	assert.Contains(t, text, "Clearer body text.")
	assert.Contains(t, text, "More specific.")
}

func TestExtractTextParagraphBreaks(t *testing.T) {
	doc := Document{
		Title:      "Title",
		Paragraphs: []string{"one", "two"},
	}

	data, err := Build(doc)
	require.NoError(t, err)

	text, err := ExtractText(data)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(text), "\n")
	assert.GreaterOrEqual(t, len(lines), 3, "title and paragraphs should land on separate lines")
}

func TestExtractTextRejectsGarbage(t *testing.T) {
	_, err := ExtractText([]byte("not a zip archive"))
	assert.Error(t, err)
}
