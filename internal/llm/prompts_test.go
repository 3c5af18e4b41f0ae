package llm

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"essaylab_backend/internal/models"
)

func TestBuildFeedbackPromptIncludesTarget(t *testing.T) {
	prompt := BuildFeedbackPrompt(AnalyzeRequest{
		Content:        "My essay content.",
		CollegeName:    "Nazarbayev University",
		ProgrammeName:  "Computer Science",
		EnglishVariant: models.EnglishBritish,
	})

	assert.Contains(t, prompt, "Nazarbayev University")
	assert.Contains(t, prompt, "Computer Science")
	assert.Contains(t, prompt, string(models.EnglishBritish))
	assert.Contains(t, prompt, "My essay content.")
}

func TestBuildFeedbackPromptDefaultsToAmericanEnglish(t *testing.T) {
	prompt := BuildFeedbackPrompt(AnalyzeRequest{Content: "text"})
	assert.Contains(t, prompt, string(models.EnglishAmerican))
}

func TestBuildFeedbackPromptOmitsEmptyTarget(t *testing.T) {
	prompt := BuildFeedbackPrompt(AnalyzeRequest{Content: "text"})
	assert.NotContains(t, prompt, "## TARGET")
}

func TestBuildFeedbackPromptReferences(t *testing.T) {
	prompt := BuildFeedbackPrompt(AnalyzeRequest{
		Content: "text",
		References: []ReferenceEssay{
			{
				Title:         "Winning Essay",
				Content:       "Reference body.",
				Score:         92,
				KeyStrategies: []string{"specific anecdote", "clear arc"},
			},
		},
	})

	assert.Contains(t, prompt, "Winning Essay")
	assert.Contains(t, prompt, "score 92")
	assert.Contains(t, prompt, "specific anecdote; clear arc")
	assert.Contains(t, prompt, "Reference body.")
}

func TestBuildFeedbackPromptEssayComesLast(t *testing.T) {
	prompt := BuildFeedbackPrompt(AnalyzeRequest{
		Content:    "THE ESSAY",
		References: []ReferenceEssay{{Title: "r", Content: "REF BODY"}},
	})

	assert.Greater(t, strings.Index(prompt, "THE ESSAY"), strings.Index(prompt, "REF BODY"))
}

func TestToolSchemasAreValidJSON(t *testing.T) {
	for name, raw := range map[string]json.RawMessage{
		"feedback":  feedbackToolSchema(),
		"portfolio": portfolioToolSchema(),
		"resume":    resumeToolSchema(),
	} {
		t.Run(name, func(t *testing.T) {
			var decoded map[string]interface{}
			require.NoError(t, json.Unmarshal(raw, &decoded))
			assert.NotEmpty(t, decoded)
		})
	}
}
