package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"essaylab_backend/internal/models"
)

const feedbackInstruction = `You are an experienced college-application essay editor. ` +
	`You review one applicant essay and return concrete, minimal edit suggestions plus benchmark scores. ` +
	`Each suggestion must target an exact span of the essay: report the byte offsets of the span, quote the ` +
	`original text exactly as it appears, and propose replacement text. Never rewrite the whole essay. ` +
	`Score the essay 0-100 on overall quality, clarity, impact, authenticity and coherence, benchmarked ` +
	`against the reference essays provided.`

const portfolioParseInstruction = `You extract structured fields from a successful college-application essay ` +
	`document. Identify the title, target college and programme, the essay body (verbatim, without headers or ` +
	`metadata), an estimated performance score 0-100, and the key strategies the essay uses.`

const resumeParseInstruction = `You extract structured resume fields from raw text: the person's name, ` +
	`education entries, extracurricular activities, awards, and skills, plus a one-paragraph summary. ` +
	`Copy facts verbatim where possible; never invent entries.`

// BuildFeedbackPrompt assembles the user message for the feedback task:
// target context, english variant, the retrieval context, then the essay.
func BuildFeedbackPrompt(req AnalyzeRequest) string {
	var b strings.Builder

	if req.CollegeName != "" || req.ProgrammeName != "" {
		b.WriteString("## TARGET\n")
		if req.CollegeName != "" {
			fmt.Fprintf(&b, "College: %s\n", req.CollegeName)
		}
		if req.ProgrammeName != "" {
			fmt.Fprintf(&b, "Programme: %s\n", req.ProgrammeName)
		}
		b.WriteString("\n")
	}

	variant := req.EnglishVariant
	if variant == "" {
		variant = models.EnglishAmerican
	}
	fmt.Fprintf(&b, "Use %s English spelling and conventions in all suggestion text.\n\n", variant)

	if len(req.References) > 0 {
		b.WriteString("## REFERENCE ESSAYS (successful submissions for this target)\n")
		for i, ref := range req.References {
			fmt.Fprintf(&b, "\n### Reference %d: %s (score %d)\n", i+1, ref.Title, ref.Score)
			if len(ref.KeyStrategies) > 0 {
				fmt.Fprintf(&b, "Key strategies: %s\n", strings.Join(ref.KeyStrategies, "; "))
			}
			b.WriteString(ref.Content)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("## ESSAY TO REVIEW\n")
	b.WriteString(req.Content)

	return b.String()
}

// Tool schemas. The gateway is forced to call these, which is how we get
// structured JSON back instead of prose.

func feedbackToolSchema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"suggestions": {
				"type": "array",
				"items": {
					"type": "object",
					"properties": {
						"type": {"type": "string", "enum": ["grammar", "style", "structure", "content", "tone"]},
						"severity": {"type": "string", "enum": ["low", "medium", "high"]},
						"location": {
							"type": "object",
							"properties": {
								"start": {"type": "integer"},
								"end": {"type": "integer"}
							},
							"required": ["start", "end"]
						},
						"originalText": {"type": "string"},
						"suggestion": {"type": "string"},
						"rationale": {"type": "string"}
					},
					"required": ["type", "location", "originalText", "suggestion", "rationale"]
				}
			},
			"scores": {
				"type": "object",
				"properties": {
					"overall": {"type": "integer"},
					"clarity": {"type": "integer"},
					"impact": {"type": "integer"},
					"authenticity": {"type": "integer"},
					"coherence": {"type": "integer"}
				},
				"required": ["overall", "clarity", "impact", "authenticity", "coherence"]
			},
			"summary": {"type": "string"}
		},
		"required": ["suggestions", "scores"]
	}`)
}

func portfolioToolSchema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"title": {"type": "string"},
			"college": {"type": "string"},
			"programme": {"type": "string"},
			"content": {"type": "string"},
			"performanceScore": {"type": "integer"},
			"keyStrategies": {"type": "array", "items": {"type": "string"}}
		},
		"required": ["title", "content"]
	}`)
}

func resumeToolSchema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"fullName": {"type": "string"},
			"education": {"type": "array", "items": {"type": "string"}},
			"activities": {"type": "array", "items": {"type": "string"}},
			"awards": {"type": "array", "items": {"type": "string"}},
			"skills": {"type": "array", "items": {"type": "string"}},
			"summary": {"type": "string"}
		},
		"required": ["fullName"]
	}`)
}
