package llm

import "essaylab_backend/internal/models"

// ReferenceEssay is one retrieval-context entry: a curated successful
// essay for the same target, injected into the analysis prompt.
type ReferenceEssay struct {
	Title         string
	Content       string
	Score         int
	KeyStrategies []string
}

// AnalyzeRequest carries everything the feedback task needs.
type AnalyzeRequest struct {
	Content        string
	CollegeName    string
	ProgrammeName  string
	EnglishVariant models.EnglishVariant
	References     []ReferenceEssay
}

// ScoreSet is the benchmark scoring returned alongside suggestions.
type ScoreSet struct {
	Overall      int `json:"overall"`
	Clarity      int `json:"clarity"`
	Impact       int `json:"impact"`
	Authenticity int `json:"authenticity"`
	Coherence    int `json:"coherence"`
}

// AnalyzeResult is the structured output of the essay feedback task.
type AnalyzeResult struct {
	Suggestions []models.Suggestion `json:"suggestions"`
	Scores      ScoreSet            `json:"scores"`
	Summary     string              `json:"summary"`
}

// ParsedPortfolioEssay is the field extraction for portfolio ingest.
type ParsedPortfolioEssay struct {
	Title            string   `json:"title"`
	College          string   `json:"college"`
	Programme        string   `json:"programme"`
	Content          string   `json:"content"`
	PerformanceScore int      `json:"performanceScore"`
	KeyStrategies    []string `json:"keyStrategies"`
}

// ParsedResume is the field extraction for resume/CV ingest.
type ParsedResume struct {
	FullName   string   `json:"fullName"`
	Education  []string `json:"education"`
	Activities []string `json:"activities"`
	Awards     []string `json:"awards"`
	Skills     []string `json:"skills"`
	Summary    string   `json:"summary"`
}
