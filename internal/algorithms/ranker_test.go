package algorithms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"essaylab_backend/internal/models"
)

func strPtr(s string) *string { return &s }

func TestRelevanceScoreProgrammeBeatsCollege(t *testing.T) {
	essay := &models.Essay{
		CollegeID:   strPtr("col-1"),
		ProgrammeID: strPtr("prog-1"),
	}

	programmeMatch := &models.SuccessfulEssay{ProgrammeID: strPtr("prog-1")}
	collegeMatch := &models.SuccessfulEssay{CollegeID: strPtr("col-1")}

	programmeScore, _ := RelevanceScore(essay, programmeMatch)
	collegeScore, _ := RelevanceScore(essay, collegeMatch)
	assert.Greater(t, programmeScore, collegeScore)
}

func TestRelevanceScoreFreeTextCollege(t *testing.T) {
	essay := &models.Essay{CustomCollege: "Imperial College"}
	ref := &models.SuccessfulEssay{CustomCollege: "imperial college"}

	score, reasons := RelevanceScore(essay, ref)
	assert.Greater(t, score, 0.0)
	assert.Contains(t, reasons, "Same free-text college")
}

func TestRelevanceScorePerformanceCap(t *testing.T) {
	essay := &models.Essay{}
	ref := &models.SuccessfulEssay{PerformanceScore: 250}

	score, _ := RelevanceScore(essay, ref)
	assert.Equal(t, 25.0, score, "performance contribution caps at 25 points")
}

func TestRankReferencesOrdersByRelevance(t *testing.T) {
	essay := &models.Essay{
		CollegeID:   strPtr("col-1"),
		ProgrammeID: strPtr("prog-1"),
	}

	candidates := []models.SuccessfulEssay{
		{Title: "unrelated", PerformanceScore: 90},
		{Title: "same programme", ProgrammeID: strPtr("prog-1"), PerformanceScore: 60},
		{Title: "same college", CollegeID: strPtr("col-1"), PerformanceScore: 70},
	}

	ranked := RankReferences(essay, candidates, 2)
	require.Len(t, ranked, 2)
	assert.Equal(t, "same programme", ranked[0].Title)
	assert.Equal(t, "same college", ranked[1].Title)
}

func TestRankReferencesTieBreaksOnPerformance(t *testing.T) {
	essay := &models.Essay{ProgrammeID: strPtr("prog-1")}

	candidates := []models.SuccessfulEssay{
		{Title: "weaker", ProgrammeID: strPtr("prog-1"), PerformanceScore: 70},
		{Title: "stronger", ProgrammeID: strPtr("prog-1"), PerformanceScore: 95},
	}

	ranked := RankReferences(essay, candidates, 2)
	require.Len(t, ranked, 2)
	assert.Equal(t, "stronger", ranked[0].Title)
}

func TestRankReferencesLimits(t *testing.T) {
	essay := &models.Essay{}
	candidates := []models.SuccessfulEssay{{Title: "a"}, {Title: "b"}}

	assert.Len(t, RankReferences(essay, candidates, 1), 1)
	assert.Len(t, RankReferences(essay, candidates, 10), 2)
	assert.Nil(t, RankReferences(essay, nil, 3))
	assert.Nil(t, RankReferences(essay, candidates, 0))
}
