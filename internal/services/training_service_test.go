package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"essaylab_backend/internal/models"
)

func analysisWithAppliedPatch(t *testing.T) *models.EssayAnalysis {
	t.Helper()
	return &models.EssayAnalysis{
		ContentSnapshot:    "Hello world",
		Suggestions:        datatypes.JSON(`[{"id":"s1","location":{"start":0,"end":5},"originalText":"Hello","suggestion":"Hi"}]`),
		AppliedSuggestions: datatypes.JSON(`["s1"]`),
	}
}

func TestHasManualEditsCleanReplay(t *testing.T) {
	analysis := analysisWithAppliedPatch(t)

	// Final content is exactly the snapshot with the patch applied.
	manual, err := hasManualEdits(analysis, "Hi world")
	require.NoError(t, err)
	assert.False(t, manual)
}

func TestHasManualEditsDetectsHandEdits(t *testing.T) {
	analysis := analysisWithAppliedPatch(t)

	// The writer also changed "world" by hand after applying the patch.
	manual, err := hasManualEdits(analysis, "Hi planet")
	require.NoError(t, err)
	assert.True(t, manual)
}

func TestHasManualEditsFailedReplayMeansManual(t *testing.T) {
	analysis := analysisWithAppliedPatch(t)
	// A snapshot that no longer matches the patch span means the offsets
	// drifted through hand edits before the apply.
	analysis.ContentSnapshot = "Howdy world"

	manual, err := hasManualEdits(analysis, "Hi world")
	require.NoError(t, err)
	assert.True(t, manual)
}

func TestHasManualEditsNoAppliedSuggestions(t *testing.T) {
	analysis := &models.EssayAnalysis{
		ContentSnapshot: "Hello world",
		Suggestions:     datatypes.JSON(`[{"id":"s1","location":{"start":0,"end":5},"originalText":"Hello","suggestion":"Hi"}]`),
	}

	// Nothing applied: any difference from the snapshot is a manual edit.
	manual, err := hasManualEdits(analysis, "Hello world")
	require.NoError(t, err)
	assert.False(t, manual)

	manual, err = hasManualEdits(analysis, "Hello there")
	require.NoError(t, err)
	assert.True(t, manual)
}

func TestHasManualEditsMultiplePatchesReverseOrder(t *testing.T) {
	analysis := &models.EssayAnalysis{
		ContentSnapshot: "aaa bbb ccc",
		Suggestions: datatypes.JSON(`[
			{"id":"s1","location":{"start":0,"end":3},"originalText":"aaa","suggestion":"xx"},
			{"id":"s2","location":{"start":8,"end":11},"originalText":"ccc","suggestion":"zzzz"}
		]`),
		AppliedSuggestions: datatypes.JSON(`["s1","s2"]`),
	}

	// Splicing back to front keeps the earlier offsets valid even though
	// the replacements change the content length.
	manual, err := hasManualEdits(analysis, "xx bbb zzzz")
	require.NoError(t, err)
	assert.False(t, manual)
}
