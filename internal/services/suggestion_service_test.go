package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"essaylab_backend/internal/models"
	"essaylab_backend/pkg/apperrors"
)

func TestApplyPatch(t *testing.T) {
	sug := &models.Suggestion{
		ID:           "s1",
		Location:     models.SuggestionLocation{Start: 0, End: 5},
		OriginalText: "Hello",
		Suggestion:   "Hi",
	}

	result, err := ApplyPatch("Hello world", sug)
	require.NoError(t, err)
	assert.Equal(t, "Hi world", result)
}

func TestApplyPatchMidContent(t *testing.T) {
	sug := &models.Suggestion{
		ID:           "s2",
		Location:     models.SuggestionLocation{Start: 6, End: 11},
		OriginalText: "world",
		Suggestion:   "there",
	}

	result, err := ApplyPatch("Hello world!", sug)
	require.NoError(t, err)
	assert.Equal(t, "Hello there!", result)
}

func TestApplyPatchStaleContent(t *testing.T) {
	sug := &models.Suggestion{
		ID:           "s1",
		Location:     models.SuggestionLocation{Start: 0, End: 5},
		OriginalText: "Hello",
		Suggestion:   "Hi",
	}

	// The essay changed under the suggestion; the span no longer matches.
	_, err := ApplyPatch("Howdy world", sug)
	assert.ErrorIs(t, err, apperrors.ErrStaleSuggestion)
}

func TestApplyPatchOutOfBounds(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
	}{
		{"negative start", -1, 5},
		{"end before start", 5, 2},
		{"end past content", 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sug := &models.Suggestion{
				Location:     models.SuggestionLocation{Start: tt.start, End: tt.end},
				OriginalText: "Hello",
			}
			_, err := ApplyPatch("Hello world", sug)
			assert.ErrorIs(t, err, apperrors.ErrStaleSuggestion)
		})
	}
}

func TestApplyPatchEmptyReplacement(t *testing.T) {
	sug := &models.Suggestion{
		Location:     models.SuggestionLocation{Start: 5, End: 11},
		OriginalText: " world",
		Suggestion:   "",
	}

	result, err := ApplyPatch("Hello world", sug)
	require.NoError(t, err)
	assert.Equal(t, "Hello", result)
}

func TestDecodeSuggestions(t *testing.T) {
	raw := datatypes.JSON(`[{"id":"s1","type":"grammar","severity":"minor","location":{"start":0,"end":5},"originalText":"Hello","suggestion":"Hi","rationale":"shorter"}]`)

	suggestions, err := DecodeSuggestions(raw)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "s1", suggestions[0].ID)
	assert.Equal(t, "grammar", suggestions[0].Type)
	assert.Equal(t, 5, suggestions[0].Location.End)
}

func TestDecodeSuggestionsEmpty(t *testing.T) {
	suggestions, err := DecodeSuggestions(nil)
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}

func TestIDSetRoundTrip(t *testing.T) {
	set := map[string]struct{}{"a": {}, "b": {}}

	raw, err := encodeIDSet(set)
	require.NoError(t, err)

	decoded, err := decodeIDSet(raw)
	require.NoError(t, err)
	assert.Equal(t, set, decoded)
}

func TestDecodeIDSetEmpty(t *testing.T) {
	decoded, err := decodeIDSet(nil)
	require.NoError(t, err)
	assert.Empty(t, decoded)
}
