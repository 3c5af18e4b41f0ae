package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roleInput struct {
	Role string `json:"role" validate:"is-user-role"`
}

type essayStatusInput struct {
	Status string `json:"status" validate:"omitempty,is-essay-status"`
}

type variantInput struct {
	Variant string `json:"variant" validate:"is-english-variant"`
}

type scoreInput struct {
	Score int `json:"score" validate:"is-score"`
}

func TestUserRoleRule(t *testing.T) {
	v := New()

	for _, role := range []string{"free", "premium", "admin"} {
		assert.NoError(t, v.Validate(roleInput{Role: role}), role)
	}
	assert.Error(t, v.Validate(roleInput{Role: "superuser"}))
}

func TestEssayStatusRule(t *testing.T) {
	v := New()

	for _, status := range []string{"draft", "in_review", "completed", "archived"} {
		assert.NoError(t, v.Validate(essayStatusInput{Status: status}), status)
	}
	assert.NoError(t, v.Validate(essayStatusInput{}), "omitempty allows blank")
	assert.Error(t, v.Validate(essayStatusInput{Status: "published"}))
}

func TestEnglishVariantRule(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(variantInput{Variant: "american"}))
	assert.NoError(t, v.Validate(variantInput{Variant: "british"}))
	assert.Error(t, v.Validate(variantInput{Variant: "australian"}))
}

func TestScoreRule(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(scoreInput{Score: 0}))
	assert.NoError(t, v.Validate(scoreInput{Score: 100}))
	assert.Error(t, v.Validate(scoreInput{Score: 101}))
	assert.Error(t, v.Validate(scoreInput{Score: -5}))
}

func TestValidationErrorUsesJSONNames(t *testing.T) {
	v := New()

	err := v.Validate(roleInput{Role: "superuser"})
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Error(), "role")
}
