package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentHash(t *testing.T) {
	h1 := ContentHash("My college essay about resilience.")
	h2 := ContentHash("My college essay about resilience.")
	h3 := ContentHash("My college essay about resilience!")

	assert.Equal(t, h1, h2, "identical content must hash the same")
	assert.NotEqual(t, h1, h3, "a one-character change must change the hash")
	assert.NotEmpty(t, h1)
}

func TestContentHashEmpty(t *testing.T) {
	assert.NotEmpty(t, ContentHash(""))
}
