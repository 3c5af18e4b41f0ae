package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAcceptanceRate(t *testing.T) {
	tests := []struct {
		name     string
		applied  int64
		total    int64
		expected string
	}{
		{"no events", 0, 0, "0"},
		{"three of five", 3, 5, "60.0"},
		{"all applied", 4, 4, "100.0"},
		{"one third rounds", 1, 3, "33.3"},
		{"two thirds rounds", 2, 3, "66.7"},
		{"none applied", 0, 7, "0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatAcceptanceRate(tt.applied, tt.total))
		})
	}
}

func TestMeanScore(t *testing.T) {
	tests := []struct {
		name     string
		sum      int64
		count    int64
		expected int
	}{
		{"no rows", 0, 0, 0},
		{"single row", 80, 1, 80},
		{"exact mean", 170, 2, 85},
		{"rounds down", 100, 3, 33},
		{"rounds up", 101, 3, 34},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MeanScore(tt.sum, tt.count))
		})
	}
}
