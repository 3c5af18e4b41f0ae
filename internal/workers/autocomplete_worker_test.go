package workers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"essaylab_backend/internal/config"
)

func TestStaleCriteria(t *testing.T) {
	cfg := &config.Config{}
	cfg.Autocomplete.ExportedStaleHours = 12
	cfg.Autocomplete.IdleHours = 72

	worker := NewAutoCompleteWorker(cfg, nil, nil)

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	criteria := worker.StaleCriteria(now)

	assert.Equal(t, now.Add(-12*time.Hour), criteria.ExportedBefore)
	assert.Equal(t, now.Add(-72*time.Hour), criteria.IdleSince)
}
