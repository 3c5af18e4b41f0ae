// Package workers runs the periodic maintenance jobs: essay
// auto-completion, refresh-token cleanup and analysis-session sweeps.
package workers

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"

	"essaylab_backend/internal/config"
	"essaylab_backend/internal/logger"
	"essaylab_backend/internal/services"
)

// Scheduler owns the gocron instance and the job set.
type Scheduler struct {
	scheduler gocron.Scheduler
}

// NewScheduler builds the scheduler and registers every job. Jobs start
// running when Start is called.
func NewScheduler(cfg *config.Config, db *gorm.DB, trainingService services.TrainingService) (*Scheduler, error) {
	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
		gocron.WithLogger(logger.NewGocronLogger()),
	)
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	autoComplete := NewAutoCompleteWorker(cfg, db, trainingService)
	cleanup := NewCleanupWorker(cfg, db)

	interval := time.Duration(cfg.Autocomplete.IntervalMinutes) * time.Minute

	jobs := []struct {
		name     string
		interval time.Duration
		task     func()
	}{
		{"auto-complete-essays", interval, autoComplete.Run},
		{"cleanup-refresh-tokens", 1 * time.Hour, cleanup.CleanRefreshTokens},
		{"cleanup-analysis-sessions", 1 * time.Hour, cleanup.CleanAnalysisSessions},
	}

	for _, job := range jobs {
		_, err := s.NewJob(
			gocron.DurationJob(job.interval),
			gocron.NewTask(job.task),
			gocron.WithName(job.name),
		)
		if err != nil {
			return nil, fmt.Errorf("schedule job %q: %w", job.name, err)
		}
		logger.Info("job scheduled", "name", job.name, "interval", job.interval.String())
	}

	return &Scheduler{scheduler: s}, nil
}

func (s *Scheduler) Start() {
	s.scheduler.Start()
}

func (s *Scheduler) Stop() error {
	if err := s.scheduler.Shutdown(); err != nil {
		return fmt.Errorf("shutdown scheduler: %w", err)
	}
	return nil
}
