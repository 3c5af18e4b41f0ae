package workers

import (
	"context"
	"time"

	"gorm.io/gorm"

	"essaylab_backend/internal/config"
	"essaylab_backend/internal/logger"
	"essaylab_backend/internal/models"
	"essaylab_backend/internal/repositories"
	"essaylab_backend/internal/services"
)

// AutoCompleteWorker marks abandoned essays as completed: exported long
// enough ago, or never exported and idle past the longer cutoff.
type AutoCompleteWorker struct {
	cfg             *config.Config
	db              *gorm.DB
	essayRepo       repositories.EssayRepository
	trainingService services.TrainingService
}

func NewAutoCompleteWorker(cfg *config.Config, db *gorm.DB, trainingService services.TrainingService) *AutoCompleteWorker {
	return &AutoCompleteWorker{
		cfg:             cfg,
		db:              db,
		essayRepo:       repositories.NewEssayRepository(),
		trainingService: trainingService,
	}
}

// StaleCriteria computes the batch cutoffs from the configured thresholds.
func (w *AutoCompleteWorker) StaleCriteria(now time.Time) repositories.StaleEssayCriteria {
	return repositories.StaleEssayCriteria{
		ExportedBefore: now.Add(-time.Duration(w.cfg.Autocomplete.ExportedStaleHours) * time.Hour),
		IdleSince:      now.Add(-time.Duration(w.cfg.Autocomplete.IdleHours) * time.Hour),
	}
}

// Run processes one batch. Rows are handled one at a time; a failing row
// is logged and counted, the rest of the batch still runs.
func (w *AutoCompleteWorker) Run() {
	ctx := context.Background()
	start := time.Now()

	essays, err := w.essayRepo.FindStale(w.db, w.StaleCriteria(start))
	if err != nil {
		logger.WorkerLog("auto-complete-essays", "find stale essays", err)
		return
	}

	var processed, failed int
	for i := range essays {
		if err := w.completeOne(ctx, &essays[i]); err != nil {
			failed++
			logger.WithError(err).Error("auto-complete failed for essay", "essay_id", essays[i].ID)
			continue
		}
		processed++
	}

	logger.Info("auto-complete run finished",
		"processed", processed,
		"failed", failed,
		"duration", time.Since(start).String())
}

func (w *AutoCompleteWorker) completeOne(ctx context.Context, essay *models.Essay) error {
	if err := w.essayRepo.UpdateStatus(w.db, essay.ID, models.EssayStatusCompleted); err != nil {
		return err
	}
	essay.Status = models.EssayStatusCompleted

	// Completion feeds the training queue here too, same as a manual
	// status change.
	if err := w.trainingService.CreateSnapshot(ctx, w.db, essay); err != nil {
		logger.WithError(err).Warn("training snapshot failed during auto-complete", "essay_id", essay.ID)
	}
	return nil
}
