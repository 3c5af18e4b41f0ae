package workers

import (
	"time"

	"gorm.io/gorm"

	"essaylab_backend/internal/config"
	"essaylab_backend/internal/logger"
	"essaylab_backend/internal/repositories"
)

// CleanupWorker sweeps expired refresh tokens and finished analysis
// sessions past their TTL.
type CleanupWorker struct {
	cfg          *config.Config
	db           *gorm.DB
	userRepo     repositories.UserRepository
	analysisRepo repositories.AnalysisRepository
}

func NewCleanupWorker(cfg *config.Config, db *gorm.DB) *CleanupWorker {
	return &CleanupWorker{
		cfg:          cfg,
		db:           db,
		userRepo:     repositories.NewUserRepository(),
		analysisRepo: repositories.NewAnalysisRepository(),
	}
}

func (w *CleanupWorker) CleanRefreshTokens() {
	count, err := w.userRepo.CleanExpiredRefreshTokens(w.db)
	if err != nil {
		logger.WorkerLog("cleanup-refresh-tokens", "delete expired tokens", err)
		return
	}
	if count > 0 {
		logger.Info("expired refresh tokens removed", "count", count)
	}
}

func (w *CleanupWorker) CleanAnalysisSessions() {
	cutoff := time.Now().Add(-time.Duration(w.cfg.Analysis.SessionTTLMinute) * time.Minute)
	count, err := w.analysisRepo.DeleteExpiredSessions(w.db, cutoff)
	if err != nil {
		logger.WorkerLog("cleanup-analysis-sessions", "delete expired sessions", err)
		return
	}
	if count > 0 {
		logger.Info("expired analysis sessions removed", "count", count)
	}
}
