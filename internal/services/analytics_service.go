package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"gorm.io/gorm"

	"essaylab_backend/internal/models"
	"essaylab_backend/internal/repositories"
	"essaylab_backend/internal/services/dto"
	"essaylab_backend/pkg/apperrors"
)

type AnalyticsService interface {
	PlatformStats(ctx context.Context, db *gorm.DB) (*dto.PlatformStats, error)
	EssayStats(ctx context.Context, db *gorm.DB, userID, essayID string) (*dto.EssayStats, error)
	ExportEventsCSV(ctx context.Context, db *gorm.DB, w io.Writer) error
	ExportScoresCSV(ctx context.Context, db *gorm.DB, w io.Writer) error
}

type analyticsService struct {
	userRepo      repositories.UserRepository
	essayRepo     repositories.EssayRepository
	analyticsRepo repositories.AnalyticsRepository
	portfolioRepo repositories.PortfolioRepository
	trainingRepo  repositories.TrainingRepository
}

func NewAnalyticsService(
	userRepo repositories.UserRepository,
	essayRepo repositories.EssayRepository,
	analyticsRepo repositories.AnalyticsRepository,
	portfolioRepo repositories.PortfolioRepository,
	trainingRepo repositories.TrainingRepository,
) AnalyticsService {
	return &analyticsService{
		userRepo:      userRepo,
		essayRepo:     essayRepo,
		analyticsRepo: analyticsRepo,
		portfolioRepo: portfolioRepo,
		trainingRepo:  trainingRepo,
	}
}

// FormatAcceptanceRate renders applied/total as a percentage with one
// decimal place, or the literal "0" when no events exist.
func FormatAcceptanceRate(applied, total int64) string {
	if total == 0 {
		return "0"
	}
	rate := float64(applied) / float64(total) * 100
	return strconv.FormatFloat(math.Round(rate*10)/10, 'f', 1, 64)
}

// MeanScore is the integer-rounded mean. With no rows the denominator
// defaults to 1, yielding 0 rather than a division error.
func MeanScore(sum int64, count int64) int {
	if count == 0 {
		count = 1
	}
	return int(math.Round(float64(sum) / float64(count)))
}

func (s *analyticsService) PlatformStats(ctx context.Context, db *gorm.DB) (*dto.PlatformStats, error) {
	stats := &dto.PlatformStats{}

	_, totalUsers, err := s.userRepo.FindWithFilter(db, repositories.UserFilter{Page: 1, PageSize: 1})
	if err != nil {
		return nil, apperrors.ErrDatabase(err)
	}
	stats.TotalUsers = totalUsers

	pending, err := s.userRepo.CountByStatus(db, models.AccountStatusPending)
	if err != nil {
		return nil, apperrors.ErrDatabase(err)
	}
	stats.PendingUsers = pending

	_, totalEssays, err := s.essayRepo.FindWithFilter(db, repositories.EssayFilter{Page: 1, PageSize: 1})
	if err != nil {
		return nil, apperrors.ErrDatabase(err)
	}
	stats.TotalEssays = totalEssays

	_, completed, err := s.essayRepo.FindWithFilter(db, repositories.EssayFilter{
		Status: models.EssayStatusCompleted, Page: 1, PageSize: 1,
	})
	if err != nil {
		return nil, apperrors.ErrDatabase(err)
	}
	stats.CompletedEssays = completed

	events, err := s.analyticsRepo.FindAllEvents(db)
	if err != nil {
		return nil, apperrors.ErrDatabase(err)
	}
	for i := range events {
		switch events[i].Action {
		case models.SuggestionApplied:
			stats.AppliedCount++
		case models.SuggestionDismissed:
			stats.DismissedCount++
		}
	}
	stats.TotalSuggestions = stats.AppliedCount + stats.DismissedCount
	stats.AcceptanceRate = FormatAcceptanceRate(stats.AppliedCount, stats.TotalSuggestions)

	scores, err := s.analyticsRepo.FindAllScores(db)
	if err != nil {
		return nil, apperrors.ErrDatabase(err)
	}
	var initialSum, initialCount, improvedSum, improvedCount int64
	for i := range scores {
		switch scores[i].ScoreType {
		case models.ScoreTypeInitial:
			initialSum += int64(scores[i].Overall)
			initialCount++
		case models.ScoreTypeAfterEdits:
			improvedSum += int64(scores[i].Overall)
			improvedCount++
		}
	}
	stats.AvgInitialScore = MeanScore(initialSum, initialCount)
	stats.AvgImprovedScore = MeanScore(improvedSum, improvedCount)

	_, refs, err := s.portfolioRepo.FindAll(db, 1, 0)
	if err != nil {
		return nil, apperrors.ErrDatabase(err)
	}
	stats.ReferenceEssays = refs

	_, pendingTraining, err := s.trainingRepo.FindByStatus(db, models.TrainingStatusPendingReview, 1, 0)
	if err != nil {
		return nil, apperrors.ErrDatabase(err)
	}
	stats.PendingTraining = pendingTraining

	return stats, nil
}

func (s *analyticsService) EssayStats(ctx context.Context, db *gorm.DB, userID, essayID string) (*dto.EssayStats, error) {
	essay, err := s.essayRepo.FindByID(db, essayID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	if essay.UserID != userID {
		return nil, apperrors.ErrNotFound(repositories.ErrEssayNotFound)
	}

	events, err := s.analyticsRepo.FindEvents(db, essayID)
	if err != nil {
		return nil, apperrors.ErrDatabase(err)
	}

	stats := &dto.EssayStats{
		EssayID: essayID,
		ByType:  make(map[string]int),
	}
	for i := range events {
		stats.ByType[events[i].SuggestionType]++
		switch events[i].Action {
		case models.SuggestionApplied:
			stats.AppliedCount++
		case models.SuggestionDismissed:
			stats.DismissedCount++
		}
	}
	stats.AcceptanceRate = FormatAcceptanceRate(stats.AppliedCount, stats.AppliedCount+stats.DismissedCount)
	return stats, nil
}

func (s *analyticsService) ExportEventsCSV(ctx context.Context, db *gorm.DB, w io.Writer) error {
	events, err := s.analyticsRepo.FindAllEvents(db)
	if err != nil {
		return apperrors.ErrDatabase(err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "essay_id", "user_id", "suggestion_id", "action", "suggestion_type", "created_at"}); err != nil {
		return apperrors.InternalError(err)
	}
	for i := range events {
		e := &events[i]
		row := []string{
			e.ID, e.EssayID, e.UserID, e.SuggestionID,
			string(e.Action), e.SuggestionType,
			e.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		}
		if err := cw.Write(row); err != nil {
			return apperrors.InternalError(err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *analyticsService) ExportScoresCSV(ctx context.Context, db *gorm.DB, w io.Writer) error {
	scores, err := s.analyticsRepo.FindAllScores(db)
	if err != nil {
		return apperrors.ErrDatabase(err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "essay_id", "score_type", "overall", "clarity", "impact", "authenticity", "coherence", "created_at"}); err != nil {
		return apperrors.InternalError(err)
	}
	for i := range scores {
		sc := &scores[i]
		row := []string{
			sc.ID, sc.EssayID, string(sc.ScoreType),
			fmt.Sprintf("%d", sc.Overall),
			fmt.Sprintf("%d", sc.Clarity),
			fmt.Sprintf("%d", sc.Impact),
			fmt.Sprintf("%d", sc.Authenticity),
			fmt.Sprintf("%d", sc.Coherence),
			sc.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		}
		if err := cw.Write(row); err != nil {
			return apperrors.InternalError(err)
		}
	}
	cw.Flush()
	return cw.Error()
}
