package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"essaylab_backend/internal/logger"
	"essaylab_backend/internal/models"
	"essaylab_backend/internal/repositories"
	"essaylab_backend/internal/services/dto"
	"essaylab_backend/pkg/apperrors"
)

type SuggestionService interface {
	Apply(ctx context.Context, db *gorm.DB, userID, essayID string, req *dto.ApplySuggestionRequest) (*dto.ApplySuggestionResponse, error)
	Dismiss(ctx context.Context, db *gorm.DB, userID, essayID string, req *dto.DismissSuggestionRequest) error
}

type suggestionService struct {
	essayRepo     repositories.EssayRepository
	analysisRepo  repositories.AnalysisRepository
	analyticsRepo repositories.AnalyticsRepository
	publisher     EventPublisher
}

func NewSuggestionService(
	essayRepo repositories.EssayRepository,
	analysisRepo repositories.AnalysisRepository,
	analyticsRepo repositories.AnalyticsRepository,
	publisher EventPublisher,
) SuggestionService {
	return &suggestionService{
		essayRepo:     essayRepo,
		analysisRepo:  analysisRepo,
		analyticsRepo: analyticsRepo,
		publisher:     publisher,
	}
}

// ApplyPatch splices one suggestion into content. The span must still hold
// the exact original text; anything else means the offsets have drifted and
// the patch is refused.
func ApplyPatch(content string, sug *models.Suggestion) (string, error) {
	start, end := sug.Location.Start, sug.Location.End
	if start < 0 || end < start || end > len(content) {
		return "", apperrors.ErrStaleSuggestion
	}
	if content[start:end] != sug.OriginalText {
		return "", apperrors.ErrStaleSuggestion
	}
	return content[:start] + sug.Suggestion + content[end:], nil
}

func (s *suggestionService) Apply(ctx context.Context, db *gorm.DB, userID, essayID string, req *dto.ApplySuggestionRequest) (*dto.ApplySuggestionResponse, error) {
	essay, analysis, err := s.load(db, userID, essayID)
	if err != nil {
		return nil, err
	}

	sug, err := findSuggestion(analysis, req.SuggestionID)
	if err != nil {
		return nil, err
	}

	applied, err := decodeIDSet(analysis.AppliedSuggestions)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Re-applying an already-applied id must not splice twice.
	if _, ok := applied[req.SuggestionID]; ok {
		return &dto.ApplySuggestionResponse{
			Content:      req.Content,
			SuggestionID: req.SuggestionID,
		}, nil
	}

	patched, err := ApplyPatch(req.Content, sug)
	if err != nil {
		return nil, err
	}

	applied[req.SuggestionID] = struct{}{}
	appliedJSON, err := encodeIDSet(applied)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	analysis.AppliedSuggestions = appliedJSON

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.essayRepo.UpdateContent(tx, essayID, patched); err != nil {
			return err
		}
		if err := s.analysisRepo.Update(tx, analysis); err != nil {
			return err
		}
		return s.analyticsRepo.CreateEvent(tx, &models.EssayAnalytics{
			EssayID:        essayID,
			UserID:         essay.UserID,
			SuggestionID:   sug.ID,
			Action:         models.SuggestionApplied,
			SuggestionType: sug.Type,
		})
	})
	if err != nil {
		return nil, apperrors.ErrDatabase(err)
	}

	logger.CtxInfo(ctx, "suggestion applied", "essay_id", essayID, "suggestion_id", sug.ID)
	s.publisher.Publish(essayID, "essay_updated", map[string]string{"essay_id": essayID})

	return &dto.ApplySuggestionResponse{
		Content:      patched,
		SuggestionID: sug.ID,
	}, nil
}

func (s *suggestionService) Dismiss(ctx context.Context, db *gorm.DB, userID, essayID string, req *dto.DismissSuggestionRequest) error {
	essay, analysis, err := s.load(db, userID, essayID)
	if err != nil {
		return err
	}

	sug, err := findSuggestion(analysis, req.SuggestionID)
	if err != nil {
		return err
	}

	dismissed, err := decodeIDSet(analysis.DismissedSuggestions)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if _, ok := dismissed[req.SuggestionID]; ok {
		return nil
	}

	dismissed[req.SuggestionID] = struct{}{}
	dismissedJSON, err := encodeIDSet(dismissed)
	if err != nil {
		return apperrors.InternalError(err)
	}
	analysis.DismissedSuggestions = dismissedJSON

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.analysisRepo.Update(tx, analysis); err != nil {
			return err
		}
		return s.analyticsRepo.CreateEvent(tx, &models.EssayAnalytics{
			EssayID:        essayID,
			UserID:         essay.UserID,
			SuggestionID:   sug.ID,
			Action:         models.SuggestionDismissed,
			SuggestionType: sug.Type,
		})
	})
	if err != nil {
		return apperrors.ErrDatabase(err)
	}

	logger.CtxInfo(ctx, "suggestion dismissed", "essay_id", essayID, "suggestion_id", sug.ID)
	return nil
}

func (s *suggestionService) load(db *gorm.DB, userID, essayID string) (*models.Essay, *models.EssayAnalysis, error) {
	essay, err := s.essayRepo.FindByID(db, essayID)
	if err != nil {
		if errors.Is(err, repositories.ErrEssayNotFound) {
			return nil, nil, apperrors.ErrNotFound(err)
		}
		return nil, nil, apperrors.ErrDatabase(err)
	}
	if essay.UserID != userID {
		return nil, nil, apperrors.ErrNotFound(repositories.ErrEssayNotFound)
	}

	analysis, err := s.analysisRepo.FindLatestByEssay(db, essayID)
	if err != nil {
		if errors.Is(err, repositories.ErrAnalysisNotFound) {
			return nil, nil, apperrors.ErrNotFound(err)
		}
		return nil, nil, apperrors.ErrDatabase(err)
	}

	return essay, analysis, nil
}

func findSuggestion(analysis *models.EssayAnalysis, suggestionID string) (*models.Suggestion, error) {
	suggestions, err := DecodeSuggestions(analysis.Suggestions)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	for i := range suggestions {
		if suggestions[i].ID == suggestionID {
			return &suggestions[i], nil
		}
	}
	return nil, apperrors.ErrNotFound(fmt.Errorf("suggestion %s not found", suggestionID))
}

// DecodeSuggestions parses the stored suggestions column.
func DecodeSuggestions(raw datatypes.JSON) ([]models.Suggestion, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var suggestions []models.Suggestion
	if err := json.Unmarshal(raw, &suggestions); err != nil {
		return nil, fmt.Errorf("decode suggestions: %w", err)
	}
	return suggestions, nil
}

func decodeIDSet(raw datatypes.JSON) (map[string]struct{}, error) {
	set := make(map[string]struct{})
	if len(raw) == 0 {
		return set, nil
	}
	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("decode id set: %w", err)
	}
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

func encodeIDSet(set map[string]struct{}) (datatypes.JSON, error) {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}

// DecodeIDList returns the stored set as a slice for responses.
func DecodeIDList(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return []string{}
	}
	return ids
}
