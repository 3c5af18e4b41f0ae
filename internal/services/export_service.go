package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"essaylab_backend/internal/docx"
	"essaylab_backend/internal/logger"
	"essaylab_backend/internal/repositories"
	"essaylab_backend/pkg/apperrors"
)

// ExportResult is the rendered file plus the name the browser should save
// it under.
type ExportResult struct {
	FileName string
	Data     []byte
}

type ExportService interface {
	ExportDocx(ctx context.Context, db *gorm.DB, userID, essayID string) (*ExportResult, error)
}

type exportService struct {
	essayRepo    repositories.EssayRepository
	analysisRepo repositories.AnalysisRepository
}

func NewExportService(essayRepo repositories.EssayRepository, analysisRepo repositories.AnalysisRepository) ExportService {
	return &exportService{essayRepo: essayRepo, analysisRepo: analysisRepo}
}

// ExportDocx renders the essay with its outstanding suggestions appended
// as an editorial-feedback section, and stamps last_exported_at.
func (s *exportService) ExportDocx(ctx context.Context, db *gorm.DB, userID, essayID string) (*ExportResult, error) {
	essay, err := s.essayRepo.FindByID(db, essayID)
	if err != nil {
		if errors.Is(err, repositories.ErrEssayNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.ErrDatabase(err)
	}
	if essay.UserID != userID {
		return nil, apperrors.ErrNotFound(repositories.ErrEssayNotFound)
	}

	doc := docx.Document{
		Title:      essay.Title,
		Paragraphs: splitParagraphs(essay.Content),
		Feedback:   s.outstandingFeedback(db, essayID),
	}

	data, err := docx.Build(doc)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.essayRepo.MarkExported(db, essayID, time.Now()); err != nil {
		return nil, apperrors.ErrDatabase(err)
	}

	logger.CtxInfo(ctx, "essay exported", "essay_id", essayID)
	return &ExportResult{
		FileName: exportFileName(essay.Title),
		Data:     data,
	}, nil
}

// outstandingFeedback lists suggestions from the latest analysis that the
// writer neither applied nor dismissed. Export works fine without any
// analysis; the section is simply omitted.
func (s *exportService) outstandingFeedback(db *gorm.DB, essayID string) []docx.FeedbackItem {
	analysis, err := s.analysisRepo.FindLatestByEssay(db, essayID)
	if err != nil {
		return nil
	}

	suggestions, err := DecodeSuggestions(analysis.Suggestions)
	if err != nil {
		return nil
	}
	applied, err := decodeIDSet(analysis.AppliedSuggestions)
	if err != nil {
		return nil
	}
	dismissed, err := decodeIDSet(analysis.DismissedSuggestions)
	if err != nil {
		return nil
	}

	var items []docx.FeedbackItem
	for i := range suggestions {
		sug := &suggestions[i]
		if _, ok := applied[sug.ID]; ok {
			continue
		}
		if _, ok := dismissed[sug.ID]; ok {
			continue
		}
		items = append(items, docx.FeedbackItem{
			Type:       sug.Type,
			Original:   sug.OriginalText,
			Suggestion: sug.Suggestion,
			Rationale:  sug.Rationale,
		})
	}
	return items
}

func splitParagraphs(content string) []string {
	var paragraphs []string
	for _, block := range strings.Split(content, "\n") {
		block = strings.TrimSpace(block)
		if block != "" {
			paragraphs = append(paragraphs, block)
		}
	}
	return paragraphs
}

func exportFileName(title string) string {
	name := strings.TrimSpace(title)
	if name == "" {
		name = "essay"
	}
	// Keep the filename header-safe.
	replacer := strings.NewReplacer("/", "-", "\\", "-", "\"", "", "\n", " ", "\r", " ")
	return replacer.Replace(name) + ".docx"
}
