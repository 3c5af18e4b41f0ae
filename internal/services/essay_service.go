package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"essaylab_backend/internal/logger"
	"essaylab_backend/internal/models"
	"essaylab_backend/internal/repositories"
	"essaylab_backend/internal/services/dto"
	"essaylab_backend/pkg/apperrors"
)

type EssayService interface {
	CreateEssay(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateEssayRequest) (*dto.EssayResponse, error)
	GetEssay(ctx context.Context, db *gorm.DB, userID, essayID string, isAdmin bool) (*dto.EssayResponse, error)
	ListEssays(ctx context.Context, db *gorm.DB, userID string, query *dto.EssayListQuery) (*dto.EssayListResponse, error)
	ListAllEssays(ctx context.Context, db *gorm.DB, query *dto.EssayListQuery) (*dto.EssayListResponse, error)
	UpdateEssay(ctx context.Context, db *gorm.DB, userID, essayID string, req *dto.UpdateEssayRequest) (*dto.EssayResponse, error)
	SaveContent(ctx context.Context, db *gorm.DB, userID, essayID string, req *dto.SaveContentRequest) (*dto.EssayResponse, error)
	DeleteEssay(ctx context.Context, db *gorm.DB, userID, essayID string) error
	ListScores(ctx context.Context, db *gorm.DB, userID, essayID string) ([]dto.ScoreResponse, error)

	// GetOwnedEssay is the shared ownership guard used by the analysis,
	// suggestion and export services.
	GetOwnedEssay(db *gorm.DB, userID, essayID string, isAdmin bool) (*models.Essay, error)
}

type essayService struct {
	essayRepo       repositories.EssayRepository
	collegeRepo     repositories.CollegeRepository
	trainingService TrainingService
	publisher       EventPublisher
}

func NewEssayService(
	essayRepo repositories.EssayRepository,
	collegeRepo repositories.CollegeRepository,
	trainingService TrainingService,
	publisher EventPublisher,
) EssayService {
	return &essayService{
		essayRepo:       essayRepo,
		collegeRepo:     collegeRepo,
		trainingService: trainingService,
		publisher:       publisher,
	}
}

func (s *essayService) CreateEssay(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateEssayRequest) (*dto.EssayResponse, error) {
	if err := s.validateTarget(db, req.CollegeID, req.ProgrammeID); err != nil {
		return nil, err
	}

	essay := &models.Essay{
		UserID:          userID,
		Title:           req.Title,
		Content:         req.Content,
		Status:          models.EssayStatusDraft,
		CollegeID:       req.CollegeID,
		ProgrammeID:     req.ProgrammeID,
		CustomCollege:   req.CustomCollege,
		CustomProgramme: req.CustomProgramme,
		CV:              req.CV,
		Questionnaire:   req.Questionnaire,
	}

	if err := s.essayRepo.Create(db, essay); err != nil {
		return nil, apperrors.ErrDatabase(err)
	}

	logger.CtxInfo(ctx, "essay created", "essay_id", essay.ID, "user_id", userID)
	return s.toResponse(db, essay), nil
}

func (s *essayService) GetEssay(ctx context.Context, db *gorm.DB, userID, essayID string, isAdmin bool) (*dto.EssayResponse, error) {
	essay, err := s.GetOwnedEssay(db, userID, essayID, isAdmin)
	if err != nil {
		return nil, err
	}
	return s.toResponse(db, essay), nil
}

func (s *essayService) ListEssays(ctx context.Context, db *gorm.DB, userID string, query *dto.EssayListQuery) (*dto.EssayListResponse, error) {
	return s.list(db, repositories.EssayFilter{
		UserID:   userID,
		Status:   models.EssayStatus(query.Status),
		Search:   query.Search,
		Page:     query.Page,
		PageSize: query.Limit,
	})
}

// ListAllEssays is the admin browse across every writer.
func (s *essayService) ListAllEssays(ctx context.Context, db *gorm.DB, query *dto.EssayListQuery) (*dto.EssayListResponse, error) {
	return s.list(db, repositories.EssayFilter{
		Status:   models.EssayStatus(query.Status),
		Search:   query.Search,
		Page:     query.Page,
		PageSize: query.Limit,
	})
}

func (s *essayService) list(db *gorm.DB, filter repositories.EssayFilter) (*dto.EssayListResponse, error) {
	essays, total, err := s.essayRepo.FindWithFilter(db, filter)
	if err != nil {
		return nil, apperrors.ErrDatabase(err)
	}

	resp := &dto.EssayListResponse{
		Essays: make([]dto.EssaySummary, 0, len(essays)),
		Total:  total,
		Page:   filter.Page,
		Limit:  filter.PageSize,
	}
	for i := range essays {
		e := &essays[i]
		collegeName, programmeName := s.targetNames(e)
		resp.Essays = append(resp.Essays, dto.EssaySummary{
			ID:            e.ID,
			Title:         e.Title,
			Status:        e.Status,
			CollegeName:   collegeName,
			ProgrammeName: programmeName,
			WordCount:     countWords(e.Content),
			LastEditedAt:  e.LastEditedAt,
			CreatedAt:     e.CreatedAt,
		})
	}
	return resp, nil
}

func (s *essayService) UpdateEssay(ctx context.Context, db *gorm.DB, userID, essayID string, req *dto.UpdateEssayRequest) (*dto.EssayResponse, error) {
	essay, err := s.GetOwnedEssay(db, userID, essayID, false)
	if err != nil {
		return nil, err
	}

	if err := s.validateTarget(db, req.CollegeID, req.ProgrammeID); err != nil {
		return nil, err
	}

	wasCompleted := essay.Status == models.EssayStatusCompleted

	if req.Title != nil {
		essay.Title = *req.Title
	}
	if req.Status != nil {
		essay.Status = *req.Status
	}
	if req.CollegeID != nil {
		essay.CollegeID = req.CollegeID
	}
	if req.ProgrammeID != nil {
		essay.ProgrammeID = req.ProgrammeID
	}
	if req.CustomCollege != nil {
		essay.CustomCollege = *req.CustomCollege
	}
	if req.CustomProgramme != nil {
		essay.CustomProgramme = *req.CustomProgramme
	}
	if req.CV != nil {
		essay.CV = req.CV
	}
	if req.Questionnaire != nil {
		essay.Questionnaire = req.Questionnaire
	}

	if err := s.essayRepo.Update(db, essay); err != nil {
		return nil, apperrors.ErrDatabase(err)
	}

	// Completing an essay records a training snapshot for admin review.
	if !wasCompleted && essay.Status == models.EssayStatusCompleted {
		if err := s.trainingService.CreateSnapshot(ctx, db, essay); err != nil {
			logger.CtxWithError(ctx, "training snapshot failed", err, "essay_id", essay.ID)
		}
	}

	s.publisher.Publish(essay.ID, "essay_updated", map[string]string{"essay_id": essay.ID})

	return s.toResponse(db, essay), nil
}

// SaveContent is the auto-save path: a write happens only when the content
// actually changed, so the client's debounced keystroke flushes stay cheap.
func (s *essayService) SaveContent(ctx context.Context, db *gorm.DB, userID, essayID string, req *dto.SaveContentRequest) (*dto.EssayResponse, error) {
	essay, err := s.GetOwnedEssay(db, userID, essayID, false)
	if err != nil {
		return nil, err
	}

	if essay.Content != req.Content {
		if err := s.essayRepo.UpdateContent(db, essayID, req.Content); err != nil {
			return nil, apperrors.ErrDatabase(err)
		}
		essay.Content = req.Content

		s.publisher.Publish(essay.ID, "essay_updated", map[string]string{"essay_id": essay.ID})
	}

	return s.toResponse(db, essay), nil
}

func (s *essayService) DeleteEssay(ctx context.Context, db *gorm.DB, userID, essayID string) error {
	if _, err := s.GetOwnedEssay(db, userID, essayID, false); err != nil {
		return err
	}
	if err := s.essayRepo.Delete(db, essayID); err != nil {
		return apperrors.ErrDatabase(err)
	}
	logger.CtxInfo(ctx, "essay deleted", "essay_id", essayID)
	return nil
}

func (s *essayService) ListScores(ctx context.Context, db *gorm.DB, userID, essayID string) ([]dto.ScoreResponse, error) {
	if _, err := s.GetOwnedEssay(db, userID, essayID, false); err != nil {
		return nil, err
	}

	scores, err := s.essayRepo.FindScores(db, essayID)
	if err != nil {
		return nil, apperrors.ErrDatabase(err)
	}

	out := make([]dto.ScoreResponse, 0, len(scores))
	for i := range scores {
		out = append(out, dto.NewScoreResponse(&scores[i]))
	}
	return out, nil
}

func (s *essayService) GetOwnedEssay(db *gorm.DB, userID, essayID string, isAdmin bool) (*models.Essay, error) {
	essay, err := s.essayRepo.FindByID(db, essayID)
	if err != nil {
		if errors.Is(err, repositories.ErrEssayNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.ErrDatabase(err)
	}
	if essay.UserID != userID && !isAdmin {
		// Not-found rather than forbidden: essay ids stay unguessable.
		return nil, apperrors.ErrNotFound(repositories.ErrEssayNotFound)
	}
	return essay, nil
}

// validateTarget checks catalog references when present. Custom free-text
// targets need no validation.
func (s *essayService) validateTarget(db *gorm.DB, collegeID, programmeID *string) error {
	if collegeID != nil {
		if _, err := s.collegeRepo.FindCollegeByID(db, *collegeID); err != nil {
			if errors.Is(err, repositories.ErrCollegeNotFound) {
				return apperrors.NewBadRequestError("unknown college")
			}
			return apperrors.ErrDatabase(err)
		}
	}
	if programmeID != nil {
		if _, err := s.collegeRepo.FindProgrammeByID(db, *programmeID); err != nil {
			if errors.Is(err, repositories.ErrProgrammeNotFound) {
				return apperrors.NewBadRequestError("unknown programme")
			}
			return apperrors.ErrDatabase(err)
		}
	}
	return nil
}

func (s *essayService) targetNames(essay *models.Essay) (string, string) {
	collegeName := essay.CustomCollege
	programmeName := essay.CustomProgramme
	if essay.College != nil {
		collegeName = essay.College.Name
	}
	if essay.Programme != nil {
		programmeName = essay.Programme.Name
	}
	return collegeName, programmeName
}

func (s *essayService) toResponse(db *gorm.DB, essay *models.Essay) *dto.EssayResponse {
	collegeName, programmeName := s.targetNames(essay)
	return &dto.EssayResponse{
		ID:               essay.ID,
		UserID:           essay.UserID,
		Title:            essay.Title,
		Content:          essay.Content,
		Status:           essay.Status,
		CollegeID:        essay.CollegeID,
		ProgrammeID:      essay.ProgrammeID,
		CollegeName:      collegeName,
		ProgrammeName:    programmeName,
		CV:               essay.CV,
		Questionnaire:    essay.Questionnaire,
		CompletionStatus: essay.CompletionStatus,
		WordCount:        countWords(essay.Content),
		LastEditedAt:     essay.LastEditedAt,
		LastExportedAt:   essay.LastExportedAt,
		CreatedAt:        essay.CreatedAt,
		UpdatedAt:        essay.UpdatedAt,
	}
}

func countWords(content string) int {
	return len(strings.Fields(content))
}
