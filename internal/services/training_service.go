package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"

	"essaylab_backend/internal/logger"
	"essaylab_backend/internal/models"
	"essaylab_backend/internal/repositories"
	"essaylab_backend/internal/services/dto"
	"essaylab_backend/pkg/apperrors"
)

type TrainingService interface {
	// CreateSnapshot records the before/after state of a completed editing
	// session for admin review. No-op when the essay was never analyzed.
	CreateSnapshot(ctx context.Context, db *gorm.DB, essay *models.Essay) error

	List(ctx context.Context, db *gorm.DB, query *dto.TrainingListQuery) (*dto.TrainingListResponse, error)
	Get(ctx context.Context, db *gorm.DB, id string) (*dto.TrainingEssayResponse, error)
	Approve(ctx context.Context, db *gorm.DB, adminID, id string, req *dto.ApproveTrainingRequest) error
	Reject(ctx context.Context, db *gorm.DB, adminID, id string, req *dto.RejectTrainingRequest) error
}

type trainingService struct {
	trainingRepo  repositories.TrainingRepository
	essayRepo     repositories.EssayRepository
	analysisRepo  repositories.AnalysisRepository
	analyticsRepo repositories.AnalyticsRepository
	portfolioRepo repositories.PortfolioRepository
}

func NewTrainingService(
	trainingRepo repositories.TrainingRepository,
	essayRepo repositories.EssayRepository,
	analysisRepo repositories.AnalysisRepository,
	analyticsRepo repositories.AnalyticsRepository,
	portfolioRepo repositories.PortfolioRepository,
) TrainingService {
	return &trainingService{
		trainingRepo:  trainingRepo,
		essayRepo:     essayRepo,
		analysisRepo:  analysisRepo,
		analyticsRepo: analyticsRepo,
		portfolioRepo: portfolioRepo,
	}
}

func (s *trainingService) CreateSnapshot(ctx context.Context, db *gorm.DB, essay *models.Essay) error {
	analyses, err := s.analysisRepo.FindByEssay(db, essay.ID)
	if err != nil {
		return apperrors.ErrDatabase(err)
	}
	if len(analyses) == 0 {
		// Nothing to learn from an essay that never went through analysis.
		logger.CtxDebug(ctx, "skipping training snapshot, essay has no analyses", "essay_id", essay.ID)
		return nil
	}

	first := &analyses[0]
	latest := &analyses[len(analyses)-1]

	applied := make(map[string]struct{})
	dismissed := make(map[string]struct{})
	for i := range analyses {
		set, err := decodeIDSet(analyses[i].AppliedSuggestions)
		if err != nil {
			return apperrors.InternalError(err)
		}
		for id := range set {
			applied[id] = struct{}{}
		}
		set, err = decodeIDSet(analyses[i].DismissedSuggestions)
		if err != nil {
			return apperrors.InternalError(err)
		}
		for id := range set {
			dismissed[id] = struct{}{}
		}
	}

	appliedJSON, err := encodeIDSet(applied)
	if err != nil {
		return apperrors.InternalError(err)
	}
	dismissedJSON, err := encodeIDSet(dismissed)
	if err != nil {
		return apperrors.InternalError(err)
	}

	manual, err := hasManualEdits(latest, essay.Content)
	if err != nil {
		return apperrors.InternalError(err)
	}

	snapshot := &models.TrainingEssay{
		EssayID:              essay.ID,
		UserID:               essay.UserID,
		BeforeContent:        first.ContentSnapshot,
		AfterContent:         essay.Content,
		AppliedSuggestions:   appliedJSON,
		DismissedSuggestions: dismissedJSON,
		HasManualEdits:       manual,
		Status:               models.TrainingStatusPendingReview,
	}

	if err := s.trainingRepo.Create(db, snapshot); err != nil {
		return apperrors.ErrDatabase(err)
	}

	logger.CtxInfo(ctx, "training snapshot recorded", "essay_id", essay.ID, "snapshot_id", snapshot.ID)
	return nil
}

// hasManualEdits replays the applied suggestions of the latest run on its
// own snapshot. A final content that differs from the replay means the
// writer edited by hand as well.
func hasManualEdits(latest *models.EssayAnalysis, finalContent string) (bool, error) {
	suggestions, err := DecodeSuggestions(latest.Suggestions)
	if err != nil {
		return false, err
	}
	applied, err := decodeIDSet(latest.AppliedSuggestions)
	if err != nil {
		return false, err
	}

	var patches []models.Suggestion
	for i := range suggestions {
		if _, ok := applied[suggestions[i].ID]; ok {
			patches = append(patches, suggestions[i])
		}
	}
	// Back to front, so earlier offsets stay valid as we splice.
	sort.Slice(patches, func(i, j int) bool {
		return patches[i].Location.Start > patches[j].Location.Start
	})

	expected := latest.ContentSnapshot
	for i := range patches {
		next, err := ApplyPatch(expected, &patches[i])
		if err != nil {
			// A failed replay means offsets drifted through manual edits.
			return true, nil
		}
		expected = next
	}

	return expected != finalContent, nil
}

func (s *trainingService) List(ctx context.Context, db *gorm.DB, query *dto.TrainingListQuery) (*dto.TrainingListResponse, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}
	status := models.TrainingStatus(query.Status)
	if status == "" {
		status = models.TrainingStatusPendingReview
	}

	snapshots, total, err := s.trainingRepo.FindByStatus(db, status, limit, (page-1)*limit)
	if err != nil {
		return nil, apperrors.ErrDatabase(err)
	}

	resp := &dto.TrainingListResponse{
		Snapshots: make([]dto.TrainingEssayResponse, 0, len(snapshots)),
		Total:     total,
		Page:      page,
		Limit:     limit,
	}
	for i := range snapshots {
		resp.Snapshots = append(resp.Snapshots, toTrainingResponse(&snapshots[i]))
	}
	return resp, nil
}

func (s *trainingService) Get(ctx context.Context, db *gorm.DB, id string) (*dto.TrainingEssayResponse, error) {
	snapshot, err := s.find(db, id)
	if err != nil {
		return nil, err
	}
	resp := toTrainingResponse(snapshot)
	return &resp, nil
}

// Approve promotes the snapshot into the reference portfolio in the same
// transaction that marks it reviewed.
func (s *trainingService) Approve(ctx context.Context, db *gorm.DB, adminID, id string, req *dto.ApproveTrainingRequest) error {
	snapshot, err := s.find(db, id)
	if err != nil {
		return err
	}
	if snapshot.Status != models.TrainingStatusPendingReview {
		return apperrors.ErrInvalidStatus("training", "snapshot already reviewed")
	}

	essay, err := s.essayRepo.FindByID(db, snapshot.EssayID)
	if err != nil && !errors.Is(err, repositories.ErrEssayNotFound) {
		return apperrors.ErrDatabase(err)
	}

	now := time.Now()
	snapshot.Status = models.TrainingStatusApproved
	snapshot.ReviewedBy = &adminID
	snapshot.ReviewedAt = &now

	reference := &models.SuccessfulEssay{
		Content:          snapshot.AfterContent,
		PerformanceScore: req.PerformanceScore,
		KeyStrategies:    req.KeyStrategies,
		WordCount:        countWords(snapshot.AfterContent),
		Source:           SourceTraining,
		AddedBy:          adminID,
	}
	if essay != nil {
		reference.Title = essay.Title
		reference.CollegeID = essay.CollegeID
		reference.ProgrammeID = essay.ProgrammeID
		reference.CustomCollege = essay.CustomCollege
		reference.CustomProgramme = essay.CustomProgramme
	} else {
		reference.Title = "Training essay"
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.trainingRepo.Update(tx, snapshot); err != nil {
			return err
		}
		return s.portfolioRepo.Create(tx, reference)
	})
	if err != nil {
		return apperrors.ErrDatabase(err)
	}

	logger.CtxInfo(ctx, "training snapshot approved", "snapshot_id", id, "reference_id", reference.ID)
	return nil
}

func (s *trainingService) Reject(ctx context.Context, db *gorm.DB, adminID, id string, req *dto.RejectTrainingRequest) error {
	snapshot, err := s.find(db, id)
	if err != nil {
		return err
	}
	if snapshot.Status != models.TrainingStatusPendingReview {
		return apperrors.ErrInvalidStatus("training", "snapshot already reviewed")
	}

	now := time.Now()
	snapshot.Status = models.TrainingStatusRejected
	snapshot.ReviewedBy = &adminID
	snapshot.ReviewedAt = &now

	if err := s.trainingRepo.Update(db, snapshot); err != nil {
		return apperrors.ErrDatabase(err)
	}

	logger.CtxInfo(ctx, "training snapshot rejected", "snapshot_id", id)
	return nil
}

func (s *trainingService) find(db *gorm.DB, id string) (*models.TrainingEssay, error) {
	snapshot, err := s.trainingRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTrainingEssayNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.ErrDatabase(err)
	}
	return snapshot, nil
}

func toTrainingResponse(snapshot *models.TrainingEssay) dto.TrainingEssayResponse {
	resp := dto.TrainingEssayResponse{
		ID:             snapshot.ID,
		EssayID:        snapshot.EssayID,
		UserID:         snapshot.UserID,
		BeforeContent:  snapshot.BeforeContent,
		AfterContent:   snapshot.AfterContent,
		AppliedIDs:     DecodeIDList(snapshot.AppliedSuggestions),
		DismissedIDs:   DecodeIDList(snapshot.DismissedSuggestions),
		HasManualEdits: snapshot.HasManualEdits,
		Status:         snapshot.Status,
		ReviewedBy:     snapshot.ReviewedBy,
		ReviewedAt:     snapshot.ReviewedAt,
		CreatedAt:      snapshot.CreatedAt,
	}
	if snapshot.Essay != nil {
		resp.EssayTitle = snapshot.Essay.Title
	}
	return resp
}
