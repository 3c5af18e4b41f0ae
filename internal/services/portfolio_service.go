package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"essaylab_backend/internal/docx"
	"essaylab_backend/internal/llm"
	"essaylab_backend/internal/logger"
	"essaylab_backend/internal/models"
	"essaylab_backend/internal/repositories"
	"essaylab_backend/internal/services/dto"
	"essaylab_backend/pkg/apperrors"
)

// Sources for reference essays.
const (
	SourceManual   = "manual"
	SourceAIParsed = "ai_parsed"
	SourceTraining = "training"
)

type PortfolioService interface {
	Create(ctx context.Context, db *gorm.DB, adminID string, req *dto.CreateReferenceEssayRequest) (*dto.ReferenceEssayResponse, error)
	Get(ctx context.Context, db *gorm.DB, id string) (*dto.ReferenceEssayResponse, error)
	List(ctx context.Context, db *gorm.DB, page, limit int) (*dto.ReferenceEssayListResponse, error)
	Update(ctx context.Context, db *gorm.DB, id string, req *dto.UpdateReferenceEssayRequest) (*dto.ReferenceEssayResponse, error)
	Delete(ctx context.Context, db *gorm.DB, id string) error

	// AI-assisted ingest. ParseText extracts reference-essay fields from
	// pasted text; ParseDocx does the same after pulling text out of an
	// uploaded DOCX; ParseResume extracts CV fields for the essay
	// questionnaire flow.
	ParseText(ctx context.Context, db *gorm.DB, adminID string, rawText string) (*dto.CreateReferenceEssayRequest, error)
	ParseDocx(ctx context.Context, db *gorm.DB, adminID string, fileData []byte) (*dto.CreateReferenceEssayRequest, error)
	ParseResume(ctx context.Context, rawText string) (*dto.ParsedResumeResponse, error)
}

type portfolioService struct {
	portfolioRepo repositories.PortfolioRepository
	collegeRepo   repositories.CollegeRepository
	aiClient      llm.Client
}

func NewPortfolioService(
	portfolioRepo repositories.PortfolioRepository,
	collegeRepo repositories.CollegeRepository,
	aiClient llm.Client,
) PortfolioService {
	return &portfolioService{
		portfolioRepo: portfolioRepo,
		collegeRepo:   collegeRepo,
		aiClient:      aiClient,
	}
}

func (s *portfolioService) Create(ctx context.Context, db *gorm.DB, adminID string, req *dto.CreateReferenceEssayRequest) (*dto.ReferenceEssayResponse, error) {
	essay := &models.SuccessfulEssay{
		Title:            req.Title,
		Content:          req.Content,
		CollegeID:        req.CollegeID,
		ProgrammeID:      req.ProgrammeID,
		CustomCollege:    req.CustomCollege,
		CustomProgramme:  req.CustomProgramme,
		PerformanceScore: req.PerformanceScore,
		KeyStrategies:    req.KeyStrategies,
		WordCount:        countWords(req.Content),
		Source:           SourceManual,
		AddedBy:          adminID,
	}

	if err := s.portfolioRepo.Create(db, essay); err != nil {
		return nil, apperrors.ErrDatabase(err)
	}

	logger.CtxInfo(ctx, "reference essay added", "id", essay.ID)
	resp := dto.NewReferenceEssayResponse(essay)
	return &resp, nil
}

func (s *portfolioService) Get(ctx context.Context, db *gorm.DB, id string) (*dto.ReferenceEssayResponse, error) {
	essay, err := s.find(db, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewReferenceEssayResponse(essay)
	return &resp, nil
}

func (s *portfolioService) List(ctx context.Context, db *gorm.DB, page, limit int) (*dto.ReferenceEssayListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	essays, total, err := s.portfolioRepo.FindAll(db, limit, (page-1)*limit)
	if err != nil {
		return nil, apperrors.ErrDatabase(err)
	}

	resp := &dto.ReferenceEssayListResponse{
		Essays: make([]dto.ReferenceEssayResponse, 0, len(essays)),
		Total:  total,
		Page:   page,
		Limit:  limit,
	}
	for i := range essays {
		resp.Essays = append(resp.Essays, dto.NewReferenceEssayResponse(&essays[i]))
	}
	return resp, nil
}

func (s *portfolioService) Update(ctx context.Context, db *gorm.DB, id string, req *dto.UpdateReferenceEssayRequest) (*dto.ReferenceEssayResponse, error) {
	essay, err := s.find(db, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		essay.Title = *req.Title
	}
	if req.Content != nil {
		essay.Content = *req.Content
		essay.WordCount = countWords(*req.Content)
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
	if req.PerformanceScore != nil {
		essay.PerformanceScore = *req.PerformanceScore
	}
	if req.KeyStrategies != nil {
		essay.KeyStrategies = req.KeyStrategies
	}

	if err := s.portfolioRepo.Update(db, essay); err != nil {
		return nil, apperrors.ErrDatabase(err)
	}
	resp := dto.NewReferenceEssayResponse(essay)
	return &resp, nil
}

func (s *portfolioService) Delete(ctx context.Context, db *gorm.DB, id string) error {
	if err := s.portfolioRepo.Delete(db, id); err != nil {
		if errors.Is(err, repositories.ErrReferenceEssayNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.ErrDatabase(err)
	}
	return nil
}

func (s *portfolioService) ParseText(ctx context.Context, db *gorm.DB, adminID string, rawText string) (*dto.CreateReferenceEssayRequest, error) {
	if strings.TrimSpace(rawText) == "" {
		return nil, apperrors.NewBadRequestError("empty text")
	}

	parsed, err := s.aiClient.ParsePortfolioEssay(ctx, rawText)
	if err != nil {
		return nil, err
	}

	// Match the extracted names against the catalog so the admin gets a
	// pre-linked form; unmatched names stay as custom free text.
	req := &dto.CreateReferenceEssayRequest{
		Title:            parsed.Title,
		Content:          parsed.Content,
		CustomCollege:    parsed.College,
		CustomProgramme:  parsed.Programme,
		PerformanceScore: parsed.PerformanceScore,
	}
	if len(parsed.KeyStrategies) > 0 {
		if data, err := json.Marshal(parsed.KeyStrategies); err == nil {
			req.KeyStrategies = datatypes.JSON(data)
		}
	}
	s.matchCatalog(db, req)
	return req, nil
}

func (s *portfolioService) ParseDocx(ctx context.Context, db *gorm.DB, adminID string, fileData []byte) (*dto.CreateReferenceEssayRequest, error) {
	text, err := docx.ExtractText(fileData)
	if err != nil {
		return nil, apperrors.NewBadRequestError("could not read the document")
	}
	return s.ParseText(ctx, db, adminID, text)
}

func (s *portfolioService) ParseResume(ctx context.Context, rawText string) (*dto.ParsedResumeResponse, error) {
	if strings.TrimSpace(rawText) == "" {
		return nil, apperrors.NewBadRequestError("empty text")
	}

	parsed, err := s.aiClient.ParseResume(ctx, rawText)
	if err != nil {
		return nil, err
	}

	return &dto.ParsedResumeResponse{
		FullName:   parsed.FullName,
		Education:  parsed.Education,
		Activities: parsed.Activities,
		Awards:     parsed.Awards,
		Skills:     parsed.Skills,
	}, nil
}

func (s *portfolioService) matchCatalog(db *gorm.DB, req *dto.CreateReferenceEssayRequest) {
	if req.CustomCollege == "" {
		return
	}

	colleges, err := s.collegeRepo.ListColleges(db)
	if err != nil {
		return
	}
	for i := range colleges {
		if !strings.EqualFold(colleges[i].Name, req.CustomCollege) {
			continue
		}
		id := colleges[i].ID
		req.CollegeID = &id
		req.CustomCollege = ""

		if req.CustomProgramme == "" {
			return
		}
		programmes, err := s.collegeRepo.ListProgrammes(db, id)
		if err != nil {
			return
		}
		for j := range programmes {
			if strings.EqualFold(programmes[j].Name, req.CustomProgramme) {
				pid := programmes[j].ID
				req.ProgrammeID = &pid
				req.CustomProgramme = ""
				break
			}
		}
		return
	}
}

func (s *portfolioService) find(db *gorm.DB, id string) (*models.SuccessfulEssay, error) {
	essay, err := s.portfolioRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrReferenceEssayNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.ErrDatabase(err)
	}
	return essay, nil
}
