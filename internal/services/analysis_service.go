package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"essaylab_backend/internal/algorithms"
	"essaylab_backend/internal/cache"
	"essaylab_backend/internal/config"
	"essaylab_backend/internal/llm"
	"essaylab_backend/internal/logger"
	"essaylab_backend/internal/models"
	"essaylab_backend/internal/repositories"
	"essaylab_backend/internal/services/dto"
	"essaylab_backend/pkg/apperrors"
)

type AnalysisService interface {
	Trigger(ctx context.Context, db *gorm.DB, userID, essayID string, req *dto.TriggerAnalysisRequest) (*dto.SessionResponse, error)
	GetStatus(ctx context.Context, db *gorm.DB, userID, essayID string) (*dto.AnalysisResponse, error)
	GetSession(ctx context.Context, db *gorm.DB, userID, essayID string) (*dto.SessionResponse, error)
}

type analysisService struct {
	cfg           *config.Config
	essayRepo     repositories.EssayRepository
	analysisRepo  repositories.AnalysisRepository
	collegeRepo   repositories.CollegeRepository
	portfolioRepo repositories.PortfolioRepository
	aiClient      llm.Client
	resultCache   cache.Cache
	publisher     EventPublisher
}

func NewAnalysisService(
	cfg *config.Config,
	essayRepo repositories.EssayRepository,
	analysisRepo repositories.AnalysisRepository,
	collegeRepo repositories.CollegeRepository,
	portfolioRepo repositories.PortfolioRepository,
	aiClient llm.Client,
	resultCache cache.Cache,
	publisher EventPublisher,
) AnalysisService {
	return &analysisService{
		cfg:           cfg,
		essayRepo:     essayRepo,
		analysisRepo:  analysisRepo,
		collegeRepo:   collegeRepo,
		portfolioRepo: portfolioRepo,
		aiClient:      aiClient,
		resultCache:   resultCache,
		publisher:     publisher,
	}
}

// ContentHash fingerprints a content snapshot for result caching.
func ContentHash(content string) string {
	h := fnv.New64a()
	h.Write([]byte(content))
	return fmt.Sprintf("%x", h.Sum64())
}

// Trigger starts an analysis run. Guards, in order: minimum length,
// per-essay throttle, in-flight no-op, cache hit. Only after all four does
// an AI call happen, asynchronously; clients poll the status endpoint or
// wait on the websocket feed.
func (s *analysisService) Trigger(ctx context.Context, db *gorm.DB, userID, essayID string, req *dto.TriggerAnalysisRequest) (*dto.SessionResponse, error) {
	essay, err := s.ownedEssay(db, userID, essayID)
	if err != nil {
		return nil, err
	}

	if len(req.Content) < s.cfg.Analysis.MinContentChars {
		return nil, apperrors.ErrEssayTooShort
	}

	session, err := s.analysisRepo.FindSession(db, essayID)
	if err != nil {
		if !errors.Is(err, repositories.ErrSessionNotFound) {
			return nil, apperrors.ErrDatabase(err)
		}
		session = &models.AnalysisSession{
			EssayID: essayID,
			State:   models.SessionStateIdle,
		}
	}

	if session.State == models.SessionStateTriggered || session.State == models.SessionStatePolling {
		// In-flight run: return it instead of starting another.
		return sessionResponse(session), nil
	}

	if session.TriggeredAt != nil {
		elapsed := time.Since(*session.TriggeredAt)
		if elapsed < time.Duration(s.cfg.Analysis.ThrottleSeconds)*time.Second {
			return nil, apperrors.ErrAnalysisThrottled
		}
	}

	hash := ContentHash(req.Content)
	now := time.Now()

	// Same content, fresh result: serve the stored run without an AI call.
	if cached := s.lookupCached(ctx, db, essayID, hash); cached != nil {
		session.State = models.SessionStateComplete
		session.ContentHash = hash
		session.AnalysisID = &cached.ID
		session.TriggeredAt = &now
		if err := s.analysisRepo.SaveSession(db, session); err != nil {
			return nil, apperrors.ErrDatabase(err)
		}
		return sessionResponse(session), nil
	}

	analysis := &models.EssayAnalysis{
		EssayID:         essayID,
		ContentHash:     hash,
		Status:          models.AnalysisStatusPending,
		Model:           s.cfg.AI.Model,
		ContentSnapshot: req.Content,
	}
	if err := s.analysisRepo.Create(db, analysis); err != nil {
		return nil, apperrors.ErrDatabase(err)
	}

	session.State = models.SessionStateTriggered
	session.ContentHash = hash
	session.AnalysisID = &analysis.ID
	session.TriggeredAt = &now
	if err := s.analysisRepo.SaveSession(db, session); err != nil {
		return nil, apperrors.ErrDatabase(err)
	}

	go s.run(db.Session(&gorm.Session{NewDB: true}), essay, analysis, session)

	return sessionResponse(session), nil
}

func (s *analysisService) GetStatus(ctx context.Context, db *gorm.DB, userID, essayID string) (*dto.AnalysisResponse, error) {
	if _, err := s.ownedEssay(db, userID, essayID); err != nil {
		return nil, err
	}

	analysis, err := s.analysisRepo.FindLatestByEssay(db, essayID)
	if err != nil {
		if errors.Is(err, repositories.ErrAnalysisNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.ErrDatabase(err)
	}

	return s.toAnalysisResponse(analysis, false)
}

func (s *analysisService) GetSession(ctx context.Context, db *gorm.DB, userID, essayID string) (*dto.SessionResponse, error) {
	if _, err := s.ownedEssay(db, userID, essayID); err != nil {
		return nil, err
	}

	session, err := s.analysisRepo.FindSession(db, essayID)
	if err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			return sessionResponse(&models.AnalysisSession{
				EssayID: essayID,
				State:   models.SessionStateIdle,
			}), nil
		}
		return nil, apperrors.ErrDatabase(err)
	}
	return sessionResponse(session), nil
}

// run executes the AI call off the request goroutine.
func (s *analysisService) run(db *gorm.DB, essay *models.Essay, analysis *models.EssayAnalysis, session *models.AnalysisSession) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Duration(s.cfg.AI.TimeoutSec)*time.Second)
	defer cancel()

	analysis.Status = models.AnalysisStatusProcessing
	if err := s.analysisRepo.Update(db, analysis); err != nil {
		logger.WithError(err).Error("analysis update failed", "analysis_id", analysis.ID)
	}
	session.State = models.SessionStatePolling
	if err := s.analysisRepo.SaveSession(db, session); err != nil {
		logger.WithError(err).Error("session update failed", "essay_id", essay.ID)
	}

	result, err := s.aiClient.AnalyzeEssay(ctx, s.buildRequest(db, essay, analysis.ContentSnapshot))
	if err != nil {
		s.fail(db, analysis, session, err)
		return
	}

	if err := s.complete(db, essay, analysis, session, result); err != nil {
		logger.WithError(err).Error("analysis completion failed", "analysis_id", analysis.ID)
		return
	}

	s.cacheResult(ctx, essay.ID, analysis)
	s.publisher.Publish(essay.ID, "analysis_complete", map[string]string{
		"essay_id":    essay.ID,
		"analysis_id": analysis.ID,
	})
}

// buildRequest assembles the prompt context: target names, english variant
// and the top curated reference essays for the same target.
func (s *analysisService) buildRequest(db *gorm.DB, essay *models.Essay, content string) llm.AnalyzeRequest {
	collegeName := essay.CustomCollege
	programmeName := essay.CustomProgramme
	variant := models.EnglishAmerican
	if essay.College != nil {
		collegeName = essay.College.Name
	}
	if essay.Programme != nil {
		programmeName = essay.Programme.Name
		variant = essay.Programme.EnglishVariant
	}

	req := llm.AnalyzeRequest{
		Content:        content,
		CollegeName:    collegeName,
		ProgrammeName:  programmeName,
		EnglishVariant: variant,
	}

	// Fetch a wider candidate set and re-rank it: FindTopForTarget tiers
	// by target columns only, the ranker also weighs free-text targets
	// and English variant.
	candidates, err := s.portfolioRepo.FindTopForTarget(db, essay.CollegeID, essay.ProgrammeID, s.cfg.Analysis.ReferenceEssays*3)
	if err != nil {
		logger.WithError(err).Warn("reference essay lookup failed", "essay_id", essay.ID)
		return req
	}

	refs := algorithms.RankReferences(essay, candidates, s.cfg.Analysis.ReferenceEssays)
	for i := range refs {
		req.References = append(req.References, llm.ReferenceEssay{
			Title:         refs[i].Title,
			Content:       refs[i].Content,
			Score:         refs[i].PerformanceScore,
			KeyStrategies: DecodeIDList(refs[i].KeyStrategies),
		})
	}
	return req
}

func (s *analysisService) complete(db *gorm.DB, essay *models.Essay, analysis *models.EssayAnalysis, session *models.AnalysisSession, result *llm.AnalyzeResult) error {
	suggestionsJSON, err := encodeSuggestions(result.Suggestions)
	if err != nil {
		return err
	}

	now := time.Now()
	analysis.Status = models.AnalysisStatusComplete
	analysis.Suggestions = suggestionsJSON
	analysis.CompletedAt = &now

	return db.Transaction(func(tx *gorm.DB) error {
		if err := s.analysisRepo.Update(tx, analysis); err != nil {
			return err
		}

		scoreType := models.ScoreTypeAfterEdits
		count, err := s.essayRepo.CountScores(tx, essay.ID)
		if err != nil {
			return err
		}
		if count == 0 {
			scoreType = models.ScoreTypeInitial
		}
		score := &models.EssayScore{
			EssayID:      essay.ID,
			ScoreType:    scoreType,
			Overall:      result.Scores.Overall,
			Clarity:      result.Scores.Clarity,
			Impact:       result.Scores.Impact,
			Authenticity: result.Scores.Authenticity,
			Coherence:    result.Scores.Coherence,
			Model:        analysis.Model,
		}
		if err := s.essayRepo.CreateScore(tx, score); err != nil {
			return err
		}

		session.State = models.SessionStateComplete
		return s.analysisRepo.SaveSession(tx, session)
	})
}

func (s *analysisService) fail(db *gorm.DB, analysis *models.EssayAnalysis, session *models.AnalysisSession, cause error) {
	logger.WithError(cause).Error("analysis failed", "analysis_id", analysis.ID)

	analysis.Status = models.AnalysisStatusFailed
	analysis.ErrorMessage = cause.Error()
	if err := s.analysisRepo.Update(db, analysis); err != nil {
		logger.WithError(err).Error("analysis failure update failed", "analysis_id", analysis.ID)
	}

	// Back to idle so the writer can retry after the throttle window.
	session.State = models.SessionStateIdle
	if err := s.analysisRepo.SaveSession(db, session); err != nil {
		logger.WithError(err).Error("session failure update failed", "essay_id", session.EssayID)
	}

	s.publisher.Publish(session.EssayID, "analysis_failed", map[string]string{
		"essay_id": session.EssayID,
	})
}

// lookupCached checks redis first, then the analyses table.
func (s *analysisService) lookupCached(ctx context.Context, db *gorm.DB, essayID, hash string) *models.EssayAnalysis {
	key := cacheKey(essayID, hash)
	if id, ok, err := s.resultCache.Get(ctx, key); err == nil && ok {
		if analysis, err := s.analysisRepo.FindByID(db, id); err == nil &&
			analysis.Status == models.AnalysisStatusComplete {
			return analysis
		}
	}

	analysis, err := s.analysisRepo.FindByEssayAndHash(db, essayID, hash)
	if err != nil {
		return nil
	}
	ttl := time.Duration(s.cfg.Analysis.CacheTTLMinutes) * time.Minute
	if analysis.CompletedAt == nil || time.Since(*analysis.CompletedAt) > ttl {
		return nil
	}
	return analysis
}

func (s *analysisService) cacheResult(ctx context.Context, essayID string, analysis *models.EssayAnalysis) {
	ttl := time.Duration(s.cfg.Analysis.CacheTTLMinutes) * time.Minute
	key := cacheKey(essayID, analysis.ContentHash)
	if err := s.resultCache.Set(ctx, key, analysis.ID, ttl); err != nil {
		logger.WithError(err).Warn("cache analysis result failed", "essay_id", essayID)
	}
}

func cacheKey(essayID, hash string) string {
	return fmt.Sprintf("analysis:%s:%s", essayID, hash)
}

func (s *analysisService) ownedEssay(db *gorm.DB, userID, essayID string) (*models.Essay, error) {
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
	return essay, nil
}

func (s *analysisService) toAnalysisResponse(analysis *models.EssayAnalysis, cached bool) (*dto.AnalysisResponse, error) {
	suggestions, err := DecodeSuggestions(analysis.Suggestions)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if suggestions == nil {
		suggestions = []models.Suggestion{}
	}

	return &dto.AnalysisResponse{
		ID:           analysis.ID,
		EssayID:      analysis.EssayID,
		Status:       analysis.Status,
		ContentHash:  analysis.ContentHash,
		Suggestions:  suggestions,
		AppliedIDs:   DecodeIDList(analysis.AppliedSuggestions),
		DismissedIDs: DecodeIDList(analysis.DismissedSuggestions),
		ErrorMessage: analysis.ErrorMessage,
		Cached:       cached,
		CompletedAt:  analysis.CompletedAt,
		CreatedAt:    analysis.CreatedAt,
	}, nil
}

func sessionResponse(session *models.AnalysisSession) *dto.SessionResponse {
	return &dto.SessionResponse{
		EssayID:     session.EssayID,
		State:       session.State,
		AnalysisID:  session.AnalysisID,
		TriggeredAt: session.TriggeredAt,
	}
}

func encodeSuggestions(suggestions []models.Suggestion) (datatypes.JSON, error) {
	data, err := json.Marshal(suggestions)
	if err != nil {
		return nil, fmt.Errorf("encode suggestions: %w", err)
	}
	return datatypes.JSON(data), nil
}
