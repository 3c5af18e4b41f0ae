package repositories

import (
	"errors"
	"time"

	"essaylab_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrAnalysisNotFound = errors.New("analysis not found")
	ErrSessionNotFound  = errors.New("analysis session not found")
)

type AnalysisRepository interface {
	Create(db *gorm.DB, analysis *models.EssayAnalysis) error
	FindByID(db *gorm.DB, id string) (*models.EssayAnalysis, error)
	FindLatestByEssay(db *gorm.DB, essayID string) (*models.EssayAnalysis, error)
	FindByEssay(db *gorm.DB, essayID string) ([]models.EssayAnalysis, error)
	FindByEssayAndHash(db *gorm.DB, essayID, contentHash string) (*models.EssayAnalysis, error)
	Update(db *gorm.DB, analysis *models.EssayAnalysis) error

	// Sessions
	FindSession(db *gorm.DB, essayID string) (*models.AnalysisSession, error)
	SaveSession(db *gorm.DB, session *models.AnalysisSession) error
	DeleteExpiredSessions(db *gorm.DB, before time.Time) (int64, error)
}

type analysisRepository struct{}

func NewAnalysisRepository() AnalysisRepository {
	return &analysisRepository{}
}

func (r *analysisRepository) Create(db *gorm.DB, analysis *models.EssayAnalysis) error {
	return db.Create(analysis).Error
}

func (r *analysisRepository) FindByID(db *gorm.DB, id string) (*models.EssayAnalysis, error) {
	var analysis models.EssayAnalysis
	err := db.First(&analysis, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnalysisNotFound
		}
		return nil, err
	}
	return &analysis, nil
}

func (r *analysisRepository) FindLatestByEssay(db *gorm.DB, essayID string) (*models.EssayAnalysis, error) {
	var analysis models.EssayAnalysis
	err := db.Where("essay_id = ?", essayID).
		Order("created_at DESC").
		First(&analysis).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnalysisNotFound
		}
		return nil, err
	}
	return &analysis, nil
}

// FindByEssay returns every run for an essay, oldest first.
func (r *analysisRepository) FindByEssay(db *gorm.DB, essayID string) ([]models.EssayAnalysis, error) {
	var analyses []models.EssayAnalysis
	err := db.Where("essay_id = ?", essayID).
		Order("created_at ASC").
		Find(&analyses).Error
	return analyses, err
}

// FindByEssayAndHash serves the content-hash cache lookup: a completed
// analysis for the same content needs no new gateway call.
func (r *analysisRepository) FindByEssayAndHash(db *gorm.DB, essayID, contentHash string) (*models.EssayAnalysis, error) {
	var analysis models.EssayAnalysis
	err := db.Where("essay_id = ? AND content_hash = ? AND status = ?",
		essayID, contentHash, models.AnalysisStatusComplete).
		Order("created_at DESC").
		First(&analysis).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnalysisNotFound
		}
		return nil, err
	}
	return &analysis, nil
}

func (r *analysisRepository) Update(db *gorm.DB, analysis *models.EssayAnalysis) error {
	return db.Save(analysis).Error
}

// Sessions

func (r *analysisRepository) FindSession(db *gorm.DB, essayID string) (*models.AnalysisSession, error) {
	var session models.AnalysisSession
	err := db.First(&session, "essay_id = ?", essayID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *analysisRepository) SaveSession(db *gorm.DB, session *models.AnalysisSession) error {
	return db.Save(session).Error
}

func (r *analysisRepository) DeleteExpiredSessions(db *gorm.DB, before time.Time) (int64, error) {
	result := db.Delete(&models.AnalysisSession{},
		"state = ? AND updated_at < ?", models.SessionStateComplete, before)
	return result.RowsAffected, result.Error
}
