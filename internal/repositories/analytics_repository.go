package repositories

import (
	"essaylab_backend/internal/models"

	"gorm.io/gorm"
)

type AnalyticsRepository interface {
	CreateEvent(db *gorm.DB, event *models.EssayAnalytics) error
	FindEvents(db *gorm.DB, essayID string) ([]models.EssayAnalytics, error)
	FindAllEvents(db *gorm.DB) ([]models.EssayAnalytics, error)
	FindAllScores(db *gorm.DB) ([]models.EssayScore, error)
}

type analyticsRepository struct{}

func NewAnalyticsRepository() AnalyticsRepository {
	return &analyticsRepository{}
}

func (r *analyticsRepository) CreateEvent(db *gorm.DB, event *models.EssayAnalytics) error {
	return db.Create(event).Error
}

func (r *analyticsRepository) FindEvents(db *gorm.DB, essayID string) ([]models.EssayAnalytics, error) {
	var events []models.EssayAnalytics
	err := db.Where("essay_id = ?", essayID).Order("created_at ASC").Find(&events).Error
	return events, err
}

func (r *analyticsRepository) FindAllEvents(db *gorm.DB) ([]models.EssayAnalytics, error) {
	var events []models.EssayAnalytics
	err := db.Order("created_at ASC").Find(&events).Error
	return events, err
}

func (r *analyticsRepository) FindAllScores(db *gorm.DB) ([]models.EssayScore, error) {
	var scores []models.EssayScore
	err := db.Order("created_at ASC").Find(&scores).Error
	return scores, err
}
