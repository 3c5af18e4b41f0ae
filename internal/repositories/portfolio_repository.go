package repositories

import (
	"errors"

	"essaylab_backend/internal/models"

	"gorm.io/gorm"
)

var ErrReferenceEssayNotFound = errors.New("reference essay not found")

type PortfolioRepository interface {
	Create(db *gorm.DB, essay *models.SuccessfulEssay) error
	FindByID(db *gorm.DB, id string) (*models.SuccessfulEssay, error)
	FindAll(db *gorm.DB, limit, offset int) ([]models.SuccessfulEssay, int64, error)
	Update(db *gorm.DB, essay *models.SuccessfulEssay) error
	Delete(db *gorm.DB, id string) error

	// FindTopForTarget returns the highest-scoring reference essays for a
	// college/programme pair; rows matching the programme rank before rows
	// matching only the college, before the overall top.
	FindTopForTarget(db *gorm.DB, collegeID, programmeID *string, limit int) ([]models.SuccessfulEssay, error)
}

type portfolioRepository struct{}

func NewPortfolioRepository() PortfolioRepository {
	return &portfolioRepository{}
}

func (r *portfolioRepository) Create(db *gorm.DB, essay *models.SuccessfulEssay) error {
	return db.Create(essay).Error
}

func (r *portfolioRepository) FindByID(db *gorm.DB, id string) (*models.SuccessfulEssay, error) {
	var essay models.SuccessfulEssay
	err := db.Preload("College").Preload("Programme").First(&essay, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReferenceEssayNotFound
		}
		return nil, err
	}
	return &essay, nil
}

func (r *portfolioRepository) FindAll(db *gorm.DB, limit, offset int) ([]models.SuccessfulEssay, int64, error) {
	var total int64
	if err := db.Model(&models.SuccessfulEssay{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit < 1 {
		limit = 20
	}

	var essays []models.SuccessfulEssay
	err := db.Preload("College").Preload("Programme").
		Order("performance_score DESC").
		Limit(limit).Offset(offset).
		Find(&essays).Error
	return essays, total, err
}

func (r *portfolioRepository) Update(db *gorm.DB, essay *models.SuccessfulEssay) error {
	return db.Save(essay).Error
}

func (r *portfolioRepository) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.SuccessfulEssay{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReferenceEssayNotFound
	}
	return nil
}

func (r *portfolioRepository) FindTopForTarget(db *gorm.DB, collegeID, programmeID *string, limit int) ([]models.SuccessfulEssay, error) {
	if limit < 1 {
		limit = 3
	}

	var essays []models.SuccessfulEssay

	if programmeID != nil {
		if err := db.Where("programme_id = ?", *programmeID).
			Order("performance_score DESC").Limit(limit).
			Find(&essays).Error; err != nil {
			return nil, err
		}
		if len(essays) >= limit {
			return essays, nil
		}
	}

	if collegeID != nil && len(essays) < limit {
		var more []models.SuccessfulEssay
		query := db.Where("college_id = ?", *collegeID)
		query = excludeIDs(query, essays)
		if err := query.Order("performance_score DESC").Limit(limit - len(essays)).
			Find(&more).Error; err != nil {
			return nil, err
		}
		essays = append(essays, more...)
	}

	if len(essays) < limit {
		var more []models.SuccessfulEssay
		query := excludeIDs(db, essays)
		if err := query.Order("performance_score DESC").Limit(limit - len(essays)).
			Find(&more).Error; err != nil {
			return nil, err
		}
		essays = append(essays, more...)
	}

	return essays, nil
}

func excludeIDs(query *gorm.DB, essays []models.SuccessfulEssay) *gorm.DB {
	if len(essays) == 0 {
		return query
	}
	ids := make([]string, 0, len(essays))
	for _, e := range essays {
		ids = append(ids, e.ID)
	}
	return query.Where("id NOT IN ?", ids)
}
