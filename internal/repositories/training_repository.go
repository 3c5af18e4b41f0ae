package repositories

import (
	"errors"

	"essaylab_backend/internal/models"

	"gorm.io/gorm"
)

var ErrTrainingEssayNotFound = errors.New("training essay not found")

type TrainingRepository interface {
	Create(db *gorm.DB, snapshot *models.TrainingEssay) error
	FindByID(db *gorm.DB, id string) (*models.TrainingEssay, error)
	FindByStatus(db *gorm.DB, status models.TrainingStatus, limit, offset int) ([]models.TrainingEssay, int64, error)
	FindByEssay(db *gorm.DB, essayID string) ([]models.TrainingEssay, error)
	Update(db *gorm.DB, snapshot *models.TrainingEssay) error
	Delete(db *gorm.DB, id string) error
}

type trainingRepository struct{}

func NewTrainingRepository() TrainingRepository {
	return &trainingRepository{}
}

func (r *trainingRepository) Create(db *gorm.DB, snapshot *models.TrainingEssay) error {
	return db.Create(snapshot).Error
}

func (r *trainingRepository) FindByID(db *gorm.DB, id string) (*models.TrainingEssay, error) {
	var snapshot models.TrainingEssay
	err := db.Preload("Essay").First(&snapshot, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrainingEssayNotFound
		}
		return nil, err
	}
	return &snapshot, nil
}

func (r *trainingRepository) FindByStatus(db *gorm.DB, status models.TrainingStatus, limit, offset int) ([]models.TrainingEssay, int64, error) {
	query := db.Model(&models.TrainingEssay{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit < 1 {
		limit = 20
	}

	var snapshots []models.TrainingEssay
	err := query.Preload("Essay").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&snapshots).Error
	return snapshots, total, err
}

func (r *trainingRepository) FindByEssay(db *gorm.DB, essayID string) ([]models.TrainingEssay, error) {
	var snapshots []models.TrainingEssay
	err := db.Where("essay_id = ?", essayID).Order("created_at DESC").Find(&snapshots).Error
	return snapshots, err
}

func (r *trainingRepository) Update(db *gorm.DB, snapshot *models.TrainingEssay) error {
	return db.Save(snapshot).Error
}

func (r *trainingRepository) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.TrainingEssay{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTrainingEssayNotFound
	}
	return nil
}
