package repositories

import (
	"errors"
	"time"

	"essaylab_backend/internal/models"

	"gorm.io/gorm"
)

var ErrEssayNotFound = errors.New("essay not found")

type EssayFilter struct {
	UserID   string
	Status   models.EssayStatus
	Search   string
	Page     int
	PageSize int
}

// StaleEssayCriteria selects rows for the auto-completion batch.
type StaleEssayCriteria struct {
	ExportedBefore time.Time // exported but not completed since
	IdleSince      time.Time // never exported and untouched since
}

type EssayRepository interface {
	Create(db *gorm.DB, essay *models.Essay) error
	FindByID(db *gorm.DB, id string) (*models.Essay, error)
	FindByUser(db *gorm.DB, userID string) ([]models.Essay, error)
	FindWithFilter(db *gorm.DB, criteria EssayFilter) ([]models.Essay, int64, error)
	Update(db *gorm.DB, essay *models.Essay) error
	UpdateContent(db *gorm.DB, essayID, content string) error
	UpdateStatus(db *gorm.DB, essayID string, status models.EssayStatus) error
	MarkExported(db *gorm.DB, essayID string, at time.Time) error
	Delete(db *gorm.DB, essayID string) error

	FindStale(db *gorm.DB, criteria StaleEssayCriteria) ([]models.Essay, error)

	// Scores
	CreateScore(db *gorm.DB, score *models.EssayScore) error
	FindScores(db *gorm.DB, essayID string) ([]models.EssayScore, error)
	CountScores(db *gorm.DB, essayID string) (int64, error)
}

type essayRepository struct{}

func NewEssayRepository() EssayRepository {
	return &essayRepository{}
}

func (r *essayRepository) Create(db *gorm.DB, essay *models.Essay) error {
	if essay.LastEditedAt.IsZero() {
		essay.LastEditedAt = time.Now()
	}
	return db.Create(essay).Error
}

func (r *essayRepository) FindByID(db *gorm.DB, id string) (*models.Essay, error) {
	var essay models.Essay
	err := db.Preload("College").Preload("Programme").
		First(&essay, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEssayNotFound
		}
		return nil, err
	}
	return &essay, nil
}

func (r *essayRepository) FindByUser(db *gorm.DB, userID string) ([]models.Essay, error) {
	var essays []models.Essay
	err := db.Preload("College").Preload("Programme").
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&essays).Error
	return essays, err
}

func (r *essayRepository) FindWithFilter(db *gorm.DB, criteria EssayFilter) ([]models.Essay, int64, error) {
	query := db.Model(&models.Essay{}).Preload("College").Preload("Programme")

	if criteria.UserID != "" {
		query = query.Where("user_id = ?", criteria.UserID)
	}
	if criteria.Status != "" {
		query = query.Where("status = ?", criteria.Status)
	}
	if criteria.Search != "" {
		query = query.Where("title ILIKE ?", "%"+criteria.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := criteria.Page
	if page < 1 {
		page = 1
	}
	pageSize := criteria.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	var essays []models.Essay
	err := query.Order("updated_at DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&essays).Error
	return essays, total, err
}

func (r *essayRepository) Update(db *gorm.DB, essay *models.Essay) error {
	return db.Save(essay).Error
}

func (r *essayRepository) UpdateContent(db *gorm.DB, essayID, content string) error {
	result := db.Model(&models.Essay{}).Where("id = ?", essayID).Updates(map[string]interface{}{
		"content":        content,
		"last_edited_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEssayNotFound
	}
	return nil
}

func (r *essayRepository) UpdateStatus(db *gorm.DB, essayID string, status models.EssayStatus) error {
	result := db.Model(&models.Essay{}).Where("id = ?", essayID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEssayNotFound
	}
	return nil
}

func (r *essayRepository) MarkExported(db *gorm.DB, essayID string, at time.Time) error {
	return db.Model(&models.Essay{}).Where("id = ?", essayID).
		Update("last_exported_at", at).Error
}

func (r *essayRepository) Delete(db *gorm.DB, essayID string) error {
	result := db.Delete(&models.Essay{}, "id = ?", essayID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEssayNotFound
	}
	return nil
}

// FindStale returns non-completed essays that were exported before the
// export cutoff, or never exported and not edited since the idle cutoff.
func (r *essayRepository) FindStale(db *gorm.DB, criteria StaleEssayCriteria) ([]models.Essay, error) {
	var essays []models.Essay
	err := db.Where("status NOT IN ?", []models.EssayStatus{
		models.EssayStatusCompleted, models.EssayStatusArchived,
	}).Where(
		db.Where("last_exported_at IS NOT NULL AND last_exported_at < ?", criteria.ExportedBefore).
			Or("last_exported_at IS NULL AND last_edited_at < ?", criteria.IdleSince),
	).Find(&essays).Error
	return essays, err
}

// Scores

func (r *essayRepository) CreateScore(db *gorm.DB, score *models.EssayScore) error {
	return db.Create(score).Error
}

func (r *essayRepository) FindScores(db *gorm.DB, essayID string) ([]models.EssayScore, error) {
	var scores []models.EssayScore
	err := db.Where("essay_id = ?", essayID).Order("created_at ASC").Find(&scores).Error
	return scores, err
}

func (r *essayRepository) CountScores(db *gorm.DB, essayID string) (int64, error) {
	var count int64
	err := db.Model(&models.EssayScore{}).Where("essay_id = ?", essayID).Count(&count).Error
	return count, err
}
