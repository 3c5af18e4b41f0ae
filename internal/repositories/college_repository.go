package repositories

import (
	"errors"

	"essaylab_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrCollegeNotFound   = errors.New("college not found")
	ErrProgrammeNotFound = errors.New("programme not found")
)

type CollegeRepository interface {
	ListColleges(db *gorm.DB) ([]models.College, error)
	FindCollegeByID(db *gorm.DB, id string) (*models.College, error)
	CreateCollege(db *gorm.DB, college *models.College) error
	UpdateCollege(db *gorm.DB, college *models.College) error
	DeleteCollege(db *gorm.DB, id string) error

	ListProgrammes(db *gorm.DB, collegeID string) ([]models.Programme, error)
	FindProgrammeByID(db *gorm.DB, id string) (*models.Programme, error)
	CreateProgramme(db *gorm.DB, programme *models.Programme) error
	UpdateProgramme(db *gorm.DB, programme *models.Programme) error
	DeleteProgramme(db *gorm.DB, id string) error
}

type collegeRepository struct{}

func NewCollegeRepository() CollegeRepository {
	return &collegeRepository{}
}

func (r *collegeRepository) ListColleges(db *gorm.DB) ([]models.College, error) {
	var colleges []models.College
	err := db.Order("name ASC").Find(&colleges).Error
	return colleges, err
}

func (r *collegeRepository) FindCollegeByID(db *gorm.DB, id string) (*models.College, error) {
	var college models.College
	err := db.Preload("Programmes").First(&college, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCollegeNotFound
		}
		return nil, err
	}
	return &college, nil
}

func (r *collegeRepository) CreateCollege(db *gorm.DB, college *models.College) error {
	return db.Create(college).Error
}

func (r *collegeRepository) UpdateCollege(db *gorm.DB, college *models.College) error {
	return db.Save(college).Error
}

func (r *collegeRepository) DeleteCollege(db *gorm.DB, id string) error {
	result := db.Delete(&models.College{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCollegeNotFound
	}
	return nil
}

func (r *collegeRepository) ListProgrammes(db *gorm.DB, collegeID string) ([]models.Programme, error) {
	var programmes []models.Programme
	query := db.Order("name ASC")
	if collegeID != "" {
		query = query.Where("college_id = ?", collegeID)
	}
	err := query.Find(&programmes).Error
	return programmes, err
}

func (r *collegeRepository) FindProgrammeByID(db *gorm.DB, id string) (*models.Programme, error) {
	var programme models.Programme
	err := db.Preload("College").First(&programme, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProgrammeNotFound
		}
		return nil, err
	}
	return &programme, nil
}

func (r *collegeRepository) CreateProgramme(db *gorm.DB, programme *models.Programme) error {
	return db.Create(programme).Error
}

func (r *collegeRepository) UpdateProgramme(db *gorm.DB, programme *models.Programme) error {
	return db.Save(programme).Error
}

func (r *collegeRepository) DeleteProgramme(db *gorm.DB, id string) error {
	result := db.Delete(&models.Programme{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProgrammeNotFound
	}
	return nil
}
