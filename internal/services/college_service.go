package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"essaylab_backend/internal/models"
	"essaylab_backend/internal/repositories"
	"essaylab_backend/internal/services/dto"
	"essaylab_backend/pkg/apperrors"
)

type CollegeService interface {
	ListColleges(ctx context.Context, db *gorm.DB) ([]dto.CollegeResponse, error)
	GetCollege(ctx context.Context, db *gorm.DB, id string) (*dto.CollegeResponse, error)
	CreateCollege(ctx context.Context, db *gorm.DB, req *dto.CreateCollegeRequest) (*dto.CollegeResponse, error)
	UpdateCollege(ctx context.Context, db *gorm.DB, id string, req *dto.UpdateCollegeRequest) (*dto.CollegeResponse, error)
	DeleteCollege(ctx context.Context, db *gorm.DB, id string) error

	ListProgrammes(ctx context.Context, db *gorm.DB, collegeID string) ([]dto.ProgrammeResponse, error)
	CreateProgramme(ctx context.Context, db *gorm.DB, collegeID string, req *dto.CreateProgrammeRequest) (*dto.ProgrammeResponse, error)
	UpdateProgramme(ctx context.Context, db *gorm.DB, id string, req *dto.UpdateProgrammeRequest) (*dto.ProgrammeResponse, error)
	DeleteProgramme(ctx context.Context, db *gorm.DB, id string) error
}

type collegeService struct {
	collegeRepo repositories.CollegeRepository
}

func NewCollegeService(collegeRepo repositories.CollegeRepository) CollegeService {
	return &collegeService{collegeRepo: collegeRepo}
}

func (s *collegeService) ListColleges(ctx context.Context, db *gorm.DB) ([]dto.CollegeResponse, error) {
	colleges, err := s.collegeRepo.ListColleges(db)
	if err != nil {
		return nil, apperrors.ErrDatabase(err)
	}

	out := make([]dto.CollegeResponse, 0, len(colleges))
	for i := range colleges {
		out = append(out, dto.NewCollegeResponse(&colleges[i]))
	}
	return out, nil
}

func (s *collegeService) GetCollege(ctx context.Context, db *gorm.DB, id string) (*dto.CollegeResponse, error) {
	college, err := s.findCollege(db, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewCollegeResponse(college)
	return &resp, nil
}

func (s *collegeService) CreateCollege(ctx context.Context, db *gorm.DB, req *dto.CreateCollegeRequest) (*dto.CollegeResponse, error) {
	college := &models.College{
		Name:    req.Name,
		Country: req.Country,
	}
	if err := s.collegeRepo.CreateCollege(db, college); err != nil {
		return nil, apperrors.ErrDatabase(err)
	}
	resp := dto.NewCollegeResponse(college)
	return &resp, nil
}

func (s *collegeService) UpdateCollege(ctx context.Context, db *gorm.DB, id string, req *dto.UpdateCollegeRequest) (*dto.CollegeResponse, error) {
	college, err := s.findCollege(db, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		college.Name = *req.Name
	}
	if req.Country != nil {
		college.Country = *req.Country
	}

	if err := s.collegeRepo.UpdateCollege(db, college); err != nil {
		return nil, apperrors.ErrDatabase(err)
	}
	resp := dto.NewCollegeResponse(college)
	return &resp, nil
}

func (s *collegeService) DeleteCollege(ctx context.Context, db *gorm.DB, id string) error {
	if err := s.collegeRepo.DeleteCollege(db, id); err != nil {
		if errors.Is(err, repositories.ErrCollegeNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.ErrDatabase(err)
	}
	return nil
}

func (s *collegeService) ListProgrammes(ctx context.Context, db *gorm.DB, collegeID string) ([]dto.ProgrammeResponse, error) {
	programmes, err := s.collegeRepo.ListProgrammes(db, collegeID)
	if err != nil {
		return nil, apperrors.ErrDatabase(err)
	}

	out := make([]dto.ProgrammeResponse, 0, len(programmes))
	for i := range programmes {
		out = append(out, dto.NewProgrammeResponse(&programmes[i]))
	}
	return out, nil
}

func (s *collegeService) CreateProgramme(ctx context.Context, db *gorm.DB, collegeID string, req *dto.CreateProgrammeRequest) (*dto.ProgrammeResponse, error) {
	if _, err := s.findCollege(db, collegeID); err != nil {
		return nil, err
	}

	variant := req.EnglishVariant
	if variant == "" {
		variant = models.EnglishAmerican
	}

	programme := &models.Programme{
		CollegeID:      collegeID,
		Name:           req.Name,
		Degree:         req.Degree,
		EnglishVariant: variant,
	}
	if err := s.collegeRepo.CreateProgramme(db, programme); err != nil {
		return nil, apperrors.ErrDatabase(err)
	}
	resp := dto.NewProgrammeResponse(programme)
	return &resp, nil
}

func (s *collegeService) UpdateProgramme(ctx context.Context, db *gorm.DB, id string, req *dto.UpdateProgrammeRequest) (*dto.ProgrammeResponse, error) {
	programme, err := s.collegeRepo.FindProgrammeByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrProgrammeNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.ErrDatabase(err)
	}

	if req.Name != nil {
		programme.Name = *req.Name
	}
	if req.Degree != nil {
		programme.Degree = *req.Degree
	}
	if req.EnglishVariant != nil {
		programme.EnglishVariant = *req.EnglishVariant
	}

	if err := s.collegeRepo.UpdateProgramme(db, programme); err != nil {
		return nil, apperrors.ErrDatabase(err)
	}
	resp := dto.NewProgrammeResponse(programme)
	return &resp, nil
}

func (s *collegeService) DeleteProgramme(ctx context.Context, db *gorm.DB, id string) error {
	if err := s.collegeRepo.DeleteProgramme(db, id); err != nil {
		if errors.Is(err, repositories.ErrProgrammeNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.ErrDatabase(err)
	}
	return nil
}

func (s *collegeService) findCollege(db *gorm.DB, id string) (*models.College, error) {
	college, err := s.collegeRepo.FindCollegeByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCollegeNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.ErrDatabase(err)
	}
	return college, nil
}
