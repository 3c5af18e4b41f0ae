package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"essaylab_backend/internal/auth"
	"essaylab_backend/internal/logger"
	"essaylab_backend/internal/models"
	"essaylab_backend/internal/repositories"
	"essaylab_backend/internal/services/dto"
	"essaylab_backend/pkg/apperrors"
)

type UserService interface {
	GetUser(ctx context.Context, db *gorm.DB, userID string) (*dto.UserResponse, error)
	GetProfile(ctx context.Context, db *gorm.DB, userID string) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)

	// Admin console
	ListUsers(ctx context.Context, db *gorm.DB, query *dto.UserListQuery) (*dto.UserListResponse, error)
	CreateUser(ctx context.Context, db *gorm.DB, req *dto.AdminCreateUserRequest) (*dto.UserResponse, error)
	ApproveUser(ctx context.Context, db *gorm.DB, userID string) error
	RejectUser(ctx context.Context, db *gorm.DB, userID string, reason string) error
	SuspendUser(ctx context.Context, db *gorm.DB, adminID, userID string) error
	ReinstateUser(ctx context.Context, db *gorm.DB, userID string) error
	ChangeRole(ctx context.Context, db *gorm.DB, adminID, userID string, role models.UserRole) error
	DeleteUser(ctx context.Context, db *gorm.DB, adminID, userID string) error
}

type userService struct {
	userRepo     repositories.UserRepository
	emailService EmailService
}

func NewUserService(userRepo repositories.UserRepository, emailService EmailService) UserService {
	return &userService{userRepo: userRepo, emailService: emailService}
}

func (s *userService) GetUser(ctx context.Context, db *gorm.DB, userID string) (*dto.UserResponse, error) {
	user, err := s.findUser(db, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *userService) GetProfile(ctx context.Context, db *gorm.DB, userID string) (*dto.ProfileResponse, error) {
	profile, err := s.userRepo.FindProfileByUserID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.ErrDatabase(err)
	}
	resp := dto.NewProfileResponse(profile)
	return &resp, nil
}

func (s *userService) UpdateProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	profile, err := s.userRepo.FindProfileByUserID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.ErrDatabase(err)
	}

	if req.FullName != nil {
		profile.FullName = *req.FullName
	}
	if req.Country != nil {
		profile.Country = *req.Country
	}
	if req.IntendedMajor != nil {
		profile.IntendedMajor = *req.IntendedMajor
	}
	if req.GradYear != nil {
		profile.GradYear = *req.GradYear
	}

	if err := s.userRepo.UpdateProfile(db, profile); err != nil {
		return nil, apperrors.ErrDatabase(err)
	}

	resp := dto.NewProfileResponse(profile)
	return &resp, nil
}

func (s *userService) ListUsers(ctx context.Context, db *gorm.DB, query *dto.UserListQuery) (*dto.UserListResponse, error) {
	filter := repositories.UserFilter{
		AccountStatus: models.AccountStatus(query.Status),
		Role:          models.UserRole(query.Role),
		Search:        query.Search,
		Page:          query.Page,
		PageSize:      query.Limit,
	}

	users, total, err := s.userRepo.FindWithFilter(db, filter)
	if err != nil {
		return nil, apperrors.ErrDatabase(err)
	}

	resp := &dto.UserListResponse{
		Users: make([]dto.UserResponse, 0, len(users)),
		Total: total,
		Page:  query.Page,
		Limit: query.Limit,
	}
	for i := range users {
		resp.Users = append(resp.Users, dto.NewUserResponse(&users[i]))
	}
	return resp, nil
}

// CreateUser provisions an approved account without a password; the user
// sets one through the invite email.
func (s *userService) CreateUser(ctx context.Context, db *gorm.DB, req *dto.AdminCreateUserRequest) (*dto.UserResponse, error) {
	if _, err := s.userRepo.FindByEmail(db, req.Email); err == nil {
		return nil, apperrors.ErrEmailAlreadyExists
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.ErrDatabase(err)
	}

	// Random placeholder hash: the account is unusable until the invite
	// token sets a real password.
	hash, err := auth.HashPassword(auth.GenerateRandomToken())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:             req.Email,
		PasswordHash:      hash,
		Role:              req.Role,
		AccountStatus:     models.AccountStatusApproved,
		VerificationToken: auth.GenerateRandomToken(),
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.Create(tx, user); err != nil {
			return err
		}
		return s.userRepo.CreateProfile(tx, &models.Profile{
			UserID:   user.ID,
			FullName: req.Name,
		})
	})
	if err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.ErrDatabase(err)
	}

	s.emailService.SendInvite(user.Email, req.Name, user.VerificationToken)

	logger.CtxInfo(ctx, "user created by admin", "user_id", user.ID, "role", user.Role)

	user.Profile = &models.Profile{UserID: user.ID, FullName: req.Name}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *userService) ApproveUser(ctx context.Context, db *gorm.DB, userID string) error {
	user, err := s.findUser(db, userID)
	if err != nil {
		return err
	}
	if user.AccountStatus == models.AccountStatusApproved {
		return nil
	}

	if err := s.userRepo.UpdateAccountStatus(db, userID, models.AccountStatusApproved); err != nil {
		return apperrors.ErrDatabase(err)
	}

	s.emailService.SendApproved(user.Email, displayName(user))
	logger.CtxInfo(ctx, "user approved", "user_id", userID)
	return nil
}

func (s *userService) RejectUser(ctx context.Context, db *gorm.DB, userID string, reason string) error {
	user, err := s.findUser(db, userID)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdateAccountStatus(db, userID, models.AccountStatusRejected); err != nil {
		return apperrors.ErrDatabase(err)
	}

	s.emailService.SendRejected(user.Email, displayName(user), reason)
	logger.CtxInfo(ctx, "user rejected", "user_id", userID)
	return nil
}

func (s *userService) SuspendUser(ctx context.Context, db *gorm.DB, adminID, userID string) error {
	if adminID == userID {
		return apperrors.ErrCannotModifySelf
	}

	user, err := s.findUser(db, userID)
	if err != nil {
		return err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.UpdateAccountStatus(tx, userID, models.AccountStatusSuspended); err != nil {
			return err
		}
		// A suspended account loses its sessions immediately.
		return s.userRepo.DeleteUserRefreshTokens(tx, userID)
	})
	if err != nil {
		return apperrors.ErrDatabase(err)
	}

	s.emailService.SendSuspended(user.Email, displayName(user))
	logger.CtxInfo(ctx, "user suspended", "user_id", userID)
	return nil
}

func (s *userService) ReinstateUser(ctx context.Context, db *gorm.DB, userID string) error {
	user, err := s.findUser(db, userID)
	if err != nil {
		return err
	}
	if user.AccountStatus != models.AccountStatusSuspended {
		return apperrors.ErrInvalidStatus("user", "only suspended accounts can be reinstated")
	}

	if err := s.userRepo.UpdateAccountStatus(db, userID, models.AccountStatusApproved); err != nil {
		return apperrors.ErrDatabase(err)
	}

	s.emailService.SendApproved(user.Email, displayName(user))
	logger.CtxInfo(ctx, "user reinstated", "user_id", userID)
	return nil
}

// ChangeRole is a single-row UPDATE: the user always holds exactly one
// role, there is no delete-then-insert window.
func (s *userService) ChangeRole(ctx context.Context, db *gorm.DB, adminID, userID string, role models.UserRole) error {
	if adminID == userID {
		return apperrors.ErrCannotModifySelf
	}
	if err := auth.ValidateRole(string(role)); err != nil {
		return apperrors.ErrInvalidUserRole
	}

	if _, err := s.findUser(db, userID); err != nil {
		return err
	}

	if err := s.userRepo.UpdateRole(db, userID, role); err != nil {
		return apperrors.ErrDatabase(err)
	}

	logger.CtxInfo(ctx, "role changed", "user_id", userID, "role", role)
	return nil
}

func (s *userService) DeleteUser(ctx context.Context, db *gorm.DB, adminID, userID string) error {
	if adminID == userID {
		return apperrors.ErrCannotModifySelf
	}

	if _, err := s.findUser(db, userID); err != nil {
		return err
	}

	if err := s.userRepo.Delete(db, userID); err != nil {
		return apperrors.ErrDatabase(err)
	}

	logger.CtxInfo(ctx, "user deleted", "user_id", userID)
	return nil
}

func (s *userService) findUser(db *gorm.DB, userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.ErrDatabase(err)
	}
	return user, nil
}
