package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"essaylab_backend/internal/auth"
	"essaylab_backend/internal/config"
	"essaylab_backend/internal/logger"
	"essaylab_backend/internal/models"
	"essaylab_backend/internal/repositories"
	"essaylab_backend/internal/services/dto"
	"essaylab_backend/pkg/apperrors"
)

const refreshTokenTTL = 30 * 24 * time.Hour

type AuthService interface {
	Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Refresh(ctx context.Context, db *gorm.DB, req *dto.RefreshTokenRequest) (*dto.AuthResponse, error)
	Logout(ctx context.Context, db *gorm.DB, req *dto.LogoutRequest) error
	VerifyEmail(ctx context.Context, db *gorm.DB, token string) error
	RequestPasswordReset(ctx context.Context, db *gorm.DB, email string) error
	ConfirmPasswordReset(ctx context.Context, db *gorm.DB, req *dto.PasswordResetConfirm) error
	AcceptInvite(ctx context.Context, db *gorm.DB, req *dto.AcceptInviteRequest) (*dto.AuthResponse, error)
}

type authService struct {
	cfg          *config.Config
	userRepo     repositories.UserRepository
	emailService EmailService
}

func NewAuthService(cfg *config.Config, userRepo repositories.UserRepository, emailService EmailService) AuthService {
	return &authService{cfg: cfg, userRepo: userRepo, emailService: emailService}
}

// Register creates a pending account. Every signup waits for admin approval;
// the admin gets a notification email, the user a verification link.
func (s *authService) Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	if _, err := s.userRepo.FindByEmail(db, req.Email); err == nil {
		return nil, apperrors.ErrEmailAlreadyExists
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.ErrDatabase(err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:             req.Email,
		PasswordHash:      hash,
		Role:              models.UserRoleFree,
		AccountStatus:     models.AccountStatusPending,
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

	s.emailService.SendVerification(user.Email, req.Name, user.VerificationToken)
	s.emailService.NotifyAdminNewSignup(user.Email, req.Name)

	logger.CtxInfo(ctx, "user registered", "user_id", user.ID)

	user.Profile = &models.Profile{UserID: user.ID, FullName: req.Name}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.ErrDatabase(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := checkAccountStatus(user); err != nil {
		return nil, err
	}

	resp, err := s.issueTokens(db, user)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateLastActive(db, user.ID); err != nil {
		logger.CtxWithError(ctx, "update last active failed", err, "user_id", user.ID)
	}

	return resp, nil
}

func (s *authService) Refresh(ctx context.Context, db *gorm.DB, req *dto.RefreshTokenRequest) (*dto.AuthResponse, error) {
	stored, err := s.userRepo.FindRefreshToken(db, req.RefreshToken)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("invalid refresh token")
	}
	if time.Now().After(stored.ExpiresAt) {
		_ = s.userRepo.DeleteRefreshToken(db, req.RefreshToken)
		return nil, apperrors.NewUnauthorizedError("refresh token expired")
	}

	user, err := s.userRepo.FindByID(db, stored.UserID)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("invalid refresh token")
	}
	if err := checkAccountStatus(user); err != nil {
		return nil, err
	}

	// Rotation: the presented token is spent.
	if err := s.userRepo.DeleteRefreshToken(db, req.RefreshToken); err != nil {
		return nil, apperrors.ErrDatabase(err)
	}

	return s.issueTokens(db, user)
}

func (s *authService) Logout(ctx context.Context, db *gorm.DB, req *dto.LogoutRequest) error {
	if err := s.userRepo.DeleteRefreshToken(db, req.RefreshToken); err != nil {
		return apperrors.ErrDatabase(err)
	}
	return nil
}

func (s *authService) VerifyEmail(ctx context.Context, db *gorm.DB, token string) error {
	user, err := s.userRepo.FindByVerificationToken(db, token)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NewBadRequestError("invalid verification token")
		}
		return apperrors.ErrDatabase(err)
	}
	if err := s.userRepo.VerifyUser(db, user.ID); err != nil {
		return apperrors.ErrDatabase(err)
	}
	logger.CtxInfo(ctx, "email verified", "user_id", user.ID)
	return nil
}

// RequestPasswordReset never reveals whether the email exists.
func (s *authService) RequestPasswordReset(ctx context.Context, db *gorm.DB, email string) error {
	user, err := s.userRepo.FindByEmail(db, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil
		}
		return apperrors.ErrDatabase(err)
	}

	exp := time.Now().Add(1 * time.Hour)
	user.ResetToken = auth.GenerateRandomToken()
	user.ResetTokenExp = &exp
	if err := s.userRepo.Update(db, user); err != nil {
		return apperrors.ErrDatabase(err)
	}

	s.emailService.SendPasswordReset(user.Email, displayName(user), user.ResetToken)
	return nil
}

func (s *authService) ConfirmPasswordReset(ctx context.Context, db *gorm.DB, req *dto.PasswordResetConfirm) error {
	if err := auth.ValidatePassword(req.NewPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	user, err := s.userRepo.FindByResetToken(db, req.Token)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NewBadRequestError("invalid or expired reset token")
		}
		return apperrors.ErrDatabase(err)
	}
	if user.ResetTokenExp == nil || time.Now().After(*user.ResetTokenExp) {
		return apperrors.NewBadRequestError("invalid or expired reset token")
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	user.PasswordHash = hash
	user.ResetToken = ""
	user.ResetTokenExp = nil

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.Update(tx, user); err != nil {
			return err
		}
		// All sessions end when the password changes.
		return s.userRepo.DeleteUserRefreshTokens(tx, user.ID)
	})
	if err != nil {
		return apperrors.ErrDatabase(err)
	}

	logger.CtxInfo(ctx, "password reset", "user_id", user.ID)
	return nil
}

// AcceptInvite sets the password on an admin-created account and signs the
// user in. Invited accounts are already approved.
func (s *authService) AcceptInvite(ctx context.Context, db *gorm.DB, req *dto.AcceptInviteRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	user, err := s.userRepo.FindByVerificationToken(db, req.Token)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewBadRequestError("invalid invite token")
		}
		return nil, apperrors.ErrDatabase(err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user.PasswordHash = hash
	user.IsVerified = true
	user.VerificationToken = ""
	if err := s.userRepo.Update(db, user); err != nil {
		return nil, apperrors.ErrDatabase(err)
	}

	return s.issueTokens(db, user)
}

func (s *authService) issueTokens(db *gorm.DB, user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refresh := &models.RefreshToken{
		UserID:    user.ID,
		Token:     auth.GenerateRandomToken(),
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}
	if err := s.userRepo.CreateRefreshToken(db, refresh); err != nil {
		return nil, apperrors.ErrDatabase(err)
	}

	if user.Profile == nil {
		if profile, err := s.userRepo.FindProfileByUserID(db, user.ID); err == nil {
			user.Profile = profile
		}
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refresh.Token,
		ExpiresAt:    time.Now().Add(time.Duration(s.cfg.JWT.TTL) * time.Minute),
		User:         dto.NewUserResponse(user),
	}, nil
}

func checkAccountStatus(user *models.User) error {
	switch user.AccountStatus {
	case models.AccountStatusApproved:
		return nil
	case models.AccountStatusSuspended:
		return apperrors.ErrAccountSuspended
	default:
		return apperrors.ErrAccountNotApproved
	}
}

func displayName(user *models.User) string {
	if user.Profile != nil && user.Profile.FullName != "" {
		return user.Profile.FullName
	}
	return user.Email
}
