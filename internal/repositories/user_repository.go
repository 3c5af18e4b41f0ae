package repositories

import (
	"errors"
	"time"

	"essaylab_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrTokenNotFound     = errors.New("refresh token not found")
)

type UserFilter struct {
	Role          models.UserRole
	AccountStatus models.AccountStatus
	IsVerified    *bool
	Search        string
	Page          int
	PageSize      int
}

type UserRepository interface {
	// User operations
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	Create(db *gorm.DB, user *models.User) error
	Update(db *gorm.DB, user *models.User) error
	UpdateAccountStatus(db *gorm.DB, userID string, status models.AccountStatus) error
	UpdateRole(db *gorm.DB, userID string, role models.UserRole) error
	VerifyUser(db *gorm.DB, userID string) error
	Delete(db *gorm.DB, userID string) error
	UpdateLastActive(db *gorm.DB, userID string) error

	FindByVerificationToken(db *gorm.DB, token string) (*models.User, error)
	FindByResetToken(db *gorm.DB, token string) (*models.User, error)

	// Profile operations
	CreateProfile(db *gorm.DB, profile *models.Profile) error
	FindProfileByUserID(db *gorm.DB, userID string) (*models.Profile, error)
	UpdateProfile(db *gorm.DB, profile *models.Profile) error

	// RefreshToken operations
	CreateRefreshToken(db *gorm.DB, token *models.RefreshToken) error
	FindRefreshToken(db *gorm.DB, token string) (*models.RefreshToken, error)
	DeleteRefreshToken(db *gorm.DB, token string) error
	DeleteUserRefreshTokens(db *gorm.DB, userID string) error
	CleanExpiredRefreshTokens(db *gorm.DB) (int64, error)

	// Admin operations
	FindWithFilter(db *gorm.DB, criteria UserFilter) ([]models.User, int64, error)
	CountByStatus(db *gorm.DB, status models.AccountStatus) (int64, error)
}

type userRepository struct{}

func NewUserRepository() UserRepository {
	return &userRepository{}
}

// User operations

func (r *userRepository) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	err := db.Preload("Profile").First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := db.Preload("Profile").First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(db *gorm.DB, user *models.User) error {
	var existing models.User
	if err := db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return ErrUserAlreadyExists
	}
	return db.Create(user).Error
}

func (r *userRepository) Update(db *gorm.DB, user *models.User) error {
	result := db.Model(user).Updates(map[string]interface{}{
		"email":              user.Email,
		"role":               user.Role,
		"account_status":     user.AccountStatus,
		"is_verified":        user.IsVerified,
		"verification_token": user.VerificationToken,
		"reset_token":        user.ResetToken,
		"reset_token_exp":    user.ResetTokenExp,
		"updated_at":         time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepository) UpdateAccountStatus(db *gorm.DB, userID string, status models.AccountStatus) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).
		Update("account_status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UpdateRole is a single-row update, so there is no window where the user
// has no role.
func (r *userRepository) UpdateRole(db *gorm.DB, userID string, role models.UserRole) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).
		Update("role", role)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepository) VerifyUser(db *gorm.DB, userID string) error {
	return db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"is_verified":        true,
		"verification_token": "",
	}).Error
}

func (r *userRepository) Delete(db *gorm.DB, userID string) error {
	result := db.Delete(&models.User{}, "id = ?", userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepository) UpdateLastActive(db *gorm.DB, userID string) error {
	return db.Model(&models.User{}).Where("id = ?", userID).
		Update("last_active_at", time.Now()).Error
}

func (r *userRepository) FindByVerificationToken(db *gorm.DB, token string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "verification_token = ? AND verification_token != ''", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByResetToken(db *gorm.DB, token string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "reset_token = ? AND reset_token != ''", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Profile operations

func (r *userRepository) CreateProfile(db *gorm.DB, profile *models.Profile) error {
	return db.Create(profile).Error
}

func (r *userRepository) FindProfileByUserID(db *gorm.DB, userID string) (*models.Profile, error) {
	var profile models.Profile
	err := db.First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *userRepository) UpdateProfile(db *gorm.DB, profile *models.Profile) error {
	return db.Save(profile).Error
}

// RefreshToken operations

func (r *userRepository) CreateRefreshToken(db *gorm.DB, token *models.RefreshToken) error {
	return db.Create(token).Error
}

func (r *userRepository) FindRefreshToken(db *gorm.DB, token string) (*models.RefreshToken, error) {
	var rt models.RefreshToken
	err := db.First(&rt, "token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	return &rt, nil
}

func (r *userRepository) DeleteRefreshToken(db *gorm.DB, token string) error {
	return db.Delete(&models.RefreshToken{}, "token = ?", token).Error
}

func (r *userRepository) DeleteUserRefreshTokens(db *gorm.DB, userID string) error {
	return db.Delete(&models.RefreshToken{}, "user_id = ?", userID).Error
}

func (r *userRepository) CleanExpiredRefreshTokens(db *gorm.DB) (int64, error) {
	result := db.Delete(&models.RefreshToken{}, "expires_at < ?", time.Now())
	return result.RowsAffected, result.Error
}

// Admin operations

func (r *userRepository) FindWithFilter(db *gorm.DB, criteria UserFilter) ([]models.User, int64, error) {
	query := db.Model(&models.User{}).Preload("Profile")

	if criteria.Role != "" {
		query = query.Where("role = ?", criteria.Role)
	}
	if criteria.AccountStatus != "" {
		query = query.Where("account_status = ?", criteria.AccountStatus)
	}
	if criteria.IsVerified != nil {
		query = query.Where("is_verified = ?", *criteria.IsVerified)
	}
	if criteria.Search != "" {
		query = query.Where("email ILIKE ?", "%"+criteria.Search+"%")
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

	var users []models.User
	err := query.Order("created_at DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&users).Error
	return users, total, err
}

func (r *userRepository) CountByStatus(db *gorm.DB, status models.AccountStatus) (int64, error) {
	var count int64
	err := db.Model(&models.User{}).Where("account_status = ?", status).Count(&count).Error
	return count, err
}
