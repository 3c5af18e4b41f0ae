package dto

import "essaylab_backend/internal/models"

// UpdateProfileRequest - writer-editable profile fields
type UpdateProfileRequest struct {
	FullName      *string `json:"full_name,omitempty"`
	Country       *string `json:"country,omitempty"`
	IntendedMajor *string `json:"intended_major,omitempty"`
	GradYear      *int    `json:"grad_year,omitempty"`
}

// ProfileResponse - profile view
type ProfileResponse struct {
	UserID        string `json:"user_id"`
	FullName      string `json:"full_name"`
	Country       string `json:"country,omitempty"`
	IntendedMajor string `json:"intended_major,omitempty"`
	GradYear      int    `json:"grad_year,omitempty"`
}

// NewProfileResponse maps a profile row to its view.
func NewProfileResponse(p *models.Profile) ProfileResponse {
	return ProfileResponse{
		UserID:        p.UserID,
		FullName:      p.FullName,
		Country:       p.Country,
		IntendedMajor: p.IntendedMajor,
		GradYear:      p.GradYear,
	}
}

// AdminCreateUserRequest - admin-side account creation; the user sets
// their password via the invite email.
type AdminCreateUserRequest struct {
	Email string          `json:"email" binding:"required,email"`
	Name  string          `json:"name" binding:"required"`
	Role  models.UserRole `json:"role" binding:"required,is-user-role"`
}

// ChangeRoleRequest - admin role change
type ChangeRoleRequest struct {
	Role models.UserRole `json:"role" binding:"required,is-user-role"`
}

// RejectUserRequest - optional rejection reason forwarded in the email
type RejectUserRequest struct {
	Reason string `json:"reason,omitempty"`
}

// UserListQuery - admin user listing filter
type UserListQuery struct {
	Status string `form:"status" binding:"omitempty,is-account-status"`
	Role   string `form:"role" binding:"omitempty,is-user-role"`
	Search string `form:"search"`
	Page   int    `form:"page,default=1" binding:"omitempty,min=1"`
	Limit  int    `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
}

// UserListResponse - paginated admin listing
type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
