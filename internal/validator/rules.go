package validator

import (
	"log"

	"essaylab_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules registers the domain validation tags backed by the
// enums in models/statuses.go.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// A rule that fails to register is a startup error.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-account-status", validateAccountStatus)
	mustRegister("is-essay-status", validateEssayStatus)
	mustRegister("is-english-variant", validateEnglishVariant)
	mustRegister("is-score", validateScore)
}

// Empty values pass; 'required' handles presence.

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.UserRole(value) {
	case models.UserRoleFree, models.UserRolePremium, models.UserRoleAdmin:
		return true
	}
	return false
}

func validateAccountStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.AccountStatus(value) {
	case models.AccountStatusPending, models.AccountStatusApproved,
		models.AccountStatusRejected, models.AccountStatusSuspended:
		return true
	}
	return false
}

func validateEssayStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.EssayStatus(value) {
	case models.EssayStatusDraft, models.EssayStatusInReview,
		models.EssayStatusCompleted, models.EssayStatusArchived:
		return true
	}
	return false
}

func validateEnglishVariant(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.EnglishVariant(value) {
	case models.EnglishAmerican, models.EnglishBritish:
		return true
	}
	return false
}

// Scores are 0-100 throughout.
func validateScore(fl validator.FieldLevel) bool {
	value := fl.Field().Int()
	return value >= 0 && value <= 100
}
