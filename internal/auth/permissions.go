package auth

import "errors"

// Roles as carried in JWT claims.
const (
	RoleFree    = "free"
	RolePremium = "premium"
	RoleAdmin   = "admin"
)

// Permissions per role.
var Permissions = map[string][]string{
	RoleAdmin: {
		"users:read",
		"users:write",
		"users:delete",
		"essays:read",
		"essays:write",
		"portfolio:read",
		"portfolio:write",
		"training:review",
		"analytics:read",
		"system:admin",
	},
	RolePremium: {
		"essays:read:self",
		"essays:write:self",
		"analysis:request",
		"export:docx",
	},
	RoleFree: {
		"essays:read:self",
		"essays:write:self",
		"analysis:request",
	},
}

// HasPermission reports whether the role carries the permission.
func HasPermission(role, permission string) bool {
	permissions, exists := Permissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the claims belong to an administrator.
func IsAdmin(claims *Claims) bool {
	return claims.Role == RoleAdmin
}

// IsPremiumOrHigher reports whether the claims carry a paid tier.
func IsPremiumOrHigher(claims *Claims) bool {
	return claims.Role == RolePremium || claims.Role == RoleAdmin
}

// ValidateRole checks that a role string is one of the known roles.
func ValidateRole(role string) error {
	switch role {
	case RoleFree, RolePremium, RoleAdmin:
		return nil
	default:
		return errors.New("invalid role")
	}
}
