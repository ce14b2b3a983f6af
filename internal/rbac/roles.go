package rbac

import "centre-portal/internal/auth"

// Role names. They mirror the auth_user flags and are carried in access tokens.
const (
	RoleSuperuser = auth.RoleSuperuser
	RoleStaff     = auth.RoleStaff
)

func IsSuperuser(role string) bool { return role == RoleSuperuser }

// IsKnownRole rejects tokens minted with a role this build does not understand.
func IsKnownRole(role string) bool { return role == RoleSuperuser || role == RoleStaff }
