package auth

import (
	"github.com/edutech/studify/internal/app/models"
)

// Principal is the authenticated identity attached to a request. It is
// passed explicitly into every service operation; there is no ambient
// security context. Role and Active always come from the store, never from
// token claims, so a role change or deactivation takes effect immediately.
type Principal struct {
	UserID   int64
	Username string
	Role     models.Role
	Active   bool
}

// IsAdmin reports whether the principal holds the ADMIN role.
func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

// IsTeacher reports whether the principal holds the TEACHER role.
func (p Principal) IsTeacher() bool {
	return p.Role == models.RoleTeacher
}

// IsStudent reports whether the principal holds the STUDENT role.
func (p Principal) IsStudent() bool {
	return p.Role == models.RoleStudent
}
