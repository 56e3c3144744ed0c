package model

// Role represents the role of a platform user.
//
// Roles form a closed set: every redirect decision in the UI goes through
// HomePath rather than comparing role strings in place.
type Role string

const (
	// RoleAdmin manages events, participants and attendance.
	RoleAdmin Role = "admin"
	// RoleParticipant checks in to events and downloads certificates.
	RoleParticipant Role = "participant"
)

// ParseRole maps a role string from the upstream API to a Role.
// Unknown values pass through unchanged so HomePath can fall back to "/".
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin
	case RoleParticipant:
		return RoleParticipant
	default:
		return Role(s)
	}
}

// HomePath returns the default landing page for a role.
// Unrecognized roles land on the public home page.
func HomePath(r Role) string {
	switch r {
	case RoleAdmin:
		return "/admin/dashboard"
	case RoleParticipant:
		return "/participant/dashboard"
	default:
		return "/"
	}
}

// User is the authenticated user profile as returned by GET /users/me/.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Role     Role   `json:"role"`
}

// IsAdmin reports whether the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
