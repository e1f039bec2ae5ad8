package models

import "strings"

// Role identifies which dashboard a user belongs to.
type Role string

const (
	RoleStudent Role = "ESTUDANTE"
	RoleAdmin   Role = "ADMIN"
	RoleMentor  Role = "MENTOR"
)

// Dashboard root paths and the public entry points.
const (
	PathLogin            = "/login"
	PathRegister         = "/registro"
	PathLogout           = "/logout"
	PathStudentDashboard = "/dashboard"
	PathAdminDashboard   = "/admin"
	PathMentorDashboard  = "/mentor"
)

// ParseRole normalizes a stored role value. Reads are case-insensitive;
// anything outside the known set yields the zero Role.
func ParseRole(raw string) Role {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(RoleStudent):
		return RoleStudent
	case string(RoleAdmin):
		return RoleAdmin
	case string(RoleMentor):
		return RoleMentor
	default:
		return ""
	}
}

// Valid reports whether the role is one of the three known roles.
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleAdmin || r == RoleMentor
}

// DashboardPath resolves the dashboard root for a role. Unknown roles
// resolve to the login path so a broken session never lands on a
// protected subtree.
func (r Role) DashboardPath() string {
	switch r {
	case RoleStudent:
		return PathStudentDashboard
	case RoleAdmin:
		return PathAdminDashboard
	case RoleMentor:
		return PathMentorDashboard
	default:
		return PathLogin
	}
}

// Session is the authenticated user context carried through every request.
// Token present means authenticated; Role is only meaningful alongside a token.
type Session struct {
	Token  string `json:"-"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
}

// Authenticated reports whether the session carries a backend credential.
func (s *Session) Authenticated() bool {
	return s != nil && s.Token != ""
}
