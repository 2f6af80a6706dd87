package model

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleFinance Role = "finance"
	RoleManager Role = "manager"
	RoleViewer  Role = "viewer"
)

// Principal is the authenticated caller extracted from the access token.
type Principal struct {
	UserID string
	Name   string
	Role   Role
}

func (p Principal) IsAdmin() bool   { return p.Role == RoleAdmin }
func (p Principal) IsFinance() bool { return p.Role == RoleFinance }
func (p Principal) IsManager() bool { return p.Role == RoleManager }

// HasRole reports whether the principal holds one of roles. Admin passes
// every check.
func (p Principal) HasRole(roles ...Role) bool {
	if p.IsAdmin() {
		return true
	}
	for _, role := range roles {
		if p.Role == role {
			return true
		}
	}
	return false
}

func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleAdmin, RoleFinance, RoleManager, RoleViewer:
		return Role(raw), true
	default:
		return "", false
	}
}
