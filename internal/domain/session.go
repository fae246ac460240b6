package domain

import "strings"

// Role determines the menu, allowed sections and API scope of a signed-in user.
type Role string

const (
	RoleGuest   Role = "guest"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// ParseRole normalizes the role strings the backend emits (ROLE_USER, ROLE_MANAGER,
// "user", ...) into the closed Role set. Unknown values fall back to guest, the
// least privileged role.
func ParseRole(s string) Role {
	v := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "ROLE_"))
	v = strings.TrimPrefix(v, "role_")
	switch v {
	case "manager":
		return RoleManager
	case "admin":
		return RoleAdmin
	default:
		return RoleGuest
	}
}

type User struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// Session is the process-wide authenticated identity. A session is either whole
// (token and user both present) or absent; half-populated sessions never escape
// the store.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

func (s Session) Valid() bool {
	return s.Token != "" && s.User.Email != ""
}
