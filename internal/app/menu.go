package app

import "smarthotel/internal/domain"

// Section is one sidebar entry of the application shell.
type Section struct {
	Key   string
	Label string
}

var menuByRole = map[domain.Role][]Section{
	domain.RoleGuest: {
		{Key: "search", Label: "Search"},
		{Key: "bookings", Label: "Bookings"},
		{Key: "reviews", Label: "Reviews & Rating"},
		{Key: "payments", Label: "Payment Details"},
		{Key: "loyalty", Label: "Loyalty Points"},
	},
	domain.RoleManager: {
		{Key: "dashboard", Label: "Dashboard"},
		{Key: "add-hotels-rooms", Label: "Add Hotels & Rooms"},
		{Key: "review-reply", Label: "Review Reply"},
	},
	domain.RoleAdmin: {
		{Key: "dashboard", Label: "Dashboard"},
		{Key: "approve-hotels", Label: "Approve Hotels"},
		{Key: "users-details", Label: "Users Details"},
	},
}

// MenuFor returns the fixed ordered sections for a role. Unknown roles get the
// guest menu. The slice is a copy; callers may not mutate the registry.
func MenuFor(role domain.Role) []Section {
	m, ok := menuByRole[role]
	if !ok {
		m = menuByRole[domain.RoleGuest]
	}
	out := make([]Section, len(m))
	copy(out, m)
	return out
}

// ResolveSection maps a requested section key to one the role may see: the key
// itself when permitted, the role's first section otherwise. Resolving an
// already-valid section is a no-op, so resolution is idempotent.
func ResolveSection(role domain.Role, key string) string {
	m := MenuFor(role)
	for _, s := range m {
		if s.Key == key {
			return key
		}
	}
	return m[0].Key
}

// SignInRequired gates a protected section for an unauthenticated caller. It
// carries the originally requested destination so the shell can land there (or
// on the role's first section) after login.
type SignInRequired struct {
	Target string
}

func (e *SignInRequired) Error() string {
	return "sign in required to open " + e.Target
}

func (e *SignInRequired) Unwrap() error { return domain.ErrSignInRequired }

// Guard gates navigation into the authenticated shell.
type Guard struct {
	sessions *SessionService
}

func NewGuard(s *SessionService) *Guard { return &Guard{sessions: s} }

// Resolve admits the navigation when a session exists, correcting the section
// for the role; otherwise it rejects with SignInRequired preserving the target.
func (g *Guard) Resolve(target string) (string, error) {
	sess, ok := g.sessions.Current()
	if !ok {
		return "", &SignInRequired{Target: target}
	}
	return ResolveSection(sess.User.Role, target), nil
}

// Landing is the role's default section, used after login when no explicit
// destination survived.
func Landing(role domain.Role) string { return MenuFor(role)[0].Key }
