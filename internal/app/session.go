package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"smarthotel/internal/domain"
)

// SessionService is the process-wide session holder. Readers always see a
// consistent snapshot; only SignIn and SignOut mutate it.
type SessionService struct {
	mu    sync.RWMutex
	store domain.SessionStore
	cur   *domain.Session
}

// NewSessionService loads any persisted session. Corrupt blobs and sessions
// whose JWT has expired come up as unauthenticated; construction never fails.
func NewSessionService(store domain.SessionStore) *SessionService {
	s := &SessionService{store: store}
	if sess, ok := store.Load(); ok {
		if TokenExpired(sess.Token, time.Now()) {
			log.Info().Str("user", sess.User.Email).Msg("persisted session expired, discarding")
			_ = store.Clear()
		} else {
			s.cur = &sess
		}
	}
	return s
}

func (s *SessionService) Current() (domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cur == nil {
		return domain.Session{}, false
	}
	return *s.cur, true
}

// SignIn stores the session and persists it. The in-memory session is set even
// if persistence fails; the returned error only reports the persistence problem.
func (s *SessionService) SignIn(token string, user domain.User) error {
	sess := domain.Session{Token: token, User: user}
	if !sess.Valid() {
		return fmt.Errorf("refusing to store partial session")
	}
	s.mu.Lock()
	s.cur = &sess
	s.mu.Unlock()
	return s.store.Save(sess)
}

func (s *SessionService) SignOut() error {
	s.mu.Lock()
	s.cur = nil
	s.mu.Unlock()
	return s.store.Clear()
}

// Token implements the backend client's TokenSource.
func (s *SessionService) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cur == nil {
		return ""
	}
	return s.cur.Token
}

// TokenExpired inspects the token's exp claim without verifying the signature
// (the client holds no secret). Opaque non-JWT tokens and tokens without an exp
// claim are treated as live; the backend rejects them with 401 if they are not.
func TokenExpired(token string, now time.Time) bool {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	return claims.ExpiresAt != nil && claims.ExpiresAt.Time.Before(now)
}

// Authenticator runs the login/register flows and keeps the session service in
// step with the backend's answers.
type Authenticator struct {
	backend  domain.Backend
	sessions *SessionService
}

func NewAuthenticator(b domain.Backend, s *SessionService) *Authenticator {
	return &Authenticator{backend: b, sessions: s}
}

func (a *Authenticator) Login(ctx context.Context, email, password string) (domain.Session, error) {
	res, err := a.backend.Login(ctx, email, password)
	if err != nil {
		return domain.Session{}, err
	}
	if res.JWTToken == "" {
		return domain.Session{}, fmt.Errorf("login response carried no token")
	}
	role := domain.RoleGuest
	if len(res.Roles) > 0 {
		role = domain.ParseRole(res.Roles[0])
	}
	user := domain.User{Email: email, Name: res.Username, Role: role}
	if err := a.sessions.SignIn(res.JWTToken, user); err != nil {
		log.Warn().Err(err).Msg("session persisted with errors; continuing signed in")
	}
	return domain.Session{Token: res.JWTToken, User: user}, nil
}

// Register creates a guest or manager account. Admin accounts are provisioned
// out of band, never through self-registration.
func (a *Authenticator) Register(ctx context.Context, name, email, password string, role domain.Role) error {
	if role == domain.RoleAdmin {
		return fmt.Errorf("admin accounts cannot self-register")
	}
	return a.backend.Register(ctx, name, email, password, role)
}

func (a *Authenticator) Logout() error { return a.sessions.SignOut() }
