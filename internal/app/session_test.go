package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"smarthotel/internal/app"
	"smarthotel/internal/domain"
)

func signedJWT(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "guest@example.com",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func TestSessionService_RoundTrip(t *testing.T) {
	store := &memStore{}
	s := app.NewSessionService(store)

	user := domain.User{Email: "guest@example.com", Name: "Guest", Role: domain.RoleGuest}
	if err := s.SignIn("tok-1", user); err != nil {
		t.Fatalf("sign in: %v", err)
	}

	// a fresh service over the same store sees the same session
	s2 := app.NewSessionService(store)
	got, ok := s2.Current()
	if !ok || got.Token != "tok-1" || got.User != user {
		t.Fatalf("reloaded session mismatch: %+v ok=%v", got, ok)
	}

	if err := s2.SignOut(); err != nil {
		t.Fatalf("sign out: %v", err)
	}
	if _, ok := app.NewSessionService(store).Current(); ok {
		t.Fatal("expected no session after sign out")
	}
}

func TestSessionService_PartialSessionRefused(t *testing.T) {
	s := app.NewSessionService(&memStore{})
	if err := s.SignIn("", domain.User{Email: "x@y.com"}); err == nil {
		t.Fatal("token-less session must be refused")
	}
	if err := s.SignIn("tok", domain.User{}); err == nil {
		t.Fatal("user-less session must be refused")
	}
	if _, ok := s.Current(); ok {
		t.Fatal("refused sign-in must not leave a session behind")
	}
}

func TestSessionService_ExpiredTokenLoadsAsAnonymous(t *testing.T) {
	expired := signedJWT(t, time.Now().Add(-time.Hour))
	store := &memStore{sess: &domain.Session{
		Token: expired,
		User:  domain.User{Email: "g@x.com", Role: domain.RoleGuest},
	}}
	if _, ok := app.NewSessionService(store).Current(); ok {
		t.Fatal("expired session must load as unauthenticated")
	}
	if store.sess != nil {
		t.Fatal("expired session blob should be cleared")
	}
}

func TestTokenExpired(t *testing.T) {
	now := time.Now()
	if app.TokenExpired(signedJWT(t, now.Add(time.Hour)), now) {
		t.Fatal("live token reported expired")
	}
	if !app.TokenExpired(signedJWT(t, now.Add(-time.Minute)), now) {
		t.Fatal("expired token reported live")
	}
	// opaque tokens carry no expiry the client can see
	if app.TokenExpired("opaque-session-token", now) {
		t.Fatal("opaque token must be treated as live")
	}
}

func TestAuthenticator_LoginNormalizesRole(t *testing.T) {
	be := &fakeBackend{
		loginFn: func(email, password string) (domain.LoginResult, error) {
			return domain.LoginResult{
				Username: "Maya",
				Roles:    []string{"ROLE_MANAGER"},
				JWTToken: "tok-m",
			}, nil
		},
	}
	sessions := app.NewSessionService(&memStore{})
	auth := app.NewAuthenticator(be, sessions)

	sess, err := auth.Login(context.Background(), "maya@hotel.com", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if sess.User.Role != domain.RoleManager {
		t.Fatalf("role = %s, want manager", sess.User.Role)
	}
	if tok := sessions.Token(); tok != "tok-m" {
		t.Fatalf("token source returned %q", tok)
	}
}

func TestAuthenticator_AdminCannotSelfRegister(t *testing.T) {
	auth := app.NewAuthenticator(&fakeBackend{}, app.NewSessionService(&memStore{}))
	if err := auth.Register(context.Background(), "Eve", "e@x.com", "pw", domain.RoleAdmin); err == nil {
		t.Fatal("admin self-registration must be rejected")
	}
}
