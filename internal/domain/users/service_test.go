package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

// -------------------------
// Test repo + issuer (in-memory)
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID map[string]User
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]User{}}
}

func (r *testRepo) Create(ctx context.Context, u User) error {
	if u.ID == "" {
		return errors.New("repo: id required")
	}
	r.byID[u.ID] = u
	return nil
}

func (r *testRepo) Update(ctx context.Context, u User) error {
	if _, ok := r.byID[u.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[u.ID] = u
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (User, error) {
	u, ok := r.byID[id]
	if !ok {
		return User{}, errRepoNotFound
	}
	return u, nil
}

func (r *testRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	for _, u := range r.byID {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return User{}, errRepoNotFound
}

type testIssuer struct {
	n       int
	revoked []string
}

func (i *testIssuer) Issue(ctx context.Context, userID string, ttl time.Duration) (string, error) {
	i.n++
	return fmt.Sprintf("token-%d", i.n), nil
}

func (i *testIssuer) Revoke(ctx context.Context, token string) error {
	i.revoked = append(i.revoked, token)
	return nil
}

// -------------------------
// Tests
// -------------------------

func TestService_Register_NormalizesEmail(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, &testIssuer{})

	sess, err := svc.Register(context.Background(), RegisterInput{
		Email:    "  Ana@Example.COM ",
		Password: "secret-password",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if sess.User.Email != "ana@example.com" {
		t.Fatalf("expected lowercased email, got %q", sess.User.Email)
	}
	if sess.Token == "" {
		t.Fatal("expected session token on register")
	}
	if sess.User.PasswordHash == "" || strings.Contains(sess.User.PasswordHash, "secret-password") {
		t.Fatalf("password must be stored hashed, got %q", sess.User.PasswordHash)
	}
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, &testIssuer{})

	in := RegisterInput{Email: "ana@example.com", Password: "secret-password"}
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first register: %v", err)
	}

	// Mismo mail con otra capitalización
	in.Email = "ANA@example.com"
	if _, err := svc.Register(context.Background(), in); err != ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestService_Register_WeakPassword(t *testing.T) {
	svc := NewService(newTestRepo(), &testIssuer{})
	_, err := svc.Register(context.Background(), RegisterInput{Email: "ana@example.com", Password: "short"})
	if err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for short password, got %v", err)
	}
}

func TestService_Login(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, &testIssuer{})

	if _, err := svc.Register(context.Background(), RegisterInput{
		Email:    "ana@example.com",
		Password: "secret-password",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	sess, err := svc.Login(context.Background(), "Ana@Example.com", "secret-password")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if sess.Token == "" {
		t.Fatal("expected token on login")
	}

	if _, err := svc.Login(context.Background(), "ana@example.com", "wrong-password"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for bad password, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "ghost@example.com", "secret-password"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestService_Logout_RevokesToken(t *testing.T) {
	issuer := &testIssuer{}
	svc := NewService(newTestRepo(), issuer)

	if err := svc.Logout(context.Background(), "token-1"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(issuer.revoked) != 1 || issuer.revoked[0] != "token-1" {
		t.Fatalf("expected token-1 revoked, got %+v", issuer.revoked)
	}

	// Logout sin token es no-op
	if err := svc.Logout(context.Background(), ""); err != nil {
		t.Fatalf("logout empty: %v", err)
	}
	if len(issuer.revoked) != 1 {
		t.Fatalf("expected no extra revocations, got %+v", issuer.revoked)
	}
}
