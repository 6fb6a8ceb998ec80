package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-care-tracker/internal/platform/passhash"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

const minPasswordLen = 8

// TokenTTL es la vigencia de los tokens de sesión emitidos en login/register.
const TokenTTL = 30 * 24 * time.Hour

// TokenIssuer emite y revoca tokens de sesión. Lo implementa el adaptador
// localtoken; acá solo interesa el contrato.
type TokenIssuer interface {
	Issue(ctx context.Context, userID string, ttl time.Duration) (string, error)
	Revoke(ctx context.Context, token string) error
}

type Service struct {
	repo   Repository
	tokens TokenIssuer
	now    func() time.Time
}

func NewService(repo Repository, tokens TokenIssuer) *Service {
	return &Service{repo: repo, tokens: tokens, now: time.Now}
}

type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
}

// Session es el resultado de register/login: el usuario más su token.
type Session struct {
	User  User
	Token string
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (Session, error) {
	email := normalizeEmail(in.Email)
	if email == "" || !strings.Contains(email, "@") {
		return Session{}, ErrInvalidInput
	}
	if len(in.Password) < minPasswordLen {
		return Session{}, ErrInvalidInput
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return Session{}, ErrEmailTaken
	}

	hash, err := passhash.Hash(in.Password)
	if err != nil {
		return Session{}, err
	}

	now := s.now()
	u := User{
		ID:           uuid.NewString(),
		Email:        email,
		DisplayName:  strings.TrimSpace(in.DisplayName),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return Session{}, err
	}

	token, err := s.tokens.Issue(ctx, u.ID, TokenTTL)
	if err != nil {
		return Session{}, err
	}
	return Session{User: u, Token: token}, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return Session{}, ErrInvalidCredentials
	}

	if err := passhash.Verify(password, u.PasswordHash); err != nil {
		return Session{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(ctx, u.ID, TokenTTL)
	if err != nil {
		return Session{}, err
	}
	return Session{User: u, Token: token}, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	return s.tokens.Revoke(ctx, token)
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	u, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return User{}, ErrNotFound
	}
	return u, nil
}
