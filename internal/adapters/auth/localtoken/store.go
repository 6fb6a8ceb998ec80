// Package localtoken emite tokens de sesión opacos y los guarda en una
// colección local del kvstore que nunca se espeja al backend remoto.
package localtoken

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"pet-care-tracker/internal/adapters/storage/kvstore"
	portauth "pet-care-tracker/internal/ports/auth"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Record es la fila persistida por token. El token en sí es la clave.
type Record struct {
	Token     string    `json:"id"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

type Store struct {
	col *kvstore.Collection[Record]
	now func() time.Time
}

func NewStore(s *kvstore.Store) *Store {
	return &Store{
		col: kvstore.NewLocalCollection(s, "auth_tokens", func(r Record) string { return r.Token }),
		now: time.Now,
	}
}

// Issue genera un token opaco de 256 bits y lo persiste.
func (s *Store) Issue(ctx context.Context, userID string, ttl time.Duration) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("localtoken: generate token: %w", err)
	}
	token := hex.EncodeToString(buf)

	now := s.now()
	rec := Record{
		Token:     token,
		UserID:    userID,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
	if err := s.col.Create(ctx, rec); err != nil {
		return "", err
	}
	return token, nil
}

// Revoke elimina el token. Revocar un token desconocido no es error.
func (s *Store) Revoke(ctx context.Context, token string) error {
	if err := s.col.Delete(ctx, token); err != nil && !errors.Is(err, kvstore.ErrNotFound) {
		return err
	}
	return nil
}

// Verifier resuelve tokens a claims. Implementa el puerto de auth del router.
type Verifier struct {
	store *Store
}

func NewVerifier(store *Store) *Verifier {
	return &Verifier{store: store}
}

func (v *Verifier) Verify(ctx context.Context, token string) (portauth.Claims, error) {
	if token == "" {
		return portauth.Claims{}, ErrInvalidToken
	}

	rec, err := v.store.col.GetByID(ctx, token)
	if err != nil {
		return portauth.Claims{}, ErrInvalidToken
	}

	if v.store.now().After(rec.ExpiresAt) {
		// Token vencido: limpiarlo de paso.
		_ = v.store.col.Delete(ctx, token)
		return portauth.Claims{}, ErrInvalidToken
	}

	return portauth.Claims{UserID: rec.UserID}, nil
}
