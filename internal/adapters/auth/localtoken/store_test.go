package localtoken

import (
	"context"
	"testing"
	"time"

	"pet-care-tracker/internal/adapters/storage/kvstore"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	kv, err := kvstore.Open(t.TempDir(), kvstore.Options{})
	if err != nil {
		t.Fatalf("open kvstore: %v", err)
	}
	return NewStore(kv)
}

func TestIssueAndVerify(t *testing.T) {
	store := newTestStore(t)
	verifier := NewVerifier(store)
	ctx := context.Background()

	token, err := store.Issue(ctx, "user-1", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if len(token) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(token))
	}

	claims, err := verifier.Verify(ctx, token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Fatalf("expected user-1, got %q", claims.UserID)
	}

	if _, err := verifier.Verify(ctx, "garbage"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for unknown token, got %v", err)
	}
}

func TestVerify_ExpiredTokenIsRejectedAndCleaned(t *testing.T) {
	store := newTestStore(t)
	verifier := NewVerifier(store)
	ctx := context.Background()

	issued := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return issued }

	token, err := store.Issue(ctx, "user-1", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Avanzar el reloj más allá del TTL
	store.now = func() time.Time { return issued.Add(2 * time.Hour) }

	if _, err := verifier.Verify(ctx, token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}

	// El token vencido quedó eliminado: volver el reloj atrás no lo revive
	store.now = func() time.Time { return issued }
	if _, err := verifier.Verify(ctx, token); err != ErrInvalidToken {
		t.Fatalf("expected expired token deleted, got %v", err)
	}
}

func TestRevoke(t *testing.T) {
	store := newTestStore(t)
	verifier := NewVerifier(store)
	ctx := context.Background()

	token, _ := store.Issue(ctx, "user-1", time.Hour)
	if err := store.Revoke(ctx, token); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if _, err := verifier.Verify(ctx, token); err != ErrInvalidToken {
		t.Fatalf("expected revoked token rejected, got %v", err)
	}

	// Revocar algo desconocido no es error
	if err := store.Revoke(ctx, "ghost"); err != nil {
		t.Fatalf("revoke unknown: %v", err)
	}
}
