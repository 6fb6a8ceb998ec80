package passhash

import (
	"strings"
	"testing"
)

func TestHashAndVerify_RoundTrip(t *testing.T) {
	h, err := Hash("s3cret-password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	if !strings.HasPrefix(h, "$10000$") {
		t.Fatalf("expected default iterations prefix, got %s", h)
	}
	if got := len(strings.Split(h, "$")); got != 4 {
		t.Fatalf("expected $iter$salt$hash format, got %s", h)
	}

	if err := Verify("s3cret-password", h); err != nil {
		t.Fatalf("Verify error: %v", err)
	}
}

func TestVerify_WrongPassword(t *testing.T) {
	h, err := Hash("correct")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if err := Verify("incorrect", h); err != ErrMismatch {
		t.Fatalf("expected ErrMismatch, got %v", err)
	}
}

func TestVerify_HonorsStoredIterations(t *testing.T) {
	// Hashes viejos pueden traer otro conteo de iteraciones.
	h, err := HashWithIterations("legacy", 2000)
	if err != nil {
		t.Fatalf("HashWithIterations error: %v", err)
	}
	if !strings.HasPrefix(h, "$2000$") {
		t.Fatalf("expected iterations 2000 in hash, got %s", h)
	}
	if err := Verify("legacy", h); err != nil {
		t.Fatalf("Verify error: %v", err)
	}
}

func TestVerify_RejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"plain",
		"$abc$00$11",
		"$1000$nothex$11",
		"$1000$00$nothex",
		"1000$00$11",
	}
	for _, c := range cases {
		if err := Verify("x", c); err != ErrInvalidHash {
			t.Fatalf("case %q: expected ErrInvalidHash, got %v", c, err)
		}
	}
}

func TestHash_SaltsDiffer(t *testing.T) {
	h1, _ := Hash("same")
	h2, _ := Hash("same")
	if h1 == h2 {
		t.Fatalf("expected distinct salts to produce distinct hashes")
	}
}
