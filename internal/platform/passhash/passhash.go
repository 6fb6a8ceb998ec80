package passhash

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Esquema de password heredado de los clientes móviles:
// salt aleatorio, digest(salt||password) iterado N veces,
// almacenado como "$iterations$salt$hash" (salt y hash en hex).
// El formato no se puede cambiar sin invalidar hashes ya persistidos.

const (
	DefaultIterations = 10000
	MinIterations     = 1000
	saltBytes         = 16
)

var (
	ErrInvalidHash = errors.New("invalid password hash")
	ErrMismatch    = errors.New("password mismatch")
)

// Hash genera un hash con el número de iteraciones por defecto.
func Hash(password string) (string, error) {
	return HashWithIterations(password, DefaultIterations)
}

func HashWithIterations(password string, iterations int) (string, error) {
	if password == "" {
		return "", errors.New("password required")
	}
	if iterations < MinIterations {
		iterations = MinIterations
	}

	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("passhash: read salt: %w", err)
	}

	sum := digest(salt, password, iterations)
	return fmt.Sprintf("$%d$%s$%s", iterations, hex.EncodeToString(salt), hex.EncodeToString(sum)), nil
}

// Verify recalcula el hash con los parámetros almacenados y compara
// en tiempo constante. Devuelve ErrMismatch si no coincide.
func Verify(password, stored string) error {
	iterations, salt, want, err := parse(stored)
	if err != nil {
		return err
	}

	got := digest(salt, password, iterations)
	if subtle.ConstantTimeCompare(got, want) != 1 {
		return ErrMismatch
	}
	return nil
}

func digest(salt []byte, password string, iterations int) []byte {
	sum := sha256.Sum256(append(append([]byte{}, salt...), []byte(password)...))
	for i := 1; i < iterations; i++ {
		sum = sha256.Sum256(sum[:])
	}
	return sum[:]
}

func parse(stored string) (iterations int, salt, hash []byte, err error) {
	// "$iter$salt$hash" => ["", iter, salt, hash]
	parts := strings.Split(stored, "$")
	if len(parts) != 4 || parts[0] != "" {
		return 0, nil, nil, ErrInvalidHash
	}

	iterations, err = strconv.Atoi(parts[1])
	if err != nil || iterations <= 0 {
		return 0, nil, nil, ErrInvalidHash
	}

	salt, err = hex.DecodeString(parts[2])
	if err != nil || len(salt) == 0 {
		return 0, nil, nil, ErrInvalidHash
	}

	hash, err = hex.DecodeString(parts[3])
	if err != nil || len(hash) == 0 {
		return 0, nil, nil, ErrInvalidHash
	}

	return iterations, salt, hash, nil
}
