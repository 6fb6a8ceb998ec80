package users

import "time"

// User es la cuenta local del dueño. PasswordHash usa el formato
// $iterations$salt$hash (ver platform/passhash) y nunca sale por la API.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"` // siempre en minúsculas
	DisplayName  string `json:"display_name,omitempty"`
	PasswordHash string `json:"password_hash"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
