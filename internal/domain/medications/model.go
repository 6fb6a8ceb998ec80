package medications

import "time"

// Status del tratamiento.
// @Enum active, completed, discontinued
type Status string

const (
	StatusActive       Status = "active"
	StatusCompleted    Status = "completed"
	StatusDiscontinued Status = "discontinued"
)

// Medication es un tratamiento en curso o histórico de una mascota.
type Medication struct {
	ID    string `json:"id"`
	PetID string `json:"pet_id"`

	Name      string `json:"name"`
	Dosage    string `json:"dosage,omitempty"`    // ej: "5mg", "media pastilla"
	Frequency string `json:"frequency,omitempty"` // ej: "cada 12h"

	Status    Status     `json:"status"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`

	Notes string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
