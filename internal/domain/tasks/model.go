package tasks

import "time"

// Kind clasifica la tarea de cuidado.
// @Enum feeding, walk, medication, grooming, vet, other
type Kind string

const (
	KindFeeding    Kind = "feeding"
	KindWalk       Kind = "walk"
	KindMedication Kind = "medication"
	KindGrooming   Kind = "grooming"
	KindVet        Kind = "vet"
	KindOther      Kind = "other"
)

// Status de la tarea.
// @Enum pending, completed
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

type Task struct {
	ID    string `json:"id"`
	PetID string `json:"pet_id"`

	Title string `json:"title"`
	Kind  Kind   `json:"kind"`
	Notes string `json:"notes,omitempty"`

	DueAt       time.Time  `json:"due_at"`
	Status      Status     `json:"status"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
