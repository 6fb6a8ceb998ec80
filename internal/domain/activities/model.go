package activities

import "time"

// Kind de la actividad.
// @Enum walk, play, training, other
type Kind string

const (
	KindWalk     Kind = "walk"
	KindPlay     Kind = "play"
	KindTraining Kind = "training"
	KindOther    Kind = "other"
)

// Session es una sesión de actividad. EndedAt nil = sesión en curso.
type Session struct {
	ID    string `json:"id"`
	PetID string `json:"pet_id"`

	Kind      Kind       `json:"kind"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`

	Notes string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// DurationMinutes devuelve la duración de una sesión cerrada (0 si sigue abierta).
func (s Session) DurationMinutes() float64 {
	if s.EndedAt == nil {
		return 0
	}
	return s.EndedAt.Sub(s.StartedAt).Minutes()
}

// DayMinutes es el bucket diario para el gráfico de actividad.
type DayMinutes struct {
	Date     string  `json:"date"` // YYYY-MM-DD
	Sessions int     `json:"sessions"`
	Minutes  float64 `json:"minutes"`
}
