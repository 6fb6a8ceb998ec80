package healthrecords

import "time"

// RecordType clasifica la entrada del historial.
type RecordType string

const (
	TypeVetVisit  RecordType = "VET_VISIT"
	TypeVaccine   RecordType = "VACCINE"
	TypeWeight    RecordType = "WEIGHT"
	TypeSymptom   RecordType = "SYMPTOM"
	TypeNote      RecordType = "NOTE"
	TypeDeworming RecordType = "DEWORMING"
)

// Record es una entrada del historial de salud de una mascota.
// Value/Unit se usan en registros con medición (WEIGHT: kg por defecto).
type Record struct {
	ID    string `json:"id"`
	PetID string `json:"pet_id"`

	Type       RecordType `json:"type"`
	Title      string     `json:"title"`
	Details    string     `json:"details,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`

	Value float64 `json:"value,omitempty"`
	Unit  string  `json:"unit,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// WeightPoint es un punto de la serie de peso (ascendente por fecha).
type WeightPoint struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// WeightHistory agrupa la serie con el último valor registrado.
type WeightHistory struct {
	Points []WeightPoint `json:"points"`
	Latest *WeightPoint  `json:"latest,omitempty"`
}
