package meals

import "time"

// Meal es una entrada del registro de alimentación.
type Meal struct {
	ID    string `json:"id"`
	PetID string `json:"pet_id"`

	// Referencia opcional al catálogo de alimentos del usuario.
	FoodItemID string `json:"food_item_id,omitempty"`

	FedAt       time.Time `json:"fed_at"`
	AmountGrams float64   `json:"amount_grams"`
	Calories    float64   `json:"calories,omitempty"`

	Notes string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// DayTotal es un bucket del gráfico de alimentación: totales por día.
type DayTotal struct {
	Date     string  `json:"date"` // YYYY-MM-DD
	Meals    int     `json:"meals"`
	Grams    float64 `json:"grams"`
	Calories float64 `json:"calories"`
}
