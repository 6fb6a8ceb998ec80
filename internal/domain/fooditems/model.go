package fooditems

import "time"

// Kind del alimento.
// @Enum dry, wet, treat
type Kind string

const (
	KindDry   Kind = "dry"
	KindWet   Kind = "wet"
	KindTreat Kind = "treat"
)

// FoodItem es una entrada del catálogo de alimentos del usuario.
type FoodItem struct {
	ID          string `json:"id"`
	OwnerUserID string `json:"owner_user_id"`

	Name  string `json:"name"`
	Brand string `json:"brand,omitempty"`
	Kind  Kind   `json:"kind"`

	KcalPer100g float64 `json:"kcal_per_100g,omitempty"`

	Notes string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
