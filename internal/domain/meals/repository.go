package meals

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, m Meal) error
	GetByID(ctx context.Context, id string) (Meal, error)
	Delete(ctx context.Context, id string) error

	// ListByPet devuelve las comidas más recientes primero.
	ListByPet(ctx context.Context, petID string, filter ListFilter) ([]Meal, error)
}

type ListFilter struct {
	From  *time.Time
	To    *time.Time
	Limit int
}
