package medications

import "context"

type Repository interface {
	Create(ctx context.Context, m Medication) error
	Update(ctx context.Context, m Medication) error
	GetByID(ctx context.Context, id string) (Medication, error)
	Delete(ctx context.Context, id string) error

	// ListByPet devuelve los tratamientos más recientes primero (start_date desc).
	ListByPet(ctx context.Context, petID string, onlyActive bool) ([]Medication, error)
}
