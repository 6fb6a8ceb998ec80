package activities

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, s Session) error
	Update(ctx context.Context, s Session) error
	GetByID(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error

	// ListByPet devuelve las sesiones más recientes primero (started_at desc).
	ListByPet(ctx context.Context, petID string, from *time.Time, limit int) ([]Session, error)
}
