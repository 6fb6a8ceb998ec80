package tasks

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, t Task) error
	Update(ctx context.Context, t Task) error
	GetByID(ctx context.Context, id string) (Task, error)
	Delete(ctx context.Context, id string) error

	// ListByPet devuelve las tareas de la mascota, ordenadas por due_at asc.
	ListByPet(ctx context.Context, petID string) ([]Task, error)

	// ListOverdue devuelve las pendientes con due_at anterior a now,
	// la más atrasada primero.
	ListOverdue(ctx context.Context, petID string, now time.Time) ([]Task, error)
}
