package healthrecords

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, rec Record) error
	GetByID(ctx context.Context, id string) (Record, error)
	Delete(ctx context.Context, id string) error

	// ListByPet devuelve las entradas más recientes primero (occurred_at desc).
	ListByPet(ctx context.Context, petID string, filter ListFilter) ([]Record, error)
}

type ListFilter struct {
	Types []RecordType
	From  *time.Time
	To    *time.Time
	Query string // substring case-insensitive sobre title y details
	Limit int
}
