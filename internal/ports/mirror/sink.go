package mirror

import (
	"context"
	"encoding/json"
)

// Document es el registro tal como se persiste localmente: JSON snake_case
// listo para el backend remoto (tabla por entidad).
type Document struct {
	Table string
	ID    string
	Doc   json.RawMessage
}

// Sink recibe los cambios locales que deben reflejarse en el backend remoto.
// Las implementaciones no deben asumir orden entre tablas.
type Sink interface {
	Upsert(ctx context.Context, d Document) error
	Delete(ctx context.Context, table, id string) error
}

// Snapshotter expone el volcado completo del store local para re-sync.
type Snapshotter interface {
	SnapshotAll(ctx context.Context) ([]Document, error)
}
