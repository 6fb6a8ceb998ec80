// Package postgres implementa el sink de espejo sobre Postgres: cada
// colección local se refleja en una tabla (id, doc jsonb, updated_at).
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"pet-care-tracker/internal/ports/mirror"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Tablas espejables. Todo lo que no esté acá se rechaza: los nombres se
// interpolan en el SQL y no pueden venir de afuera sin validar.
var allowedTables = map[string]bool{
	"pets":              true,
	"care_tasks":        true,
	"meals":             true,
	"food_items":        true,
	"medications":       true,
	"health_records":    true,
	"activity_sessions": true,
	"users":             true,
}

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	// defaults razonables para MVP (ajustable luego)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

type Sink struct {
	db *sql.DB
}

func NewSink(db *sql.DB) *Sink {
	return &Sink{db: db}
}

// EnsureSchema crea las tablas espejo si no existen.
func (s *Sink) EnsureSchema(ctx context.Context) error {
	for table := range allowedTables {
		_, err := s.db.ExecContext(ctx, fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id         text PRIMARY KEY,
				doc        jsonb NOT NULL,
				updated_at timestamptz NOT NULL DEFAULT now()
			)
		`, table))
		if err != nil {
			return fmt.Errorf("postgres: ensure table %s: %w", table, err)
		}
	}
	return nil
}

func (s *Sink) Upsert(ctx context.Context, d mirror.Document) error {
	if !allowedTables[d.Table] {
		return fmt.Errorf("postgres: unknown mirror table %q", d.Table)
	}

	_, err := s.db.ExecContext(ctx, fmt.Sprintf(`
		INSERT INTO %s (id, doc, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (id) DO UPDATE
		SET doc = EXCLUDED.doc, updated_at = now()
	`, d.Table), d.ID, []byte(d.Doc))
	return err
}

func (s *Sink) Delete(ctx context.Context, table, id string) error {
	if !allowedTables[table] {
		return fmt.Errorf("postgres: unknown mirror table %q", table)
	}

	_, err := s.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table), id)
	return err
}
