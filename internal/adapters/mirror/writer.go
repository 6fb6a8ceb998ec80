// Package mirror implementa los adaptadores de espejo remoto: el Writer con
// reintentos que envuelve a cualquier sink, y el Syncer de re-push completo.
package mirror

import (
	"context"
	"time"

	"pet-care-tracker/internal/platform/logger"
	"pet-care-tracker/internal/ports/mirror"
)

const (
	defaultAttempts = 3
	defaultBackoff  = 250 * time.Millisecond
)

// Writer decora un sink con reintentos acotados. Si todos fallan, loguea y
// se traga el error: el registro local es la fuente de verdad y el syncer
// puede re-empujar después.
type Writer struct {
	sink     mirror.Sink
	log      logger.Logger
	attempts int
	backoff  time.Duration
}

func NewWriter(sink mirror.Sink, log logger.Logger) *Writer {
	return &Writer{
		sink:     sink,
		log:      log.With(map[string]any{"component": "mirror"}),
		attempts: defaultAttempts,
		backoff:  defaultBackoff,
	}
}

func (w *Writer) Upsert(ctx context.Context, d mirror.Document) error {
	w.retry(ctx, "upsert", d.Table, d.ID, func() error {
		return w.sink.Upsert(ctx, d)
	})
	return nil
}

func (w *Writer) Delete(ctx context.Context, table, id string) error {
	w.retry(ctx, "delete", table, id, func() error {
		return w.sink.Delete(ctx, table, id)
	})
	return nil
}

func (w *Writer) retry(ctx context.Context, op, table, id string, fn func() error) {
	backoff := w.backoff

	var lastErr error
	for attempt := 1; attempt <= w.attempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return
		}
		if attempt == w.attempts {
			break
		}

		select {
		case <-ctx.Done():
			lastErr = ctx.Err()
			attempt = w.attempts
		case <-time.After(backoff):
			backoff *= 2
		}
	}

	w.log.Warn("mirror write failed, keeping local copy", map[string]any{
		"op":    op,
		"table": table,
		"id":    id,
		"error": lastErr.Error(),
	})
}
