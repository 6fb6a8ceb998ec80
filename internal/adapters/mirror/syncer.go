package mirror

import (
	"context"

	"pet-care-tracker/internal/platform/logger"
	"pet-care-tracker/internal/ports/mirror"
)

// Syncer re-empuja el estado local completo al backend remoto. Es la
// operación detrás de POST /sync: push-only, documento por documento,
// best-effort (un doc que falla no frena al resto).
type Syncer struct {
	source mirror.Snapshotter
	sink   mirror.Sink
	log    logger.Logger
}

func NewSyncer(source mirror.Snapshotter, sink mirror.Sink, log logger.Logger) *Syncer {
	return &Syncer{
		source: source,
		sink:   sink,
		log:    log.With(map[string]any{"component": "syncer"}),
	}
}

// Result resume el push: cuántos documentos subieron y cuántos fallaron.
type Result struct {
	Pushed int `json:"pushed"`
	Failed int `json:"failed"`
}

func (s *Syncer) PushAll(ctx context.Context) (Result, error) {
	docs, err := s.source.SnapshotAll(ctx)
	if err != nil {
		return Result{}, err
	}

	var res Result
	for _, d := range docs {
		if err := s.sink.Upsert(ctx, d); err != nil {
			res.Failed++
			s.log.Warn("sync push failed", map[string]any{
				"table": d.Table,
				"id":    d.ID,
				"error": err.Error(),
			})
			continue
		}
		res.Pushed++
	}

	s.log.Info("sync completed", map[string]any{
		"pushed": res.Pushed,
		"failed": res.Failed,
	})
	return res, nil
}
