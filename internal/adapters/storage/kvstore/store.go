package kvstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"pet-care-tracker/internal/ports/mirror"
)

var (
	ErrNotFound = errors.New("not found")
	ErrExists   = errors.New("already exists")
)

type Options struct {
	// Mirror recibe cada cambio local (opcional). Los fallos del mirror
	// nunca invalidan la escritura local.
	Mirror mirror.Sink
}

// Store agrupa las colecciones JSON bajo un directorio de datos.
// Una colección = un archivo <dir>/<name>.json.
type Store struct {
	dir  string
	sink mirror.Sink

	mu    sync.Mutex
	snaps map[string]func(ctx context.Context) ([]mirror.Document, error)
}

func Open(dir string, opts Options) (*Store, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("kvstore: data dir required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("kvstore: mkdir %s: %w", dir, err)
	}
	return &Store{
		dir:   dir,
		sink:  opts.Mirror,
		snaps: map[string]func(ctx context.Context) ([]mirror.Document, error){},
	}, nil
}

func (s *Store) register(name string, snap func(ctx context.Context) ([]mirror.Document, error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snaps[name] = snap
}

// SnapshotAll vuelca todas las colecciones espejables, en orden estable por
// nombre. Lo usa el syncer para re-push completo.
func (s *Store) SnapshotAll(ctx context.Context) ([]mirror.Document, error) {
	s.mu.Lock()
	names := make([]string, 0, len(s.snaps))
	for name := range s.snaps {
		names = append(names, name)
	}
	fns := make(map[string]func(ctx context.Context) ([]mirror.Document, error), len(s.snaps))
	for name, fn := range s.snaps {
		fns[name] = fn
	}
	s.mu.Unlock()

	sort.Strings(names)

	out := make([]mirror.Document, 0)
	for _, name := range names {
		docs, err := fns[name](ctx)
		if err != nil {
			return nil, fmt.Errorf("kvstore: snapshot %s: %w", name, err)
		}
		out = append(out, docs...)
	}
	return out, nil
}
