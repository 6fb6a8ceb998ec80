package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"pet-care-tracker/internal/ports/mirror"
)

// Collection es el repositorio genérico sobre el que se montan los repos por
// entidad: un archivo JSON con lock de archivo (cross-proceso) + RWMutex
// (in-proceso), escritura atómica vía tmp + rename.
type Collection[T any] struct {
	store    *Store
	name     string
	path     string
	flk      *flock.Flock
	id       func(T) string
	mirrored bool

	mu sync.RWMutex
}

// NewCollection crea una colección que se espeja al backend remoto (si el
// store tiene mirror configurado).
func NewCollection[T any](s *Store, name string, id func(T) string) *Collection[T] {
	c := newCollection(s, name, id)
	c.mirrored = true
	s.register(name, c.snapshot)
	return c
}

// NewLocalCollection crea una colección que nunca sale del dispositivo
// (p.ej. tokens de auth).
func NewLocalCollection[T any](s *Store, name string, id func(T) string) *Collection[T] {
	return newCollection(s, name, id)
}

func newCollection[T any](s *Store, name string, id func(T) string) *Collection[T] {
	path := filepath.Join(s.dir, name+".json")
	return &Collection[T]{
		store: s,
		name:  name,
		path:  path,
		flk:   flock.New(path + ".lock"),
		id:    id,
	}
}

func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.load()
}

func (c *Collection[T]) GetByID(ctx context.Context, id string) (T, error) {
	var zero T

	c.mu.RLock()
	defer c.mu.RUnlock()

	items, err := c.load()
	if err != nil {
		return zero, err
	}
	for _, it := range items {
		if c.id(it) == id {
			return it, nil
		}
	}
	return zero, ErrNotFound
}

// Find devuelve los items que cumplen el predicado (scan lineal, como los
// repos del cliente móvil).
func (c *Collection[T]) Find(ctx context.Context, pred func(T) bool) ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items, err := c.load()
	if err != nil {
		return nil, err
	}
	out := make([]T, 0)
	for _, it := range items {
		if pred(it) {
			out = append(out, it)
		}
	}
	return out, nil
}

func (c *Collection[T]) Create(ctx context.Context, item T) error {
	id := c.id(item)
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("kvstore: %s: id required", c.name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load()
	if err != nil {
		return err
	}
	for _, it := range items {
		if c.id(it) == id {
			return ErrExists
		}
	}

	if err := c.save(append(items, item)); err != nil {
		return err
	}
	c.forwardUpsert(ctx, item)
	return nil
}

func (c *Collection[T]) Update(ctx context.Context, item T) error {
	id := c.id(item)
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("kvstore: %s: id required", c.name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load()
	if err != nil {
		return err
	}

	found := false
	for i, it := range items {
		if c.id(it) == id {
			items[i] = item
			found = true
			break
		}
	}
	if !found {
		return ErrNotFound
	}

	if err := c.save(items); err != nil {
		return err
	}
	c.forwardUpsert(ctx, item)
	return nil
}

func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load()
	if err != nil {
		return err
	}

	found := false
	kept := make([]T, 0, len(items))
	for _, it := range items {
		if c.id(it) == id {
			found = true
			continue
		}
		kept = append(kept, it)
	}
	if !found {
		return ErrNotFound
	}

	if err := c.save(kept); err != nil {
		return err
	}
	c.forwardDelete(ctx, id)
	return nil
}

// forwardUpsert/forwardDelete empujan el cambio al mirror. Best-effort:
// el resultado local ya quedó persistido y se mantiene pase lo que pase.
func (c *Collection[T]) forwardUpsert(ctx context.Context, item T) {
	if !c.mirrored || c.store.sink == nil {
		return
	}
	raw, err := json.Marshal(item)
	if err != nil {
		return
	}
	_ = c.store.sink.Upsert(ctx, mirror.Document{Table: c.name, ID: c.id(item), Doc: raw})
}

func (c *Collection[T]) forwardDelete(ctx context.Context, id string) {
	if !c.mirrored || c.store.sink == nil {
		return
	}
	_ = c.store.sink.Delete(ctx, c.name, id)
}

func (c *Collection[T]) snapshot(ctx context.Context) ([]mirror.Document, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items, err := c.load()
	if err != nil {
		return nil, err
	}

	docs := make([]mirror.Document, 0, len(items))
	for _, it := range items {
		raw, err := json.Marshal(it)
		if err != nil {
			return nil, fmt.Errorf("kvstore: marshal %s item: %w", c.name, err)
		}
		docs = append(docs, mirror.Document{Table: c.name, ID: c.id(it), Doc: raw})
	}
	return docs, nil
}

type collectionFile[T any] struct {
	Items     []T       `json:"items"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Collection[T]) load() ([]T, error) {
	var items []T

	err := c.withFileLock(func() error {
		data, err := os.ReadFile(c.path)
		if errors.Is(err, os.ErrNotExist) {
			return nil // archivo aún no existe => colección vacía
		}
		if err != nil {
			return fmt.Errorf("kvstore: read %s: %w", c.name, err)
		}
		if len(data) == 0 {
			return nil
		}

		var f collectionFile[T]
		if err := json.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("kvstore: parse %s: %w", c.name, err)
		}
		items = f.Items
		return nil
	})
	return items, err
}

func (c *Collection[T]) save(items []T) error {
	return c.withFileLock(func() error {
		f := collectionFile[T]{Items: items, UpdatedAt: time.Now().UTC()}
		data, err := json.MarshalIndent(f, "", "  ")
		if err != nil {
			return fmt.Errorf("kvstore: marshal %s: %w", c.name, err)
		}

		// Escritura atómica: tmp + rename
		tmp := c.path + ".tmp"
		if err := os.WriteFile(tmp, data, 0o644); err != nil {
			return fmt.Errorf("kvstore: write %s: %w", c.name, err)
		}
		if err := os.Rename(tmp, c.path); err != nil {
			_ = os.Remove(tmp)
			return fmt.Errorf("kvstore: rename %s: %w", c.name, err)
		}
		return nil
	})
}

func (c *Collection[T]) withFileLock(fn func() error) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	locked, err := c.flk.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return fmt.Errorf("kvstore: acquire lock %s: %w", c.name, err)
	}
	if !locked {
		return fmt.Errorf("kvstore: could not lock %s", c.name)
	}
	defer func() { _ = c.flk.Unlock() }()

	return fn()
}
