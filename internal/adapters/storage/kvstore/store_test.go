package kvstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"pet-care-tracker/internal/ports/mirror"
)

type thing struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func thingID(t thing) string { return t.ID }

// recordingSink acumula lo que el store le empuja.
type recordingSink struct {
	upserts []mirror.Document
	deletes []string
}

func (s *recordingSink) Upsert(ctx context.Context, d mirror.Document) error {
	s.upserts = append(s.upserts, d)
	return nil
}

func (s *recordingSink) Delete(ctx context.Context, table, id string) error {
	s.deletes = append(s.deletes, table+"/"+id)
	return nil
}

func TestCollection_CRUD(t *testing.T) {
	store, err := Open(t.TempDir(), Options{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	col := NewCollection(store, "things", thingID)
	ctx := context.Background()

	if err := col.Create(ctx, thing{ID: "a", Name: "uno"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := col.Create(ctx, thing{ID: "a", Name: "dup"}); !errors.Is(err, ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}

	got, err := col.GetByID(ctx, "a")
	if err != nil || got.Name != "uno" {
		t.Fatalf("get: %v %+v", err, got)
	}

	if err := col.Update(ctx, thing{ID: "a", Name: "dos"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ = col.GetByID(ctx, "a")
	if got.Name != "dos" {
		t.Fatalf("expected updated name, got %+v", got)
	}

	if err := col.Update(ctx, thing{ID: "ghost"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on unknown update, got %v", err)
	}

	if err := col.Delete(ctx, "a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := col.GetByID(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := col.Delete(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on double delete, got %v", err)
	}
}

func TestCollection_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := Open(dir, Options{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	col := NewCollection(store, "things", thingID)
	if err := col.Create(ctx, thing{ID: "a", Name: "uno"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Reabrir sobre el mismo directorio simula reinicio de la app
	store2, err := Open(dir, Options{})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	col2 := NewCollection(store2, "things", thingID)

	got, err := col2.GetByID(ctx, "a")
	if err != nil || got.Name != "uno" {
		t.Fatalf("expected persisted item after reopen, got %v %+v", err, got)
	}

	// El archivo es JSON legible en disco
	if _, err := os.Stat(filepath.Join(dir, "things.json")); err != nil {
		t.Fatalf("expected things.json on disk: %v", err)
	}
}

func TestCollection_ForwardsToMirror(t *testing.T) {
	sink := &recordingSink{}
	store, err := Open(t.TempDir(), Options{Mirror: sink})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	col := NewCollection(store, "things", thingID)
	ctx := context.Background()

	_ = col.Create(ctx, thing{ID: "a", Name: "uno"})
	_ = col.Update(ctx, thing{ID: "a", Name: "dos"})
	_ = col.Delete(ctx, "a")

	if len(sink.upserts) != 2 {
		t.Fatalf("expected 2 upserts (create+update), got %d", len(sink.upserts))
	}
	if sink.upserts[0].Table != "things" || sink.upserts[0].ID != "a" {
		t.Fatalf("unexpected upsert doc: %+v", sink.upserts[0])
	}
	if len(sink.deletes) != 1 || sink.deletes[0] != "things/a" {
		t.Fatalf("expected delete things/a, got %+v", sink.deletes)
	}
}

func TestCollection_LocalNeverMirrors(t *testing.T) {
	sink := &recordingSink{}
	store, err := Open(t.TempDir(), Options{Mirror: sink})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	col := NewLocalCollection(store, "secrets", thingID)
	ctx := context.Background()

	_ = col.Create(ctx, thing{ID: "s", Name: "token"})
	_ = col.Delete(ctx, "s")

	if len(sink.upserts) != 0 || len(sink.deletes) != 0 {
		t.Fatalf("local collection leaked to mirror: %+v %+v", sink.upserts, sink.deletes)
	}

	// Tampoco entra en el snapshot de sync
	_ = col.Create(ctx, thing{ID: "s2", Name: "token"})
	docs, err := store.SnapshotAll(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	for _, d := range docs {
		if d.Table == "secrets" {
			t.Fatalf("local collection appeared in snapshot: %+v", d)
		}
	}
}

func TestStore_SnapshotAll_StableOrder(t *testing.T) {
	store, err := Open(t.TempDir(), Options{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	ctx := context.Background()

	b := NewCollection(store, "bb", thingID)
	a := NewCollection(store, "aa", thingID)
	_ = b.Create(ctx, thing{ID: "1"})
	_ = a.Create(ctx, thing{ID: "2"})

	docs, err := store.SnapshotAll(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 docs, got %d", len(docs))
	}
	if docs[0].Table != "aa" || docs[1].Table != "bb" {
		t.Fatalf("expected collections sorted by name, got %+v", docs)
	}
}
