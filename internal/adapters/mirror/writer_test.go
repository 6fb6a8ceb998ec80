package mirror

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-care-tracker/internal/platform/logger"
	"pet-care-tracker/internal/ports/mirror"
)

// flakySink falla las primeras failures llamadas y después funciona.
type flakySink struct {
	failures int
	calls    int
	upserts  []mirror.Document
}

func (s *flakySink) Upsert(ctx context.Context, d mirror.Document) error {
	s.calls++
	if s.calls <= s.failures {
		return errors.New("remote unavailable")
	}
	s.upserts = append(s.upserts, d)
	return nil
}

func (s *flakySink) Delete(ctx context.Context, table, id string) error {
	s.calls++
	if s.calls <= s.failures {
		return errors.New("remote unavailable")
	}
	return nil
}

type staticSnapshotter struct {
	docs []mirror.Document
}

func (s *staticSnapshotter) SnapshotAll(ctx context.Context) ([]mirror.Document, error) {
	return s.docs, nil
}

func testLogger() logger.Logger {
	return logger.New(logger.Options{Level: logger.Error})
}

func newTestWriter(sink mirror.Sink) *Writer {
	w := NewWriter(sink, testLogger())
	w.backoff = time.Millisecond // tests rápidos
	return w
}

func TestWriter_RetriesUntilSuccess(t *testing.T) {
	sink := &flakySink{failures: 2}
	w := newTestWriter(sink)

	doc := mirror.Document{Table: "pets", ID: "p1", Doc: []byte(`{"id":"p1"}`)}
	if err := w.Upsert(context.Background(), doc); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if sink.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", sink.calls)
	}
	if len(sink.upserts) != 1 {
		t.Fatalf("expected doc delivered on third attempt, got %+v", sink.upserts)
	}
}

func TestWriter_SwallowsAfterMaxAttempts(t *testing.T) {
	sink := &flakySink{failures: 100}
	w := newTestWriter(sink)

	// El writer nunca propaga el error: lo local manda.
	if err := w.Upsert(context.Background(), mirror.Document{Table: "pets", ID: "p1"}); err != nil {
		t.Fatalf("expected nil error after giving up, got %v", err)
	}
	if sink.calls != defaultAttempts {
		t.Fatalf("expected %d attempts, got %d", defaultAttempts, sink.calls)
	}

	if err := w.Delete(context.Background(), "pets", "p1"); err != nil {
		t.Fatalf("expected nil error on delete, got %v", err)
	}
}

func TestSyncer_CountsPushedAndFailed(t *testing.T) {
	source := &staticSnapshotter{docs: []mirror.Document{
		{Table: "pets", ID: "p1", Doc: []byte(`{"id":"p1"}`)},
		{Table: "pets", ID: "p2", Doc: []byte(`{"id":"p2"}`)},
		{Table: "meals", ID: "m1", Doc: []byte(`{"id":"m1"}`)},
	}}
	sink := &flakySink{failures: 1} // el primer doc falla

	s := NewSyncer(source, sink, testLogger())
	res, err := s.PushAll(context.Background())
	if err != nil {
		t.Fatalf("push all: %v", err)
	}
	if res.Pushed != 2 || res.Failed != 1 {
		t.Fatalf("expected pushed=2 failed=1, got %+v", res)
	}
}
