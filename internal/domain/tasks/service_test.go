package tasks

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID map[string]Task
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Task{}}
}

func (r *testRepo) Create(ctx context.Context, t Task) error {
	if t.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byID[t.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[t.ID] = t
	return nil
}

func (r *testRepo) Update(ctx context.Context, t Task) error {
	if _, ok := r.byID[t.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[t.ID] = t
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Task, error) {
	t, ok := r.byID[id]
	if !ok {
		return Task{}, errRepoNotFound
	}
	return t, nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return errRepoNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) ListByPet(ctx context.Context, petID string) ([]Task, error) {
	out := make([]Task, 0)
	for _, t := range r.byID {
		if t.PetID == petID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *testRepo) ListOverdue(ctx context.Context, petID string, now time.Time) ([]Task, error) {
	out := make([]Task, 0)
	for _, t := range r.byID {
		if t.PetID == petID && t.Status == StatusPending && t.DueAt.Before(now) {
			out = append(out, t)
		}
	}
	return out, nil
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_DefaultsKindToOther(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	task, err := svc.Create(context.Background(), "pet-1", CreateInput{
		Title: "Bañar a Milo",
		DueAt: now.Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Kind != KindOther {
		t.Fatalf("expected kind %q, got %q", KindOther, task.Kind)
	}
	if task.Status != StatusPending {
		t.Fatalf("expected status pending, got %q", task.Status)
	}
	if !task.CreatedAt.Equal(now) {
		t.Fatalf("expected created_at %v, got %v", now, task.CreatedAt)
	}
}

func TestService_Create_RequiresTitleAndDueAt(t *testing.T) {
	svc := NewService(newTestRepo())

	if _, err := svc.Create(context.Background(), "pet-1", CreateInput{DueAt: time.Now()}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput without title, got %v", err)
	}
	if _, err := svc.Create(context.Background(), "pet-1", CreateInput{Title: "x"}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput without due_at, got %v", err)
	}
}

func TestService_MarkCompleted_Idempotent(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	task, err := svc.Create(context.Background(), "pet-1", CreateInput{
		Title: "Vacuna",
		Kind:  KindVet,
		DueAt: now.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	done, err := svc.MarkCompleted(context.Background(), task.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if done.Status != StatusCompleted || done.CompletedAt == nil {
		t.Fatalf("expected completed task with completed_at, got %+v", done)
	}
	firstCompletedAt := *done.CompletedAt

	// Segunda vez: misma tarea, sin tocar completed_at
	svc.now = func() time.Time { return now.Add(time.Hour) }
	again, err := svc.MarkCompleted(context.Background(), task.ID)
	if err != nil {
		t.Fatalf("complete twice: %v", err)
	}
	if !again.CompletedAt.Equal(firstCompletedAt) {
		t.Fatalf("completed_at changed on repeat: %v vs %v", again.CompletedAt, firstCompletedAt)
	}
}

func TestService_Overdue_UsesServiceClock(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	late, _ := svc.Create(context.Background(), "pet-1", CreateInput{
		Title: "Paseo de la mañana",
		DueAt: now.Add(-2 * time.Hour),
	})
	_, _ = svc.Create(context.Background(), "pet-1", CreateInput{
		Title: "Paseo de la tarde",
		DueAt: now.Add(2 * time.Hour),
	})

	overdue, err := svc.Overdue(context.Background(), "pet-1")
	if err != nil {
		t.Fatalf("overdue: %v", err)
	}
	if len(overdue) != 1 || overdue[0].ID != late.ID {
		t.Fatalf("expected only the late task, got %+v", overdue)
	}

	// Completarla la saca de overdue
	if _, err := svc.MarkCompleted(context.Background(), late.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}
	overdue, _ = svc.Overdue(context.Background(), "pet-1")
	if len(overdue) != 0 {
		t.Fatalf("expected no overdue after completing, got %+v", overdue)
	}
}

func TestService_Delete_UnknownIsNotFound(t *testing.T) {
	svc := NewService(newTestRepo())
	if err := svc.Delete(context.Background(), "nope"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
