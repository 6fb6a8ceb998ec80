package tasks

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("task not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Title string
	Kind  Kind
	DueAt time.Time
	Notes string
}

func (s *Service) Create(ctx context.Context, petID string, in CreateInput) (Task, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return Task{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Title) == "" {
		return Task{}, ErrInvalidInput
	}
	if in.DueAt.IsZero() {
		return Task{}, ErrInvalidInput
	}

	kind := in.Kind
	if kind == "" {
		kind = KindOther
	}

	now := s.now()
	t := Task{
		ID:        uuid.NewString(),
		PetID:     petID,
		Title:     strings.TrimSpace(in.Title),
		Kind:      kind,
		Notes:     strings.TrimSpace(in.Notes),
		DueAt:     in.DueAt,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return Task{}, err
	}
	return t, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Task, error) {
	t, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Task{}, ErrNotFound
	}
	return t, nil
}

func (s *Service) ListByPet(ctx context.Context, petID string) ([]Task, error) {
	return s.repo.ListByPet(ctx, petID)
}

// Overdue: pendientes con due_at vencido al momento de la consulta.
func (s *Service) Overdue(ctx context.Context, petID string) ([]Task, error) {
	return s.repo.ListOverdue(ctx, petID, s.now())
}

// MarkCompleted es idempotente: completar una tarea ya completada
// devuelve la tarea tal cual.
func (s *Service) MarkCompleted(ctx context.Context, id string) (Task, error) {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return Task{}, err
	}

	if t.Status == StatusCompleted {
		return t, nil
	}

	now := s.now()
	t.Status = StatusCompleted
	t.CompletedAt = &now
	t.UpdatedAt = now

	if err := s.repo.Update(ctx, t); err != nil {
		return Task{}, err
	}
	return t, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, strings.TrimSpace(id)); err != nil {
		return ErrNotFound
	}
	return nil
}
