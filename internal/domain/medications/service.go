package medications

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("medication not found")
	ErrBadState     = errors.New("medication already finalized")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type CreateInput struct {
	Name      string
	Dosage    string
	Frequency string
	StartDate time.Time // cero = ahora
	Notes     string
}

func (s *Service) Create(ctx context.Context, petID string, in CreateInput) (Medication, error) {
	petID = strings.TrimSpace(petID)
	name := strings.TrimSpace(in.Name)
	if petID == "" || name == "" {
		return Medication{}, ErrInvalidInput
	}

	start := in.StartDate
	if start.IsZero() {
		start = s.now()
	}

	now := s.now()
	m := Medication{
		ID:        uuid.NewString(),
		PetID:     petID,
		Name:      name,
		Dosage:    strings.TrimSpace(in.Dosage),
		Frequency: strings.TrimSpace(in.Frequency),
		Status:    StatusActive,
		StartDate: start,
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return Medication{}, err
	}
	return m, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Medication, error) {
	m, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Medication{}, ErrNotFound
	}
	return m, nil
}

func (s *Service) ListByPet(ctx context.Context, petID string, onlyActive bool) ([]Medication, error) {
	return s.repo.ListByPet(ctx, petID, onlyActive)
}

// MarkCompleted cierra el tratamiento. Repetir la misma transición es
// idempotente; pasar de un estado terminal al otro no está permitido.
func (s *Service) MarkCompleted(ctx context.Context, id string) (Medication, error) {
	return s.finalize(ctx, id, StatusCompleted)
}

// MarkDiscontinued interrumpe el tratamiento antes de terminarlo.
func (s *Service) MarkDiscontinued(ctx context.Context, id string) (Medication, error) {
	return s.finalize(ctx, id, StatusDiscontinued)
}

func (s *Service) finalize(ctx context.Context, id string, target Status) (Medication, error) {
	m, err := s.GetByID(ctx, id)
	if err != nil {
		return Medication{}, err
	}

	if m.Status == target {
		return m, nil
	}
	if m.Status != StatusActive {
		return Medication{}, ErrBadState
	}

	now := s.now()
	m.Status = target
	if m.EndDate == nil {
		m.EndDate = &now
	}
	m.UpdatedAt = now

	if err := s.repo.Update(ctx, m); err != nil {
		return Medication{}, err
	}
	return m, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, strings.TrimSpace(id)); err != nil {
		return ErrNotFound
	}
	return nil
}
