package healthrecords

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("health record not found")
)

func validType(t RecordType) bool {
	switch t {
	case TypeVetVisit, TypeVaccine, TypeWeight, TypeSymptom, TypeNote, TypeDeworming:
		return true
	}
	return false
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type CreateInput struct {
	Type       RecordType
	Title      string
	Details    string
	OccurredAt time.Time // cero = ahora
	Value      float64
	Unit       string
}

func (s *Service) Create(ctx context.Context, petID string, in CreateInput) (Record, error) {
	petID = strings.TrimSpace(petID)
	title := strings.TrimSpace(in.Title)
	if petID == "" || title == "" {
		return Record{}, ErrInvalidInput
	}
	if !validType(in.Type) {
		return Record{}, ErrInvalidInput
	}

	unit := strings.TrimSpace(in.Unit)
	if in.Type == TypeWeight {
		if in.Value <= 0 {
			return Record{}, ErrInvalidInput
		}
		if unit == "" {
			unit = "kg"
		}
	}

	occurredAt := in.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = s.now()
	}

	rec := Record{
		ID:         uuid.NewString(),
		PetID:      petID,
		Type:       in.Type,
		Title:      title,
		Details:    strings.TrimSpace(in.Details),
		OccurredAt: occurredAt,
		Value:      in.Value,
		Unit:       unit,
		CreatedAt:  s.now(),
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Record, error) {
	rec, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (s *Service) ListByPet(ctx context.Context, petID string, filter ListFilter) ([]Record, error) {
	for _, t := range filter.Types {
		if !validType(t) {
			return nil, ErrInvalidInput
		}
	}
	return s.repo.ListByPet(ctx, petID, filter)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, strings.TrimSpace(id)); err != nil {
		return ErrNotFound
	}
	return nil
}

// WeightHistory arma la serie de peso ascendente por fecha. Si hay varios
// registros el mismo día gana el más reciente.
func (s *Service) WeightHistory(ctx context.Context, petID string) (WeightHistory, error) {
	items, err := s.repo.ListByPet(ctx, petID, ListFilter{Types: []RecordType{TypeWeight}})
	if err != nil {
		return WeightHistory{}, err
	}

	byDay := map[string]WeightPoint{}
	seenAt := map[string]time.Time{}
	for _, rec := range items {
		date := rec.OccurredAt.Format("2006-01-02")
		if prev, ok := seenAt[date]; ok && !rec.OccurredAt.After(prev) {
			continue
		}
		seenAt[date] = rec.OccurredAt
		byDay[date] = WeightPoint{Date: date, Value: rec.Value, Unit: rec.Unit}
	}

	points := make([]WeightPoint, 0, len(byDay))
	for _, p := range byDay {
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })

	h := WeightHistory{Points: points}
	if len(points) > 0 {
		last := points[len(points)-1]
		h.Latest = &last
	}
	return h, nil
}
