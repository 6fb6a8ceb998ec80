package fooditems

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("food item not found")
	ErrForbidden    = errors.New("forbidden")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type CreateInput struct {
	Name        string
	Brand       string
	Kind        Kind
	KcalPer100g float64
	Notes       string
}

func validKind(k Kind) bool {
	switch k {
	case KindDry, KindWet, KindTreat:
		return true
	}
	return false
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (FoodItem, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	name := strings.TrimSpace(in.Name)
	if ownerUserID == "" || name == "" {
		return FoodItem{}, ErrInvalidInput
	}
	if in.KcalPer100g < 0 {
		return FoodItem{}, ErrInvalidInput
	}

	kind := in.Kind
	if kind == "" {
		kind = KindDry
	}
	if !validKind(kind) {
		return FoodItem{}, ErrInvalidInput
	}

	now := s.now()
	f := FoodItem{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Name:        name,
		Brand:       strings.TrimSpace(in.Brand),
		Kind:        kind,
		KcalPer100g: in.KcalPer100g,
		Notes:       strings.TrimSpace(in.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, f); err != nil {
		return FoodItem{}, err
	}
	return f, nil
}

type UpdateInput struct {
	Name        *string
	Brand       *string
	Kind        *Kind
	KcalPer100g *float64
	Notes       *string
}

func (s *Service) Update(ctx context.Context, id, ownerUserID string, in UpdateInput) (FoodItem, error) {
	f, err := s.ensureOwner(ctx, id, ownerUserID)
	if err != nil {
		return FoodItem{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return FoodItem{}, ErrInvalidInput
		}
		f.Name = name
	}
	if in.Brand != nil {
		f.Brand = strings.TrimSpace(*in.Brand)
	}
	if in.Kind != nil {
		if !validKind(*in.Kind) {
			return FoodItem{}, ErrInvalidInput
		}
		f.Kind = *in.Kind
	}
	if in.KcalPer100g != nil {
		if *in.KcalPer100g < 0 {
			return FoodItem{}, ErrInvalidInput
		}
		f.KcalPer100g = *in.KcalPer100g
	}
	if in.Notes != nil {
		f.Notes = strings.TrimSpace(*in.Notes)
	}

	f.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, f); err != nil {
		return FoodItem{}, err
	}
	return f, nil
}

func (s *Service) GetByID(ctx context.Context, id, ownerUserID string) (FoodItem, error) {
	return s.ensureOwner(ctx, id, ownerUserID)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]FoodItem, error) {
	return s.repo.ListByOwner(ctx, strings.TrimSpace(ownerUserID))
}

func (s *Service) Delete(ctx context.Context, id, ownerUserID string) error {
	if _, err := s.ensureOwner(ctx, id, ownerUserID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) ensureOwner(ctx context.Context, id, ownerUserID string) (FoodItem, error) {
	f, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return FoodItem{}, ErrNotFound
	}
	if f.OwnerUserID != ownerUserID {
		return FoodItem{}, ErrForbidden
	}
	return f, nil
}

// KcalPer100g permite que otros módulos deriven calorías sin importar este
// paquete directamente. Devuelve ok=false si el alimento no existe.
func (s *Service) KcalPer100g(ctx context.Context, foodItemID string) (float64, bool, error) {
	f, err := s.repo.GetByID(ctx, strings.TrimSpace(foodItemID))
	if err != nil {
		return 0, false, nil
	}
	return f.KcalPer100g, true, nil
}
