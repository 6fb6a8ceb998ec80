package meals

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("meal not found")
)

// CalorieLookup evita importar el paquete fooditems (rompe ciclos).
// Devuelve ok=false si el alimento no existe.
type CalorieLookup interface {
	KcalPer100g(ctx context.Context, foodItemID string) (float64, bool, error)
}

type Service struct {
	repo Repository
	food CalorieLookup // opcional
	now  func() time.Time
}

func NewService(repo Repository, food CalorieLookup) *Service {
	return &Service{
		repo: repo,
		food: food,
		now:  time.Now,
	}
}

type CreateInput struct {
	FoodItemID  string
	FedAt       time.Time
	AmountGrams float64
	Calories    float64
	Notes       string
}

func (s *Service) Create(ctx context.Context, petID string, in CreateInput) (Meal, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return Meal{}, ErrInvalidInput
	}
	if in.AmountGrams <= 0 {
		return Meal{}, ErrInvalidInput
	}

	fedAt := in.FedAt
	if fedAt.IsZero() {
		fedAt = s.now()
	}

	calories := in.Calories
	foodItemID := strings.TrimSpace(in.FoodItemID)

	// Si hay alimento del catálogo y no vinieron calorías, las derivamos.
	if calories == 0 && foodItemID != "" && s.food != nil {
		kcal, ok, err := s.food.KcalPer100g(ctx, foodItemID)
		if err != nil {
			return Meal{}, err
		}
		if !ok {
			return Meal{}, ErrInvalidInput
		}
		calories = in.AmountGrams * kcal / 100
	}

	m := Meal{
		ID:          uuid.NewString(),
		PetID:       petID,
		FoodItemID:  foodItemID,
		FedAt:       fedAt,
		AmountGrams: in.AmountGrams,
		Calories:    calories,
		Notes:       strings.TrimSpace(in.Notes),
		CreatedAt:   s.now(),
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return Meal{}, err
	}
	return m, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Meal, error) {
	m, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Meal{}, ErrNotFound
	}
	return m, nil
}

func (s *Service) ListByPet(ctx context.Context, petID string, filter ListFilter) ([]Meal, error) {
	return s.repo.ListByPet(ctx, petID, filter)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, strings.TrimSpace(id)); err != nil {
		return ErrNotFound
	}
	return nil
}

// DailyTotals agrega las comidas de los últimos `days` días en buckets por
// día (incluye días sin comidas, para que el gráfico muestre los ceros).
// El bucket más viejo primero.
func (s *Service) DailyTotals(ctx context.Context, petID string, days int) ([]DayTotal, error) {
	if days <= 0 {
		days = 7
	}

	now := s.now()
	loc := now.Location()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, -(days - 1))

	items, err := s.repo.ListByPet(ctx, petID, ListFilter{From: &start, Limit: 0})
	if err != nil {
		return nil, err
	}

	byDay := map[string]*DayTotal{}
	out := make([]DayTotal, days)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		out[i] = DayTotal{Date: date}
		byDay[date] = &out[i]
	}

	for _, m := range items {
		date := m.FedAt.In(loc).Format("2006-01-02")
		bucket, ok := byDay[date]
		if !ok {
			continue
		}
		bucket.Meals++
		bucket.Grams += m.AmountGrams
		bucket.Calories += m.Calories
	}

	return out, nil
}
