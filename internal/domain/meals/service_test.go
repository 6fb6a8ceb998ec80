package meals

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID map[string]Meal
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Meal{}}
}

func (r *testRepo) Create(ctx context.Context, m Meal) error {
	if m.ID == "" {
		return errors.New("repo: id required")
	}
	r.byID[m.ID] = m
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Meal, error) {
	m, ok := r.byID[id]
	if !ok {
		return Meal{}, errRepoNotFound
	}
	return m, nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return errRepoNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) ListByPet(ctx context.Context, petID string, filter ListFilter) ([]Meal, error) {
	out := make([]Meal, 0)
	for _, m := range r.byID {
		if m.PetID != petID {
			continue
		}
		if filter.From != nil && m.FedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && m.FedAt.After(*filter.To) {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FedAt.After(out[j].FedAt) })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

type testCalories struct {
	kcal map[string]float64
}

func (c *testCalories) KcalPer100g(ctx context.Context, foodItemID string) (float64, bool, error) {
	v, ok := c.kcal[foodItemID]
	return v, ok, nil
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_DerivesCaloriesFromCatalog(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, &testCalories{kcal: map[string]float64{"food-1": 350}})

	m, err := svc.Create(context.Background(), "pet-1", CreateInput{
		FoodItemID:  "food-1",
		AmountGrams: 200,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Calories != 700 {
		t.Fatalf("expected 700 kcal (200g * 350/100g), got %v", m.Calories)
	}
}

func TestService_Create_ExplicitCaloriesWin(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, &testCalories{kcal: map[string]float64{"food-1": 350}})

	m, err := svc.Create(context.Background(), "pet-1", CreateInput{
		FoodItemID:  "food-1",
		AmountGrams: 200,
		Calories:    123,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Calories != 123 {
		t.Fatalf("expected explicit 123 kcal, got %v", m.Calories)
	}
}

func TestService_Create_UnknownFoodItem(t *testing.T) {
	svc := NewService(newTestRepo(), &testCalories{kcal: map[string]float64{}})

	_, err := svc.Create(context.Background(), "pet-1", CreateInput{
		FoodItemID:  "ghost",
		AmountGrams: 100,
	})
	if err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for unknown food item, got %v", err)
	}
}

func TestService_Create_RequiresPositiveAmount(t *testing.T) {
	svc := NewService(newTestRepo(), nil)
	if _, err := svc.Create(context.Background(), "pet-1", CreateInput{AmountGrams: 0}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for zero grams, got %v", err)
	}
}

func TestService_DailyTotals_BucketsWithZeroDays(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil)

	now := time.Date(2026, 8, 20, 15, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	// Hoy: dos comidas. Anteayer: una. Ayer: nada.
	mustCreate := func(fedAt time.Time, grams, kcal float64) {
		t.Helper()
		if _, err := svc.Create(context.Background(), "pet-1", CreateInput{
			FedAt:       fedAt,
			AmountGrams: grams,
			Calories:    kcal,
		}); err != nil {
			t.Fatalf("create meal: %v", err)
		}
	}
	mustCreate(now.Add(-1*time.Hour), 100, 300)
	mustCreate(now.Add(-2*time.Hour), 50, 150)
	mustCreate(now.AddDate(0, 0, -2), 80, 200)

	totals, err := svc.DailyTotals(context.Background(), "pet-1", 3)
	if err != nil {
		t.Fatalf("daily totals: %v", err)
	}
	if len(totals) != 3 {
		t.Fatalf("expected 3 buckets, got %d", len(totals))
	}

	// Orden: más viejo primero
	if totals[0].Date != "2026-08-18" || totals[1].Date != "2026-08-19" || totals[2].Date != "2026-08-20" {
		t.Fatalf("unexpected bucket dates: %+v", totals)
	}

	if totals[0].Meals != 1 || totals[0].Grams != 80 || totals[0].Calories != 200 {
		t.Fatalf("unexpected day -2 bucket: %+v", totals[0])
	}
	if totals[1].Meals != 0 || totals[1].Grams != 0 {
		t.Fatalf("expected empty bucket for yesterday, got %+v", totals[1])
	}
	if totals[2].Meals != 2 || totals[2].Grams != 150 || totals[2].Calories != 450 {
		t.Fatalf("unexpected today bucket: %+v", totals[2])
	}
}
