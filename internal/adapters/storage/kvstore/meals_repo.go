package kvstore

import (
	"context"
	"sort"

	"pet-care-tracker/internal/domain/meals"
)

type mealsRepo struct {
	col *Collection[meals.Meal]
}

func NewMealsRepo(s *Store) meals.Repository {
	return &mealsRepo{col: NewCollection(s, "meals", func(m meals.Meal) string { return m.ID })}
}

func (r *mealsRepo) Create(ctx context.Context, m meals.Meal) error { return r.col.Create(ctx, m) }
func (r *mealsRepo) Delete(ctx context.Context, id string) error    { return r.col.Delete(ctx, id) }

func (r *mealsRepo) GetByID(ctx context.Context, id string) (meals.Meal, error) {
	return r.col.GetByID(ctx, id)
}

func (r *mealsRepo) ListByPet(ctx context.Context, petID string, filter meals.ListFilter) ([]meals.Meal, error) {
	items, err := r.col.Find(ctx, func(m meals.Meal) bool {
		if m.PetID != petID {
			return false
		}
		if filter.From != nil && m.FedAt.Before(*filter.From) {
			return false
		}
		if filter.To != nil && m.FedAt.After(*filter.To) {
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(items, func(i, j int) bool { return items[i].FedAt.After(items[j].FedAt) })

	if filter.Limit > 0 && len(items) > filter.Limit {
		items = items[:filter.Limit]
	}
	return items, nil
}
