package kvstore

import (
	"context"
	"sort"

	"pet-care-tracker/internal/domain/fooditems"
)

type foodItemsRepo struct {
	col *Collection[fooditems.FoodItem]
}

func NewFoodItemsRepo(s *Store) fooditems.Repository {
	return &foodItemsRepo{col: NewCollection(s, "food_items", func(f fooditems.FoodItem) string { return f.ID })}
}

func (r *foodItemsRepo) Create(ctx context.Context, f fooditems.FoodItem) error {
	return r.col.Create(ctx, f)
}

func (r *foodItemsRepo) Update(ctx context.Context, f fooditems.FoodItem) error {
	return r.col.Update(ctx, f)
}

func (r *foodItemsRepo) Delete(ctx context.Context, id string) error { return r.col.Delete(ctx, id) }

func (r *foodItemsRepo) GetByID(ctx context.Context, id string) (fooditems.FoodItem, error) {
	return r.col.GetByID(ctx, id)
}

func (r *foodItemsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]fooditems.FoodItem, error) {
	items, err := r.col.Find(ctx, func(f fooditems.FoodItem) bool { return f.OwnerUserID == ownerUserID })
	if err != nil {
		return nil, err
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}
