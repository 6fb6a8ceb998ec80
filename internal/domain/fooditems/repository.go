package fooditems

import "context"

type Repository interface {
	Create(ctx context.Context, f FoodItem) error
	Update(ctx context.Context, f FoodItem) error
	GetByID(ctx context.Context, id string) (FoodItem, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]FoodItem, error)
	Delete(ctx context.Context, id string) error
}
