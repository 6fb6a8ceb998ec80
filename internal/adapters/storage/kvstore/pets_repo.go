package kvstore

import (
	"context"
	"sort"

	"pet-care-tracker/internal/domain/pets"
)

type petsRepo struct {
	col *Collection[pets.Pet]
}

func NewPetsRepo(s *Store) pets.Repository {
	return &petsRepo{col: NewCollection(s, "pets", func(p pets.Pet) string { return p.ID })}
}

func (r *petsRepo) Create(ctx context.Context, p pets.Pet) error { return r.col.Create(ctx, p) }
func (r *petsRepo) Update(ctx context.Context, p pets.Pet) error { return r.col.Update(ctx, p) }
func (r *petsRepo) Delete(ctx context.Context, id string) error  { return r.col.Delete(ctx, id) }

func (r *petsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	return r.col.GetByID(ctx, id)
}

func (r *petsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	items, err := r.col.Find(ctx, func(p pets.Pet) bool { return p.OwnerUserID == ownerUserID })
	if err != nil {
		return nil, err
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}
