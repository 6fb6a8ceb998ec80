package kvstore

import (
	"context"
	"sort"

	"pet-care-tracker/internal/domain/medications"
)

type medicationsRepo struct {
	col *Collection[medications.Medication]
}

func NewMedicationsRepo(s *Store) medications.Repository {
	return &medicationsRepo{col: NewCollection(s, "medications", func(m medications.Medication) string { return m.ID })}
}

func (r *medicationsRepo) Create(ctx context.Context, m medications.Medication) error {
	return r.col.Create(ctx, m)
}

func (r *medicationsRepo) Update(ctx context.Context, m medications.Medication) error {
	return r.col.Update(ctx, m)
}

func (r *medicationsRepo) Delete(ctx context.Context, id string) error { return r.col.Delete(ctx, id) }

func (r *medicationsRepo) GetByID(ctx context.Context, id string) (medications.Medication, error) {
	return r.col.GetByID(ctx, id)
}

func (r *medicationsRepo) ListByPet(ctx context.Context, petID string, onlyActive bool) ([]medications.Medication, error) {
	items, err := r.col.Find(ctx, func(m medications.Medication) bool {
		if m.PetID != petID {
			return false
		}
		return !onlyActive || m.Status == medications.StatusActive
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(items, func(i, j int) bool { return items[i].StartDate.After(items[j].StartDate) })
	return items, nil
}
