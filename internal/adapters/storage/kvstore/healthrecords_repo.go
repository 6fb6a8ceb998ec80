package kvstore

import (
	"context"
	"sort"
	"strings"

	"pet-care-tracker/internal/domain/healthrecords"
)

type healthRecordsRepo struct {
	col *Collection[healthrecords.Record]
}

func NewHealthRecordsRepo(s *Store) healthrecords.Repository {
	return &healthRecordsRepo{col: NewCollection(s, "health_records", func(rec healthrecords.Record) string { return rec.ID })}
}

func (r *healthRecordsRepo) Create(ctx context.Context, rec healthrecords.Record) error {
	return r.col.Create(ctx, rec)
}

func (r *healthRecordsRepo) Delete(ctx context.Context, id string) error {
	return r.col.Delete(ctx, id)
}

func (r *healthRecordsRepo) GetByID(ctx context.Context, id string) (healthrecords.Record, error) {
	return r.col.GetByID(ctx, id)
}

func (r *healthRecordsRepo) ListByPet(ctx context.Context, petID string, filter healthrecords.ListFilter) ([]healthrecords.Record, error) {
	query := strings.ToLower(strings.TrimSpace(filter.Query))

	items, err := r.col.Find(ctx, func(rec healthrecords.Record) bool {
		if rec.PetID != petID {
			return false
		}
		if len(filter.Types) > 0 && !containsType(filter.Types, rec.Type) {
			return false
		}
		if filter.From != nil && rec.OccurredAt.Before(*filter.From) {
			return false
		}
		if filter.To != nil && rec.OccurredAt.After(*filter.To) {
			return false
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(rec.Title), query) &&
			!strings.Contains(strings.ToLower(rec.Details), query) {
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(items, func(i, j int) bool { return items[i].OccurredAt.After(items[j].OccurredAt) })

	if filter.Limit > 0 && len(items) > filter.Limit {
		items = items[:filter.Limit]
	}
	return items, nil
}

func containsType(types []healthrecords.RecordType, t healthrecords.RecordType) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}
