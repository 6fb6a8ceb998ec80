package kvstore

import (
	"context"
	"sort"
	"time"

	"pet-care-tracker/internal/domain/activities"
)

type activitiesRepo struct {
	col *Collection[activities.Session]
}

func NewActivitiesRepo(s *Store) activities.Repository {
	return &activitiesRepo{col: NewCollection(s, "activity_sessions", func(a activities.Session) string { return a.ID })}
}

func (r *activitiesRepo) Create(ctx context.Context, sess activities.Session) error {
	return r.col.Create(ctx, sess)
}

func (r *activitiesRepo) Update(ctx context.Context, sess activities.Session) error {
	return r.col.Update(ctx, sess)
}

func (r *activitiesRepo) Delete(ctx context.Context, id string) error { return r.col.Delete(ctx, id) }

func (r *activitiesRepo) GetByID(ctx context.Context, id string) (activities.Session, error) {
	return r.col.GetByID(ctx, id)
}

func (r *activitiesRepo) ListByPet(ctx context.Context, petID string, from *time.Time, limit int) ([]activities.Session, error) {
	items, err := r.col.Find(ctx, func(sess activities.Session) bool {
		if sess.PetID != petID {
			return false
		}
		return from == nil || !sess.StartedAt.Before(*from)
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(items, func(i, j int) bool { return items[i].StartedAt.After(items[j].StartedAt) })

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}
