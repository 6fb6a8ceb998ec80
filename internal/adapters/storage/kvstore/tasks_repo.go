package kvstore

import (
	"context"
	"sort"
	"time"

	"pet-care-tracker/internal/domain/tasks"
)

type tasksRepo struct {
	col *Collection[tasks.Task]
}

func NewTasksRepo(s *Store) tasks.Repository {
	return &tasksRepo{col: NewCollection(s, "care_tasks", func(t tasks.Task) string { return t.ID })}
}

func (r *tasksRepo) Create(ctx context.Context, t tasks.Task) error { return r.col.Create(ctx, t) }
func (r *tasksRepo) Update(ctx context.Context, t tasks.Task) error { return r.col.Update(ctx, t) }
func (r *tasksRepo) Delete(ctx context.Context, id string) error    { return r.col.Delete(ctx, id) }

func (r *tasksRepo) GetByID(ctx context.Context, id string) (tasks.Task, error) {
	return r.col.GetByID(ctx, id)
}

func (r *tasksRepo) ListByPet(ctx context.Context, petID string) ([]tasks.Task, error) {
	items, err := r.col.Find(ctx, func(t tasks.Task) bool { return t.PetID == petID })
	if err != nil {
		return nil, err
	}
	sortByDue(items)
	return items, nil
}

func (r *tasksRepo) ListOverdue(ctx context.Context, petID string, now time.Time) ([]tasks.Task, error) {
	items, err := r.col.Find(ctx, func(t tasks.Task) bool {
		return t.PetID == petID && t.Status == tasks.StatusPending && t.DueAt.Before(now)
	})
	if err != nil {
		return nil, err
	}
	sortByDue(items)
	return items, nil
}

func sortByDue(items []tasks.Task) {
	sort.Slice(items, func(i, j int) bool { return items[i].DueAt.Before(items[j].DueAt) })
}
