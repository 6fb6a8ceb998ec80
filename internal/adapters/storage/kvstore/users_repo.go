package kvstore

import (
	"context"
	"strings"

	"pet-care-tracker/internal/domain/users"
)

type usersRepo struct {
	col *Collection[users.User]
}

func NewUsersRepo(s *Store) users.Repository {
	return &usersRepo{col: NewCollection(s, "users", func(u users.User) string { return u.ID })}
}

func (r *usersRepo) Create(ctx context.Context, u users.User) error { return r.col.Create(ctx, u) }
func (r *usersRepo) Update(ctx context.Context, u users.User) error { return r.col.Update(ctx, u) }

func (r *usersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	return r.col.GetByID(ctx, id)
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	matches, err := r.col.Find(ctx, func(u users.User) bool {
		return strings.ToLower(u.Email) == email
	})
	if err != nil {
		return users.User{}, err
	}
	if len(matches) == 0 {
		return users.User{}, ErrNotFound
	}
	return matches[0], nil
}
