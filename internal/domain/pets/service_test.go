package pets

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID map[string]Pet
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Pet{}}
}

func (r *testRepo) Create(ctx context.Context, p Pet) error {
	if p.ID == "" {
		return errors.New("repo: id required")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Update(ctx context.Context, p Pet) error {
	if _, ok := r.byID[p.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Pet, error) {
	p, ok := r.byID[id]
	if !ok {
		return Pet{}, errRepoNotFound
	}
	return p, nil
}

func (r *testRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	out := make([]Pet, 0)
	for _, p := range r.byID {
		if p.OwnerUserID == ownerUserID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return errRepoNotFound
	}
	delete(r.byID, id)
	return nil
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_Defaults(t *testing.T) {
	svc := NewService(newTestRepo())

	p, err := svc.Create(context.Background(), "owner-1", CreateInput{Name: "Milo"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Species != SpeciesOther || p.Sex != SexUnknown {
		t.Fatalf("expected defaulted species/sex, got %+v", p)
	}

	if _, err := svc.Create(context.Background(), "owner-1", CreateInput{}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput without name, got %v", err)
	}
}

func TestService_UpdateProfile_PatchSemantics(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	bd := time.Date(2022, 3, 15, 0, 0, 0, 0, time.UTC)
	p, _ := svc.Create(context.Background(), "owner-1", CreateInput{
		Name:      "Milo",
		Breed:     "mestizo",
		BirthDate: &bd,
	})

	// Solo name: el resto queda igual
	name := "Milo II"
	updated, err := svc.UpdateProfile(context.Background(), p.ID, UpdateProfileInput{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Milo II" || updated.Breed != "mestizo" || updated.BirthDate == nil {
		t.Fatalf("patch touched untouched fields: %+v", updated)
	}

	// birth_date presente con null lo limpia
	updated, err = svc.UpdateProfile(context.Background(), p.ID, UpdateProfileInput{
		BirthDate: PatchBirthDate{Present: true, Value: nil},
	})
	if err != nil {
		t.Fatalf("update clear birth date: %v", err)
	}
	if updated.BirthDate != nil {
		t.Fatalf("expected cleared birth_date, got %v", updated.BirthDate)
	}

	// birth_date ausente no toca nada
	when := "2023-01-02"
	if _, err := svc.UpdateProfile(context.Background(), p.ID, UpdateProfileInput{
		BirthDate: PatchBirthDate{Present: true, Value: &when},
	}); err != nil {
		t.Fatalf("update set birth date: %v", err)
	}
	updated, _ = svc.UpdateProfile(context.Background(), p.ID, UpdateProfileInput{})
	if updated.BirthDate == nil || updated.BirthDate.Format("2006-01-02") != "2023-01-02" {
		t.Fatalf("absent birth_date was modified: %v", updated.BirthDate)
	}
}

func TestService_EnsureOwner(t *testing.T) {
	svc := NewService(newTestRepo())

	p, _ := svc.Create(context.Background(), "owner-1", CreateInput{Name: "Milo"})

	if _, err := svc.EnsureOwner(context.Background(), p.ID, "owner-1"); err != nil {
		t.Fatalf("owner should pass: %v", err)
	}
	if _, err := svc.EnsureOwner(context.Background(), p.ID, "stranger"); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden for stranger, got %v", err)
	}
	if _, err := svc.EnsureOwner(context.Background(), "ghost", "owner-1"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for unknown pet, got %v", err)
	}
}
