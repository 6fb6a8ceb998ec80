package activities

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("activity session not found")
	ErrBadState     = errors.New("activity session already stopped")
)

func validKind(k Kind) bool {
	switch k {
	case KindWalk, KindPlay, KindTraining, KindOther:
		return true
	}
	return false
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type StartInput struct {
	Kind      Kind
	StartedAt time.Time // cero = ahora
	Notes     string
}

// Start abre una sesión nueva. No cierra las sesiones en curso: una
// caminata y un entrenamiento pueden solaparse.
func (s *Service) Start(ctx context.Context, petID string, in StartInput) (Session, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return Session{}, ErrInvalidInput
	}

	kind := in.Kind
	if kind == "" {
		kind = KindWalk
	}
	if !validKind(kind) {
		return Session{}, ErrInvalidInput
	}

	startedAt := in.StartedAt
	if startedAt.IsZero() {
		startedAt = s.now()
	}

	sess := Session{
		ID:        uuid.NewString(),
		PetID:     petID,
		Kind:      kind,
		StartedAt: startedAt,
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: s.now(),
	}

	if err := s.repo.Create(ctx, sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Stop cierra la sesión. Parar una sesión ya cerrada es ErrBadState.
func (s *Service) Stop(ctx context.Context, id string) (Session, error) {
	sess, err := s.GetByID(ctx, id)
	if err != nil {
		return Session{}, err
	}
	if sess.EndedAt != nil {
		return Session{}, ErrBadState
	}

	end := s.now()
	if end.Before(sess.StartedAt) {
		end = sess.StartedAt
	}
	sess.EndedAt = &end

	if err := s.repo.Update(ctx, sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Session, error) {
	sess, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Session{}, ErrNotFound
	}
	return sess, nil
}

func (s *Service) ListByPet(ctx context.Context, petID string, limit int) ([]Session, error) {
	return s.repo.ListByPet(ctx, petID, nil, limit)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, strings.TrimSpace(id)); err != nil {
		return ErrNotFound
	}
	return nil
}

// DailyMinutes agrega los minutos de actividad de los últimos `days` días
// en buckets diarios (con ceros). Las sesiones abiertas no suman.
func (s *Service) DailyMinutes(ctx context.Context, petID string, days int) ([]DayMinutes, error) {
	if days <= 0 {
		days = 7
	}

	now := s.now()
	loc := now.Location()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, -(days - 1))

	items, err := s.repo.ListByPet(ctx, petID, &start, 0)
	if err != nil {
		return nil, err
	}

	byDay := map[string]*DayMinutes{}
	out := make([]DayMinutes, days)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		out[i] = DayMinutes{Date: date}
		byDay[date] = &out[i]
	}

	for _, sess := range items {
		if sess.EndedAt == nil {
			continue
		}
		date := sess.StartedAt.In(loc).Format("2006-01-02")
		bucket, ok := byDay[date]
		if !ok {
			continue
		}
		bucket.Sessions++
		bucket.Minutes += sess.DurationMinutes()
	}

	return out, nil
}
