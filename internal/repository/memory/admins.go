package memory

import (
	"context"
	"strings"

	"eventregistration/internal/domain"
)

type adminRepo struct{ s *Store }

func (r adminRepo) Create(ctx context.Context, a *domain.Admin) error {
	defer r.s.lock(ctx)()
	if r.taken(a.Username, a.Email) {
		return domain.ErrDuplicate
	}
	a.ID = newID()
	cp := *a
	r.s.admins[a.ID] = &cp
	return nil
}

func (r adminRepo) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	defer r.s.lock(ctx)()
	for _, a := range r.s.admins {
		if a.Username == username {
			cp := *a
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r adminRepo) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	defer r.s.lock(ctx)()
	return r.taken(username, email), nil
}

func (r adminRepo) Count(ctx context.Context) (int, error) {
	defer r.s.lock(ctx)()
	return len(r.s.admins), nil
}

func (r adminRepo) taken(username, email string) bool {
	for _, a := range r.s.admins {
		if a.Username == username || strings.EqualFold(a.Email, email) {
			return true
		}
	}
	return false
}
