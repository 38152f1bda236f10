package memory

import (
	"context"

	"jobflix-backend/internal/domain"
)

type UserRepository struct {
	s *Store
}

func (r *UserRepository) Create(ctx context.Context, in domain.UserInput) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Username == in.Username || u.Email == in.Email {
			return nil, domain.ErrConflict
		}
	}

	r.s.nextUserID++
	user := domain.NewUser(r.s.nextUserID, in, r.s.now())
	r.s.users[user.ID] = user

	out := user.Clone()
	return &out, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	user, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := user.Clone()
	return &out, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.Username == username })
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.Email == email })
}

func (r *UserRepository) Update(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.Email != nil && *patch.Email != user.Email {
		for otherID, other := range r.s.users {
			if otherID != id && other.Email == *patch.Email {
				return nil, domain.ErrConflict
			}
		}
	}
	patch.Apply(&user)
	r.s.users[id] = user

	out := user.Clone()
	return &out, nil
}

func (r *UserRepository) find(match func(domain.User) bool) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, id := range sortedKeys(r.s.users) {
		if u := r.s.users[id]; match(u) {
			out := u.Clone()
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}
