package mem

import (
	"context"
	"slices"
	"sync"

	"github.com/small-engineer/user-crud/internal/domain"
)

type UserRepo struct {
	mu    sync.RWMutex
	m     map[domain.UserID]domain.User
	order []domain.UserID
}

func NewUserRepo(seed ...domain.User) *UserRepo {
	r := &UserRepo{
		m: make(map[domain.UserID]domain.User),
	}
	for _, u := range seed {
		r.put(u)
	}
	return r
}

func (r *UserRepo) put(u domain.User) bool {
	if _, ok := r.m[u.ID]; ok {
		return false
	}
	r.m[u.ID] = u
	r.order = append(r.order, u.ID)
	return true
}

func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	us := make([]domain.User, 0, len(r.order))
	for _, id := range r.order {
		us = append(us, r.m[id])
	}
	return us, nil
}

func (r *UserRepo) FindOne(ctx context.Context, id domain.UserID) (domain.User, bool, error) {
	r.mu.RLock()
	u, ok := r.m[id]
	r.mu.RUnlock()
	return u, ok, nil
}

func (r *UserRepo) Save(ctx context.Context, u domain.User) (bool, error) {
	r.mu.Lock()
	ok := r.put(u)
	r.mu.Unlock()
	return ok, nil
}

func (r *UserRepo) Delete(ctx context.Context, id domain.UserID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.m[id]; !ok {
		return false, nil
	}
	delete(r.m, id)
	r.order = slices.DeleteFunc(r.order, func(v domain.UserID) bool { return v == id })
	return true, nil
}
