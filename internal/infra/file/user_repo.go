package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/small-engineer/user-crud/internal/domain"
)

// UserRepo keeps users as a JSON array in a single file. Every call reads
// the file and every mutation rewrites it whole.
type UserRepo struct {
	path string
	mu   sync.RWMutex
}

func NewUserRepo(path string) (*UserRepo, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &UserRepo{
		path: path,
	}, nil
}

func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loadAll()
}

func (r *UserRepo) FindOne(ctx context.Context, id domain.UserID) (domain.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	us, err := r.loadAll()
	if err != nil {
		return domain.User{}, false, err
	}
	i := indexOf(us, id)
	if i < 0 {
		return domain.User{}, false, nil
	}
	return us[i], true, nil
}

func (r *UserRepo) Save(ctx context.Context, u domain.User) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	us, err := r.loadAll()
	if err != nil {
		return false, err
	}
	if indexOf(us, u.ID) >= 0 {
		return false, nil
	}
	if err := r.saveAll(append(us, u)); err != nil {
		return false, err
	}
	return true, nil
}

func (r *UserRepo) Delete(ctx context.Context, id domain.UserID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	us, err := r.loadAll()
	if err != nil {
		return false, err
	}
	i := indexOf(us, id)
	if i < 0 {
		return false, nil
	}
	if err := r.saveAll(slices.Delete(us, i, i+1)); err != nil {
		return false, err
	}
	return true, nil
}

func indexOf(us []domain.User, id domain.UserID) int {
	return slices.IndexFunc(us, func(u domain.User) bool { return u.ID == id })
}

func (r *UserRepo) loadAll() ([]domain.User, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return make([]domain.User, 0), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}
	us := make([]domain.User, 0)
	if len(data) == 0 {
		return us, nil
	}
	if err := json.Unmarshal(data, &us); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.path, err)
	}
	return us, nil
}

func (r *UserRepo) saveAll(us []domain.User) error {
	data, err := json.MarshalIndent(us, "", "  ")
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".users-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("replace %s: %w", r.path, err)
	}
	return nil
}
