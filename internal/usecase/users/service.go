package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/small-engineer/user-crud/internal/domain"
)

var (
	ErrNotFound     = errors.New("user not found")
	ErrCreateFailed = errors.New("user could not be created")
	ErrDeleteFailed = errors.New("user could not be deleted")
)

// UserRepo stores users. FindOne reports absence through ok, Save reports
// an existing id through a false result, and Delete reports a missing id
// the same way. The error result is kept for storage faults.
type UserRepo interface {
	List(ctx context.Context) ([]domain.User, error)
	FindOne(ctx context.Context, id domain.UserID) (domain.User, bool, error)
	Save(ctx context.Context, u domain.User) (bool, error)
	Delete(ctx context.Context, id domain.UserID) (bool, error)
}

type Service struct {
	users UserRepo
}

func NewService(u UserRepo) *Service {
	return &Service{
		users: u,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.UserResponse, error) {
	us, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return domain.NewUserResponses(us), nil
}

func (s *Service) Get(ctx context.Context, id domain.UserID) (domain.UserResponse, error) {
	u, ok, err := s.users.FindOne(ctx, id)
	if err != nil {
		return domain.UserResponse{}, fmt.Errorf("find user %d: %w", id, err)
	}
	if !ok {
		return domain.UserResponse{}, ErrNotFound
	}
	return domain.NewUserResponse(u), nil
}

func (s *Service) Create(ctx context.Context, u domain.User) error {
	ok, err := s.users.Save(ctx, u)
	if err != nil {
		return fmt.Errorf("save user %d: %w", u.ID, err)
	}
	if !ok {
		return ErrCreateFailed
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id domain.UserID) error {
	ok, err := s.users.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	if !ok {
		return ErrDeleteFailed
	}
	return nil
}
