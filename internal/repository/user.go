package repository

import (
	"context"

	"super-control/internal/domain"
)

// UserRepository defines persistence operations for User entities.
// GetByUsername returns ErrNotFound when no such user is stored; any other
// error means the store itself failed.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	ListActive(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, username string, update domain.UserUpdate) error
	SetDisabled(ctx context.Context, username string, disabled bool) error
}
