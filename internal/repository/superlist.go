package repository

import (
	"context"

	"super-control/internal/domain"
)

// SuperListRepository exposes persistence operations for supermarket lists.
type SuperListRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, list *domain.SuperList) error
	Get(ctx context.Context, id string) (*domain.SuperList, error)
	ListActiveByUser(ctx context.Context, username string) ([]domain.SuperList, error)
	Update(ctx context.Context, id string, update domain.SuperListUpdate) error
	SetDisabled(ctx context.Context, id string, disabled bool) error
}
