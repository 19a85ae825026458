package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"super-control/internal/domain"
	"super-control/internal/repository"
)

// PasswordHasher hashes passwords before they are stored.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

// RegisterInput is the data required to create an account.
type RegisterInput struct {
	Username  string
	Name      string
	LastName  string
	Email     string
	BirthDate *time.Time
	Password  string
}

// UpdateInput lists the profile fields a user may change. Nil fields are kept.
type UpdateInput struct {
	Name      *string
	LastName  *string
	Email     *string
	BirthDate *time.Time
	Password  *string
}

// UserService describes user lifecycle operations.
type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, actor *domain.User, username string, input UpdateInput) (*domain.User, error)
	Delete(ctx context.Context, actor *domain.User, username string) (*domain.User, error)
}

type userService struct {
	users  repository.UserRepository
	hasher PasswordHasher
}

func NewUserService(users repository.UserRepository, hasher PasswordHasher) UserService {
	return &userService{
		users:  users,
		hasher: hasher,
	}
}

func (s *userService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Name = strings.TrimSpace(input.Name)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Email = strings.TrimSpace(input.Email)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	hash, err := s.hasher.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     input.Username,
		Name:         input.Name,
		LastName:     input.LastName,
		Email:        input.Email,
		BirthDate:    input.BirthDate,
		PasswordHash: hash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	return user.Sanitize(), nil
}

func (s *userService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

func (s *userService) Get(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user.Sanitize(), nil
}

func (s *userService) Update(ctx context.Context, actor *domain.User, username string, input UpdateInput) (*domain.User, error) {
	if _, err := s.loadOwnAccount(ctx, actor, username); err != nil {
		return nil, err
	}

	input.Name = trimmed(input.Name)
	input.LastName = trimmed(input.LastName)
	input.Email = trimmed(input.Email)
	if err := input.Validate(); err != nil {
		return nil, err
	}

	update := domain.UserUpdate{
		Name:      input.Name,
		LastName:  input.LastName,
		Email:     input.Email,
		BirthDate: input.BirthDate,
	}
	if input.Password != nil {
		hash, err := s.hasher.HashPassword(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		update.PasswordHash = &hash
	}
	if update.Empty() {
		return nil, fmt.Errorf("%w: no updatable fields supplied", ErrInvalidInput)
	}

	if err := s.users.Update(ctx, actor.Username, update); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.Get(ctx, actor.Username)
}

func (s *userService) Delete(ctx context.Context, actor *domain.User, username string) (*domain.User, error) {
	if _, err := s.loadOwnAccount(ctx, actor, username); err != nil {
		return nil, err
	}

	if err := s.users.SetDisabled(ctx, actor.Username, true); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.Get(ctx, actor.Username)
}

// loadOwnAccount checks that actor targets their own, still active account.
func (s *userService) loadOwnAccount(ctx context.Context, actor *domain.User, username string) (*domain.User, error) {
	if actor == nil || actor.Username != strings.TrimSpace(username) {
		return nil, ErrForbidden
	}

	user, err := s.users.GetByUsername(ctx, actor.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !user.Active() {
		return nil, ErrUserDisabled
	}
	return user, nil
}

func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	return &t
}
