package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"super-control/internal/domain"
	"super-control/internal/repository"
)

// UserDirectory looks users up by username. It returns repository.ErrNotFound
// when the user does not exist; any other error is a directory failure.
type UserDirectory interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// Authenticator validates username/password pairs against a UserDirectory.
type Authenticator struct {
	users     UserDirectory
	hasher    Hasher
	decoyHash string
}

func NewAuthenticator(users UserDirectory, hasher Hasher) (*Authenticator, error) {
	// compared against when the user is missing so both paths cost one hash
	decoy, err := hasher.Hash("decoy-password-for-missing-users")
	if err != nil {
		return nil, fmt.Errorf("hash decoy password: %w", err)
	}
	return &Authenticator{
		users:     users,
		hasher:    hasher,
		decoyHash: decoy,
	}, nil
}

// Authenticate returns the sanitized user when password matches. Unknown users
// and wrong passwords both yield ErrInvalidCredentials; a failing directory
// yields ErrBackendUnavailable.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := a.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			a.hasher.Verify(password, a.decoyHash)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	if !a.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return user.Sanitize(), nil
}
