package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"super-control/internal/domain"
	"super-control/internal/repository"
)

// SessionResolver turns a bearer token into the current user. It keeps no
// state between calls.
type SessionResolver struct {
	codec  *TokenCodec
	users  UserDirectory
	logger *logrus.Logger
}

func NewSessionResolver(codec *TokenCodec, users UserDirectory, logger *logrus.Logger) *SessionResolver {
	if logger == nil {
		logger = logrus.New()
	}
	return &SessionResolver{
		codec:  codec,
		users:  users,
		logger: logger,
	}
}

// Resolve validates token and loads its subject. Bad tokens and unknown
// subjects both return ErrInvalidToken, disabled accounts ErrAccountInactive
// and directory failures ErrBackendUnavailable.
func (r *SessionResolver) Resolve(ctx context.Context, token string) (*domain.User, error) {
	claims, err := r.codec.Decode(token)
	if err != nil {
		r.logger.WithError(err).Debug("session rejected: token")
		return nil, ErrInvalidToken
	}

	username := claims.Username()
	if username == "" {
		r.logger.Debug("session rejected: empty subject")
		return nil, ErrInvalidToken
	}

	user, err := r.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			r.logger.Debug("session rejected: unknown subject")
			return nil, ErrInvalidToken
		}
		r.logger.WithError(err).Warn("session lookup failed")
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	if !user.Active() {
		r.logger.WithField("username", username).Debug("session rejected: inactive account")
		return nil, ErrAccountInactive
	}

	return user.Sanitize(), nil
}
