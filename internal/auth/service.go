// Package auth implements password hashing, access token issuance and
// validation, and the current-user guard used by protected endpoints.
//
// Tokens are stateless HS256 JWTs. There is no revocation list: a token stays
// valid until it expires, except that every protected call reloads the user
// and rejects disabled accounts.
package auth

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"super-control/internal/domain"
)

// Config carries the auth settings loaded at startup.
type Config struct {
	Secret     string
	LoginTTL   time.Duration
	BcryptCost int
	Logger     *logrus.Logger
	Clock      func() time.Time
}

// Service exposes login and the session guard to the rest of the system.
type Service struct {
	hasher        Hasher
	codec         *TokenCodec
	authenticator *Authenticator
	sessions      *SessionResolver
	loginTTL      time.Duration
	logger        *logrus.Logger
}

func NewService(users UserDirectory, cfg Config) (*Service, error) {
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}

	codec, err := NewTokenCodec(cfg.Secret, WithClock(cfg.Clock))
	if err != nil {
		return nil, err
	}
	hasher := NewBcryptHasher(cfg.BcryptCost)
	authenticator, err := NewAuthenticator(users, hasher)
	if err != nil {
		return nil, err
	}

	return &Service{
		hasher:        hasher,
		codec:         codec,
		authenticator: authenticator,
		sessions:      NewSessionResolver(codec, users, cfg.Logger),
		loginTTL:      cfg.LoginTTL,
		logger:        cfg.Logger,
	}, nil
}

// Login authenticates the user and issues an access token. Disabled accounts
// are refused with ErrAccountInactive once their password has been verified.
func (s *Service) Login(ctx context.Context, username, password string) (Token, error) {
	user, err := s.authenticator.Authenticate(ctx, username, password)
	if err != nil {
		return Token{}, err
	}
	if !user.Active() {
		return Token{}, ErrAccountInactive
	}

	token, err := s.codec.Issue(user.Username, s.loginTTL)
	if err != nil {
		return Token{}, err
	}
	s.logger.WithField("username", user.Username).Info("user logged in")
	return token, nil
}

// RequireSession resolves token to the current, active user.
func (s *Service) RequireSession(ctx context.Context, token string) (*domain.User, error) {
	return s.sessions.Resolve(ctx, token)
}

// HashPassword hashes a password for storage.
func (s *Service) HashPassword(password string) (string, error) {
	return s.hasher.Hash(password)
}

// Codec exposes the token codec for call sites issuing tokens with their own TTL.
func (s *Service) Codec() *TokenCodec {
	return s.codec
}
