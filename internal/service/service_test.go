package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"super-control/internal/domain"
	"super-control/internal/repository"
	"super-control/internal/repository/sqlite"
)

type prefixHasher struct{}

func (prefixHasher) HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("empty password")
	}
	return "hashed:" + password, nil
}

type stubScraper struct {
	products []domain.Product
	err      error
	urls     []string
}

func (s *stubScraper) Fetch(_ context.Context, receiptURL string) ([]domain.Product, error) {
	s.urls = append(s.urls, receiptURL)
	return s.products, s.err
}

func newRepositories(t *testing.T) (repository.UserRepository, repository.SuperListRepository) {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "service.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	users := sqlite.NewUserRepository(db)
	lists := sqlite.NewSuperListRepository(db)
	require.NoError(t, users.Init(context.Background()))
	require.NoError(t, lists.Init(context.Background()))
	return users, lists
}

func ironmanInput() RegisterInput {
	return RegisterInput{
		Username: "ironman",
		Name:     "Anthony",
		LastName: "Stark",
		Email:    "tony@starkindustries.com",
		Password: "ILoveMark40",
	}
}
