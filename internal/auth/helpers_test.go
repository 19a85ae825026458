package auth_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"super-control/internal/auth"
	"super-control/internal/domain"
	"super-control/internal/repository"
)

const testSecret = "test-signing-secret"

// memoryDirectory is an in-memory UserDirectory recording every lookup.
type memoryDirectory struct {
	mu      sync.Mutex
	users   map[string]domain.User
	err     error
	lookups []string
}

func newMemoryDirectory(users ...domain.User) *memoryDirectory {
	d := &memoryDirectory{users: make(map[string]domain.User)}
	for _, u := range users {
		d.users[u.Username] = u
	}
	return d
}

func (d *memoryDirectory) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.lookups = append(d.lookups, username)
	if d.err != nil {
		return nil, d.err
	}
	user, ok := d.users[username]
	if !ok {
		return nil, fmt.Errorf("user: %w", repository.ErrNotFound)
	}
	return &user, nil
}

func (d *memoryDirectory) snapshot() map[string]domain.User {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make(map[string]domain.User, len(d.users))
	for k, v := range d.users {
		out[k] = v
	}
	return out
}

func mustHash(password string) string {
	hash, err := auth.NewBcryptHasher(bcrypt.MinCost).Hash(password)
	if err != nil {
		panic(err)
	}
	return hash
}

func ironman(disabled bool) domain.User {
	return domain.User{
		Username:     "ironman",
		Name:         "Anthony",
		LastName:     "Stark",
		Email:        "tony@starkindustries.com",
		Disabled:     disabled,
		PasswordHash: mustHash("ILoveMark40"),
		CreatedAt:    time.Now().UTC(),
	}
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
