package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"super-control/internal/domain"
	"super-control/internal/repository"
)

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
	username TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	email TEXT NOT NULL,
	birth_date DATETIME NULL,
	disabled INTEGER NOT NULL DEFAULT 0,
	password_hash TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_users_disabled ON users(disabled);
`

const selectUserColumns = `username, name, last_name, email, birth_date, disabled, password_hash, created_at, updated_at`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createUsersTable); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
INSERT INTO users (username, name, last_name, email, birth_date, disabled, password_hash, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.Username,
		user.Name,
		user.LastName,
		user.Email,
		nullTime(user.BirthDate),
		user.Disabled,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert user %q: %w", user.Username, repository.ErrAlreadyExists)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+selectUserColumns+`
FROM users
WHERE username = ?`,
		username,
	)
	return scanUser(row)
}

func (r *UserRepository) ListActive(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+selectUserColumns+`
FROM users
WHERE disabled = 0
ORDER BY username ASC`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func (r *UserRepository) Update(ctx context.Context, username string, update domain.UserUpdate) error {
	var (
		sets []string
		args []any
	)
	if update.Name != nil {
		sets = append(sets, "name=?")
		args = append(args, *update.Name)
	}
	if update.LastName != nil {
		sets = append(sets, "last_name=?")
		args = append(args, *update.LastName)
	}
	if update.Email != nil {
		sets = append(sets, "email=?")
		args = append(args, *update.Email)
	}
	if update.BirthDate != nil {
		sets = append(sets, "birth_date=?")
		args = append(args, update.BirthDate.UTC())
	}
	if update.PasswordHash != nil {
		sets = append(sets, "password_hash=?")
		args = append(args, *update.PasswordHash)
	}
	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at=?")
	args = append(args, time.Now().UTC(), username)

	res, err := r.db.ExecContext(ctx, fmt.Sprintf(`UPDATE users SET %s WHERE username=?`, strings.Join(sets, ", ")), args...)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return requireAffected(res, "user")
}

func (r *UserRepository) SetDisabled(ctx context.Context, username string, disabled bool) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE users
SET disabled=?, updated_at=?
WHERE username=?`,
		disabled,
		time.Now().UTC(),
		username,
	)
	if err != nil {
		return fmt.Errorf("update user disabled flag: %w", err)
	}
	return requireAffected(res, "user")
}

func scanUser(row interface {
	Scan(dest ...any) error
}) (*domain.User, error) {
	var (
		user      domain.User
		birthDate sql.NullTime
	)
	if err := row.Scan(
		&user.Username,
		&user.Name,
		&user.LastName,
		&user.Email,
		&birthDate,
		&user.Disabled,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	if birthDate.Valid {
		t := birthDate.Time.UTC()
		user.BirthDate = &t
	}
	return &user, nil
}
