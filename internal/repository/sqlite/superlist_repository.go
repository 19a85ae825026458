package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"super-control/internal/domain"
	"super-control/internal/repository"
)

// Products are kept as a JSON document next to the list header.
const createSuperListsTable = `
CREATE TABLE IF NOT EXISTS super_lists (
	id TEXT PRIMARY KEY,
	username TEXT NOT NULL,
	order_id TEXT NOT NULL,
	issue_date TEXT NOT NULL DEFAULT '',
	products TEXT NOT NULL DEFAULT '[]',
	disabled INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_super_lists_username ON super_lists(username, disabled);
`

const selectSuperListColumns = `id, username, order_id, issue_date, products, disabled, created_at, updated_at`

type SuperListRepository struct {
	db *sql.DB
}

func NewSuperListRepository(db *sql.DB) repository.SuperListRepository {
	return &SuperListRepository{db: db}
}

func (r *SuperListRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createSuperListsTable); err != nil {
		return fmt.Errorf("create super_lists table: %w", err)
	}
	return nil
}

func (r *SuperListRepository) Create(ctx context.Context, list *domain.SuperList) error {
	products, err := encodeProducts(list.Products)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	list.CreatedAt = now
	list.UpdatedAt = now

	_, err = r.db.ExecContext(ctx, `
INSERT INTO super_lists (id, username, order_id, issue_date, products, disabled, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		list.ID,
		list.Username,
		list.Order,
		list.IssueDate,
		products,
		list.Disabled,
		list.CreatedAt,
		list.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert super list %q: %w", list.ID, repository.ErrAlreadyExists)
		}
		return fmt.Errorf("insert super list: %w", err)
	}
	return nil
}

func (r *SuperListRepository) Get(ctx context.Context, id string) (*domain.SuperList, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+selectSuperListColumns+`
FROM super_lists
WHERE id=?`,
		id,
	)
	return scanSuperList(row)
}

func (r *SuperListRepository) ListActiveByUser(ctx context.Context, username string) ([]domain.SuperList, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+selectSuperListColumns+`
FROM super_lists
WHERE username=? AND disabled=0
ORDER BY created_at DESC, id ASC`, username)
	if err != nil {
		return nil, fmt.Errorf("query super lists: %w", err)
	}
	defer rows.Close()

	var lists []domain.SuperList
	for rows.Next() {
		list, err := scanSuperList(rows)
		if err != nil {
			return nil, err
		}
		lists = append(lists, *list)
	}
	return lists, rows.Err()
}

func (r *SuperListRepository) Update(ctx context.Context, id string, update domain.SuperListUpdate) error {
	var (
		sets []string
		args []any
	)
	if update.Order != nil {
		sets = append(sets, "order_id=?")
		args = append(args, *update.Order)
	}
	if update.IssueDate != nil {
		sets = append(sets, "issue_date=?")
		args = append(args, *update.IssueDate)
	}
	if update.Products != nil {
		products, err := encodeProducts(update.Products)
		if err != nil {
			return err
		}
		sets = append(sets, "products=?")
		args = append(args, products)
	}
	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at=?")
	args = append(args, time.Now().UTC(), id)

	res, err := r.db.ExecContext(ctx, fmt.Sprintf(`UPDATE super_lists SET %s WHERE id=?`, strings.Join(sets, ", ")), args...)
	if err != nil {
		return fmt.Errorf("update super list: %w", err)
	}
	return requireAffected(res, "super list")
}

func (r *SuperListRepository) SetDisabled(ctx context.Context, id string, disabled bool) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE super_lists
SET disabled=?, updated_at=?
WHERE id=?`,
		disabled,
		time.Now().UTC(),
		id,
	)
	if err != nil {
		return fmt.Errorf("update super list disabled flag: %w", err)
	}
	return requireAffected(res, "super list")
}

func scanSuperList(row interface {
	Scan(dest ...any) error
}) (*domain.SuperList, error) {
	var (
		list     domain.SuperList
		products string
	)
	if err := row.Scan(
		&list.ID,
		&list.Username,
		&list.Order,
		&list.IssueDate,
		&products,
		&list.Disabled,
		&list.CreatedAt,
		&list.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("super list: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan super list: %w", err)
	}
	if err := json.Unmarshal([]byte(products), &list.Products); err != nil {
		return nil, fmt.Errorf("decode products of %s: %w", list.ID, err)
	}
	return &list, nil
}

func encodeProducts(products []domain.Product) (string, error) {
	if products == nil {
		products = []domain.Product{}
	}
	raw, err := json.Marshal(products)
	if err != nil {
		return "", fmt.Errorf("encode products: %w", err)
	}
	return string(raw), nil
}
