package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shiraberu/pricing-go/internal/domain/entity"
	"github.com/shiraberu/pricing-go/internal/domain/repository"
)

// CategoryRepository implements repository.CategoryRepository on SQLite.
type CategoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new SQLite-backed category repository.
func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

var _ repository.CategoryRepository = (*CategoryRepository)(nil)

// Create persists a new category.
func (r *CategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	if category == nil {
		return repository.ErrInvalidInput
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (id, name, sort_order, created_at) VALUES (?, ?, ?, ?)`,
		category.ID.String(),
		category.Name,
		category.SortOrder,
		category.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID retrieves a category by ID.
func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, sort_order, created_at FROM categories WHERE id = ?`,
		id.String(),
	)

	category, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query category: %w", err)
	}
	return category, nil
}

// Update persists changes to an existing category.
func (r *CategoryRepository) Update(ctx context.Context, category *entity.Category) error {
	if category == nil {
		return repository.ErrInvalidInput
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE categories SET name = ?, sort_order = ? WHERE id = ?`,
		category.Name,
		category.SortOrder,
		category.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update category rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrCategoryNotFound
	}
	return nil
}

// Delete removes a category. Seller links are removed by the foreign-key
// cascade; the sellers themselves survive.
func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM categories WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete category rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrCategoryNotFound
	}
	return nil
}

// FindAll retrieves every category ordered by sort order ascending.
func (r *CategoryRepository) FindAll(ctx context.Context) ([]*entity.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, sort_order, created_at FROM categories ORDER BY sort_order ASC, created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	categories := make([]*entity.Category, 0)
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return categories, nil
}

// Reorder rewrites the sort order of the listed categories to match their
// position in orderedIDs. The whole rewrite runs in one transaction.
func (r *CategoryRepository) Reorder(ctx context.Context, orderedIDs []uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", repository.ErrTransactionFailed, err)
	}
	defer tx.Rollback()

	for i, id := range orderedIDs {
		if _, err := tx.ExecContext(ctx,
			`UPDATE categories SET sort_order = ? WHERE id = ?`, i, id.String()); err != nil {
			return fmt.Errorf("reorder category %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", repository.ErrTransactionFailed, err)
	}
	return nil
}

// MaxSortOrder returns the highest sort order in use, or -1 when no
// categories exist.
func (r *CategoryRepository) MaxSortOrder(ctx context.Context) (int, error) {
	var max sql.NullInt64
	err := r.db.QueryRowContext(ctx, `SELECT MAX(sort_order) FROM categories`).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("query max sort order: %w", err)
	}
	if !max.Valid {
		return -1, nil
	}
	return int(max.Int64), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(row rowScanner) (*entity.Category, error) {
	var (
		idStr     string
		createdAt string
		category  entity.Category
	)
	if err := row.Scan(&idStr, &category.Name, &category.SortOrder, &createdAt); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("parse category ID %q: %w", idStr, err)
	}
	category.ID = id

	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse category created_at %q: %w", createdAt, err)
	}
	category.CreatedAt = ts

	return &category, nil
}
