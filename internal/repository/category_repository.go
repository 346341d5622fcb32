package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopwave/vip-store/internal/model"
)

// CategoryRepo encapsulates database queries for browse categories.
type CategoryRepo struct {
	db *sql.DB
}

// NewCategoryRepo constructs a CategoryRepo with the provided DB handle.
func NewCategoryRepo(db *sql.DB) *CategoryRepo { return &CategoryRepo{db: db} }

// ListAll returns all categories in storefront order.
func (r *CategoryRepo) ListAll(ctx context.Context) ([]*model.Category, error) {
	const q = `SELECT id, name, slug, sort_order, created_at FROM categories ORDER BY sort_order, id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Category
	for rows.Next() {
		c := new(model.Category)
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.SortOrder, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetBySlug fetches a category by its URL slug. It returns
// ErrCategoryNotFound when no row matches.
func (r *CategoryRepo) GetBySlug(ctx context.Context, slug string) (*model.Category, error) {
	const q = `SELECT id, name, slug, sort_order, created_at FROM categories WHERE slug = ?`
	var c model.Category
	if err := r.db.QueryRowContext(ctx, q, slug).Scan(&c.ID, &c.Name, &c.Slug, &c.SortOrder, &c.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &c, nil
}
