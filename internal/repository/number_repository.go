package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopwave/vip-store/internal/model"
)

// NumberRepo encapsulates all database queries for individual VIP
// numbers. It depends on a sql.DB connection pool configured at startup.
type NumberRepo struct {
	db *sql.DB
}

// NewNumberRepo constructs a NumberRepo with the provided DB handle.
// This allows dependency injection of the database in tests and at
// startup; there is no initialization logic beyond assigning the field.
func NewNumberRepo(db *sql.DB) *NumberRepo { return &NumberRepo{db: db} }

const numberColumns = `id, display_number, category_id, price_paise, original_price_paise, status, is_vip, created_at, updated_at`

func scanNumber(row interface{ Scan(...any) error }) (*model.VipNumber, error) {
	var n model.VipNumber
	var orig sql.NullInt64
	if err := row.Scan(&n.ID, &n.DisplayNumber, &n.CategoryID, &n.PricePaise, &orig,
		&n.Status, &n.VIP, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}
	if orig.Valid {
		v := orig.Int64
		n.OriginalPricePaise = &v
	}
	return &n, nil
}

// GetByID fetches a number by its id. It returns ErrNumberNotFound when
// no row exists.
func (r *NumberRepo) GetByID(ctx context.Context, id string) (*model.VipNumber, error) {
	const q = `SELECT ` + numberColumns + ` FROM vip_numbers WHERE id = ?`
	n, err := scanNumber(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNumberNotFound
		}
		return nil, err
	}
	return n, nil
}

// ListAvailableByCategory returns the AVAILABLE numbers in a category
// ordered by price. Sold and reserved numbers are excluded from
// browsing; the storefront never lists what cannot be bought.
func (r *NumberRepo) ListAvailableByCategory(ctx context.Context, categoryID string) ([]*model.VipNumber, error) {
	const q = `SELECT ` + numberColumns + `
	           FROM vip_numbers
	           WHERE category_id = ? AND status = 'AVAILABLE'
	           ORDER BY price_paise, id`
	rows, err := r.db.QueryContext(ctx, q, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.VipNumber
	for rows.Next() {
		n, err := scanNumber(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkStatusTx updates the status of the given numbers inside an
// existing transaction. It is used at checkout confirmation to flip
// purchased numbers to SOLD so they stop being selectable. Passing an
// empty slice has no effect and returns nil.
func (r *NumberRepo) MarkStatusTx(ctx context.Context, tx *sql.Tx, ids []string, status string) error {
	if len(ids) == 0 {
		return nil
	}
	query := `UPDATE vip_numbers SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id IN (?`
	args := make([]any, 0, len(ids)+1)
	args = append(args, status, ids[0])
	for _, id := range ids[1:] {
		query += ",?"
		args = append(args, id)
	}
	query += ")"
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}
