package repository

import (
	"context"
	"database/sql"
	"strings"
)

// NumberSearchQuery defines filters & pagination for searching numbers.
type NumberSearchQuery struct {
	Digits       string // substring matched against display_number
	CategorySlug string
	MinPaise     int64
	MaxPaise     int64
	VIPOnly      bool
	Page         int
	PageSize     int
}

// NumberSearchRow is one search hit shaped for the public API.
type NumberSearchRow struct {
	ID                 string `json:"id"`
	DisplayNumber      string `json:"display_number"`
	CategoryID         string `json:"category_id"`
	CategoryName       string `json:"category_name"`
	PricePaise         int64  `json:"price_paise"`
	OriginalPricePaise *int64 `json:"original_price_paise,omitempty"`
	VIP                bool   `json:"vip"`
}

// SearchAvailable searches AVAILABLE numbers by digit substring with
// optional category, price range and VIP filters. It returns the page
// of rows plus the total hit count for pagination.
func (r *NumberRepo) SearchAvailable(ctx context.Context, q NumberSearchQuery) ([]NumberSearchRow, int64, error) {
	where := []string{"n.status = 'AVAILABLE'"}
	args := []any{}

	if q.Digits != "" {
		where = append(where, "n.display_number LIKE ?")
		args = append(args, "%"+q.Digits+"%")
	}
	if q.CategorySlug != "" {
		where = append(where, "c.slug = ?")
		args = append(args, q.CategorySlug)
	}
	if q.MinPaise > 0 {
		where = append(where, "n.price_paise >= ?")
		args = append(args, q.MinPaise)
	}
	if q.MaxPaise > 0 {
		where = append(where, "n.price_paise <= ?")
		args = append(args, q.MaxPaise)
	}
	if q.VIPOnly {
		where = append(where, "n.is_vip = 1")
	}

	cond := strings.Join(where, " AND ")

	var total int64
	countSQL := `SELECT COUNT(*)
		FROM vip_numbers n
		JOIN categories c ON c.id = n.category_id
		WHERE ` + cond
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := q.PageSize
	offset := (q.Page - 1) * q.PageSize

	dataSQL := `SELECT
			n.id,
			n.display_number,
			n.category_id,
			c.name AS category_name,
			n.price_paise,
			n.original_price_paise,
			n.is_vip
		FROM vip_numbers n
		JOIN categories c ON c.id = n.category_id
		WHERE ` + cond + `
		ORDER BY n.price_paise ASC, n.id
		LIMIT ? OFFSET ?`

	argsData := append(append([]any{}, args...), limit, offset)

	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]NumberSearchRow, 0, limit)
	for rows.Next() {
		var d NumberSearchRow
		var orig sql.NullInt64
		if err := rows.Scan(
			&d.ID,
			&d.DisplayNumber,
			&d.CategoryID,
			&d.CategoryName,
			&d.PricePaise,
			&orig,
			&d.VIP,
		); err != nil {
			return nil, 0, err
		}
		if orig.Valid {
			v := orig.Int64
			d.OriginalPricePaise = &v
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
