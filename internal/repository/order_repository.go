package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopwave/vip-store/internal/model"
)

// ErrOrderNotFound is returned when an order cannot be found by its
// gateway reference.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepo provides persistence for checkout orders and their receipt
// lines. Orders group the cart lines paid for in one gateway checkout.
type OrderRepo struct {
	db *sql.DB
}

// NewOrderRepo returns a new OrderRepo bound to the given database.
func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

// DB exposes the underlying pool so handlers can open transactions that
// span repositories.
func (r *OrderRepo) DB() *sql.DB { return r.db }

// Create inserts a PENDING order with its receipt lines in a single
// transaction and populates the generated ID on the provided record.
func (r *OrderRepo) Create(ctx context.Context, o *model.Order, items []model.OrderItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const q = `INSERT INTO orders (session_id, status, total_paise, gateway_order_ref) VALUES (?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, o.SessionID, o.Status, o.TotalPaise, o.GatewayOrderRef)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	o.ID = uint64(id)

	if len(items) > 0 {
		query := `INSERT INTO order_items (order_id, cart_key, label, selected_number_ids, unit_price_paise) VALUES `
		args := make([]any, 0, len(items)*5)
		for i, it := range items {
			if i > 0 {
				query += ","
			}
			query += "(?, ?, ?, ?, ?)"
			args = append(args, o.ID, it.CartKey, it.Label, it.SelectedNumberIDs, it.UnitPricePaise)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// GetByGatewayRef fetches an order by the reference the payment gateway
// echoes back on success. It returns ErrOrderNotFound when no row
// matches.
func (r *OrderRepo) GetByGatewayRef(ctx context.Context, ref string) (*model.Order, error) {
	const q = `SELECT id, session_id, status, total_paise, gateway_order_ref, payment_ref, created_at, updated_at
	           FROM orders WHERE gateway_order_ref = ?`
	var o model.Order
	var payRef sql.NullString
	err := r.db.QueryRowContext(ctx, q, ref).Scan(&o.ID, &o.SessionID, &o.Status, &o.TotalPaise,
		&o.GatewayOrderRef, &payRef, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if payRef.Valid {
		pr := payRef.String
		o.PaymentRef = &pr
	}
	return &o, nil
}

// ListItems returns the receipt lines of an order in insertion order.
func (r *OrderRepo) ListItems(ctx context.Context, orderID uint64) ([]model.OrderItem, error) {
	const q = `SELECT id, order_id, cart_key, label, selected_number_ids, unit_price_paise
	           FROM order_items WHERE order_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.OrderItem
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.CartKey, &it.Label, &it.SelectedNumberIDs, &it.UnitPricePaise); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// MarkStatusTx updates an order's status (and payment reference, when
// non-nil) inside an existing transaction. It returns sql.ErrNoRows
// when no row is affected.
func (r *OrderRepo) MarkStatusTx(ctx context.Context, tx *sql.Tx, orderID uint64, status string, paymentRef *string) error {
	const q = `UPDATE orders
	           SET status = ?, payment_ref = COALESCE(?, payment_ref), updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := tx.ExecContext(ctx, q, status, paymentRef, orderID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
