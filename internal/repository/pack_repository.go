package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopwave/vip-store/internal/model"
)

// PackRepo encapsulates database queries for number packs. Pack rows
// hold the offer metadata; membership lives in pack_members and the
// member's display number, price and status are always read live from
// vip_numbers so a member that sold out since listing shows up as
// unselectable immediately.
type PackRepo struct {
	db *sql.DB
}

// NewPackRepo constructs a PackRepo with the provided DB handle.
func NewPackRepo(db *sql.DB) *PackRepo { return &PackRepo{db: db} }

// GetByID fetches a pack with its members joined against the current
// number rows. It returns ErrPackNotFound when no pack row exists.
func (r *PackRepo) GetByID(ctx context.Context, id string) (*model.Pack, error) {
	const q = `SELECT id, name, description, list_price_paise, total_original_price_paise, is_vip, created_at, updated_at
	           FROM packs WHERE id = ?`
	var p model.Pack
	var desc sql.NullString
	var orig sql.NullInt64
	err := r.db.QueryRowContext(ctx, q, id).Scan(&p.ID, &p.Name, &desc, &p.ListPricePaise,
		&orig, &p.VIP, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPackNotFound
		}
		return nil, err
	}
	if desc.Valid {
		p.Description = desc.String
	}
	if orig.Valid {
		v := orig.Int64
		p.TotalOriginalPricePaise = &v
	}
	members, err := r.listMembers(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Members = members
	return &p, nil
}

// ListAll returns every pack with members, ordered by id. The member
// join is per pack; catalogs here are small (tens of packs) so the
// extra round trips are not worth a widened join.
func (r *PackRepo) ListAll(ctx context.Context) ([]*model.Pack, error) {
	const q = `SELECT id, name, description, list_price_paise, total_original_price_paise, is_vip, created_at, updated_at
	           FROM packs ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Pack
	for rows.Next() {
		var p model.Pack
		var desc sql.NullString
		var orig sql.NullInt64
		if err := rows.Scan(&p.ID, &p.Name, &desc, &p.ListPricePaise, &orig, &p.VIP,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		if desc.Valid {
			p.Description = desc.String
		}
		if orig.Valid {
			v := orig.Int64
			p.TotalOriginalPricePaise = &v
		}
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, p := range out {
		members, err := r.listMembers(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		p.Members = members
	}
	return out, nil
}

// listMembers returns a pack's members in their stored display order,
// with price and status read from the referenced vip_numbers rows.
func (r *PackRepo) listMembers(ctx context.Context, packID string) ([]model.PackMember, error) {
	const q = `SELECT pm.number_id, n.display_number, n.price_paise, n.status
	           FROM pack_members pm
	           JOIN vip_numbers n ON n.id = pm.number_id
	           WHERE pm.pack_id = ?
	           ORDER BY pm.position`
	rows, err := r.db.QueryContext(ctx, q, packID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.PackMember
	for rows.Next() {
		var m model.PackMember
		if err := rows.Scan(&m.NumberID, &m.DisplayNumber, &m.PricePaise, &m.Status); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
