package repository

import (
	"context"
	"fmt"

	"dolanlur/model"

	"github.com/jackc/pgx/v5"
)

type AddressRepo struct{ db *DB }

func NewAddressRepo(db *DB) *AddressRepo { return &AddressRepo{db: db} }

const addressColumns = `id, user_id, full_name, address, phone, full_address,
url_maps, latitude, longitude, created_at, updated_at`

const (
	qAddressInsert = `
INSERT INTO addresses (user_id, full_name, address, phone, full_address, url_maps, latitude, longitude)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + addressColumns + `;`

	qAddressByID = `SELECT ` + addressColumns + ` FROM addresses WHERE id = $1;`

	qAddressList = `SELECT ` + addressColumns + ` FROM addresses ORDER BY id LIMIT $1 OFFSET $2;`

	qAddressByUser = `SELECT ` + addressColumns + ` FROM addresses WHERE user_id = $1 ORDER BY id;`

	qAddressUpdate = `
UPDATE addresses
SET full_name    = COALESCE($2, full_name),
    address      = COALESCE($3, address),
    phone        = COALESCE($4, phone),
    full_address = COALESCE($5, full_address),
    url_maps     = COALESCE($6, url_maps),
    latitude     = COALESCE($7, latitude),
    longitude    = COALESCE($8, longitude),
    updated_at   = NOW()
WHERE id = $1
RETURNING ` + addressColumns + `;`

	qAddressDelete = `DELETE FROM addresses WHERE id = $1;`
)

func (r *AddressRepo) Create(ctx context.Context, a *model.Address) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	err := scanAddress(r.db.Pool.QueryRow(ctx, qAddressInsert,
		a.UserID, a.FullName, a.Address, a.Phone, a.FullAddress, a.URLMaps, a.Latitude, a.Longitude), a)
	if err != nil {
		return fmt.Errorf("address insert: %w", err)
	}
	return nil
}

func (r *AddressRepo) GetByID(ctx context.Context, id int64) (*model.Address, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var a model.Address
	if err := scanAddress(r.db.Pool.QueryRow(ctx, qAddressByID, id), &a); err != nil {
		return nil, mapScanErr("address by id", err)
	}
	return &a, nil
}

func (r *AddressRepo) List(ctx context.Context, page, itemsPerPage int) ([]model.Address, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	limit, offset := Page(page, itemsPerPage)
	rows, err := r.db.Pool.Query(ctx, qAddressList, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("address list: %w", err)
	}
	defer rows.Close()
	return collectAddresses(rows)
}

func (r *AddressRepo) ListByUser(ctx context.Context, userID int64) ([]model.Address, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Pool.Query(ctx, qAddressByUser, userID)
	if err != nil {
		return nil, fmt.Errorf("address by user: %w", err)
	}
	defer rows.Close()
	return collectAddresses(rows)
}

func (r *AddressRepo) Update(ctx context.Context, id int64, patch *model.AddressPatch) (*model.Address, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var a model.Address
	err := scanAddress(r.db.Pool.QueryRow(ctx, qAddressUpdate, id,
		patch.FullName, patch.Address, patch.Phone, patch.FullAddress,
		patch.URLMaps, patch.Latitude, patch.Longitude), &a)
	if err != nil {
		return nil, mapScanErr("address update", err)
	}
	return &a, nil
}

func (r *AddressRepo) Delete(ctx context.Context, id int64) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Pool.Exec(ctx, qAddressDelete, id)
	if err != nil {
		return fmt.Errorf("address delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func collectAddresses(rows pgx.Rows) ([]model.Address, error) {
	var addrs []model.Address
	for rows.Next() {
		var a model.Address
		if err := scanAddress(rows, &a); err != nil {
			return nil, fmt.Errorf("address scan: %w", err)
		}
		addrs = append(addrs, a)
	}
	return addrs, rows.Err()
}

func scanAddress(row pgx.Row, a *model.Address) error {
	return row.Scan(&a.ID, &a.UserID, &a.FullName, &a.Address, &a.Phone,
		&a.FullAddress, &a.URLMaps, &a.Latitude, &a.Longitude, &a.CreatedAt, &a.UpdatedAt)
}
