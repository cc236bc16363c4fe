package repository

import (
	"context"
	"fmt"

	"dolanlur/model"

	"github.com/jackc/pgx/v5"
)

type AddressDeliveryRepo struct{ db *DB }

func NewAddressDeliveryRepo(db *DB) *AddressDeliveryRepo { return &AddressDeliveryRepo{db: db} }

const deliveryColumns = `id, user_id, full_name, address, phone, created_at, updated_at`

const (
	qDeliveryInsert = `
INSERT INTO address_deliveries (user_id, full_name, address, phone)
VALUES ($1, $2, $3, $4)
RETURNING ` + deliveryColumns + `;`

	qDeliveryByID = `SELECT ` + deliveryColumns + ` FROM address_deliveries WHERE id = $1;`

	qDeliveryList = `SELECT ` + deliveryColumns + ` FROM address_deliveries ORDER BY id LIMIT $1 OFFSET $2;`

	qDeliveryUpdate = `
UPDATE address_deliveries
SET full_name  = COALESCE($2, full_name),
    address    = COALESCE($3, address),
    phone      = COALESCE($4, phone),
    updated_at = NOW()
WHERE id = $1
RETURNING ` + deliveryColumns + `;`

	qDeliveryDelete = `DELETE FROM address_deliveries WHERE id = $1;`
)

func (r *AddressDeliveryRepo) Create(ctx context.Context, d *model.AddressDelivery) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	err := scanDelivery(r.db.Pool.QueryRow(ctx, qDeliveryInsert, d.UserID, d.FullName, d.Address, d.Phone), d)
	if err != nil {
		return fmt.Errorf("address delivery insert: %w", err)
	}
	return nil
}

func (r *AddressDeliveryRepo) GetByID(ctx context.Context, id int64) (*model.AddressDelivery, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var d model.AddressDelivery
	if err := scanDelivery(r.db.Pool.QueryRow(ctx, qDeliveryByID, id), &d); err != nil {
		return nil, mapScanErr("address delivery by id", err)
	}
	return &d, nil
}

func (r *AddressDeliveryRepo) List(ctx context.Context, page, itemsPerPage int) ([]model.AddressDelivery, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	limit, offset := Page(page, itemsPerPage)
	rows, err := r.db.Pool.Query(ctx, qDeliveryList, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("address delivery list: %w", err)
	}
	defer rows.Close()

	var out []model.AddressDelivery
	for rows.Next() {
		var d model.AddressDelivery
		if err := scanDelivery(rows, &d); err != nil {
			return nil, fmt.Errorf("address delivery scan: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *AddressDeliveryRepo) Update(ctx context.Context, id int64, fullName, address, phone *string) (*model.AddressDelivery, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var d model.AddressDelivery
	if err := scanDelivery(r.db.Pool.QueryRow(ctx, qDeliveryUpdate, id, fullName, address, phone), &d); err != nil {
		return nil, mapScanErr("address delivery update", err)
	}
	return &d, nil
}

func (r *AddressDeliveryRepo) Delete(ctx context.Context, id int64) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Pool.Exec(ctx, qDeliveryDelete, id)
	if err != nil {
		return fmt.Errorf("address delivery delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanDelivery(row pgx.Row, d *model.AddressDelivery) error {
	return row.Scan(&d.ID, &d.UserID, &d.FullName, &d.Address, &d.Phone, &d.CreatedAt, &d.UpdatedAt)
}
