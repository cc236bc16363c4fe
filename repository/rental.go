package repository

import (
	"context"
	"fmt"
	"time"

	"dolanlur/model"

	"github.com/jackc/pgx/v5"
)

type RentalRepo struct{ db *DB }

func NewRentalRepo(db *DB) *RentalRepo { return &RentalRepo{db: db} }

const rentalColumns = `id, user_id, vehicle_id, start_date, end_date,
delivery_location_id, rental_status, total_price, created_at, updated_at`

const (
	qRentalInsert = `
INSERT INTO rentals (user_id, vehicle_id, start_date, end_date, delivery_location_id, rental_status, total_price)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + rentalColumns + `;`

	qRentalByID = `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1;`

	qRentalList = `SELECT ` + rentalColumns + ` FROM rentals ORDER BY id LIMIT $1 OFFSET $2;`

	qRentalUpdate = `
UPDATE rentals
SET start_date    = COALESCE($2, start_date),
    end_date      = COALESCE($3, end_date),
    rental_status = COALESCE($4, rental_status),
    total_price   = COALESCE($5, total_price),
    updated_at    = NOW()
WHERE id = $1
RETURNING ` + rentalColumns + `;`

	qRentalDelete = `DELETE FROM rentals WHERE id = $1;`
)

func (r *RentalRepo) Create(ctx context.Context, rental *model.Rental) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	err := scanRental(r.db.Pool.QueryRow(ctx, qRentalInsert,
		rental.UserID, rental.VehicleID, rental.StartDate, rental.EndDate,
		rental.DeliveryLocationID, rental.RentalStatus, rental.TotalPrice), rental)
	if err != nil {
		return fmt.Errorf("rental insert: %w", err)
	}
	return nil
}

func (r *RentalRepo) GetByID(ctx context.Context, id int64) (*model.Rental, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var rental model.Rental
	if err := scanRental(r.db.Pool.QueryRow(ctx, qRentalByID, id), &rental); err != nil {
		return nil, mapScanErr("rental by id", err)
	}
	return &rental, nil
}

func (r *RentalRepo) List(ctx context.Context, page, itemsPerPage int) ([]model.Rental, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	limit, offset := Page(page, itemsPerPage)
	rows, err := r.db.Pool.Query(ctx, qRentalList, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("rental list: %w", err)
	}
	defer rows.Close()

	var rentals []model.Rental
	for rows.Next() {
		var rental model.Rental
		if err := scanRental(rows, &rental); err != nil {
			return nil, fmt.Errorf("rental scan: %w", err)
		}
		rentals = append(rentals, rental)
	}
	return rentals, rows.Err()
}

func (r *RentalRepo) Update(ctx context.Context, id int64, startDate, endDate *time.Time, status *string, totalPrice *float64) (*model.Rental, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var rental model.Rental
	if err := scanRental(r.db.Pool.QueryRow(ctx, qRentalUpdate, id, startDate, endDate, status, totalPrice), &rental); err != nil {
		return nil, mapScanErr("rental update", err)
	}
	return &rental, nil
}

func (r *RentalRepo) Delete(ctx context.Context, id int64) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Pool.Exec(ctx, qRentalDelete, id)
	if err != nil {
		return fmt.Errorf("rental delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanRental(row pgx.Row, rental *model.Rental) error {
	return row.Scan(&rental.ID, &rental.UserID, &rental.VehicleID, &rental.StartDate,
		&rental.EndDate, &rental.DeliveryLocationID, &rental.RentalStatus,
		&rental.TotalPrice, &rental.CreatedAt, &rental.UpdatedAt)
}
