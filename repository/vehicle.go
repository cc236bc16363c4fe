package repository

import (
	"context"
	"fmt"

	"dolanlur/model"

	"github.com/jackc/pgx/v5"
)

type VehicleRepo struct{ db *DB }

func NewVehicleRepo(db *DB) *VehicleRepo { return &VehicleRepo{db: db} }

const vehicleColumns = `id, brand_id, vehicle_type, vehicle_name, rental_price,
availability_status, year, seats, horse_power, description, specification_list,
secure_url_image, public_url_image, created_at, updated_at`

const (
	qVehicleInsert = `
INSERT INTO vehicles (brand_id, vehicle_type, vehicle_name, rental_price,
availability_status, year, seats, horse_power, description, specification_list,
secure_url_image, public_url_image)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING ` + vehicleColumns + `;`

	qVehicleByID = `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1;`

	qVehicleList = `SELECT ` + vehicleColumns + ` FROM vehicles ORDER BY id LIMIT $1 OFFSET $2;`

	qVehicleByBrand = `SELECT ` + vehicleColumns + ` FROM vehicles WHERE brand_id = $1 ORDER BY id;`

	qVehicleUpdate = `
UPDATE vehicles
SET brand_id            = COALESCE($2, brand_id),
    vehicle_type        = COALESCE($3, vehicle_type),
    vehicle_name        = COALESCE($4, vehicle_name),
    rental_price        = COALESCE($5, rental_price),
    availability_status = COALESCE($6, availability_status),
    year                = COALESCE($7, year),
    seats               = COALESCE($8, seats),
    horse_power         = COALESCE($9, horse_power),
    description         = COALESCE($10, description),
    specification_list  = COALESCE($11, specification_list),
    secure_url_image    = COALESCE($12, secure_url_image),
    public_url_image    = COALESCE($13, public_url_image),
    updated_at          = NOW()
WHERE id = $1
RETURNING ` + vehicleColumns + `;`

	qVehicleDelete = `DELETE FROM vehicles WHERE id = $1;`
)

func (r *VehicleRepo) Create(ctx context.Context, v *model.Vehicle) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	err := scanVehicle(r.db.Pool.QueryRow(ctx, qVehicleInsert,
		v.BrandID, v.VehicleType, v.VehicleName, v.RentalPrice, v.AvailabilityStatus,
		v.Year, v.Seats, v.HorsePower, v.Description, v.SpecificationList,
		v.SecureURLImage, v.PublicURLImage), v)
	if err != nil {
		return fmt.Errorf("vehicle insert: %w", err)
	}
	return nil
}

func (r *VehicleRepo) GetByID(ctx context.Context, id int64) (*model.Vehicle, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var v model.Vehicle
	if err := scanVehicle(r.db.Pool.QueryRow(ctx, qVehicleByID, id), &v); err != nil {
		return nil, mapScanErr("vehicle by id", err)
	}
	return &v, nil
}

func (r *VehicleRepo) List(ctx context.Context, page, itemsPerPage int) ([]model.Vehicle, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	limit, offset := Page(page, itemsPerPage)
	rows, err := r.db.Pool.Query(ctx, qVehicleList, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("vehicle list: %w", err)
	}
	defer rows.Close()
	return collectVehicles(rows)
}

func (r *VehicleRepo) ListByBrand(ctx context.Context, brandID int64) ([]model.Vehicle, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Pool.Query(ctx, qVehicleByBrand, brandID)
	if err != nil {
		return nil, fmt.Errorf("vehicle by brand: %w", err)
	}
	defer rows.Close()
	return collectVehicles(rows)
}

func (r *VehicleRepo) Update(ctx context.Context, id int64, patch *model.VehiclePatch) (*model.Vehicle, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var v model.Vehicle
	err := scanVehicle(r.db.Pool.QueryRow(ctx, qVehicleUpdate, id,
		patch.BrandID, patch.VehicleType, patch.VehicleName, patch.RentalPrice,
		patch.AvailabilityStatus, patch.Year, patch.Seats, patch.HorsePower,
		patch.Description, patch.SpecificationList, patch.SecureURLImage, patch.PublicURLImage), &v)
	if err != nil {
		return nil, mapScanErr("vehicle update", err)
	}
	return &v, nil
}

func (r *VehicleRepo) Delete(ctx context.Context, id int64) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Pool.Exec(ctx, qVehicleDelete, id)
	if err != nil {
		return fmt.Errorf("vehicle delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func collectVehicles(rows pgx.Rows) ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	for rows.Next() {
		var v model.Vehicle
		if err := scanVehicle(rows, &v); err != nil {
			return nil, fmt.Errorf("vehicle scan: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

func scanVehicle(row pgx.Row, v *model.Vehicle) error {
	return row.Scan(&v.ID, &v.BrandID, &v.VehicleType, &v.VehicleName, &v.RentalPrice,
		&v.AvailabilityStatus, &v.Year, &v.Seats, &v.HorsePower, &v.Description,
		&v.SpecificationList, &v.SecureURLImage, &v.PublicURLImage, &v.CreatedAt, &v.UpdatedAt)
}
