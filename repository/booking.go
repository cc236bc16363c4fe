package repository

import (
	"context"
	"fmt"

	"dolanlur/model"

	"github.com/jackc/pgx/v5"
)

type BookingRepo struct{ db *DB }

func NewBookingRepo(db *DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingColumns = `b.id, b.user_id, b.vehicle_id, b.rental_period, b.start_date,
b.end_date, b.delivery_location, b.rental_status, b.total_price, b.bank_transfer,
b.notes, b.secure_url_image, b.public_url_image, b.payment_proof, b.created_at, b.updated_at`

const bookingJoin = `
FROM bookings b
JOIN users u ON u.id = b.user_id
JOIN vehicles v ON v.id = b.vehicle_id
JOIN addresses a ON a.id = b.delivery_location
JOIN bank_accounts k ON k.id = b.bank_transfer`

const (
	qBookingInsert = `
INSERT INTO bookings (user_id, vehicle_id, rental_period, start_date, end_date,
delivery_location, rental_status, total_price, bank_transfer, notes,
secure_url_image, public_url_image, payment_proof)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
RETURNING id, user_id, vehicle_id, rental_period, start_date, end_date,
delivery_location, rental_status, total_price, bank_transfer, notes,
secure_url_image, public_url_image, payment_proof, created_at, updated_at;`

	qBookingDetailByID = `
SELECT ` + bookingColumns + `,
       u.id, u.username, u.email, u.full_name, u.role, u.status,
       v.id, v.brand_id, v.vehicle_type, v.vehicle_name, v.rental_price,
       v.availability_status, v.year, v.seats, v.horse_power, v.description,
       v.specification_list, v.secure_url_image, v.public_url_image,
       a.id, a.user_id, a.full_name, a.address, a.phone, a.full_address, a.latitude, a.longitude,
       k.id, k.name_bank, k.number
` + bookingJoin + `
WHERE b.id = $1;`

	qBookingListAll = `
SELECT ` + bookingColumns + `,
       u.id, u.username, u.email, u.full_name, u.role, u.status,
       v.id, v.brand_id, v.vehicle_type, v.vehicle_name, v.rental_price,
       v.availability_status, v.year, v.seats, v.horse_power, v.description,
       v.specification_list, v.secure_url_image, v.public_url_image,
       a.id, a.user_id, a.full_name, a.address, a.phone, a.full_address, a.latitude, a.longitude,
       k.id, k.name_bank, k.number
` + bookingJoin + `
ORDER BY b.id LIMIT $1 OFFSET $2;`

	qBookingListByUser = `
SELECT ` + bookingColumns + `,
       u.id, u.username, u.email, u.full_name, u.role, u.status,
       v.id, v.brand_id, v.vehicle_type, v.vehicle_name, v.rental_price,
       v.availability_status, v.year, v.seats, v.horse_power, v.description,
       v.specification_list, v.secure_url_image, v.public_url_image,
       a.id, a.user_id, a.full_name, a.address, a.phone, a.full_address, a.latitude, a.longitude,
       k.id, k.name_bank, k.number
` + bookingJoin + `
WHERE b.user_id = $1
ORDER BY b.id LIMIT $2 OFFSET $3;`

	qBookingListByVehicle = `
SELECT ` + bookingColumns + `,
       u.id, u.username, u.email, u.full_name, u.role, u.status,
       v.id, v.brand_id, v.vehicle_type, v.vehicle_name, v.rental_price,
       v.availability_status, v.year, v.seats, v.horse_power, v.description,
       v.specification_list, v.secure_url_image, v.public_url_image,
       a.id, a.user_id, a.full_name, a.address, a.phone, a.full_address, a.latitude, a.longitude,
       k.id, k.name_bank, k.number
` + bookingJoin + `
WHERE b.vehicle_id = $1
ORDER BY b.id;`

	qBookingUpdateImage = `
UPDATE bookings
SET secure_url_image = COALESCE($3, secure_url_image),
    public_url_image = COALESCE($4, public_url_image),
    payment_proof    = 'paid',
    updated_at       = NOW()
WHERE id = $1 AND user_id = $2;`

	qBookingUpdateAdmin = `
UPDATE bookings
SET rental_status = COALESCE($2, rental_status),
    payment_proof = COALESCE($3, payment_proof),
    total_price   = COALESCE($4, total_price),
    updated_at    = NOW()
WHERE id = $1
RETURNING id, user_id, vehicle_id, rental_period, start_date, end_date,
delivery_location, rental_status, total_price, bank_transfer, notes,
secure_url_image, public_url_image, payment_proof, created_at, updated_at;`

	qBookingDelete = `DELETE FROM bookings WHERE id = $1;`
)

func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	err := r.db.Pool.QueryRow(ctx, qBookingInsert,
		b.UserID, b.VehicleID, b.RentalPeriod, b.StartDate, b.EndDate,
		b.DeliveryLocation, b.RentalStatus, b.TotalPrice, b.BankTransfer,
		b.Notes, b.SecureURLImage, b.PublicURLImage, b.PaymentProof).
		Scan(&b.ID, &b.UserID, &b.VehicleID, &b.RentalPeriod, &b.StartDate, &b.EndDate,
			&b.DeliveryLocation, &b.RentalStatus, &b.TotalPrice, &b.BankTransfer,
			&b.Notes, &b.SecureURLImage, &b.PublicURLImage, &b.PaymentProof,
			&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("booking insert: %w", err)
	}
	return nil
}

func (r *BookingRepo) GetByID(ctx context.Context, id int64) (*model.BookingDetail, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var d model.BookingDetail
	if err := scanBookingDetail(r.db.Pool.QueryRow(ctx, qBookingDetailByID, id), &d); err != nil {
		return nil, mapScanErr("booking by id", err)
	}
	return &d, nil
}

func (r *BookingRepo) List(ctx context.Context, page, itemsPerPage int) ([]model.BookingDetail, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	limit, offset := Page(page, itemsPerPage)
	rows, err := r.db.Pool.Query(ctx, qBookingListAll, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("booking list: %w", err)
	}
	defer rows.Close()
	return collectBookings(rows)
}

func (r *BookingRepo) ListByUser(ctx context.Context, userID int64, page, itemsPerPage int) ([]model.BookingDetail, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	limit, offset := Page(page, itemsPerPage)
	rows, err := r.db.Pool.Query(ctx, qBookingListByUser, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("booking by user: %w", err)
	}
	defer rows.Close()
	return collectBookings(rows)
}

func (r *BookingRepo) ListByVehicle(ctx context.Context, vehicleID int64) ([]model.BookingDetail, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Pool.Query(ctx, qBookingListByVehicle, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("booking by vehicle: %w", err)
	}
	defer rows.Close()
	return collectBookings(rows)
}

// AttachPaymentProof is the only update a renter may make: uploading proof of
// payment for their own booking.
func (r *BookingRepo) AttachPaymentProof(ctx context.Context, id, userID int64, secureURL, publicURL *string) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Pool.Exec(ctx, qBookingUpdateImage, id, userID, secureURL, publicURL)
	if err != nil {
		return fmt.Errorf("booking attach proof: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BookingRepo) UpdateAdmin(ctx context.Context, id int64, rentalStatus, paymentProof *string, totalPrice *float64) (*model.Booking, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var b model.Booking
	err := r.db.Pool.QueryRow(ctx, qBookingUpdateAdmin, id, rentalStatus, paymentProof, totalPrice).
		Scan(&b.ID, &b.UserID, &b.VehicleID, &b.RentalPeriod, &b.StartDate, &b.EndDate,
			&b.DeliveryLocation, &b.RentalStatus, &b.TotalPrice, &b.BankTransfer,
			&b.Notes, &b.SecureURLImage, &b.PublicURLImage, &b.PaymentProof,
			&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, mapScanErr("booking update", err)
	}
	return &b, nil
}

func (r *BookingRepo) Delete(ctx context.Context, id int64) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Pool.Exec(ctx, qBookingDelete, id)
	if err != nil {
		return fmt.Errorf("booking delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func collectBookings(rows pgx.Rows) ([]model.BookingDetail, error) {
	var bookings []model.BookingDetail
	for rows.Next() {
		var d model.BookingDetail
		if err := scanBookingDetail(rows, &d); err != nil {
			return nil, fmt.Errorf("booking scan: %w", err)
		}
		bookings = append(bookings, d)
	}
	return bookings, rows.Err()
}

func scanBookingDetail(row pgx.Row, d *model.BookingDetail) error {
	var (
		u model.User
		v model.Vehicle
		a model.Address
		k model.BankAccount
	)
	err := row.Scan(
		&d.ID, &d.UserID, &d.VehicleID, &d.RentalPeriod, &d.StartDate, &d.EndDate,
		&d.DeliveryLocation, &d.RentalStatus, &d.TotalPrice, &d.BankTransfer,
		&d.Notes, &d.SecureURLImage, &d.PublicURLImage, &d.PaymentProof,
		&d.CreatedAt, &d.UpdatedAt,
		&u.ID, &u.Username, &u.Email, &u.FullName, &u.Role, &u.Status,
		&v.ID, &v.BrandID, &v.VehicleType, &v.VehicleName, &v.RentalPrice,
		&v.AvailabilityStatus, &v.Year, &v.Seats, &v.HorsePower, &v.Description,
		&v.SpecificationList, &v.SecureURLImage, &v.PublicURLImage,
		&a.ID, &a.UserID, &a.FullName, &a.Address, &a.Phone, &a.FullAddress, &a.Latitude, &a.Longitude,
		&k.ID, &k.NameBank, &k.Number,
	)
	if err != nil {
		return err
	}
	d.User, d.Vehicle, d.Delivery, d.Bank = &u, &v, &a, &k
	return nil
}
