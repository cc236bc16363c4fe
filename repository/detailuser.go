package repository

import (
	"context"
	"fmt"
	"time"

	"dolanlur/model"

	"github.com/jackc/pgx/v5"
)

type DetailUserRepo struct{ db *DB }

func NewDetailUserRepo(db *DB) *DetailUserRepo { return &DetailUserRepo{db: db} }

const detailUserColumns = `id, user_id, full_name, address, phone, gender, dob, created_at, updated_at`

const (
	qDetailInsert = `
INSERT INTO detail_users (user_id, full_name, address, phone, gender, dob)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + detailUserColumns + `;`

	qDetailByUser = `SELECT ` + detailUserColumns + ` FROM detail_users WHERE user_id = $1;`

	qDetailList = `SELECT ` + detailUserColumns + ` FROM detail_users ORDER BY id LIMIT $1 OFFSET $2;`

	qDetailUpdate = `
UPDATE detail_users
SET full_name  = COALESCE($2, full_name),
    address    = COALESCE($3, address),
    phone      = COALESCE($4, phone),
    gender     = COALESCE($5, gender),
    dob        = COALESCE($6, dob),
    updated_at = NOW()
WHERE user_id = $1
RETURNING ` + detailUserColumns + `;`

	qDetailDelete = `DELETE FROM detail_users WHERE id = $1;`
)

func (r *DetailUserRepo) Create(ctx context.Context, d *model.DetailUser) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	err := scanDetailUser(r.db.Pool.QueryRow(ctx, qDetailInsert,
		d.UserID, d.FullName, d.Address, d.Phone, d.Gender, d.DOB), d)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("detail user insert: %w", err)
	}
	return nil
}

func (r *DetailUserRepo) GetByUser(ctx context.Context, userID int64) (*model.DetailUser, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var d model.DetailUser
	if err := scanDetailUser(r.db.Pool.QueryRow(ctx, qDetailByUser, userID), &d); err != nil {
		return nil, mapScanErr("detail user by user", err)
	}
	return &d, nil
}

func (r *DetailUserRepo) List(ctx context.Context, page, itemsPerPage int) ([]model.DetailUser, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	limit, offset := Page(page, itemsPerPage)
	rows, err := r.db.Pool.Query(ctx, qDetailList, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("detail user list: %w", err)
	}
	defer rows.Close()

	var details []model.DetailUser
	for rows.Next() {
		var d model.DetailUser
		if err := scanDetailUser(rows, &d); err != nil {
			return nil, fmt.Errorf("detail user scan: %w", err)
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

func (r *DetailUserRepo) Update(ctx context.Context, userID int64, fullName, address, phone, gender *string, dob *time.Time) (*model.DetailUser, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var d model.DetailUser
	if err := scanDetailUser(r.db.Pool.QueryRow(ctx, qDetailUpdate, userID, fullName, address, phone, gender, dob), &d); err != nil {
		return nil, mapScanErr("detail user update", err)
	}
	return &d, nil
}

func (r *DetailUserRepo) Delete(ctx context.Context, id int64) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Pool.Exec(ctx, qDetailDelete, id)
	if err != nil {
		return fmt.Errorf("detail user delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanDetailUser(row pgx.Row, d *model.DetailUser) error {
	return row.Scan(&d.ID, &d.UserID, &d.FullName, &d.Address, &d.Phone, &d.Gender,
		&d.DOB, &d.CreatedAt, &d.UpdatedAt)
}
