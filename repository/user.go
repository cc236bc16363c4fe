package repository

import (
	"context"
	"fmt"

	"dolanlur/model"

	"github.com/jackc/pgx/v5"
)

type UserRepo struct{ db *DB }

func NewUserRepo(db *DB) *UserRepo { return &UserRepo{db: db} }

const userColumns = `id, username, email, password, full_name, phone,
secure_url_profile, public_url_profile, role, status, otp, created_at, updated_at`

const (
	qUserInsert = `
INSERT INTO users (username, email, password, role, status)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + userColumns + `;`

	qUserByID = `
SELECT ` + userColumns + ` FROM users WHERE id = $1;`

	qUserByEmail = `
SELECT ` + userColumns + ` FROM users WHERE email = $1;`

	qUserByUsername = `
SELECT ` + userColumns + ` FROM users WHERE username = $1;`

	qUserList = `
SELECT ` + userColumns + ` FROM users ORDER BY id LIMIT $1 OFFSET $2;`

	qUserUpdateProfile = `
UPDATE users
SET username           = COALESCE($2, username),
    phone              = COALESCE($3, phone),
    secure_url_profile = COALESCE($4, secure_url_profile),
    public_url_profile = COALESCE($5, public_url_profile),
    updated_at         = NOW()
WHERE id = $1
RETURNING ` + userColumns + `;`

	qUserSetPassword = `
UPDATE users SET password = $2, otp = NULL, updated_at = NOW() WHERE id = $1;`

	qUserSetOTP = `
UPDATE users SET otp = $2, updated_at = NOW() WHERE email = $1;`

	qUserDelete = `DELETE FROM users WHERE id = $1;`
)

func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	err := scanUser(r.db.Pool.QueryRow(ctx, qUserInsert, u.Username, u.Email, u.Password, u.Role, u.Status), u)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("user insert: %w", err)
	}
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var u model.User
	if err := scanUser(r.db.Pool.QueryRow(ctx, qUserByID, id), &u); err != nil {
		return nil, mapScanErr("user by id", err)
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var u model.User
	if err := scanUser(r.db.Pool.QueryRow(ctx, qUserByEmail, email), &u); err != nil {
		return nil, mapScanErr("user by email", err)
	}
	return &u, nil
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var u model.User
	if err := scanUser(r.db.Pool.QueryRow(ctx, qUserByUsername, username), &u); err != nil {
		return nil, mapScanErr("user by username", err)
	}
	return &u, nil
}

func (r *UserRepo) List(ctx context.Context, page, itemsPerPage int) ([]model.User, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	limit, offset := Page(page, itemsPerPage)
	rows, err := r.db.Pool.Query(ctx, qUserList, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("user list: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := scanUser(rows, &u); err != nil {
			return nil, fmt.Errorf("user list scan: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepo) UpdateProfile(ctx context.Context, id int64, username, phone, secureURL, publicURL *string) (*model.User, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var u model.User
	if err := scanUser(r.db.Pool.QueryRow(ctx, qUserUpdateProfile, id, username, phone, secureURL, publicURL), &u); err != nil {
		return nil, mapScanErr("user update", err)
	}
	return &u, nil
}

// SetPassword replaces the stored hash and clears any pending OTP.
func (r *UserRepo) SetPassword(ctx context.Context, id int64, hash string) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	if _, err := r.db.Pool.Exec(ctx, qUserSetPassword, id, hash); err != nil {
		return fmt.Errorf("user set password: %w", err)
	}
	return nil
}

func (r *UserRepo) SetOTP(ctx context.Context, email, otp string) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	if _, err := r.db.Pool.Exec(ctx, qUserSetOTP, email, otp); err != nil {
		return fmt.Errorf("user set otp: %w", err)
	}
	return nil
}

func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Pool.Exec(ctx, qUserDelete, id)
	if err != nil {
		return fmt.Errorf("user delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row, u *model.User) error {
	return row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.FullName, &u.Phone,
		&u.SecureURLProfile, &u.PublicURLProfile, &u.Role, &u.Status, &u.OTP,
		&u.CreatedAt, &u.UpdatedAt)
}
