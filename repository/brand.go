package repository

import (
	"context"
	"fmt"

	"dolanlur/model"

	"github.com/jackc/pgx/v5"
)

type BrandRepo struct{ db *DB }

func NewBrandRepo(db *DB) *BrandRepo { return &BrandRepo{db: db} }

const brandColumns = `id, brand_name, secure_url_image, public_url_image, created_at, updated_at`

const (
	qBrandInsert = `
INSERT INTO brands (brand_name, secure_url_image, public_url_image)
VALUES ($1, $2, $3)
RETURNING ` + brandColumns + `;`

	qBrandByID = `SELECT ` + brandColumns + ` FROM brands WHERE id = $1;`

	qBrandList = `SELECT ` + brandColumns + ` FROM brands ORDER BY id LIMIT $1 OFFSET $2;`

	qBrandUpdate = `
UPDATE brands
SET brand_name       = COALESCE($2, brand_name),
    secure_url_image = COALESCE($3, secure_url_image),
    public_url_image = COALESCE($4, public_url_image),
    updated_at       = NOW()
WHERE id = $1
RETURNING ` + brandColumns + `;`

	qBrandDelete = `DELETE FROM brands WHERE id = $1;`
)

func (r *BrandRepo) Create(ctx context.Context, b *model.Brand) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	err := scanBrand(r.db.Pool.QueryRow(ctx, qBrandInsert, b.BrandName, b.SecureURLImage, b.PublicURLImage), b)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("brand insert: %w", err)
	}
	return nil
}

func (r *BrandRepo) GetByID(ctx context.Context, id int64) (*model.Brand, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var b model.Brand
	if err := scanBrand(r.db.Pool.QueryRow(ctx, qBrandByID, id), &b); err != nil {
		return nil, mapScanErr("brand by id", err)
	}
	return &b, nil
}

func (r *BrandRepo) List(ctx context.Context, page, itemsPerPage int) ([]model.Brand, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	limit, offset := Page(page, itemsPerPage)
	rows, err := r.db.Pool.Query(ctx, qBrandList, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("brand list: %w", err)
	}
	defer rows.Close()

	var brands []model.Brand
	for rows.Next() {
		var b model.Brand
		if err := scanBrand(rows, &b); err != nil {
			return nil, fmt.Errorf("brand list scan: %w", err)
		}
		brands = append(brands, b)
	}
	return brands, rows.Err()
}

func (r *BrandRepo) Update(ctx context.Context, id int64, name, secureURL, publicURL *string) (*model.Brand, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var b model.Brand
	if err := scanBrand(r.db.Pool.QueryRow(ctx, qBrandUpdate, id, name, secureURL, publicURL), &b); err != nil {
		return nil, mapScanErr("brand update", err)
	}
	return &b, nil
}

func (r *BrandRepo) Delete(ctx context.Context, id int64) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Pool.Exec(ctx, qBrandDelete, id)
	if err != nil {
		return fmt.Errorf("brand delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanBrand(row pgx.Row, b *model.Brand) error {
	return row.Scan(&b.ID, &b.BrandName, &b.SecureURLImage, &b.PublicURLImage, &b.CreatedAt, &b.UpdatedAt)
}
