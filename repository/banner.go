package repository

import (
	"context"
	"fmt"

	"dolanlur/model"

	"github.com/jackc/pgx/v5"
)

type BannerRepo struct{ db *DB }

func NewBannerRepo(db *DB) *BannerRepo { return &BannerRepo{db: db} }

const bannerColumns = `id, user_id, vehicle_id, title, description,
secure_url_image, public_url_image, created_at, updated_at`

const (
	qBannerInsert = `
INSERT INTO banners (user_id, vehicle_id, title, description, secure_url_image, public_url_image)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + bannerColumns + `;`

	qBannerByID = `SELECT ` + bannerColumns + ` FROM banners WHERE id = $1;`

	qBannerList = `SELECT ` + bannerColumns + ` FROM banners ORDER BY id LIMIT $1 OFFSET $2;`

	qBannerByUser = `SELECT ` + bannerColumns + ` FROM banners WHERE user_id = $1 ORDER BY id;`

	qBannerByVehicle = `SELECT ` + bannerColumns + ` FROM banners WHERE vehicle_id = $1 ORDER BY id;`

	qBannerUpdate = `
UPDATE banners
SET title            = COALESCE($2, title),
    description      = COALESCE($3, description),
    secure_url_image = COALESCE($4, secure_url_image),
    public_url_image = COALESCE($5, public_url_image),
    updated_at       = NOW()
WHERE id = $1
RETURNING ` + bannerColumns + `;`

	qBannerDelete = `DELETE FROM banners WHERE id = $1;`
)

func (r *BannerRepo) Create(ctx context.Context, b *model.Banner) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	err := scanBanner(r.db.Pool.QueryRow(ctx, qBannerInsert,
		b.UserID, b.VehicleID, b.Title, b.Description, b.SecureURLImage, b.PublicURLImage), b)
	if err != nil {
		return fmt.Errorf("banner insert: %w", err)
	}
	return nil
}

func (r *BannerRepo) GetByID(ctx context.Context, id int64) (*model.Banner, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var b model.Banner
	if err := scanBanner(r.db.Pool.QueryRow(ctx, qBannerByID, id), &b); err != nil {
		return nil, mapScanErr("banner by id", err)
	}
	return &b, nil
}

func (r *BannerRepo) List(ctx context.Context, page, itemsPerPage int) ([]model.Banner, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	limit, offset := Page(page, itemsPerPage)
	rows, err := r.db.Pool.Query(ctx, qBannerList, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("banner list: %w", err)
	}
	defer rows.Close()
	return collectBanners(rows)
}

func (r *BannerRepo) ListByUser(ctx context.Context, userID int64) ([]model.Banner, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Pool.Query(ctx, qBannerByUser, userID)
	if err != nil {
		return nil, fmt.Errorf("banner by user: %w", err)
	}
	defer rows.Close()
	return collectBanners(rows)
}

func (r *BannerRepo) ListByVehicle(ctx context.Context, vehicleID int64) ([]model.Banner, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Pool.Query(ctx, qBannerByVehicle, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("banner by vehicle: %w", err)
	}
	defer rows.Close()
	return collectBanners(rows)
}

func (r *BannerRepo) Update(ctx context.Context, id int64, title, description, secureURL, publicURL *string) (*model.Banner, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var b model.Banner
	if err := scanBanner(r.db.Pool.QueryRow(ctx, qBannerUpdate, id, title, description, secureURL, publicURL), &b); err != nil {
		return nil, mapScanErr("banner update", err)
	}
	return &b, nil
}

func (r *BannerRepo) Delete(ctx context.Context, id int64) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Pool.Exec(ctx, qBannerDelete, id)
	if err != nil {
		return fmt.Errorf("banner delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func collectBanners(rows pgx.Rows) ([]model.Banner, error) {
	var banners []model.Banner
	for rows.Next() {
		var b model.Banner
		if err := scanBanner(rows, &b); err != nil {
			return nil, fmt.Errorf("banner scan: %w", err)
		}
		banners = append(banners, b)
	}
	return banners, rows.Err()
}

func scanBanner(row pgx.Row, b *model.Banner) error {
	return row.Scan(&b.ID, &b.UserID, &b.VehicleID, &b.Title, &b.Description,
		&b.SecureURLImage, &b.PublicURLImage, &b.CreatedAt, &b.UpdatedAt)
}
