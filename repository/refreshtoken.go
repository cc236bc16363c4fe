package repository

import (
	"context"
	"fmt"

	"dolanlur/model"
)

type RefreshTokenRepo struct{ db *DB }

func NewRefreshTokenRepo(db *DB) *RefreshTokenRepo { return &RefreshTokenRepo{db: db} }

const (
	qRTInsert = `
INSERT INTO refresh_tokens (user_id, token)
VALUES ($1, $2)
RETURNING id, user_id, token, issued_at;`

	qRTByToken = `
SELECT id, user_id, token, issued_at FROM refresh_tokens WHERE token = $1 LIMIT 1;`

	qRTDeleteByToken = `DELETE FROM refresh_tokens WHERE token = $1;`

	qRTDeleteByUser = `DELETE FROM refresh_tokens WHERE user_id = $1;`
)

func (r *RefreshTokenRepo) Create(ctx context.Context, userID int64, token string) (*model.RefreshToken, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var t model.RefreshToken
	err := r.db.Pool.QueryRow(ctx, qRTInsert, userID, token).
		Scan(&t.ID, &t.UserID, &t.Token, &t.IssuedAt)
	if err != nil {
		return nil, fmt.Errorf("refresh token insert: %w", err)
	}
	return &t, nil
}

func (r *RefreshTokenRepo) FindByToken(ctx context.Context, token string) (*model.RefreshToken, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var t model.RefreshToken
	err := r.db.Pool.QueryRow(ctx, qRTByToken, token).
		Scan(&t.ID, &t.UserID, &t.Token, &t.IssuedAt)
	if err != nil {
		return nil, mapScanErr("refresh token by token", err)
	}
	return &t, nil
}

// DeleteByToken removes the row when it exists; deleting a token that is
// already gone is not an error.
func (r *RefreshTokenRepo) DeleteByToken(ctx context.Context, token string) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	if _, err := r.db.Pool.Exec(ctx, qRTDeleteByToken, token); err != nil {
		return fmt.Errorf("refresh token delete: %w", err)
	}
	return nil
}

func (r *RefreshTokenRepo) DeleteByUser(ctx context.Context, userID int64) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	if _, err := r.db.Pool.Exec(ctx, qRTDeleteByUser, userID); err != nil {
		return fmt.Errorf("refresh token delete by user: %w", err)
	}
	return nil
}
