package repository

import (
	"context"
	"fmt"

	"dolanlur/model"
)

type DeviceTokenRepo struct{ db *DB }

func NewDeviceTokenRepo(db *DB) *DeviceTokenRepo { return &DeviceTokenRepo{db: db} }

const (
	qDeviceTokenInsert = `
INSERT INTO device_tokens (token)
VALUES ($1)
ON CONFLICT (token) DO UPDATE SET token = EXCLUDED.token
RETURNING id, token, created_at;`

	qDeviceTokenList = `SELECT id, token, created_at FROM device_tokens ORDER BY id;`
)

// Store registers an FCM token; re-registering the same token is a no-op.
func (r *DeviceTokenRepo) Store(ctx context.Context, token string) (*model.DeviceToken, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var t model.DeviceToken
	err := r.db.Pool.QueryRow(ctx, qDeviceTokenInsert, token).Scan(&t.ID, &t.Token, &t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("device token insert: %w", err)
	}
	return &t, nil
}

func (r *DeviceTokenRepo) List(ctx context.Context) ([]model.DeviceToken, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Pool.Query(ctx, qDeviceTokenList)
	if err != nil {
		return nil, fmt.Errorf("device token list: %w", err)
	}
	defer rows.Close()

	var tokens []model.DeviceToken
	for rows.Next() {
		var t model.DeviceToken
		if err := rows.Scan(&t.ID, &t.Token, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("device token scan: %w", err)
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}

// ListTokens returns just the raw token strings for push fan-out.
func (r *DeviceTokenRepo) ListTokens(ctx context.Context) ([]string, error) {
	tokens, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, t.Token)
	}
	return out, nil
}
