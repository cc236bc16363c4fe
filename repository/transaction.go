package repository

import (
	"context"
	"fmt"

	"dolanlur/model"

	"github.com/jackc/pgx/v5"
)

type TransactionRepo struct{ db *DB }

func NewTransactionRepo(db *DB) *TransactionRepo { return &TransactionRepo{db: db} }

const transactionColumns = `id, user_id, rental_id, payment_status, transaction_date,
payment_method, total_amount, secure_url_image, public_url_image, created_at, updated_at`

const (
	qTxInsert = `
INSERT INTO transactions (user_id, rental_id, payment_status, transaction_date,
payment_method, total_amount, secure_url_image, public_url_image)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + transactionColumns + `;`

	qTxByID = `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1;`

	qTxList = `SELECT ` + transactionColumns + ` FROM transactions ORDER BY id LIMIT $1 OFFSET $2;`

	qTxUpdate = `
UPDATE transactions
SET payment_status = COALESCE($2, payment_status),
    payment_method = COALESCE($3, payment_method),
    total_amount   = COALESCE($4, total_amount),
    updated_at     = NOW()
WHERE id = $1
RETURNING ` + transactionColumns + `;`

	qTxDelete = `DELETE FROM transactions WHERE id = $1;`
)

func (r *TransactionRepo) Create(ctx context.Context, t *model.Transaction) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	err := scanTransaction(r.db.Pool.QueryRow(ctx, qTxInsert,
		t.UserID, t.RentalID, t.PaymentStatus, t.TransactionDate,
		t.PaymentMethod, t.TotalAmount, t.SecureURLImage, t.PublicURLImage), t)
	if err != nil {
		return fmt.Errorf("transaction insert: %w", err)
	}
	return nil
}

func (r *TransactionRepo) GetByID(ctx context.Context, id int64) (*model.Transaction, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var t model.Transaction
	if err := scanTransaction(r.db.Pool.QueryRow(ctx, qTxByID, id), &t); err != nil {
		return nil, mapScanErr("transaction by id", err)
	}
	return &t, nil
}

func (r *TransactionRepo) List(ctx context.Context, page, itemsPerPage int) ([]model.Transaction, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	limit, offset := Page(page, itemsPerPage)
	rows, err := r.db.Pool.Query(ctx, qTxList, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("transaction list: %w", err)
	}
	defer rows.Close()

	var txs []model.Transaction
	for rows.Next() {
		var t model.Transaction
		if err := scanTransaction(rows, &t); err != nil {
			return nil, fmt.Errorf("transaction scan: %w", err)
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

func (r *TransactionRepo) Update(ctx context.Context, id int64, paymentStatus, paymentMethod *string, totalAmount *float64) (*model.Transaction, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var t model.Transaction
	if err := scanTransaction(r.db.Pool.QueryRow(ctx, qTxUpdate, id, paymentStatus, paymentMethod, totalAmount), &t); err != nil {
		return nil, mapScanErr("transaction update", err)
	}
	return &t, nil
}

func (r *TransactionRepo) Delete(ctx context.Context, id int64) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Pool.Exec(ctx, qTxDelete, id)
	if err != nil {
		return fmt.Errorf("transaction delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanTransaction(row pgx.Row, t *model.Transaction) error {
	return row.Scan(&t.ID, &t.UserID, &t.RentalID, &t.PaymentStatus, &t.TransactionDate,
		&t.PaymentMethod, &t.TotalAmount, &t.SecureURLImage, &t.PublicURLImage,
		&t.CreatedAt, &t.UpdatedAt)
}
