package repository

import (
	"context"
	"fmt"

	"dolanlur/model"

	"github.com/jackc/pgx/v5"
)

type BankAccountRepo struct{ db *DB }

func NewBankAccountRepo(db *DB) *BankAccountRepo { return &BankAccountRepo{db: db} }

const bankColumns = `id, user_id, name_bank, number, created_at, updated_at`

const (
	qBankInsert = `
INSERT INTO bank_accounts (user_id, name_bank, number)
VALUES ($1, $2, $3)
RETURNING ` + bankColumns + `;`

	qBankList = `SELECT ` + bankColumns + ` FROM bank_accounts ORDER BY id LIMIT $1 OFFSET $2;`

	qBankUpdate = `
UPDATE bank_accounts
SET name_bank  = COALESCE($2, name_bank),
    number     = COALESCE($3, number),
    updated_at = NOW()
WHERE id = $1
RETURNING ` + bankColumns + `;`

	qBankDelete = `DELETE FROM bank_accounts WHERE id = $1;`
)

func (r *BankAccountRepo) Create(ctx context.Context, b *model.BankAccount) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	err := scanBank(r.db.Pool.QueryRow(ctx, qBankInsert, b.UserID, b.NameBank, b.Number), b)
	if err != nil {
		return fmt.Errorf("bank account insert: %w", err)
	}
	return nil
}

func (r *BankAccountRepo) List(ctx context.Context, page, itemsPerPage int) ([]model.BankAccount, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	limit, offset := Page(page, itemsPerPage)
	rows, err := r.db.Pool.Query(ctx, qBankList, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("bank account list: %w", err)
	}
	defer rows.Close()

	var accounts []model.BankAccount
	for rows.Next() {
		var b model.BankAccount
		if err := scanBank(rows, &b); err != nil {
			return nil, fmt.Errorf("bank account scan: %w", err)
		}
		accounts = append(accounts, b)
	}
	return accounts, rows.Err()
}

func (r *BankAccountRepo) Update(ctx context.Context, id int64, nameBank, number *string) (*model.BankAccount, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var b model.BankAccount
	if err := scanBank(r.db.Pool.QueryRow(ctx, qBankUpdate, id, nameBank, number), &b); err != nil {
		return nil, mapScanErr("bank account update", err)
	}
	return &b, nil
}

func (r *BankAccountRepo) Delete(ctx context.Context, id int64) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Pool.Exec(ctx, qBankDelete, id)
	if err != nil {
		return fmt.Errorf("bank account delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanBank(row pgx.Row, b *model.BankAccount) error {
	return row.Scan(&b.ID, &b.UserID, &b.NameBank, &b.Number, &b.CreatedAt, &b.UpdatedAt)
}
