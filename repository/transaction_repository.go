package repository

import (
	"context"
	"fmt"

	"minicasino/database"
	"minicasino/models"
)

// TransactionRepository implements the TransactionRepository interface
type TransactionRepository struct {
	q queryable
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *database.DB) *TransactionRepository {
	return &TransactionRepository{q: db.Pool}
}

// newTransactionRepositoryWithTx creates a new transaction repository bound to a transaction
func newTransactionRepositoryWithTx(tx queryable) *TransactionRepository {
	return &TransactionRepository{q: tx}
}

// Create appends a transaction to the ledger
func (r *TransactionRepository) Create(ctx context.Context, transaction *models.Transaction) error {
	query := `
		INSERT INTO transactions (
			account_id, kind, status, amount,
			balance_before, balance_after,
			game_session_id, reference_id, description
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		transaction.AccountID,
		transaction.Kind,
		transaction.Status,
		transaction.Amount,
		transaction.BalanceBefore,
		transaction.BalanceAfter,
		transaction.GameSessionID,
		transaction.ReferenceID,
		transaction.Description,
	).Scan(&transaction.ID, &transaction.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create transaction for account %d: %w", transaction.AccountID, err)
	}

	return nil
}

// ListByAccount returns transactions for an account, newest first, along
// with the total count for pagination
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID int64, limit, offset int) ([]*models.Transaction, int64, error) {
	countQuery := `SELECT COUNT(*) FROM transactions WHERE account_id = $1`

	var total int64
	if err := r.q.QueryRow(ctx, countQuery, accountID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions for account %d: %w", accountID, err)
	}

	query := `
		SELECT
			id, account_id, kind, status, amount,
			balance_before, balance_after,
			game_session_id, reference_id, description, created_at
		FROM transactions
		WHERE account_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.q.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions for account %d: %w", accountID, err)
	}
	defer rows.Close()

	var transactions []*models.Transaction
	for rows.Next() {
		var t models.Transaction
		err := rows.Scan(
			&t.ID,
			&t.AccountID,
			&t.Kind,
			&t.Status,
			&t.Amount,
			&t.BalanceBefore,
			&t.BalanceAfter,
			&t.GameSessionID,
			&t.ReferenceID,
			&t.Description,
			&t.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return transactions, total, nil
}
