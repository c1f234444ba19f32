package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"minicasino/database"
	"minicasino/models"
	"minicasino/money"
)

// AccountRepository implements the AccountRepository interface
type AccountRepository struct {
	q queryable
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *database.DB) *AccountRepository {
	return &AccountRepository{q: db.Pool}
}

// newAccountRepositoryWithTx creates a new account repository bound to a transaction
func newAccountRepositoryWithTx(tx queryable) *AccountRepository {
	return &AccountRepository{q: tx}
}

// GetByID retrieves an account by its ID
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	query := `
		SELECT id, balance, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`

	return r.scanAccount(ctx, query, id)
}

// GetByIDForUpdate retrieves an account and locks its row until the
// surrounding transaction ends. Callers must be inside a transaction.
func (r *AccountRepository) GetByIDForUpdate(ctx context.Context, id int64) (*models.Account, error) {
	query := `
		SELECT id, balance, created_at, updated_at
		FROM accounts
		WHERE id = $1
		FOR UPDATE
	`

	return r.scanAccount(ctx, query, id)
}

func (r *AccountRepository) scanAccount(ctx context.Context, query string, id int64) (*models.Account, error) {
	var account models.Account
	err := r.q.QueryRow(ctx, query, id).Scan(
		&account.ID,
		&account.Balance,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account %d: %w", id, err)
	}

	return &account, nil
}

// Create creates a new account with the initial balance
func (r *AccountRepository) Create(ctx context.Context, initialBalance money.Money) (*models.Account, error) {
	query := `
		INSERT INTO accounts (balance)
		VALUES ($1)
		RETURNING id, balance, created_at, updated_at
	`

	var account models.Account
	err := r.q.QueryRow(ctx, query, initialBalance).Scan(
		&account.ID,
		&account.Balance,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return &account, nil
}

// AddBalance adds to an account's balance atomically
func (r *AccountRepository) AddBalance(ctx context.Context, id int64, amount money.Money) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: credit amount must be positive", money.ErrInvalidAmount)
	}

	query := `
		UPDATE accounts
		SET balance = balance + $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.q.Exec(ctx, query, amount, id)
	if err != nil {
		return fmt.Errorf("failed to add balance for account %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("account %d: %w", id, models.ErrAccountNotFound)
	}

	return nil
}

// DeductBalance deducts from an account's balance atomically. The balance
// check and the update happen in a single statement so concurrent debits
// can never drive the balance negative.
func (r *AccountRepository) DeductBalance(ctx context.Context, id int64, amount money.Money) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: debit amount must be positive", money.ErrInvalidAmount)
	}

	query := `
		UPDATE accounts
		SET balance = balance - $1, updated_at = NOW()
		WHERE id = $2 AND balance >= $1
	`

	result, err := r.q.Exec(ctx, query, amount, id)
	if err != nil {
		return fmt.Errorf("failed to deduct balance for account %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		// Distinguish a missing account from insufficient funds
		account, err := r.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to check account: %w", err)
		}
		if account == nil {
			return fmt.Errorf("account %d: %w", id, models.ErrAccountNotFound)
		}
		return fmt.Errorf("have %s, need %s: %w", account.Balance, amount, models.ErrInsufficientBalance)
	}

	return nil
}
