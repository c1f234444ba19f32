package service

import (
	"context"
	"fmt"

	"minicasino/models"
	"minicasino/money"
)

const defaultPageSize = 50

type ledgerService struct {
	uowFactory UnitOfWorkFactory
}

// NewLedgerService creates a new ledger service
func NewLedgerService(uowFactory UnitOfWorkFactory) LedgerService {
	return &ledgerService{
		uowFactory: uowFactory,
	}
}

// Deposit credits an account and records a deposit transaction
func (s *ledgerService) Deposit(ctx context.Context, accountID int64, amount money.Money, description string) (*models.Transaction, error) {
	amount = amount.Quantize()
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: deposit amount must be positive, got %s", money.ErrInvalidAmount, amount)
	}
	if description == "" {
		description = "Deposit"
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	account, err := uow.AccountRepository().GetByIDForUpdate(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return nil, fmt.Errorf("account %d: %w", accountID, models.ErrAccountNotFound)
	}

	transaction, err := applyCredit(ctx, uow, account, models.TransactionKindDeposit, amount, nil, description)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return transaction, nil
}

// Withdraw debits an account and records a withdrawal transaction
func (s *ledgerService) Withdraw(ctx context.Context, accountID int64, amount money.Money, description string) (*models.Transaction, error) {
	amount = amount.Quantize()
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: withdrawal amount must be positive, got %s", money.ErrInvalidAmount, amount)
	}
	if description == "" {
		description = "Withdrawal"
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	account, err := uow.AccountRepository().GetByIDForUpdate(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return nil, fmt.Errorf("account %d: %w", accountID, models.ErrAccountNotFound)
	}

	transaction, err := applyDebit(ctx, uow, account, models.TransactionKindWithdrawal, amount, nil, description)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return transaction, nil
}

// GetBalance returns the current balance of an account
func (s *ledgerService) GetBalance(ctx context.Context, accountID int64) (money.Money, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return money.Zero(), fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	account, err := uow.AccountRepository().GetByID(ctx, accountID)
	if err != nil {
		return money.Zero(), fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return money.Zero(), fmt.Errorf("account %d: %w", accountID, models.ErrAccountNotFound)
	}

	return account.Balance, nil
}

// ListTransactions returns the transaction history of an account
func (s *ledgerService) ListTransactions(ctx context.Context, accountID int64, limit, offset int) ([]*models.Transaction, int64, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	transactions, total, err := uow.TransactionRepository().ListByAccount(ctx, accountID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}

	return transactions, total, nil
}
