package service

import (
	"context"
	"fmt"

	"minicasino/events"
	"minicasino/models"
	"minicasino/money"
)

// accountService implements the AccountService interface
type accountService struct {
	uowFactory      UnitOfWorkFactory
	startingBalance money.Money
}

// NewAccountService creates a new account service
func NewAccountService(uowFactory UnitOfWorkFactory, startingBalance money.Money) AccountService {
	return &accountService{
		uowFactory:      uowFactory,
		startingBalance: startingBalance,
	}
}

// CreateAccount creates a new account credited with the welcome bonus. The
// bonus arrives as a regular ledger entry so the history explains the
// opening balance.
func (s *accountService) CreateAccount(ctx context.Context) (*models.Account, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	account, err := uow.AccountRepository().Create(ctx, money.Zero())
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	if s.startingBalance.IsPositive() {
		if _, err := applyCredit(ctx, uow, account, models.TransactionKindBonus, s.startingBalance, nil, "Welcome bonus"); err != nil {
			return nil, fmt.Errorf("failed to credit welcome bonus: %w", err)
		}
	}

	uow.EventBus().Publish(events.AccountCreatedEvent{
		AccountID:      account.ID,
		InitialBalance: account.Balance,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return account, nil
}

// GetAccount retrieves an account by ID
func (s *accountService) GetAccount(ctx context.Context, id int64) (*models.Account, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	account, err := uow.AccountRepository().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return nil, fmt.Errorf("account %d: %w", id, models.ErrAccountNotFound)
	}

	return account, nil
}
