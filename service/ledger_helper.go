package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"minicasino/events"
	"minicasino/models"
	"minicasino/money"
)

// applyDebit moves money out of a locked account and appends the matching
// ledger entry. This is the single write path for all debits: the balance
// update and the transaction record always land in the same unit of work.
// The caller must hold the account's row lock; account.Balance is updated
// in place on success.
func applyDebit(ctx context.Context, uow UnitOfWork, account *models.Account, kind models.TransactionKind, amount money.Money, sessionID *int64, description string) (*models.Transaction, error) {
	if err := uow.AccountRepository().DeductBalance(ctx, account.ID, amount); err != nil {
		return nil, err
	}

	balanceAfter := account.Balance.Sub(amount)
	transaction, err := appendEntry(ctx, uow, account, kind, amount, balanceAfter, sessionID, description)
	if err != nil {
		return nil, err
	}

	account.Balance = balanceAfter
	return transaction, nil
}

// applyCredit moves money into a locked account and appends the matching
// ledger entry. Same contract as applyDebit.
func applyCredit(ctx context.Context, uow UnitOfWork, account *models.Account, kind models.TransactionKind, amount money.Money, sessionID *int64, description string) (*models.Transaction, error) {
	if err := uow.AccountRepository().AddBalance(ctx, account.ID, amount); err != nil {
		return nil, err
	}

	balanceAfter := account.Balance.Add(amount)
	transaction, err := appendEntry(ctx, uow, account, kind, amount, balanceAfter, sessionID, description)
	if err != nil {
		return nil, err
	}

	account.Balance = balanceAfter
	return transaction, nil
}

func appendEntry(ctx context.Context, uow UnitOfWork, account *models.Account, kind models.TransactionKind, amount, balanceAfter money.Money, sessionID *int64, description string) (*models.Transaction, error) {
	transaction := &models.Transaction{
		AccountID:     account.ID,
		Kind:          kind,
		Status:        models.TransactionStatusCompleted,
		Amount:        amount,
		BalanceBefore: account.Balance,
		BalanceAfter:  balanceAfter,
		GameSessionID: sessionID,
		ReferenceID:   uuid.NewString(),
		Description:   description,
	}

	if err := uow.TransactionRepository().Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to record %s transaction: %w", kind, err)
	}

	uow.EventBus().Publish(events.BalanceChangeEvent{
		AccountID:    account.ID,
		OldBalance:   account.Balance,
		NewBalance:   balanceAfter,
		Kind:         kind,
		ChangeAmount: amount,
	})

	return transaction, nil
}
