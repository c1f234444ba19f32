package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"minicasino/models"
	"minicasino/money"
)

func moneyEq(expected string) interface{} {
	want := money.MustParse(expected)
	return mock.MatchedBy(func(m money.Money) bool {
		return m.Equal(want)
	})
}

func newLedgerTestMocks() (*MockUnitOfWork, *MockUnitOfWorkFactory, *MockAccountRepository, *MockTransactionRepository, *MockEventPublisher) {
	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAccountRepo := new(MockAccountRepository)
	mockTransactionRepo := new(MockTransactionRepository)
	mockBus := new(MockEventPublisher)

	mockUoW.SetRepositories(mockAccountRepo, mockTransactionRepo, nil, mockBus)
	return mockUoW, mockFactory, mockAccountRepo, mockTransactionRepo, mockBus
}

func TestLedgerService_Deposit(t *testing.T) {
	ctx := context.Background()
	mockUoW, mockFactory, mockAccountRepo, mockTransactionRepo, mockBus := newLedgerTestMocks()

	svc := NewLedgerService(mockFactory)

	account := &models.Account{ID: 7, Balance: money.MustParse("100.00")}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockAccountRepo.On("GetByIDForUpdate", ctx, int64(7)).Return(account, nil)
	mockAccountRepo.On("AddBalance", ctx, int64(7), moneyEq("25.00")).Return(nil)

	mockTransactionRepo.On("Create", ctx, mock.MatchedBy(func(tx *models.Transaction) bool {
		return tx.AccountID == 7 &&
			tx.Kind == models.TransactionKindDeposit &&
			tx.Status == models.TransactionStatusCompleted &&
			tx.Amount.Equal(money.MustParse("25.00")) &&
			tx.BalanceBefore.Equal(money.MustParse("100.00")) &&
			tx.BalanceAfter.Equal(money.MustParse("125.00")) &&
			tx.GameSessionID == nil &&
			tx.ReferenceID != "" &&
			tx.Description == "Deposit"
	})).Return(nil)

	mockBus.On("Publish", mock.AnythingOfType("events.BalanceChangeEvent")).Return()

	tx, err := svc.Deposit(ctx, 7, money.MustParse("25.00"), "")

	assert.NoError(t, err)
	assert.NotNil(t, tx)
	assert.Equal(t, "125.00", tx.BalanceAfter.String())
	assert.Equal(t, "125.00", account.Balance.String())

	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockAccountRepo.AssertExpectations(t)
	mockTransactionRepo.AssertExpectations(t)
	mockBus.AssertExpectations(t)
}

func TestLedgerService_DepositRejectsNonPositiveAmount(t *testing.T) {
	ctx := context.Background()
	_, mockFactory, _, _, _ := newLedgerTestMocks()

	svc := NewLedgerService(mockFactory)

	_, err := svc.Deposit(ctx, 7, money.Zero(), "")
	assert.ErrorIs(t, err, money.ErrInvalidAmount)

	_, err = svc.Deposit(ctx, 7, money.MustParse("-5.00"), "")
	assert.ErrorIs(t, err, money.ErrInvalidAmount)

	// The unit of work is never touched for a rejected amount
	mockFactory.AssertNotCalled(t, "Create")
}

func TestLedgerService_DepositUnknownAccount(t *testing.T) {
	ctx := context.Background()
	mockUoW, mockFactory, mockAccountRepo, _, _ := newLedgerTestMocks()

	svc := NewLedgerService(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockAccountRepo.On("GetByIDForUpdate", ctx, int64(404)).Return(nil, nil)

	_, err := svc.Deposit(ctx, 404, money.MustParse("10.00"), "")
	assert.ErrorIs(t, err, models.ErrAccountNotFound)

	mockUoW.AssertNotCalled(t, "Commit")
}

func TestLedgerService_Withdraw(t *testing.T) {
	ctx := context.Background()
	mockUoW, mockFactory, mockAccountRepo, mockTransactionRepo, mockBus := newLedgerTestMocks()

	svc := NewLedgerService(mockFactory)

	account := &models.Account{ID: 7, Balance: money.MustParse("100.00")}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockAccountRepo.On("GetByIDForUpdate", ctx, int64(7)).Return(account, nil)
	mockAccountRepo.On("DeductBalance", ctx, int64(7), moneyEq("40.00")).Return(nil)

	mockTransactionRepo.On("Create", ctx, mock.MatchedBy(func(tx *models.Transaction) bool {
		return tx.Kind == models.TransactionKindWithdrawal &&
			tx.Amount.Equal(money.MustParse("40.00")) &&
			tx.BalanceBefore.Equal(money.MustParse("100.00")) &&
			tx.BalanceAfter.Equal(money.MustParse("60.00"))
	})).Return(nil)

	mockBus.On("Publish", mock.AnythingOfType("events.BalanceChangeEvent")).Return()

	tx, err := svc.Withdraw(ctx, 7, money.MustParse("40.00"), "cashing out")

	assert.NoError(t, err)
	assert.Equal(t, "cashing out", tx.Description)
	assert.Equal(t, "60.00", account.Balance.String())

	mockUoW.AssertExpectations(t)
	mockAccountRepo.AssertExpectations(t)
}

func TestLedgerService_WithdrawInsufficientBalance(t *testing.T) {
	ctx := context.Background()
	mockUoW, mockFactory, mockAccountRepo, mockTransactionRepo, _ := newLedgerTestMocks()

	svc := NewLedgerService(mockFactory)

	account := &models.Account{ID: 7, Balance: money.MustParse("100.00")}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockAccountRepo.On("GetByIDForUpdate", ctx, int64(7)).Return(account, nil)
	mockAccountRepo.On("DeductBalance", ctx, int64(7), moneyEq("1000.00")).Return(models.ErrInsufficientBalance)

	_, err := svc.Withdraw(ctx, 7, money.MustParse("1000.00"), "")
	assert.ErrorIs(t, err, models.ErrInsufficientBalance)

	// Nothing was committed and no ledger entry was written
	mockUoW.AssertNotCalled(t, "Commit")
	mockTransactionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.Equal(t, "100.00", account.Balance.String())
}

func TestLedgerService_GetBalance(t *testing.T) {
	ctx := context.Background()
	mockUoW, mockFactory, mockAccountRepo, _, _ := newLedgerTestMocks()

	svc := NewLedgerService(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockAccountRepo.On("GetByID", ctx, int64(7)).Return(&models.Account{ID: 7, Balance: money.MustParse("42.50")}, nil)
	mockAccountRepo.On("GetByID", ctx, int64(404)).Return(nil, nil)

	balance, err := svc.GetBalance(ctx, 7)
	assert.NoError(t, err)
	assert.Equal(t, "42.50", balance.String())

	_, err = svc.GetBalance(ctx, 404)
	assert.ErrorIs(t, err, models.ErrAccountNotFound)
}

func TestLedgerService_ListTransactions(t *testing.T) {
	ctx := context.Background()
	mockUoW, mockFactory, _, mockTransactionRepo, _ := newLedgerTestMocks()

	svc := NewLedgerService(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	expected := []*models.Transaction{{ID: 1, AccountID: 7}}

	// A non-positive limit falls back to the default page size
	mockTransactionRepo.On("ListByAccount", ctx, int64(7), defaultPageSize, 0).Return(expected, int64(1), nil)

	transactions, total, err := svc.ListTransactions(ctx, 7, 0, -3)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, expected, transactions)

	mockTransactionRepo.AssertExpectations(t)
}
