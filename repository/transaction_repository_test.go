package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minicasino/models"
	"minicasino/money"
	"minicasino/repository/testutil"
)

func TestTransactionRepository_Create(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	ctx := context.Background()
	account, err := NewAccountRepository(testDB.DB).Create(ctx, money.MustParse("100.00"))
	require.NoError(t, err)

	repo := NewTransactionRepository(testDB.DB)

	tx := testutil.CreateTestTransaction(account.ID, models.TransactionKindDeposit)
	err = repo.Create(ctx, tx)
	require.NoError(t, err)

	assert.NotZero(t, tx.ID)
	assert.False(t, tx.CreatedAt.IsZero())
}

func TestTransactionRepository_ListByAccount(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	ctx := context.Background()
	accountRepo := NewAccountRepository(testDB.DB)
	repo := NewTransactionRepository(testDB.DB)

	account, err := accountRepo.Create(ctx, money.MustParse("100.00"))
	require.NoError(t, err)
	other, err := accountRepo.Create(ctx, money.MustParse("100.00"))
	require.NoError(t, err)

	kinds := []models.TransactionKind{
		models.TransactionKindBonus,
		models.TransactionKindBet,
		models.TransactionKindWin,
	}
	for _, kind := range kinds {
		err := repo.Create(ctx, testutil.CreateTestTransaction(account.ID, kind))
		require.NoError(t, err)
	}
	err = repo.Create(ctx, testutil.CreateTestTransaction(other.ID, models.TransactionKindDeposit))
	require.NoError(t, err)

	t.Run("scoped to account", func(t *testing.T) {
		transactions, total, err := repo.ListByAccount(ctx, account.ID, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, transactions, 3)
		for _, tx := range transactions {
			assert.Equal(t, account.ID, tx.AccountID)
		}
	})

	t.Run("newest first", func(t *testing.T) {
		transactions, _, err := repo.ListByAccount(ctx, account.ID, 10, 0)
		require.NoError(t, err)
		require.Len(t, transactions, 3)
		assert.Equal(t, models.TransactionKindWin, transactions[0].Kind)
		assert.Equal(t, models.TransactionKindBonus, transactions[2].Kind)
	})

	t.Run("pagination", func(t *testing.T) {
		page, total, err := repo.ListByAccount(ctx, account.ID, 2, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, page, 1)
		assert.Equal(t, models.TransactionKindBonus, page[0].Kind)
	})

	t.Run("empty account", func(t *testing.T) {
		empty, err := accountRepo.Create(ctx, money.MustParse("1.00"))
		require.NoError(t, err)

		transactions, total, err := repo.ListByAccount(ctx, empty.ID, 10, 0)
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, transactions)
	})
}

func TestTransactionRepository_SessionLink(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	ctx := context.Background()
	account, err := NewAccountRepository(testDB.DB).Create(ctx, money.MustParse("100.00"))
	require.NoError(t, err)

	sessionRepo := NewGameSessionRepository(testDB.DB)
	session := testutil.CreateTestGameSession(account.ID, models.GameTypeCoinFlip)
	require.NoError(t, sessionRepo.Create(ctx, session))

	repo := NewTransactionRepository(testDB.DB)
	tx := testutil.CreateTestTransaction(account.ID, models.TransactionKindBet)
	tx.GameSessionID = &session.ID
	require.NoError(t, repo.Create(ctx, tx))

	transactions, _, err := repo.ListByAccount(ctx, account.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	require.NotNil(t, transactions[0].GameSessionID)
	assert.Equal(t, session.ID, *transactions[0].GameSessionID)
}
