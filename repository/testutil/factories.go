package testutil

import (
	"time"

	"github.com/google/uuid"

	"minicasino/models"
	"minicasino/money"
)

// CreateTestAccount creates a test account with a default balance
func CreateTestAccount(id int64) *models.Account {
	now := time.Now()
	return &models.Account{
		ID:        id,
		Balance:   money.MustParse("100.00"),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CreateTestAccountWithBalance creates a test account with a specific balance
func CreateTestAccountWithBalance(id int64, balance string) *models.Account {
	account := CreateTestAccount(id)
	account.Balance = money.MustParse(balance)
	return account
}

// CreateTestTransaction creates a completed ledger entry with default amounts
func CreateTestTransaction(accountID int64, kind models.TransactionKind) *models.Transaction {
	return &models.Transaction{
		AccountID:     accountID,
		Kind:          kind,
		Status:        models.TransactionStatusCompleted,
		Amount:        money.MustParse("10.00"),
		BalanceBefore: money.MustParse("100.00"),
		BalanceAfter:  money.MustParse("90.00"),
		ReferenceID:   uuid.NewString(),
		Description:   "test transaction",
		CreatedAt:     time.Now(),
	}
}

// CreateTestGameSession creates a test game session with default amounts
func CreateTestGameSession(accountID int64, gameType models.GameType) *models.GameSession {
	return &models.GameSession{
		AccountID: accountID,
		GameType:  gameType,
		BetAmount: money.MustParse("10.00"),
		WinAmount: money.MustParse("19.20"),
		NetResult: money.MustParse("9.20"),
		GameData: map[string]any{
			"test": true,
		},
		CreatedAt: time.Now(),
	}
}
