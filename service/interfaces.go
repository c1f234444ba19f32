package service

import (
	"context"

	"minicasino/events"
	"minicasino/games"
	"minicasino/models"
	"minicasino/money"
)

// AccountRepository defines the interface for account data access
type AccountRepository interface {
	// GetByID retrieves an account by its ID
	GetByID(ctx context.Context, id int64) (*models.Account, error)

	// GetByIDForUpdate retrieves an account and locks its row for the
	// duration of the surrounding transaction
	GetByIDForUpdate(ctx context.Context, id int64) (*models.Account, error)

	// Create creates a new account with the initial balance
	Create(ctx context.Context, initialBalance money.Money) (*models.Account, error)

	// AddBalance adds to an account's balance atomically
	AddBalance(ctx context.Context, id int64, amount money.Money) error

	// DeductBalance deducts from an account's balance atomically, failing
	// if the account does not exist or funds are insufficient
	DeductBalance(ctx context.Context, id int64, amount money.Money) error
}

// TransactionRepository defines the interface for ledger entry data access
type TransactionRepository interface {
	// Create appends a transaction to the ledger
	Create(ctx context.Context, transaction *models.Transaction) error

	// ListByAccount returns transactions for an account, newest first,
	// along with the total count for pagination
	ListByAccount(ctx context.Context, accountID int64, limit, offset int) ([]*models.Transaction, int64, error)
}

// GameSessionRepository defines the interface for game session data access
type GameSessionRepository interface {
	// Create creates a new game session record
	Create(ctx context.Context, session *models.GameSession) error

	// GetByID retrieves a game session by its ID
	GetByID(ctx context.Context, id int64) (*models.GameSession, error)

	// ListByAccount returns game sessions for an account, newest first,
	// along with the total count for pagination
	ListByAccount(ctx context.Context, accountID int64, limit, offset int) ([]*models.GameSession, int64, error)
}

// AccountService defines the interface for account operations
type AccountService interface {
	// CreateAccount creates a new account credited with the welcome bonus
	CreateAccount(ctx context.Context) (*models.Account, error)

	// GetAccount retrieves an account by ID
	GetAccount(ctx context.Context, id int64) (*models.Account, error)
}

// LedgerService defines the interface for balance operations
type LedgerService interface {
	// Deposit credits an account and records a deposit transaction
	Deposit(ctx context.Context, accountID int64, amount money.Money, description string) (*models.Transaction, error)

	// Withdraw debits an account and records a withdrawal transaction
	Withdraw(ctx context.Context, accountID int64, amount money.Money, description string) (*models.Transaction, error)

	// GetBalance returns the current balance of an account
	GetBalance(ctx context.Context, accountID int64) (money.Money, error)

	// ListTransactions returns the transaction history of an account
	ListTransactions(ctx context.Context, accountID int64, limit, offset int) ([]*models.Transaction, int64, error)
}

// RoundService defines the interface for playing game rounds
type RoundService interface {
	// PlayRound validates the bet, plays one round of the given game and
	// settles it against the account balance in a single transaction
	PlayRound(ctx context.Context, accountID int64, gameType models.GameType, bet money.Money, input games.Input) (*models.RoundResult, error)

	// ListSessions returns the game session history of an account
	ListSessions(ctx context.Context, accountID int64, limit, offset int) ([]*models.GameSession, int64, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	AccountRepository() AccountRepository
	TransactionRepository() TransactionRepository
	GameSessionRepository() GameSessionRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	// Create creates a new UnitOfWork instance
	Create() UnitOfWork
}
