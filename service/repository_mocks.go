package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"minicasino/events"
	"minicasino/models"
	"minicasino/money"
)

// MockAccountRepository is a mock implementation of AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByIDForUpdate(ctx context.Context, id int64) (*models.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, initialBalance money.Money) (*models.Account, error) {
	args := m.Called(ctx, initialBalance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) AddBalance(ctx context.Context, id int64, amount money.Money) error {
	args := m.Called(ctx, id, amount)
	return args.Error(0)
}

func (m *MockAccountRepository) DeductBalance(ctx context.Context, id int64, amount money.Money) error {
	args := m.Called(ctx, id, amount)
	return args.Error(0)
}

// MockTransactionRepository is a mock implementation of TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, transaction *models.Transaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) ListByAccount(ctx context.Context, accountID int64, limit, offset int) ([]*models.Transaction, int64, error) {
	args := m.Called(ctx, accountID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*models.Transaction), args.Get(1).(int64), args.Error(2)
}

// MockGameSessionRepository is a mock implementation of GameSessionRepository
type MockGameSessionRepository struct {
	mock.Mock
}

func (m *MockGameSessionRepository) Create(ctx context.Context, session *models.GameSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockGameSessionRepository) GetByID(ctx context.Context, id int64) (*models.GameSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GameSession), args.Error(1)
}

func (m *MockGameSessionRepository) ListByAccount(ctx context.Context, accountID int64, limit, offset int) ([]*models.GameSession, int64, error) {
	args := m.Called(ctx, accountID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*models.GameSession), args.Get(1).(int64), args.Error(2)
}

// MockEventPublisher is a mock implementation of EventPublisher for testing
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}

// MockUnitOfWork is a mock implementation of UnitOfWork. Begin, Commit and
// Rollback go through testify expectations; the repository getters return
// whatever SetRepositories installed.
type MockUnitOfWork struct {
	mock.Mock
	accountRepo     AccountRepository
	transactionRepo TransactionRepository
	gameSessionRepo GameSessionRepository
	eventBus        EventPublisher
}

// SetRepositories installs the repositories returned by the getters
func (m *MockUnitOfWork) SetRepositories(accounts AccountRepository, transactions TransactionRepository, sessions GameSessionRepository, bus EventPublisher) {
	m.accountRepo = accounts
	m.transactionRepo = transactions
	m.gameSessionRepo = sessions
	m.eventBus = bus
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) AccountRepository() AccountRepository {
	return m.accountRepo
}

func (m *MockUnitOfWork) TransactionRepository() TransactionRepository {
	return m.transactionRepo
}

func (m *MockUnitOfWork) GameSessionRepository() GameSessionRepository {
	return m.gameSessionRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	return m.eventBus
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (f *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := f.Called()
	return args.Get(0).(UnitOfWork)
}
