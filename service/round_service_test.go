package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"minicasino/games"
	"minicasino/models"
	"minicasino/money"
)

// stubRNG returns pre-scripted draws and counts how many were consumed.
type stubRNG struct {
	uniform  []int
	weighted []int
	draws    int
}

func (s *stubRNG) UniformInt(n int) (int, error) {
	s.draws++
	v := s.uniform[0]
	s.uniform = s.uniform[1:]
	return v % n, nil
}

func (s *stubRNG) WeightedIndex(weights []float64) (int, error) {
	s.draws++
	v := s.weighted[0]
	s.weighted = s.weighted[1:]
	return v, nil
}

func (s *stubRNG) Shuffle(n int, swap func(i, j int)) error {
	s.draws++
	return nil
}

func testCatalog(t *testing.T) *games.Catalog {
	catalog, err := games.NewCatalog(money.MustParse("1.00"))
	require.NoError(t, err)
	return catalog
}

func newRoundTestMocks() (*MockUnitOfWork, *MockUnitOfWorkFactory, *MockAccountRepository, *MockTransactionRepository, *MockGameSessionRepository, *MockEventPublisher) {
	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAccountRepo := new(MockAccountRepository)
	mockTransactionRepo := new(MockTransactionRepository)
	mockSessionRepo := new(MockGameSessionRepository)
	mockBus := new(MockEventPublisher)

	mockUoW.SetRepositories(mockAccountRepo, mockTransactionRepo, mockSessionRepo, mockBus)
	return mockUoW, mockFactory, mockAccountRepo, mockTransactionRepo, mockSessionRepo, mockBus
}

func TestRoundService_PlayRound_Win(t *testing.T) {
	ctx := context.Background()
	mockUoW, mockFactory, mockAccountRepo, mockTransactionRepo, mockSessionRepo, mockBus := newRoundTestMocks()

	src := &stubRNG{uniform: []int{0}} // coin lands Heads
	svc := NewRoundService(mockFactory, testCatalog(t), src)

	account := &models.Account{ID: 7, Balance: money.MustParse("100.00")}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockAccountRepo.On("GetByIDForUpdate", ctx, int64(7)).Return(account, nil)
	mockAccountRepo.On("DeductBalance", ctx, int64(7), moneyEq("10.00")).Return(nil)
	mockAccountRepo.On("AddBalance", ctx, int64(7), moneyEq("19.20")).Return(nil)

	mockSessionRepo.On("Create", ctx, mock.MatchedBy(func(s *models.GameSession) bool {
		return s.AccountID == 7 &&
			s.GameType == models.GameTypeCoinFlip &&
			s.BetAmount.Equal(money.MustParse("10.00")) &&
			s.WinAmount.Equal(money.MustParse("19.20")) &&
			s.NetResult.Equal(money.MustParse("9.20")) &&
			s.GameData["outcome"] == "Heads"
	})).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*models.GameSession).ID = 55
	})

	mockTransactionRepo.On("Create", ctx, mock.MatchedBy(func(tx *models.Transaction) bool {
		return tx.Kind == models.TransactionKindBet &&
			tx.Amount.Equal(money.MustParse("10.00")) &&
			tx.BalanceBefore.Equal(money.MustParse("100.00")) &&
			tx.BalanceAfter.Equal(money.MustParse("90.00")) &&
			tx.GameSessionID != nil && *tx.GameSessionID == 55
	})).Return(nil)
	mockTransactionRepo.On("Create", ctx, mock.MatchedBy(func(tx *models.Transaction) bool {
		return tx.Kind == models.TransactionKindWin &&
			tx.Amount.Equal(money.MustParse("19.20")) &&
			tx.BalanceBefore.Equal(money.MustParse("90.00")) &&
			tx.BalanceAfter.Equal(money.MustParse("109.20")) &&
			tx.GameSessionID != nil && *tx.GameSessionID == 55
	})).Return(nil)

	mockBus.On("Publish", mock.AnythingOfType("events.BalanceChangeEvent")).Return().Twice()
	mockBus.On("Publish", mock.AnythingOfType("events.RoundPlayedEvent")).Return().Once()

	result, err := svc.PlayRound(ctx, 7, models.GameTypeCoinFlip, money.MustParse("10.00"), games.Input{Choice: games.ChoiceHeads})

	require.NoError(t, err)
	assert.Equal(t, int64(55), result.SessionID)
	assert.Equal(t, "19.20", result.WinAmount.String())
	assert.Equal(t, "9.20", result.NetResult.String())
	assert.Equal(t, "109.20", result.NewBalance.String())
	assert.False(t, result.Push)

	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockAccountRepo.AssertExpectations(t)
	mockTransactionRepo.AssertExpectations(t)
	mockSessionRepo.AssertExpectations(t)
	mockBus.AssertExpectations(t)
}

func TestRoundService_PlayRound_Loss(t *testing.T) {
	ctx := context.Background()
	mockUoW, mockFactory, mockAccountRepo, mockTransactionRepo, mockSessionRepo, mockBus := newRoundTestMocks()

	src := &stubRNG{uniform: []int{1}} // coin lands Tails
	svc := NewRoundService(mockFactory, testCatalog(t), src)

	account := &models.Account{ID: 7, Balance: money.MustParse("100.00")}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockAccountRepo.On("GetByIDForUpdate", ctx, int64(7)).Return(account, nil)
	mockAccountRepo.On("DeductBalance", ctx, int64(7), moneyEq("10.00")).Return(nil)

	mockSessionRepo.On("Create", ctx, mock.AnythingOfType("*models.GameSession")).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*models.GameSession).ID = 56
	})

	mockTransactionRepo.On("Create", ctx, mock.MatchedBy(func(tx *models.Transaction) bool {
		return tx.Kind == models.TransactionKindBet
	})).Return(nil)

	mockBus.On("Publish", mock.AnythingOfType("events.BalanceChangeEvent")).Return().Once()
	mockBus.On("Publish", mock.AnythingOfType("events.RoundPlayedEvent")).Return().Once()

	result, err := svc.PlayRound(ctx, 7, models.GameTypeCoinFlip, money.MustParse("10.00"), games.Input{Choice: games.ChoiceHeads})

	require.NoError(t, err)
	assert.Equal(t, "0.00", result.WinAmount.String())
	assert.Equal(t, "-10.00", result.NetResult.String())
	assert.Equal(t, "90.00", result.NewBalance.String())

	// A losing round never credits winnings
	mockAccountRepo.AssertNotCalled(t, "AddBalance", mock.Anything, mock.Anything, mock.Anything)
}

func TestRoundService_PlayRound_InsufficientBalance(t *testing.T) {
	ctx := context.Background()
	mockUoW, mockFactory, mockAccountRepo, mockTransactionRepo, mockSessionRepo, _ := newRoundTestMocks()

	src := &stubRNG{uniform: []int{0}}
	svc := NewRoundService(mockFactory, testCatalog(t), src)

	account := &models.Account{ID: 7, Balance: money.MustParse("100.00")}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockAccountRepo.On("GetByIDForUpdate", ctx, int64(7)).Return(account, nil)

	_, err := svc.PlayRound(ctx, 7, models.GameTypeCoinFlip, money.MustParse("1000.00"), games.Input{Choice: games.ChoiceHeads})
	assert.ErrorIs(t, err, models.ErrInsufficientBalance)

	// Rejected before any randomness was drawn or rows written
	assert.Zero(t, src.draws)
	mockUoW.AssertNotCalled(t, "Commit")
	mockSessionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mockTransactionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mockAccountRepo.AssertNotCalled(t, "DeductBalance", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, "100.00", account.Balance.String())
}

func TestRoundService_PlayRound_UnknownGame(t *testing.T) {
	ctx := context.Background()
	_, mockFactory, _, _, _, _ := newRoundTestMocks()

	svc := NewRoundService(mockFactory, testCatalog(t), &stubRNG{})

	_, err := svc.PlayRound(ctx, 7, models.GameType("poker"), money.MustParse("10.00"), games.Input{})
	assert.ErrorIs(t, err, games.ErrUnknownGame)

	mockFactory.AssertNotCalled(t, "Create")
}

func TestRoundService_PlayRound_InvalidInput(t *testing.T) {
	ctx := context.Background()
	_, mockFactory, _, _, _, _ := newRoundTestMocks()

	svc := NewRoundService(mockFactory, testCatalog(t), &stubRNG{})

	_, err := svc.PlayRound(ctx, 7, models.GameTypeCoinFlip, money.MustParse("10.00"), games.Input{Choice: "Edge"})
	assert.ErrorIs(t, err, games.ErrInvalidChoice)

	_, err = svc.PlayRound(ctx, 7, models.GameTypeCoinFlip, money.Zero(), games.Input{Choice: games.ChoiceHeads})
	assert.ErrorIs(t, err, games.ErrInvalidBet)

	// Validation failures never open a transaction
	mockFactory.AssertNotCalled(t, "Create")
}

func TestRoundService_PlayRound_PushNetsZero(t *testing.T) {
	ctx := context.Background()
	mockUoW, mockFactory, mockAccountRepo, mockTransactionRepo, mockSessionRepo, mockBus := newRoundTestMocks()

	src := &stubRNG{uniform: []int{0}} // house throws Rock
	svc := NewRoundService(mockFactory, testCatalog(t), src)

	account := &models.Account{ID: 7, Balance: money.MustParse("50.00")}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockAccountRepo.On("GetByIDForUpdate", ctx, int64(7)).Return(account, nil)
	mockAccountRepo.On("DeductBalance", ctx, int64(7), moneyEq("10.00")).Return(nil)
	mockAccountRepo.On("AddBalance", ctx, int64(7), moneyEq("10.00")).Return(nil)

	mockSessionRepo.On("Create", ctx, mock.AnythingOfType("*models.GameSession")).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*models.GameSession).ID = 57
	})
	mockTransactionRepo.On("Create", ctx, mock.AnythingOfType("*models.Transaction")).Return(nil)
	mockBus.On("Publish", mock.Anything).Return()

	result, err := svc.PlayRound(ctx, 7, models.GameTypeRockPaperScissors, money.MustParse("10.00"), games.Input{Choice: games.ChoiceRock})

	require.NoError(t, err)
	assert.True(t, result.Push)
	assert.Equal(t, "10.00", result.WinAmount.String())
	assert.True(t, result.NetResult.IsZero())
	assert.Equal(t, "50.00", result.NewBalance.String())
}

func TestRoundService_ListSessions(t *testing.T) {
	ctx := context.Background()
	mockUoW, mockFactory, _, _, mockSessionRepo, _ := newRoundTestMocks()

	svc := NewRoundService(mockFactory, testCatalog(t), &stubRNG{})

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	expected := []*models.GameSession{{ID: 1, AccountID: 7}}
	mockSessionRepo.On("ListByAccount", ctx, int64(7), defaultPageSize, 0).Return(expected, int64(1), nil)

	sessions, total, err := svc.ListSessions(ctx, 7, 0, 0)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, expected, sessions)
}
