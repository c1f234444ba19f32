package service

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"minicasino/events"
	"minicasino/games"
	"minicasino/models"
	"minicasino/money"
)

// roundService implements the RoundService interface
type roundService struct {
	uowFactory UnitOfWorkFactory
	catalog    *games.Catalog
	src        games.RNG
}

// NewRoundService creates a new round service
func NewRoundService(uowFactory UnitOfWorkFactory, catalog *games.Catalog, src games.RNG) RoundService {
	return &roundService{
		uowFactory: uowFactory,
		catalog:    catalog,
		src:        src,
	}
}

// PlayRound plays one round of the given game and settles it atomically:
// the session record, the bet debit and any win credit land in a single
// database transaction, or none of them do.
func (s *roundService) PlayRound(ctx context.Context, accountID int64, gameType models.GameType, bet money.Money, input games.Input) (*models.RoundResult, error) {
	game, err := s.catalog.Get(gameType)
	if err != nil {
		return nil, err
	}

	bet = bet.Quantize()
	if err := game.Validate(bet, input); err != nil {
		return nil, err
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

	// Reject before any randomness is drawn, so a short balance never
	// burns an outcome.
	if account.Balance.LessThan(bet) {
		return nil, fmt.Errorf("have %s, need %s: %w", account.Balance, bet, models.ErrInsufficientBalance)
	}

	result, err := game.Play(bet, input, s.src)
	if err != nil {
		return nil, fmt.Errorf("failed to play %s: %w", gameType, err)
	}

	session := &models.GameSession{
		AccountID: accountID,
		GameType:  gameType,
		BetAmount: bet,
		WinAmount: result.Winnings,
		NetResult: result.NetResult,
		GameData:  result.Outcome.Data(),
	}
	if err := uow.GameSessionRepository().Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create game session: %w", err)
	}

	if _, err := applyDebit(ctx, uow, account, models.TransactionKindBet, bet, &session.ID, fmt.Sprintf("Bet on %s", gameType)); err != nil {
		return nil, err
	}

	if result.Winnings.IsPositive() {
		if _, err := applyCredit(ctx, uow, account, models.TransactionKindWin, result.Winnings, &session.ID, fmt.Sprintf("Winnings from %s", gameType)); err != nil {
			return nil, err
		}
	}

	uow.EventBus().Publish(events.RoundPlayedEvent{
		AccountID: accountID,
		SessionID: session.ID,
		GameType:  gameType,
		BetAmount: bet,
		WinAmount: result.Winnings,
		NetResult: result.NetResult,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"accountID": accountID,
		"gameType":  gameType,
		"sessionID": session.ID,
		"bet":       bet.String(),
		"winnings":  result.Winnings.String(),
		"net":       result.NetResult.String(),
	}).Info("Round settled")

	return &models.RoundResult{
		SessionID:          session.ID,
		GameType:           gameType,
		OutcomeDescription: result.Outcome.Description(),
		Push:               result.Push,
		BetAmount:          bet,
		WinAmount:          result.Winnings,
		NetResult:          result.NetResult,
		NewBalance:         account.Balance,
	}, nil
}

// ListSessions returns the game session history of an account
func (s *roundService) ListSessions(ctx context.Context, accountID int64, limit, offset int) ([]*models.GameSession, int64, error) {
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

	sessions, total, err := uow.GameSessionRepository().ListByAccount(ctx, accountID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list game sessions: %w", err)
	}

	return sessions, total, nil
}
