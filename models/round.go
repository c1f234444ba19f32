package models

import "minicasino/money"

// RoundResult is returned to the caller after a round has been settled and
// committed.
type RoundResult struct {
	SessionID          int64
	GameType           GameType
	OutcomeDescription string
	Push               bool
	BetAmount          money.Money
	WinAmount          money.Money
	NetResult          money.Money
	NewBalance         money.Money
}
