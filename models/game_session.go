package models

import (
	"time"

	"minicasino/money"
)

// GameType identifies one of the wager games.
type GameType string

const (
	GameTypeCoinFlip            GameType = "coin_flip"
	GameTypeDiceRoll            GameType = "dice_roll"
	GameTypeHighLowCard         GameType = "high_low_card"
	GameTypeNumberGuess         GameType = "number_guess"
	GameTypeThreeReelSlot       GameType = "three_reel_slot"
	GameTypeRockPaperScissors   GameType = "rock_paper_scissors"
	GameTypeRoulette            GameType = "roulette"
	GameTypeWheelOfFortune      GameType = "wheel_of_fortune"
	GameTypeScratchCard         GameType = "scratch_card"
	GameTypeSimplifiedBlackjack GameType = "simplified_blackjack"
)

// GameSession is the persisted record of one played round. It is created
// once, after the round's debit and credit are both known, and never
// updated afterward.
type GameSession struct {
	ID        int64          `db:"id"`
	AccountID int64          `db:"account_id"`
	GameType  GameType       `db:"game_type"`
	BetAmount money.Money    `db:"bet_amount"`
	WinAmount money.Money    `db:"win_amount"`
	NetResult money.Money    `db:"net_result"`
	GameData  map[string]any `db:"game_data"`
	CreatedAt time.Time      `db:"created_at"`
}
