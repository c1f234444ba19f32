// Package games implements the payout-determination logic for every wager
// game. Each game is a pure function of the bet, the player's input and the
// injected random source: the same inputs and the same draws always produce
// the same result, which is what makes forced-outcome testing possible.
package games

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"minicasino/models"
	"minicasino/money"
)

var (
	// ErrInvalidBet is returned for a non-positive or otherwise malformed
	// bet amount.
	ErrInvalidBet = errors.New("invalid bet amount")

	// ErrInvalidChoice is returned when the player's input is outside the
	// game's legal set of choices.
	ErrInvalidChoice = errors.New("invalid choice")

	// ErrUnknownGame is returned when no game is registered for a type.
	ErrUnknownGame = errors.New("unknown game type")
)

// RNG is the random source a game draws from. The production implementation
// is rng.Source; tests substitute a scripted stub.
type RNG interface {
	// UniformInt returns an integer uniformly distributed in [0, n).
	UniformInt(n int) (int, error)

	// WeightedIndex returns an index with probability proportional to its
	// weight.
	WeightedIndex(weights []float64) (int, error)

	// Shuffle performs a Fisher-Yates shuffle over n elements.
	Shuffle(n int, swap func(i, j int)) error
}

// Input carries the player's selection. Games that take no selection
// (slot, wheel, scratch card, blackjack) ignore it.
type Input struct {
	Choice string // coin flip, high/low, rock paper scissors, roulette
	Number int    // dice roll, number guess
}

// Outcome is the game-specific record of what the randomness produced.
// One concrete variant exists per game; Data feeds the persisted
// game_data payload.
type Outcome interface {
	Description() string
	Data() map[string]any
}

// Result is the settled outcome of one round.
type Result struct {
	GameType   models.GameType
	Outcome    Outcome
	PayoutRate decimal.Decimal
	Winnings   money.Money // quantize(bet * PayoutRate)
	NetResult  money.Money // Winnings - bet; exactly zero on push
	Push       bool
}

// Game is the common contract every variant implements.
type Game interface {
	Type() models.GameType

	// Validate checks the bet and player input. It is called before any
	// money moves and before any randomness is drawn, so a rejected round
	// never consumes RNG draws.
	Validate(bet money.Money, in Input) error

	// Play runs one round. It revalidates its inputs and settles the
	// payout; it performs no I/O besides reading from src.
	Play(bet money.Money, in Input, src RNG) (*Result, error)
}

var ratePush = decimal.NewFromInt(1)

func validateBet(bet money.Money) error {
	if !bet.IsPositive() {
		return fmt.Errorf("%w: bet must be positive, got %s", ErrInvalidBet, bet)
	}
	return nil
}

// settle derives winnings and net result from the applied payout rate.
// Push outcomes net exactly zero rather than winnings minus bet, so a
// rounding step can never produce an off-by-a-cent push.
func settle(gameType models.GameType, out Outcome, bet money.Money, rate decimal.Decimal, push bool) *Result {
	winnings := bet.MulRate(rate).Quantize()

	var net money.Money
	if push {
		net = money.Zero()
	} else {
		net = winnings.Sub(bet)
	}

	return &Result{
		GameType:   gameType,
		Outcome:    out,
		PayoutRate: rate,
		Winnings:   winnings,
		NetResult:  net,
		Push:       push,
	}
}

// Catalog holds one immutable instance of every game, constructed once at
// process start. There is no module-level game state; catalogs are
// independent, which keeps parallel tests isolated.
type Catalog struct {
	games map[models.GameType]Game
}

// NewCatalog builds all game variants. A malformed scratch-card
// distribution fails here, at load time, rather than on the first play.
func NewCatalog(scratchCardCost money.Money) (*Catalog, error) {
	scratchCard, err := NewScratchCard(scratchCardCost)
	if err != nil {
		return nil, fmt.Errorf("failed to build scratch card game: %w", err)
	}

	all := []Game{
		NewCoinFlip(),
		NewDiceRoll(),
		NewHighLowCard(),
		NewNumberGuess(),
		NewThreeReelSlot(),
		NewRockPaperScissors(),
		NewRoulette(),
		NewWheelOfFortune(),
		scratchCard,
		NewSimplifiedBlackjack(),
	}

	games := make(map[models.GameType]Game, len(all))
	for _, g := range all {
		games[g.Type()] = g
	}

	return &Catalog{games: games}, nil
}

// Get returns the game registered for the given type.
func (c *Catalog) Get(gameType models.GameType) (Game, error) {
	g, ok := c.games[gameType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGame, gameType)
	}
	return g, nil
}

// Types returns the registered game types in stable order.
func (c *Catalog) Types() []models.GameType {
	types := make([]models.GameType, 0, len(c.games))
	for t := range c.games {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
