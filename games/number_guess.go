package games

import (
	"fmt"

	"github.com/shopspring/decimal"

	"minicasino/models"
	"minicasino/money"
)

// Number guess: pick a number from 1 to 10, an exact match pays 9.5x.

const (
	guessMin = 1
	guessMax = 10
)

var numberGuessWinRate = decimal.RequireFromString("9.5")

type NumberGuess struct{}

// NewNumberGuess creates the number guess game.
func NewNumberGuess() *NumberGuess {
	return &NumberGuess{}
}

func (g *NumberGuess) Type() models.GameType {
	return models.GameTypeNumberGuess
}

func (g *NumberGuess) Validate(bet money.Money, in Input) error {
	if err := validateBet(bet); err != nil {
		return err
	}
	if in.Number < guessMin || in.Number > guessMax {
		return fmt.Errorf("%w: number must be between %d and %d, got %d", ErrInvalidChoice, guessMin, guessMax, in.Number)
	}
	return nil
}

func (g *NumberGuess) Play(bet money.Money, in Input, src RNG) (*Result, error) {
	if err := g.Validate(bet, in); err != nil {
		return nil, err
	}

	v, err := src.UniformInt(guessMax - guessMin + 1)
	if err != nil {
		return nil, err
	}
	secret := guessMin + v

	rate := decimal.Zero
	if secret == in.Number {
		rate = numberGuessWinRate
	}

	out := &NumberGuessOutcome{Chosen: in.Number, Secret: secret}
	return settle(g.Type(), out, bet, rate, false), nil
}

// NumberGuessOutcome records the secret number.
type NumberGuessOutcome struct {
	Chosen int
	Secret int
}

func (o *NumberGuessOutcome) Description() string {
	return fmt.Sprintf("secret number was %d", o.Secret)
}

func (o *NumberGuessOutcome) Data() map[string]any {
	return map[string]any{
		"choice":        o.Chosen,
		"secret_number": o.Secret,
	}
}
