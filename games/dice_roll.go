package games

import (
	"fmt"

	"github.com/shopspring/decimal"

	"minicasino/models"
	"minicasino/money"
)

// Dice roll: bet on one face of a fair six-sided die, a match pays 5.7x.

const (
	diceMinFace = 1
	diceMaxFace = 6
)

var diceRollWinRate = decimal.RequireFromString("5.7")

type DiceRoll struct{}

// NewDiceRoll creates the dice roll game.
func NewDiceRoll() *DiceRoll {
	return &DiceRoll{}
}

func (g *DiceRoll) Type() models.GameType {
	return models.GameTypeDiceRoll
}

func (g *DiceRoll) Validate(bet money.Money, in Input) error {
	if err := validateBet(bet); err != nil {
		return err
	}
	if in.Number < diceMinFace || in.Number > diceMaxFace {
		return fmt.Errorf("%w: number must be between %d and %d, got %d", ErrInvalidChoice, diceMinFace, diceMaxFace, in.Number)
	}
	return nil
}

func (g *DiceRoll) Play(bet money.Money, in Input, src RNG) (*Result, error) {
	if err := g.Validate(bet, in); err != nil {
		return nil, err
	}

	v, err := src.UniformInt(diceMaxFace - diceMinFace + 1)
	if err != nil {
		return nil, err
	}
	rolled := diceMinFace + v

	rate := decimal.Zero
	if rolled == in.Number {
		rate = diceRollWinRate
	}

	out := &DiceRollOutcome{Chosen: in.Number, Rolled: rolled}
	return settle(g.Type(), out, bet, rate, false), nil
}

// DiceRollOutcome records one roll.
type DiceRollOutcome struct {
	Chosen int
	Rolled int
}

func (o *DiceRollOutcome) Description() string {
	return fmt.Sprintf("die rolled %d", o.Rolled)
}

func (o *DiceRollOutcome) Data() map[string]any {
	return map[string]any{
		"choice":  o.Chosen,
		"outcome": o.Rolled,
	}
}
