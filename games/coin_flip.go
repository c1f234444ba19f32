package games

import (
	"fmt"

	"github.com/shopspring/decimal"

	"minicasino/models"
	"minicasino/money"
)

// Coin flip: pick Heads or Tails, uniform flip, win pays 1.92x (96% RTP).

const (
	ChoiceHeads = "Heads"
	ChoiceTails = "Tails"
)

var coinFlipWinRate = decimal.RequireFromString("1.92")

type CoinFlip struct {
	sides []string
}

// NewCoinFlip creates the coin flip game.
func NewCoinFlip() *CoinFlip {
	return &CoinFlip{sides: []string{ChoiceHeads, ChoiceTails}}
}

func (g *CoinFlip) Type() models.GameType {
	return models.GameTypeCoinFlip
}

func (g *CoinFlip) Validate(bet money.Money, in Input) error {
	if err := validateBet(bet); err != nil {
		return err
	}
	if in.Choice != ChoiceHeads && in.Choice != ChoiceTails {
		return fmt.Errorf("%w: %q, must be %q or %q", ErrInvalidChoice, in.Choice, ChoiceHeads, ChoiceTails)
	}
	return nil
}

func (g *CoinFlip) Play(bet money.Money, in Input, src RNG) (*Result, error) {
	if err := g.Validate(bet, in); err != nil {
		return nil, err
	}

	idx, err := src.UniformInt(len(g.sides))
	if err != nil {
		return nil, err
	}
	landed := g.sides[idx]

	rate := decimal.Zero
	if landed == in.Choice {
		rate = coinFlipWinRate
	}

	out := &CoinFlipOutcome{Choice: in.Choice, Landed: landed}
	return settle(g.Type(), out, bet, rate, false), nil
}

// CoinFlipOutcome records one flip.
type CoinFlipOutcome struct {
	Choice string
	Landed string
}

func (o *CoinFlipOutcome) Description() string {
	return fmt.Sprintf("coin landed %s", o.Landed)
}

func (o *CoinFlipOutcome) Data() map[string]any {
	return map[string]any{
		"choice":  o.Choice,
		"outcome": o.Landed,
	}
}
