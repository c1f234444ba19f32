package games

import (
	"fmt"

	"github.com/shopspring/decimal"

	"minicasino/models"
	"minicasino/money"
)

// Roulette, red/black bets only. The wheel has 37 pockets; 0 is green and
// loses both colors, which is where the house edge lives. A color match
// pays 2.00x.

const (
	ChoiceRed   = "Red"
	ChoiceBlack = "Black"

	ColorGreen = "Green"

	roulettePockets = 37
)

var rouletteWinRate = decimal.RequireFromString("2.00")

type Roulette struct {
	red   map[int]bool
	black map[int]bool
}

// NewRoulette creates the roulette game with pockets 1-18 red and
// 19-36 black.
func NewRoulette() *Roulette {
	red := make(map[int]bool)
	black := make(map[int]bool)
	for n := 1; n <= 18; n++ {
		red[n] = true
	}
	for n := 19; n <= 36; n++ {
		black[n] = true
	}
	return &Roulette{red: red, black: black}
}

func (g *Roulette) Type() models.GameType {
	return models.GameTypeRoulette
}

func (g *Roulette) Validate(bet money.Money, in Input) error {
	if err := validateBet(bet); err != nil {
		return err
	}
	if in.Choice != ChoiceRed && in.Choice != ChoiceBlack {
		return fmt.Errorf("%w: %q, must be %q or %q", ErrInvalidChoice, in.Choice, ChoiceRed, ChoiceBlack)
	}
	return nil
}

func (g *Roulette) Play(bet money.Money, in Input, src RNG) (*Result, error) {
	if err := g.Validate(bet, in); err != nil {
		return nil, err
	}

	pocket, err := src.UniformInt(roulettePockets)
	if err != nil {
		return nil, err
	}

	color := ColorGreen
	switch {
	case g.red[pocket]:
		color = ChoiceRed
	case g.black[pocket]:
		color = ChoiceBlack
	}

	rate := decimal.Zero
	if color == in.Choice {
		rate = rouletteWinRate
	}

	out := &RouletteOutcome{Choice: in.Choice, Pocket: pocket, Color: color}
	return settle(g.Type(), out, bet, rate, false), nil
}

// RouletteOutcome records the winning pocket.
type RouletteOutcome struct {
	Choice string
	Pocket int
	Color  string
}

func (o *RouletteOutcome) Description() string {
	return fmt.Sprintf("ball landed on %d (%s)", o.Pocket, o.Color)
}

func (o *RouletteOutcome) Data() map[string]any {
	return map[string]any{
		"choice":         o.Choice,
		"outcome_number": o.Pocket,
		"outcome_color":  o.Color,
	}
}
