package games

import (
	"fmt"

	"github.com/shopspring/decimal"

	"minicasino/models"
	"minicasino/money"
)

// High/low card: a single rank is drawn from thirteen. Low wins on value
// <=7 and pays 2.08x; High wins on value >=8 and pays 1.78x. Ace counts 13
// alongside the King, which is why the two sides pay differently.

const (
	ChoiceLow  = "Low"
	ChoiceHigh = "High"

	lowThreshold  = 7
	highThreshold = 8
)

var (
	highLowLowRate  = decimal.RequireFromString("2.08")
	highLowHighRate = decimal.RequireFromString("1.78")
)

type HighLowCard struct {
	ranks  []string
	values map[string]int
}

// NewHighLowCard creates the high/low card game.
func NewHighLowCard() *HighLowCard {
	ranks := []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}
	values := map[string]int{
		"2": 2, "3": 3, "4": 4, "5": 5, "6": 6, "7": 7, "8": 8, "9": 9, "10": 10,
		"J": 11, "Q": 12, "K": 13, "A": 13,
	}
	return &HighLowCard{ranks: ranks, values: values}
}

func (g *HighLowCard) Type() models.GameType {
	return models.GameTypeHighLowCard
}

func (g *HighLowCard) Validate(bet money.Money, in Input) error {
	if err := validateBet(bet); err != nil {
		return err
	}
	if in.Choice != ChoiceLow && in.Choice != ChoiceHigh {
		return fmt.Errorf("%w: %q, must be %q or %q", ErrInvalidChoice, in.Choice, ChoiceLow, ChoiceHigh)
	}
	return nil
}

func (g *HighLowCard) Play(bet money.Money, in Input, src RNG) (*Result, error) {
	if err := g.Validate(bet, in); err != nil {
		return nil, err
	}

	idx, err := src.UniformInt(len(g.ranks))
	if err != nil {
		return nil, err
	}
	rank := g.ranks[idx]
	value := g.values[rank]

	rate := decimal.Zero
	switch {
	case in.Choice == ChoiceLow && value <= lowThreshold:
		rate = highLowLowRate
	case in.Choice == ChoiceHigh && value >= highThreshold:
		rate = highLowHighRate
	}

	out := &HighLowCardOutcome{Choice: in.Choice, Rank: rank, Value: value}
	return settle(g.Type(), out, bet, rate, false), nil
}

// HighLowCardOutcome records the drawn card.
type HighLowCardOutcome struct {
	Choice string
	Rank   string
	Value  int
}

func (o *HighLowCardOutcome) Description() string {
	return fmt.Sprintf("drew %s (value %d)", o.Rank, o.Value)
}

func (o *HighLowCardOutcome) Data() map[string]any {
	return map[string]any{
		"choice":     o.Choice,
		"card_rank":  o.Rank,
		"card_value": o.Value,
	}
}
