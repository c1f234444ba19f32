package games

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"minicasino/models"
	"minicasino/money"
)

// Three-reel slot: each reel draws uniformly from Cherry, Lemon, Bar.
// Three of a kind pays 5x, 8x or 13x depending on the symbol; anything
// else loses.

type ThreeReelSlot struct {
	symbols  []string
	paytable map[string]decimal.Decimal
}

// NewThreeReelSlot creates the slot game.
func NewThreeReelSlot() *ThreeReelSlot {
	return &ThreeReelSlot{
		symbols: []string{"C", "L", "B"},
		paytable: map[string]decimal.Decimal{
			"CCC": decimal.RequireFromString("5"),
			"LLL": decimal.RequireFromString("8"),
			"BBB": decimal.RequireFromString("13"),
		},
	}
}

func (g *ThreeReelSlot) Type() models.GameType {
	return models.GameTypeThreeReelSlot
}

func (g *ThreeReelSlot) Validate(bet money.Money, in Input) error {
	return validateBet(bet)
}

func (g *ThreeReelSlot) Play(bet money.Money, in Input, src RNG) (*Result, error) {
	if err := g.Validate(bet, in); err != nil {
		return nil, err
	}

	reels := make([]string, 3)
	for i := range reels {
		idx, err := src.UniformInt(len(g.symbols))
		if err != nil {
			return nil, err
		}
		reels[i] = g.symbols[idx]
	}

	rate, ok := g.paytable[strings.Join(reels, "")]
	if !ok {
		rate = decimal.Zero
	}

	out := &ThreeReelSlotOutcome{Reels: reels}
	return settle(g.Type(), out, bet, rate, false), nil
}

// ThreeReelSlotOutcome records the reel symbols.
type ThreeReelSlotOutcome struct {
	Reels []string
}

func (o *ThreeReelSlotOutcome) Description() string {
	return fmt.Sprintf("reels landed %s", strings.Join(o.Reels, " "))
}

func (o *ThreeReelSlotOutcome) Data() map[string]any {
	return map[string]any{
		"reels": o.Reels,
	}
}
