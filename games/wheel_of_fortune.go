package games

import (
	"fmt"

	"github.com/shopspring/decimal"

	"minicasino/models"
	"minicasino/money"
)

// Wheel of fortune: ten equal segments. Segments 0-4 lose, 5-7 pay 1.5x,
// segment 8 pays 2x and segment 9 pays 3x (95% RTP).

type WheelOfFortune struct {
	segments []decimal.Decimal
}

// NewWheelOfFortune creates the wheel game.
func NewWheelOfFortune() *WheelOfFortune {
	zero := decimal.Zero
	half := decimal.RequireFromString("1.5")
	return &WheelOfFortune{
		segments: []decimal.Decimal{
			zero, zero, zero, zero, zero,
			half, half, half,
			decimal.RequireFromString("2"),
			decimal.RequireFromString("3"),
		},
	}
}

func (g *WheelOfFortune) Type() models.GameType {
	return models.GameTypeWheelOfFortune
}

func (g *WheelOfFortune) Validate(bet money.Money, in Input) error {
	return validateBet(bet)
}

func (g *WheelOfFortune) Play(bet money.Money, in Input, src RNG) (*Result, error) {
	if err := g.Validate(bet, in); err != nil {
		return nil, err
	}

	segment, err := src.UniformInt(len(g.segments))
	if err != nil {
		return nil, err
	}
	rate := g.segments[segment]

	out := &WheelOfFortuneOutcome{Segment: segment, Rate: rate}
	return settle(g.Type(), out, bet, rate, false), nil
}

// WheelOfFortuneOutcome records the winning segment.
type WheelOfFortuneOutcome struct {
	Segment int
	Rate    decimal.Decimal
}

func (o *WheelOfFortuneOutcome) Description() string {
	return fmt.Sprintf("wheel stopped on segment %d", o.Segment)
}

func (o *WheelOfFortuneOutcome) Data() map[string]any {
	return map[string]any{
		"segment":     o.Segment,
		"payout_rate": o.Rate.String(),
	}
}
