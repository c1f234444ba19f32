package games

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"minicasino/models"
	"minicasino/money"
	"minicasino/rng"
)

// Scratch card: a fixed-cost card reveals one payout multiplier drawn from
// a weighted distribution. The probabilities are part of the game's
// configuration and must sum to exactly 1; a bad table is a deployment
// defect and is rejected when the catalog is built, not at play time.

const distributionEpsilon = 1e-9

// ScratchPrize pairs a payout multiplier with its probability.
type ScratchPrize struct {
	Rate        decimal.Decimal
	Probability float64
}

// DefaultScratchPrizes is the standard 96% RTP prize table.
func DefaultScratchPrizes() []ScratchPrize {
	return []ScratchPrize{
		{Rate: decimal.RequireFromString("0"), Probability: 0.620},
		{Rate: decimal.RequireFromString("1"), Probability: 0.160},
		{Rate: decimal.RequireFromString("2"), Probability: 0.150},
		{Rate: decimal.RequireFromString("5"), Probability: 0.050},
		{Rate: decimal.RequireFromString("10"), Probability: 0.015},
		{Rate: decimal.RequireFromString("20"), Probability: 0.005},
	}
}

type ScratchCard struct {
	cardCost money.Money
	prizes   []ScratchPrize
	weights  []float64
}

// NewScratchCard creates the scratch card game with the default prize table.
func NewScratchCard(cardCost money.Money) (*ScratchCard, error) {
	return NewScratchCardWithPrizes(cardCost, DefaultScratchPrizes())
}

// NewScratchCardWithPrizes creates the scratch card game with a custom
// prize table. It fails with ErrInvalidDistribution if any probability is
// negative or the probabilities do not sum to 1.
func NewScratchCardWithPrizes(cardCost money.Money, prizes []ScratchPrize) (*ScratchCard, error) {
	if !cardCost.IsPositive() {
		return nil, fmt.Errorf("%w: card cost must be positive, got %s", ErrInvalidBet, cardCost)
	}
	if len(prizes) == 0 {
		return nil, fmt.Errorf("%w: empty prize table", rng.ErrInvalidDistribution)
	}

	weights := make([]float64, len(prizes))
	var total float64
	for i, p := range prizes {
		if p.Probability < 0 {
			return nil, fmt.Errorf("%w: prize %d has negative probability %v", rng.ErrInvalidDistribution, i, p.Probability)
		}
		weights[i] = p.Probability
		total += p.Probability
	}
	if math.Abs(total-1.0) > distributionEpsilon {
		return nil, fmt.Errorf("%w: probabilities must sum to 1, got %v", rng.ErrInvalidDistribution, total)
	}

	return &ScratchCard{cardCost: cardCost, prizes: prizes, weights: weights}, nil
}

func (g *ScratchCard) Type() models.GameType {
	return models.GameTypeScratchCard
}

// CardCost returns the fixed price of one card.
func (g *ScratchCard) CardCost() money.Money {
	return g.cardCost
}

func (g *ScratchCard) Validate(bet money.Money, in Input) error {
	if err := validateBet(bet); err != nil {
		return err
	}
	if !bet.Equal(g.cardCost) {
		return fmt.Errorf("%w: a scratch card costs exactly %s", ErrInvalidBet, g.cardCost)
	}
	return nil
}

func (g *ScratchCard) Play(bet money.Money, in Input, src RNG) (*Result, error) {
	if err := g.Validate(bet, in); err != nil {
		return nil, err
	}

	idx, err := src.WeightedIndex(g.weights)
	if err != nil {
		return nil, err
	}
	rate := g.prizes[idx].Rate

	out := &ScratchCardOutcome{Multiplier: rate}
	return settle(g.Type(), out, bet, rate, false), nil
}

// ScratchCardOutcome records the revealed multiplier.
type ScratchCardOutcome struct {
	Multiplier decimal.Decimal
}

func (o *ScratchCardOutcome) Description() string {
	return fmt.Sprintf("card revealed a %sx multiplier", o.Multiplier)
}

func (o *ScratchCardOutcome) Data() map[string]any {
	return map[string]any{
		"multiplier": o.Multiplier.String(),
	}
}
