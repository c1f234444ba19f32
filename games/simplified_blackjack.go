package games

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"minicasino/models"
	"minicasino/money"
)

// Simplified blackjack: two 2-card hands are dealt from a freshly shuffled
// 52-card deck and compared immediately. There are no hit/stand decisions;
// this is deliberately a payout comparison on the initial deal, not real
// blackjack play. A win pays 1:1 (2.00x total return), even for a natural.

var blackjackWinRate = decimal.RequireFromString("2.00")

// blackjackRanks maps each rank to its initial value; aces count 11 and
// degrade to 1 while the hand is bust.
var blackjackRanks = map[string]int{
	"2": 2, "3": 3, "4": 4, "5": 5, "6": 6, "7": 7, "8": 8, "9": 9,
	"10": 10, "J": 10, "Q": 10, "K": 10, "A": 11,
}

type SimplifiedBlackjack struct {
	deck []string
}

// NewSimplifiedBlackjack creates the blackjack game with a standard
// 52-card deck; only ranks matter, suits are irrelevant to the payout.
func NewSimplifiedBlackjack() *SimplifiedBlackjack {
	ranks := []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}
	deck := make([]string, 0, len(ranks)*4)
	for _, r := range ranks {
		for i := 0; i < 4; i++ {
			deck = append(deck, r)
		}
	}
	return &SimplifiedBlackjack{deck: deck}
}

func (g *SimplifiedBlackjack) Type() models.GameType {
	return models.GameTypeSimplifiedBlackjack
}

func (g *SimplifiedBlackjack) Validate(bet money.Money, in Input) error {
	return validateBet(bet)
}

func (g *SimplifiedBlackjack) Play(bet money.Money, in Input, src RNG) (*Result, error) {
	if err := g.Validate(bet, in); err != nil {
		return nil, err
	}

	deck := make([]string, len(g.deck))
	copy(deck, g.deck)
	if err := src.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	}); err != nil {
		return nil, err
	}

	playerHand := []string{deck[0], deck[1]}
	dealerHand := []string{deck[2], deck[3]}
	playerValue := handValue(playerHand)
	dealerValue := handValue(dealerHand)

	playerNatural := playerValue == 21
	dealerNatural := dealerValue == 21

	var rate decimal.Decimal
	var status string
	var push bool
	switch {
	case playerNatural && dealerNatural:
		status = "push_both_blackjack"
		rate = ratePush
		push = true
	case playerNatural:
		status = "player_blackjack"
		rate = blackjackWinRate
	case dealerNatural:
		status = "dealer_blackjack"
		rate = decimal.Zero
	case playerValue > 21:
		status = "player_bust"
		rate = decimal.Zero
	case playerValue > dealerValue:
		status = "player_wins"
		rate = blackjackWinRate
	case dealerValue > playerValue:
		status = "dealer_wins"
		rate = decimal.Zero
	default:
		status = "push"
		rate = ratePush
		push = true
	}

	out := &SimplifiedBlackjackOutcome{
		PlayerHand:  playerHand,
		DealerHand:  dealerHand,
		PlayerValue: playerValue,
		DealerValue: dealerValue,
		Status:      status,
	}
	return settle(g.Type(), out, bet, rate, push), nil
}

// handValue totals a hand, degrading aces from 11 to 1 while the total
// is over 21.
func handValue(hand []string) int {
	value := 0
	aces := 0
	for _, rank := range hand {
		value += blackjackRanks[rank]
		if rank == "A" {
			aces++
		}
	}
	for value > 21 && aces > 0 {
		value -= 10
		aces--
	}
	return value
}

// SimplifiedBlackjackOutcome records both dealt hands.
type SimplifiedBlackjackOutcome struct {
	PlayerHand  []string
	DealerHand  []string
	PlayerValue int
	DealerValue int
	Status      string
}

func (o *SimplifiedBlackjackOutcome) Description() string {
	return fmt.Sprintf("player %s (%d) vs dealer %s (%d)",
		strings.Join(o.PlayerHand, " "), o.PlayerValue,
		strings.Join(o.DealerHand, " "), o.DealerValue)
}

func (o *SimplifiedBlackjackOutcome) Data() map[string]any {
	return map[string]any{
		"player_hand":  o.PlayerHand,
		"dealer_hand":  o.DealerHand,
		"player_value": o.PlayerValue,
		"dealer_value": o.DealerValue,
		"result":       o.Status,
	}
}
