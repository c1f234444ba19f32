package games

import (
	"fmt"

	"github.com/shopspring/decimal"

	"minicasino/models"
	"minicasino/money"
)

// Rock paper scissors against the house. Beating the house pays 1.91x, a
// tie pushes the stake back, a loss forfeits it.

const (
	ChoiceRock     = "Rock"
	ChoicePaper    = "Paper"
	ChoiceScissors = "Scissors"
)

var rpsWinRate = decimal.RequireFromString("1.91")

// rpsBeats maps each choice to the choice it defeats.
var rpsBeats = map[string]string{
	ChoiceRock:     ChoiceScissors,
	ChoicePaper:    ChoiceRock,
	ChoiceScissors: ChoicePaper,
}

type RockPaperScissors struct {
	choices []string
}

// NewRockPaperScissors creates the rock paper scissors game.
func NewRockPaperScissors() *RockPaperScissors {
	return &RockPaperScissors{choices: []string{ChoiceRock, ChoicePaper, ChoiceScissors}}
}

func (g *RockPaperScissors) Type() models.GameType {
	return models.GameTypeRockPaperScissors
}

func (g *RockPaperScissors) Validate(bet money.Money, in Input) error {
	if err := validateBet(bet); err != nil {
		return err
	}
	if _, ok := rpsBeats[in.Choice]; !ok {
		return fmt.Errorf("%w: %q, must be %q, %q or %q", ErrInvalidChoice, in.Choice, ChoiceRock, ChoicePaper, ChoiceScissors)
	}
	return nil
}

func (g *RockPaperScissors) Play(bet money.Money, in Input, src RNG) (*Result, error) {
	if err := g.Validate(bet, in); err != nil {
		return nil, err
	}

	idx, err := src.UniformInt(len(g.choices))
	if err != nil {
		return nil, err
	}
	house := g.choices[idx]

	var rate decimal.Decimal
	var status string
	var push bool
	switch {
	case in.Choice == house:
		status = "push"
		rate = ratePush
		push = true
	case rpsBeats[in.Choice] == house:
		status = "win"
		rate = rpsWinRate
	default:
		status = "loss"
		rate = decimal.Zero
	}

	out := &RockPaperScissorsOutcome{Player: in.Choice, House: house, Status: status}
	return settle(g.Type(), out, bet, rate, push), nil
}

// RockPaperScissorsOutcome records both throws.
type RockPaperScissorsOutcome struct {
	Player string
	House  string
	Status string
}

func (o *RockPaperScissorsOutcome) Description() string {
	return fmt.Sprintf("house threw %s (%s)", o.House, o.Status)
}

func (o *RockPaperScissorsOutcome) Data() map[string]any {
	return map[string]any{
		"player_choice": o.Player,
		"house_choice":  o.House,
		"result":        o.Status,
	}
}
