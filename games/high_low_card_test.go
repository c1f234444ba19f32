package games

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minicasino/money"
)

func TestHighLowCardLowWin(t *testing.T) {
	g := NewHighLowCard()
	src := &scriptedRNG{uniform: []int{0}} // draws the 2

	result, err := g.Play(money.MustParse("15.00"), Input{Choice: ChoiceLow}, src)
	require.NoError(t, err)

	assert.Equal(t, "31.20", result.Winnings.String())
	assert.Equal(t, "16.20", result.NetResult.String())
}

func TestHighLowCardHighWin(t *testing.T) {
	g := NewHighLowCard()
	src := &scriptedRNG{uniform: []int{12}} // draws the Ace, value 13

	result, err := g.Play(money.MustParse("10.00"), Input{Choice: ChoiceHigh}, src)
	require.NoError(t, err)

	assert.Equal(t, "17.80", result.Winnings.String())

	out := result.Outcome.(*HighLowCardOutcome)
	assert.Equal(t, "A", out.Rank)
	assert.Equal(t, 13, out.Value)
}

func TestHighLowCardBoundary(t *testing.T) {
	g := NewHighLowCard()

	// The 7 (index 5) is the top of the Low range.
	result, err := g.Play(money.MustParse("1.00"), Input{Choice: ChoiceHigh}, &scriptedRNG{uniform: []int{5}})
	require.NoError(t, err)
	assert.Equal(t, "0.00", result.Winnings.String())

	// The 8 (index 6) is the bottom of the High range.
	result, err = g.Play(money.MustParse("1.00"), Input{Choice: ChoiceHigh}, &scriptedRNG{uniform: []int{6}})
	require.NoError(t, err)
	assert.Equal(t, "1.78", result.Winnings.String())
}

func TestHighLowCardInvalidChoice(t *testing.T) {
	g := NewHighLowCard()

	assert.ErrorIs(t, g.Validate(money.MustParse("1.00"), Input{Choice: "Middle"}), ErrInvalidChoice)
}
