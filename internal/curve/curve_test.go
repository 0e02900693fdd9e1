package curve

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func launchCurve(t *testing.T) Curve {
	c, err := New(1.5, 100_000_000, 0.001)
	require.NoError(t, err)
	return c
}

func TestNew(t *testing.T) {
	_, err := New(0, 100, 1)
	assert.Error(t, err)
	_, err = New(1.5, 0, 1)
	assert.Error(t, err)
	_, err = New(1.5, 100, 0)
	assert.Error(t, err)
	_, err = New(1.5, 100, 1)
	assert.NoError(t, err)
}

func TestSpot(t *testing.T) {
	c := launchCurve(t)

	assert.Equal(t, 0.0, c.Spot(0))
	assert.Equal(t, 0.001, c.Spot(100_000_000))

	// 10% of supply: 0.1^1.5 * 0.001
	assert.InDelta(t, math.Pow(0.1, 1.5)*0.001, c.Spot(10_000_000), 1e-15)

	// Out-of-range supply clamps instead of extrapolating.
	assert.Equal(t, 0.001, c.Spot(200_000_000))
	assert.Equal(t, 0.0, c.Spot(-5))
}

func TestSpotMonotonic(t *testing.T) {
	c := launchCurve(t)

	prev := -1.0
	for s := 0.0; s <= 100_000_000; s += 1_000_000 {
		p := c.Spot(s)
		assert.GreaterOrEqual(t, p, prev, "price must not decrease with supply (s=%v)", s)
		prev = p
	}
}

func TestTokensOut(t *testing.T) {
	c := launchCurve(t)

	tokens, err := c.TokensOut(1, 10_000_000)
	require.NoError(t, err)
	assert.InDelta(t, 1/c.Spot(10_000_000), tokens, 1e-9)

	// Zero supply means zero spot price: the quote is undefined.
	_, err = c.TokensOut(1, 0)
	assert.ErrorIs(t, err, ErrDegenerate)
}

func TestQuoteBuy(t *testing.T) {
	c := launchCurve(t)

	// Near the cap the raw quote overshoots; QuoteBuy saturates.
	tokens, err := c.QuoteBuy(1000, 100_000_000-10)
	require.NoError(t, err)
	assert.Equal(t, 10.0, tokens)

	tokens, err = c.QuoteBuy(1, 10_000_000)
	require.NoError(t, err)
	raw, err := c.TokensOut(1, 10_000_000)
	require.NoError(t, err)
	assert.Equal(t, raw, tokens)
}

func TestQuoteSell(t *testing.T) {
	c := launchCurve(t)

	// Valued at the spot price after the supply reduction.
	eth, err := c.QuoteSell(1_000_000, 10_000_000)
	require.NoError(t, err)
	assert.InDelta(t, 1_000_000*c.Spot(9_000_000), eth, 1e-9)

	_, err = c.QuoteSell(20_000_000, 10_000_000)
	assert.ErrorIs(t, err, ErrSupplyUnderflow)

	// Selling the entire supply is worth nothing at the post-sale price.
	eth, err = c.QuoteSell(10_000_000, 10_000_000)
	require.NoError(t, err)
	assert.Equal(t, 0.0, eth)
}

func TestBuySellAsymmetry(t *testing.T) {
	c := launchCurve(t)

	supply := 10_000_000.0
	tokens, err := c.TokensOut(1, supply)
	require.NoError(t, err)

	back, err := c.QuoteSell(tokens, supply+tokens)
	require.NoError(t, err)

	// Buys price at the pre-trade spot, sells at the post-sale spot, so a
	// round trip never returns the full ETH amount.
	assert.Less(t, back, 1.0)
	assert.Greater(t, back, 0.0)
}

func TestValuation(t *testing.T) {
	c := launchCurve(t)

	supply := 10_000_000.0
	spot := c.Spot(supply)

	assert.Equal(t, supply*spot, c.MarketCap(supply))
	assert.Equal(t, 100_000_000*spot, c.FullyDilutedValuation(supply))
	assert.Greater(t, c.FullyDilutedValuation(supply), c.MarketCap(supply))
}
