// Package curve holds the pure pricing math of the bonding curve. Nothing in
// here touches state; the trade engine owns all mutation.
package curve

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrDegenerate marks parameters or state that would produce a
	// non-finite price (zero max supply, zero spot price, ...).
	ErrDegenerate = errors.New("degenerate curve parameters")

	// ErrSupplyUnderflow marks a sell quote larger than the circulating supply.
	ErrSupplyUnderflow = errors.New("sell amount exceeds circulating supply")
)

// Curve is the polynomial price curve P(s) = (s/maxSupply)^exponent * maxPrice.
type Curve struct {
	exponent  float64
	maxSupply float64
	maxPrice  float64
}

func New(exponent, maxSupply, maxPrice float64) (Curve, error) {
	if exponent <= 0 || maxSupply <= 0 || maxPrice <= 0 {
		return Curve{}, fmt.Errorf("%w: exponent=%v maxSupply=%v maxPrice=%v",
			ErrDegenerate, exponent, maxSupply, maxPrice)
	}
	return Curve{
		exponent:  exponent,
		maxSupply: maxSupply,
		maxPrice:  maxPrice,
	}, nil
}

func (c Curve) MaxSupply() float64 { return c.maxSupply }
func (c Curve) MaxPrice() float64  { return c.maxPrice }

// Spot returns the instantaneous price at the given supply. Supply is
// clamped into [0, maxSupply] so the result is always finite and
// non-negative.
func (c Curve) Spot(supply float64) float64 {
	if supply <= 0 {
		return 0
	}
	if supply > c.maxSupply {
		supply = c.maxSupply
	}
	return math.Pow(supply/c.maxSupply, c.exponent) * c.maxPrice
}

// TokensOut returns the raw token amount bought with eth at the pre-trade
// spot price. No clamping: the engine checks the result against the supply
// bound so that an over-the-cap buy is rejected, not silently shrunk.
func (c Curve) TokensOut(eth, supply float64) (float64, error) {
	p := c.Spot(supply)
	if p == 0 {
		return 0, fmt.Errorf("%w: zero spot price at supply %v", ErrDegenerate, supply)
	}
	return eth / p, nil
}

// QuoteBuy is the read-only buy quote: TokensOut saturated to the remaining
// supply. The saturation is a documented simplification, not an error; an
// exact quote would integrate the price over the swept supply range.
func (c Curve) QuoteBuy(eth, supply float64) (float64, error) {
	tokens, err := c.TokensOut(eth, supply)
	if err != nil {
		return 0, err
	}
	if remaining := c.maxSupply - supply; tokens > remaining {
		tokens = remaining
	}
	return tokens, nil
}

// QuoteSell returns the eth obtained by selling tokens, valued at the spot
// price of the post-sale supply. The pre-trade/post-trade asymmetry between
// buy and sell quotes is a preserved behavioral contract; see QuoteBuy.
func (c Curve) QuoteSell(tokens, supply float64) (float64, error) {
	if tokens > supply {
		return 0, fmt.Errorf("%w: selling %v of %v", ErrSupplyUnderflow, tokens, supply)
	}
	return tokens * c.Spot(supply-tokens), nil
}

// MarketCap values the circulating supply at the current spot price.
func (c Curve) MarketCap(supply float64) float64 {
	return supply * c.Spot(supply)
}

// FullyDilutedValuation values the max supply at the current spot price.
func (c Curve) FullyDilutedValuation(supply float64) float64 {
	return c.maxSupply * c.Spot(supply)
}
