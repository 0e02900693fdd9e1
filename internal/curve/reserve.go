package curve

import (
	"fmt"
	"math/big"
)

// PPM is the fixed-point base of the reserve ratio, matching the on-chain
// contract's parts-per-million representation.
const PPM = 1_000_000

// Threshold between the linear approximation and the first-order corrected
// branch: amounts below balance * linearThresholdNum/linearThresholdDen take
// the linear path. The 10% cutoff mirrors the contract; it is a gas
// heuristic, not a mathematical boundary, so it stays tunable.
const (
	linearThresholdNum = 1
	linearThresholdDen = 10
)

// ReserveCurve is the reserve-ratio form of the bonding curve used by the
// on-chain contract: return = supply * ((1 + amount/balance)^ratio - 1).
// Amounts are wei-scale integers.
type ReserveCurve struct {
	ratioPPM uint32
}

func NewReserveCurve(ratioPPM uint32) (ReserveCurve, error) {
	if ratioPPM == 0 || ratioPPM > PPM {
		return ReserveCurve{}, fmt.Errorf("%w: reserve ratio %d ppm", ErrDegenerate, ratioPPM)
	}
	return ReserveCurve{ratioPPM: ratioPPM}, nil
}

func (rc ReserveCurve) RatioPPM() uint32 { return rc.ratioPPM }

// BuyReturn computes the tokens minted for an eth amount given the current
// token supply and reserve balance.
func (rc ReserveCurve) BuyReturn(supply, balance, amount *big.Int) (*big.Int, error) {
	if amount == nil || amount.Sign() <= 0 {
		return nil, fmt.Errorf("%w: non-positive buy amount", ErrDegenerate)
	}

	// First purchase: no supply yet, price defined by the ratio alone.
	if supply == nil || supply.Sign() == 0 {
		return mulDiv(amount, big.NewInt(PPM), big.NewInt(int64(rc.ratioPPM))), nil
	}

	if balance == nil || balance.Sign() == 0 {
		return nil, fmt.Errorf("%w: zero reserve balance with nonzero supply", ErrDegenerate)
	}

	if belowThreshold(amount, balance) {
		// return = supply * ratio * amount / balance
		n := new(big.Int).Mul(supply, amount)
		n.Mul(n, big.NewInt(int64(rc.ratioPPM)))
		d := new(big.Int).Mul(balance, big.NewInt(PPM))
		return n.Div(n, d), nil
	}

	// (1+x)^r - 1 ~= r*x + r*(r-1)/2 * x^2 for x = amount/balance
	x := ratioFloat(amount, balance)
	r := float64(rc.ratioPPM) / PPM
	factor := r*x + r*(r-1)/2*x*x
	return scaleInt(supply, factor), nil
}

// SellReturn computes the eth released for a token amount given the current
// token supply and reserve balance.
func (rc ReserveCurve) SellReturn(supply, balance, amount *big.Int) (*big.Int, error) {
	if amount == nil || amount.Sign() <= 0 {
		return nil, fmt.Errorf("%w: non-positive sell amount", ErrDegenerate)
	}
	if supply == nil || supply.Sign() == 0 {
		return nil, fmt.Errorf("%w: zero supply", ErrDegenerate)
	}
	if amount.Cmp(supply) > 0 {
		return nil, fmt.Errorf("%w: selling %s of %s", ErrSupplyUnderflow, amount, supply)
	}
	if balance == nil || balance.Sign() == 0 {
		return nil, fmt.Errorf("%w: zero reserve balance", ErrDegenerate)
	}

	// Selling the entire supply drains the reserve exactly.
	if amount.Cmp(supply) == 0 {
		return new(big.Int).Set(balance), nil
	}

	if belowThreshold(amount, supply) {
		// return = balance * amount / (supply * ratio)
		n := new(big.Int).Mul(balance, amount)
		n.Mul(n, big.NewInt(PPM))
		d := new(big.Int).Mul(supply, big.NewInt(int64(rc.ratioPPM)))
		return n.Div(n, d), nil
	}

	// 1 - (1-y)^k ~= k*y - k*(k-1)/2 * y^2 for y = amount/supply, k = 1/ratio
	y := ratioFloat(amount, supply)
	k := PPM / float64(rc.ratioPPM)
	factor := k*y - k*(k-1)/2*y*y
	if factor > 1 {
		factor = 1
	}
	return scaleInt(balance, factor), nil
}

func belowThreshold(amount, base *big.Int) bool {
	lhs := new(big.Int).Mul(amount, big.NewInt(linearThresholdDen))
	rhs := new(big.Int).Mul(base, big.NewInt(linearThresholdNum))
	return lhs.Cmp(rhs) < 0
}

// big division: (a * b) / c with rounding down
func mulDiv(a, b, c *big.Int) *big.Int {
	num := new(big.Int).Mul(a, b)
	return num.Div(num, c)
}

func ratioFloat(num, den *big.Int) float64 {
	f, _ := new(big.Float).Quo(new(big.Float).SetInt(num), new(big.Float).SetInt(den)).Float64()
	return f
}

func scaleInt(base *big.Int, factor float64) *big.Int {
	out := new(big.Int)
	new(big.Float).Mul(new(big.Float).SetInt(base), big.NewFloat(factor)).Int(out)
	return out
}
