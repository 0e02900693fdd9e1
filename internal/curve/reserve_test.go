package curve

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eth(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1e18))
}

func TestNewReserveCurve(t *testing.T) {
	_, err := NewReserveCurve(0)
	assert.Error(t, err)
	_, err = NewReserveCurve(PPM + 1)
	assert.Error(t, err)

	rc, err := NewReserveCurve(500_000)
	require.NoError(t, err)
	assert.Equal(t, uint32(500_000), rc.RatioPPM())
}

func TestBuyReturn(t *testing.T) {
	rc, _ := NewReserveCurve(500_000)

	t.Run("first purchase", func(t *testing.T) {
		// No supply yet: tokens = eth * PPM / ratio
		out, err := rc.BuyReturn(big.NewInt(0), big.NewInt(0), eth(1))
		require.NoError(t, err)
		assert.Equal(t, eth(2), out)
	})

	t.Run("zero balance with live supply", func(t *testing.T) {
		_, err := rc.BuyReturn(eth(100), big.NewInt(0), eth(1))
		assert.ErrorIs(t, err, ErrDegenerate)
	})

	t.Run("linear branch", func(t *testing.T) {
		// 1 of 100 balance is well under the 10% cutoff.
		out, err := rc.BuyReturn(eth(1000), eth(100), eth(1))
		require.NoError(t, err)

		// supply * ratio * amount / balance = 1000 * 0.5 * 1/100 = 5
		assert.Equal(t, eth(5), out)
	})

	t.Run("corrected branch stays below linear", func(t *testing.T) {
		// 50 of 100 balance crosses the cutoff; the second-order term
		// discounts the linear price.
		out, err := rc.BuyReturn(eth(1000), eth(100), eth(50))
		require.NoError(t, err)

		linear := new(big.Int).Mul(eth(1000), big.NewInt(int64(rc.RatioPPM())))
		linear.Mul(linear, eth(50))
		linear.Div(linear, new(big.Int).Mul(eth(100), big.NewInt(PPM)))

		assert.Equal(t, -1, out.Cmp(linear), "corrected return should undercut the linear estimate")
		assert.Equal(t, 1, out.Sign())
	})

	t.Run("branches agree near the cutoff", func(t *testing.T) {
		just := new(big.Int).Sub(eth(10), big.NewInt(1)) // 9.99...
		over := eth(10)

		under, err := rc.BuyReturn(eth(1000), eth(100), just)
		require.NoError(t, err)
		at, err := rc.BuyReturn(eth(1000), eth(100), over)
		require.NoError(t, err)

		// Within 3% of each other at the boundary.
		diff := new(big.Int).Sub(under, at)
		diff.Abs(diff)
		limit := new(big.Int).Div(under, big.NewInt(33))
		assert.Equal(t, -1, diff.Cmp(limit), "under %s at %s", under, at)
	})

	t.Run("non-positive amount", func(t *testing.T) {
		_, err := rc.BuyReturn(eth(1000), eth(100), big.NewInt(0))
		assert.ErrorIs(t, err, ErrDegenerate)
	})
}

func TestSellReturn(t *testing.T) {
	rc, _ := NewReserveCurve(500_000)

	t.Run("full exit drains the reserve", func(t *testing.T) {
		out, err := rc.SellReturn(eth(1000), eth(100), eth(1000))
		require.NoError(t, err)
		assert.Equal(t, eth(100), out)
	})

	t.Run("oversell", func(t *testing.T) {
		_, err := rc.SellReturn(eth(1000), eth(100), eth(1001))
		assert.ErrorIs(t, err, ErrSupplyUnderflow)
	})

	t.Run("linear branch", func(t *testing.T) {
		// balance * amount * PPM / (supply * ratio) = 100 * 10 / (1000 * 0.5) = 2
		out, err := rc.SellReturn(eth(1000), eth(100), eth(10))
		require.NoError(t, err)
		assert.Equal(t, eth(2), out)
	})

	t.Run("corrected branch never exceeds the reserve", func(t *testing.T) {
		out, err := rc.SellReturn(eth(1000), eth(100), eth(900))
		require.NoError(t, err)
		assert.LessOrEqual(t, out.Cmp(eth(100)), 0)
		assert.Equal(t, 1, out.Sign())
	})

	t.Run("zero supply", func(t *testing.T) {
		_, err := rc.SellReturn(big.NewInt(0), eth(100), eth(1))
		assert.ErrorIs(t, err, ErrDegenerate)
	})
}

func TestBuySellRoundTripLoses(t *testing.T) {
	rc, _ := NewReserveCurve(500_000)

	supply, balance := eth(1000), eth(100)

	tokens, err := rc.BuyReturn(supply, balance, eth(1))
	require.NoError(t, err)

	newSupply := new(big.Int).Add(supply, tokens)
	newBalance := new(big.Int).Add(balance, eth(1))

	back, err := rc.SellReturn(newSupply, newBalance, tokens)
	require.NoError(t, err)

	// Approximation error may land slightly either side of the input, but
	// the sell can never mint value beyond a rounding hair.
	diff := new(big.Int).Sub(back, eth(1))
	limit := new(big.Int).Div(eth(1), big.NewInt(50)) // 2%
	assert.Equal(t, -1, diff.CmpAbs(limit), "round trip moved by %s wei", diff)
}
