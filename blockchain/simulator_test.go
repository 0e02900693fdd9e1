package blockchain

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eth(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1e18))
}

func newSim(t *testing.T) *Simulator {
	s, err := NewSimulator(500_000, eth(1000), eth(100))
	require.NoError(t, err)
	return s
}

func TestSimulatorBuySell(t *testing.T) {
	s := newSim(t)

	supplyBefore, _ := s.TotalSupply()

	tokens, err := s.Buy(eth(1), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, tokens.Sign())

	supplyAfter, _ := s.TotalSupply()
	assert.Equal(t, new(big.Int).Add(supplyBefore, tokens), supplyAfter)

	balance, _ := s.ReserveBalance()
	assert.Equal(t, eth(101), balance)

	back, err := s.Sell(tokens, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, back.Sign())

	// Quoting before trading matches the committed amounts.
	quote, err := s.CalculateBuyReturn(eth(1))
	require.NoError(t, err)
	got, err := s.Buy(eth(1), nil)
	require.NoError(t, err)
	assert.Equal(t, quote, got)
}

func TestSimulatorMinReturn(t *testing.T) {
	s := newSim(t)

	quote, err := s.CalculateBuyReturn(eth(1))
	require.NoError(t, err)

	tooMuch := new(big.Int).Mul(quote, big.NewInt(2))
	_, err = s.Buy(eth(1), tooMuch)
	assert.ErrorIs(t, err, ErrSimSlippage)

	_, err = s.Buy(eth(1), quote)
	assert.NoError(t, err)
}

func TestSimulatorPause(t *testing.T) {
	s := newSim(t)

	require.NoError(t, s.Pause())
	_, err := s.Buy(eth(1), nil)
	assert.ErrorIs(t, err, ErrSimPaused)
	_, err = s.Sell(eth(1), nil)
	assert.ErrorIs(t, err, ErrSimPaused)

	require.NoError(t, s.Unpause())
	_, err = s.Buy(eth(1), nil)
	assert.NoError(t, err)
}

func TestSimulatorPrice(t *testing.T) {
	s := newSim(t)

	// balance * PPM / (supply * ratio) = 100/(1000*0.5) = 0.2 ETH per token
	price, err := s.CurrentPrice()
	require.NoError(t, err)
	assert.Equal(t, new(big.Int).Div(eth(1), big.NewInt(5)), price)

	require.NoError(t, s.UpdateReserveRatio(250_000))
	price, err = s.CurrentPrice()
	require.NoError(t, err)
	assert.Equal(t, new(big.Int).Div(eth(2), big.NewInt(5)), price)
}

func TestSimulatorValuation(t *testing.T) {
	s := newSim(t)

	// reserve holds marketCap * ratio: 100 ETH at ratio 0.5 implies 200 ETH
	mc, err := s.MarketCap()
	require.NoError(t, err)
	assert.Equal(t, eth(200), mc)

	fdv, err := s.FullyDilutedValuation()
	require.NoError(t, err)
	assert.Equal(t, mc, fdv)
}
