package db

import (
	"testing"

	m "bondcurve/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *Storage {
	stg, err := NewStorage(NewSqliteConfig("file::memory:"), nil, DefaultSeed())
	require.NoError(t, err)
	return stg
}

func TestSeededRows(t *testing.T) {
	stg := newTestStorage(t)

	params, err := stg.RetrieveCurveParams()
	require.NoError(t, err)
	assert.Equal(t, 1.5, params.Exponent)
	assert.Equal(t, 100_000_000.0, params.MaxSupply)
	assert.Equal(t, uint32(500_000), params.ReserveRatioPPM)

	state, err := stg.RetrieveCurveState()
	require.NoError(t, err)
	assert.Equal(t, 10_000_000.0, state.Supply)
	assert.Equal(t, 0.0, state.Reserve)
	assert.False(t, state.Paused)
}

func TestWalletSeeding(t *testing.T) {
	stg := newTestStorage(t)

	w, err := stg.GetOrCreateWallet("0xabc")
	require.NoError(t, err)
	assert.Equal(t, 10.0, w.EthBalance)
	assert.Equal(t, 0.0, w.TokenBalance)

	// Second call returns the same row, not a fresh seed.
	w.EthBalance = 3
	require.NoError(t, stg.db.Select("eth_balance").Updates(w).Error)

	again, err := stg.GetOrCreateWallet("0xabc")
	require.NoError(t, err)
	assert.Equal(t, w.ID, again.ID)
	assert.Equal(t, 3.0, again.EthBalance)
}

func TestCommitTrade(t *testing.T) {
	stg := newTestStorage(t)

	w, err := stg.GetOrCreateWallet("0xabc")
	require.NoError(t, err)
	state, err := stg.RetrieveCurveState()
	require.NoError(t, err)

	state.Supply += 31622.7
	state.Reserve += 1
	w.EthBalance -= 1
	w.TokenBalance += 31622.7

	err = stg.CommitTrade(state, w, &m.Trade{
		Address:     "0xabc",
		Side:        m.Buy,
		EthAmount:   1,
		TokenAmount: 31622.7,
		Price:       0.0000317,
	})
	require.NoError(t, err)

	gotState, err := stg.RetrieveCurveState()
	require.NoError(t, err)
	assert.Equal(t, state.Supply, gotState.Supply)
	assert.Equal(t, 1.0, gotState.Reserve)

	gotWallet, err := stg.GetOrCreateWallet("0xabc")
	require.NoError(t, err)
	assert.Equal(t, 9.0, gotWallet.EthBalance)

	trades, err := stg.RetrieveTrades("0xabc", 0)
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.Equal(t, m.Buy, trades[0].Side)
	assert.Equal(t, 1.0, trades[0].EthAmount)
}

func TestUpdateCurvePaused(t *testing.T) {
	stg := newTestStorage(t)

	require.NoError(t, stg.UpdateCurvePaused(true))
	state, err := stg.RetrieveCurveState()
	require.NoError(t, err)
	assert.True(t, state.Paused)

	require.NoError(t, stg.UpdateCurvePaused(false))
	state, err = stg.RetrieveCurveState()
	require.NoError(t, err)
	assert.False(t, state.Paused)
}

func TestUpdateReserveRatio(t *testing.T) {
	stg := newTestStorage(t)

	require.NoError(t, stg.UpdateReserveRatio(250_000))
	params, err := stg.RetrieveCurveParams()
	require.NoError(t, err)
	assert.Equal(t, uint32(250_000), params.ReserveRatioPPM)
}

func TestPriceTicks(t *testing.T) {
	stg := newTestStorage(t)

	for i := 0; i < 3; i++ {
		err := stg.SavePriceTick(&m.PriceTick{Supply: float64(i), Price: float64(i) / 1000, Reserve: 0})
		require.NoError(t, err)
	}

	ticks, err := stg.RetrievePriceTicksDesc(2)
	require.NoError(t, err)
	assert.Len(t, ticks, 2)
}

func TestEventIsActive(t *testing.T) {
	stg := newTestStorage(t)

	// Unknown event rows are created active.
	assert.True(t, stg.RetreiveEventIsActive(1))

	require.NoError(t, stg.UpdateEventIsActive(1, false))
	assert.False(t, stg.RetreiveEventIsActive(1))
}
