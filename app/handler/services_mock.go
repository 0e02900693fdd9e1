package handler

import (
	"errors"
	"fmt"

	"bondcurve"
	m "bondcurve/internal/model"
)

/***************************** Trade ***********************************/

type TraderMock struct {
	result *bondcurve.TradeResult
	err    error
}

func (mock TraderMock) Buy(address string, ethAmount, minTokens float64) (*bondcurve.TradeResult, error) {
	fmt.Println("Buy Called")

	if mock.err != nil {
		return nil, mock.err
	}
	return mock.result, nil
}

func (mock TraderMock) Sell(address string, tokenAmount, minEth float64) (*bondcurve.TradeResult, error) {
	fmt.Println("Sell Called")

	if mock.err != nil {
		return nil, mock.err
	}
	return mock.result, nil
}

type TradeRetrieverMock struct {
	trades []m.Trade
	err    error
}

func (mock TradeRetrieverMock) RetrieveTrades(address string, limit int) ([]m.Trade, error) {
	fmt.Println("RetrieveTrades Called")

	if mock.err != nil {
		return nil, mock.err
	}

	var rtn []m.Trade
	for _, trade := range mock.trades {
		if address != "" && trade.Address != address {
			continue
		}
		rtn = append(rtn, trade)
	}
	return rtn, nil
}

type WalletRetrieverMock struct {
	wallet *m.Wallet
	err    error
}

func (mock WalletRetrieverMock) GetOrCreateWallet(address string) (*m.Wallet, error) {
	if mock.err != nil {
		return nil, mock.err
	}
	return mock.wallet, nil
}

/***************************** Curve ***********************************/

type QuoterMock struct {
	price float64
	state *m.CurveState
	err   error
}

func (mock QuoterMock) SpotPrice() (float64, error) {
	if mock.err != nil {
		return 0, mock.err
	}
	return mock.price, nil
}

func (mock QuoterMock) QuoteBuy(ethAmount float64) (float64, error) {
	if mock.err != nil {
		return 0, mock.err
	}
	if ethAmount <= 0 {
		return 0, errors.New("non-positive amount")
	}
	return ethAmount / mock.price, nil
}

func (mock QuoterMock) QuoteSell(tokenAmount float64) (float64, error) {
	if mock.err != nil {
		return 0, mock.err
	}
	if tokenAmount <= 0 {
		return 0, errors.New("non-positive amount")
	}
	return tokenAmount * mock.price, nil
}

func (mock QuoterMock) MarketCap() (float64, error) {
	return mock.state.Supply * mock.price, nil
}

func (mock QuoterMock) FullyDilutedValuation() (float64, error) {
	return 100_000_000 * mock.price, nil
}

func (mock QuoterMock) State() (*m.CurveState, error) {
	if mock.err != nil {
		return nil, mock.err
	}
	return mock.state, nil
}

type TickRetrieverMock struct {
	ticks []m.PriceTick
	err   error
}

func (mock TickRetrieverMock) RetrievePriceTicksDesc(limit int) ([]m.PriceTick, error) {
	if mock.err != nil {
		return nil, mock.err
	}
	if limit > 0 && limit < len(mock.ticks) {
		return mock.ticks[:limit], nil
	}
	return mock.ticks, nil
}

/***************************** Admin ***********************************/

type OwnerMock struct {
	paused   bool
	ratioPPM uint32
	err      error
}

func (mock *OwnerMock) Pause() error {
	if mock.err != nil {
		return mock.err
	}
	mock.paused = true
	return nil
}

func (mock *OwnerMock) Unpause() error {
	if mock.err != nil {
		return mock.err
	}
	mock.paused = false
	return nil
}

func (mock *OwnerMock) SetReserveRatio(ppm uint32) error {
	if mock.err != nil {
		return mock.err
	}
	mock.ratioPPM = ppm
	return nil
}

/***************************** User ***********************************/

type UserRetrieverMock struct {
	user *m.User
	err  error
}

func (mock UserRetrieverMock) User(userName string) (*m.User, error) {
	if mock.err != nil {
		return nil, mock.err
	}
	return mock.user, nil
}
