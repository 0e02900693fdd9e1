package handler

import (
	"bondcurve"
	m "bondcurve/internal/model"
)

type Trader interface {
	Buy(address string, ethAmount, minTokens float64) (*bondcurve.TradeResult, error)
	Sell(address string, tokenAmount, minEth float64) (*bondcurve.TradeResult, error)
}

type Quoter interface {
	SpotPrice() (float64, error)
	QuoteBuy(ethAmount float64) (float64, error)
	QuoteSell(tokenAmount float64) (float64, error)
	MarketCap() (float64, error)
	FullyDilutedValuation() (float64, error)
	State() (*m.CurveState, error)
}

type Owner interface {
	Pause() error
	Unpause() error
	SetReserveRatio(ppm uint32) error
}

type TradeRetriever interface {
	RetrieveTrades(address string, limit int) ([]m.Trade, error)
}

type TickRetriever interface {
	RetrievePriceTicksDesc(limit int) ([]m.PriceTick, error)
}

type WalletRetriever interface {
	GetOrCreateWallet(address string) (*m.Wallet, error)
}

type EventRetriever interface {
	Events() []*bondcurve.EnrolledEvent
}

type EventLauncher interface {
	LaunchEvent(id uint) error
}

type EventStatusChanger interface {
	SetEventStatus(id uint, active bool) error
}

type UserRetrierver interface {
	User(userName string) (*m.User, error)
}
