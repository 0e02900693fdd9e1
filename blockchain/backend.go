package blockchain

import "math/big"

// Backend is the contract-side counterpart of the curve: the same pricing
// rules expressed over wei-scale integers. The simulator satisfies it for
// local runs; CurveContract forwards to the deployed contract.
type Backend interface {
	CurrentPrice() (*big.Int, error)
	ReserveBalance() (*big.Int, error)
	TotalSupply() (*big.Int, error)
	MarketCap() (*big.Int, error)
	FullyDilutedValuation() (*big.Int, error)

	CalculateBuyReturn(ethAmount *big.Int) (*big.Int, error)
	CalculateSellReturn(tokenAmount *big.Int) (*big.Int, error)

	Buy(ethAmount, minReturn *big.Int) (*big.Int, error)
	Sell(tokenAmount, minReturn *big.Int) (*big.Int, error)

	Pause() error
	Unpause() error
	UpdateReserveRatio(ppm uint32) error
}
