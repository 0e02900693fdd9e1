package blockchain

import (
	"errors"
	"fmt"
	"math/big"
	"sync"

	"bondcurve/internal/curve"
)

var (
	ErrSimPaused   = errors.New("simulated contract is paused")
	ErrSimSlippage = errors.New("return below minReturn")
)

// Simulator runs the contract's reserve-ratio pricing in memory. It stands
// in for the deployed contract on local and test runs.
type Simulator struct {
	rc      curve.ReserveCurve
	supply  *big.Int
	balance *big.Int
	paused  bool
	mu      sync.Mutex
}

func NewSimulator(ratioPPM uint32, supply, balance *big.Int) (*Simulator, error) {
	rc, err := curve.NewReserveCurve(ratioPPM)
	if err != nil {
		return nil, err
	}
	if supply == nil {
		supply = big.NewInt(0)
	}
	if balance == nil {
		balance = big.NewInt(0)
	}
	return &Simulator{
		rc:      rc,
		supply:  new(big.Int).Set(supply),
		balance: new(big.Int).Set(balance),
	}, nil
}

// CurrentPrice reports balance * PPM / (supply * ratio) in wei per token.
func (s *Simulator) CurrentPrice() (*big.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.supply.Sign() == 0 {
		return big.NewInt(0), nil
	}

	n := new(big.Int).Mul(s.balance, big.NewInt(curve.PPM))
	n.Mul(n, big.NewInt(1e18))
	d := new(big.Int).Mul(s.supply, big.NewInt(int64(s.rc.RatioPPM())))
	return n.Div(n, d), nil
}

func (s *Simulator) ReserveBalance() (*big.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return new(big.Int).Set(s.balance), nil
}

func (s *Simulator) TotalSupply() (*big.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return new(big.Int).Set(s.supply), nil
}

// MarketCap uses the reserve identity of the curve: the reserve always holds
// marketCap * ratio, so marketCap = balance * PPM / ratio.
func (s *Simulator) MarketCap() (*big.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := new(big.Int).Mul(s.balance, big.NewInt(curve.PPM))
	return n.Div(n, big.NewInt(int64(s.rc.RatioPPM()))), nil
}

// FullyDilutedValuation equals MarketCap: the reserve-ratio form of the
// curve carries no supply cap to dilute against.
func (s *Simulator) FullyDilutedValuation() (*big.Int, error) {
	return s.MarketCap()
}

func (s *Simulator) CalculateBuyReturn(ethAmount *big.Int) (*big.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rc.BuyReturn(s.supply, s.balance, ethAmount)
}

func (s *Simulator) CalculateSellReturn(tokenAmount *big.Int) (*big.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rc.SellReturn(s.supply, s.balance, tokenAmount)
}

func (s *Simulator) Buy(ethAmount, minReturn *big.Int) (*big.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.paused {
		return nil, ErrSimPaused
	}

	tokens, err := s.rc.BuyReturn(s.supply, s.balance, ethAmount)
	if err != nil {
		return nil, err
	}
	if minReturn != nil && tokens.Cmp(minReturn) < 0 {
		return nil, fmt.Errorf("%w: %s < %s", ErrSimSlippage, tokens, minReturn)
	}

	s.supply.Add(s.supply, tokens)
	s.balance.Add(s.balance, ethAmount)
	return tokens, nil
}

func (s *Simulator) Sell(tokenAmount, minReturn *big.Int) (*big.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.paused {
		return nil, ErrSimPaused
	}

	eth, err := s.rc.SellReturn(s.supply, s.balance, tokenAmount)
	if err != nil {
		return nil, err
	}
	if minReturn != nil && eth.Cmp(minReturn) < 0 {
		return nil, fmt.Errorf("%w: %s < %s", ErrSimSlippage, eth, minReturn)
	}

	s.supply.Sub(s.supply, tokenAmount)
	s.balance.Sub(s.balance, eth)
	return eth, nil
}

func (s *Simulator) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = true
	return nil
}

func (s *Simulator) Unpause() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = false
	return nil
}

func (s *Simulator) UpdateReserveRatio(ppm uint32) error {
	rc, err := curve.NewReserveCurve(ppm)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.rc = rc
	return nil
}
