package bondcurve

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"bondcurve/internal/curve"
	m "bondcurve/internal/model"

	"github.com/rs/zerolog"
)

// CurveEngine applies buys and sells against the bonding curve. It is the
// only mutator of curve state and wallets; the validate-to-commit sequence
// of a trade runs as one critical section, so a second trade always quotes
// against the first one's fully committed state.
type CurveEngine struct {
	stg            Storage
	mir            mirror
	ch             chan<- string
	enrolledEvents []*EnrolledEvent
	mu             sync.Mutex
	lg             zerolog.Logger
}

type CurveEngineConfig struct {
	Storage Storage
	Mirror  mirror // optional on-chain twin, nil disables the parity event
	Channel chan<- string
}

func NewCurveEngine(conf CurveEngineConfig) *CurveEngine {

	e := &CurveEngine{
		stg: conf.Storage,
		mir: conf.Mirror,
		ch:  conf.Channel,
		lg:  zerolog.New(os.Stdout).With().Str("Module", "CurveEngine").Timestamp().Logger(),
	}
	e.registerEvents()
	return e
}

// TradeResult is what a committed trade hands back to the caller.
type TradeResult struct {
	Received float64      `json:"received"`
	Price    float64      `json:"price"` // spot price after the trade
	State    m.CurveState `json:"state"`
}

// Buy spends ethAmount from the wallet's balance and mints tokens at the
// pre-trade spot price. minTokens > 0 enables the slippage guard: the whole
// trade fails if fewer tokens would be received.
func (e *CurveEngine) Buy(address string, ethAmount, minTokens float64) (*TradeResult, error) {

	if ethAmount <= 0 {
		return nil, fmt.Errorf("%w: eth amount %v", ErrInvalidAmount, ethAmount)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	c, params, state, err := e.loadCurve()
	if err != nil {
		return nil, err
	}
	if state.Paused {
		return nil, ErrPaused
	}

	w, err := e.stg.GetOrCreateWallet(address)
	if err != nil {
		return nil, fmt.Errorf("GetOrCreateWallet failed. %w", err)
	}
	if w.EthBalance < ethAmount {
		return nil, fmt.Errorf("%w: wallet %s holds %v ETH, needs %v", ErrInsufficientBalance, address, w.EthBalance, ethAmount)
	}

	tokens, err := c.TokensOut(ethAmount, state.Supply)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDomain, err)
	}

	// A buy landing exactly on maxSupply succeeds; anything past it fails.
	// The slack absorbs float rounding of quotes constructed to hit the cap.
	slack := params.MaxSupply * 1e-12
	if over := state.Supply + tokens - params.MaxSupply; over > slack {
		return nil, fmt.Errorf("%w: supply %v + %v tokens > cap %v", ErrSupplyExceeded, state.Supply, tokens, params.MaxSupply)
	} else if over > 0 {
		tokens = params.MaxSupply - state.Supply
	}

	if minTokens > 0 && tokens < minTokens {
		return nil, fmt.Errorf("%w: %v tokens < minimum %v", ErrSlippageExceeded, tokens, minTokens)
	}

	state.Supply += tokens
	state.Reserve += ethAmount
	w.EthBalance -= ethAmount
	w.TokenBalance += tokens

	price := c.Spot(state.Supply)
	trade := &m.Trade{
		Address:     address,
		Side:        m.Buy,
		EthAmount:   ethAmount,
		TokenAmount: tokens,
		Price:       price,
	}

	if err := e.stg.CommitTrade(state, w, trade); err != nil {
		return nil, fmt.Errorf("CommitTrade failed. %w", err)
	}

	e.lg.Info().Str("address", address).Float64("eth", ethAmount).Float64("tokens", tokens).Float64("price", price).Msg("Buy committed")
	return &TradeResult{Received: tokens, Price: price, State: *state}, nil
}

// Sell burns tokenAmount from the wallet and releases ETH valued at the
// post-sale spot price. minEth > 0 enables the slippage guard.
func (e *CurveEngine) Sell(address string, tokenAmount, minEth float64) (*TradeResult, error) {

	if tokenAmount <= 0 {
		return nil, fmt.Errorf("%w: token amount %v", ErrInvalidAmount, tokenAmount)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	c, _, state, err := e.loadCurve()
	if err != nil {
		return nil, err
	}
	if state.Paused {
		return nil, ErrPaused
	}

	w, err := e.stg.GetOrCreateWallet(address)
	if err != nil {
		return nil, fmt.Errorf("GetOrCreateWallet failed. %w", err)
	}
	if w.TokenBalance < tokenAmount {
		return nil, fmt.Errorf("%w: wallet %s holds %v tokens, needs %v", ErrInsufficientBalance, address, w.TokenBalance, tokenAmount)
	}

	ethOut, err := c.QuoteSell(tokenAmount, state.Supply)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDomain, err)
	}
	if state.Reserve-ethOut < 0 {
		return nil, fmt.Errorf("%w: reserve %v, sell returns %v", ErrReserveInsufficient, state.Reserve, ethOut)
	}

	if minEth > 0 && ethOut < minEth {
		return nil, fmt.Errorf("%w: %v ETH < minimum %v", ErrSlippageExceeded, ethOut, minEth)
	}

	state.Supply -= tokenAmount
	state.Reserve -= ethOut
	w.TokenBalance -= tokenAmount
	w.EthBalance += ethOut

	price := c.Spot(state.Supply)
	trade := &m.Trade{
		Address:     address,
		Side:        m.Sell,
		EthAmount:   ethOut,
		TokenAmount: tokenAmount,
		Price:       price,
	}

	if err := e.stg.CommitTrade(state, w, trade); err != nil {
		return nil, fmt.Errorf("CommitTrade failed. %w", err)
	}

	e.lg.Info().Str("address", address).Float64("tokens", tokenAmount).Float64("eth", ethOut).Float64("price", price).Msg("Sell committed")
	return &TradeResult{Received: ethOut, Price: price, State: *state}, nil
}

/**********************************************************************************************************************
******************************************** Read-only operations *****************************************************
**********************************************************************************************************************/

func (e *CurveEngine) SpotPrice() (float64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	c, _, state, err := e.loadCurve()
	if err != nil {
		return 0, err
	}
	return c.Spot(state.Supply), nil
}

// QuoteBuy returns the tokens a buy of ethAmount would receive at the
// current spot price, saturated to the remaining supply.
func (e *CurveEngine) QuoteBuy(ethAmount float64) (float64, error) {
	if ethAmount <= 0 {
		return 0, fmt.Errorf("%w: eth amount %v", ErrInvalidAmount, ethAmount)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	c, _, state, err := e.loadCurve()
	if err != nil {
		return 0, err
	}
	tokens, err := c.QuoteBuy(ethAmount, state.Supply)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDomain, err)
	}
	return tokens, nil
}

// QuoteSell returns the ETH a sell of tokenAmount would release, valued at
// the post-sale spot price.
func (e *CurveEngine) QuoteSell(tokenAmount float64) (float64, error) {
	if tokenAmount <= 0 {
		return 0, fmt.Errorf("%w: token amount %v", ErrInvalidAmount, tokenAmount)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	c, _, state, err := e.loadCurve()
	if err != nil {
		return 0, err
	}
	eth, err := c.QuoteSell(tokenAmount, state.Supply)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDomain, err)
	}
	return eth, nil
}

func (e *CurveEngine) MarketCap() (float64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	c, _, state, err := e.loadCurve()
	if err != nil {
		return 0, err
	}
	return c.MarketCap(state.Supply), nil
}

func (e *CurveEngine) FullyDilutedValuation() (float64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	c, _, state, err := e.loadCurve()
	if err != nil {
		return 0, err
	}
	return c.FullyDilutedValuation(state.Supply), nil
}

func (e *CurveEngine) State() (*m.CurveState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	state, err := e.stg.RetrieveCurveState()
	if err != nil {
		return nil, fmt.Errorf("RetrieveCurveState failed. %w", err)
	}
	return state, nil
}

/**********************************************************************************************************************
********************************************** Owner operations *******************************************************
**********************************************************************************************************************/

func (e *CurveEngine) Pause() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.lg.Info().Msg("Pausing curve")
	return e.stg.UpdateCurvePaused(true)
}

func (e *CurveEngine) Unpause() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.lg.Info().Msg("Unpausing curve")
	return e.stg.UpdateCurvePaused(false)
}

// SetReserveRatio adjusts the reserve ratio of the contract-parity formula.
// The polynomial pricing of the in-process engine is unaffected.
func (e *CurveEngine) SetReserveRatio(ppm uint32) error {
	if _, err := curve.NewReserveCurve(ppm); err != nil {
		return fmt.Errorf("%w: %v", ErrDomain, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.lg.Info().Uint32("ppm", ppm).Msg("Updating reserve ratio")
	return e.stg.UpdateReserveRatio(ppm)
}

/**********************************************************************************************************************
*********************************************Inner Utility Function***************************************************
**********************************************************************************************************************/

func (e *CurveEngine) loadCurve() (curve.Curve, *m.CurveParams, *m.CurveState, error) {

	params, err := e.stg.RetrieveCurveParams()
	if err != nil {
		return curve.Curve{}, nil, nil, fmt.Errorf("RetrieveCurveParams failed. %w", err)
	}
	state, err := e.stg.RetrieveCurveState()
	if err != nil {
		return curve.Curve{}, nil, nil, fmt.Errorf("RetrieveCurveState failed. %w", err)
	}

	c, err := curve.New(params.Exponent, params.MaxSupply, params.MaxPrice)
	if err != nil {
		return curve.Curve{}, nil, nil, fmt.Errorf("%w: %v", ErrDomain, err)
	}
	return c, params, state, nil
}

// IsDomainErr reports whether err is one of the curve package's degenerate
// conditions, for callers that only see wrapped errors.
func IsDomainErr(err error) bool {
	return errors.Is(err, ErrDomain) || errors.Is(err, curve.ErrDegenerate)
}
