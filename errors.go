package bondcurve

import "errors"

// Error kinds returned by the trade engine. All trade failures are
// synchronous and leave no partial mutation behind; callers may re-quote
// and retry with adjusted parameters, the engine never retries itself.
var (
	ErrInvalidAmount       = errors.New("trade amount must be positive")
	ErrInsufficientBalance = errors.New("insufficient balance for trade")
	ErrSupplyExceeded      = errors.New("buy would exceed max supply")
	ErrReserveInsufficient = errors.New("sell would drain reserve below zero")
	ErrSlippageExceeded    = errors.New("realized amount below minimum return")
	ErrDomain              = errors.New("degenerate curve state")
	ErrPaused              = errors.New("curve is paused")
)
