package bondcurve

import "math/big"

// mirror is the read side of the on-chain twin of this curve. The parity
// event compares it against the local engine; everything else runs purely
// in-process.
type mirror interface {
	CurrentPrice() (*big.Int, error)
	ReserveBalance() (*big.Int, error)
}
