package ethsig

import (
	"sync"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/holiman/uint256"
)

// Curve is the shared handle for secp256k1 signing, recovery and key
// derivation. It is created once on first use and is read-only afterwards,
// so a single value may be used from any number of goroutines.
type Curve struct {
	order     *uint256.Int // n
	halfOrder *uint256.Int // n / 2
}

var defaultCurve = sync.OnceValue(func() *Curve {
	order := uint256.MustFromBig(secp256k1.Params().N)
	return &Curve{
		order:     order,
		halfOrder: new(uint256.Int).Rsh(order, 1),
	}
})

// DefaultCurve returns the process-wide curve handle.
func DefaultCurve() *Curve {
	return defaultCurve()
}

// Order returns a copy of the group order n.
func (c *Curve) Order() *uint256.Int {
	return new(uint256.Int).Set(c.order)
}

// HalfOrder returns a copy of n/2, the largest canonical s value.
func (c *Curve) HalfOrder() *uint256.Int {
	return new(uint256.Int).Set(c.halfOrder)
}

