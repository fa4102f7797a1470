// Package bignum provides arbitrary precision arithmetic helpers on top of
// math/big, including the modular square root used to locate explicit curve
// points.
package bignum

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// NewInt allocates a new *big.Int.
// Accepted types are: string, uint, uint64, int64, int, *big.Float or *big.Int.
func NewInt(x interface{}) (y *big.Int) {

	y = new(big.Int)

	if x == nil {
		return
	}

	switch x := x.(type) {
	case string:
		y.SetString(x, 0)
	case uint:
		y.SetUint64(uint64(x))
	case uint64:
		y.SetUint64(x)
	case int64:
		y.SetInt64(x)
	case int:
		y.SetInt64(int64(x))
	case *big.Float:
		x.Int(y)
	case *big.Int:
		y.Set(x)
	default:
		panic(fmt.Sprintf("cannot NewInt: accepted types are string, uint, uint64, int, int64, *big.Float, *big.Int, but is %T", x))
	}

	return
}

// RandInt generates a random Int in [0, max-1].
func RandInt(reader io.Reader, max *big.Int) (n *big.Int) {
	var err error
	if n, err = rand.Int(reader, max); err != nil {
		panic("error: crypto/rand/bigint")
	}
	return
}

// Isqrt returns floor(sqrt(x)) for non-negative x.
func Isqrt(x *big.Int) (r *big.Int) {
	return new(big.Int).Sqrt(x)
}

// Mod returns x mod n reduced into [0, n).
func Mod(x, n *big.Int) (r *big.Int) {
	r = new(big.Int).Mod(x, n)
	if r.Sign() < 0 {
		r.Add(r, n)
	}
	return
}
