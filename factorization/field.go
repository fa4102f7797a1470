// Package factorization implements Lenstra's elliptic-curve factorization
// method (ECM): elliptic-curve group-law arithmetic modulo a composite N,
// where a failing modular inversion reveals a nontrivial divisor of N.
package factorization

import (
	"fmt"
	"math/big"
)

// NonInvertibleError reports that a value has no multiplicative inverse
// modulo N. It carries gcd(value, N), which is the payload the algorithm
// exists to produce: whenever the gcd lies strictly between 1 and N it is
// a nontrivial divisor of N.
type NonInvertibleError struct {
	GCD *big.Int
}

func (e *NonInvertibleError) Error() string {
	return fmt.Sprintf("value is not invertible: gcd with modulus is %s", e.GCD.String())
}

// Field implements modular arithmetic over a fixed modulus N.
type Field struct {
	N *big.Int
}

// NewField instantiates modular arithmetic mod N. The modulus must be positive.
func NewField(N *big.Int) Field {
	if N.Sign() <= 0 {
		panic("cannot NewField: modulus must be positive")
	}
	return Field{N: new(big.Int).Set(N)}
}

// Reduce returns v mod N in [0, N).
func (f Field) Reduce(v *big.Int) (r *big.Int) {
	r = new(big.Int).Mod(v, f.N)
	if r.Sign() < 0 {
		r.Add(r, f.N)
	}
	return
}

// Invert returns the multiplicative inverse of v mod N. When gcd(v, N) != 1
// no inverse exists and a [NonInvertibleError] carrying that gcd is returned.
func (f Field) Invert(v *big.Int) (*big.Int, error) {

	v = f.Reduce(v)

	g, x := new(big.Int), new(big.Int)
	g.GCD(x, nil, v, f.N)

	if g.Cmp(oneInt) != 0 {
		return nil, &NonInvertibleError{GCD: g}
	}

	return f.Reduce(x), nil
}

var oneInt = big.NewInt(1)
