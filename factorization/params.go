package factorization

import (
	"math"
	"math/big"

	"github.com/google/go-cmp/cmp"

	"github.com/primefold/lenstra/utils/bignum"
)

const (
	// DefaultMaxIterations is the default number of random curves sampled
	// before giving up.
	DefaultMaxIterations = 10

	// DefaultMaxFactor is the default smoothness bound: the accumulated
	// point is multiplied by every k in [2, DefaultMaxFactor).
	DefaultMaxFactor = 1000
)

// Parameters configures a factorization run.
type Parameters struct {
	// MaxIterations bounds the number of curve-sampling attempts.
	MaxIterations int
	// MaxFactor is the exclusive upper bound on the smoothness scalars.
	MaxFactor uint64
}

// NewParameters returns the default parameters.
func NewParameters() Parameters {
	return Parameters{
		MaxIterations: DefaultMaxIterations,
		MaxFactor:     DefaultMaxFactor,
	}
}

// Equal returns true if the two sets of parameters are identical.
func (p Parameters) Equal(other Parameters) bool {
	return cmp.Equal(p, other)
}

// SuggestedSmoothnessBound returns a smoothness bound for factoring N,
// following the heuristic B = exp(sqrt(ln n * ln ln n) / 2). The returned
// value is never below [DefaultMaxFactor].
func SuggestedSmoothnessBound(N *big.Int) uint64 {

	// ln ln n is only meaningful once ln n > 1
	if N.BitLen() < 8 {
		return DefaultMaxFactor
	}

	prec := uint(N.BitLen() + 64)

	lnN := bignum.Log(bignum.NewFloat(N, prec))
	lnlnN := bignum.Log(lnN)

	x := new(big.Float).Mul(lnN, lnlnN)
	x.Sqrt(x)
	x.Quo(x, bignum.NewFloat(2, prec))

	b, _ := bignum.Exp(x).Uint64()

	if b > math.MaxInt64 {
		b = math.MaxInt64
	}
	if b < DefaultMaxFactor {
		b = DefaultMaxFactor
	}

	return b
}
