package factorization

import (
	"errors"
	"math/big"

	"github.com/primefold/lenstra/utils/bignum"
	"github.com/primefold/lenstra/utils/sampling"
)

// ECM runs Lenstra's elliptic-curve factorization: it repeatedly samples
// random curves and starting points modulo N and searches each for a scalar
// multiple whose computation exercises a failing modular inversion.
type ECM struct {
	params Parameters
	prng   sampling.PRNG
}

// Result reports the outcome of a factorization run.
type Result struct {
	// Factor is a nontrivial divisor of N, nil if none was found.
	Factor *big.Int
	// Cofactor is N / Factor.
	Cofactor *big.Int
	// Iteration is the 1-based curve-sampling attempt that produced the
	// factor, 0 when the even-modulus short circuit fired.
	Iteration int
	// Found reports whether a factor was found within the iteration budget.
	Found bool
}

// NewECM returns an orchestrator with the given parameters. A nil prng
// defaults to a fresh [sampling.ThreadSafePRNG]; pass a [sampling.KeyedPRNG]
// for deterministic runs.
func NewECM(params Parameters, prng sampling.PRNG) *ECM {
	if prng == nil {
		prng, _ = sampling.NewPRNG()
	}
	return &ECM{params: params, prng: prng}
}

// Factor returns a nontrivial factor p of N with 1 < p < N, or false if the
// iteration budget was exhausted without finding one. Exhaustion is the
// expected outcome for prime N.
func (ecm *ECM) Factor(N *big.Int) (factor *big.Int, found bool) {
	res := ecm.Search(N)
	return res.Factor, res.Found
}

// Search runs the full retry loop and reports the detailed outcome.
func (ecm *ECM) Search(N *big.Int) Result {

	// The group law assumes odd modulus arithmetic; even N splits right away.
	if N.Bit(0) == 0 && N.Cmp(big.NewInt(2)) > 0 {
		two := big.NewInt(2)
		return Result{Factor: two, Cofactor: new(big.Int).Quo(N, two), Found: true}
	}

	// Random coordinates are drawn from [0, isqrt(N)], keeping the curve
	// coefficients small relative to N.
	bound := bignum.Isqrt(N)
	bound.Add(bound, big.NewInt(1))

	for i := 1; i <= ecm.params.MaxIterations; i++ {
		if factor, found := ecm.attempt(N, bound); found {
			return Result{
				Factor:    factor,
				Cofactor:  new(big.Int).Quo(N, factor),
				Iteration: i,
				Found:     true,
			}
		}
	}

	return Result{}
}

// attempt samples one random curve with a known point on it and runs the
// smooth-multiple search. A degenerate sample consumes the attempt.
func (ecm *ECM) attempt(N, bound *big.Int) (factor *big.Int, found bool) {

	x := sampling.RandIntFrom(ecm.prng, bound)
	y := sampling.RandIntFrom(ecm.prng, bound)
	a := sampling.RandIntFrom(ecm.prng, bound)

	// b = y^2 - x^3 - a*x mod N, so that (x, y) lies on the curve by
	// construction.
	b := new(big.Int).Mul(y, y)
	b.Sub(b, new(big.Int).Mul(new(big.Int).Mul(x, x), x))
	b.Sub(b, new(big.Int).Mul(a, x))

	w, err := NewWeierstrass(a, b, N)
	if err != nil {
		return nil, false
	}

	return searchFactor(w.NewPoint(x, y), ecm.params.MaxFactor)
}

// searchFactor multiplies the accumulated point by k = 2, 3, ... < maxFactor,
// computing k!*start incrementally, until the group law signals a failing
// inversion. The gcd carried by the failure is reduced once more against N;
// it is accepted only if it lies strictly between 1 and N.
func searchFactor(start Point, maxFactor uint64) (factor *big.Int, found bool) {

	N := start.curve.N()

	acc := start
	for k := uint64(2); k < maxFactor; k++ {

		next, err := acc.ScalarMul(k)
		if err != nil {

			var nie *NonInvertibleError
			if !errors.As(err, &nie) {
				// Accumulator and start share a curve, so only
				// inversion failures can reach this point.
				panic(err)
			}

			g := new(big.Int).GCD(nil, nil, nie.GCD, N)
			if g.Cmp(oneInt) > 0 && g.Cmp(N) < 0 {
				return g, true
			}

			// gcd of 1 or N: this curve does not split N.
			return nil, false
		}

		if next.IsInfinity() {
			// The subgroup is exhausted; every further multiple stays
			// at the identity and no inversion can fail anymore.
			return nil, false
		}

		acc = next
	}

	return nil, false
}
