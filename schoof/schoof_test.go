package schoof_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/primefold/lenstra/schoof"
)

func TestPrimeList(t *testing.T) {

	// 4*sqrt(19) = 17.4..., so the product must reach 18: 2*3*5 = 30
	primes := schoof.PrimeList(big.NewInt(19))
	require.Equal(t, []uint64{2, 3, 5}, primes)

	// Larger field: the product of the returned primes exceeds 4*sqrt(q)
	q := new(big.Int).SetUint64(1<<31 - 1)
	primes = schoof.PrimeList(q)

	product := big.NewInt(1)
	for _, p := range primes {
		require.True(t, new(big.Int).SetUint64(p).ProbablyPrime(0))
		product.Mul(product, new(big.Int).SetUint64(p))
	}

	bound := new(big.Int).Lsh(q, 4) // (4*sqrt(q))^2
	require.True(t, new(big.Int).Mul(product, product).Cmp(bound) >= 0)
}

func TestIsQuadraticResidue(t *testing.T) {

	p := big.NewInt(19)

	require.True(t, schoof.IsQuadraticResidue(big.NewInt(6), p))
	require.True(t, schoof.IsQuadraticResidue(big.NewInt(17), p))
	require.False(t, schoof.IsQuadraticResidue(big.NewInt(2), p))
}

// refPsi is the textbook doubly-recursive definition, memoized, used as a
// reference for the table-driven evaluator.
func refPsi(m int, a, b, x, y *big.Int, memo map[int]*big.Int) *big.Int {

	if v, ok := memo[m]; ok {
		return new(big.Int).Set(v)
	}

	var v *big.Int
	switch m {
	case 0:
		v = big.NewInt(0)
	case 1:
		v = big.NewInt(1)
	case 2:
		v = new(big.Int).Add(y, y)
	case 3:
		x2 := new(big.Int).Mul(x, x)
		x4 := new(big.Int).Mul(x2, x2)
		v = new(big.Int).Mul(big.NewInt(3), x4)
		v.Add(v, new(big.Int).Mul(big.NewInt(6), new(big.Int).Mul(a, x2)))
		v.Add(v, new(big.Int).Mul(big.NewInt(12), new(big.Int).Mul(b, x)))
		v.Sub(v, new(big.Int).Mul(a, a))
	case 4:
		x2 := new(big.Int).Mul(x, x)
		x3 := new(big.Int).Mul(x2, x)
		x4 := new(big.Int).Mul(x3, x)
		x6 := new(big.Int).Mul(x4, x2)
		a2 := new(big.Int).Mul(a, a)
		v = new(big.Int).Set(x6)
		v.Add(v, new(big.Int).Mul(big.NewInt(5), new(big.Int).Mul(a, x4)))
		v.Add(v, new(big.Int).Mul(big.NewInt(20), new(big.Int).Mul(b, x3)))
		v.Sub(v, new(big.Int).Mul(big.NewInt(5), new(big.Int).Mul(a2, x2)))
		v.Sub(v, new(big.Int).Mul(big.NewInt(4), new(big.Int).Mul(new(big.Int).Mul(a, b), x)))
		v.Sub(v, new(big.Int).Mul(big.NewInt(8), new(big.Int).Mul(b, b)))
		v.Sub(v, new(big.Int).Mul(a2, a))
		v.Mul(v, new(big.Int).Mul(big.NewInt(4), y))
	default:
		h := m / 2
		if m%2 == 1 {
			l := refPsi(h, a, b, x, y, memo)
			l.Mul(l, refPsi(h, a, b, x, y, memo))
			l.Mul(l, refPsi(h, a, b, x, y, memo))
			l.Mul(l, refPsi(h+2, a, b, x, y, memo))
			r := refPsi(h+1, a, b, x, y, memo)
			r.Mul(r, refPsi(h+1, a, b, x, y, memo))
			r.Mul(r, refPsi(h+1, a, b, x, y, memo))
			r.Mul(r, refPsi(h-1, a, b, x, y, memo))
			v = l.Sub(l, r)
		} else {
			l := refPsi(h-1, a, b, x, y, memo)
			l.Mul(l, refPsi(h-1, a, b, x, y, memo))
			l.Mul(l, refPsi(h+2, a, b, x, y, memo))
			r := refPsi(h+1, a, b, x, y, memo)
			r.Mul(r, refPsi(h+1, a, b, x, y, memo))
			r.Mul(r, refPsi(h-2, a, b, x, y, memo))
			v = new(big.Int).Quo(refPsi(h, a, b, x, y, memo), new(big.Int).Add(y, y))
			v.Mul(v, l.Sub(l, r))
		}
	}

	memo[m] = new(big.Int).Set(v)
	return v
}

func TestEvaluator(t *testing.T) {

	a, b := big.NewInt(11), big.NewInt(5)
	x, y := big.NewInt(3), big.NewInt(7)

	e := schoof.NewEvaluator(a, b, x, y)

	t.Run("BaseCases", func(t *testing.T) {
		require.Equal(t, int64(0), e.Psi(0).Int64())
		require.Equal(t, int64(1), e.Psi(1).Int64())
		require.Equal(t, int64(14), e.Psi(2).Int64())
	})

	t.Run("MatchesRecursiveDefinition", func(t *testing.T) {
		memo := map[int]*big.Int{}
		for m := 0; m <= 40; m++ {
			require.Equal(t, 0, e.Psi(m).Cmp(refPsi(m, a, b, x, y, memo)), "order %d", m)
		}
	})

	t.Run("FM", func(t *testing.T) {
		// even orders are divided by y, odd orders pass through
		require.Equal(t, 0, e.FM(7).Cmp(e.Psi(7)))
		require.Equal(t, 0, e.FM(8).Cmp(new(big.Int).Quo(e.Psi(8), y)))
	})

	t.Run("ZeroOrdinate", func(t *testing.T) {
		require.Panics(t, func() {
			schoof.NewEvaluator(a, b, x, big.NewInt(0))
		})
	})
}
