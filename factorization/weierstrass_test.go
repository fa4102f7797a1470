package factorization_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/primefold/lenstra/factorization"
	"github.com/primefold/lenstra/utils/bignum"
	"github.com/primefold/lenstra/utils/sampling"
)

var testKey = []byte{0x2b, 0x7e, 0x15, 0x16, 0x28, 0xae, 0xd2, 0xa6, 0xab, 0xf7, 0x15, 0x88, 0x09, 0xcf, 0x4f, 0x3c,
	0x76, 0x2e, 0x71, 0x60, 0xf3, 0x8b, 0x4d, 0xa5, 0x6a, 0x78, 0x4d, 0x90, 0x45, 0x19, 0x0c, 0xfe}

func TestNewWeierstrass(t *testing.T) {

	t.Run("Valid", func(t *testing.T) {
		w, err := factorization.NewWeierstrass(big.NewInt(2), big.NewInt(2), big.NewInt(17))
		require.NoError(t, err)
		require.Equal(t, int64(17), w.N().Int64())
	})

	t.Run("Degenerate", func(t *testing.T) {
		// 4a^3 + 27b^2 = 0 for (a, b) = (0, 0) and (-3, 2) over any modulus
		_, err := factorization.NewWeierstrass(big.NewInt(0), big.NewInt(0), big.NewInt(17))
		require.ErrorIs(t, err, factorization.ErrDegenerateCurve)

		_, err = factorization.NewWeierstrass(big.NewInt(-3), big.NewInt(2), big.NewInt(8051))
		require.ErrorIs(t, err, factorization.ErrDegenerateCurve)
	})

	t.Run("Equal", func(t *testing.T) {
		w1, err := factorization.NewWeierstrass(big.NewInt(2), big.NewInt(2), big.NewInt(17))
		require.NoError(t, err)
		w2, err := factorization.NewWeierstrass(big.NewInt(19), big.NewInt(2), big.NewInt(17))
		require.NoError(t, err)
		w3, err := factorization.NewWeierstrass(big.NewInt(2), big.NewInt(3), big.NewInt(17))
		require.NoError(t, err)
		require.True(t, w1.Equal(w2)) // 19 = 2 mod 17
		require.False(t, w1.Equal(w3))
	})
}

// Known values from the curve y^2 = x^3 + 2x + 2 mod 17, on which
// P = (5, 1) generates a subgroup of order 19.
func TestGroupLaw(t *testing.T) {

	w, err := factorization.NewWeierstrass(big.NewInt(2), big.NewInt(2), big.NewInt(17))
	require.NoError(t, err)

	P := w.NewPoint(big.NewInt(5), big.NewInt(1))
	require.True(t, w.Contains(P))

	t.Run("Doubling", func(t *testing.T) {
		P2, err := P.Add(P)
		require.NoError(t, err)
		require.True(t, P2.Equal(w.NewPoint(big.NewInt(6), big.NewInt(3))))
		require.True(t, w.Contains(P2))
	})

	t.Run("Addition", func(t *testing.T) {
		P2, err := P.Add(P)
		require.NoError(t, err)
		P3, err := P.Add(P2)
		require.NoError(t, err)
		require.True(t, P3.Equal(w.NewPoint(big.NewInt(10), big.NewInt(6))))
	})

	t.Run("Identity", func(t *testing.T) {
		O := w.Infinity()
		require.True(t, O.IsInfinity())

		R, err := P.Add(O)
		require.NoError(t, err)
		require.True(t, R.Equal(P))

		R, err = O.Add(P)
		require.NoError(t, err)
		require.True(t, R.Equal(P))

		R, err = O.Add(O)
		require.NoError(t, err)
		require.True(t, R.IsInfinity())
	})

	t.Run("Inverse", func(t *testing.T) {
		// -P = (5, 16)
		negP := w.NewPoint(big.NewInt(5), big.NewInt(16))
		R, err := P.Add(negP)
		require.NoError(t, err)
		require.True(t, R.IsInfinity())
	})

	t.Run("Order", func(t *testing.T) {
		// 19*P = O and 18*P = -P
		R, err := P.ScalarMul(19)
		require.NoError(t, err)
		require.True(t, R.IsInfinity())

		R, err = P.ScalarMul(18)
		require.NoError(t, err)
		require.True(t, R.Equal(w.NewPoint(big.NewInt(5), big.NewInt(16))))
	})

	t.Run("Commutativity", func(t *testing.T) {
		Q, err := P.ScalarMul(7)
		require.NoError(t, err)

		R1, err1 := P.Add(Q)
		R2, err2 := Q.Add(P)
		require.Equal(t, err1 == nil, err2 == nil)
		if err1 == nil {
			require.True(t, R1.Equal(R2))
		}
	})

	t.Run("CurveMismatch", func(t *testing.T) {
		other, err := factorization.NewWeierstrass(big.NewInt(2), big.NewInt(3), big.NewInt(17))
		require.NoError(t, err)
		_, err = P.Add(other.NewPoint(big.NewInt(5), big.NewInt(1)))
		require.ErrorIs(t, err, factorization.ErrCurveMismatch)
	})
}

// Over a prime modulus Z/pZ is a field, so no inversion can ever fail:
// scalar multiplication must be fully defined for every scalar.
func TestPrimeModulusNeverFails(t *testing.T) {

	prng, err := sampling.NewKeyedPRNG(testKey)
	require.NoError(t, err)

	p := big.NewInt(1009)

	for i := 0; i < 10; i++ {

		w, start := randomCurve(t, prng, p)

		acc := start
		for k := uint64(2); k < 200; k++ {
			next, err := acc.ScalarMul(k)
			require.NoError(t, err)
			require.True(t, w.Contains(next))
			if next.IsInfinity() {
				break
			}
			acc = next
		}
	}
}

// Deriving b = y^2 - x^3 - a*x mod n puts (x, y) on the curve by
// construction, for composite moduli as well.
func TestDerivedPointMembership(t *testing.T) {

	prng, err := sampling.NewKeyedPRNG(testKey)
	require.NoError(t, err)

	n := big.NewInt(8051)

	for i := 0; i < 50; i++ {
		w, start := randomCurve(t, prng, n)
		require.True(t, w.Contains(start))
	}
}

// randomCurve samples (x, y, a) in [0, isqrt(n)] and derives b so that
// (x, y) lies on the resulting curve, resampling degenerate parameters.
func randomCurve(t *testing.T, prng sampling.PRNG, n *big.Int) (*factorization.Weierstrass, factorization.Point) {
	t.Helper()

	bound := bignum.Isqrt(n)
	bound.Add(bound, big.NewInt(1))

	for {
		x := sampling.RandIntFrom(prng, bound)
		y := sampling.RandIntFrom(prng, bound)
		a := sampling.RandIntFrom(prng, bound)

		b := new(big.Int).Mul(y, y)
		b.Sub(b, new(big.Int).Mul(new(big.Int).Mul(x, x), x))
		b.Sub(b, new(big.Int).Mul(a, x))

		w, err := factorization.NewWeierstrass(a, b, n)
		if err != nil {
			continue
		}

		return w, w.NewPoint(x, y)
	}
}
