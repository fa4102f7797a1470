// Package schoof provides building blocks for Schoof-style point counting on
// elliptic curves: a division-polynomial evaluator and a prime-list
// generator. It is scaffolding for future work and is not wired into the
// factorization pipeline.
package schoof

import (
	"math/big"

	"github.com/primefold/lenstra/utils/bignum"
)

// PrimeList returns the smallest primes 2, 3, 5, ... whose product exceeds
// 4*sqrt(q), the Hasse-bound window width for a curve over F_q.
func PrimeList(q *big.Int) (primes []uint64) {

	// ceil(4*sqrt(q)) = ceil(sqrt(16q))
	limit := new(big.Int).Lsh(q, 4)
	root := bignum.Isqrt(limit)
	if new(big.Int).Mul(root, root).Cmp(limit) < 0 {
		root.Add(root, big.NewInt(1))
	}

	product := big.NewInt(1)
	p := uint64(2)
	for product.Cmp(root) < 0 {
		primes = append(primes, p)
		product.Mul(product, new(big.Int).SetUint64(p))
		p = nextPrime(p + 1)
	}

	return
}

// nextPrime returns the smallest prime >= base.
func nextPrime(base uint64) uint64 {
	for !new(big.Int).SetUint64(base).ProbablyPrime(0) {
		base++
	}
	return base
}

// IsQuadraticResidue returns true if k is a nonzero square mod the odd
// prime p.
func IsQuadraticResidue(k, p *big.Int) bool {
	return bignum.Legendre(k, p) == 1
}

// Evaluator computes values of the division polynomials psi_m of the curve
// y^2 = x^3 + ax + b at a fixed point (x, y), over the plain integers. The
// values are built bottom-up in a table indexed by order, replacing the
// doubly-recursive definition with memoization that would otherwise grow
// the call stack with the order.
type Evaluator struct {
	a, b, x, y *big.Int

	table []*big.Int
}

// NewEvaluator returns an evaluator for the curve parameters (a, b) at the
// point (x, y). The ordinate y must be non-zero, as the even-order
// polynomials are divided by 2y.
func NewEvaluator(a, b, x, y *big.Int) *Evaluator {

	if y.Sign() == 0 {
		panic("cannot NewEvaluator: y must be non-zero")
	}

	e := &Evaluator{
		a: new(big.Int).Set(a),
		b: new(big.Int).Set(b),
		x: new(big.Int).Set(x),
		y: new(big.Int).Set(y),
	}

	e.table = e.seedTable()

	return e
}

// Psi returns psi_m(x, y).
func (e *Evaluator) Psi(m int) *big.Int {

	if m < 0 {
		panic("cannot Psi: order must be non-negative")
	}

	e.extend(m)

	return new(big.Int).Set(e.table[m])
}

// FM returns the division-polynomial value with the common factor y removed
// from even orders: psi_m / y for even m, psi_m otherwise.
func (e *Evaluator) FM(m int) *big.Int {
	psi := e.Psi(m)
	if m%2 == 0 {
		return psi.Quo(psi, e.y)
	}
	return psi
}

// seedTable evaluates the closed forms of psi_0 .. psi_4.
func (e *Evaluator) seedTable() []*big.Int {

	a, b, x, y := e.a, e.b, e.x, e.y

	x2 := new(big.Int).Mul(x, x)
	x3 := new(big.Int).Mul(x2, x)
	x4 := new(big.Int).Mul(x3, x)
	x6 := new(big.Int).Mul(x4, x2)
	a2 := new(big.Int).Mul(a, a)
	a3 := new(big.Int).Mul(a2, a)
	b2 := new(big.Int).Mul(b, b)

	// psi_3 = 3x^4 + 6ax^2 + 12bx - a^2
	psi3 := new(big.Int).Mul(big.NewInt(3), x4)
	psi3.Add(psi3, new(big.Int).Mul(big.NewInt(6), new(big.Int).Mul(a, x2)))
	psi3.Add(psi3, new(big.Int).Mul(big.NewInt(12), new(big.Int).Mul(b, x)))
	psi3.Sub(psi3, a2)

	// psi_4 = 4y(x^6 + 5ax^4 + 20bx^3 - 5a^2x^2 - 4abx - 8b^2 - a^3)
	psi4 := new(big.Int).Set(x6)
	psi4.Add(psi4, new(big.Int).Mul(big.NewInt(5), new(big.Int).Mul(a, x4)))
	psi4.Add(psi4, new(big.Int).Mul(big.NewInt(20), new(big.Int).Mul(b, x3)))
	psi4.Sub(psi4, new(big.Int).Mul(big.NewInt(5), new(big.Int).Mul(a2, x2)))
	psi4.Sub(psi4, new(big.Int).Mul(big.NewInt(4), new(big.Int).Mul(new(big.Int).Mul(a, b), x)))
	psi4.Sub(psi4, new(big.Int).Mul(big.NewInt(8), b2))
	psi4.Sub(psi4, a3)
	psi4.Mul(psi4, new(big.Int).Mul(big.NewInt(4), y))

	return []*big.Int{
		big.NewInt(0),
		big.NewInt(1),
		new(big.Int).Add(y, y),
		psi3,
		psi4,
	}
}

// extend grows the table bottom-up to cover order m. Every recurrence for
// order i only consumes entries below i, so a single forward pass suffices.
func (e *Evaluator) extend(m int) {

	for i := len(e.table); i <= m; i++ {

		h := i / 2
		var psi *big.Int

		if i%2 == 1 {
			// psi_{2h+1} = psi_{h+2}*psi_h^3 - psi_{h-1}*psi_{h+1}^3
			left := new(big.Int).Mul(e.table[h], e.table[h])
			left.Mul(left, e.table[h])
			left.Mul(left, e.table[h+2])

			right := new(big.Int).Mul(e.table[h+1], e.table[h+1])
			right.Mul(right, e.table[h+1])
			right.Mul(right, e.table[h-1])

			psi = left.Sub(left, right)
		} else {
			// psi_{2h} = psi_h/(2y) * (psi_{h+2}*psi_{h-1}^2 - psi_{h-2}*psi_{h+1}^2)
			left := new(big.Int).Mul(e.table[h-1], e.table[h-1])
			left.Mul(left, e.table[h+2])

			right := new(big.Int).Mul(e.table[h+1], e.table[h+1])
			right.Mul(right, e.table[h-2])

			psi = new(big.Int).Quo(e.table[h], new(big.Int).Add(e.y, e.y))
			psi.Mul(psi, left.Sub(left, right))
		}

		e.table = append(e.table, psi)
	}
}
