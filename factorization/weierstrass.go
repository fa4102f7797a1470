package factorization

import (
	"errors"
	"math/big"
	"math/bits"
)

// ErrDegenerateCurve is returned by [NewWeierstrass] when the discriminant
// of the curve parameters vanishes mod N.
var ErrDegenerateCurve = errors.New("degenerate curve: 4a^3 + 27b^2 = 0 mod n")

// ErrCurveMismatch is returned when combining points that do not lie on the
// same curve. This is a programmer error and is never produced during a
// correctly wired factorization run.
var ErrCurveMismatch = errors.New("points lie on different curves")

// Weierstrass is an elliptic curve y^2 = x^3 + ax + b mod N.
type Weierstrass struct {
	A, B *big.Int

	field Field
}

// NewWeierstrass validates the curve parameters and returns the curve with
// a and b reduced into [0, N). It fails with [ErrDegenerateCurve] iff
// (4a^3 + 27b^2) mod N == 0; such singular curves break the assumptions of
// the group law.
func NewWeierstrass(a, b, N *big.Int) (*Weierstrass, error) {

	f := NewField(N)
	a, b = f.Reduce(a), f.Reduce(b)

	// 4a^3 + 27b^2
	disc := new(big.Int).Mul(a, a)
	disc.Mul(disc, a)
	disc.Mul(disc, big.NewInt(4))

	tmp := new(big.Int).Mul(b, b)
	tmp.Mul(tmp, big.NewInt(27))

	disc.Add(disc, tmp)

	if f.Reduce(disc).Sign() == 0 {
		return nil, ErrDegenerateCurve
	}

	return &Weierstrass{A: a, B: b, field: f}, nil
}

// N returns the curve modulus.
func (w *Weierstrass) N() *big.Int {
	return w.field.N
}

// Equal returns true if the two curves have the same parameters and modulus.
func (w *Weierstrass) Equal(other *Weierstrass) bool {
	if w == other {
		return true
	}
	return w.A.Cmp(other.A) == 0 && w.B.Cmp(other.B) == 0 && w.field.N.Cmp(other.field.N) == 0
}

// Contains returns true if P satisfies the curve equation. The identity
// lies on every curve.
func (w *Weierstrass) Contains(P Point) bool {

	if P.IsInfinity() {
		return true
	}

	f := w.field

	rhs := new(big.Int).Mul(P.X, P.X)
	rhs.Mul(rhs, P.X)
	rhs.Add(rhs, new(big.Int).Mul(w.A, P.X))
	rhs.Add(rhs, w.B)

	lhs := new(big.Int).Mul(P.Y, P.Y)

	return f.Reduce(lhs).Cmp(f.Reduce(rhs)) == 0
}

// NewPoint returns the affine point (x, y) on the curve, with both
// coordinates reduced into [0, N). The point is not checked for
// curve membership; see [Weierstrass.Contains].
func (w *Weierstrass) NewPoint(x, y *big.Int) Point {
	return Point{X: w.field.Reduce(x), Y: w.field.Reduce(y), curve: w}
}

// Infinity returns the identity element of the curve group.
func (w *Weierstrass) Infinity() Point {
	return Point{inf: true, curve: w}
}

// Point is a point on a Weierstrass curve: either an affine coordinate pair
// or the identity (point at infinity). Points are immutable values; the group
// operations return new points.
type Point struct {
	X, Y *big.Int

	inf   bool
	curve *Weierstrass
}

// IsInfinity returns true if the point is the identity element.
func (p Point) IsInfinity() bool {
	return p.inf
}

// Equal compares the affine coordinates of two points. Two identity points
// are equal regardless of which curve they were created on.
func (p Point) Equal(q Point) bool {
	if p.inf || q.inf {
		return p.inf == q.inf
	}
	return p.X.Cmp(q.X) == 0 && p.Y.Cmp(q.Y) == 0
}

// Add returns p + q under the chord-and-tangent group law. Both points must
// lie on the same curve, otherwise [ErrCurveMismatch] is returned.
//
// Over a composite modulus the slope denominator can share a nontrivial
// factor with N; the addition then returns the identity together with a
// [NonInvertibleError] carrying gcd(denominator, N). That gcd is the
// designed success signal of the factorization and must not be discarded.
func (p Point) Add(q Point) (Point, error) {

	if !p.curve.Equal(q.curve) {
		return Point{}, ErrCurveMismatch
	}

	if p.inf {
		return q, nil
	}
	if q.inf {
		return p, nil
	}

	w := p.curve
	f := w.field

	// Vertical chord or tangent: q = -p, covers doubling a point with y = 0.
	if p.X.Cmp(q.X) == 0 && f.Reduce(new(big.Int).Add(p.Y, q.Y)).Sign() == 0 {
		return w.Infinity(), nil
	}

	var num, den *big.Int
	if p.Equal(q) {
		// tangent slope (3x^2 + a) / (2y)
		num = new(big.Int).Mul(p.X, p.X)
		num.Mul(num, big.NewInt(3))
		num.Add(num, w.A)
		den = new(big.Int).Add(p.Y, p.Y)
	} else {
		// chord slope (yQ - yP) / (xQ - xP)
		num = new(big.Int).Sub(q.Y, p.Y)
		den = new(big.Int).Sub(q.X, p.X)
	}

	inv, err := f.Invert(den)
	if err != nil {
		// The identity is a sentinel here; the error carries the gcd.
		return w.Infinity(), err
	}

	s := f.Reduce(num.Mul(num, inv))

	// xR = s^2 - xP - xQ
	xR := new(big.Int).Mul(s, s)
	xR.Sub(xR, p.X)
	xR.Sub(xR, q.X)
	xR = f.Reduce(xR)

	// yR = s*(xP - xR) - yP
	yR := new(big.Int).Sub(p.X, xR)
	yR.Mul(yR, s)
	yR.Sub(yR, p.Y)
	yR = f.Reduce(yR)

	return Point{X: xR, Y: yR, curve: w}, nil
}

// ScalarMul returns k*p using left-to-right double-and-add over the bits of
// k, most significant first. The multiplication aborts on the first failing
// inversion, surfacing the [NonInvertibleError] of the underlying addition.
func (p Point) ScalarMul(k uint64) (Point, error) {

	if k == 0 {
		return p.curve.Infinity(), nil
	}

	var err error

	res := p
	for i := bits.Len64(k) - 2; i >= 0; i-- {

		if res, err = res.Add(res); err != nil {
			return res, err
		}

		if (k>>uint(i))&1 == 1 {
			if res, err = res.Add(p); err != nil {
				return res, err
			}
		}
	}

	return res, nil
}
