package bignum

import (
	"math/big"
)

// Legendre returns the Legendre symbol (a|p) in {-1, 0, 1} for an odd prime p.
func Legendre(a, p *big.Int) int {

	A := Mod(a, p)
	if A.Sign() == 0 {
		return 0
	}

	// a^((p-1)/2) mod p
	e := new(big.Int).Sub(p, NewInt(1))
	e.Rsh(e, 1)
	v := new(big.Int).Exp(A, e, p)

	if v.Cmp(NewInt(1)) == 0 {
		return 1
	}
	return -1
}

// SqrtMod returns both square roots of a modulo an odd prime p using the
// Tonelli-Shanks algorithm, with r1 <= r2. The third return value reports
// whether a is a quadratic residue mod p; when it is false no roots exist.
func SqrtMod(a, p *big.Int) (r1, r2 *big.Int, ok bool) {

	one := NewInt(1)

	A := Mod(a, p)
	if A.Sign() == 0 {
		return new(big.Int), new(big.Int), true
	}

	if Legendre(A, p) != 1 {
		return nil, nil, false
	}

	var r *big.Int

	// Shortcut for p = 3 mod 4: r = a^((p+1)/4)
	if p.Bit(0) == 1 && p.Bit(1) == 1 {
		e := new(big.Int).Add(p, one)
		e.Rsh(e, 2)
		r = new(big.Int).Exp(A, e, p)
	} else {
		r = tonelliShanks(A, p)
	}

	r1, r2 = r, new(big.Int).Sub(p, r)
	if r1.Cmp(r2) > 0 {
		r1, r2 = r2, r1
	}
	return r1, r2, true
}

// tonelliShanks computes one square root of the quadratic residue a mod p,
// for p = 1 mod 4.
func tonelliShanks(a, p *big.Int) (x *big.Int) {

	one := NewInt(1)

	// p-1 = q * 2^s with q odd
	q := new(big.Int).Sub(p, one)
	s := 0
	for q.Bit(0) == 0 {
		q.Rsh(q, 1)
		s++
	}

	// z = smallest quadratic non-residue
	z := NewInt(2)
	for Legendre(z, p) != -1 {
		z.Add(z, one)
	}

	c := new(big.Int).Exp(z, q, p)

	// x = a^((q+1)/2), t = a^q
	e := new(big.Int).Add(q, one)
	e.Rsh(e, 1)
	x = new(big.Int).Exp(a, e, p)
	t := new(big.Int).Exp(a, q, p)

	m := s
	for t.Cmp(one) != 0 {

		// smallest i with t^(2^i) = 1
		i := 1
		b := new(big.Int).Mul(t, t)
		b.Mod(b, p)
		for b.Cmp(one) != 0 {
			b.Mul(b, b)
			b.Mod(b, p)
			i++
		}

		// b = c^(2^(m-i-1))
		b.Set(c)
		for j := 0; j < m-i-1; j++ {
			b.Mul(b, b)
			b.Mod(b, p)
		}

		x.Mul(x, b)
		x.Mod(x, p)

		c.Mul(b, b)
		c.Mod(c, p)

		t.Mul(t, c)
		t.Mod(t, p)

		m = i
	}

	return x
}
