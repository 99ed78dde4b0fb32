// Package curve implements short-Weierstrass elliptic-curve group law and
// scalar multiplication over a prime field, built directly on internal/field
// and internal/bignat rather than the standard library's crypto/elliptic.
package curve

import (
	"errors"

	"github.com/flaxytop/End-to-end-encryption/internal/bignat"
	"github.com/flaxytop/End-to-end-encryption/internal/field"
)

// ErrNotOnCurve is returned by operations that require an on-curve input.
var ErrNotOnCurve = errors.New("curve: point is not on the curve")

// Point is either the group identity or an affine coordinate pair.
type Point struct {
	Inf  bool
	X, Y *bignat.BigNat
}

// Identity returns the point at infinity.
func Identity() *Point { return &Point{Inf: true} }

// Affine constructs a non-identity point from coordinates.
func Affine(x, y *bignat.BigNat) *Point { return &Point{X: x, Y: y} }

// Equal compares two points by variant and coordinates.
func (p *Point) Equal(q *Point) bool {
	if p.Inf || q.Inf {
		return p.Inf == q.Inf
	}
	return p.X.Equal(q.X) && p.Y.Equal(q.Y)
}

// Params is an immutable short-Weierstrass curve y^2 = x^3 + A*x + B over
// the prime field P, with base point (Gx, Gy) of prime order N and
// cofactor H.
type Params struct {
	Name   string
	P      *bignat.BigNat
	A, B   *bignat.BigNat
	Gx, Gy *bignat.BigNat
	N      *bignat.BigNat
	H      int
}

// BasePoint returns the curve's generator.
func (c *Params) BasePoint() *Point {
	return Affine(c.Gx, c.Gy)
}

func (c *Params) field() *field.Field { return field.New(c.P) }

// IsOnCurve reports whether P satisfies y^2 = x^3+A*x+B mod P, or is the
// identity.
func (c *Params) IsOnCurve(p *Point) bool {
	if p.Inf {
		return true
	}
	f := c.field()
	lhs := f.Mul(p.Y, p.Y)
	x2 := f.Mul(p.X, p.X)
	x3 := f.Mul(x2, p.X)
	rhs := f.Add(f.Add(x3, f.Mul(c.A, p.X)), c.B)
	return lhs.Equal(rhs)
}

// Negate returns -P.
func (c *Params) Negate(p *Point) *Point {
	if p.Inf {
		return Identity()
	}
	f := c.field()
	return Affine(p.X.Clone(), f.Neg(p.Y))
}

// Add returns P+Q via the chord-and-tangent group law.
func (c *Params) Add(p, q *Point) *Point {
	if p.Inf {
		return q
	}
	if q.Inf {
		return p
	}
	f := c.field()
	if p.X.Equal(q.X) {
		if f.Add(p.Y, q.Y).Sign() == 0 {
			return Identity()
		}
		return c.Double(p)
	}
	num := f.Sub(q.Y, p.Y)
	den := f.Sub(q.X, p.X)
	lambda, err := f.Div(num, den)
	if err != nil {
		// den is nonzero here since p.X != q.X was already checked.
		panic(err)
	}
	xr := f.Sub(f.Sub(f.Mul(lambda, lambda), p.X), q.X)
	yr := f.Sub(f.Mul(lambda, f.Sub(p.X, xr)), p.Y)
	return Affine(xr, yr)
}

// Double returns 2P via the tangent-line group law.
func (c *Params) Double(p *Point) *Point {
	if p.Inf || p.Y.Sign() == 0 {
		return Identity()
	}
	f := c.field()
	three := bignat.FromUint64(3)
	two := bignat.FromUint64(2)
	num := f.Add(f.Mul(three, f.Mul(p.X, p.X)), c.A)
	den := f.Mul(two, p.Y)
	lambda, err := f.Div(num, den)
	if err != nil {
		panic(err)
	}
	xr := f.Sub(f.Sub(f.Mul(lambda, lambda), p.X), p.X)
	yr := f.Sub(f.Mul(lambda, f.Sub(p.X, xr)), p.Y)
	return Affine(xr, yr)
}

// ScalarMul returns k*P using a regular (always add-then-double)
// Montgomery ladder, iterating a fixed N.BitLen() times so every bit of k
// takes the same code path regardless of its value. k is reduced modulo N
// first, so k=0 and k>=N are both handled; the result for k=0 is the
// identity.
func (c *Params) ScalarMul(k *bignat.BigNat, p *Point) *Point {
	_, kr, err := k.DivMod(c.N)
	if err != nil {
		panic(err)
	}
	r0 := Identity()
	r1 := p
	bitLen := c.N.BitLen()
	for i := bitLen - 1; i >= 0; i-- {
		if kr.Bit(i) == 0 {
			r1 = c.Add(r0, r1)
			r0 = c.Double(r0)
		} else {
			r0 = c.Add(r0, r1)
			r1 = c.Double(r1)
		}
	}
	return r0
}

// ScalarMulBase returns k*G.
func (c *Params) ScalarMulBase(k *bignat.BigNat) *Point {
	return c.ScalarMul(k, c.BasePoint())
}

// RequireOnCurve returns ErrNotOnCurve if p does not satisfy the curve
// equation, nil otherwise.
func (c *Params) RequireOnCurve(p *Point) error {
	if !c.IsOnCurve(p) {
		return ErrNotOnCurve
	}
	return nil
}

// P256Params returns the NIST P-256 / secp256r1 curve parameters.
func P256Params() *Params {
	hx := func(s string) *bignat.BigNat {
		v, err := bignat.FromHex(s)
		if err != nil {
			panic(err)
		}
		return v
	}
	return &Params{
		Name: "P-256",
		P:    hx("FFFFFFFF00000001000000000000000000000000FFFFFFFFFFFFFFFFFFFFFFFF"),
		A:    hx("FFFFFFFF00000001000000000000000000000000FFFFFFFFFFFFFFFFFFFFFFFC"),
		B:    hx("5AC635D8AA3A93E7B3EBBD55769886BC651D06B0CC53B0F63BCE3C3E27D2604B"),
		Gx:   hx("6B17D1F2E12C4247F8BCE6E563A440F277037D812DEB33A0F4A13945D898C296"),
		Gy:   hx("4FE342E2FE1A7F9B8EE7EB4A7C0F9E162BCE33576B315ECECBB6406837BF51F5"),
		N:    hx("FFFFFFFF00000000FFFFFFFFFFFFFFFFBCE6FAADA7179E84F3B9CAC2FC632551"),
		H:    1,
	}
}
