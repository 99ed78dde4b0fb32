// Package field implements modular arithmetic pinned to a single prime
// modulus, the thin specialization of bignat's general modular operations
// that the curve layer and point (de)compression both need.
package field

import (
	"errors"

	"github.com/flaxytop/End-to-end-encryption/internal/bignat"
)

// ErrNoSqrt is returned when a field element has no square root.
var ErrNoSqrt = errors.New("field: value is not a quadratic residue")

// Field is modular arithmetic over a fixed prime P.
type Field struct {
	P *bignat.BigNat
}

// New returns a Field over the given prime modulus.
func New(p *bignat.BigNat) *Field {
	return &Field{P: p}
}

// Reduce returns a mod P in [0, P).
func (f *Field) Reduce(a *bignat.BigNat) *bignat.BigNat {
	_, r, err := a.DivMod(f.P)
	if err != nil {
		panic(err)
	}
	return r
}

// Add returns (a+b) mod P.
func (f *Field) Add(a, b *bignat.BigNat) *bignat.BigNat {
	r, err := bignat.ModAdd(a, b, f.P)
	if err != nil {
		panic(err)
	}
	return r
}

// Sub returns (a-b) mod P.
func (f *Field) Sub(a, b *bignat.BigNat) *bignat.BigNat {
	r, err := bignat.ModSub(a, b, f.P)
	if err != nil {
		panic(err)
	}
	return r
}

// Mul returns (a*b) mod P.
func (f *Field) Mul(a, b *bignat.BigNat) *bignat.BigNat {
	r, err := bignat.ModMul(a, b, f.P)
	if err != nil {
		panic(err)
	}
	return r
}

// Neg returns (-a) mod P.
func (f *Field) Neg(a *bignat.BigNat) *bignat.BigNat {
	return f.Reduce(a.Neg())
}

// Pow returns a^e mod P.
func (f *Field) Pow(a, e *bignat.BigNat) *bignat.BigNat {
	r, err := bignat.ModPow(a, e, f.P)
	if err != nil {
		panic(err)
	}
	return r
}

// Inv returns a^-1 mod P. Fails only when a is 0 mod P, since P is prime.
func (f *Field) Inv(a *bignat.BigNat) (*bignat.BigNat, error) {
	return bignat.ModInverse(f.Reduce(a), f.P)
}

// Div returns a*b^-1 mod P.
func (f *Field) Div(a, b *bignat.BigNat) (*bignat.BigNat, error) {
	inv, err := f.Inv(b)
	if err != nil {
		return nil, err
	}
	return f.Mul(a, inv), nil
}

// Sqrt returns a square root of a mod P, for P congruent to 3 mod 4 (the
// case the curve layer requires for compressed-point decompression):
// w = a^((P+1)/4) mod P. Returns ErrNoSqrt when w*w != a mod P.
func (f *Field) Sqrt(a *bignat.BigNat) (*bignat.BigNat, error) {
	four := bignat.FromUint64(4)
	_, rem, err := f.P.DivMod(four)
	if err != nil {
		return nil, err
	}
	if rem.Cmp(bignat.FromUint64(3)) != 0 {
		return nil, errors.New("field: Sqrt requires P congruent to 3 mod 4")
	}
	one := bignat.FromUint64(1)
	exp, err := f.P.Add(one).Div(four)
	if err != nil {
		return nil, err
	}
	w := f.Pow(a, exp)
	if !f.Mul(w, w).Equal(f.Reduce(a)) {
		return nil, ErrNoSqrt
	}
	return w, nil
}
