// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2020 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package e2e

import (
	"github.com/flaxytop/End-to-end-encryption/internal/bignat"
	"github.com/flaxytop/End-to-end-encryption/internal/curve"
	"github.com/flaxytop/End-to-end-encryption/internal/digest"
	"github.com/flaxytop/End-to-end-encryption/internal/field"
)

func curveField(params *curve.Params) *field.Field {
	return field.New(params.P)
}

// KeyPair holds a private scalar D and its corresponding public point Q,
// together with the curve parameters both are defined over.
type KeyPair struct {
	D      *bignat.BigNat
	Q      *curve.Point
	params *curve.Params
}

// GenerateKeyPair draws a private scalar uniformly from [1, N-1] and
// derives the matching public point.
func GenerateKeyPair(opts ...Option) (*KeyPair, error) {
	cfg := applyOptions(opts)
	d, err := bignat.RandomRange(bignat.One(), cfg.curve.N)
	if err != nil {
		return nil, newError(ErrEntropyFailure, "generate key pair: "+err.Error())
	}
	return newKeyPairFromScalar(d, cfg.curve)
}

// NewKeyPairFromScalar builds a key pair from an externally supplied
// private scalar d, requiring 0 < d < N, and derives Q = d*G
// deterministically.
func NewKeyPairFromScalar(d *bignat.BigNat, opts ...Option) (*KeyPair, error) {
	cfg := applyOptions(opts)
	if d.Sign() <= 0 || d.Cmp(cfg.curve.N) >= 0 {
		return nil, newError(ErrInvalidInput, "private scalar out of range [1, N-1]")
	}
	return newKeyPairFromScalar(d, cfg.curve)
}

// NewKeyPairFromPassword deterministically derives a private scalar from a
// low-entropy password and salt via PBKDF2-HMAC-SHA256, stretching the
// output over the requested number of iterations before reducing it into
// [1, N-1]. The same password, salt, and iteration count always yield the
// same key pair; this is a convenience for password-protected key storage,
// not a substitute for a uniformly random scalar.
func NewKeyPairFromPassword(password, salt []byte, opts ...Option) (*KeyPair, error) {
	cfg := applyOptions(opts)
	raw, err := digest.PBKDF2HMACSHA256(password, salt, cfg.iterations, coordWidth(cfg.curve))
	if err != nil {
		return nil, newError(ErrInvalidInput, "derive scalar from password: "+err.Error())
	}
	nMinusOne := cfg.curve.N.Sub(bignat.One())
	_, rem, err := bignat.FromBytes(raw).DivMod(nMinusOne)
	if err != nil {
		return nil, newError(ErrArithmeticFailure, err.Error())
	}
	d := rem.Add(bignat.One())
	return newKeyPairFromScalar(d, cfg.curve)
}

func newKeyPairFromScalar(d *bignat.BigNat, params *curve.Params) (*KeyPair, error) {
	q := params.ScalarMulBase(d)
	kp := &KeyPair{D: d, Q: q, params: params}
	if err := kp.Validate(); err != nil {
		return nil, err
	}
	return kp, nil
}

// Validate checks that Q is on the curve and not the identity. For the
// supported cofactor-1 curves, these two checks already guarantee Q has
// prime order N, so no further cofactor check is required.
func (kp *KeyPair) Validate() error {
	if kp.Q.Inf {
		return newError(ErrInvalidInput, "public point is the identity")
	}
	if err := kp.params.RequireOnCurve(kp.Q); err != nil {
		return newError(ErrInvalidInput, "public point is not on the curve")
	}
	return nil
}

// coordWidth returns the fixed-width octet length of a coordinate for the
// key pair's curve.
func coordWidth(params *curve.Params) int {
	return (params.P.BitLen() + 7) / 8
}

// MarshalUncompressed encodes Q as 0x04 || X || Y, each coordinate
// fixed-width big-endian.
func (kp *KeyPair) MarshalUncompressed() ([]byte, error) {
	return MarshalPointUncompressed(kp.Q, kp.params)
}

// MarshalCompressed encodes Q as 0x02||X (even Y) or 0x03||X (odd Y).
func (kp *KeyPair) MarshalCompressed() ([]byte, error) {
	return MarshalPointCompressed(kp.Q, kp.params)
}

// MarshalPointUncompressed encodes a point as 0x04 || X || Y.
func MarshalPointUncompressed(p *curve.Point, params *curve.Params) ([]byte, error) {
	if p.Inf {
		return nil, newError(ErrInvalidInput, "cannot encode the identity point")
	}
	w := coordWidth(params)
	xb, err := p.X.ToBytes(w)
	if err != nil {
		return nil, newError(ErrInvalidInput, "encode X: "+err.Error())
	}
	yb, err := p.Y.ToBytes(w)
	if err != nil {
		return nil, newError(ErrInvalidInput, "encode Y: "+err.Error())
	}
	out := make([]byte, 0, 1+2*w)
	out = append(out, 0x04)
	out = append(out, xb...)
	out = append(out, yb...)
	return out, nil
}

// MarshalPointCompressed encodes a point as 0x02||X or 0x03||X.
func MarshalPointCompressed(p *curve.Point, params *curve.Params) ([]byte, error) {
	if p.Inf {
		return nil, newError(ErrInvalidInput, "cannot encode the identity point")
	}
	w := coordWidth(params)
	xb, err := p.X.ToBytes(w)
	if err != nil {
		return nil, newError(ErrInvalidInput, "encode X: "+err.Error())
	}
	prefix := byte(0x02)
	if p.Y.Bit(0) == 1 {
		prefix = 0x03
	}
	out := make([]byte, 0, 1+w)
	out = append(out, prefix)
	out = append(out, xb...)
	return out, nil
}

// UnmarshalPoint decodes a point from its uncompressed (0x04) or
// compressed (0x02/0x03) encoding, validating it lies on the curve.
func UnmarshalPoint(data []byte, params *curve.Params) (*curve.Point, error) {
	if len(data) == 0 {
		return nil, newError(ErrInvalidInput, "empty point encoding")
	}
	w := coordWidth(params)
	switch data[0] {
	case 0x04:
		if len(data) != 1+2*w {
			return nil, newError(ErrInvalidInput, "wrong length for uncompressed point")
		}
		x := bignat.FromBytes(data[1 : 1+w])
		y := bignat.FromBytes(data[1+w:])
		p := curve.Affine(x, y)
		if !params.IsOnCurve(p) {
			return nil, newError(ErrInvalidInput, "decoded point is not on the curve")
		}
		return p, nil
	case 0x02, 0x03:
		if len(data) != 1+w {
			return nil, newError(ErrInvalidInput, "wrong length for compressed point")
		}
		x := bignat.FromBytes(data[1:])
		f := curveField(params)
		x2 := f.Mul(x, x)
		x3 := f.Mul(x2, x)
		rhs := f.Add(f.Add(x3, f.Mul(params.A, x)), params.B)
		y, err := f.Sqrt(rhs)
		if err != nil {
			return nil, newError(ErrInvalidInput, "x does not correspond to a curve point")
		}
		wantOdd := data[0] == 0x03
		if (y.Bit(0) == 1) != wantOdd {
			y = f.Neg(y)
		}
		p := curve.Affine(x, y)
		if !params.IsOnCurve(p) {
			return nil, newError(ErrInvalidInput, "decoded point is not on the curve")
		}
		return p, nil
	default:
		return nil, newError(ErrInvalidInput, "unrecognized point encoding prefix")
	}
}
