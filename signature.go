// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package e2e

import (
	"fmt"

	"github.com/flaxytop/End-to-end-encryption/internal/bignat"
	"github.com/flaxytop/End-to-end-encryption/internal/curve"
	"github.com/flaxytop/End-to-end-encryption/internal/digest"
)

// References:
//
//	[SEC1]: Elliptic Curve Cryptography (May 31, 2009, Version 2.0)
//	  https://www.secg.org/sec1-v2.pdf
//	[ISO/IEC 8825-1]: Information technology — ASN.1 encoding rules

const (
	asn1SequenceID = 0x30
	asn1IntegerID  = 0x02
)

// Signature is an ECDSA signature (r, s), each in [1, N-1].
type Signature struct {
	R, S *bignat.BigNat
}

// hashToInt reduces the leftmost ceil(log2(N)) bits of a SHA-256 digest,
// interpreted as a big-endian integer, modulo N.
func hashToInt(msg []byte, params *curve.Params) *bignat.BigNat {
	sum := digest.Sum256(msg)
	nBits := params.N.BitLen()
	e := bignat.FromBytes(sum[:])
	if excess := len(sum)*8 - nBits; excess > 0 {
		e = e.Rsh(uint(excess))
	}
	_, reduced, err := e.DivMod(params.N)
	if err != nil {
		panic(err)
	}
	return reduced
}

// Sign produces an ECDSA signature over msg using the private key. The
// per-signature nonce k is drawn from the CSPRNG; r=0 or s=0 (probability
// negligible for a prime-order curve) triggers an internal retry.
func Sign(msg []byte, priv *KeyPair, opts ...Option) (*Signature, error) {
	cfg := applyOptions(opts)
	for {
		k, err := bignat.RandomRange(bignat.One(), cfg.curve.N)
		if err != nil {
			return nil, newError(ErrEntropyFailure, "sign: "+err.Error())
		}
		sig, ok, err := signWithK(msg, priv, k, cfg.curve)
		if err != nil {
			return nil, err
		}
		if ok {
			return sig, nil
		}
	}
}

// signWithK implements the core of ECDSA signing for an explicit nonce k,
// reporting ok=false when r or s comes out zero so the caller can retry
// with a fresh k. It exists as a separate entry point so a known-answer
// test can pin the algorithm independent of nonce generation.
func signWithK(msg []byte, priv *KeyPair, k *bignat.BigNat, params *curve.Params) (sig *Signature, ok bool, err error) {
	e := hashToInt(msg, params)
	p1 := params.ScalarMulBase(k)
	_, r, err := p1.X.DivMod(params.N)
	if err != nil {
		return nil, false, newError(ErrArithmeticFailure, err.Error())
	}
	if r.Sign() == 0 {
		return nil, false, nil
	}
	kInv, err := bignat.ModInverse(k, params.N)
	if err != nil {
		return nil, false, newError(ErrArithmeticFailure, err.Error())
	}
	rd, err := bignat.ModMul(r, priv.D, params.N)
	if err != nil {
		return nil, false, newError(ErrArithmeticFailure, err.Error())
	}
	ePlusRD, err := bignat.ModAdd(e, rd, params.N)
	if err != nil {
		return nil, false, newError(ErrArithmeticFailure, err.Error())
	}
	s, err := bignat.ModMul(kInv, ePlusRD, params.N)
	if err != nil {
		return nil, false, newError(ErrArithmeticFailure, err.Error())
	}
	if s.Sign() == 0 {
		return nil, false, nil
	}
	return &Signature{R: r, S: s}, true, nil
}

// Verify reports whether sig is a valid ECDSA signature over msg under the
// public key Q. Malformed signatures or out-of-range components return
// false rather than an error: verification failure is not an error
// condition.
func Verify(sig *Signature, msg []byte, pub *curve.Point, opts ...Option) bool {
	cfg := applyOptions(opts)
	params := cfg.curve
	n := params.N
	if sig.R.Sign() <= 0 || sig.R.Cmp(n) >= 0 {
		return false
	}
	if sig.S.Sign() <= 0 || sig.S.Cmp(n) >= 0 {
		return false
	}
	if pub.Inf || !params.IsOnCurve(pub) {
		return false
	}
	e := hashToInt(msg, params)
	w, err := bignat.ModInverse(sig.S, n)
	if err != nil {
		return false
	}
	u1, err := bignat.ModMul(e, w, n)
	if err != nil {
		return false
	}
	u2, err := bignat.ModMul(sig.R, w, n)
	if err != nil {
		return false
	}
	x := params.Add(params.ScalarMul(u1, params.BasePoint()), params.ScalarMul(u2, pub))
	if x.Inf {
		return false
	}
	_, xModN, err := x.X.DivMod(n)
	if err != nil {
		return false
	}
	return xModN.Equal(sig.R)
}

// minimalBigEndian renders v's magnitude as a minimal-length two's
// complement integer per DER: a leading 0x00 is prepended only when the
// high bit of the first magnitude byte would otherwise mark it negative.
func minimalBigEndian(v *bignat.BigNat) []byte {
	data, err := v.ToBytes(0)
	if err != nil {
		panic(err)
	}
	if len(data) > 0 && data[0]&0x80 != 0 {
		padded := make([]byte, len(data)+1)
		copy(padded[1:], data)
		return padded
	}
	return data
}

// Serialize returns sig in ASN.1 DER: SEQUENCE { INTEGER r, INTEGER s }.
func (sig *Signature) Serialize() []byte {
	rBytes := minimalBigEndian(sig.R)
	sBytes := minimalBigEndian(sig.S)
	totalLen := 4 + len(rBytes) + len(sBytes)
	out := make([]byte, 0, 2+totalLen)
	out = append(out, asn1SequenceID, byte(totalLen))
	out = append(out, asn1IntegerID, byte(len(rBytes)))
	out = append(out, rBytes...)
	out = append(out, asn1IntegerID, byte(len(sBytes)))
	out = append(out, sBytes...)
	return out
}

// ParseDERSignature strictly decodes a DER-encoded signature, rejecting
// trailing garbage, non-minimal length encodings, and negative values.
func ParseDERSignature(der []byte) (*Signature, error) {
	if len(der) < 8 {
		return nil, newError(ErrInvalidInput, "DER signature too short")
	}
	if der[0] != asn1SequenceID {
		return nil, newError(ErrInvalidInput, "malformed DER: missing sequence id")
	}
	seqLen := int(der[1])
	if seqLen != len(der)-2 {
		return nil, newError(ErrInvalidInput, "malformed DER: sequence length mismatch")
	}
	offset := 2
	r, n, err := parseDERInt(der, offset)
	if err != nil {
		return nil, err
	}
	offset += n
	s, n, err := parseDERInt(der, offset)
	if err != nil {
		return nil, err
	}
	offset += n
	if offset != len(der) {
		return nil, newError(ErrInvalidInput, "malformed DER: trailing garbage")
	}
	return &Signature{R: r, S: s}, nil
}

func parseDERInt(der []byte, offset int) (*bignat.BigNat, int, error) {
	if offset+2 > len(der) {
		return nil, 0, newError(ErrInvalidInput, "malformed DER: truncated integer header")
	}
	if der[offset] != asn1IntegerID {
		return nil, 0, newError(ErrInvalidInput, "malformed DER: missing integer id")
	}
	length := int(der[offset+1])
	start := offset + 2
	if length == 0 {
		return nil, 0, newError(ErrInvalidInput, "malformed DER: zero-length integer")
	}
	if start+length > len(der) {
		return nil, 0, newError(ErrInvalidInput, "malformed DER: truncated integer value")
	}
	data := der[start : start+length]
	if data[0]&0x80 != 0 {
		return nil, 0, newError(ErrInvalidInput, "malformed DER: negative integer")
	}
	if len(data) > 1 && data[0] == 0x00 && data[1]&0x80 == 0 {
		return nil, 0, newError(ErrInvalidInput, "malformed DER: non-minimal integer encoding")
	}
	return bignat.FromBytes(data), 2 + length, nil
}

// Hex renders the signature in the human-readable hex(r):hex(s) text
// format.
func (sig *Signature) Hex() string {
	return fmt.Sprintf("%s:%s", sig.R.ToHex(), sig.S.ToHex())
}

// ParseHexSignature decodes the hex(r):hex(s) text format produced by Hex.
func ParseHexSignature(s string) (*Signature, error) {
	sep := -1
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			sep = i
			break
		}
	}
	if sep < 0 {
		return nil, newError(ErrInvalidInput, "malformed hex signature: missing separator")
	}
	r, err := bignat.FromHex(s[:sep])
	if err != nil {
		return nil, newError(ErrInvalidInput, "malformed hex signature: r: "+err.Error())
	}
	sVal, err := bignat.FromHex(s[sep+1:])
	if err != nil {
		return nil, newError(ErrInvalidInput, "malformed hex signature: s: "+err.Error())
	}
	return &Signature{R: r, S: sVal}, nil
}
