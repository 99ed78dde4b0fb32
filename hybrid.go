// Copyright (c) 2015 The btcsuite developers
// Copyright (c) 2015-2023 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package e2e

import (
	"crypto/rand"
	"encoding/binary"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/flaxytop/End-to-end-encryption/internal/curve"
	"github.com/flaxytop/End-to-end-encryption/internal/digest"
)

// deriveKey implements the KDF: K = sha256(X || salt || counter_be32),
// block-extended by incrementing counter (starting at 0) until keyLength
// octets have been produced.
func deriveKey(x, salt []byte, keyLength int) []byte {
	out := make([]byte, 0, keyLength+digest32)
	for counter := uint32(0); len(out) < keyLength; counter++ {
		var cnt [4]byte
		binary.BigEndian.PutUint32(cnt[:], counter)
		buf := make([]byte, 0, len(x)+len(salt)+4)
		buf = append(buf, x...)
		buf = append(buf, salt...)
		buf = append(buf, cnt[:]...)
		sum := digest.Sum256(buf)
		out = append(out, sum[:]...)
	}
	return out[:keyLength]
}

const digest32 = 32

// Encrypt performs hybrid ECIES-style encryption of plaintext for the
// recipient's public key: an ephemeral key pair is generated, a shared
// point is derived via ECDH, the shared X coordinate feeds the KDF, and
// the result is sealed with ChaCha20-Poly1305 using the ephemeral public
// key as associated data. Output is
// ephemeral_uncompressed || iv || ciphertext (tag included in ciphertext).
func Encrypt(plaintext []byte, recipientQ *curve.Point, opts ...Option) ([]byte, error) {
	cfg := applyOptions(opts)
	if !cfg.curve.IsOnCurve(recipientQ) || recipientQ.Inf {
		return nil, newError(ErrInvalidInput, "recipient public key is not a valid curve point")
	}

	ephemeral, err := GenerateKeyPair(WithCurve(cfg.curve))
	if err != nil {
		return nil, err
	}
	shared := cfg.curve.ScalarMul(ephemeral.D, recipientQ)
	if shared.Inf {
		return nil, newError(ErrArithmeticFailure, "ephemeral shared point is the identity")
	}
	xBytes, err := shared.X.ToBytes(coordWidth(cfg.curve))
	if err != nil {
		return nil, newError(ErrArithmeticFailure, "encode shared X: "+err.Error())
	}
	key := deriveKey(xBytes, cfg.salt, cfg.keyLength)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, newError(ErrInvalidInput, "construct AEAD: "+err.Error())
	}
	if cfg.ivSize != aead.NonceSize() {
		return nil, newError(ErrInvalidInput, "iv_size must match the cipher's nonce size")
	}

	iv := make([]byte, cfg.ivSize)
	if _, err := rand.Read(iv); err != nil {
		return nil, newError(ErrEntropyFailure, "generate IV: "+err.Error())
	}

	ephEncoded, err := ephemeral.MarshalUncompressed()
	if err != nil {
		return nil, err
	}

	body := aead.Seal(nil, iv, plaintext, ephEncoded)

	out := make([]byte, 0, len(ephEncoded)+len(iv)+len(body))
	out = append(out, ephEncoded...)
	out = append(out, iv...)
	out = append(out, body...)
	return out, nil
}

// Decrypt reverses Encrypt given the recipient's key pair. Every failure,
// whatever its cause (malformed envelope, off-curve ephemeral point, tag
// mismatch), surfaces as the single ErrDecryptionFailure kind so callers
// cannot build a decryption oracle from distinguishable error causes.
func Decrypt(ciphertext []byte, recipient *KeyPair, opts ...Option) ([]byte, error) {
	cfg := applyOptions(opts)
	w := coordWidth(cfg.curve)
	ephLen := 1 + 2*w
	if len(ciphertext) < ephLen+cfg.ivSize {
		return nil, newError(ErrDecryptionFailure, "ciphertext too short")
	}
	ephEncoded := ciphertext[:ephLen]
	iv := ciphertext[ephLen : ephLen+cfg.ivSize]
	body := ciphertext[ephLen+cfg.ivSize:]

	qe, err := UnmarshalPoint(ephEncoded, cfg.curve)
	if err != nil || qe.Inf {
		return nil, newError(ErrDecryptionFailure, "decryption failed")
	}

	shared := cfg.curve.ScalarMul(recipient.D, qe)
	if shared.Inf {
		return nil, newError(ErrDecryptionFailure, "decryption failed")
	}
	xBytes, err := shared.X.ToBytes(w)
	if err != nil {
		return nil, newError(ErrDecryptionFailure, "decryption failed")
	}
	key := deriveKey(xBytes, cfg.salt, cfg.keyLength)

	aead, err := chacha20poly1305.New(key)
	if err != nil || cfg.ivSize != aead.NonceSize() {
		return nil, newError(ErrDecryptionFailure, "decryption failed")
	}

	plaintext, err := aead.Open(nil, iv, body, ephEncoded)
	if err != nil {
		return nil, newError(ErrDecryptionFailure, "decryption failed")
	}
	return plaintext, nil
}
