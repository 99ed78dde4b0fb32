// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2023 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package e2e implements a self-contained elliptic-curve cryptography
toolkit for end-to-end encryption and digital signatures over a
short-Weierstrass prime-field curve, defaulting to NIST P-256 (secp256r1).

The arithmetic core — arbitrary-precision integers, modular field
arithmetic, the elliptic-curve group law, and SHA-256/HMAC-SHA256/PBKDF2 —
is implemented from first principles in the internal/bignat, internal/field,
internal/curve, and internal/digest packages, depending on nothing but a
cryptographically strong random source. This package layers three public
primitives on top of that core:

  - Key-pair generation and validation (GenerateKeyPair, NewKeyPairFromScalar,
    NewKeyPairFromPassword)
  - Hybrid public-key encryption (Encrypt, Decrypt), combining ephemeral ECDH
    with ChaCha20-Poly1305
  - ECDSA signing and verification (Sign, Verify), with ASN.1 DER and
    hex-text signature encodings

An overview of the features provided by this package are as follows:

  - Private key generation, construction from an explicit scalar, and
    deterministic derivation from a password via PBKDF2-HMAC-SHA256
  - Public key generation, serialization, and parsing in uncompressed and
    compressed point encodings
  - Elliptic curve operations in affine coordinates, with scalar
    multiplication performed by a regular Montgomery ladder
  - Point decompression via modular square root for primes congruent to
    3 mod 4
  - DER-encoded and hex-text ECDSA signature serialization and strict
    parsing

This package does not provide curve agility beyond the short-Weierstrass
family with odd prime field and cofactor 1, standardized asymmetric-key
container serialization, full side-channel hardness, or post-quantum
resistance. A comprehensive suite of tests accompanies every layer.
*/
package e2e
