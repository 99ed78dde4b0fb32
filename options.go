package e2e

import (
	"github.com/flaxytop/End-to-end-encryption/internal/curve"
)

// defaultKeyLength is the default symmetric key length, in octets, derived
// by hybrid encryption's KDF. It matches the key size chacha20poly1305
// requires.
const defaultKeyLength = 32

// defaultIVSize is the default nonce size, in octets, used by hybrid
// encryption. It matches the nonce size chacha20poly1305 requires.
const defaultIVSize = 12

// defaultPBKDF2Iterations is the work factor NewKeyPairFromPassword uses
// absent a WithIterations override.
const defaultPBKDF2Iterations = 200000

// config collects the options recognized across this package's public
// operations. None of its fields are persisted or read from the
// environment; every call site passes its own config built from Option
// values.
type config struct {
	curve      *curve.Params
	keyLength  int
	ivSize     int
	iterations int
	salt       []byte
}

func defaultConfig() *config {
	return &config{
		curve:      curve.P256Params(),
		keyLength:  defaultKeyLength,
		ivSize:     defaultIVSize,
		iterations: defaultPBKDF2Iterations,
	}
}

// Option configures an operation such as GenerateKeyPair or Encrypt.
type Option func(*config)

// WithCurve selects the curve parameters to operate over. Only curves with
// cofactor 1 and prime order are supported.
func WithCurve(params *curve.Params) Option {
	return func(c *config) { c.curve = params }
}

// WithKeyLength sets the length, in octets, of the symmetric key hybrid
// encryption derives. Must be a positive integer.
func WithKeyLength(n int) Option {
	return func(c *config) { c.keyLength = n }
}

// WithIVSize sets the length, in octets, of the nonce used by hybrid
// encryption. Must match what decryption expects.
func WithIVSize(n int) Option {
	return func(c *config) { c.ivSize = n }
}

// WithSalt sets the optional salt mixed into hybrid encryption's KDF.
func WithSalt(salt []byte) Option {
	return func(c *config) { c.salt = salt }
}

// WithIterations sets the PBKDF2 work factor NewKeyPairFromPassword uses.
// Must be a positive integer; callers choose the work factor.
func WithIterations(n int) Option {
	return func(c *config) { c.iterations = n }
}

func applyOptions(opts []Option) *config {
	c := defaultConfig()
	for _, opt := range opts {
		opt(c)
	}
	return c
}
