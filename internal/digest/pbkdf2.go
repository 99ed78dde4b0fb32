package digest

import (
	"encoding/binary"
	"errors"
)

// ErrInvalidIterations is returned when iterations < 1.
var ErrInvalidIterations = errors.New("digest: iterations must be >= 1")

// PBKDF2HMACSHA256 derives keyLength octets from password and salt per
// RFC 2898, using HMAC-SHA256 as the pseudorandom function.
func PBKDF2HMACSHA256(password, salt []byte, iterations, keyLength int) ([]byte, error) {
	if iterations < 1 {
		return nil, ErrInvalidIterations
	}
	numBlocks := (keyLength + sumSize - 1) / sumSize
	out := make([]byte, 0, numBlocks*sumSize)
	for blockIndex := 1; blockIndex <= numBlocks; blockIndex++ {
		var blockNum [4]byte
		binary.BigEndian.PutUint32(blockNum[:], uint32(blockIndex))
		u := HMACSHA256(password, append(append([]byte{}, salt...), blockNum[:]...))
		f := u
		for i := 1; i < iterations; i++ {
			u = HMACSHA256(password, u[:])
			for j := range f {
				f[j] ^= u[j]
			}
		}
		out = append(out, f[:]...)
	}
	return out[:keyLength], nil
}
