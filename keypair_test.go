package e2e

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/flaxytop/End-to-end-encryption/internal/bignat"
	"github.com/flaxytop/End-to-end-encryption/internal/curve"
)

func TestKeyPairFromOneEqualsGenerator(t *testing.T) {
	kp, err := NewKeyPairFromScalar(bignat.One())
	if err != nil {
		t.Fatalf("NewKeyPairFromScalar: %v", err)
	}
	if !kp.Q.Equal(kp.params.BasePoint()) {
		t.Fatalf("d=1 should produce Q=G")
	}
	enc, err := kp.MarshalCompressed()
	if err != nil {
		t.Fatalf("MarshalCompressed: %v", err)
	}
	if enc[0] != 0x03 {
		t.Fatalf("expected 0x03 prefix for P-256 generator (odd Y), got 0x%02x\n%s", enc[0], spew.Sdump(enc))
	}
}

func TestGenerateKeyPairIsValid(t *testing.T) {
	for i := 0; i < 20; i++ {
		kp, err := GenerateKeyPair()
		if err != nil {
			t.Fatalf("GenerateKeyPair: %v", err)
		}
		if err := kp.Validate(); err != nil {
			t.Fatalf("generated key pair failed validation: %v", err)
		}
	}
}

func TestNewKeyPairFromScalarRejectsOutOfRange(t *testing.T) {
	tests := []*bignat.BigNat{
		bignat.Zero(),
		curve.P256Params().N,
	}
	for _, d := range tests {
		if _, err := NewKeyPairFromScalar(d); err == nil {
			t.Fatalf("expected error for out-of-range scalar %s", d.ToHex())
		}
	}
}

func TestPointEncodingRoundTrip(t *testing.T) {
	kp, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	for _, name := range []string{"uncompressed", "compressed"} {
		t.Run(name, func(t *testing.T) {
			var enc []byte
			var err error
			if name == "uncompressed" {
				enc, err = kp.MarshalUncompressed()
			} else {
				enc, err = kp.MarshalCompressed()
			}
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			decoded, err := UnmarshalPoint(enc, kp.params)
			if err != nil {
				t.Fatalf("UnmarshalPoint: %v", err)
			}
			if !decoded.Equal(kp.Q) {
				t.Fatalf("round trip mismatch:\n%s", spew.Sdump(decoded))
			}
		})
	}
}

func TestUnmarshalPointRejectsBadPrefix(t *testing.T) {
	kp, _ := GenerateKeyPair()
	enc, _ := kp.MarshalUncompressed()
	enc[0] = 0x05
	if _, err := UnmarshalPoint(enc, kp.params); err == nil {
		t.Fatalf("expected error for bad prefix")
	}
}

func TestUnmarshalPointRejectsWrongLength(t *testing.T) {
	kp, _ := GenerateKeyPair()
	enc, _ := kp.MarshalUncompressed()
	if _, err := UnmarshalPoint(enc[:len(enc)-1], kp.params); err == nil {
		t.Fatalf("expected error for truncated point")
	}
}

func TestNewKeyPairFromPasswordIsDeterministic(t *testing.T) {
	password := []byte("correct horse battery staple")
	salt := []byte("site.example/alice")
	a, err := NewKeyPairFromPassword(password, salt, WithIterations(1000))
	if err != nil {
		t.Fatalf("NewKeyPairFromPassword: %v", err)
	}
	b, err := NewKeyPairFromPassword(password, salt, WithIterations(1000))
	if err != nil {
		t.Fatalf("NewKeyPairFromPassword: %v", err)
	}
	if !a.D.Equal(b.D) || !a.Q.Equal(b.Q) {
		t.Fatalf("same password and salt should derive the same key pair:\n%s\n%s", spew.Sdump(a), spew.Sdump(b))
	}
	if err := a.Validate(); err != nil {
		t.Fatalf("derived key pair failed validation: %v", err)
	}

	c, err := NewKeyPairFromPassword([]byte("different password"), salt, WithIterations(1000))
	if err != nil {
		t.Fatalf("NewKeyPairFromPassword: %v", err)
	}
	if a.D.Equal(c.D) {
		t.Fatalf("different passwords should not derive the same scalar")
	}
}

func TestNewKeyPairFromPasswordRejectsZeroIterations(t *testing.T) {
	if _, err := NewKeyPairFromPassword([]byte("p"), []byte("s"), WithIterations(0)); err == nil {
		t.Fatalf("expected error for zero iterations")
	}
}
