package field

import (
	"testing"

	"github.com/flaxytop/End-to-end-encryption/internal/bignat"
)

func p256() *Field {
	p, _ := bignat.FromHex("FFFFFFFF00000001000000000000000000000000FFFFFFFFFFFFFFFFFFFFFFFF")
	return New(p)
}

func TestFieldInverse(t *testing.T) {
	f := p256()
	a := bignat.FromUint64(12345)
	inv, err := f.Inv(a)
	if err != nil {
		t.Fatalf("Inv: %v", err)
	}
	if got := f.Mul(a, inv); got.Cmp(bignat.FromUint64(1)) != 0 {
		t.Fatalf("a*inv = %s, want 1", got.ToDecimal())
	}
}

func TestFieldSqrt(t *testing.T) {
	f := p256()
	x := bignat.FromUint64(4)
	root, err := f.Sqrt(x)
	if err != nil {
		t.Fatalf("Sqrt: %v", err)
	}
	if got := f.Mul(root, root); !got.Equal(x) {
		t.Fatalf("root^2 = %s, want %s", got.ToDecimal(), x.ToDecimal())
	}
}

func TestFieldSqrtNonResidue(t *testing.T) {
	f := New(bignat.FromUint64(7)) // 7 mod 4 == 3
	// quadratic residues mod 7: 1,4,2 ; non-residues: 3,5,6
	nonResidue := bignat.FromUint64(3)
	if _, err := f.Sqrt(nonResidue); err != ErrNoSqrt {
		t.Fatalf("expected ErrNoSqrt, got %v", err)
	}
}

func TestFieldDivByZero(t *testing.T) {
	f := p256()
	if _, err := f.Inv(bignat.Zero()); err == nil {
		t.Fatalf("expected error inverting zero")
	}
}
