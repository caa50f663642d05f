package gadget

import (
	"testing"

	"greyhound/ring"
)

func TestCoeffRoundtripBalanced(t *testing.T) {
	q := ring.NewModQ(229)
	base := uint32(6)
	delta := DigitsFor(q, base)
	for _, x := range []uint32{0, 1, 2, 3, 114, 228} {
		digs := DecomposeCoeffBalanced(x, base, delta, q)
		x2 := RecomposeCoeff(digs, base, q)
		if x2 != x {
			t.Fatalf("roundtrip(%d) = %d", x, x2)
		}
		half := int64(base / 2)
		for _, d := range digs {
			si := int64(d)
			if si > int64(q.Q)/2 {
				si -= int64(q.Q)
			}
			if si < -half || si > half {
				t.Fatalf("digit %d out of balanced range for base %d", d, base)
			}
		}
	}
}

func TestPolyRoundtripBalanced(t *testing.T) {
	q := ring.NewModQ(229)
	base := uint32(7)
	delta := DigitsFor(q, base)

	var p ring.Poly
	for i := 0; i < ring.D; i++ {
		p.C[i] = uint32((i*17 + 5)) % q.Q
	}

	ds := DecomposePolyBalanced(p, base, delta, q)
	p2 := RecomposePoly(ds, base, q)
	if !p2.Equal(p) {
		t.Fatalf("poly roundtrip mismatch")
	}
}

func TestVecRoundtrip(t *testing.T) {
	q := ring.NewModQ(229)
	base := uint32(6)
	n := 3

	v := make([]ring.Poly, n)
	for j := 0; j < n; j++ {
		var p ring.Poly
		for i := 0; i < ring.D; i++ {
			p.C[i] = (uint32(i) + uint32(j)*9) % q.Q
		}
		v[j] = p
	}
	digits := GInvVec(v, base, q)
	rec := GFwdVec(digits, n, base, q)
	for i := range v {
		if !rec[i].Equal(v[i]) {
			t.Fatalf("vec roundtrip mismatch at %d", i)
		}
	}
}
