package ring

import "testing"

func TestAddSubRoundtrip(t *testing.T) {
	q := NewModQ(229)
	var a, b Poly
	a.C[0] = 5
	a.C[1] = 7
	a.C[63] = 200
	b.C[0] = 228
	b.C[1] = 10
	b.C[10] = 3

	s := a.Add(b, q)
	rt := s.Sub(b, q)
	if !rt.Equal(a) {
		t.Fatalf("roundtrip mismatch: got %v want %v", rt, a)
	}
	if s.C[0] != 4 {
		t.Fatalf("s.C[0] = %d want 4", s.C[0])
	}
}

func TestMulWrapAndNegate(t *testing.T) {
	q := NewModQ(229)
	x63 := Monomial(63, 1, q)
	x := Monomial(1, 1, q)
	prod := x63.Mul(x, q)
	one := Monomial(0, 1, q)
	if !prod.Equal(one.Neg(q)) {
		t.Fatalf("X^63*X != -1: got %v", prod)
	}
	if prod.Ct() != 228 {
		t.Fatalf("ct(X^63*X) = %d want 228", prod.Ct())
	}
}

func TestSigmaInvIsInvolution(t *testing.T) {
	q := NewModQ(229)
	var a Poly
	for i := 0; i < D; i++ {
		a.C[i] = (uint32(i)*3 + 7) % q.Q
	}
	b := a.SigmaInv(q)
	c := b.SigmaInv(q)
	if !c.Equal(a) {
		t.Fatalf("sigma_inv not an involution")
	}
	if a.Ct() != b.Ct() {
		t.Fatalf("constant term not preserved by sigma_inv")
	}
}
