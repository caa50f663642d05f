package field

import "testing"

func TestFqInverseRoundtrip(t *testing.T) {
	for _, v := range []uint64{1, 2, 6, 12345, FqModulus - 1} {
		a := NewFq(v)
		if !a.Mul(a.Inv()).Equal(OneFq()) {
			t.Fatalf("a*a^-1 != 1 for a=%d", v)
		}
	}
}

func TestFqInverseOfZeroPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic inverting zero")
		}
	}()
	ZeroFq().Inv()
}

func TestFq2InverseRoundtrip(t *testing.T) {
	a := NewFq2(NewFq(3), NewFq(17))
	got := a.Mul(a.Inv())
	if !got.Equal(OneFq2()) {
		t.Fatalf("fq2 a*a^-1 != 1, got %+v", got)
	}
}

func TestFq4InverseRoundtrip(t *testing.T) {
	a := Fq4{C0: NewFq2(NewFq(5), NewFq(9)), C1: NewFq2(NewFq(2), NewFq(21))}
	got := a.Mul(a.Inv())
	if !got.Equal(OneFq4()) {
		t.Fatalf("fq4 a*a^-1 != 1, got %+v", got)
	}
}

func TestSquareMatchesMul(t *testing.T) {
	a := NewFq(12345)
	if !a.Square().Equal(a.Mul(a)) {
		t.Fatalf("fq square != a*a")
	}
	b := NewFq2(NewFq(3), NewFq(17))
	if !b.Square().Equal(b.Mul(b)) {
		t.Fatalf("fq2 square != b*b")
	}
	c := Fq4{C0: NewFq2(NewFq(5), NewFq(9)), C1: NewFq2(NewFq(2), NewFq(21))}
	if !c.Square().Equal(c.Mul(c)) {
		t.Fatalf("fq4 square != c*c")
	}
}

func TestFq4EmbedPreservesBaseArithmetic(t *testing.T) {
	a, b := NewFq(11), NewFq(222)
	sumField := a.Add(b)
	sumTower := EmbedFq4(a).Add(EmbedFq4(b))
	if !sumTower.Equal(EmbedFq4(sumField)) {
		t.Fatalf("embedding does not commute with addition")
	}
	mulField := a.Mul(b)
	mulTower := EmbedFq4(a).Mul(EmbedFq4(b))
	if !mulTower.Equal(EmbedFq4(mulField)) {
		t.Fatalf("embedding does not commute with multiplication")
	}
}
