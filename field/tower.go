package field

// fq2Nonresidue is the non-square 6 used to build F_q2 = F_q[X]/(X^2-6).
var fq2Nonresidue = NewFq(6)

// Fq2 is an element c0 + c1*X of F_q2.
type Fq2 struct {
	C0, C1 Fq
}

func NewFq2(c0, c1 Fq) Fq2 { return Fq2{C0: c0, C1: c1} }

func ZeroFq2() Fq2 { return Fq2{} }

func OneFq2() Fq2 { return Fq2{C0: OneFq()} }

// EmbedFq lifts a into F_q2 via the canonical embedding a -> a + 0*X.
func EmbedFq(a Fq) Fq2 { return Fq2{C0: a} }

func (a Fq2) Add(b Fq2) Fq2 { return Fq2{C0: a.C0.Add(b.C0), C1: a.C1.Add(b.C1)} }

func (a Fq2) Sub(b Fq2) Fq2 { return Fq2{C0: a.C0.Sub(b.C0), C1: a.C1.Sub(b.C1)} }

func (a Fq2) Neg() Fq2 { return Fq2{C0: a.C0.Neg(), C1: a.C1.Neg()} }

// Mul computes (a0+a1*X)(b0+b1*X) = (a0b0+nr*a1b1) + (a0b1+a1b0)*X.
func (a Fq2) Mul(b Fq2) Fq2 {
	a0b0 := a.C0.Mul(b.C0)
	a1b1 := a.C1.Mul(b.C1)
	c0 := a0b0.Add(a1b1.Mul(fq2Nonresidue))
	c1 := a.C0.Mul(b.C1).Add(a.C1.Mul(b.C0))
	return Fq2{C0: c0, C1: c1}
}

func (a Fq2) Square() Fq2 { return a.Mul(a) }

func (a Fq2) Equal(b Fq2) bool { return a.C0.Equal(b.C0) && a.C1.Equal(b.C1) }

func (a Fq2) IsZero() bool { return a.C0.IsZero() && a.C1.IsZero() }

// Conjugate applies the Frobenius X -> -X, matching the degree-2
// Frobenius coefficients [1, q-1].
func (a Fq2) Conjugate() Fq2 { return Fq2{C0: a.C0, C1: a.C1.Neg()} }

// Norm returns a * Conjugate(a) = a0^2 - nr*a1^2, an element of F_q.
func (a Fq2) Norm() Fq {
	return a.C0.Mul(a.C0).Sub(a.C1.Mul(a.C1).Mul(fq2Nonresidue))
}

// Inv returns the multiplicative inverse of a. It panics if a is zero.
func (a Fq2) Inv() Fq2 {
	if a.IsZero() {
		panic("field: inverse of zero fq2 element")
	}
	nInv := a.Norm().Inv()
	conj := a.Conjugate()
	return Fq2{C0: conj.C0.Mul(nInv), C1: conj.C1.Mul(nInv)}
}

// fq4Nonresidue is X (i.e. 0 + 1*X in F_q2), used to build
// F_q4 = F_q2[Y]/(Y^2-fq4Nonresidue).
var fq4Nonresidue = Fq2{C0: ZeroFq(), C1: OneFq()}

// Fq4 is an element c0 + c1*Y of F_q4, the degree-4 extension tower used
// by the sum-check protocol.
type Fq4 struct {
	C0, C1 Fq2
}

func ZeroFq4() Fq4 { return Fq4{} }

func OneFq4() Fq4 { return Fq4{C0: OneFq2()} }

// EmbedFq4 lifts a base field element into F_q4.
func EmbedFq4(a Fq) Fq4 { return Fq4{C0: EmbedFq(a)} }

func (a Fq4) Add(b Fq4) Fq4 { return Fq4{C0: a.C0.Add(b.C0), C1: a.C1.Add(b.C1)} }

func (a Fq4) Sub(b Fq4) Fq4 { return Fq4{C0: a.C0.Sub(b.C0), C1: a.C1.Sub(b.C1)} }

func (a Fq4) Neg() Fq4 { return Fq4{C0: a.C0.Neg(), C1: a.C1.Neg()} }

func (a Fq4) Mul(b Fq4) Fq4 {
	a0b0 := a.C0.Mul(b.C0)
	a1b1 := a.C1.Mul(b.C1)
	c0 := a0b0.Add(a1b1.Mul(fq4Nonresidue))
	c1 := a.C0.Mul(b.C1).Add(a.C1.Mul(b.C0))
	return Fq4{C0: c0, C1: c1}
}

func (a Fq4) Square() Fq4 { return a.Mul(a) }

func (a Fq4) Equal(b Fq4) bool { return a.C0.Equal(b.C0) && a.C1.Equal(b.C1) }

func (a Fq4) IsZero() bool { return a.C0.IsZero() && a.C1.IsZero() }

func (a Fq4) Conjugate() Fq4 { return Fq4{C0: a.C0, C1: a.C1.Neg()} }

func (a Fq4) Norm() Fq2 {
	return a.C0.Mul(a.C0).Sub(a.C1.Mul(a.C1).Mul(fq4Nonresidue))
}

// Inv returns the multiplicative inverse of a. It panics if a is zero.
func (a Fq4) Inv() Fq4 {
	if a.IsZero() {
		panic("field: inverse of zero fq4 element")
	}
	nInv := a.Norm().Inv()
	conj := a.Conjugate()
	return Fq4{C0: conj.C0.Mul(nInv), C1: conj.C1.Mul(nInv)}
}

// MulByFq scales a by a base-field element.
func (a Fq4) MulByFq(s Fq) Fq4 {
	return a.Mul(EmbedFq4(s))
}
