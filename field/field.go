// Package field implements the prime field F_q (q = 2^32-99) and its
// degree-4 tower extension F_q4 = F_q2[Y]/(Y^2-nr2) over
// F_q2 = F_q[X]/(X^2-nr1), used by the sum-check protocol's constraint and
// range-bound arguments. The polynomial commitment works over ring.ModQ
// and does not use this package.
package field

import (
	"math/bits"
)

// FqModulus is 2^32-99, the toy field modulus used throughout.
const FqModulus uint64 = 4294967197

// Fq is an element of F_q, always held in canonical range [0, FqModulus).
type Fq struct {
	V uint64
}

func NewFq(x uint64) Fq { return Fq{V: x % FqModulus} }

func ZeroFq() Fq { return Fq{} }

func OneFq() Fq { return Fq{V: 1} }

func (a Fq) Add(b Fq) Fq { return Fq{V: modAdd(a.V, b.V, FqModulus)} }

func (a Fq) Sub(b Fq) Fq { return Fq{V: modSub(a.V, b.V, FqModulus)} }

func (a Fq) Neg() Fq { return Fq{V: modSub(0, a.V, FqModulus)} }

func (a Fq) Mul(b Fq) Fq { return Fq{V: modMul(a.V, b.V, FqModulus)} }

func (a Fq) Square() Fq { return a.Mul(a) }

func (a Fq) Equal(b Fq) bool { return a.V == b.V }

func (a Fq) IsZero() bool { return a.V == 0 }

// Pow raises a to a non-negative exponent by square-and-multiply.
func (a Fq) Pow(e uint64) Fq {
	result := OneFq()
	base := a
	for e > 0 {
		if e&1 == 1 {
			result = result.Mul(base)
		}
		e >>= 1
		if e > 0 {
			base = base.Mul(base)
		}
	}
	return result
}

// Inv returns the multiplicative inverse of a via Fermat's little theorem.
// It panics if a is zero.
func (a Fq) Inv() Fq {
	if a.IsZero() {
		panic("field: inverse of zero element")
	}
	return a.Pow(FqModulus - 2)
}

func modAdd(a, b, q uint64) uint64 {
	a %= q
	b %= q
	sum := a + b
	if sum >= q {
		sum -= q
	}
	return sum
}

func modSub(a, b, q uint64) uint64 {
	a %= q
	b %= q
	if a >= b {
		return a - b
	}
	return a + q - b
}

func modMul(a, b, q uint64) uint64 {
	a %= q
	b %= q
	hi, lo := bits.Mul64(a, b)
	_, rem := bits.Div64(hi, lo, q)
	return rem
}
