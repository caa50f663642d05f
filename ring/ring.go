// Package ring implements the toy cyclotomic ring R_q = Z_q[X]/(X^D+1)
// used by the Greyhound-style commitment scheme, with D fixed at 64.
package ring

import (
	"fmt"
	"math/big"
)

// D is the ring dimension, fixed at 64 in the scheme.
const D = 64

// ModQ wraps a 32-bit modulus and exposes the scalar arithmetic the ring
// and gadget layers build on top of.
type ModQ struct {
	Q uint32
}

// NewModQ constructs a modulus wrapper. q must be >= 2.
func NewModQ(q uint32) ModQ {
	if q < 2 {
		panic(fmt.Sprintf("ring: modulus must be >= 2, got %d", q))
	}
	return ModQ{Q: q}
}

func (m ModQ) Add(a, b uint32) uint32 {
	x := uint64(a) + uint64(b)
	if x >= uint64(m.Q) {
		x -= uint64(m.Q)
	}
	return uint32(x)
}

func (m ModQ) Sub(a, b uint32) uint32 {
	if a >= b {
		return a - b
	}
	return uint32(uint64(a) + uint64(m.Q) - uint64(b))
}

func (m ModQ) Neg(a uint32) uint32 {
	if a == 0 {
		return 0
	}
	return uint32(uint64(m.Q) - uint64(a))
}

func (m ModQ) Mul(a, b uint32) uint32 {
	return uint32((uint64(a) * uint64(b)) % uint64(m.Q))
}

// Poly is a dense polynomial over R_q: exactly D coefficients in [0,Q).
type Poly struct {
	C [D]uint32
}

// Zero returns the zero polynomial.
func Zero() Poly { return Poly{} }

// FromCoeffs normalizes coeffs into [0,Q) and returns the resulting Poly.
func FromCoeffs(coeffs [D]uint32, q ModQ) Poly {
	var out Poly
	for i, v := range coeffs {
		out.C[i] = v % q.Q
	}
	return out
}

// Monomial returns a*X^k reduced mod q.
func Monomial(k int, a uint32, q ModQ) Poly {
	if k < 0 || k >= D {
		panic(fmt.Sprintf("ring: monomial degree %d out of range", k))
	}
	var p Poly
	p.C[k] = a % q.Q
	return p
}

// Ct returns the constant term a_0.
func (p Poly) Ct() uint32 { return p.C[0] }

// Equal reports whether p and other have identical coefficients.
func (p Poly) Equal(other Poly) bool {
	return p.C == other.C
}

func (p Poly) Add(other Poly, q ModQ) Poly {
	var r Poly
	for i := 0; i < D; i++ {
		r.C[i] = q.Add(p.C[i], other.C[i])
	}
	return r
}

func (p Poly) Sub(other Poly, q ModQ) Poly {
	var r Poly
	for i := 0; i < D; i++ {
		r.C[i] = q.Sub(p.C[i], other.C[i])
	}
	return r
}

func (p Poly) Neg(q ModQ) Poly {
	var r Poly
	for i := 0; i < D; i++ {
		r.C[i] = q.Neg(p.C[i])
	}
	return r
}

// Mul multiplies p and other in R_q = Z_q[X]/(X^D+1) via schoolbook
// multiplication with wrap-and-negate reduction (X^D = -1). The accumulator
// is a signed big.Int per coefficient, wide enough for D^2*Q^2 regardless of
// how close Q sits to the 32-bit ceiling.
func (p Poly) Mul(other Poly, q ModQ) Poly {
	acc := make([]*big.Int, D)
	for i := range acc {
		acc[i] = new(big.Int)
	}
	prod := new(big.Int)
	for i := 0; i < D; i++ {
		if p.C[i] == 0 {
			continue
		}
		ai := int64(p.C[i])
		for j := 0; j < D; j++ {
			if other.C[j] == 0 {
				continue
			}
			prod.SetInt64(ai)
			prod.Mul(prod, big.NewInt(int64(other.C[j])))
			k := i + j
			if k < D {
				acc[k].Add(acc[k], prod)
			} else {
				acc[k-D].Sub(acc[k-D], prod)
			}
		}
	}
	qq := big.NewInt(int64(q.Q))
	v := new(big.Int)
	var out Poly
	for i := 0; i < D; i++ {
		v.Mod(acc[i], qq) // big.Int.Mod is Euclidean: result is in [0,qq) for qq > 0
		out.C[i] = uint32(v.Uint64())
	}
	return out
}

// SigmaInv applies the involution X -> X^{-1}: a_0 is fixed, and for i>0
// the coefficient at X^i moves to X^{D-i} negated.
func (p Poly) SigmaInv(q ModQ) Poly {
	var b Poly
	b.C[0] = p.C[0]
	for i := 1; i < D; i++ {
		b.C[D-i] = q.Neg(p.C[i])
	}
	return b
}

// ScaleSmall multiplies p by a small scalar k (already reduced mod q is not
// required; k is reduced here) and returns the result mod q.
func (p Poly) ScaleSmall(k uint32, q ModQ) Poly {
	var out Poly
	kk := uint64(k % q.Q)
	for i := 0; i < D; i++ {
		out.C[i] = uint32((uint64(p.C[i]) * kk) % uint64(q.Q))
	}
	return out
}
