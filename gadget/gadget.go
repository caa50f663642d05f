// Package gadget implements the balanced base-b digit decomposition
// G^{-1}_{b,n} over R_q and its inverse G_{b,n}, used to turn ring vectors
// into short-coefficient digit vectors for the SIS-style commitments.
package gadget

import (
	"fmt"

	"greyhound/ring"
)

// DigitsFor returns delta = ceil(log_b(q)), the number of digits needed to
// represent any residue mod q in balanced base-b form.
func DigitsFor(q ring.ModQ, base uint32) int {
	if base < 2 {
		panic("gadget: base must be >= 2")
	}
	var pow uint64 = 1
	b := uint64(base)
	qv := uint64(q.Q)
	delta := 0
	for pow < qv {
		pow *= b
		delta++
	}
	return delta
}

// signedRep maps a residue in [0,q) to its signed representative in
// [-(q-1)/2, (q-1)/2].
func signedRep(x uint32, q ring.ModQ) int64 {
	q64 := int64(q.Q)
	xi := int64(x)
	if xi > q64/2 {
		return xi - q64
	}
	return xi
}

// canonModQ maps a signed integer back into [0,q).
func canonModQ(x int64, q ring.ModQ) uint32 {
	q64 := int64(q.Q)
	y := x % q64
	if y < 0 {
		y += q64
	}
	return uint32(y)
}

// DecomposeCoeffBalanced decomposes a residue x in [0,q) into delta balanced
// base-b digits d_0,...,d_{delta-1}, each a residue in [0,q) whose signed
// representative lies in [-floor(b/2), floor(b/2)].
func DecomposeCoeffBalanced(x uint32, base uint32, delta int, q ring.ModQ) []uint32 {
	out := make([]uint32, delta)

	y := signedRep(x, q)
	b := int64(base)
	half := int64(base / 2)

	for i := 0; i < delta; i++ {
		r := ((y % b) + b) % b
		di := r
		if r > half {
			di = r - b
		}
		out[i] = canonModQ(di, q)
		y = (y - di) / b
	}
	if y != 0 {
		panic(fmt.Sprintf("gadget: non-zero carry after balanced decomposition of %d (base %d, delta %d)", x, base, delta))
	}
	return out
}

// RecomposeCoeff recombines balanced base-b digits into a residue in [0,q).
func RecomposeCoeff(digits []uint32, base uint32, q ring.ModQ) uint32 {
	var acc int64
	pow := int64(1)
	b := int64(base)
	for _, d := range digits {
		ds := signedRep(d, q)
		acc += ds * pow
		pow *= b
	}
	return canonModQ(acc, q)
}

// DecomposePolyBalanced decomposes a ring element into delta digit
// polynomials, coordinate-wise across the D coefficients.
func DecomposePolyBalanced(p ring.Poly, base uint32, delta int, q ring.ModQ) []ring.Poly {
	out := make([]ring.Poly, delta)
	for j := 0; j < ring.D; j++ {
		digs := DecomposeCoeffBalanced(p.C[j], base, delta, q)
		for i := 0; i < delta; i++ {
			out[i].C[j] = digs[i]
		}
	}
	return out
}

// RecomposePoly recombines delta digit polynomials into a single ring
// element.
func RecomposePoly(digits []ring.Poly, base uint32, q ring.ModQ) ring.Poly {
	delta := len(digits)
	powers := make([]uint32, delta)
	if delta > 0 {
		powers[0] = 1
	}
	for i := 1; i < delta; i++ {
		powers[i] = uint32((uint64(powers[i-1]) * uint64(base)) % uint64(q.Q))
	}
	acc := ring.Zero()
	for i := 0; i < delta; i++ {
		term := digits[i].ScaleSmall(powers[i], q)
		acc = acc.Add(term, q)
	}
	return acc
}

// GInvVec applies G^{-1}_{b,n} to a ring vector, concatenating the delta
// digit polynomials produced for each coordinate.
func GInvVec(vec []ring.Poly, base uint32, q ring.ModQ) []ring.Poly {
	delta := DigitsFor(q, base)
	out := make([]ring.Poly, 0, len(vec)*delta)
	for _, p := range vec {
		out = append(out, DecomposePolyBalanced(p, base, delta, q)...)
	}
	return out
}

// GFwdVec applies G_{b,n}, the forward gadget map, to a digit vector of
// length n*delta arranged as [digits(coord0) || digits(coord1) || ...],
// recomposing it into n ring elements.
func GFwdVec(digits []ring.Poly, n int, base uint32, q ring.ModQ) []ring.Poly {
	if n == 0 {
		return nil
	}
	delta := len(digits) / n
	res := make([]ring.Poly, n)
	for i := 0; i < n; i++ {
		chunk := digits[i*delta : (i+1)*delta]
		res[i] = RecomposePoly(chunk, base, q)
	}
	return res
}
