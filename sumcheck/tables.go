package sumcheck

import "greyhound/field"

// BuildConstraintTable assembles the F_q4 table the constraint sum-check
// runs over: out[k + (d<<mk)] = w[k + (d<<mk)] * alpha[d] * m[k], folding
// the witness table w (lifted from F_q), the alpha-power table and the
// folded constraint-matrix table m (already reduced to mk variables by
// MLE.FixVariables) together.
func BuildConstraintTable(w []field.Fq, alpha, m []field.Fq4, mk, md int) []field.Fq4 {
	rowsK := 1 << mk
	colsD := 1 << md
	out := make([]field.Fq4, rowsK*colsD)
	for d := 0; d < colsD; d++ {
		ad := alpha[d]
		for k := 0; k < rowsK; k++ {
			idx := k + (d << mk)
			out[idx] = field.EmbedFq4(w[idx]).Mul(ad.Mul(m[k]))
		}
	}
	return out
}

// evalPolyLowToHighAtFq4 evaluates an F_q-coefficient polynomial (low to
// high degree) at an F_q4 point via Horner's method.
func evalPolyLowToHighAtFq4(coeffsLowToHigh []field.Fq, alpha field.Fq4) field.Fq4 {
	acc := field.ZeroFq4()
	for i := len(coeffsLowToHigh) - 1; i >= 0; i-- {
		acc = acc.Mul(alpha).Add(field.EmbedFq4(coeffsLowToHigh[i]))
	}
	return acc
}

// eqWeight4 evaluates the 5-variable equality-polynomial weight at the
// binary expansion of j, matching the (k,d) linearization used by the
// amortized ring-constraint check.
func eqWeight4(x [5]field.Fq4, j int) field.Fq4 {
	w := field.OneFq4()
	for b := 0; b < 5; b++ {
		bit := (j >> uint(b)) & 1
		term := x[b]
		if bit == 0 {
			term = field.OneFq4().Sub(x[b])
		}
		w = w.Mul(term)
	}
	return w
}

// ComputeConstraintClaim computes the left-hand side of the constraint
// sum-check's initial claim: for each of the 32 ring-position polynomials
// ts[j] (coefficients low to high over F_q), evaluate it at alpha in F_q4
// and weight it by the equality polynomial at the verifier's random
// folding point iPrime.
func ComputeConstraintClaim(ts [][]field.Fq, alpha field.Fq4, iPrime [5]field.Fq4) field.Fq4 {
	var tAlpha [32]field.Fq4
	for j := 0; j < 32; j++ {
		tAlpha[j] = evalPolyLowToHighAtFq4(ts[j], alpha)
	}
	a := field.ZeroFq4()
	for j := 0; j < 32; j++ {
		a = a.Add(eqWeight4(iPrime, j).Mul(tAlpha[j]))
	}
	return a
}

// RBetaBeta8 computes r_beta(z) = z * Prod_{i=1}^{8} (z-i)(z+i), the
// degree-17 polynomial whose roots at 0, +-1, ..., +-8 certify that a
// field element lies in the balanced range [-8,8].
func RBetaBeta8(z field.Fq) field.Fq {
	acc := z
	for i := uint64(1); i <= 8; i++ {
		c := field.NewFq(i)
		acc = acc.Mul(z.Sub(c))
		acc = acc.Mul(z.Add(c))
	}
	return acc
}

// MleEqBlockTable returns the 2^bits-entry table of the equality-
// polynomial evaluated at every binary point against tauBlock.
func MleEqBlockTable(bits int, tauBlock []field.Fq) []field.Fq {
	size := 1 << bits
	out := make([]field.Fq, size)
	for idx := 0; idx < size; idx++ {
		acc := field.OneFq()
		x := idx
		for j := 0; j < bits; j++ {
			rj := tauBlock[j]
			term := rj
			if x&1 == 0 {
				term = field.OneFq().Sub(rj)
			}
			acc = acc.Mul(term)
			x >>= 1
		}
		out[idx] = acc
	}
	return out
}

// BuildRangeTable assembles the F_q table the range-bound sum-check runs
// over: out[k + (d<<mk)] = eq_u(k) * eq_l(d) * r_beta(w[k + (d<<mk)]),
// binding the witness table w to the verifier's folding point tau0 via
// the equality polynomial split across the (mk,md)-bit row/column axes.
func BuildRangeTable(w []field.Fq, mk, md int, tau0 []field.Fq) []field.Fq {
	rowsK := 1 << mk
	colsD := 1 << md
	if len(tau0) != mk+md {
		panic("sumcheck: tau0 length must be mk+md")
	}
	if len(w) != rowsK*colsD {
		panic("sumcheck: witness table size mismatch")
	}

	eqU := MleEqBlockTable(mk, tau0[:mk])
	eqL := MleEqBlockTable(md, tau0[mk:])

	out := make([]field.Fq, len(w))
	for d := 0; d < colsD; d++ {
		for k := 0; k < rowsK; k++ {
			idx := k + (d << mk)
			out[idx] = eqU[k].Mul(eqL[d]).Mul(RBetaBeta8(w[idx]))
		}
	}
	return out
}
