// Package sumcheck implements the round-by-round sum-check protocol over
// F_q4 (used for the constraint relation) and over F_q (used for the
// norm/range-bound relation), plus the two tables those arguments sum
// over: the constraint table built from the witness MLE, the alpha
// powers, and the folded constraint matrix, and the range table built
// from r_beta applied to the witness MLE.
package sumcheck

import "greyhound/field"

// RoundPoly is the univariate round polynomial g_t(X) = c0 + c1*X that the
// prover sends each round; g_t(0)=c0 and g_t(1)=c0+c1.
type RoundPoly struct {
	C0, C1 field.Fq4
}

// Proof is the transcript of round polynomials plus the final single-value
// evaluation after all variables have been folded away.
type Proof struct {
	Rounds    []RoundPoly
	FinalEval field.Fq4
}

// RoundPolyFq is RoundPoly over F_q, used by the range-bound sum-check.
type RoundPolyFq struct {
	C0, C1 field.Fq
}

// ProofFq is Proof over F_q.
type ProofFq struct {
	Rounds    []RoundPolyFq
	FinalEval field.Fq
}

func sumEvenOdd(v []field.Fq4) (field.Fq4, field.Fq4) {
	s0, s1 := field.ZeroFq4(), field.ZeroFq4()
	for i, x := range v {
		if i&1 == 0 {
			s0 = s0.Add(x)
		} else {
			s1 = s1.Add(x)
		}
	}
	return s0, s1
}

func sumEvenOddFq(v []field.Fq) (field.Fq, field.Fq) {
	s0, s1 := field.ZeroFq(), field.ZeroFq()
	for i, x := range v {
		if i&1 == 0 {
			s0 = s0.Add(x)
		} else {
			s1 = s1.Add(x)
		}
	}
	return s0, s1
}

// RoundOnce runs a single sum-check round over layer: it emits g_t's
// coefficients and the folded layer for the next round, binding the
// lowest-order variable to r.
func RoundOnce(layer []field.Fq4, r field.Fq4) (RoundPoly, []field.Fq4) {
	s0, s1 := sumEvenOdd(layer)
	gc := RoundPoly{C0: s0, C1: s1.Sub(s0)}

	oneMinusR := field.OneFq4().Sub(r)
	next := make([]field.Fq4, len(layer)/2)
	for i := range next {
		a, b := layer[2*i], layer[2*i+1]
		next[i] = a.Mul(oneMinusR).Add(b.Mul(r))
	}
	return gc, next
}

// RoundOnceFq is RoundOnce over F_q.
func RoundOnceFq(layer []field.Fq, r field.Fq) (RoundPolyFq, []field.Fq) {
	s0, s1 := sumEvenOddFq(layer)
	gc := RoundPolyFq{C0: s0, C1: s1.Sub(s0)}

	oneMinusR := field.OneFq().Sub(r)
	next := make([]field.Fq, len(layer)/2)
	for i := range next {
		a, b := layer[2*i], layer[2*i+1]
		next[i] = a.Mul(oneMinusR).Add(b.Mul(r))
	}
	return gc, next
}

// ProveFromTable runs the full sum-check prover over layer, one round per
// challenge in rs, folding a variable away each round.
func ProveFromTable(layer []field.Fq4, rs []field.Fq4) Proof {
	layer = append([]field.Fq4(nil), layer...)
	rounds := make([]RoundPoly, 0, len(rs))
	for _, r := range rs {
		gc, next := RoundOnce(layer, r)
		rounds = append(rounds, gc)
		layer = next
	}
	return Proof{Rounds: rounds, FinalEval: layer[0]}
}

// ProveFromTableFq is ProveFromTable over F_q.
func ProveFromTableFq(layer []field.Fq, rs []field.Fq) ProofFq {
	layer = append([]field.Fq(nil), layer...)
	rounds := make([]RoundPolyFq, 0, len(rs))
	for _, r := range rs {
		gc, next := RoundOnceFq(layer, r)
		rounds = append(rounds, gc)
		layer = next
	}
	return ProofFq{Rounds: rounds, FinalEval: layer[0]}
}

func sumAll(v []field.Fq4) field.Fq4 {
	acc := field.ZeroFq4()
	for _, x := range v {
		acc = acc.Add(x)
	}
	return acc
}

func sumAllFq(v []field.Fq) field.Fq {
	acc := field.ZeroFq()
	for _, x := range v {
		acc = acc.Add(x)
	}
	return acc
}

// Verify replays the sum-check rounds against layer (the verifier's own
// copy of the table being summed) and checks, per round, that the claimed
// sum matches g_t(0)+g_t(1) and that the folded sum matches g_t(r); it
// finally checks the folded table collapses to proof.FinalEval.
func Verify(claimedSum field.Fq4, layer []field.Fq4, proof Proof, rs []field.Fq4) bool {
	if len(proof.Rounds) != len(rs) {
		return false
	}
	cur := append([]field.Fq4(nil), layer...)
	expected := claimedSum
	for i, gc := range proof.Rounds {
		if !sumAll(cur).Equal(expected) {
			return false
		}
		if !expected.Equal(gc.C0.Add(gc.C0.Add(gc.C1))) {
			return false
		}
		r := rs[i]
		_, next := RoundOnce(cur, r)
		gAtR := gc.C0.Add(gc.C1.Mul(r))
		if !sumAll(next).Equal(gAtR) {
			return false
		}
		cur = next
		expected = gAtR
	}
	if len(cur) != 1 || !cur[0].Equal(proof.FinalEval) {
		return false
	}
	return true
}

// VerifyFq is Verify over F_q, used for the norm/range-bound sum-check.
func VerifyFq(claimedSum field.Fq, layer []field.Fq, proof ProofFq, rs []field.Fq) bool {
	if len(proof.Rounds) != len(rs) {
		return false
	}
	cur := append([]field.Fq(nil), layer...)
	expected := claimedSum
	for i, gc := range proof.Rounds {
		if !sumAllFq(cur).Equal(expected) {
			return false
		}
		if !expected.Equal(gc.C0.Add(gc.C0.Add(gc.C1))) {
			return false
		}
		r := rs[i]
		_, next := RoundOnceFq(cur, r)
		gAtR := gc.C0.Add(gc.C1.Mul(r))
		if !sumAllFq(next).Equal(gAtR) {
			return false
		}
		cur = next
		expected = gAtR
	}
	if len(cur) != 1 || !cur[0].Equal(proof.FinalEval) {
		return false
	}
	return true
}
