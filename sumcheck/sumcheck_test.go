package sumcheck

import (
	"testing"

	"greyhound/field"
)

func fq4FromU64(x uint64) field.Fq4 { return field.EmbedFq4(field.NewFq(x)) }

func TestProveVerifyRoundtrip(t *testing.T) {
	k := 12
	size := 1 << k
	layer := make([]field.Fq4, size)
	for i := range layer {
		layer[i] = fq4FromU64(uint64(i + 1))
	}
	rs := make([]field.Fq4, k)
	for i := range rs {
		rs[i] = fq4FromU64(uint64(3*i + 7))
	}

	claimedSum := sumAll(layer)
	proof := ProveFromTable(layer, rs)
	if !Verify(claimedSum, layer, proof, rs) {
		t.Fatalf("verify rejected an honest sum-check proof")
	}
}

func TestVerifyRejectsTamperedRoundPoly(t *testing.T) {
	k := 6
	size := 1 << k
	layer := make([]field.Fq4, size)
	for i := range layer {
		layer[i] = fq4FromU64(uint64(i + 1))
	}
	rs := make([]field.Fq4, k)
	for i := range rs {
		rs[i] = fq4FromU64(uint64(5*i + 1))
	}
	claimedSum := sumAll(layer)
	proof := ProveFromTable(layer, rs)

	proof.Rounds[0].C0 = proof.Rounds[0].C0.Add(field.OneFq4())
	if Verify(claimedSum, layer, proof, rs) {
		t.Fatalf("verify accepted a tampered c0")
	}

	proof2 := ProveFromTable(layer, rs)
	proof2.Rounds[1].C1 = proof2.Rounds[1].C1.Add(field.OneFq4())
	if Verify(claimedSum, layer, proof2, rs) {
		t.Fatalf("verify accepted a tampered c1")
	}
}

func TestRangeSumcheckRoundtripOnZeroTable(t *testing.T) {
	// r_beta vanishes on every integer in [-8,8], so a witness drawn from
	// that range makes the range table identically zero and the claimed
	// sum is zero from round zero on.
	mk, md := 5, 6
	w := make([]field.Fq, 1<<(mk+md))
	for i := range w {
		v := i%17 - 8
		if v < 0 {
			w[i] = field.NewFq(uint64(int64(field.FqModulus) + int64(v)))
		} else {
			w[i] = field.NewFq(uint64(v))
		}
	}

	tau0 := make([]field.Fq, mk+md)
	for i := range tau0 {
		tau0[i] = field.NewFq(uint64(i + 2))
	}
	table := BuildRangeTable(w, mk, md, tau0)

	rs := make([]field.Fq, mk+md)
	for i := range rs {
		rs[i] = field.NewFq(uint64(2*i + 3))
	}
	claimedSum := sumAllFq(table)
	if !claimedSum.IsZero() {
		t.Fatalf("expected zero claimed sum for in-range witness, got %+v", claimedSum)
	}
	proof := ProveFromTableFq(table, rs)
	if !VerifyFq(claimedSum, table, proof, rs) {
		t.Fatalf("range sum-check verify rejected an honest proof")
	}
}

func TestRBetaBeta8VanishesOnBalancedRange(t *testing.T) {
	for v := -8; v <= 8; v++ {
		var z field.Fq
		if v < 0 {
			z = field.NewFq(uint64(int64(field.FqModulus) + int64(v)))
		} else {
			z = field.NewFq(uint64(v))
		}
		if !RBetaBeta8(z).IsZero() {
			t.Fatalf("r_beta(%d) expected zero, got nonzero", v)
		}
	}
	if RBetaBeta8(field.NewFq(9)).IsZero() {
		t.Fatalf("r_beta(9) expected nonzero")
	}
}
