package sumcheck

import (
	"testing"

	"greyhound/field"
)

func TestBuildConstraintTableMatchesPointwiseProduct(t *testing.T) {
	mk, md := 2, 2
	rowsK, colsD := 1<<mk, 1<<md
	w := make([]field.Fq, rowsK*colsD)
	for i := range w {
		w[i] = field.NewFq(uint64(i + 1))
	}
	alpha := make([]field.Fq4, colsD)
	for d := range alpha {
		alpha[d] = fq4FromU64(uint64(2*d + 1))
	}
	m := make([]field.Fq4, rowsK)
	for k := range m {
		m[k] = fq4FromU64(uint64(3*k + 5))
	}

	got := BuildConstraintTable(w, alpha, m, mk, md)
	for d := 0; d < colsD; d++ {
		for k := 0; k < rowsK; k++ {
			idx := k + (d << mk)
			want := field.EmbedFq4(w[idx]).Mul(alpha[d].Mul(m[k]))
			if !got[idx].Equal(want) {
				t.Fatalf("mismatch at (%d,%d)", k, d)
			}
		}
	}
}

func TestComputeConstraintClaimWeightsByEqPolynomial(t *testing.T) {
	ts := make([][]field.Fq, 32)
	for j := range ts {
		ts[j] = []field.Fq{field.NewFq(uint64(j)), field.NewFq(1)}
	}
	alpha := fq4FromU64(7)
	var iPrime [5]field.Fq4
	// iPrime selecting j=0 exactly (all coordinates fixed to 0) means only
	// term j=0 survives with weight 1.
	for i := range iPrime {
		iPrime[i] = field.ZeroFq4()
	}
	got := ComputeConstraintClaim(ts, alpha, iPrime)
	want := evalPolyLowToHighAtFq4(ts[0], alpha)
	if !got.Equal(want) {
		t.Fatalf("expected claim to equal ts[0] evaluated at alpha, got %+v want %+v", got, want)
	}
}
