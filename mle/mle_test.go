package mle

import (
	"testing"

	"greyhound/field"
)

func TestFromVecFq4PadsToPowerOfTwo(t *testing.T) {
	vals := []field.Fq4{field.EmbedFq4(field.NewFq(1)), field.EmbedFq4(field.NewFq(2)), field.EmbedFq4(field.NewFq(3))}
	got := FromVecFq4(vals)
	if len(got.Evals) != 4 || got.NumVars != 2 {
		t.Fatalf("expected 4 evals / 2 vars, got %d evals / %d vars", len(got.Evals), got.NumVars)
	}
	if !got.Evals[3].IsZero() {
		t.Fatalf("padding slot must be zero")
	}
}

func TestFromTableFqIndexing(t *testing.T) {
	table := [][]field.Fq{
		{field.NewFq(10), field.NewFq(20)},
		{field.NewFq(11), field.NewFq(21)},
		{field.NewFq(12), field.NewFq(22)},
	}
	got := FromTableFq(table)
	// rows=3 -> rows_p2=4 (r=2), cols=2 -> cols_p2=2 (c=1), numvars=3
	if got.NumVars != 3 {
		t.Fatalf("expected 3 vars, got %d", got.NumVars)
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 2; j++ {
			idx := i + (j << 2)
			if !got.Evals[idx].Equal(table[i][j]) {
				t.Fatalf("mismatch at (%d,%d)", i, j)
			}
		}
	}
}

func TestFixVariablesMatchesEndpoints(t *testing.T) {
	vals := []field.Fq4{
		field.EmbedFq4(field.NewFq(1)),
		field.EmbedFq4(field.NewFq(2)),
		field.EmbedFq4(field.NewFq(3)),
		field.EmbedFq4(field.NewFq(4)),
	}
	m := FromVecFq4(vals)
	fixedAtZero := m.FixVariables([]field.Fq4{field.ZeroFq4()})
	if !fixedAtZero.Evals[0].Equal(vals[0]) || !fixedAtZero.Evals[1].Equal(vals[2]) {
		t.Fatalf("fixing first variable at 0 should select even-indexed entries")
	}
	fixedAtOne := m.FixVariables([]field.Fq4{field.OneFq4()})
	if !fixedAtOne.Evals[0].Equal(vals[1]) || !fixedAtOne.Evals[1].Equal(vals[3]) {
		t.Fatalf("fixing first variable at 1 should select odd-indexed entries")
	}
}
