package commit

import (
	"testing"

	"greyhound/internal/seedrand"
	"greyhound/ring"
)

func randPoly(q ring.ModQ, rng *seedrand.Stream) ring.Poly {
	return rng.Poly(q)
}

func TestCommitOpenRoundtrip(t *testing.T) {
	q := ring.NewModQ(229)
	n, m, r := 2, 3, 2
	b0, b1 := uint32(6), uint32(7)

	cp := GenCommitParams(q, n, m, r, b0, b1, 42)

	rng := seedrand.New(7)
	fCols := make([]PolyVec, r)
	for i := range fCols {
		col := make(PolyVec, m)
		for j := range col {
			col[j] = randPoly(q, rng)
		}
		fCols[i] = col
	}

	c := Commit(cp, fCols)
	if !OpenCheck(cp, c.U, fCols, c.Dec) {
		t.Fatalf("open_check failed on honestly generated commitment")
	}
}

func TestCommitOpenRejectsTamperedOpening(t *testing.T) {
	q := ring.NewModQ(229)
	cp := GenCommitParams(q, 2, 3, 2, 6, 7, 42)
	rng := seedrand.New(7)
	fCols := make([]PolyVec, 2)
	for i := range fCols {
		col := make(PolyVec, 3)
		for j := range col {
			col[j] = randPoly(q, rng)
		}
		fCols[i] = col
	}
	c := Commit(cp, fCols)
	c.Dec.S[0][0].C[0] ^= 1
	if OpenCheck(cp, c.U, fCols, c.Dec) {
		t.Fatalf("open_check accepted a tampered opening")
	}
}

func TestCommitHidingRoundtrip(t *testing.T) {
	q := ring.NewModQ(229)
	cp := GenCommitParams(q, 2, 3, 2, 6, 7, 42).WithHiding(2, 99)

	rng := seedrand.New(11)
	fCols := make([]PolyVec, 2)
	for i := range fCols {
		col := make(PolyVec, 3)
		for j := range col {
			col[j] = randPoly(q, rng)
		}
		fCols[i] = col
	}

	c := CommitHiding(cp, fCols, 123)
	if !OpenCheckHiding(cp, c.U, fCols, c.Dec) {
		t.Fatalf("open_check_hiding failed on honestly generated hiding commitment")
	}
	if OpenCheck(cp, c.U, fCols, c.Dec) {
		t.Fatalf("non-hiding open_check unexpectedly accepted a hiding decommitment")
	}
}
