package proto

import (
	"testing"

	"greyhound/commit"
	"greyhound/gadget"
	"greyhound/internal/seedrand"
	"greyhound/ring"
)

func TestRowVecTimesGMatchesDotProduct(t *testing.T) {
	q := ring.NewModQ(229)
	base := uint32(7)
	delta := gadget.DigitsFor(q, base)
	rng := seedrand.New(1)

	r := 3
	c := rng.PolyVec(r, q)
	x := rng.PolyVec(r, q)
	digits := gadget.GInvVec(x, base, q)

	row := RowVecTimesG(c, base, delta, q)
	if len(row) != len(digits) {
		t.Fatalf("row length %d != digits length %d", len(row), len(digits))
	}
	got := ring.Zero()
	for k := range row {
		got = got.Add(row[k].Mul(digits[k], q), q)
	}
	want := ring.Zero()
	for i := range c {
		want = want.Add(c[i].Mul(x[i], q), q)
	}
	if !got.Equal(want) {
		t.Fatalf("row_vec_times_G mismatch: got %v want %v", got, want)
	}
}

func TestCotimesGBlockMatchesWeightedSum(t *testing.T) {
	q := ring.NewModQ(229)
	base := uint32(6)
	delta := gadget.DigitsFor(q, base)
	rng := seedrand.New(2)

	n, r := 2, 3
	c := rng.PolyVec(r, q)
	tvecs := make([]commit.PolyVec, r)
	thatConcat := make(commit.PolyVec, 0, r*n*delta)
	for i := 0; i < r; i++ {
		ti := rng.PolyVec(n, q)
		tvecs[i] = ti
		thatConcat = append(thatConcat, gadget.GInvVec(ti, base, q)...)
	}

	block := CotimesGBlock(c, n, base, delta, q)
	out := block.MulVec(thatConcat, q)

	for k := 0; k < n; k++ {
		want := ring.Zero()
		for i := 0; i < r; i++ {
			want = want.Add(c[i].Mul(tvecs[i][k], q), q)
		}
		if !out[k].Equal(want) {
			t.Fatalf("cotimes_G_block mismatch at row %d", k)
		}
	}
}
