package transcript

import (
	"testing"

	"greyhound/ring"
)

func TestChallengeVecDeterministicAndWeighted(t *testing.T) {
	q := ring.NewModQ(229)

	build := func() []ring.Poly {
		fs := New([]byte("test-domain"))
		fs.AbsorbU64(7).AbsorbBytes([]byte("hello"))
		return fs.ChallengeVec(3, q, 32, 8)
	}

	a := build()
	b := build()
	if len(a) != 3 || len(b) != 3 {
		t.Fatalf("unexpected challenge vector length")
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			t.Fatalf("challenge_vec not deterministic at index %d", i)
		}
	}

	for _, c := range a {
		nonzero := 0
		for _, coeff := range c.C {
			if coeff != 0 {
				nonzero++
			}
		}
		if nonzero != 40 {
			t.Fatalf("expected 40 nonzero coefficients (tau1+tau2), got %d", nonzero)
		}
	}
}

func TestAlphasDeterministicAndInRange(t *testing.T) {
	q := ring.NewModQ(229)
	fs := New([]byte("alpha-domain"))
	fs.AbsorbU64(42)
	a1 := fs.Alphas(5, q)
	a2 := fs.Alphas(5, q)
	for i := range a1 {
		if a1[i] != a2[i] {
			t.Fatalf("alphas not deterministic at %d", i)
		}
		if a1[i] >= q.Q {
			t.Fatalf("alpha %d out of range", a1[i])
		}
	}
}

func TestDifferentDomainsDiverge(t *testing.T) {
	q := ring.NewModQ(229)
	fs1 := New([]byte("domain-a"))
	fs2 := New([]byte("domain-b"))
	c1 := fs1.ChallengeVec(1, q, 32, 8)
	c2 := fs2.ChallengeVec(1, q, 32, 8)
	if c1[0].Equal(c2[0]) {
		t.Fatalf("distinct domains produced identical challenges")
	}
}
