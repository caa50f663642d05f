package pcs

import (
	"testing"

	"greyhound/internal/seedrand"
	"greyhound/ring"
)

func TestPcsSingleEvalEndToEnd(t *testing.T) {
	q := ring.NewModQ(229)
	N := 1 << 12
	pp := SetupToy(N, q, 123)

	rng := seedrand.New(42)
	f := make([]uint32, N)
	for i := range f {
		f[i] = rng.Uint32ModQ(q)
	}

	comm, dec := Commit(pp, f)

	x := uint32(7)
	yField, proof := EvalProve(pp, comm, x, f, dec)
	if !EvalVerify(pp, comm, x, yField, proof) {
		t.Fatalf("eval_verify rejected an honest proof")
	}
}

func TestPcsSingleEvalRejectsTamperedYField(t *testing.T) {
	q := ring.NewModQ(229)
	N := 1 << 10
	pp := SetupToy(N, q, 123)

	rng := seedrand.New(42)
	f := make([]uint32, N)
	for i := range f {
		f[i] = rng.Uint32ModQ(q)
	}

	comm, dec := Commit(pp, f)
	x := uint32(7)
	yField, proof := EvalProve(pp, comm, x, f, dec)

	if EvalVerify(pp, comm, x, (yField+1)%q.Q, proof) {
		t.Fatalf("eval_verify accepted a tampered y_field")
	}
}

func TestPcsEvalHvzkEndToEndClear(t *testing.T) {
	q := ring.NewModQ(229)
	N := 1 << 12
	L := 4
	params := SetupHvzkToy(N, q, 77, L, 4, 4)

	rng := seedrand.New(2025)
	f := make([]uint32, N)
	for i := range f {
		f[i] = rng.Uint32ModQ(q)
	}

	x := uint32(7)
	comm, proof := EvalProveHvzkClear(params, x, f)
	if !EvalVerifyHvzkClear(params, comm, x, proof) {
		t.Fatalf("eval_verify_hvzk_clear rejected an honest proof")
	}
}

func TestPcsEvalHvzkRejectsTamperedShare(t *testing.T) {
	q := ring.NewModQ(229)
	N := 1 << 10
	L := 4
	params := SetupHvzkToy(N, q, 77, L, 4, 4)

	rng := seedrand.New(2025)
	f := make([]uint32, N)
	for i := range f {
		f[i] = rng.Uint32ModQ(q)
	}

	x := uint32(7)
	comm, proof := EvalProveHvzkClear(params, x, f)
	proof.J[0].C[0] ^= 1
	if EvalVerifyHvzkClear(params, comm, x, proof) {
		t.Fatalf("eval_verify_hvzk_clear accepted a tampered masked share")
	}
}
