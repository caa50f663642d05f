// Package pcs implements the Greyhound polynomial commitment scheme: it
// bridges a dense polynomial over Z_q (degree < N) into the ring R_q,
// commits to it via the commit package, and proves/verifies a single
// evaluation claim f(x) = y using the proto package's linear system.
package pcs

import (
	"time"

	"greyhound/commit"
	"greyhound/internal/seedrand"
	"greyhound/metrics"
	"greyhound/proto"
	"greyhound/ring"
	"greyhound/transcript"
)

// Params are the toy public parameters for a single committed polynomial
// of degree < N: the ring dimension d (always ring.D), the blocking shape
// (m,r), the commitment parameters, and the n x (delta1*r) fold matrix D.
type Params struct {
	Q       ring.ModQ
	N       int
	D       int // ring dimension, ring.D
	M, R    int
	Commit  commit.CommitParams
	DMatrix commit.MatrixRq
}

// Commitment is the public output of Commit: n ring elements.
type Commitment struct {
	U []ring.Poly
}

// Decommit holds the prover's opening material.
type Decommit struct {
	S    []commit.PolyVec
	That []ring.Poly
}

// Proof is the bring-up (non-succinct) evaluation proof: it reveals the
// full witness Z=[what||that||z] alongside y_ring and v so the verifier
// can check P*Z=h directly.
type Proof struct {
	YRing ring.Poly
	V     []ring.Poly
	What  []ring.Poly
	That  []ring.Poly
	Z     []ring.Poly
}

func blockCount(n, d int) int {
	return (n + d - 1) / d
}

// EmbedX packs a field point x into the ring as xbar = sum_j x^j X^j.
func EmbedX(q ring.ModQ, x uint32) ring.Poly {
	var c [ring.D]uint32
	var pow uint64 = 1
	for j := 0; j < ring.D; j++ {
		c[j] = uint32(pow % uint64(q.Q))
		pow = (pow * uint64(x)) % uint64(q.Q)
	}
	return ring.Poly{C: c}
}

// PowPoly raises base to a nonnegative power via square-and-multiply.
func PowPoly(base ring.Poly, e int, q ring.ModQ) ring.Poly {
	res := ring.Monomial(0, 1%q.Q, q)
	for e > 0 {
		if e&1 == 1 {
			res = res.Mul(base, q)
		}
		base = base.Mul(base, q)
		e >>= 1
	}
	return res
}

// PackPolyToRingBlocks packs f (degree < blocks*D) into `blocks` ring
// elements, f_i = sum_j f_{i*D+j} X^j, zero-padding any missing tail.
func PackPolyToRingBlocks(q ring.ModQ, f []uint32, blocks int) []ring.Poly {
	out := make([]ring.Poly, blocks)
	for i := 0; i < blocks; i++ {
		var c [ring.D]uint32
		for j := 0; j < ring.D; j++ {
			k := i*ring.D + j
			if k < len(f) {
				c[j] = f[k] % q.Q
			}
		}
		out[i] = ring.Poly{C: c}
	}
	return out
}

// buildADigits builds a^T = [1, x^d, ..., x^{(m-1)d}] * G_{b0,m}, shape
// delta0*m.
func buildADigits(pp Params, xD ring.Poly) []ring.Poly {
	delta0 := pp.Commit.Delta0
	b0 := pp.Commit.B0
	q := pp.Q

	a0 := make([]ring.Poly, pp.M)
	cur := ring.Monomial(0, 1%q.Q, q)
	for j := 0; j < pp.M; j++ {
		a0[j] = cur
		cur = cur.Mul(xD, q)
	}

	pow := make([]uint32, delta0)
	if delta0 > 0 {
		pow[0] = 1
	}
	for t := 1; t < delta0; t++ {
		pow[t] = uint32((uint64(pow[t-1]) * uint64(b0)) % uint64(q.Q))
	}

	a := make([]ring.Poly, 0, delta0*pp.M)
	for j := 0; j < pp.M; j++ {
		for t := 0; t < delta0; t++ {
			a = append(a, a0[j].ScaleSmall(pow[t], q))
		}
	}
	return a
}

// buildB builds b^T = [1, x^{md}, ..., x^{(r-1)md}], length r.
func buildB(pp Params, xD ring.Poly) []ring.Poly {
	q := pp.Q
	xMd := PowPoly(xD, pp.M, q)
	b := make([]ring.Poly, pp.R)
	cur := ring.Monomial(0, 1%q.Q, q)
	for i := 0; i < pp.R; i++ {
		b[i] = cur
		cur = cur.Mul(xMd, q)
	}
	return b
}

// makeColumns arranges ring blocks into r columns of length m, padding
// with zero ring elements if blocks is short.
func makeColumns(blocks []ring.Poly, m, r int) []commit.PolyVec {
	cols := make([]commit.PolyVec, r)
	for i := 0; i < r; i++ {
		col := make(commit.PolyVec, m)
		for j := 0; j < m; j++ {
			idx := i*m + j
			if idx < len(blocks) {
				col[j] = blocks[idx]
			} else {
				col[j] = ring.Zero()
			}
		}
		cols[i] = col
	}
	return cols
}

// SetupToy picks toy parameters for a degree-N polynomial: m,r approximate
// sqrt(N/d), the SIS rank n and gadget bases b0,b1 are fixed toy choices,
// and (A,B,D) are derived deterministically from seed.
func SetupToy(N int, q ring.ModQ, seed uint64) Params {
	d := ring.D
	blocks := blockCount(N, d)
	r := isqrtCeil(blocks)
	m := (blocks + r - 1) / r

	n := 2
	b0 := uint32(6)
	b1 := uint32(7)

	cp := commit.GenCommitParams(q, n, m, r, b0, b1, seed^0xA5A5)
	rng := seedrand.New(seed ^ 0x1111)
	dmat := commit.RandomMatrixRq(n, cp.Delta1*r, q, rng)

	return Params{Q: q, N: N, D: d, M: m, R: r, Commit: cp, DMatrix: dmat}
}

func isqrtCeil(x int) int {
	if x <= 0 {
		return 0
	}
	r := 1
	for r*r < x {
		r++
	}
	return r
}

// Commit packs f into ring blocks and commits non-hiding.
func Commit(pp Params, fCoeffs []uint32) (Commitment, Decommit) {
	blocks := blockCount(pp.N, pp.D)
	blocksVec := PackPolyToRingBlocks(pp.Q, fCoeffs, blocks)
	fCols := makeColumns(blocksVec, pp.M, pp.R)
	c := commit.Commit(pp.Commit, fCols)
	return Commitment{U: c.U}, Decommit{S: c.Dec.S, That: c.Dec.That}
}

// EvalProve proves f(x) = y for the committed polynomial, returning y as a
// field element along with the bring-up proof.
func EvalProve(pp Params, comm Commitment, xField uint32, fCoeffs []uint32, dec Decommit) (uint32, Proof) {
	defer metrics.Track(time.Now(), "pcs.EvalProve")
	q := pp.Q

	blocks := blockCount(pp.N, pp.D)
	blocksVec := PackPolyToRingBlocks(q, fCoeffs, blocks)

	xRing := EmbedX(q, xField)
	xD := PowPoly(xRing, pp.D, q)
	sigmaInvX := xRing.SigmaInv(q)

	yRing := ring.Zero()
	xDPow := ring.Monomial(0, 1%q.Q, q)
	for _, fi := range blocksVec {
		term := sigmaInvX.Mul(fi.Mul(xDPow, q), q)
		yRing = yRing.Add(term, q)
		xDPow = xDPow.Mul(xD, q)
	}
	yField := yRing.Ct()

	a := buildADigits(pp, xD)

	w := proto.ComputeW(a, dec.S, q)
	what, v := proto.DeriveWHatAndV(pp.Commit, pp.DMatrix, w)

	fs := transcript.New([]byte("greyhound/pcs-eval"))
	fs.AbsorbPolyVec(v).AbsorbPolyVec(comm.U).AbsorbU64(uint64(xField))
	c := proto.SampleChallenge(fs, pp.Commit)
	z := proto.ComputeZ(dec.S, c, q)

	// The verifier rebuilds (P,h) itself from (a,b,comm.U,v,y_ring,c) and
	// checks P*Z=h; the prover only needs to emit the witness.
	if metrics.Enabled {
		bytesR := metrics.BytesRingQ(pp.D, 32)
		metrics.Global.Add("pcs/proof/what", int64(len(what))*bytesR)
		metrics.Global.Add("pcs/proof/that", int64(len(dec.That))*bytesR)
		metrics.Global.Add("pcs/proof/z", int64(len(z))*bytesR)
	}
	return yField, Proof{YRing: yRing, V: v, What: what, That: dec.That, Z: z}
}

// EvalVerify checks a bring-up evaluation proof: the constant-term claim
// and the full P*Z=h linear relation, rebuilding (P,h) identically to the
// prover.
func EvalVerify(pp Params, comm Commitment, xField, yField uint32, proof Proof) bool {
	defer metrics.Track(time.Now(), "pcs.EvalVerify")
	if proof.YRing.Ct() != yField {
		return false
	}
	q := pp.Q

	xRing := EmbedX(q, xField)
	xD := PowPoly(xRing, pp.D, q)
	sigmaInvX := xRing.SigmaInv(q)

	a := buildADigits(pp, xD)
	b := buildB(pp, xD)
	for i := range b {
		b[i] = sigmaInvX.Mul(b[i], q)
	}

	fs := transcript.New([]byte("greyhound/pcs-eval"))
	fs.AbsorbPolyVec(proof.V).AbsorbPolyVec(comm.U).AbsorbU64(uint64(xField))
	c := proto.SampleChallenge(fs, pp.Commit)

	pp2 := proto.ProtoParams{Commit: pp.Commit, D: pp.DMatrix}
	P, h := proto.BuildLinearSystem(pp2, a, b, comm.U, proof.V, proof.YRing, c)

	Z := make([]ring.Poly, 0, len(proof.What)+len(proof.That)+len(proof.Z))
	Z = append(Z, proof.What...)
	Z = append(Z, proof.That...)
	Z = append(Z, proof.Z...)

	if len(Z) != P.Cols {
		return false
	}
	got := P.MulVec(Z, q)
	if len(got) != len(h) {
		return false
	}
	for i := range got {
		if !got[i].Equal(h[i]) {
			return false
		}
	}
	return true
}

// HvzkParams are the masking-specific parameters layered on top of a
// hiding Params: the [D0|D1|E0] matrices and the number of masks L and
// rank mu_v used to blind the first Eq.(3) message.
type HvzkParams struct {
	D0, D1, E0 commit.MatrixRq
	L          int
	MuV        int
}

// ParamsHvzk bundles the hiding Params with its HvzkParams.
type ParamsHvzk struct {
	Pcs  Params
	Hvzk HvzkParams
}

// SetupHvzkToy extends SetupToy with a hiding commitment (rank mu) and the
// masking matrices needed for the Eq.(14) honest-verifier zero-knowledge
// variant.
func SetupHvzkToy(N int, q ring.ModQ, seed uint64, L, mu, muV int) ParamsHvzk {
	base := SetupToy(N, q, seed)
	cp := base.Commit.WithHiding(mu, seed^0xBEEF)
	base.Commit = cp

	rng := seedrand.New(seed ^ 0xD0D0)
	D0 := commit.RandomMatrixRq(cp.N, cp.Delta1*cp.R, q, rng)
	D1 := commit.RandomMatrixRq(cp.N, cp.Delta1*L, q, rng)
	E0 := commit.RandomMatrixRq(cp.N, muV, q, rng)

	return ParamsHvzk{Pcs: base, Hvzk: HvzkParams{D0: D0, D1: D1, E0: E0, L: L, MuV: muV}}
}

// ProofHvzkClear is the bring-up HVZK proof: it reveals the full masked
// witness, but only the evaluation claim's constant term (y_field) leaks
// to the verifier, not the raw y_ring value.
type ProofHvzkClear struct {
	V      []ring.Poly
	J      []ring.Poly
	YField uint32
	What   []ring.Poly
	LHat   []ring.Poly
	RV     []ring.Poly
	That   []ring.Poly
	R      []ring.Poly
	Z      []ring.Poly
}

const (
	hvzkMaskSeed = 0x1CE
	hvzkRvSeed   = hvzkMaskSeed + 1
)

func offsetsHvzk(pp ParamsHvzk) (offWhat, offLhat, offRv, offThat, offR, offZ, cols int) {
	cp := pp.Pcs.Commit
	whatLen := cp.Delta1 * cp.R
	lhatLen := cp.Delta1 * pp.Hvzk.L
	muV := pp.Hvzk.MuV
	thatLen := cp.N * cp.Delta1 * cp.R
	muR := cp.Mu
	zLen := cp.Delta0 * cp.M

	offWhat = 0
	offLhat = offWhat + whatLen
	offRv = offLhat + lhatLen
	offThat = offRv + muV
	offR = offThat + thatLen
	offZ = offR + muR
	cols = offZ + zLen
	return
}

// EvalProveHvzkClear commits (hiding) to f and proves f(x) = y so that the
// verifier learns only y's constant term, masking the evaluation share
// with L fresh ct=0 polynomials and a rank mu_v blinding vector.
func EvalProveHvzkClear(pp ParamsHvzk, xField uint32, fCoeffs []uint32) (Commitment, ProofHvzkClear) {
	defer metrics.Track(time.Now(), "pcs.EvalProveHvzkClear")
	q := pp.Pcs.Q

	blocks := blockCount(pp.Pcs.N, pp.Pcs.D)
	blocksVec := PackPolyToRingBlocks(q, fCoeffs, blocks)
	fCols := makeColumns(blocksVec, pp.Pcs.M, pp.Pcs.R)
	c := commit.CommitHiding(pp.Pcs.Commit, fCols, 0xF00D)
	comm := Commitment{U: c.U}

	xRing := EmbedX(q, xField)
	xD := PowPoly(xRing, pp.Pcs.D, q)
	sigmaInvX := xRing.SigmaInv(q)

	yRing := ring.Zero()
	xDPow := ring.Monomial(0, 1%q.Q, q)
	for _, fi := range blocksVec {
		term := sigmaInvX.Mul(fi.Mul(xDPow, q), q)
		yRing = yRing.Add(term, q)
		xDPow = xDPow.Mul(xD, q)
	}
	yField := yRing.Ct()

	a := buildADigits(pp.Pcs, xD)

	w := proto.ComputeW(a, c.Dec.S, q)
	what := proto.DeriveWHatOnly(pp.Pcs.Commit, w)

	maskRng := seedrand.New(hvzkMaskSeed)
	l := make([]ring.Poly, pp.Hvzk.L)
	for i := range l {
		l[i] = maskRng.PolyZeroConstantTerm(q)
	}
	lhat := make([]ring.Poly, 0, pp.Hvzk.L*pp.Pcs.Commit.Delta1)
	for _, li := range l {
		lhat = append(lhat, proto.DeriveWHatOnly(pp.Pcs.Commit, []ring.Poly{li})...)
	}

	rvRng := seedrand.New(hvzkRvSeed)
	rv := rvRng.PolyVec(pp.Hvzk.MuV, q)

	v := pp.Hvzk.D0.MulVec(what, q)
	d1l := pp.Hvzk.D1.MulVec(lhat, q)
	for i := range v {
		v[i] = v[i].Add(d1l[i], q)
	}
	e0rv := pp.Hvzk.E0.MulVec(rv, q)
	for i := range v {
		v[i] = v[i].Add(e0rv[i], q)
	}

	fs := transcript.New([]byte("greyhound/pcs-hvzk"))
	fs.AbsorbPolyVec(v).AbsorbPolyVec(comm.U).AbsorbU64(uint64(xField))
	chal := proto.SampleChallenge(fs, pp.Pcs.Commit)
	alpha := fs.Alphas(pp.Hvzk.L, q)

	j := make([]ring.Poly, pp.Hvzk.L)
	for i := range j {
		scaled := yRing.ScaleSmall(alpha[i], q)
		j[i] = l[i].Add(scaled, q)
	}

	z := proto.ComputeZ(c.Dec.S, chal, q)

	proof := ProofHvzkClear{
		V: v, J: j, YField: yField,
		What: what, LHat: lhat, RV: rv,
		That: c.Dec.That, R: c.Dec.R, Z: z,
	}
	if metrics.Enabled {
		bytesR := metrics.BytesRingQ(pp.Pcs.D, 32)
		total := len(v) + len(j) + len(what) + len(lhat) + len(rv) + len(c.Dec.That) + len(c.Dec.R) + len(z)
		metrics.Global.Add("pcs/hvzk/proof_total", int64(total)*bytesR)
	}
	return comm, proof
}

// EvalVerifyHvzkClear checks the ct(j_i) = alpha_i*y_field masking
// relation and rebuilds the full Eq.(14) linear system to check P*Z=h.
func EvalVerifyHvzkClear(pp ParamsHvzk, comm Commitment, xField uint32, proof ProofHvzkClear) bool {
	defer metrics.Track(time.Now(), "pcs.EvalVerifyHvzkClear")
	q := pp.Pcs.Q

	fs := transcript.New([]byte("greyhound/pcs-hvzk"))
	fs.AbsorbPolyVec(proof.V).AbsorbPolyVec(comm.U).AbsorbU64(uint64(xField))
	alpha := fs.Alphas(pp.Hvzk.L, q)
	for i := 0; i < pp.Hvzk.L; i++ {
		expect := uint32((uint64(alpha[i]) * uint64(proof.YField)) % uint64(q.Q))
		if proof.J[i].Ct() != expect {
			return false
		}
	}

	xRing := EmbedX(q, xField)
	xD := PowPoly(xRing, pp.Pcs.D, q)
	sigmaInvX := xRing.SigmaInv(q)

	a := buildADigits(pp.Pcs, xD)
	b := buildB(pp.Pcs, xD)
	for i := range b {
		b[i] = sigmaInvX.Mul(b[i], q)
	}

	chal := proto.SampleChallenge(fs, pp.Pcs.Commit)

	builders := proto.HvzkBuilders{
		Commit: pp.Pcs.Commit, D0: pp.Hvzk.D0, D1: pp.Hvzk.D1, E0: pp.Hvzk.E0, L: pp.Hvzk.L,
	}
	pub := proto.HvzkPublic{
		A: a, B: b, U: comm.U, V: proof.V, J: proof.J, Alpha: alpha,
	}
	P, h := proto.BuildEq14(builders, q, pub)

	offWhat, _, _, offThat, _, offZ, cols := offsetsHvzk(pp)
	proto.AppendSharedTailBlocks(P, pp.Pcs.Commit, a, chal, offWhat, offThat, offZ)

	Z := make([]ring.Poly, 0, cols)
	Z = append(Z, proof.What...)
	Z = append(Z, proof.LHat...)
	Z = append(Z, proof.RV...)
	Z = append(Z, proof.That...)
	Z = append(Z, proof.R...)
	Z = append(Z, proof.Z...)

	if len(Z) != P.Cols {
		return false
	}
	got := P.MulVec(Z, q)
	if len(got) != len(h) {
		return false
	}
	for i := range got {
		if !got[i].Equal(h[i]) {
			return false
		}
	}
	return true
}
