// Package commit implements the two-level SIS-style commitment scheme
// (Sec. 2.5, Eq. (4)) used to bind a matrix of ring elements to a short
// vector of outer commitments, with an optional hiding extension.
package commit

import (
	"fmt"
	"math/bits"
	"time"

	"greyhound/gadget"
	"greyhound/internal/seedrand"
	"greyhound/metrics"
	"greyhound/ring"
)

func bitsLen(q uint32) int {
	return bits.Len32(q)
}

// MatrixRq is a dense, row-major matrix over R_q, built by filling a
// zeroed matrix via Set and then treated as immutable.
type MatrixRq struct {
	Rows, Cols int
	Data       []ring.Poly // Rows*Cols, row-major
}

// NewMatrixRq wraps data as a Rows x Cols matrix. len(data) must equal
// Rows*Cols.
func NewMatrixRq(rows, cols int, data []ring.Poly) MatrixRq {
	if len(data) != rows*cols {
		panic(fmt.Sprintf("commit: matrix data length %d != %d*%d", len(data), rows, cols))
	}
	return MatrixRq{Rows: rows, Cols: cols, Data: data}
}

// ZeroMatrixRq returns a Rows x Cols matrix of zero ring elements, ready
// for a builder phase of Set calls.
func ZeroMatrixRq(rows, cols int) MatrixRq {
	return MatrixRq{Rows: rows, Cols: cols, Data: make([]ring.Poly, rows*cols)}
}

// At returns the entry at (r,c).
func (m MatrixRq) At(r, c int) ring.Poly {
	return m.Data[r*m.Cols+c]
}

// Set assigns the entry at (r,c) during the builder phase.
func (m MatrixRq) Set(r, c int, v ring.Poly) {
	m.Data[r*m.Cols+c] = v
}

// MulVec computes m * x over R_q.
func (m MatrixRq) MulVec(x []ring.Poly, q ring.ModQ) []ring.Poly {
	if len(x) != m.Cols {
		panic(fmt.Sprintf("commit: matrix-vector dimension mismatch: cols=%d vec=%d", m.Cols, len(x)))
	}
	out := make([]ring.Poly, m.Rows)
	for r := 0; r < m.Rows; r++ {
		acc := ring.Zero()
		for c := 0; c < m.Cols; c++ {
			acc = acc.Add(m.At(r, c).Mul(x[c], q), q)
		}
		out[r] = acc
	}
	return out
}

// RandomMatrixRq draws a uniform Rows x Cols matrix from the deterministic
// stream rng.
func RandomMatrixRq(rows, cols int, q ring.ModQ, rng *seedrand.Stream) MatrixRq {
	data := make([]ring.Poly, rows*cols)
	for i := range data {
		data[i] = rng.Poly(q)
	}
	return MatrixRq{Rows: rows, Cols: cols, Data: data}
}

// PolyVec is a vector of ring elements; f_cols / s / that / z etc. are all
// represented this way.
type PolyVec = []ring.Poly

// CommitParams are the public parameters of the scheme: the SIS rank n,
// the shape (m,r) of the message matrix, the two gadget bases b0/b1 (with
// their digit counts delta0/delta1), the public matrices A and B, and
// (when hiding) the outer-randomness rank mu and matrix E.
type CommitParams struct {
	Q             ring.ModQ
	N, M, R       int
	Delta0, Delta1 int
	B0, B1        uint32
	A, B          MatrixRq
	Mu            int
	E             *MatrixRq // non-nil iff the scheme is hiding
}

// GenCommitParams derives (A,B) and the gadget digit counts from a seed.
// The scheme is non-hiding until WithHiding is called.
func GenCommitParams(q ring.ModQ, n, m, r int, b0, b1 uint32, seed uint64) CommitParams {
	delta0 := gadget.DigitsFor(q, b0)
	delta1 := gadget.DigitsFor(q, b1)
	rng := seedrand.New(seed)
	A := RandomMatrixRq(n, delta0*m, q, rng)
	B := RandomMatrixRq(n, n*delta1*r, q, rng)
	return CommitParams{
		Q: q, N: n, M: m, R: r,
		Delta0: delta0, Delta1: delta1,
		B0: b0, B1: b1,
		A: A, B: B,
	}
}

// WithHiding extends cp with a mu-rank outer-randomness matrix E, turning
// Commit/OpenCheck into their hiding counterparts.
func (cp CommitParams) WithHiding(mu int, seed uint64) CommitParams {
	if mu <= 0 {
		return cp
	}
	rng := seedrand.New(seed ^ 0xE11E)
	E := RandomMatrixRq(cp.N, mu, cp.Q, rng)
	cp.E = &E
	cp.Mu = mu
	return cp
}

// Decommit holds the opening material: the per-column digit vectors s_i,
// the concatenated inner-gadget digits that, and (when hiding) the outer
// randomness r.
type Decommit struct {
	S    []PolyVec
	That PolyVec
	R    PolyVec // nil unless hiding
}

// Commitment bundles the public output u with its opening.
type Commitment struct {
	U   PolyVec
	Dec Decommit
}

func checkColumns(cp CommitParams, fCols []PolyVec) {
	if len(fCols) != cp.R {
		panic(fmt.Sprintf("commit: expected %d columns, got %d", cp.R, len(fCols)))
	}
	for i, col := range fCols {
		if len(col) != cp.M {
			panic(fmt.Sprintf("commit: column %d has length %d, want %d", i, len(col), cp.M))
		}
	}
}

// innerDigits computes, for every column f_i, s_i = G^{-1}_{b0,m}(f_i),
// t_i = A s_i, that_i = G^{-1}_{b1,n}(t_i), and returns the per-column s
// vectors along with the concatenation of all that_i.
func innerDigits(cp CommitParams, fCols []PolyVec) ([]PolyVec, PolyVec) {
	sAll := make([]PolyVec, cp.R)
	thatConcat := make(PolyVec, 0, cp.N*cp.Delta1*cp.R)
	for i := 0; i < cp.R; i++ {
		si := gadget.GInvVec(fCols[i], cp.B0, cp.Q)
		ti := cp.A.MulVec(si, cp.Q)
		thatI := gadget.GInvVec(ti, cp.B1, cp.Q)
		sAll[i] = si
		thatConcat = append(thatConcat, thatI...)
	}
	return sAll, thatConcat
}

// Commit computes the non-hiding commitment u = B * that.
func Commit(cp CommitParams, fCols []PolyVec) Commitment {
	defer metrics.Track(time.Now(), "commit.Commit")
	checkColumns(cp, fCols)
	sAll, thatConcat := innerDigits(cp, fCols)
	u := cp.B.MulVec(thatConcat, cp.Q)
	if metrics.Enabled {
		bytesR := metrics.BytesRingQ(ring.D, bitsLen(cp.Q.Q))
		metrics.Global.Add("commit/u", int64(len(u))*bytesR)
		metrics.Global.Add("commit/that", int64(len(thatConcat))*bytesR)
	}
	return Commitment{U: u, Dec: Decommit{S: sAll, That: thatConcat}}
}

// OpenCheck verifies a non-hiding opening against Eq. (4): it never panics
// on malformed input, returning false instead.
func OpenCheck(cp CommitParams, u PolyVec, fCols []PolyVec, dec Decommit) bool {
	if dec.R != nil {
		return false
	}
	if len(dec.S) != cp.R {
		return false
	}
	if len(dec.That) != cp.N*cp.Delta1*cp.R {
		return false
	}
	if len(u) != cp.N {
		return false
	}
	if len(fCols) != cp.R {
		return false
	}

	for i := 0; i < cp.R; i++ {
		if len(dec.S[i]) != cp.Delta0*cp.M {
			return false
		}
		fiRec := gadget.GFwdVec(dec.S[i], cp.M, cp.B0, cp.Q)
		if len(fiRec) != len(fCols[i]) {
			return false
		}
		for j := range fiRec {
			if !fiRec[j].Equal(fCols[i][j]) {
				return false
			}
		}
	}

	block := cp.N * cp.Delta1
	for i := 0; i < cp.R; i++ {
		thatI := dec.That[i*block : (i+1)*block]
		tiRec := gadget.GFwdVec(thatI, cp.N, cp.B1, cp.Q)
		tiFromA := cp.A.MulVec(dec.S[i], cp.Q)
		for j := range tiRec {
			if !tiRec[j].Equal(tiFromA[j]) {
				return false
			}
		}
	}

	uChk := cp.B.MulVec(dec.That, cp.Q)
	for i := range u {
		if !uChk[i].Equal(u[i]) {
			return false
		}
	}
	return true
}

// CommitHiding computes the hiding commitment u = B*that + E*r for a fresh
// outer-randomness vector r drawn from seed. WithHiding must have been
// called on cp first.
func CommitHiding(cp CommitParams, fCols []PolyVec, seed uint64) Commitment {
	defer metrics.Track(time.Now(), "commit.CommitHiding")
	if cp.E == nil || cp.Mu == 0 {
		panic("commit: CommitHiding requires WithHiding to be called first")
	}
	checkColumns(cp, fCols)
	sAll, thatConcat := innerDigits(cp, fCols)

	rng := seedrand.New(seed)
	r := rng.PolyVec(cp.Mu, cp.Q)

	u := cp.B.MulVec(thatConcat, cp.Q)
	er := cp.E.MulVec(r, cp.Q)
	for i := range u {
		u[i] = u[i].Add(er[i], cp.Q)
	}
	return Commitment{U: u, Dec: Decommit{S: sAll, That: thatConcat, R: r}}
}

// OpenCheckHiding verifies a hiding opening: the algebraic checks of
// OpenCheck plus E*r == u - B*that.
func OpenCheckHiding(cp CommitParams, u PolyVec, fCols []PolyVec, dec Decommit) bool {
	if cp.E == nil || cp.Mu == 0 || dec.R == nil {
		return false
	}
	if !OpenCheck(cp, u, fCols, Decommit{S: dec.S, That: dec.That}) {
		return false
	}
	er := cp.E.MulVec(dec.R, cp.Q)
	bu := cp.B.MulVec(dec.That, cp.Q)
	for i := range u {
		if !u[i].Sub(bu[i], cp.Q).Equal(er[i]) {
			return false
		}
	}
	return true
}
