// Package mle builds dense multilinear extensions of evaluation tables
// over F_q and F_q4, and folds them round-by-round the way the sum-check
// prover does (FixVariables shares its fold with sumcheck.RoundOnce).
package mle

import "greyhound/field"

func nextPow2(x int) int {
	n := 1
	for n < x {
		n <<= 1
	}
	return n
}

func log2Pow2(x int) int {
	n := 0
	for (1 << n) < x {
		n++
	}
	return n
}

// TableFq is a dense multilinear extension over F_q.
type TableFq struct {
	NumVars int
	Evals   []field.Fq
}

// TableFq4 is a dense multilinear extension over F_q4.
type TableFq4 struct {
	NumVars int
	Evals   []field.Fq4
}

// FromVecFq4 pads vals to the next power of two and returns its MLE.
func FromVecFq4(vals []field.Fq4) TableFq4 {
	if len(vals) == 0 {
		panic("mle: empty vector")
	}
	mp2 := nextPow2(len(vals))
	evals := make([]field.Fq4, mp2)
	copy(evals, vals)
	return TableFq4{NumVars: log2Pow2(mp2), Evals: evals}
}

// FromTableFq packs a rectangular table into an MLE, index i + (j<<r)
// where r is log2 of the row count rounded up to a power of two.
func FromTableFq(table [][]field.Fq) TableFq {
	rows := len(table)
	if rows == 0 {
		panic("mle: empty table")
	}
	cols := len(table[0])
	for _, row := range table {
		if len(row) != cols {
			panic("mle: ragged table")
		}
	}
	rowsP2 := nextPow2(rows)
	colsP2 := nextPow2(cols)
	r := log2Pow2(rowsP2)
	c := log2Pow2(colsP2)

	evals := make([]field.Fq, rowsP2*colsP2)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			evals[i+(j<<r)] = table[i][j]
		}
	}
	return TableFq{NumVars: r + c, Evals: evals}
}

// FromTableFq4 is FromTableFq over F_q4.
func FromTableFq4(table [][]field.Fq4) TableFq4 {
	rows := len(table)
	if rows == 0 {
		panic("mle: empty table")
	}
	cols := len(table[0])
	for _, row := range table {
		if len(row) != cols {
			panic("mle: ragged table")
		}
	}
	rowsP2 := nextPow2(rows)
	colsP2 := nextPow2(cols)
	r := log2Pow2(rowsP2)
	c := log2Pow2(colsP2)

	evals := make([]field.Fq4, rowsP2*colsP2)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			evals[i+(j<<r)] = table[i][j]
		}
	}
	return TableFq4{NumVars: r + c, Evals: evals}
}

// FixVariables folds the lowest len(point) variables of the MLE in order,
// the same (1-v)*even + v*odd pairing the sum-check prover uses per round.
func (m TableFq4) FixVariables(point []field.Fq4) TableFq4 {
	evals := append([]field.Fq4(nil), m.Evals...)
	for _, v := range point {
		oneMinusV := field.OneFq4().Sub(v)
		next := make([]field.Fq4, len(evals)/2)
		for i := range next {
			a, b := evals[2*i], evals[2*i+1]
			next[i] = a.Mul(oneMinusV).Add(b.Mul(v))
		}
		evals = next
	}
	return TableFq4{NumVars: m.NumVars - len(point), Evals: evals}
}
