// Package transcript implements the Fiat-Shamir transcript used to derive
// public coins (ring challenges and field scalars) from committed protocol
// messages via a SHAKE-256 extendable-output function.
package transcript

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/sha3"

	"greyhound/ring"
)

// domainPrefix namespaces every transcript so distinct protocols never share
// a random oracle even when given the same domain label.
const domainPrefix = "greyhound/fs/"

// Fs is an append-only Fiat-Shamir transcript. Absorb* calls feed the
// protocol's public messages into the underlying sponge; reader/ChallengeVec
// /Alphas squeeze pseudorandom output from a clone of the current state,
// leaving the transcript itself unaffected.
type Fs struct {
	st sha3.ShakeHash
}

// New creates a fresh transcript bound to the given domain label.
func New(domain []byte) *Fs {
	st := sha3.NewShake256()
	if _, err := st.Write([]byte(domainPrefix)); err != nil {
		panic(fmt.Errorf("transcript: write domain prefix: %w", err))
	}
	if _, err := st.Write(domain); err != nil {
		panic(fmt.Errorf("transcript: write domain: %w", err))
	}
	return &Fs{st: st}
}

func (f *Fs) AbsorbBytes(b []byte) *Fs {
	if _, err := f.st.Write(b); err != nil {
		panic(fmt.Errorf("transcript: absorb bytes: %w", err))
	}
	return f
}

func (f *Fs) AbsorbU64(x uint64) *Fs {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], x)
	return f.AbsorbBytes(b[:])
}

func (f *Fs) AbsorbPoly(p ring.Poly) *Fs {
	var buf [4 * ring.D]byte
	for i := 0; i < ring.D; i++ {
		binary.LittleEndian.PutUint32(buf[4*i:4*i+4], p.C[i])
	}
	return f.AbsorbBytes(buf[:])
}

func (f *Fs) AbsorbPolyVec(v []ring.Poly) *Fs {
	for _, p := range v {
		f.AbsorbPoly(p)
	}
	return f
}

// reader clones the current sponge state and returns an independent XOF
// reader over it, so repeated squeezing never mutates the transcript.
func (f *Fs) reader() sha3.ShakeHash {
	return f.st.Clone()
}

// sampleChallengePoly draws a single ring challenge with tau1 coefficients
// in {+-1} and tau2 coefficients in {+-2}, at distinct positions chosen via
// rejection sampling and a Fisher-Yates shuffle.
func sampleChallengePoly(rd sha3.ShakeHash, q ring.ModQ, tau1, tau2 int) ring.Poly {
	if tau1+tau2 > ring.D {
		panic("transcript: tau1+tau2 exceeds ring dimension")
	}
	chosen := make([]bool, ring.D)
	takePos := func() int {
		for {
			var b [2]byte
			rd.Read(b[:])
			idx := int(binary.LittleEndian.Uint16(b[:])) % ring.D
			if !chosen[idx] {
				chosen[idx] = true
				return idx
			}
		}
	}
	pos := make([]int, 0, tau1+tau2)
	for i := 0; i < tau1+tau2; i++ {
		pos = append(pos, takePos())
	}
	for i := len(pos) - 1; i >= 1; i-- {
		var b [2]byte
		rd.Read(b[:])
		j := int(binary.LittleEndian.Uint16(b[:])) % (i + 1)
		pos[i], pos[j] = pos[j], pos[i]
	}
	signBit := func() int32 {
		var b [1]byte
		rd.Read(b[:])
		return int32(b[0] & 1)
	}
	var p ring.Poly
	for k, idx := range pos {
		amp := int32(1)
		if k < tau2 {
			amp = 2
		}
		s := amp
		if signBit() == 1 {
			s = -amp
		}
		var x uint32
		if s >= 0 {
			x = uint32(s)
		} else {
			x = q.Neg(uint32(-s))
		}
		p.C[idx] = x % q.Q
	}
	return p
}

// ChallengeVec draws r independent ring challenges from C = {c : ||c||_1 <= kappa},
// instantiated with (tau1,tau2). The paper's concrete choice for d=64 is
// tau1=32, tau2=8.
func (f *Fs) ChallengeVec(r int, q ring.ModQ, tau1, tau2 int) []ring.Poly {
	rd := f.reader()
	out := make([]ring.Poly, r)
	for i := 0; i < r; i++ {
		out[i] = sampleChallengePoly(rd, q, tau1, tau2)
	}
	return out
}

// Alphas draws L uniform scalars in Z_q from 8-byte XOF draws.
func (f *Fs) Alphas(L int, q ring.ModQ) []uint32 {
	rd := f.reader()
	out := make([]uint32, L)
	for i := 0; i < L; i++ {
		var b [8]byte
		rd.Read(b[:])
		out[i] = uint32(binary.LittleEndian.Uint64(b[:]) % uint64(q.Q))
	}
	return out
}
